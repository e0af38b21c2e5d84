package mqtt

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/eclipse/paho.golang/autopaho"
	"github.com/eclipse/paho.golang/paho"

	"github.com/sinricpro/pico-sdk/device"
	"github.com/sinricpro/pico-sdk/internal/config"
)

// CommandHandler receives an inbound command published to a device's
// command topic (e.g. "ON"/"OFF" for a switch). It runs on the paho
// receive goroutine's callback and must not block.
type CommandHandler func(deviceID string, payload []byte)

// entityDef describes one published device's discovery metadata.
type entityDef struct {
	deviceID string
	kind     device.Kind
	name     string
}

// Bridge manages the MQTT connection, publishes HA discovery config for
// registered devices, and forwards inbound commands to a CommandHandler.
type Bridge struct {
	cfg        config.MQTTConfig
	sdkVersion string
	logger     *slog.Logger

	mu       sync.Mutex
	entities []entityDef
	onCmd    CommandHandler

	cm *autopaho.ConnectionManager
}

// New creates a Bridge but does not connect. Call Start to begin.
func New(cfg config.MQTTConfig, sdkVersion string, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{cfg: cfg, sdkVersion: sdkVersion, logger: logger}
}

// SetCommandHandler registers the callback invoked for inbound commands.
// Must be called before Start to take effect on the first connect.
func (b *Bridge) SetCommandHandler(h CommandHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onCmd = h
}

// RegisterDevice adds a device to the set whose discovery config gets
// (re-)published on every broker connect. Must be called before Start to
// appear in the first discovery burst; calling after Start takes effect
// on the next reconnect.
func (b *Bridge) RegisterDevice(id device.ID, kind device.Kind, name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entities = append(b.entities, entityDef{deviceID: id.String(), kind: kind, name: name})
}

// Start connects to the configured broker and blocks until ctx is
// cancelled. On every (re-)connect it publishes discovery configs for
// all registered devices, an "online" availability message, and
// subscribes to each device's command topic.
func (b *Bridge) Start(ctx context.Context) error {
	brokerURL, err := url.Parse(b.cfg.BrokerURL)
	if err != nil {
		return fmt.Errorf("bridge/mqtt: parse broker_url: %w", err)
	}

	availTopic := b.availabilityTopic()
	clientID := b.cfg.ClientID
	if clientID == "" {
		clientID = "pico-sdk"
	}

	pahoCfg := autopaho.ClientConfig{
		ServerUrls:      []*url.URL{brokerURL},
		KeepAlive:       30,
		ConnectUsername: b.cfg.Username,
		ConnectPassword: []byte(b.cfg.Password),
		WillMessage: &paho.WillMessage{
			Topic:   availTopic,
			Payload: []byte("offline"),
			QoS:     1,
			Retain:  true,
		},
		OnConnectionUp: func(cm *autopaho.ConnectionManager, _ *paho.Connack) {
			b.logger.Info("bridge/mqtt connected", "broker", b.cfg.BrokerURL)
			pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			b.publishDiscovery(pubCtx, cm)
			b.publish(pubCtx, cm, availTopic, []byte("online"), true, 1)
			b.subscribeCommands(pubCtx, cm)
		},
		OnConnectError: func(err error) {
			b.logger.Warn("bridge/mqtt connection error", "error", err)
		},
		ClientConfig: paho.ClientConfig{
			ClientID: clientID,
		},
	}

	if brokerURL.Scheme == "mqtts" || brokerURL.Scheme == "ssl" {
		pahoCfg.TlsCfg = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	cm, err := autopaho.NewConnection(ctx, pahoCfg)
	if err != nil {
		return fmt.Errorf("bridge/mqtt: connect: %w", err)
	}
	b.cm = cm

	cm.AddOnPublishReceived(func(pr autopaho.PublishReceived) (bool, error) {
		b.handleCommand(pr.Packet.Topic, pr.Packet.Payload)
		return true, nil
	})

	connCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := cm.AwaitConnection(connCtx); err != nil {
		b.logger.Warn("bridge/mqtt initial connection timed out, retrying in background", "error", err)
	}

	<-ctx.Done()
	return nil
}

// Stop publishes an "offline" availability message and disconnects.
func (b *Bridge) Stop(ctx context.Context) error {
	if b.cm == nil {
		return nil
	}
	b.publish(ctx, b.cm, b.availabilityTopic(), []byte("offline"), true, 1)
	return b.cm.Disconnect(ctx)
}

// PublishState publishes a device's current state, retained, to its
// state topic. Safe for concurrent use from any goroutine.
func (b *Bridge) PublishState(ctx context.Context, deviceID, state string) error {
	if b.cm == nil {
		return fmt.Errorf("bridge/mqtt: not started")
	}
	return b.publish(ctx, b.cm, b.stateTopic(deviceID), []byte(state), true, 0)
}

func (b *Bridge) publish(ctx context.Context, cm *autopaho.ConnectionManager, topic string, payload []byte, retain bool, qos byte) error {
	_, err := cm.Publish(ctx, &paho.Publish{Topic: topic, Payload: payload, QoS: qos, Retain: retain})
	if err != nil {
		b.logger.Warn("bridge/mqtt publish failed", "topic", topic, "error", err)
	}
	return err
}

func (b *Bridge) handleCommand(topic string, payload []byte) {
	deviceID, ok := strings.CutSuffix(strings.TrimPrefix(topic, b.cfg.TopicPrefix+"/"), "/set")
	if !ok {
		return
	}
	b.mu.Lock()
	h := b.onCmd
	b.mu.Unlock()
	if h != nil {
		h(deviceID, payload)
	}
}

func (b *Bridge) subscribeCommands(ctx context.Context, cm *autopaho.ConnectionManager) {
	b.mu.Lock()
	entities := append([]entityDef(nil), b.entities...)
	b.mu.Unlock()

	if len(entities) == 0 {
		return
	}
	opts := make([]paho.SubscribeOptions, 0, len(entities))
	for _, e := range entities {
		opts = append(opts, paho.SubscribeOptions{Topic: b.commandTopic(e.deviceID), QoS: 0})
	}
	if _, err := cm.Subscribe(ctx, &paho.Subscribe{Subscriptions: opts}); err != nil {
		b.logger.Error("bridge/mqtt subscribe failed", "error", err)
	}
}

func (b *Bridge) publishDiscovery(ctx context.Context, cm *autopaho.ConnectionManager) {
	b.mu.Lock()
	entities := append([]entityDef(nil), b.entities...)
	b.mu.Unlock()

	for _, e := range entities {
		component, cfg := b.entityConfig(e)
		topic := b.discoveryTopic(component, e.deviceID)
		payload, err := json.Marshal(cfg)
		if err != nil {
			b.logger.Error("bridge/mqtt marshal discovery payload", "device", e.deviceID, "error", err)
			continue
		}
		b.publish(ctx, cm, topic, payload, true, 1)
	}
}

// entityConfig maps a device Kind onto an HA component and its discovery
// config. Sensors are read-only (no command_topic); controllable kinds
// get one.
func (b *Bridge) entityConfig(e entityDef) (component string, cfg EntityConfig) {
	info := NewDeviceInfo(e.deviceID, e.name, b.sdkVersion)
	base := EntityConfig{
		Name:              e.name,
		ObjectID:          e.deviceID,
		HasEntityName:     true,
		UniqueID:          e.deviceID,
		StateTopic:        b.stateTopic(e.deviceID),
		AvailabilityTopic: b.availabilityTopic(),
		Device:            info,
	}

	switch e.kind {
	case device.KindSwitch, device.KindDimSwitch, device.KindLight, device.KindFan:
		base.CommandTopic = b.commandTopic(e.deviceID)
		base.PayloadOn = "ON"
		base.PayloadOff = "OFF"
		return "switch", base
	case device.KindLock:
		base.CommandTopic = b.commandTopic(e.deviceID)
		base.PayloadOn = "LOCK"
		base.PayloadOff = "UNLOCK"
		return "lock", base
	case device.KindGarageDoor, device.KindBlinds:
		base.CommandTopic = b.commandTopic(e.deviceID)
		return "cover", base
	case device.KindDoorbell, device.KindContactSensor, device.KindMotionSensor:
		base.DeviceClass = binarySensorClass(e.kind)
		return "binary_sensor", base
	default: // temperature, power, air quality sensors
		base.StateClass = "measurement"
		return "sensor", base
	}
}

func binarySensorClass(k device.Kind) string {
	switch k {
	case device.KindContactSensor:
		return "door"
	case device.KindMotionSensor:
		return "motion"
	default:
		return ""
	}
}

func (b *Bridge) availabilityTopic() string { return b.cfg.TopicPrefix + "/availability" }
func (b *Bridge) stateTopic(id string) string { return b.cfg.TopicPrefix + "/" + id + "/state" }
func (b *Bridge) commandTopic(id string) string {
	return b.cfg.TopicPrefix + "/" + id + "/set"
}
func (b *Bridge) discoveryTopic(component, id string) string {
	return b.cfg.DiscoveryTag + "/" + component + "/" + id + "/config"
}
