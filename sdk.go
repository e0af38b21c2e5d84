// Package sinricpro is the SDK facade: it owns the relay connection, the
// device registry, and the cooperative Handle loop that drains inbound
// messages and drives dispatch — the single entry point a host program
// imports.
package sinricpro

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sinricpro/pico-sdk/device"
	"github.com/sinricpro/pico-sdk/internal/clockrand"
	"github.com/sinricpro/pico-sdk/internal/envelope"
	"github.com/sinricpro/pico-sdk/internal/errs"
	"github.com/sinricpro/pico-sdk/internal/msgqueue"
	"github.com/sinricpro/pico-sdk/internal/signing"
	"github.com/sinricpro/pico-sdk/internal/transport"
)

// State is a coarse connection lifecycle stage, broader than
// transport.Phase: it also covers the network-link bring-up a host
// performs before a WebSocket dial is even attempted.
type State int

const (
	StateDisconnected State = iota
	StateWiFiConnecting
	StateWiFiConnected
	StateWSConnecting
	StateConnected
	StateError
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateWiFiConnecting:
		return "link_connecting"
	case StateWiFiConnected:
		return "link_connected"
	case StateWSConnecting:
		return "ws_connecting"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Config configures a Client.
type Config struct {
	AppKey    string
	AppSecret string

	ServerURL  string // default "ws.sinric.pro"
	ServerPort int    // default 443 with TLS, 80 without
	UseSSL     bool   // dial wss when true; the zero value false dials plain ws

	RestoreDeviceStates bool
	Platform            string
	SDKVersion          string

	ConnectTimeout time.Duration // default 30s
	PingInterval   time.Duration // default 300s
	PingTimeout    time.Duration // default 10s
	ReconnectDelay time.Duration // default 5s

	EnableDebug bool

	// LinkUp brings up the network link (Wi-Fi association, DHCP, DNS
	// bootstrap) before the WebSocket dial. A nil hook means the host's
	// network stack is already up — the common case on a Go target,
	// unlike the original microcontroller firmware this SDK is modeled
	// on.
	LinkUp func(ctx context.Context) error
}

func (c *Config) applyDefaults() {
	if c.ServerURL == "" {
		c.ServerURL = "ws.sinric.pro"
	}
	if c.ServerPort == 0 {
		if c.UseSSL {
			c.ServerPort = 443
		} else {
			c.ServerPort = 80
		}
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 30 * time.Second
	}
	if c.PingInterval == 0 {
		c.PingInterval = 300 * time.Second
	}
	if c.PingTimeout == 0 {
		c.PingTimeout = 10 * time.Second
	}
	if c.ReconnectDelay == 0 {
		c.ReconnectDelay = 5 * time.Second
	}
	if c.Platform == "" {
		c.Platform = "generic"
	}
	if c.SDKVersion == "" {
		c.SDKVersion = "2.0.0"
	}
}

func (c Config) validate() error {
	if c.AppKey == "" {
		return fmt.Errorf("%w: app key is required", errs.ErrConfig)
	}
	if c.AppSecret == "" {
		return fmt.Errorf("%w: app secret is required", errs.ErrConfig)
	}
	return nil
}

// Client is the SDK's single entry point: it registers devices, opens the
// relay connection, and exposes a cooperative Handle loop the host calls
// repeatedly (from its own main loop, an Arduino-style loop(), or a
// goroutine with a ticker — the model is deliberately host-driven, not a
// background goroutine the SDK owns).
type Client struct {
	cfg    Config
	logger *slog.Logger
	clock  clockrand.Clock

	registry   *device.Registry
	dispatcher *device.Dispatcher
	rx         *msgqueue.Queue
	session    *transport.Session

	mu            sync.Mutex
	state         State
	onStateChange func(State)
}

// New validates cfg, applies its defaults, and builds a Client ready for
// device registration. It does not connect — call Begin for that.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if logger == nil {
		logger = slog.Default()
	}
	if cfg.EnableDebug {
		logger = slog.New(logger.Handler())
	}

	reg := device.NewRegistry()
	clock := clockrand.NewSystem()
	rx := msgqueue.New()

	c := &Client{
		cfg:        cfg,
		logger:     logger,
		clock:      clock,
		registry:   reg,
		dispatcher: device.NewDispatcher(reg, cfg.AppSecret, clock, logger),
		rx:         rx,
	}
	c.session = transport.New(c.transportConfig(), rx)
	return c, nil
}

func (c *Client) transportConfig() transport.Config {
	ids := make([]string, 0, device.MaxDevices)
	for _, d := range c.registry.All() {
		ids = append(ids, d.ID().String())
	}
	return transport.Config{
		AppKey:              c.cfg.AppKey,
		DeviceIDs:           ids,
		RestoreDeviceStates: c.cfg.RestoreDeviceStates,
		Platform:            c.cfg.Platform,
		SDKVersion:          c.cfg.SDKVersion,
		ServerURL:           fmt.Sprintf("%s:%d", c.cfg.ServerURL, c.cfg.ServerPort),
		UseSSL:              c.cfg.UseSSL,
		ConnectTimeout:      c.cfg.ConnectTimeout,
		PingInterval:        c.cfg.PingInterval,
		PingTimeout:         c.cfg.PingTimeout,
		ReconnectDelay:      c.cfg.ReconnectDelay,
		Logger:              c.logger,
	}
}

// AddDevice registers d. Call before Begin so its ID appears in the
// handshake's deviceids header.
func (c *Client) AddDevice(d device.Device) error {
	if err := c.registry.Add(d); err != nil {
		return err
	}
	c.session = transport.New(c.transportConfig(), c.rx)
	return nil
}

// RemoveDevice forgets a device, so inbound requests for it are dropped.
// The session's deviceids handshake header is not rebuilt: reconnects
// still announce the IDs registered at the last AddDevice.
func (c *Client) RemoveDevice(id device.ID) bool {
	return c.registry.Remove(id)
}

// FindDevice looks up a registered device by ID.
func (c *Client) FindDevice(id device.ID) (device.Device, bool) {
	return c.registry.Find(id)
}

// OnStateChange registers a callback invoked whenever the connection
// state transitions. Replaces any previously registered callback.
func (c *Client) OnStateChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStateChange = fn
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	changed := c.state != s
	c.state = s
	cb := c.onStateChange
	c.mu.Unlock()
	if changed && cb != nil {
		cb(s)
	}
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Begin brings up the network link (via Config.LinkUp, if set) and opens
// the relay connection. On success the Client is in StateConnected and
// the host should start calling Handle from its main loop.
func (c *Client) Begin(ctx context.Context) error {
	if c.cfg.LinkUp != nil {
		c.setState(StateWiFiConnecting)
		if err := c.cfg.LinkUp(ctx); err != nil {
			c.setState(StateError)
			return fmt.Errorf("%w: link up: %w", errs.ErrLink, err)
		}
	}
	c.setState(StateWiFiConnected)

	c.setState(StateWSConnecting)
	if err := c.session.Connect(ctx); err != nil {
		c.setState(StateError)
		return fmt.Errorf("%w: %w", errs.ErrLink, err)
	}
	c.setState(StateConnected)
	return nil
}

// Handle drains one batch of inbound messages, dispatching each to its
// device and sending back the signed response, then ticks the transport
// session for keepalive and reconnect gating. The host calls Handle
// repeatedly (every loop iteration). Only a due reconnect blocks: it
// dials synchronously for up to ConnectTimeout.
func (c *Client) Handle() {
	for {
		_, data, ok := c.rx.Pop()
		if !ok {
			break
		}
		resp, ok := c.dispatcher.Dispatch(data)
		if !ok {
			continue
		}
		if err := c.session.Send(resp); err != nil {
			c.logger.Warn("failed to send dispatch response", "error", err)
		}
	}

	for _, ev := range c.session.Tick(c.clock.Now()) {
		switch ev.Kind {
		case transport.EventPing:
			if err := c.session.Ping(); err != nil {
				c.logger.Warn("ping failed", "error", err)
			}
		case transport.EventPongTimeout:
			c.logger.Warn("pong timeout, connection considered dead")
			c.setState(StateError)
		case transport.EventReconnect:
			c.reconnect()
		}
	}
}

func (c *Client) reconnect() {
	c.setState(StateWSConnecting)
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.ConnectTimeout)
	defer cancel()
	if err := c.session.Connect(ctx); err != nil {
		c.logger.Warn("reconnect failed", "error", err)
		c.setState(StateError)
		return
	}
	c.setState(StateConnected)
}

// SendEvent builds, signs, and sends a standalone event for a device
// action, bypassing any capability rate limiter. Capability types expose
// their own rate-limited Report/SendEvent methods for normal use (wire
// their result through Emit); this is the lower-level escape hatch the
// facade promises for actions with no dedicated capability helper.
func (c *Client) SendEvent(id device.ID, action string, value any) bool {
	b, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("marshal event value", "error", err)
		return false
	}
	return c.send(envelope.NewEvent(id.String(), action, "", b, c.clock.Now()))
}

// Emit signs and sends the (envelope, ok) pair returned by a capability's
// rate-limited Report/SendEvent method (via the owning device, e.g.
// TemperatureSensorDevice.Report or Doorbell.Press). ok=false means the
// capability's own rate limiter blocked the event; Emit reports false
// without touching the session, matching the capability's own decision
// rather than re-deriving it.
func (c *Client) Emit(ev *envelope.Envelope, ok bool) bool {
	if !ok {
		return false
	}
	return c.send(ev)
}

// send signs ev with the app secret and transmits it over the session.
func (c *Client) send(ev *envelope.Envelope) bool {
	out, err := ev.Sign(func(payload []byte) string {
		return signing.Sign(c.cfg.AppSecret, payload)
	})
	if err != nil {
		c.logger.Error("sign event", "error", err)
		return false
	}
	if err := c.session.Send(out); err != nil {
		c.logger.Warn("send event failed", "error", err)
		return false
	}
	return true
}

// Disconnect closes the relay connection without forgetting registered
// devices; Begin can be called again to reconnect.
func (c *Client) Disconnect() {
	if err := c.session.Close(); err != nil {
		c.logger.Warn("disconnect: close error", "error", err)
	}
	c.setState(StateDisconnected)
}

// Stop is an alias for Disconnect naming the host's explicit-shutdown
// intent, matching the facade shape described for this SDK.
func (c *Client) Stop() {
	c.Disconnect()
}
