package mqtt

import (
	"testing"

	"github.com/sinricpro/pico-sdk/device"
	"github.com/sinricpro/pico-sdk/internal/config"
)

func testBridge() *Bridge {
	return New(config.MQTTConfig{TopicPrefix: "pico-sdk", DiscoveryTag: "homeassistant"}, "2.0.0", nil)
}

func TestTopics(t *testing.T) {
	b := testBridge()
	const id = "111111111111111111111111"

	if got, want := b.stateTopic(id), "pico-sdk/"+id+"/state"; got != want {
		t.Errorf("stateTopic = %q, want %q", got, want)
	}
	if got, want := b.commandTopic(id), "pico-sdk/"+id+"/set"; got != want {
		t.Errorf("commandTopic = %q, want %q", got, want)
	}
	if got, want := b.availabilityTopic(), "pico-sdk/availability"; got != want {
		t.Errorf("availabilityTopic = %q, want %q", got, want)
	}
	if got, want := b.discoveryTopic("switch", id), "homeassistant/switch/"+id+"/config"; got != want {
		t.Errorf("discoveryTopic = %q, want %q", got, want)
	}
}

func TestEntityConfigComponentMapping(t *testing.T) {
	b := testBridge()
	cases := map[device.Kind]string{
		device.KindSwitch:            "switch",
		device.KindLock:              "lock",
		device.KindGarageDoor:        "cover",
		device.KindContactSensor:     "binary_sensor",
		device.KindTemperatureSensor: "sensor",
	}
	for kind, want := range cases {
		component, cfg := b.entityConfig(entityDef{deviceID: "abc", kind: kind, name: "n"})
		if component != want {
			t.Errorf("kind %s -> component %q, want %q", kind, component, want)
		}
		if cfg.UniqueID != "abc" {
			t.Errorf("UniqueID = %q, want abc", cfg.UniqueID)
		}
	}
}

func TestHandleCommandExtractsDeviceID(t *testing.T) {
	b := testBridge()
	var gotID string
	var gotPayload string
	b.SetCommandHandler(func(deviceID string, payload []byte) {
		gotID = deviceID
		gotPayload = string(payload)
	})

	b.handleCommand("pico-sdk/111111111111111111111111/set", []byte("ON"))

	if gotID != "111111111111111111111111" {
		t.Errorf("deviceID = %q", gotID)
	}
	if gotPayload != "ON" {
		t.Errorf("payload = %q", gotPayload)
	}
}

func TestHandleCommandIgnoresUnrelatedTopic(t *testing.T) {
	b := testBridge()
	called := false
	b.SetCommandHandler(func(string, []byte) { called = true })

	b.handleCommand("homeassistant/status", []byte("online"))

	if called {
		t.Fatal("handler should not fire for a non-command topic")
	}
}
