package sinricpro

import (
	"testing"
	"time"

	"github.com/sinricpro/pico-sdk/device"
)

func TestNewRequiresAppKeyAndSecret(t *testing.T) {
	if _, err := New(Config{}, nil); err == nil {
		t.Fatal("expected error for empty app key/secret")
	}
	if _, err := New(Config{AppKey: "k"}, nil); err == nil {
		t.Fatal("expected error for missing app secret")
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	c, err := New(Config{AppKey: "k", AppSecret: "s"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.cfg.ServerURL != "ws.sinric.pro" {
		t.Errorf("ServerURL = %q", c.cfg.ServerURL)
	}
	if c.cfg.ServerPort != 80 {
		t.Errorf("ServerPort = %d, want 80 (UseSSL defaults false)", c.cfg.ServerPort)
	}
}

func TestAddFindRemoveDevice(t *testing.T) {
	c, err := New(Config{AppKey: "k", AppSecret: "s"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sw := device.NewSwitch("111111111111111111111111", nil)
	if err := c.AddDevice(sw); err != nil {
		t.Fatalf("AddDevice: %v", err)
	}
	if _, ok := c.FindDevice(sw.ID()); !ok {
		t.Fatal("expected to find the added device")
	}
	if !c.RemoveDevice(sw.ID()) {
		t.Fatal("expected RemoveDevice to report found")
	}
	if _, ok := c.FindDevice(sw.ID()); ok {
		t.Fatal("device should be gone after RemoveDevice")
	}
}

func TestSendEventFailsWithoutConnection(t *testing.T) {
	c, err := New(Config{AppKey: "k", AppSecret: "s"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.SendEvent("111111111111111111111111", "setPowerState", map[string]string{"state": "On"}) {
		t.Fatal("expected SendEvent to fail without a connection")
	}
}

// TestEmitShortCircuitsOnBlockedDecision proves Emit never touches the
// session (and so never signs or sends) when the capability's own
// rate-limit decision was false — it passes a nil envelope, which would
// panic on Sign if Emit tried to send it anyway.
func TestEmitShortCircuitsOnBlockedDecision(t *testing.T) {
	c, err := New(Config{AppKey: "k", AppSecret: "s"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.Emit(nil, false) {
		t.Fatal("expected Emit to report false for a blocked decision")
	}
}

// TestTemperatureSensorReportIsRateLimited exercises the sensor's 60s
// event window through the device's public Report method: a second
// reading inside the window is blocked, and a reading after the window
// is allowed again.
func TestTemperatureSensorReportIsRateLimited(t *testing.T) {
	dev := device.NewTemperatureSensorDevice("111111111111111111111111", nil)

	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, ok := dev.Report(21.5, 40, t0); !ok {
		t.Fatal("expected the first reading to be allowed")
	}
	if _, ok := dev.Report(21.6, 40, t0.Add(30*time.Second)); ok {
		t.Fatal("expected a reading within the 60s window to be blocked")
	}
	if _, ok := dev.Report(21.7, 40, t0.Add(61*time.Second)); !ok {
		t.Fatal("expected a reading after the window to be allowed again")
	}
}

func TestStateTransitionsCallback(t *testing.T) {
	c, err := New(Config{AppKey: "k", AppSecret: "s"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var seen []State
	c.OnStateChange(func(s State) { seen = append(seen, s) })

	c.setState(StateWiFiConnecting)
	c.setState(StateWiFiConnecting) // duplicate, should not re-fire
	c.setState(StateConnected)

	if len(seen) != 2 {
		t.Fatalf("expected 2 state transitions, got %d: %v", len(seen), seen)
	}
	if seen[0] != StateWiFiConnecting || seen[1] != StateConnected {
		t.Fatalf("unexpected transitions: %v", seen)
	}
}
