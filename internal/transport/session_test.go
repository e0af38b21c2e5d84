package transport

import (
	"testing"
	"time"

	"github.com/sinricpro/pico-sdk/internal/msgqueue"
)

func newTestSession() *Session {
	s := New(Config{
		AppKey:         "key",
		ServerURL:      "example.invalid",
		PingInterval:   300 * time.Second,
		PingTimeout:    10 * time.Second,
		ReconnectDelay: 5 * time.Second,
	}, msgqueue.New())
	s.setPhase(Connected)
	s.lastPong = time.Unix(1000, 0)
	return s
}

func TestTickSendsPingAfterInterval(t *testing.T) {
	s := newTestSession()

	now := time.Unix(1000, 0).Add(299 * time.Second)
	if evs := s.Tick(now); len(evs) != 0 {
		t.Fatalf("expected no events before interval elapses, got %v", evs)
	}

	now = time.Unix(1000, 0).Add(300 * time.Second)
	evs := s.Tick(now)
	if len(evs) != 1 || evs[0].Kind != EventPing {
		t.Fatalf("expected one EventPing, got %v", evs)
	}
	if !s.pingPending {
		t.Fatal("expected pingPending to be set")
	}
}

func TestTickPongTimeoutTriggersReconnectGate(t *testing.T) {
	s := newTestSession()
	s.pingPending = true
	s.lastPing = time.Unix(1000, 0)

	now := time.Unix(1000, 0).Add(11 * time.Second)
	evs := s.Tick(now)
	if len(evs) != 1 || evs[0].Kind != EventPongTimeout {
		t.Fatalf("expected EventPongTimeout, got %v", evs)
	}
	if s.Phase() != Error {
		t.Fatalf("expected Error phase after pong timeout, got %v", s.Phase())
	}

	// Reconnect should not fire immediately.
	if evs := s.Tick(now); len(evs) != 0 {
		t.Fatalf("expected no reconnect event yet, got %v", evs)
	}

	after := now.Add(5 * time.Second)
	evs = s.Tick(after)
	if len(evs) != 1 || evs[0].Kind != EventReconnect {
		t.Fatalf("expected EventReconnect once delay elapses, got %v", evs)
	}
}

func TestPhaseString(t *testing.T) {
	cases := map[Phase]string{
		Disconnected:  "disconnected",
		Connected:     "connected",
		WSHandshake:   "ws_handshake",
		Error:         "error",
		Phase(99):     "unknown",
	}
	for p, want := range cases {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", p, got, want)
		}
	}
}

func TestSendWithoutConnectFails(t *testing.T) {
	s := New(Config{ServerURL: "example.invalid"}, msgqueue.New())
	if err := s.Send([]byte("x")); err == nil {
		t.Fatal("expected error sending without a connection")
	}
}
