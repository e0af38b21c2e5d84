// Package transport implements the WebSocket link to the cloud relay: the
// custom HTTP-Upgrade handshake, keepalive ping/pong, and phase-gated
// reconnect timing. A single background goroutine reads frames off the
// wire and pushes them into a bounded queue; no user callback ever runs on
// that goroutine.
package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sinricpro/pico-sdk/internal/msgqueue"
)

// Config configures one Session.
type Config struct {
	AppKey              string
	DeviceIDs           []string
	RestoreDeviceStates bool
	Platform            string
	SDKVersion          string

	ServerURL      string // host[:port], no scheme
	UseSSL         bool
	ConnectTimeout time.Duration
	PingInterval   time.Duration
	PingTimeout    time.Duration
	ReconnectDelay time.Duration

	Logger *slog.Logger
}

// Session owns one WebSocket connection to the relay and the bounded
// inbound queue that the transport-layer read goroutine feeds.
type Session struct {
	cfg    Config
	logger *slog.Logger
	rx     *msgqueue.Queue

	mu   sync.Mutex
	conn *websocket.Conn

	phase atomic.Int32

	lastPing    time.Time
	lastPong    time.Time
	pingPending bool

	reconnectAt time.Time
}

// New returns a Session in the Disconnected phase. rx is the queue the
// background read goroutine pushes inbound frames into; the caller drains
// it from its own dispatch loop.
func New(cfg Config, rx *msgqueue.Queue) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 300 * time.Second
	}
	if cfg.PingTimeout <= 0 {
		cfg.PingTimeout = 10 * time.Second
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = 5 * time.Second
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 30 * time.Second
	}
	s := &Session{cfg: cfg, logger: logger, rx: rx}
	s.phase.Store(int32(Disconnected))
	return s
}

// Phase reports the current connection phase.
func (s *Session) Phase() Phase {
	return Phase(s.phase.Load())
}

func (s *Session) setPhase(p Phase) {
	s.phase.Store(int32(p))
}

// Connect dials the relay, performing the custom HTTP-Upgrade handshake
// with the appkey/deviceids/restoredevicestates/platform/SDKVersion
// headers. gorilla/websocket performs DNS/TCP/TLS/Upgrade as a single
// blocking call. The intermediate phases are set in order just before that
// call, so while the dial runs Phase reports WSHandshake; DNS, TCP and TLS
// progress is not reported separately. A failed dial leaves the session in
// Error with a reconnect scheduled after ReconnectDelay.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scheme := "ws"
	if s.cfg.UseSSL {
		scheme = "wss"
	}
	u := url.URL{Scheme: scheme, Host: s.cfg.ServerURL, Path: "/"}

	header := http.Header{}
	header.Set("appkey", s.cfg.AppKey)
	header.Set("deviceids", strings.Join(s.cfg.DeviceIDs, ";"))
	header.Set("restoredevicestates", fmt.Sprintf("%t", s.cfg.RestoreDeviceStates))
	header.Set("platform", s.cfg.Platform)
	header.Set("SDKVersion", s.cfg.SDKVersion)

	s.setPhase(DNSLookup)

	dialCtx, cancel := context.WithTimeout(ctx, s.cfg.ConnectTimeout)
	defer cancel()

	s.setPhase(TCPConnecting)
	if s.cfg.UseSSL {
		s.setPhase(TLSHandshake)
	}
	s.setPhase(WSHandshake)

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, u.String(), header)
	if err != nil {
		s.setPhase(Error)
		s.reconnectAt = time.Now().Add(s.cfg.ReconnectDelay)
		return fmt.Errorf("transport: dial: %w", err)
	}

	s.conn = conn
	s.lastPing = time.Time{}
	s.lastPong = time.Now()
	s.pingPending = false
	s.reconnectAt = time.Time{}
	s.setPhase(Connected)

	conn.SetPongHandler(func(string) error {
		s.mu.Lock()
		s.lastPong = time.Now()
		s.pingPending = false
		s.mu.Unlock()
		return nil
	})

	s.logger.Info("transport connected", "url", u.String())

	go s.readLoop(conn)

	return nil
}

// readLoop reads frames off the wire and pushes them into rx. It never
// invokes user code directly — dispatch happens on the caller's own
// goroutine, draining rx.
func (s *Session) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.logger.Info("transport read loop exiting", "error", err)
			s.mu.Lock()
			if s.conn == conn {
				s.setPhase(Error)
				s.reconnectAt = time.Now().Add(s.cfg.ReconnectDelay)
			}
			s.mu.Unlock()
			return
		}
		if !s.rx.Push(msgqueue.IfaceWebSocket, data) {
			s.logger.Warn("transport inbound queue full, dropping frame", "size", len(data))
		}
	}
}

// Send writes one frame. Safe to call concurrently with Tick but not with
// another Send (matches the single-writer assumption gorilla/websocket
// documents for WriteMessage).
func (s *Session) Send(b []byte) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("transport: not connected")
	}
	return conn.WriteMessage(websocket.TextMessage, b)
}

// Close tears down the connection.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setPhase(Closing)
	if s.conn == nil {
		s.setPhase(Disconnected)
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	s.setPhase(Disconnected)
	return err
}

// Tick drives keepalive and reconnect gating from plain time comparisons,
// independent of the transport library. The caller invokes it periodically
// (e.g. once per main loop iteration) and acts on the returned events.
func (s *Session) Tick(now time.Time) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []Event

	switch Phase(s.phase.Load()) {
	case Connected:
		if s.pingPending && now.Sub(s.lastPing) > s.cfg.PingTimeout {
			events = append(events, Event{Kind: EventPongTimeout})
			s.setPhase(Error)
			s.reconnectAt = now.Add(s.cfg.ReconnectDelay)
			return events
		}
		if !s.pingPending && now.Sub(s.lastPong) >= s.cfg.PingInterval {
			events = append(events, Event{Kind: EventPing})
			s.lastPing = now
			s.pingPending = true
		}
	case Disconnected, Error:
		if !s.reconnectAt.IsZero() && !now.Before(s.reconnectAt) {
			events = append(events, Event{Kind: EventReconnect})
			s.reconnectAt = time.Time{}
		}
	}

	return events
}

// Ping writes a ping control frame; called by the owner in response to an
// EventPing from Tick.
func (s *Session) Ping() error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("transport: not connected")
	}
	return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
}
