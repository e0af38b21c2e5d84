// Package clockrand wraps the time and randomness sources the rest of the
// SDK depends on behind narrow interfaces, so tests can inject a fake clock
// and a deterministic RNG instead of depending on wall time and crypto/rand.
//
// This mirrors the external collaborator contract in the protocol design:
// the host environment owns the monotonic clock and the RNG; the core only
// consumes them.
package clockrand

import (
	"crypto/rand"
	"encoding/binary"
	"sync/atomic"
	"time"
)

// Clock supplies the current time and an optional server-delivered epoch
// offset applied to outgoing createdAt timestamps. Time sync with the
// server is explicitly out of scope; the offset is advisory only — nothing
// in the dispatcher calls SetEpochOffset from an inbound message.
type Clock interface {
	Now() time.Time
	EpochSeconds() int64
	SetEpochOffset(d time.Duration)
}

// RNG supplies uniform random 32-bit values. WebSocket frame masking and
// handshake keys are generated by gorilla/websocket, not through RNG.
type RNG interface {
	Uint32() uint32
}

// System is the default Clock/RNG pair backed by the Go runtime clock and
// crypto/rand. It is safe for concurrent use.
type System struct {
	offset atomic.Int64 // nanoseconds
}

// NewSystem returns a Clock/RNG pair using the real system clock and
// crypto/rand.
func NewSystem() *System {
	return &System{}
}

func (s *System) Now() time.Time {
	return time.Now().Add(time.Duration(s.offset.Load()))
}

func (s *System) EpochSeconds() int64 {
	return s.Now().Unix()
}

func (s *System) SetEpochOffset(d time.Duration) {
	s.offset.Store(int64(d))
}

func (s *System) Uint32() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand on a supported platform does not fail; if it somehow
		// does, fall back to a time-derived value rather than panicking.
		return uint32(time.Now().UnixNano())
	}
	return binary.BigEndian.Uint32(b[:])
}
