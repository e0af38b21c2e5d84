// Package ratelimit implements the adaptive per-capability event gate.
//
// Each capability owns one Limiter. State-change events (presses, toggles)
// use the 1s preset; sensor events use the 60s preset per server policy.
// The adaptive back-off absorbs a misbehaving caller hammering Send without
// permanently penalizing it once it quiesces.
package ratelimit

import (
	"log/slog"
	"time"
)

// Preset minimum distances between events, per the two device classes.
const (
	StateMinDistance  = 1 * time.Second
	SensorMinDistance = 60 * time.Second
)

// Decision is the outcome of Check.
type Decision int

const (
	Allow Decision = iota
	Block
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "block"
}

// Limiter is the event rate gate. The zero value is not usable; construct
// with New, NewState, or NewSensor. Check and TimeRemaining take the
// current time as an explicit argument rather than reading a clock of
// their own, so a Limiter is always driven by the same clockrand.Clock
// the rest of the SDK uses.
type Limiter struct {
	minDistance time.Duration
	next        time.Time
	extra       time.Duration
	fails       int
	warned      bool
	logger      *slog.Logger
}

// New constructs a Limiter with an arbitrary minimum distance. Most callers
// want NewState or NewSensor instead.
func New(minDistance time.Duration, logger *slog.Logger) *Limiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Limiter{
		minDistance: minDistance,
		logger:      logger,
	}
}

// NewState returns a Limiter preset for state-change events (1s).
func NewState(logger *slog.Logger) *Limiter {
	return New(StateMinDistance, logger)
}

// NewSensor returns a Limiter preset for sensor events (60s).
func NewSensor(logger *slog.Logger) *Limiter {
	return New(SensorMinDistance, logger)
}

// Check reports whether an event may be sent at now, advancing internal
// state as a side effect. On Allow it advances next to now + minDistance +
// extra; on Block it increments the failure counter.
//
// Back-off: once fails exceeds minDistance_ms/4 while events keep arriving
// too fast, the next Allow adds one minDistance to extra and resets fails
// to 0. An Allow that occurs before fails crosses that threshold resets
// extra to 0 instead, so a caller that settles back down loses its
// penalty. Exactly one warning is logged per back-off cycle, the moment
// fails first crosses the threshold.
func (l *Limiter) Check(now time.Time) Decision {
	threshold := int(l.minDistance / time.Millisecond / 4)

	if !now.Before(l.next) {
		if l.fails > threshold {
			l.extra += l.minDistance
			l.fails = 0
		} else {
			l.extra = 0
		}
		l.warned = false
		l.next = now.Add(l.minDistance + l.extra)
		return Allow
	}

	l.fails++
	if l.fails > threshold && !l.warned {
		l.warned = true
		l.logger.Warn("event rate limit exceeded, backing off",
			"min_distance", l.minDistance,
			"extra_distance", l.extra+l.minDistance,
		)
	}
	return Block
}

// Reset clears all limiter state, including the scheduled next event time.
// Only called explicitly; Check never resets next_event_time on its own.
func (l *Limiter) Reset() {
	l.next = time.Time{}
	l.extra = 0
	l.fails = 0
	l.warned = false
}

// Backoff returns the current extra distance accumulated by back-off.
func (l *Limiter) Backoff() time.Duration {
	return l.extra
}

// TimeRemaining reports how long until the next Allow at now, or 0 if
// Check would currently allow.
func (l *Limiter) TimeRemaining(now time.Time) time.Duration {
	if !now.Before(l.next) {
		return 0
	}
	return l.next.Sub(now)
}
