package ratelimit

import (
	"testing"
	"time"
)

// TestStateLimiterBasic follows the original event_limiter.c semantics: an
// event is allowed once current time >= next_event_time. See DESIGN.md for
// why this diverges from the literal +1001ms example in the protocol
// design (which would require a block at exactly the advanced boundary).
func TestStateLimiterBasic(t *testing.T) {
	l := NewState(nil)
	t0 := time.Now()

	if got := l.Check(t0); got != Allow {
		t.Fatalf("first check = %v, want Allow", got)
	}

	if got := l.Check(t0.Add(999 * time.Millisecond)); got != Block {
		t.Fatalf("check at +999ms = %v, want Block", got)
	}

	if got := l.Check(t0.Add(1001 * time.Millisecond)); got != Allow {
		t.Fatalf("check at +1001ms = %v, want Allow (next_event_time has elapsed)", got)
	}

	if got := l.Check(t0.Add(2001 * time.Millisecond)); got != Allow {
		t.Fatalf("check at +2001ms = %v, want Allow", got)
	}
}

func TestLimiterBackoff(t *testing.T) {
	l := NewState(nil)
	t0 := time.Now()

	if got := l.Check(t0); got != Allow {
		t.Fatalf("first check = %v, want Allow", got)
	}

	// minDistance_ms/4 = 250. Hammer well inside the 1s window so
	// next_event_time never advances; fails climbs past the threshold.
	for i := 1; i <= 260; i++ {
		if got := l.Check(t0.Add(time.Duration(i) * time.Millisecond)); got != Block {
			t.Fatalf("check at +%dms = %v, want Block", i, got)
		}
	}

	// The next Allow (once next_event_time has elapsed) applies back-off
	// since fails (260) > threshold (250).
	if got := l.Check(t0.Add(2 * time.Second)); got != Allow {
		t.Fatalf("check after hammering = %v, want Allow", got)
	}
	if l.Backoff() != StateMinDistance {
		t.Fatalf("backoff = %v, want %v", l.Backoff(), StateMinDistance)
	}

	// A subsequent well-spaced Allow resets extra_distance_ms to 0.
	spaced := t0.Add(2*time.Second + StateMinDistance + l.Backoff() + time.Millisecond)
	if got := l.Check(spaced); got != Allow {
		t.Fatalf("spaced check = %v, want Allow", got)
	}
	if l.Backoff() != 0 {
		t.Fatalf("backoff after spaced allow = %v, want 0", l.Backoff())
	}
}

func TestLimiterReset(t *testing.T) {
	l := NewSensor(nil)
	t0 := time.Now()

	l.Check(t0)
	if got := l.Check(t0.Add(time.Millisecond)); got != Block {
		t.Fatalf("check = %v, want Block", got)
	}
	l.Reset()
	if l.TimeRemaining(t0.Add(time.Millisecond)) != 0 {
		t.Fatalf("TimeRemaining after reset = %v, want 0", l.TimeRemaining(t0.Add(time.Millisecond)))
	}
	if got := l.Check(t0.Add(2 * time.Millisecond)); got != Allow {
		t.Fatalf("check after reset = %v, want Allow", got)
	}
}
