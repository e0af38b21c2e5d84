// Package capability implements the ~14 composable behaviors a Device can
// expose — PowerState, Brightness, Color, and so on — each carrying its own
// state, inbound action handler(s), event limiter, and outbound event
// builder. Controllable capabilities consume one or more named actions;
// event-only capabilities (sensors, the doorbell) only emit.
//
// Callbacks follow the re-architected shape from the protocol design: a Set
// callback takes the requested value and returns success; an Adjust
// callback takes a delta and returns the new absolute value plus success,
// rather than mutating an out-parameter in place.
package capability

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/internal/envelope"
	"github.com/sinricpro/pico-sdk/internal/ratelimit"
)

// SetFunc is a Set* callback: it receives the requested absolute value and
// reports whether the change succeeded.
type SetFunc[T any] func(value T) (success bool)

// AdjustFunc is an adjust* callback: it receives the delta and must return
// the resulting absolute value together with success. If no AdjustFunc is
// installed, the owning capability applies the delta to its own cached
// state instead.
type AdjustFunc[T any] func(delta T) (absolute T, success bool)

// ErrNoValue is returned by decode helpers when a request is missing its
// value object or the specific field a capability needs.
var ErrNoValue = fmt.Errorf("capability: missing value in request")

func requestValue(req *envelope.Envelope) (map[string]any, error) {
	if len(req.Payload.Value) == 0 {
		return nil, ErrNoValue
	}
	var m map[string]any
	if err := json.Unmarshal(req.Payload.Value, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoValue, err)
	}
	return m, nil
}

func setResponseValue(resp *envelope.Envelope, v any) {
	_ = resp.SetValue(v)
}

// newLimiter returns logger-bound state/sensor limiters, defaulting a nil
// logger to slog.Default the way every other component in this module does.
func newLimiter(sensor bool, logger *slog.Logger) *ratelimit.Limiter {
	if logger == nil {
		logger = slog.Default()
	}
	if sensor {
		return ratelimit.NewSensor(logger)
	}
	return ratelimit.NewState(logger)
}

// buildEvent checks the limiter, and on Allow returns a ready-to-sign event
// envelope; on Block it returns (nil, false) and the caller must not
// enqueue anything.
func buildEvent(limiter *ratelimit.Limiter, deviceID, action string, value any, now time.Time) (*envelope.Envelope, bool) {
	if limiter.Check(now) == ratelimit.Block {
		return nil, false
	}
	b, err := json.Marshal(value)
	if err != nil {
		return nil, false
	}
	return envelope.NewEvent(deviceID, action, "", json.RawMessage(b), now), true
}
