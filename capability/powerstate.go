package capability

import (
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/internal/envelope"
	"github.com/sinricpro/pico-sdk/internal/ratelimit"
)

// ActionSetPowerState is the action name this capability consumes and
// emits.
const ActionSetPowerState = "setPowerState"

type powerStateValue struct {
	State string `json:"state"`
}

// PowerState models the On/Off switch capability shared by nearly every
// device kind (Switch, Light, DimSwitch, Fan, ...).
type PowerState struct {
	state    bool
	callback SetFunc[bool]
	limiter  *ratelimit.Limiter
}

// NewPowerState constructs a PowerState capability, defaulting to Off.
func NewPowerState(logger *slog.Logger) *PowerState {
	return &PowerState{limiter: newLimiter(false, logger)}
}

// OnSetPowerState installs the Set callback invoked for inbound
// setPowerState requests.
func (c *PowerState) OnSetPowerState(fn SetFunc[bool]) { c.callback = fn }

// State returns the cached power state.
func (c *PowerState) State() bool { return c.state }

// MarkOn forces the cached state to On without invoking the Set callback
// or touching the rate limiter. It exists for the derived power
// semantics hook: device composition calls it when another capability
// (brightness, color, color temperature) is set while power is off, so
// that change is treated as an implicit power-on.
func (c *PowerState) MarkOn() { c.state = true }

// HandleSetPowerState decodes {"state":"On"|"Off"}, invokes the callback if
// installed, and writes the (possibly callback-confirmed) state back to
// resp.Value.
func (c *PowerState) HandleSetPowerState(req, resp *envelope.Envelope) bool {
	v, err := requestValue(req)
	if err != nil {
		return false
	}
	raw, _ := v["state"].(string)
	want := raw == "On"

	success := true
	if c.callback != nil {
		success = c.callback(want)
	}
	if success {
		c.state = want
	}

	setResponseValue(resp, powerStateValue{State: onOff(c.state)})
	return success
}

// SendEvent builds a setPowerState event if the limiter allows it, updating
// the cached state on success.
func (c *PowerState) SendEvent(deviceID string, state bool, now time.Time) (*envelope.Envelope, bool) {
	ev, ok := buildEvent(c.limiter, deviceID, ActionSetPowerState, powerStateValue{State: onOff(state)}, now)
	if ok {
		c.state = state
	}
	return ev, ok
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}
