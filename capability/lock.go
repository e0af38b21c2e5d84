package capability

import (
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/internal/envelope"
	"github.com/sinricpro/pico-sdk/internal/ratelimit"
)

const ActionSetLockState = "setLockState"

type lockStateValue struct {
	State string `json:"state"`
}

// LockController models a lock that can report LOCKED, UNLOCKED, or JAMMED
// (a failed lock/unlock attempt) back to the caller.
type LockController struct {
	locked   bool
	callback SetFunc[bool]
	limiter  *ratelimit.Limiter
}

func NewLockController(logger *slog.Logger) *LockController {
	return &LockController{limiter: newLimiter(false, logger)}
}

func (c *LockController) OnSetLockState(fn SetFunc[bool]) { c.callback = fn }
func (c *LockController) Locked() bool { return c.locked }

// HandleSetLockState decodes {"state":"lock"|"unlock"}. A callback failure
// reports JAMMED rather than the requested lock state.
func (c *LockController) HandleSetLockState(req, resp *envelope.Envelope) bool {
	v, err := requestValue(req)
	if err != nil {
		return false
	}
	state, _ := v["state"].(string)
	wantLocked := state == "lock"

	success := true
	if c.callback != nil {
		success = c.callback(wantLocked)
	}

	if success {
		c.locked = wantLocked
		setResponseValue(resp, lockStateValue{State: lockedUnlocked(c.locked)})
	} else {
		setResponseValue(resp, lockStateValue{State: "JAMMED"})
	}
	return success
}

func (c *LockController) SendEvent(deviceID string, locked bool, now time.Time) (*envelope.Envelope, bool) {
	ev, ok := buildEvent(c.limiter, deviceID, ActionSetLockState, lockStateValue{State: lockedUnlocked(locked)}, now)
	if ok {
		c.locked = locked
	}
	return ev, ok
}

func lockedUnlocked(locked bool) string {
	if locked {
		return "LOCKED"
	}
	return "UNLOCKED"
}
