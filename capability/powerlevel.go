package capability

import (
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/internal/envelope"
	"github.com/sinricpro/pico-sdk/internal/ratelimit"
)

const (
	ActionSetPowerLevel    = "setPowerLevel"
	ActionAdjustPowerLevel = "adjustPowerLevel"
)

type powerLevelValue struct {
	PowerLevel int `json:"powerLevel"`
}

// PowerLevel models a generic 0-100 output level (e.g. a fan's speed or a
// dimmer's drive level expressed independently of Brightness).
type PowerLevel struct {
	current int
	set     SetFunc[int]
	adjust  AdjustFunc[int]
	limiter *ratelimit.Limiter
}

func NewPowerLevel(logger *slog.Logger) *PowerLevel {
	return &PowerLevel{limiter: newLimiter(false, logger)}
}

func (c *PowerLevel) OnSetPowerLevel(fn SetFunc[int]) { c.set = fn }
func (c *PowerLevel) OnAdjustPowerLevel(fn AdjustFunc[int]) { c.adjust = fn }
func (c *PowerLevel) Value() int { return c.current }

func (c *PowerLevel) HandleSetPowerLevel(req, resp *envelope.Envelope) bool {
	v, err := requestValue(req)
	if err != nil {
		return false
	}
	want := ClampPercent(asInt(v["powerLevel"]))

	success := true
	if c.set != nil {
		success = c.set(want)
	}
	if success {
		c.current = want
	}
	setResponseValue(resp, powerLevelValue{PowerLevel: want})
	return success
}

func (c *PowerLevel) HandleAdjustPowerLevel(req, resp *envelope.Envelope) bool {
	v, err := requestValue(req)
	if err != nil {
		return false
	}
	delta := asInt(v["powerLevelDelta"])

	var absolute int
	success := true
	if c.adjust != nil {
		absolute, success = c.adjust(delta)
	} else {
		absolute = c.current + delta
	}
	absolute = ClampPercent(absolute)

	if success {
		c.current = absolute
	}
	setResponseValue(resp, powerLevelValue{PowerLevel: absolute})
	return success
}

func (c *PowerLevel) SendEvent(deviceID string, level int, now time.Time) (*envelope.Envelope, bool) {
	level = ClampPercent(level)
	ev, ok := buildEvent(c.limiter, deviceID, ActionSetPowerLevel, powerLevelValue{PowerLevel: level}, now)
	if ok {
		c.current = level
	}
	return ev, ok
}
