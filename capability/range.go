package capability

import (
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/internal/envelope"
	"github.com/sinricpro/pico-sdk/internal/ratelimit"
)

const (
	ActionSetRangeValue    = "setRangeValue"
	ActionAdjustRangeValue = "adjustRangeValue"
)

type rangeValue struct {
	RangeValue int `json:"rangeValue"`
}

// Range models a generic clamped 0-100 scalar — blinds position, fan speed
// steps, and similar "set or nudge a number" controls.
type Range struct {
	current int
	set     SetFunc[int]
	adjust  AdjustFunc[int]
	limiter *ratelimit.Limiter
}

func NewRange(logger *slog.Logger) *Range {
	return &Range{limiter: newLimiter(false, logger)}
}

func (c *Range) OnSetRangeValue(fn SetFunc[int]) { c.set = fn }
func (c *Range) OnAdjustRangeValue(fn AdjustFunc[int]) { c.adjust = fn }
func (c *Range) Value() int { return c.current }

func (c *Range) HandleSetRangeValue(req, resp *envelope.Envelope) bool {
	v, err := requestValue(req)
	if err != nil {
		return false
	}
	want := ClampPercent(asInt(v["rangeValue"]))

	success := true
	if c.set != nil {
		success = c.set(want)
	}
	if success {
		c.current = want
	}
	setResponseValue(resp, rangeValue{RangeValue: want})
	return success
}

func (c *Range) HandleAdjustRangeValue(req, resp *envelope.Envelope) bool {
	v, err := requestValue(req)
	if err != nil {
		return false
	}
	delta := asInt(v["rangeValueDelta"])

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
	setResponseValue(resp, rangeValue{RangeValue: absolute})
	return success
}

func (c *Range) SendEvent(deviceID string, value int, now time.Time) (*envelope.Envelope, bool) {
	value = ClampPercent(value)
	ev, ok := buildEvent(c.limiter, deviceID, ActionSetRangeValue, rangeValue{RangeValue: value}, now)
	if ok {
		c.current = value
	}
	return ev, ok
}
