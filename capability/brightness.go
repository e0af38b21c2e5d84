package capability

import (
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/internal/envelope"
	"github.com/sinricpro/pico-sdk/internal/ratelimit"
)

const (
	ActionSetBrightness    = "setBrightness"
	ActionAdjustBrightness = "adjustBrightness"
)

type brightnessValue struct {
	Brightness int `json:"brightness"`
}

// Brightness models a 0-100 dimming level.
type Brightness struct {
	current int
	set     SetFunc[int]
	adjust  AdjustFunc[int]
	limiter *ratelimit.Limiter
}

func NewBrightness(logger *slog.Logger) *Brightness {
	return &Brightness{limiter: newLimiter(false, logger)}
}

func (c *Brightness) OnSetBrightness(fn SetFunc[int]) { c.set = fn }
func (c *Brightness) OnAdjustBrightness(fn AdjustFunc[int]) { c.adjust = fn }
func (c *Brightness) Value() int { return c.current }

// HandleSetBrightness decodes {"brightness":0..100}, clamps, invokes the
// callback, and reports the clamped absolute value.
func (c *Brightness) HandleSetBrightness(req, resp *envelope.Envelope) bool {
	v, err := requestValue(req)
	if err != nil {
		return false
	}
	want := ClampPercent(asInt(v["brightness"]))

	success := true
	if c.set != nil {
		success = c.set(want)
	}
	if success {
		c.current = want
	}
	setResponseValue(resp, brightnessValue{Brightness: want})
	return success
}

// HandleAdjustBrightness decodes {"brightnessDelta":-100..100}. If an
// AdjustFunc is installed, it receives the delta and must return the new
// absolute value; otherwise the delta is applied to the cached value. The
// response always reports the clamped absolute value, never the delta.
func (c *Brightness) HandleAdjustBrightness(req, resp *envelope.Envelope) bool {
	v, err := requestValue(req)
	if err != nil {
		return false
	}
	delta := asInt(v["brightnessDelta"])

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
	setResponseValue(resp, brightnessValue{Brightness: absolute})
	return success
}

func (c *Brightness) SendEvent(deviceID string, brightness int, now time.Time) (*envelope.Envelope, bool) {
	brightness = ClampPercent(brightness)
	ev, ok := buildEvent(c.limiter, deviceID, ActionSetBrightness, brightnessValue{Brightness: brightness}, now)
	if ok {
		c.current = brightness
	}
	return ev, ok
}

// asInt coerces a decoded JSON number (float64 via encoding/json) to int.
// Missing or non-numeric fields decode to 0.
func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}
