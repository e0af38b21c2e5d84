package capability

import (
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/internal/envelope"
	"github.com/sinricpro/pico-sdk/internal/ratelimit"
)

const (
	ActionSetColorTemperature      = "setColorTemperature"
	ActionIncreaseColorTemperature = "increaseColorTemperature"
	ActionDecreaseColorTemperature = "decreaseColorTemperature"

	// colorTempStep is the fixed step applied by increase/decrease
	// actions, which carry no delta of their own in the wire protocol.
	colorTempStep = 100
)

type colorTempValue struct {
	ColorTemperature int `json:"colorTemperature"`
}

// ColorTemperature models a 2200-7000K white-point capability.
type ColorTemperature struct {
	current int
	set     SetFunc[int]
	limiter *ratelimit.Limiter
}

func NewColorTemperature(logger *slog.Logger) *ColorTemperature {
	return &ColorTemperature{current: ColorTempMinKelvin, limiter: newLimiter(false, logger)}
}

func (c *ColorTemperature) OnSetColorTemperature(fn SetFunc[int]) { c.set = fn }
func (c *ColorTemperature) Value() int { return c.current }

func (c *ColorTemperature) apply(want int, resp *envelope.Envelope) bool {
	want = ClampColorTemp(want)
	success := true
	if c.set != nil {
		success = c.set(want)
	}
	if success {
		c.current = want
	}
	setResponseValue(resp, colorTempValue{ColorTemperature: want})
	return success
}

func (c *ColorTemperature) HandleSetColorTemperature(req, resp *envelope.Envelope) bool {
	v, err := requestValue(req)
	if err != nil {
		return false
	}
	return c.apply(asInt(v["colorTemperature"]), resp)
}

func (c *ColorTemperature) HandleIncreaseColorTemperature(_, resp *envelope.Envelope) bool {
	return c.apply(c.current+colorTempStep, resp)
}

func (c *ColorTemperature) HandleDecreaseColorTemperature(_, resp *envelope.Envelope) bool {
	return c.apply(c.current-colorTempStep, resp)
}

func (c *ColorTemperature) SendEvent(deviceID string, kelvin int, now time.Time) (*envelope.Envelope, bool) {
	kelvin = ClampColorTemp(kelvin)
	ev, ok := buildEvent(c.limiter, deviceID, ActionSetColorTemperature, colorTempValue{ColorTemperature: kelvin}, now)
	if ok {
		c.current = kelvin
	}
	return ev, ok
}
