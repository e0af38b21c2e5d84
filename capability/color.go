package capability

import (
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/internal/envelope"
	"github.com/sinricpro/pico-sdk/internal/ratelimit"
)

const ActionSetColor = "setColor"

// RGB is a clamped 0-255 per-channel color triple.
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

func (c RGB) clamp() RGB {
	return RGB{R: ClampRGB(c.R), G: ClampRGB(c.G), B: ClampRGB(c.B)}
}

type colorValue struct {
	Color RGB `json:"color"`
}

// Color models an RGB color capability.
type Color struct {
	current RGB
	set     SetFunc[RGB]
	limiter *ratelimit.Limiter
}

func NewColor(logger *slog.Logger) *Color {
	return &Color{limiter: newLimiter(false, logger)}
}

func (c *Color) OnSetColor(fn SetFunc[RGB]) { c.set = fn }
func (c *Color) Value() RGB { return c.current }

func (c *Color) HandleSetColor(req, resp *envelope.Envelope) bool {
	v, err := requestValue(req)
	if err != nil {
		return false
	}
	m, _ := v["color"].(map[string]any)
	want := RGB{R: asInt(m["r"]), G: asInt(m["g"]), B: asInt(m["b"])}.clamp()

	success := true
	if c.set != nil {
		success = c.set(want)
	}
	if success {
		c.current = want
	}
	setResponseValue(resp, colorValue{Color: want})
	return success
}

func (c *Color) SendEvent(deviceID string, color RGB, now time.Time) (*envelope.Envelope, bool) {
	color = color.clamp()
	ev, ok := buildEvent(c.limiter, deviceID, ActionSetColor, colorValue{Color: color}, now)
	if ok {
		c.current = color
	}
	return ev, ok
}
