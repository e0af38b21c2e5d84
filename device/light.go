package device

import (
	"log/slog"

	"github.com/sinricpro/pico-sdk/capability"
	"github.com/sinricpro/pico-sdk/internal/envelope"
)

// Light composes PowerState, Brightness, Color, and ColorTemperature —
// the full smart-bulb capability set.
type Light struct {
	id               ID
	Power            capability.PowerState
	Brightness       capability.Brightness
	Color            capability.Color
	ColorTemperature capability.ColorTemperature
}

func NewLight(id ID, logger *slog.Logger) *Light {
	return &Light{
		id:               id,
		Power:            *capability.NewPowerState(logger),
		Brightness:       *capability.NewBrightness(logger),
		Color:            *capability.NewColor(logger),
		ColorTemperature: *capability.NewColorTemperature(logger),
	}
}

func (d *Light) ID() ID { return d.id }
func (d *Light) Kind() Kind { return KindLight }

// markOnIfSet treats a successful brightness, color, or color temperature
// change as an implicit power-on when the light was off. Composition-level,
// not inside the capabilities themselves.
func (d *Light) markOnIfSet(handled bool) bool {
	if handled {
		d.Power.MarkOn()
	}
	return handled
}

func (d *Light) HandleRequest(action string, req, resp *envelope.Envelope) bool {
	switch action {
	case capability.ActionSetPowerState:
		return d.Power.HandleSetPowerState(req, resp)
	case capability.ActionSetBrightness:
		return d.markOnIfSet(d.Brightness.HandleSetBrightness(req, resp))
	case capability.ActionAdjustBrightness:
		return d.markOnIfSet(d.Brightness.HandleAdjustBrightness(req, resp))
	case capability.ActionSetColor:
		return d.markOnIfSet(d.Color.HandleSetColor(req, resp))
	case capability.ActionSetColorTemperature:
		return d.markOnIfSet(d.ColorTemperature.HandleSetColorTemperature(req, resp))
	case capability.ActionIncreaseColorTemperature:
		return d.markOnIfSet(d.ColorTemperature.HandleIncreaseColorTemperature(req, resp))
	case capability.ActionDecreaseColorTemperature:
		return d.markOnIfSet(d.ColorTemperature.HandleDecreaseColorTemperature(req, resp))
	default:
		return false
	}
}
