package device

import (
	"log/slog"

	"github.com/sinricpro/pico-sdk/capability"
	"github.com/sinricpro/pico-sdk/internal/envelope"
)

// DimSwitch is a dimmable switch composing PowerState and Brightness.
type DimSwitch struct {
	id         ID
	Power      capability.PowerState
	Brightness capability.Brightness
}

func NewDimSwitch(id ID, logger *slog.Logger) *DimSwitch {
	return &DimSwitch{
		id:         id,
		Power:      *capability.NewPowerState(logger),
		Brightness: *capability.NewBrightness(logger),
	}
}

func (d *DimSwitch) ID() ID { return d.id }
func (d *DimSwitch) Kind() Kind { return KindDimSwitch }

// markOnIfSet treats a successful brightness change as an implicit
// power-on when the switch was off.
func (d *DimSwitch) markOnIfSet(handled bool) bool {
	if handled {
		d.Power.MarkOn()
	}
	return handled
}

func (d *DimSwitch) HandleRequest(action string, req, resp *envelope.Envelope) bool {
	switch action {
	case capability.ActionSetPowerState:
		return d.Power.HandleSetPowerState(req, resp)
	case capability.ActionSetBrightness:
		return d.markOnIfSet(d.Brightness.HandleSetBrightness(req, resp))
	case capability.ActionAdjustBrightness:
		return d.markOnIfSet(d.Brightness.HandleAdjustBrightness(req, resp))
	default:
		return false
	}
}
