package device

import (
	"log/slog"

	"github.com/sinricpro/pico-sdk/capability"
	"github.com/sinricpro/pico-sdk/internal/envelope"
)

// Blinds composes PowerState (open/closed shorthand) and Range (the
// blind's position, 0-100).
type Blinds struct {
	id       ID
	Power    capability.PowerState
	Position capability.Range
}

func NewBlinds(id ID, logger *slog.Logger) *Blinds {
	return &Blinds{
		id:       id,
		Power:    *capability.NewPowerState(logger),
		Position: *capability.NewRange(logger),
	}
}

func (d *Blinds) ID() ID { return d.id }
func (d *Blinds) Kind() Kind { return KindBlinds }

func (d *Blinds) HandleRequest(action string, req, resp *envelope.Envelope) bool {
	switch action {
	case capability.ActionSetPowerState:
		return d.Power.HandleSetPowerState(req, resp)
	case capability.ActionSetRangeValue:
		return d.Position.HandleSetRangeValue(req, resp)
	case capability.ActionAdjustRangeValue:
		return d.Position.HandleAdjustRangeValue(req, resp)
	default:
		return false
	}
}
