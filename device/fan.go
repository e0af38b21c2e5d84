package device

import (
	"log/slog"

	"github.com/sinricpro/pico-sdk/capability"
	"github.com/sinricpro/pico-sdk/internal/envelope"
)

// Fan composes PowerState and PowerLevel (speed, 0-100).
type Fan struct {
	id    ID
	Power capability.PowerState
	Speed capability.PowerLevel
}

func NewFan(id ID, logger *slog.Logger) *Fan {
	return &Fan{
		id:    id,
		Power: *capability.NewPowerState(logger),
		Speed: *capability.NewPowerLevel(logger),
	}
}

func (d *Fan) ID() ID { return d.id }
func (d *Fan) Kind() Kind { return KindFan }

func (d *Fan) HandleRequest(action string, req, resp *envelope.Envelope) bool {
	switch action {
	case capability.ActionSetPowerState:
		return d.Power.HandleSetPowerState(req, resp)
	case capability.ActionSetPowerLevel:
		return d.Speed.HandleSetPowerLevel(req, resp)
	case capability.ActionAdjustPowerLevel:
		return d.Speed.HandleAdjustPowerLevel(req, resp)
	default:
		return false
	}
}
