package device

import (
	"log/slog"

	"github.com/sinricpro/pico-sdk/capability"
	"github.com/sinricpro/pico-sdk/internal/envelope"
)

// Switch is an on/off device composing PowerState.
type Switch struct {
	id    ID
	Power capability.PowerState
}

// NewSwitch returns a Switch. id must be Valid(); callers should check
// before Add-ing it to a Registry.
func NewSwitch(id ID, logger *slog.Logger) *Switch {
	return &Switch{id: id, Power: *capability.NewPowerState(logger)}
}

func (d *Switch) ID() ID { return d.id }
func (d *Switch) Kind() Kind { return KindSwitch }

func (d *Switch) HandleRequest(action string, req, resp *envelope.Envelope) bool {
	switch action {
	case capability.ActionSetPowerState:
		return d.Power.HandleSetPowerState(req, resp)
	default:
		return false
	}
}
