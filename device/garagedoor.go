package device

import (
	"log/slog"

	"github.com/sinricpro/pico-sdk/capability"
	"github.com/sinricpro/pico-sdk/internal/envelope"
)

// GarageDoor composes DoorController.
type GarageDoor struct {
	id   ID
	Door capability.DoorController
}

func NewGarageDoor(id ID, logger *slog.Logger) *GarageDoor {
	return &GarageDoor{id: id, Door: *capability.NewDoorController(logger)}
}

func (d *GarageDoor) ID() ID { return d.id }
func (d *GarageDoor) Kind() Kind { return KindGarageDoor }

func (d *GarageDoor) HandleRequest(action string, req, resp *envelope.Envelope) bool {
	switch action {
	case capability.ActionSetMode:
		return d.Door.HandleSetMode(req, resp)
	default:
		return false
	}
}
