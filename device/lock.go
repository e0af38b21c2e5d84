package device

import (
	"log/slog"

	"github.com/sinricpro/pico-sdk/capability"
	"github.com/sinricpro/pico-sdk/internal/envelope"
)

// Lock composes LockController.
type Lock struct {
	id   ID
	Lock capability.LockController
}

func NewLock(id ID, logger *slog.Logger) *Lock {
	return &Lock{id: id, Lock: *capability.NewLockController(logger)}
}

func (d *Lock) ID() ID { return d.id }
func (d *Lock) Kind() Kind { return KindLock }

func (d *Lock) HandleRequest(action string, req, resp *envelope.Envelope) bool {
	switch action {
	case capability.ActionSetLockState:
		return d.Lock.HandleSetLockState(req, resp)
	default:
		return false
	}
}
