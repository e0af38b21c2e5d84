package device

import (
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/capability"
	"github.com/sinricpro/pico-sdk/internal/envelope"
)

// DoorbellDevice is event-only: it has no controllable capability, only
// a press event.
type DoorbellDevice struct {
	id       ID
	Doorbell capability.Doorbell
}

func NewDoorbellDevice(id ID, logger *slog.Logger) *DoorbellDevice {
	return &DoorbellDevice{id: id, Doorbell: *capability.NewDoorbell(logger)}
}

func (d *DoorbellDevice) ID() ID { return d.id }
func (d *DoorbellDevice) Kind() Kind { return KindDoorbell }

// HandleRequest always returns false: a doorbell accepts no inbound
// actions from the relay.
func (d *DoorbellDevice) HandleRequest(action string, req, resp *envelope.Envelope) bool {
	return false
}

// Press emits a press event, subject to the doorbell's rate limiter.
func (d *DoorbellDevice) Press(now time.Time) (*envelope.Envelope, bool) {
	return d.Doorbell.SendPress(d.id.String(), now)
}
