package device

import (
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/capability"
	"github.com/sinricpro/pico-sdk/internal/envelope"
)

// ContactSensorDevice is event-only.
type ContactSensorDevice struct {
	id      ID
	Contact capability.ContactSensor
}

func NewContactSensorDevice(id ID, logger *slog.Logger) *ContactSensorDevice {
	return &ContactSensorDevice{id: id, Contact: *capability.NewContactSensor(logger)}
}

func (d *ContactSensorDevice) ID() ID { return d.id }
func (d *ContactSensorDevice) Kind() Kind { return KindContactSensor }

func (d *ContactSensorDevice) HandleRequest(action string, req, resp *envelope.Envelope) bool {
	return false
}

func (d *ContactSensorDevice) ReportOpen(open bool, now time.Time) (*envelope.Envelope, bool) {
	return d.Contact.SendEvent(d.id.String(), open, now)
}
