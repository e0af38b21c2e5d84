package device

import (
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/capability"
	"github.com/sinricpro/pico-sdk/internal/envelope"
)

// PowerSensorDevice is event-only.
type PowerSensorDevice struct {
	id    ID
	Power capability.PowerSensor
}

func NewPowerSensorDevice(id ID, logger *slog.Logger) *PowerSensorDevice {
	return &PowerSensorDevice{id: id, Power: *capability.NewPowerSensor(logger)}
}

func (d *PowerSensorDevice) ID() ID { return d.id }
func (d *PowerSensorDevice) Kind() Kind { return KindPowerSensor }

func (d *PowerSensorDevice) HandleRequest(action string, req, resp *envelope.Envelope) bool {
	return false
}

func (d *PowerSensorDevice) Report(r capability.Reading, now time.Time) (*envelope.Envelope, bool) {
	return d.Power.SendEvent(d.id.String(), r, now)
}
