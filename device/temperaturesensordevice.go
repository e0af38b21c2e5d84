package device

import (
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/capability"
	"github.com/sinricpro/pico-sdk/internal/envelope"
)

// TemperatureSensorDevice is event-only.
type TemperatureSensorDevice struct {
	id          ID
	Temperature capability.TemperatureSensor
}

func NewTemperatureSensorDevice(id ID, logger *slog.Logger) *TemperatureSensorDevice {
	return &TemperatureSensorDevice{id: id, Temperature: *capability.NewTemperatureSensor(logger)}
}

func (d *TemperatureSensorDevice) ID() ID { return d.id }
func (d *TemperatureSensorDevice) Kind() Kind { return KindTemperatureSensor }

func (d *TemperatureSensorDevice) HandleRequest(action string, req, resp *envelope.Envelope) bool {
	return false
}

func (d *TemperatureSensorDevice) Report(tempC, humidity float64, now time.Time) (*envelope.Envelope, bool) {
	return d.Temperature.SendEvent(d.id.String(), tempC, humidity, now)
}
