package device

import (
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/capability"
	"github.com/sinricpro/pico-sdk/internal/envelope"
)

// AirQualitySensorDevice is event-only.
type AirQualitySensorDevice struct {
	id         ID
	AirQuality capability.AirQualitySensor
}

func NewAirQualitySensorDevice(id ID, logger *slog.Logger) *AirQualitySensorDevice {
	return &AirQualitySensorDevice{id: id, AirQuality: *capability.NewAirQualitySensor(logger)}
}

func (d *AirQualitySensorDevice) ID() ID { return d.id }
func (d *AirQualitySensorDevice) Kind() Kind { return KindAirQualitySensor }

func (d *AirQualitySensorDevice) HandleRequest(action string, req, resp *envelope.Envelope) bool {
	return false
}

func (d *AirQualitySensorDevice) Report(pm1, pm25, pm10 float64, now time.Time) (*envelope.Envelope, bool) {
	return d.AirQuality.SendEvent(d.id.String(), pm1, pm25, pm10, now)
}
