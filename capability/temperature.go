package capability

import (
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/internal/envelope"
	"github.com/sinricpro/pico-sdk/internal/ratelimit"
)

const ActionCurrentTemperature = "currentTemperature"

type temperatureValue struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

// TemperatureSensor is event-only; it uses the 60s sensor preset since
// temperature readings are polled, not physical-interaction bursts.
type TemperatureSensor struct {
	limiter *ratelimit.Limiter
}

func NewTemperatureSensor(logger *slog.Logger) *TemperatureSensor {
	return &TemperatureSensor{limiter: newLimiter(true, logger)}
}

func (c *TemperatureSensor) SendEvent(deviceID string, tempC, humidity float64, now time.Time) (*envelope.Envelope, bool) {
	return buildEvent(c.limiter, deviceID, ActionCurrentTemperature, temperatureValue{Temperature: tempC, Humidity: humidity}, now)
}
