package capability

import (
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/internal/envelope"
	"github.com/sinricpro/pico-sdk/internal/ratelimit"
)

const ActionAirQuality = "airQuality"

type airQualityValue struct {
	PM1   float64 `json:"pm1"`
	PM2_5 float64 `json:"pm2_5"`
	PM10  float64 `json:"pm10"`
}

// AirQualitySensor is event-only.
type AirQualitySensor struct {
	limiter *ratelimit.Limiter
}

func NewAirQualitySensor(logger *slog.Logger) *AirQualitySensor {
	return &AirQualitySensor{limiter: newLimiter(true, logger)}
}

func (c *AirQualitySensor) SendEvent(deviceID string, pm1, pm25, pm10 float64, now time.Time) (*envelope.Envelope, bool) {
	return buildEvent(c.limiter, deviceID, ActionAirQuality, airQualityValue{PM1: pm1, PM2_5: pm25, PM10: pm10}, now)
}
