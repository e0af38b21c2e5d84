package capability

import (
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/internal/envelope"
	"github.com/sinricpro/pico-sdk/internal/ratelimit"
)

const ActionDoorbellPress = "DoorbellPress"

type doorbellValue struct {
	State string `json:"state"`
}

// Doorbell is an event-only capability: it has no inbound action, only a
// press event. It uses the state (1s) limiter preset since presses are a
// physical-interaction burst, not a polled sensor.
type Doorbell struct {
	limiter *ratelimit.Limiter
}

func NewDoorbell(logger *slog.Logger) *Doorbell {
	return &Doorbell{limiter: newLimiter(false, logger)}
}

func (c *Doorbell) SendPress(deviceID string, now time.Time) (*envelope.Envelope, bool) {
	return buildEvent(c.limiter, deviceID, ActionDoorbellPress, doorbellValue{State: "pressed"}, now)
}
