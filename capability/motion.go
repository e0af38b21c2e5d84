package capability

import (
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/internal/envelope"
	"github.com/sinricpro/pico-sdk/internal/ratelimit"
)

const ActionSetMotionDetection = "setMotionDetection"

type motionValue struct {
	State string `json:"state"`
}

// MotionSensor is event-only.
type MotionSensor struct {
	detected bool
	limiter  *ratelimit.Limiter
}

func NewMotionSensor(logger *slog.Logger) *MotionSensor {
	return &MotionSensor{limiter: newLimiter(true, logger)}
}

func (c *MotionSensor) Detected() bool { return c.detected }

func (c *MotionSensor) SendEvent(deviceID string, detected bool, now time.Time) (*envelope.Envelope, bool) {
	state := "notDetected"
	if detected {
		state = "detected"
	}
	ev, ok := buildEvent(c.limiter, deviceID, ActionSetMotionDetection, motionValue{State: state}, now)
	if ok {
		c.detected = detected
	}
	return ev, ok
}
