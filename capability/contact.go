package capability

import (
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/internal/envelope"
	"github.com/sinricpro/pico-sdk/internal/ratelimit"
)

const ActionSetContactState = "setContactState"

type contactValue struct {
	State string `json:"state"`
}

// ContactSensor is event-only: open/closed door and window sensors.
type ContactSensor struct {
	open    bool
	limiter *ratelimit.Limiter
}

func NewContactSensor(logger *slog.Logger) *ContactSensor {
	return &ContactSensor{limiter: newLimiter(true, logger)}
}

func (c *ContactSensor) Open() bool { return c.open }

func (c *ContactSensor) SendEvent(deviceID string, open bool, now time.Time) (*envelope.Envelope, bool) {
	state := "closed"
	if open {
		state = "open"
	}
	ev, ok := buildEvent(c.limiter, deviceID, ActionSetContactState, contactValue{State: state}, now)
	if ok {
		c.open = open
	}
	return ev, ok
}
