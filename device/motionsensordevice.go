package device

import (
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/capability"
	"github.com/sinricpro/pico-sdk/internal/envelope"
)

// MotionSensorDevice is event-only.
type MotionSensorDevice struct {
	id     ID
	Motion capability.MotionSensor
}

func NewMotionSensorDevice(id ID, logger *slog.Logger) *MotionSensorDevice {
	return &MotionSensorDevice{id: id, Motion: *capability.NewMotionSensor(logger)}
}

func (d *MotionSensorDevice) ID() ID { return d.id }
func (d *MotionSensorDevice) Kind() Kind { return KindMotionSensor }

func (d *MotionSensorDevice) HandleRequest(action string, req, resp *envelope.Envelope) bool {
	return false
}

func (d *MotionSensorDevice) ReportMotion(detected bool, now time.Time) (*envelope.Envelope, bool) {
	return d.Motion.SendEvent(d.id.String(), detected, now)
}
