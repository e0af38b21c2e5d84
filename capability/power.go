package capability

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/internal/envelope"
	"github.com/sinricpro/pico-sdk/internal/ratelimit"
)

const ActionPowerUsage = "powerUsage"

// unsetSentinel marks a Reading field the caller did not supply, matching
// the original firmware's -1 sentinel for "let the capability compute it".
const unsetSentinel = -1

// Reading is one powerUsage sample. Power, ApparentPower, ReactivePower,
// and Factor are optional (pass unsetSentinel, i.e. PowerUnset, to omit
// them); Power and Factor are computed from Voltage/Current/ApparentPower
// when left unset.
type Reading struct {
	Voltage       float64
	Current       float64
	Power         float64
	ApparentPower float64
	ReactivePower float64
	Factor        float64
}

// PowerUnset is the sentinel value callers pass for an optional Reading
// field to request it be computed (or omitted) by SendEvent.
const PowerUnset = unsetSentinel

type powerUsageValue struct {
	StartTime     int64    `json:"startTime"`
	Voltage       float64  `json:"voltage"`
	Current       float64  `json:"current"`
	Power         float64  `json:"power"`
	ApparentPower *float64 `json:"apparentPower,omitempty"`
	ReactivePower *float64 `json:"reactivePower,omitempty"`
	Factor        *float64 `json:"factor,omitempty"`
	WattHours     float64  `json:"wattHours"`
}

// PowerSensor is event-only. It accumulates wattHours across calls and
// fills in Power/Factor when the caller leaves them unset, per the
// original firmware's computed-fields behavior (see original_source's
// power_sensor.c; spec.md only names the fields, not these formulas).
type PowerSensor struct {
	limiter   *ratelimit.Limiter
	start     time.Time
	lastPower float64
	wattHours float64
}

func NewPowerSensor(logger *slog.Logger) *PowerSensor {
	return &PowerSensor{limiter: newLimiter(true, logger)}
}

// SendEvent checks the rate limiter, computes derived fields, accumulates
// wattHours, and builds the powerUsage event.
func (c *PowerSensor) SendEvent(deviceID string, r Reading, now time.Time) (*envelope.Envelope, bool) {
	if c.limiter.Check(now) == ratelimit.Block {
		return nil, false
	}

	power := r.Power
	if power == unsetSentinel {
		power = r.Voltage * r.Current
	}

	factor := r.Factor
	if factor == unsetSentinel && r.ApparentPower > 0 {
		factor = power / r.ApparentPower
	}

	if c.start.IsZero() {
		c.start = now
	} else {
		elapsed := now.Sub(c.start).Seconds()
		c.wattHours = elapsed * c.lastPower / 3600
	}
	c.lastPower = power

	val := powerUsageValue{
		StartTime: c.start.Unix(),
		Voltage:   r.Voltage,
		Current:   r.Current,
		Power:     power,
		WattHours: c.wattHours,
	}
	if r.ApparentPower != unsetSentinel {
		val.ApparentPower = &r.ApparentPower
	}
	if r.ReactivePower != unsetSentinel {
		val.ReactivePower = &r.ReactivePower
	}
	if factor != unsetSentinel {
		val.Factor = &factor
	}

	b, err := json.Marshal(val)
	if err != nil {
		return nil, false
	}
	return envelope.NewEvent(deviceID, ActionPowerUsage, "", json.RawMessage(b), now), true
}
