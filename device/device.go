// Package device defines the Device interface, the device identifier type,
// the bounded registry of registered devices, and the request dispatcher
// that routes inbound requests to the owning device.
package device

import (
	"regexp"

	"github.com/sinricpro/pico-sdk/internal/envelope"
)

// MaxDevices is the default bound on the number of devices a single
// registry may hold, matching SINRICPRO_MAX_DEVICES in the original
// firmware SDK.
const MaxDevices = 8

// ID is a 24-character-hex device identifier.
type ID string

var idPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

// Valid reports whether id is exactly 24 lowercase hex characters.
func (id ID) Valid() bool {
	return idPattern.MatchString(string(id))
}

func (id ID) String() string { return string(id) }

// Kind enumerates the device kinds composed of capabilities. Kind is
// informational only — dispatch is driven entirely by each device's
// HandleRequest implementation, not by a type switch on Kind.
type Kind string

const (
	KindSwitch            Kind = "SWITCH"
	KindDimSwitch         Kind = "DIMSWITCH"
	KindLight             Kind = "LIGHT"
	KindLock              Kind = "LOCK"
	KindGarageDoor        Kind = "GARAGE_DOOR"
	KindBlinds            Kind = "BLINDS"
	KindFan               Kind = "FAN"
	KindDoorbell          Kind = "DOORBELL"
	KindContactSensor     Kind = "CONTACT_SENSOR"
	KindMotionSensor      Kind = "MOTION_SENSOR"
	KindTemperatureSensor Kind = "TEMPERATURE_SENSOR"
	KindPowerSensor       Kind = "POWER_SENSOR"
	KindAirQualitySensor  Kind = "AIR_QUALITY_SENSOR"
)

// Device is the composition unit the registry and dispatcher operate on.
// Implementations own their capabilities by value; HandleRequest dispatches
// an inbound action to exactly one owned capability, filling resp's value
// and returning the capability callback's success/failure.
type Device interface {
	ID() ID
	Kind() Kind
	HandleRequest(action string, req, resp *envelope.Envelope) bool
}
