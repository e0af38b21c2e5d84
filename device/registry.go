package device

import (
	"fmt"

	"github.com/sinricpro/pico-sdk/internal/errs"
)

// Registry holds borrowed references to user-supplied devices. It does not
// own them: removing a device only forgets the pointer, it never destroys
// anything, matching the ownership model where capabilities are destroyed
// transitively when the device struct they belong to goes out of scope in
// the caller's code.
type Registry struct {
	devices []Device
	max     int
}

// NewRegistry returns an empty Registry bounded at MaxDevices entries.
func NewRegistry() *Registry {
	return &Registry{max: MaxDevices}
}

// Add registers d. It fails with errs.ErrConfig if d's ID is malformed, with
// errs.ErrOverflow if the registry is full, and returns an error (not a
// panic) on a duplicate ID — duplicate registration is a caller bug, not a
// transport-level condition, but it must never corrupt the registry.
func (r *Registry) Add(d Device) error {
	if !d.ID().Valid() {
		return fmt.Errorf("%w: invalid device id %q", errs.ErrConfig, d.ID())
	}
	if len(r.devices) >= r.max {
		return fmt.Errorf("%w: registry full (max %d devices)", errs.ErrOverflow, r.max)
	}
	for _, existing := range r.devices {
		if existing.ID() == d.ID() {
			return fmt.Errorf("%w: device %q already registered", errs.ErrConfig, d.ID())
		}
	}
	r.devices = append(r.devices, d)
	return nil
}

// Remove forgets the device with the given id, returning whether it was
// found.
func (r *Registry) Remove(id ID) bool {
	for i, d := range r.devices {
		if d.ID() == id {
			r.devices = append(r.devices[:i], r.devices[i+1:]...)
			return true
		}
	}
	return false
}

// Find looks up a device by id.
func (r *Registry) Find(id ID) (Device, bool) {
	for _, d := range r.devices {
		if d.ID() == id {
			return d, true
		}
	}
	return nil, false
}

// Len returns the number of registered devices.
func (r *Registry) Len() int {
	return len(r.devices)
}

// All returns a snapshot slice of all registered devices, in registration
// order. Callers must not mutate the returned slice's backing array.
func (r *Registry) All() []Device {
	out := make([]Device, len(r.devices))
	copy(out, r.devices)
	return out
}
