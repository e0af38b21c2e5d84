package capability

import (
	"log/slog"
	"time"

	"github.com/sinricpro/pico-sdk/internal/envelope"
	"github.com/sinricpro/pico-sdk/internal/ratelimit"
)

const ActionSetMode = "setMode"

type doorModeValue struct {
	Mode string `json:"mode"`
}

// DoorController models a binary Open/Close actuator (garage door, gate).
type DoorController struct {
	open    bool
	set     SetFunc[bool]
	limiter *ratelimit.Limiter
}

func NewDoorController(logger *slog.Logger) *DoorController {
	return &DoorController{limiter: newLimiter(false, logger)}
}

func (c *DoorController) OnSetMode(fn SetFunc[bool]) { c.set = fn }
func (c *DoorController) Open() bool { return c.open }

// HandleSetMode decodes {"mode":"Open"|"Close"}.
func (c *DoorController) HandleSetMode(req, resp *envelope.Envelope) bool {
	v, err := requestValue(req)
	if err != nil {
		return false
	}
	mode, _ := v["mode"].(string)
	wantOpen := mode == "Open"

	success := true
	if c.set != nil {
		success = c.set(wantOpen)
	}
	if success {
		c.open = wantOpen
	}
	setResponseValue(resp, doorModeValue{Mode: modeString(c.open)})
	return success
}

func (c *DoorController) SendEvent(deviceID string, open bool, now time.Time) (*envelope.Envelope, bool) {
	ev, ok := buildEvent(c.limiter, deviceID, ActionSetMode, doorModeValue{Mode: modeString(open)}, now)
	if ok {
		c.open = open
	}
	return ev, ok
}

func modeString(open bool) string {
	if open {
		return "Open"
	}
	return "Close"
}
