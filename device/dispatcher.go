package device

import (
	"log/slog"

	"github.com/sinricpro/pico-sdk/internal/clockrand"
	"github.com/sinricpro/pico-sdk/internal/envelope"
	"github.com/sinricpro/pico-sdk/internal/signing"
)

// Dispatcher verifies, parses, and routes inbound wire messages per the
// protocol design §4.6:
//  1. parse JSON, dropping malformed input silently (logged),
//  2. verify the HMAC over the canonical payload, dropping on mismatch,
//  3. only "request" messages are dispatched; "response"/"event" from the
//     server are accepted without action,
//  4. unknown deviceId drops the message entirely,
//  5. a response envelope is pre-populated from the request,
//  6. the owning device's HandleRequest fills in the response value,
//  7. success is overwritten from the handler's return, the response is
//     signed, and its bytes are returned for the caller to enqueue on tx.
type Dispatcher struct {
	Registry *Registry
	Secret   string
	Clock    clockrand.Clock
	Logger   *slog.Logger
}

// NewDispatcher constructs a Dispatcher. A nil clock defaults to
// clockrand.NewSystem; a nil logger defaults to slog.Default.
func NewDispatcher(reg *Registry, secret string, clock clockrand.Clock, logger *slog.Logger) *Dispatcher {
	if clock == nil {
		clock = clockrand.NewSystem()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{Registry: reg, Secret: secret, Clock: clock, Logger: logger}
}

// Dispatch processes one inbound wire message. It returns the serialized
// response envelope to send back and true, or nil and false when nothing
// should be sent (malformed input, failed signature, unknown type, or
// unknown device).
func (d *Dispatcher) Dispatch(raw []byte) ([]byte, bool) {
	req, err := envelope.Parse(raw)
	if err != nil {
		d.Logger.Warn("dropping malformed inbound message", "error", err)
		return nil, false
	}

	if !signing.Verify(d.Secret, raw, req.Signature.HMAC) {
		d.Logger.Warn("dropping inbound message with invalid signature",
			"action", req.Payload.Action, "deviceId", req.Payload.DeviceID)
		return nil, false
	}

	if req.Payload.Type != envelope.TypeRequest {
		// Responses and events originated by the server are accepted but
		// not acted on by this core.
		return nil, false
	}

	dev, found := d.Registry.Find(ID(req.Payload.DeviceID))
	if !found {
		d.Logger.Warn("dropping request for unknown device", "deviceId", req.Payload.DeviceID)
		return nil, false
	}

	resp := envelope.NewResponse(req, d.Clock.Now())
	success := dev.HandleRequest(req.Payload.Action, req, resp)
	resp.SetSuccess(success)

	out, err := resp.Sign(func(payload []byte) string {
		return signing.Sign(d.Secret, payload)
	})
	if err != nil {
		d.Logger.Error("failed to sign response", "error", err)
		return nil, false
	}

	return out, true
}
