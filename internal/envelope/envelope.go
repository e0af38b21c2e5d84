// Package envelope defines the wire message format shared by requests,
// responses, and events, and the helpers that build and parse it.
//
// Every envelope serializes as a JSON object with exactly three top-level
// members in the fixed order header, payload, signature, and no
// insignificant whitespace — Go's encoding/json already guarantees both:
// struct field order drives object key order, and json.Marshal never
// emits formatting whitespace. That fixed order is what lets the signer
// locate the canonical payload slice by literal marker search instead of
// re-parsing the JSON.
package envelope

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sinricpro/pico-sdk/internal/signing"
)

const (
	PayloadVersion   = 2
	SignatureVersion = 1
)

// Message types.
const (
	TypeRequest  = "request"
	TypeResponse = "response"
	TypeEvent    = "event"
)

// Event causes.
const (
	CausePhysicalInteraction = "PHYSICAL_INTERACTION"
	CausePeriodicPoll        = "PERIODIC_POLL"
	CauseAlert               = "ALERT"
)

type Header struct {
	PayloadVersion   int `json:"payloadVersion"`
	SignatureVersion int `json:"signatureVersion"`
}

type Cause struct {
	Type string `json:"type"`
}

// Payload is the superset of fields across request/response/event
// messages; presence of each field depends on Type.
type Payload struct {
	Type       string          `json:"type"`
	Action     string          `json:"action,omitempty"`
	DeviceID   string          `json:"deviceId,omitempty"`
	ClientID   string          `json:"clientId,omitempty"`
	ReplyToken string          `json:"replyToken,omitempty"`
	Message    string          `json:"message,omitempty"`
	CreatedAt  int64           `json:"createdAt,omitempty"`
	Success    *bool           `json:"success,omitempty"`
	Cause      *Cause          `json:"cause,omitempty"`
	Value      json.RawMessage `json:"value,omitempty"`
}

type Signature struct {
	HMAC string `json:"HMAC"`
}

// Envelope is the full wire message.
type Envelope struct {
	Header    Header    `json:"header"`
	Payload   Payload   `json:"payload"`
	Signature Signature `json:"signature"`
}

// New returns an Envelope with the fixed header and an empty signature,
// ready for its Payload to be filled in.
func New() *Envelope {
	return &Envelope{
		Header: Header{PayloadVersion: PayloadVersion, SignatureVersion: SignatureVersion},
	}
}

// NewResponse builds a response envelope pre-populated from req per the
// dispatcher construction rules: same action/clientId/deviceId/replyToken,
// a freshly generated message UUID, createdAt set to now, type "response",
// success defaulted to false, and an empty value object.
func NewResponse(req *Envelope, now time.Time) *Envelope {
	resp := New()
	resp.Payload = Payload{
		Type:       TypeResponse,
		Action:     req.Payload.Action,
		ClientID:   req.Payload.ClientID,
		DeviceID:   req.Payload.DeviceID,
		ReplyToken: req.Payload.ReplyToken,
		Message:    uuid.NewString(),
		CreatedAt:  now.Unix(),
		Success:    boolPtr(false),
		Value:      json.RawMessage(`{}`),
	}
	return resp
}

// NewEvent builds an event envelope for deviceID/action with the given
// cause (defaulting to PHYSICAL_INTERACTION) and value.
func NewEvent(deviceID, action string, cause string, value json.RawMessage, now time.Time) *Envelope {
	if cause == "" {
		cause = CausePhysicalInteraction
	}
	if value == nil {
		value = json.RawMessage(`{}`)
	}
	ev := New()
	ev.Payload = Payload{
		Type:       TypeEvent,
		Action:     action,
		DeviceID:   deviceID,
		ReplyToken: uuid.NewString(),
		CreatedAt:  now.Unix(),
		Cause:      &Cause{Type: cause},
		Value:      value,
	}
	return ev
}

// SetSuccess overwrites the response's success field.
func (e *Envelope) SetSuccess(ok bool) {
	e.Payload.Success = boolPtr(ok)
}

// SetValue overwrites the payload's value with the marshaled v.
func (e *Envelope) SetValue(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("envelope: marshal value: %w", err)
	}
	e.Payload.Value = b
	return nil
}

// Sign computes and stores the HMAC signature over the canonical payload
// slice of the envelope's serialized form, returning the full serialized
// bytes signed.
func (e *Envelope) Sign(sign func(payload []byte) string) ([]byte, error) {
	// The payload slice does not depend on the HMAC value, so marshaling e
	// with whatever signature it currently holds yields the same payload
	// bytes the final Marshal below emits.
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("envelope: marshal: %w", err)
	}
	payload, ok := signing.ExtractPayload(raw)
	if !ok {
		return nil, fmt.Errorf("envelope: could not locate canonical payload slice")
	}
	e.Signature.HMAC = sign(payload)
	return json.Marshal(e)
}

// Parse decodes a raw envelope. It does not verify the signature; callers
// must call a verifier against raw before trusting Payload contents.
func Parse(raw []byte) (*Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("envelope: parse: %w", err)
	}
	return &e, nil
}

func boolPtr(b bool) *bool { return &b }
