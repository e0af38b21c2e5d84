package envelope

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sinricpro/pico-sdk/internal/signing"
)

func TestKeyOrderAndNoWhitespace(t *testing.T) {
	req := New()
	req.Payload = Payload{Type: TypeRequest, Action: "setPowerState", DeviceID: "aaaaaaaaaaaaaaaaaaaaaaaa"}
	raw, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	s := string(raw)
	hi := indexOf(s, `"header"`)
	pi := indexOf(s, `"payload"`)
	si := indexOf(s, `"signature"`)
	if !(hi < pi && pi < si) {
		t.Fatalf("expected header < payload < signature key order, got positions %d,%d,%d in %s", hi, pi, si, s)
	}
	for _, c := range s {
		if c == '\n' || c == '\t' {
			t.Fatalf("serialized envelope must not contain insignificant whitespace: %s", s)
		}
	}
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func TestSignRoundTrip(t *testing.T) {
	now := time.Unix(1700000000, 0)
	req := New()
	req.Payload = Payload{
		Type:       TypeRequest,
		Action:     "setPowerState",
		DeviceID:   "aaaaaaaaaaaaaaaaaaaaaaaa",
		ReplyToken: "rt-1",
	}
	_ = req.SetValue(map[string]string{"state": "On"})

	resp := NewResponse(req, now)
	resp.SetSuccess(true)
	_ = resp.SetValue(map[string]string{"state": "On"})

	secret := "app-secret"
	raw, err := resp.Sign(func(p []byte) string { return signing.Sign(secret, p) })
	if err != nil {
		t.Fatal(err)
	}

	if !signing.Verify(secret, raw, resp.Signature.HMAC) {
		t.Fatal("expected verify to succeed for freshly signed envelope")
	}

	mutated := append([]byte(nil), raw...)
	mutated[len(mutated)/2] ^= 0xFF
	if signing.Verify(secret, mutated, resp.Signature.HMAC) {
		t.Fatal("verify must fail after mutating a byte of the envelope")
	}
}

func TestNewResponseCopiesCorrelationFields(t *testing.T) {
	req := New()
	req.Payload = Payload{
		Type:       TypeRequest,
		Action:     "setPowerState",
		ClientID:   "client-1",
		DeviceID:   "aaaaaaaaaaaaaaaaaaaaaaaa",
		ReplyToken: "rt-9",
	}
	resp := NewResponse(req, time.Now())
	if resp.Payload.Action != "setPowerState" ||
		resp.Payload.ClientID != "client-1" ||
		resp.Payload.DeviceID != "aaaaaaaaaaaaaaaaaaaaaaaa" ||
		resp.Payload.ReplyToken != "rt-9" ||
		resp.Payload.Type != TypeResponse ||
		resp.Payload.Success == nil || *resp.Payload.Success != false {
		t.Fatalf("unexpected response payload: %+v", resp.Payload)
	}
	if resp.Payload.Message == "" {
		t.Fatal("expected a generated message UUID")
	}
}
