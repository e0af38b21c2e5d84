// Package signing implements the envelope's HMAC-SHA256 signature: the
// canonical payload extraction both the signer and verifier need, plus
// the sign/verify calls themselves.
package signing

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

const (
	payloadMarker   = `"payload":`
	signatureMarker = `,"signature"`
)

// ExtractPayload returns the exact byte slice of env lying between the
// literal "payload": marker and the following ,"signature" marker — the
// canonical payload used as HMAC input. ok is false if either marker is
// missing, which callers must treat as a verification failure, never as
// an empty payload to sign or compare against.
func ExtractPayload(env []byte) (payload []byte, ok bool) {
	start := bytes.Index(env, []byte(payloadMarker))
	if start < 0 {
		return nil, false
	}
	start += len(payloadMarker)

	rest := env[start:]
	end := bytes.Index(rest, []byte(signatureMarker))
	if end < 0 {
		return nil, false
	}

	return rest[:end], true
}

// Sign computes base64(HMAC-SHA256(secret, payload)).
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify extracts the canonical payload from env and compares its HMAC
// against want in constant time. It fails closed: a missing payload or
// signature marker, or any mismatch, returns false.
func Verify(secret string, env []byte, want string) bool {
	payload, ok := ExtractPayload(env)
	if !ok {
		return false
	}
	got := Sign(secret, payload)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
