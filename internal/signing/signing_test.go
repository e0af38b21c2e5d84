package signing

import "testing"

func TestExtractPayload(t *testing.T) {
	env := []byte(`{"header":{"payloadVersion":2,"signatureVersion":1},"payload":{"action":"setPowerState","value":{"state":"On"}},"signature":{"HMAC":"abc"}}`)
	got, ok := ExtractPayload(env)
	if !ok {
		t.Fatal("expected markers to be found")
	}
	want := `{"action":"setPowerState","value":{"state":"On"}}`
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// TestExtractPayloadIgnoresEmbeddedMarker proves the extractor finds the
// top-level ,"signature" marker rather than stopping at a confusable
// substring inside a value.
func TestExtractPayloadIgnoresEmbeddedMarker(t *testing.T) {
	env := []byte(`{"header":{},"payload":{"note":"a,\"signature\" lookalike","n":1},"signature":{"HMAC":"abc"}}`)
	got, ok := ExtractPayload(env)
	if !ok {
		t.Fatal("expected markers to be found")
	}
	// Inside a JSON string the quote is escaped, so the look-alike reads
	// ,\"signature\" and never matches the literal ,"signature" marker.
	want := `{"note":"a,\"signature\" lookalike","n":1}`
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExtractPayloadMissingMarkers(t *testing.T) {
	if _, ok := ExtractPayload([]byte(`{"header":{},"signature":{}}`)); ok {
		t.Fatal("expected failure when payload marker is missing")
	}
	if _, ok := ExtractPayload([]byte(`{"payload":{"a":1}}`)); ok {
		t.Fatal("expected failure when signature marker is missing")
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	env := []byte(`{"header":{"payloadVersion":2,"signatureVersion":1},"payload":{"action":"setPowerState","deviceId":"aaaaaaaaaaaaaaaaaaaaaaaa"},"signature":{"HMAC":""}}`)
	payload, ok := ExtractPayload(env)
	if !ok {
		t.Fatal("extract failed")
	}
	sig := Sign("app-secret", payload)

	full := []byte(`{"header":{"payloadVersion":2,"signatureVersion":1},"payload":{"action":"setPowerState","deviceId":"aaaaaaaaaaaaaaaaaaaaaaaa"},"signature":{"HMAC":"` + sig + `"}}`)

	if !Verify("app-secret", full, sig) {
		t.Fatal("verify should succeed for an untampered envelope")
	}

	tampered := []byte(`{"header":{"payloadVersion":2,"signatureVersion":1},"payload":{"action":"setPowerStateX","deviceId":"aaaaaaaaaaaaaaaaaaaaaaaa"},"signature":{"HMAC":"` + sig + `"}}`)
	if Verify("app-secret", tampered, sig) {
		t.Fatal("verify must fail when the payload is mutated")
	}

	if Verify("wrong-secret", full, sig) {
		t.Fatal("verify must fail with the wrong secret")
	}
}
