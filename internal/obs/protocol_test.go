package obs

import (
	"encoding/base64"
	"encoding/json"
	"testing"
)

func TestAuthResponseDeterministic(t *testing.T) {
	a := authResponse("secret", "salt", "challenge")
	b := authResponse("secret", "salt", "challenge")
	if a != b {
		t.Errorf("same inputs gave %q and %q", a, b)
	}

	if other := authResponse("wrong", "salt", "challenge"); other == a {
		t.Error("different passwords produced the same auth string")
	}
	if other := authResponse("secret", "salt2", "challenge"); other == a {
		t.Error("different salts produced the same auth string")
	}
}

func TestAuthResponseIsBase64SHA256(t *testing.T) {
	out := authResponse("pw", "s", "c")
	raw, err := base64.StdEncoding.DecodeString(out)
	if err != nil {
		t.Fatalf("not valid base64: %v", err)
	}
	if len(raw) != 32 {
		t.Errorf("decoded length = %d, want 32 (sha256)", len(raw))
	}
}

func TestMarshalEnvelope(t *testing.T) {
	frame, err := marshalEnvelope(opRequest, requestData{
		RequestType: "StartRecord",
		RequestID:   "1",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var env envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Op != opRequest {
		t.Errorf("op = %d, want %d", env.Op, opRequest)
	}

	var req requestData
	if err := json.Unmarshal(env.D, &req); err != nil {
		t.Fatalf("unmarshal d: %v", err)
	}
	if req.RequestType != "StartRecord" {
		t.Errorf("requestType = %q, want StartRecord", req.RequestType)
	}
	if req.RequestID != "1" {
		t.Errorf("requestId = %q, want 1", req.RequestID)
	}
}

func TestDecodeRecordStateChanged(t *testing.T) {
	payload := []byte(`{"outputActive":false,"outputState":"OBS_WEBSOCKET_OUTPUT_STOPPED","outputPath":"/tmp/a.wav"}`)

	var ev RecordStateChanged
	if err := json.Unmarshal(payload, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !ev.Stopped() {
		t.Error("Stopped() = false for OBS_WEBSOCKET_OUTPUT_STOPPED")
	}
	if ev.OutputPath != "/tmp/a.wav" {
		t.Errorf("outputPath = %q, want /tmp/a.wav", ev.OutputPath)
	}
}

func TestStoppedIgnoresIntermediateStates(t *testing.T) {
	for _, state := range []string{"OBS_WEBSOCKET_OUTPUT_STOPPING", "OBS_WEBSOCKET_OUTPUT_STARTED", ""} {
		ev := RecordStateChanged{OutputState: state}
		if ev.Stopped() {
			t.Errorf("Stopped() = true for state %q", state)
		}
	}
}

func TestDecodeHelloWithAuth(t *testing.T) {
	data := []byte(`{"obsWebSocketVersion":"5.3.4","rpcVersion":1,"authentication":{"challenge":"ch","salt":"sa"}}`)

	var hello helloData
	if err := json.Unmarshal(data, &hello); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if hello.Authentication == nil {
		t.Fatal("authentication section missing")
	}
	if hello.Authentication.Challenge != "ch" || hello.Authentication.Salt != "sa" {
		t.Errorf("challenge/salt = %q/%q, want ch/sa", hello.Authentication.Challenge, hello.Authentication.Salt)
	}
}

func TestDecodeHelloWithoutAuth(t *testing.T) {
	data := []byte(`{"obsWebSocketVersion":"5.3.4","rpcVersion":1}`)

	var hello helloData
	if err := json.Unmarshal(data, &hello); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if hello.Authentication != nil {
		t.Error("authentication should be nil when the server omits it")
	}
}
