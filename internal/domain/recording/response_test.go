package recording

import "testing"

func TestParseTranscription(t *testing.T) {
	body := []byte(`{
		"status": "success",
		"transcription": "hello world",
		"language": "en",
		"processing_time": 2.5,
		"model_used": "small",
		"segments": [
			{"id": 0, "start": 0.0, "end": 1.2, "text": "hello"},
			{"id": 1, "start": 1.2, "end": 2.0, "text": "world"}
		]
	}`)

	got, err := ParseTranscription(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Text != "hello world" {
		t.Errorf("text = %q", got.Text)
	}
	if got.Language != "en" {
		t.Errorf("language = %q", got.Language)
	}
	if got.ProcessingTime != 2.5 {
		t.Errorf("processingTime = %v", got.ProcessingTime)
	}
	if len(got.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(got.Segments))
	}
	if got.Segments[1].Start != 1.2 || got.Segments[1].End != 2.0 {
		t.Errorf("segment 1 = %+v", got.Segments[1])
	}
}

func TestParseTranscriptionFailedStatus(t *testing.T) {
	body := []byte(`{"status": "error", "message": "unsupported codec"}`)
	if _, err := ParseTranscription(body); err == nil {
		t.Fatal("expected error for non-success status")
	}
}

func TestParseTranscriptionInvalidJSON(t *testing.T) {
	if _, err := ParseTranscription([]byte("<html>nope</html>")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
