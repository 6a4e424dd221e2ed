package recording

import (
	"encoding/json"
	"fmt"
)

// Transcription matches the transcription API response body.
type Transcription struct {
	Status         string              `json:"status"`
	Text           string              `json:"transcription"`
	Language       string              `json:"language"`
	ProcessingTime float64             `json:"processing_time"`
	ModelUsed      string              `json:"model_used"`
	Segments       []TranscriptSegment `json:"segments"`
}

// TranscriptSegment is one timed slice of the transcription.
type TranscriptSegment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// ParseTranscription decodes an API response body and rejects responses
// the API itself marked as failed.
func ParseTranscription(body []byte) (*Transcription, error) {
	var t Transcription
	if err := json.Unmarshal(body, &t); err != nil {
		return nil, fmt.Errorf("parsing API response: %w", err)
	}
	if t.Status != "success" {
		return nil, fmt.Errorf("API reported an error: %s", string(body))
	}
	return &t, nil
}
