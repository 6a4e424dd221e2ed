// Package store persists transcriptions and their segments in SQLite.
package store

import "time"

// Transcription is one stored transcription record.
type Transcription struct {
	ID             int64
	Text           string
	Language       string
	ProcessingTime float64
	ModelUsed      string
	SourceFile     string
	CreatedAt      time.Time
}

// Segment is one timed slice belonging to a transcription.
type Segment struct {
	TranscriptionID int64
	SegmentID       int
	StartTime       float64
	EndTime         float64
	Text            string
}
