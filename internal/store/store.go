package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/marco-gallegos/careless-whisper-client/internal/domain/recording"
)

// DefaultPath is the database file created next to the program when no
// --db-path is given.
const DefaultPath = "transcriptions.db"

// Store owns the transcriptions database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Init creates the schema if it does not exist yet. Safe to call before
// every write.
func (s *Store) Init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS transcriptions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			transcription TEXT NOT NULL,
			language TEXT,
			processing_time REAL,
			model_used TEXT,
			source_file TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS segments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			transcription_id INTEGER NOT NULL,
			segment_id INTEGER NOT NULL,
			start_time REAL NOT NULL,
			end_time REAL NOT NULL,
			text TEXT NOT NULL,
			FOREIGN KEY (transcription_id) REFERENCES transcriptions (id)
		);
	`)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Save inserts a transcription and its segments in one transaction and
// returns the generated transcription id. A segment failure rolls the
// whole record back.
func (s *Store) Save(t *recording.Transcription, sourceFile string) (int64, error) {
	if err := s.Init(); err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO transcriptions (transcription, language, processing_time, model_used, source_file)
		VALUES (?, ?, ?, ?, ?)
	`, t.Text, nullString(t.Language), t.ProcessingTime, nullString(t.ModelUsed), nullString(sourceFile))
	if err != nil {
		return 0, fmt.Errorf("insert transcription: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transcription id: %w", err)
	}

	for _, seg := range t.Segments {
		_, err := tx.Exec(`
			INSERT INTO segments (transcription_id, segment_id, start_time, end_time, text)
			VALUES (?, ?, ?, ?, ?)
		`, id, seg.ID, seg.Start, seg.End, seg.Text)
		if err != nil {
			return 0, fmt.Errorf("insert segment %d: %w", seg.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// List returns up to limit transcriptions, newest first.
func (s *Store) List(limit int) ([]Transcription, error) {
	rows, err := s.db.Query(`
		SELECT id, transcription, language, processing_time, model_used, source_file, created_at
		FROM transcriptions
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query transcriptions: %w", err)
	}
	defer rows.Close()

	var out []Transcription
	for rows.Next() {
		t, err := scanTranscription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Get returns one transcription with its segments ordered by segment id.
// A missing id yields (nil, nil, nil).
func (s *Store) Get(id int64) (*Transcription, []Segment, error) {
	rows, err := s.db.Query(`
		SELECT id, transcription, language, processing_time, model_used, source_file, created_at
		FROM transcriptions
		WHERE id = ?
	`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("query transcription: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil, rows.Err()
	}
	t, err := scanTranscription(rows)
	if err != nil {
		return nil, nil, err
	}

	segRows, err := s.db.Query(`
		SELECT transcription_id, segment_id, start_time, end_time, text
		FROM segments
		WHERE transcription_id = ?
		ORDER BY segment_id ASC
	`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("query segments: %w", err)
	}
	defer segRows.Close()

	var segments []Segment
	for segRows.Next() {
		var seg Segment
		if err := segRows.Scan(&seg.TranscriptionID, &seg.SegmentID, &seg.StartTime, &seg.EndTime, &seg.Text); err != nil {
			return nil, nil, fmt.Errorf("scan segment: %w", err)
		}
		segments = append(segments, seg)
	}
	return t, segments, segRows.Err()
}

func scanTranscription(rows *sql.Rows) (*Transcription, error) {
	var t Transcription
	var language, modelUsed, sourceFile, createdAt sql.NullString
	var processingTime sql.NullFloat64
	if err := rows.Scan(&t.ID, &t.Text, &language, &processingTime, &modelUsed, &sourceFile, &createdAt); err != nil {
		return nil, fmt.Errorf("scan transcription: %w", err)
	}
	t.Language = language.String
	t.ProcessingTime = processingTime.Float64
	t.ModelUsed = modelUsed.String
	t.SourceFile = sourceFile.String
	if createdAt.Valid {
		t.CreatedAt = parseTimestamp(createdAt.String)
	}
	return &t, nil
}

// parseTimestamp reads the formats SQLite produces for CURRENT_TIMESTAMP.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04:05.999999999", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
