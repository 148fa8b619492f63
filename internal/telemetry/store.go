// Package telemetry records "interesting" search events — broadened searches
// and low result counts — for later inspection. The discovery engine itself
// stays stateless: recording happens downstream of it, deduplicated by
// telemetry ID and FIFO-capped so the store never grows unbounded.
package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Event kinds.
const (
	KindBroadenedSearch = "broadened_search"
	KindLowResultCount  = "low_result_count"
)

// DefaultCap is the FIFO ceiling on stored events.
const DefaultCap = 500

// Event is one recorded search outcome.
type Event struct {
	TelemetryID    string `json:"telemetryId"`
	ConversationID string `json:"conversationId,omitempty"`
	Kind           string `json:"kind"`
	Query          string `json:"query,omitempty"`
	ResultCount    int    `json:"resultCount"`
	RecordedAt     string `json:"recordedAt"`
}

// Recorder persists events. Implementations dedupe on TelemetryID and drop
// the oldest rows once the FIFO cap is reached.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
	List(ctx context.Context, limit int) ([]Event, error)
	Close() error
}

// SQLiteStore is the default single-file Recorder.
type SQLiteStore struct {
	db  *sql.DB
	cap int
}

// NewSQLiteStore opens (or creates) the event database at path.
func NewSQLiteStore(path string, fifoCap int) (*SQLiteStore, error) {
	if fifoCap <= 0 {
		fifoCap = DefaultCap
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("telemetry: mkdir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if _, err := db.Exec(schemaSQLite); err != nil {
		db.Close()
		return nil, fmt.Errorf("telemetry: init schema: %w", err)
	}
	return &SQLiteStore{db: db, cap: fifoCap}, nil
}

const schemaSQLite = `CREATE TABLE IF NOT EXISTS search_events (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	telemetry_id    TEXT NOT NULL UNIQUE,
	conversation_id TEXT,
	kind            TEXT NOT NULL,
	query           TEXT,
	result_count    INTEGER NOT NULL,
	recorded_at     TEXT NOT NULL
)`

// Record inserts ev unless its telemetry ID was already recorded, then trims
// the oldest rows past the cap.
func (s *SQLiteStore) Record(ctx context.Context, ev Event) error {
	if ev.TelemetryID == "" {
		return errors.New("telemetry: event has no telemetry ID")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO search_events
		 (telemetry_id, conversation_id, kind, query, result_count, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ev.TelemetryID, ev.ConversationID, ev.Kind, ev.Query, ev.ResultCount, ev.RecordedAt)
	if err != nil {
		return fmt.Errorf("telemetry: insert: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`DELETE FROM search_events WHERE id NOT IN
		 (SELECT id FROM search_events ORDER BY id DESC LIMIT ?)`, s.cap)
	if err != nil {
		return fmt.Errorf("telemetry: trim: %w", err)
	}
	return nil
}

// List returns the most recent events, newest first.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 || limit > s.cap {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT telemetry_id, conversation_id, kind, query, result_count, recorded_at
		 FROM search_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("telemetry: list: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		var convID sql.NullString
		var query sql.NullString
		if err := rows.Scan(&ev.TelemetryID, &convID, &ev.Kind, &query, &ev.ResultCount, &ev.RecordedAt); err != nil {
			return nil, fmt.Errorf("telemetry: scan: %w", err)
		}
		ev.ConversationID = convID.String
		ev.Query = query.String
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
