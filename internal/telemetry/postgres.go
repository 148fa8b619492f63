package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the shared-deployment Recorder, used when DATABASE_URL is
// configured. Same dedupe and FIFO semantics as the SQLite store.
type PostgresStore struct {
	pool *pgxpool.Pool
	cap  int
}

const schemaPostgres = `CREATE TABLE IF NOT EXISTS search_events (
	id              BIGSERIAL PRIMARY KEY,
	telemetry_id    TEXT NOT NULL UNIQUE,
	conversation_id TEXT,
	kind            TEXT NOT NULL,
	query           TEXT,
	result_count    INTEGER NOT NULL,
	recorded_at     TEXT NOT NULL
)`

// NewPostgresStore connects to databaseURL and ensures the events table.
func NewPostgresStore(ctx context.Context, databaseURL string, fifoCap int) (*PostgresStore, error) {
	if fifoCap <= 0 {
		fifoCap = DefaultCap
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("telemetry: connect: %w", err)
	}
	if _, err := pool.Exec(ctx, schemaPostgres); err != nil {
		pool.Close()
		return nil, fmt.Errorf("telemetry: init schema: %w", err)
	}
	return &PostgresStore{pool: pool, cap: fifoCap}, nil
}

func (s *PostgresStore) Record(ctx context.Context, ev Event) error {
	if ev.TelemetryID == "" {
		return errors.New("telemetry: event has no telemetry ID")
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO search_events
		 (telemetry_id, conversation_id, kind, query, result_count, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (telemetry_id) DO NOTHING`,
		ev.TelemetryID, ev.ConversationID, ev.Kind, ev.Query, ev.ResultCount, ev.RecordedAt)
	if err != nil {
		return fmt.Errorf("telemetry: insert: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`DELETE FROM search_events WHERE id NOT IN
		 (SELECT id FROM search_events ORDER BY id DESC LIMIT $1)`, s.cap)
	if err != nil {
		return fmt.Errorf("telemetry: trim: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 || limit > s.cap {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT telemetry_id, COALESCE(conversation_id, ''), kind, COALESCE(query, ''), result_count, recorded_at
		 FROM search_events ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("telemetry: list: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.TelemetryID, &ev.ConversationID, &ev.Kind, &ev.Query, &ev.ResultCount, &ev.RecordedAt); err != nil {
			return nil, fmt.Errorf("telemetry: scan: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
