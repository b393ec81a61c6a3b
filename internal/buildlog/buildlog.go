// Package buildlog persists build history in a local SQLite database so
// `sitectl history` can show past outcomes.
package buildlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one completed (or failed) build.
type Record struct {
	ID        int64
	BuildID   string
	StartedAt time.Time
	Duration  time.Duration
	Outcome   string
	Pages     int
	Assets    int
	SeatMaps  int
	Errors    int
	Warnings  int
	// StageDurations maps stage name to its duration.
	StageDurations map[string]time.Duration
}

// Store persists build records.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (and if needed creates) the build log database.
// Use ":memory:" for an ephemeral store.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open build log database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		build_id TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		pages INTEGER NOT NULL,
		assets INTEGER NOT NULL,
		seat_maps INTEGER NOT NULL,
		errors INTEGER NOT NULL,
		warnings INTEGER NOT NULL,
		stage_durations TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_builds_build_id ON builds(build_id);
	CREATE INDEX IF NOT EXISTS idx_builds_started_at ON builds(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append stores one build record.
func (s *Store) Append(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stagesJSON []byte
	if rec.StageDurations != nil {
		ms := make(map[string]int64, len(rec.StageDurations))
		for stage, d := range rec.StageDurations {
			ms[stage] = d.Milliseconds()
		}
		var err error
		stagesJSON, err = json.Marshal(ms)
		if err != nil {
			return fmt.Errorf("marshal stage durations: %w", err)
		}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO builds (build_id, started_at, duration_ms, outcome, pages, assets, seat_maps, errors, warnings, stage_durations)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.BuildID, rec.StartedAt.Unix(), rec.Duration.Milliseconds(), rec.Outcome,
		rec.Pages, rec.Assets, rec.SeatMaps, rec.Errors, rec.Warnings, stagesJSON)
	if err != nil {
		return fmt.Errorf("insert build record: %w", err)
	}
	return nil
}

// Recent returns the most recent records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, build_id, started_at, duration_ms, outcome, pages, assets, seat_maps, errors, warnings, stage_durations
		 FROM builds ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query build records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return scanRecords(rows)
}

// Get returns the record for a specific build ID.
func (s *Store) Get(ctx context.Context, buildID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, build_id, started_at, duration_ms, outcome, pages, assets, seat_maps, errors, warnings, stage_durations
		 FROM builds WHERE build_id = ? ORDER BY id DESC LIMIT 1`, buildID)
	if err != nil {
		return nil, fmt.Errorf("query build record: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, sql.ErrNoRows
	}
	return &records[0], nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var (
			rec        Record
			startedAt  int64
			durationMS int64
			stagesJSON sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.BuildID, &startedAt, &durationMS, &rec.Outcome,
			&rec.Pages, &rec.Assets, &rec.SeatMaps, &rec.Errors, &rec.Warnings, &stagesJSON); err != nil {
			return nil, fmt.Errorf("scan build record: %w", err)
		}
		rec.StartedAt = time.Unix(startedAt, 0)
		rec.Duration = time.Duration(durationMS) * time.Millisecond

		if stagesJSON.Valid && stagesJSON.String != "" {
			ms := map[string]int64{}
			if err := json.Unmarshal([]byte(stagesJSON.String), &ms); err != nil {
				return nil, fmt.Errorf("unmarshal stage durations: %w", err)
			}
			rec.StageDurations = make(map[string]time.Duration, len(ms))
			for stage, d := range ms {
				rec.StageDurations[stage] = time.Duration(d) * time.Millisecond
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
