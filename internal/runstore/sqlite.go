// Package runstore keeps a local append-only ledger of step runs in SQLite,
// so operators can audit publish decisions without the remote catalog.
package runstore

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded step run.
type Run struct {
	ID         string
	JobName    string
	Product    string
	Kind       string
	Outcome    string
	Rejected   bool
	Forced     bool
	Duration   time.Duration
	OccurredAt time.Time
}

// Store is the run ledger.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates a new SQLite-backed run store.
// Use ":memory:" for in-memory storage, or a file path for persistence.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
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
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		job_name TEXT NOT NULL,
		product TEXT NOT NULL,
		kind TEXT NOT NULL,
		outcome TEXT NOT NULL,
		rejected INTEGER NOT NULL,
		forced INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		occurred_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_product ON runs(product);
	CREATE INDEX IF NOT EXISTS idx_runs_occurred_at ON runs(occurred_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records a completed run.
func (s *Store) Append(ctx context.Context, r Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	occurred := r.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, job_name, product, kind, outcome, rejected, forced, duration_ms, occurred_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		r.ID, r.JobName, r.Product, r.Kind, r.Outcome, boolToInt(r.Rejected), boolToInt(r.Forced),
		r.Duration.Milliseconds(), occurred.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, job_name, product, kind, outcome, rejected, forced, duration_ms, occurred_at FROM runs ORDER BY occurred_at DESC, id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// ByProduct returns all runs for a product, newest first.
func (s *Store) ByProduct(ctx context.Context, product string) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, job_name, product, kind, outcome, rejected, forced, duration_ms, occurred_at FROM runs WHERE product = ? ORDER BY occurred_at DESC, id",
		product,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var rejected, forced int
		var durationMS, occurredUnix int64
		if err := rows.Scan(&r.ID, &r.JobName, &r.Product, &r.Kind, &r.Outcome, &rejected, &forced, &durationMS, &occurredUnix); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Rejected = rejected != 0
		r.Forced = forced != 0
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.OccurredAt = time.Unix(occurredUnix, 0)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
