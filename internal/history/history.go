// Package history provides SQLite-based persistence for refresh run
// records.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

const currentSchemaVersion = 1

// Store is the SQLite-backed run history.
type Store struct {
	db   *sql.DB
	path string
}

// Run is one recorded refresh pass.
type Run struct {
	ID          int64     `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	DurationMs  int64     `json:"duration_ms"`
	DryRun      bool      `json:"dry_run"`
	CronHealthy int       `json:"cron_healthy"`
	CronTotal   int       `json:"cron_total"`
	TaskCount   int       `json:"task_count"`
	AgentCount  int       `json:"agent_count"`
	Summary     string    `json:"summary"`
}

// Open opens or creates a SQLite database at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate applies the schema if not already at the current version.
func (s *Store) migrate() error {
	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&name)

	if err == sql.ErrNoRows {
		if _, err := s.db.Exec(schemaSQL); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
		_, err = s.db.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion)
		return err
	}
	if err != nil {
		return fmt.Errorf("checking schema version: %w", err)
	}

	var version int
	if err := s.db.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version < currentSchemaVersion {
		return fmt.Errorf("schema version %d is older than %d, migration not yet implemented", version, currentSchemaVersion)
	}

	return nil
}

// RecordRun inserts one run record.
func (s *Store) RecordRun(r *Run) error {
	result, err := s.db.Exec(
		`INSERT INTO runs (duration_ms, dry_run, cron_healthy, cron_total, task_count, agent_count, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.DurationMs, r.DryRun, r.CronHealthy, r.CronTotal, r.TaskCount, r.AgentCount, r.Summary,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	r.ID, _ = result.LastInsertId()
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, started_at, duration_ms, dry_run, cron_healthy, cron_total, task_count, agent_count, summary
		 FROM runs ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r := &Run{}
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.DurationMs, &r.DryRun,
			&r.CronHealthy, &r.CronTotal, &r.TaskCount, &r.AgentCount, &r.Summary); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
