// Package store persists the screening queue, the exclusion list and the
// audit trail of match runs in PostgreSQL.
package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
)

// Store wraps the database connection.
type Store struct {
	db *sql.DB
}

// New opens a connection pool against the given URL and verifies it.
func New(databaseURL string, maxConns int) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns / 2)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the connection is still alive.
func (s *Store) Ping() error {
	return s.db.Ping()
}

// EnsureSchema creates the screening tables when they do not exist yet.
func (s *Store) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS queue_entry (
			queue_id   BIGSERIAL PRIMARY KEY,
			country    TEXT NOT NULL DEFAULT '',
			name       TEXT NOT NULL DEFAULT '',
			email      TEXT NOT NULL DEFAULT '',
			website    TEXT NOT NULL DEFAULT '',
			flagged    BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS exclusion_entry (
			exclusion_id BIGSERIAL PRIMARY KEY,
			name         TEXT NOT NULL DEFAULT '',
			email        TEXT NOT NULL DEFAULT '',
			website      TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS match_run (
			run_id       UUID PRIMARY KEY,
			started_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			finished_at  TIMESTAMPTZ,
			queue_rows   INTEGER NOT NULL DEFAULT 0,
			flagged_rows INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS match_result (
			result_id               BIGSERIAL PRIMARY KEY,
			run_id                  UUID NOT NULL REFERENCES match_run (run_id),
			queue_id                BIGINT NOT NULL REFERENCES queue_entry (queue_id),
			matched_name            TEXT NOT NULL DEFAULT '',
			matched_email           TEXT NOT NULL DEFAULT '',
			matched_website         TEXT NOT NULL DEFAULT '',
			flags                   JSONB NOT NULL DEFAULT '{}',
			possible_false_positive BOOLEAN NOT NULL DEFAULT FALSE,
			created_at              TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_match_result_run ON match_result (run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_match_result_queue ON match_result (queue_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// trim mirrors the spreadsheet-era behaviour of stripping cell values on
// read, so stray whitespace in stored rows never reaches the engine.
func trim(v string) string {
	return strings.TrimSpace(v)
}
