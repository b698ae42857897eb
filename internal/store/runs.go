package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gpd-sourcing/supplier-screen/internal/engine"
)

// RunSummary describes one flag pass for audit.
type RunSummary struct {
	RunID       uuid.UUID  `json:"run_id"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	QueueRows   int        `json:"queue_rows"`
	FlaggedRows int        `json:"flagged_rows"`
}

// BeginRun records the start of a flag pass and returns its identifier.
func (s *Store) BeginRun(queueRows int) (uuid.UUID, error) {
	runID := uuid.New()
	_, err := s.db.Exec(`
		INSERT INTO match_run (run_id, queue_rows)
		VALUES ($1, $2)
	`, runID, queueRows)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin run: %w", err)
	}
	return runID, nil
}

// FinishRun stamps the run as complete with its flagged-row count.
func (s *Store) FinishRun(runID uuid.UUID, flaggedRows int) error {
	_, err := s.db.Exec(`
		UPDATE match_run
		SET finished_at = NOW(), flagged_rows = $2
		WHERE run_id = $1
	`, runID, flaggedRows)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// SaveMatchResult records one flagged queue row: which exclusion entry it
// matched, which predicates fired, and whether the match looks advisory.
func (s *Store) SaveMatchResult(runID uuid.UUID, queueID int64, result *engine.MatchResult, advisory bool) error {
	flags, err := json.Marshal(result.Flags)
	if err != nil {
		return fmt.Errorf("failed to marshal flags: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO match_result (run_id, queue_id, matched_name, matched_email, matched_website, flags, possible_false_positive)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, runID, queueID, result.Matched.Name, result.Matched.Email, result.Matched.Website, flags, advisory)
	if err != nil {
		return fmt.Errorf("failed to save match result: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunSummary, error) {
	rows, err := s.db.Query(`
		SELECT run_id, started_at, finished_at, queue_rows, flagged_rows
		FROM match_run
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		var finished sql.NullTime
		if err := rows.Scan(&run.RunID, &run.StartedAt, &finished, &run.QueueRows, &run.FlaggedRows); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			run.FinishedAt = &t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// FlaggedResult is a flagged queue row joined with its latest match result.
type FlaggedResult struct {
	QueueID        int64           `json:"queue_id"`
	Country        string          `json:"country"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Website        string          `json:"website"`
	MatchedName    string          `json:"matched_name"`
	MatchedEmail   string          `json:"matched_email"`
	MatchedWebsite string          `json:"matched_website"`
	Flags          map[string]bool `json:"flags"`
	Advisory       bool            `json:"possible_false_positive"`
}

// FlaggedResults lists flagged queue rows with their most recent match.
func (s *Store) FlaggedResults() ([]FlaggedResult, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT ON (q.queue_id)
			q.queue_id, q.country, q.name, q.email, q.website,
			r.matched_name, r.matched_email, r.matched_website,
			r.flags, r.possible_false_positive
		FROM queue_entry q
		JOIN match_result r ON r.queue_id = q.queue_id
		WHERE q.flagged
		ORDER BY q.queue_id, r.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load flagged results: %w", err)
	}
	defer rows.Close()

	var results []FlaggedResult
	for rows.Next() {
		var res FlaggedResult
		var flags []byte
		if err := rows.Scan(&res.QueueID, &res.Country, &res.Name, &res.Email, &res.Website,
			&res.MatchedName, &res.MatchedEmail, &res.MatchedWebsite, &flags, &res.Advisory); err != nil {
			return nil, fmt.Errorf("failed to scan flagged result: %w", err)
		}
		if err := json.Unmarshal(flags, &res.Flags); err != nil {
			return nil, fmt.Errorf("failed to decode flags: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// Stats holds the headline counts for the review API.
type Stats struct {
	QueueTotal     int         `json:"queue_total"`
	FlaggedTotal   int         `json:"flagged_total"`
	ExclusionTotal int         `json:"exclusion_total"`
	LastRun        *RunSummary `json:"last_run,omitempty"`
}

// LoadStats gathers the headline counts.
func (s *Store) LoadStats() (*Stats, error) {
	var stats Stats
	err := s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM queue_entry),
			(SELECT COUNT(*) FROM queue_entry WHERE flagged),
			(SELECT COUNT(*) FROM exclusion_entry)
	`).Scan(&stats.QueueTotal, &stats.FlaggedTotal, &stats.ExclusionTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	runs, err := s.ListRuns(1)
	if err != nil {
		return nil, err
	}
	if len(runs) > 0 {
		stats.LastRun = &runs[0]
	}

	return &stats, nil
}
