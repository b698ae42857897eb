package store

import (
	"fmt"

	"github.com/lib/pq"

	"github.com/gpd-sourcing/supplier-screen/internal/engine"
	"github.com/gpd-sourcing/supplier-screen/internal/intake"
)

// QueueRow is one queue entry with its database identity.
type QueueRow struct {
	ID      int64
	Country string
	Record  engine.Record
	Flagged bool
}

// LoadQueue returns all queue entries in insertion order.
func (s *Store) LoadQueue() ([]QueueRow, error) {
	rows, err := s.db.Query(`
		SELECT queue_id, country, name, email, website, flagged
		FROM queue_entry
		ORDER BY queue_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load queue: %w", err)
	}
	defer rows.Close()

	var queue []QueueRow
	for rows.Next() {
		var row QueueRow
		if err := rows.Scan(&row.ID, &row.Country, &row.Record.Name,
			&row.Record.Email, &row.Record.Website, &row.Flagged); err != nil {
			return nil, fmt.Errorf("failed to scan queue row: %w", err)
		}
		row.Country = trim(row.Country)
		row.Record.Name = trim(row.Record.Name)
		row.Record.Email = trim(row.Record.Email)
		row.Record.Website = trim(row.Record.Website)
		queue = append(queue, row)
	}
	return queue, rows.Err()
}

// QueueNames returns every supplier name currently queued.
func (s *Store) QueueNames() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM queue_entry`)
	if err != nil {
		return nil, fmt.Errorf("failed to load queue names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan queue name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// AppendQueue inserts intake rows at the end of the queue.
func (s *Store) AppendQueue(rows []intake.Row) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO queue_entry (country, name, email, website)
		VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare queue insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(trim(row.Country), trim(row.Record.Name),
			trim(row.Record.Email), trim(row.Record.Website)); err != nil {
			return fmt.Errorf("failed to insert queue row: %w", err)
		}
	}

	return tx.Commit()
}

// FlagQueueRows marks the given queue entries as flagged.
func (s *Store) FlagQueueRows(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.db.Exec(`UPDATE queue_entry SET flagged = TRUE WHERE queue_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to flag queue rows: %w", err)
	}
	return nil
}

// ClearFlags resets the flagged marker before a fresh flag pass.
func (s *Store) ClearFlags() error {
	if _, err := s.db.Exec(`UPDATE queue_entry SET flagged = FALSE`); err != nil {
		return fmt.Errorf("failed to clear flags: %w", err)
	}
	return nil
}

// DeleteQueueRows removes migrated queue entries by primary key.
func (s *Store) DeleteQueueRows(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.db.Exec(`DELETE FROM queue_entry WHERE queue_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to delete queue rows: %w", err)
	}
	return nil
}
