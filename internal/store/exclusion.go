package store

import (
	"fmt"

	"github.com/gpd-sourcing/supplier-screen/internal/engine"
	"github.com/gpd-sourcing/supplier-screen/internal/merge"
)

// LoadExclusions returns the exclusion list in insertion order.
func (s *Store) LoadExclusions() ([]engine.Record, error) {
	rows, err := s.db.Query(`
		SELECT name, email, website
		FROM exclusion_entry
		ORDER BY exclusion_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load exclusion list: %w", err)
	}
	defer rows.Close()

	var records []engine.Record
	for rows.Next() {
		var r engine.Record
		if err := rows.Scan(&r.Name, &r.Email, &r.Website); err != nil {
			return nil, fmt.Errorf("failed to scan exclusion row: %w", err)
		}
		r.Name = trim(r.Name)
		r.Email = trim(r.Email)
		r.Website = trim(r.Website)
		records = append(records, r)
	}
	return records, rows.Err()
}

// AppendExclusions inserts migrated triples at the end of the list.
func (s *Store) AppendExclusions(entries []merge.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO exclusion_entry (name, email, website)
		VALUES ($1, $2, $3)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare exclusion insert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		if _, err := stmt.Exec(entry.Name, entry.Email, entry.Website); err != nil {
			return fmt.Errorf("failed to insert exclusion entry: %w", err)
		}
	}

	return tx.Commit()
}
