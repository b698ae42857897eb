// Package intake filters source rows before they enter the queue. Queue
// admission dedupes on supplier name alone, case-insensitively - a looser
// rule than the exclusion merge, since the queue is a working list and a
// name collision there is almost always the same supplier re-harvested.
package intake

import (
	"strings"

	"github.com/gpd-sourcing/supplier-screen/internal/engine"
)

// Row is one harvested source row tagged with its country of origin.
type Row struct {
	Country string
	Record  engine.Record
}

// NameSet tracks supplier names already present, case-insensitively.
type NameSet map[string]struct{}

// NewNameSet builds a NameSet from raw names, skipping blanks.
func NewNameSet(names []string) NameSet {
	set := make(NameSet, len(names))
	for _, n := range names {
		set.Add(n)
	}
	return set
}

// Add inserts a name into the set.
func (s NameSet) Add(name string) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key != "" {
		s[key] = struct{}{}
	}
}

// Contains reports whether a name is present, ignoring case.
func (s NameSet) Contains(name string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// SelectNew returns the source rows whose supplier name is non-empty and
// neither already queued nor seen earlier in this batch, preserving input
// order.
func SelectNew(source []Row, queued NameSet) []Row {
	seen := make(NameSet)
	var selected []Row

	for _, row := range source {
		name := strings.TrimSpace(row.Record.Name)
		if name == "" {
			continue
		}
		if queued.Contains(name) || seen.Contains(name) {
			continue
		}

		seen.Add(name)
		selected = append(selected, row)
	}

	return selected
}
