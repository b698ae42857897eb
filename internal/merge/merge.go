// Package merge decides which queue entries are genuinely new relative to
// the exclusion list. Unlike the fuzzy matcher this is literal-duplication
// logic: exact (name, email, website) triples, trimmed and case-sensitive.
package merge

import (
	"sort"
	"strings"

	"github.com/gpd-sourcing/supplier-screen/internal/engine"
)

// Entry is an exact exclusion-list triple.
type Entry struct {
	Name    string
	Email   string
	Website string
}

// EntryFor builds the trimmed triple for a record.
func EntryFor(r engine.Record) Entry {
	return Entry{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Website: strings.TrimSpace(r.Website),
	}
}

// IsEmpty reports whether all three fields are blank.
func (e Entry) IsEmpty() bool {
	return e.Name == "" && e.Email == "" && e.Website == ""
}

// ExclusionSet is the canonical collection of already-known triples.
type ExclusionSet map[Entry]struct{}

// NewExclusionSet builds a set from existing entries, skipping blanks.
func NewExclusionSet(entries []Entry) ExclusionSet {
	set := make(ExclusionSet, len(entries))
	for _, e := range entries {
		set.Add(e)
	}
	return set
}

// Add inserts a non-blank entry into the set.
func (s ExclusionSet) Add(e Entry) {
	if !e.IsEmpty() {
		s[e] = struct{}{}
	}
}

// Contains reports set membership.
func (s ExclusionSet) Contains(e Entry) bool {
	_, ok := s[e]
	return ok
}

// ComputeNewEntries walks the candidate rows and returns the triples that
// are neither in the existing set nor seen earlier in this batch, plus the
// candidate row indices to remove after migration. Only rows whose triple
// was actually migrated are marked for removal; in-batch duplicates and
// rows already present in the set stay in the source untouched. Indices
// refer to pre-removal row numbering and come back sorted descending so a
// consumer can splice them out without invalidating later indices.
func ComputeNewEntries(candidates []engine.Record, existing ExclusionSet) (newEntries []Entry, rowsToRemove []int) {
	seen := make(ExclusionSet)

	for i, candidate := range candidates {
		entry := EntryFor(candidate)
		if entry.IsEmpty() {
			continue
		}
		if existing.Contains(entry) || seen.Contains(entry) {
			continue
		}

		seen.Add(entry)
		newEntries = append(newEntries, entry)
		rowsToRemove = append(rowsToRemove, i)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(rowsToRemove)))
	return newEntries, rowsToRemove
}
