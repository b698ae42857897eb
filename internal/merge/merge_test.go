package merge

import (
	"testing"

	"github.com/gpd-sourcing/supplier-screen/internal/engine"
)

func TestComputeNewEntries(t *testing.T) {
	existing := NewExclusionSet([]Entry{
		{Name: "Known Winery", Email: "known@known.com", Website: "known.com"},
	})

	candidates := []engine.Record{
		{Name: "Known Winery", Email: "known@known.com", Website: "known.com"}, // already excluded
		{Name: "Fresh Winery", Email: "hi@fresh.com", Website: "fresh.com"},
		{Name: "", Email: "", Website: ""}, // blank row
		{Name: "Other Winery"},
	}

	newEntries, rows := ComputeNewEntries(candidates, existing)

	if len(newEntries) != 2 {
		t.Fatalf("expected 2 new entries, got %d", len(newEntries))
	}
	if newEntries[0].Name != "Fresh Winery" || newEntries[1].Name != "Other Winery" {
		t.Errorf("unexpected new entries: %+v", newEntries)
	}

	wantRows := []int{3, 1}
	if len(rows) != len(wantRows) {
		t.Fatalf("expected rows %v, got %v", wantRows, rows)
	}
	for i := range wantRows {
		if rows[i] != wantRows[i] {
			t.Fatalf("rows not sorted descending: got %v, want %v", rows, wantRows)
		}
	}
}

func TestComputeNewEntriesInBatchDuplicate(t *testing.T) {
	candidates := []engine.Record{
		{Name: "Twin Winery", Email: "t@twin.com", Website: "twin.com"},
		{Name: "Twin Winery", Email: "t@twin.com", Website: "twin.com"},
	}

	newEntries, rows := ComputeNewEntries(candidates, NewExclusionSet(nil))

	if len(newEntries) != 1 {
		t.Fatalf("duplicate triple should migrate once, got %d entries", len(newEntries))
	}
	if len(rows) != 1 || rows[0] != 0 {
		t.Errorf("only the first-seen row should be removed, got rows %v", rows)
	}
}

func TestComputeNewEntriesTrimsFields(t *testing.T) {
	existing := NewExclusionSet([]Entry{
		{Name: "Known Winery", Email: "known@known.com", Website: "known.com"},
	})

	candidates := []engine.Record{
		{Name: "  Known Winery  ", Email: " known@known.com ", Website: "known.com"},
	}

	newEntries, rows := ComputeNewEntries(candidates, existing)
	if len(newEntries) != 0 || len(rows) != 0 {
		t.Errorf("trimmed triple should hit the existing set, got %+v / %v", newEntries, rows)
	}
}

func TestComputeNewEntriesCaseSensitive(t *testing.T) {
	existing := NewExclusionSet([]Entry{
		{Name: "Known Winery"},
	})

	candidates := []engine.Record{
		{Name: "KNOWN WINERY"},
	}

	newEntries, _ := ComputeNewEntries(candidates, existing)
	if len(newEntries) != 1 {
		t.Error("triple comparison is exact and case-sensitive by design")
	}
}

func TestComputeNewEntriesIdempotentMigration(t *testing.T) {
	candidates := []engine.Record{
		{Name: "Fresh Winery", Email: "hi@fresh.com", Website: "fresh.com"},
		{Name: "Other Winery"},
	}

	existing := NewExclusionSet(nil)
	firstRun, _ := ComputeNewEntries(candidates, existing)
	for _, e := range firstRun {
		existing.Add(e)
	}

	secondRun, rows := ComputeNewEntries(candidates, existing)
	if len(secondRun) != 0 || len(rows) != 0 {
		t.Errorf("second run over migrated entries should be empty, got %+v / %v", secondRun, rows)
	}
}
