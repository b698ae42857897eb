// Package pipeline ties the matching engine and the merger to the store:
// the flag pass, the migrate pass, and queue intake.
package pipeline

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gpd-sourcing/supplier-screen/internal/engine"
	"github.com/gpd-sourcing/supplier-screen/internal/intake"
	"github.com/gpd-sourcing/supplier-screen/internal/merge"
	"github.com/gpd-sourcing/supplier-screen/internal/store"
)

// Pipeline orchestrates screening passes over the stored queue.
type Pipeline struct {
	store   *store.Store
	matcher *engine.Matcher
	log     zerolog.Logger
}

// New creates a pipeline.
func New(st *store.Store, matcher *engine.Matcher, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		store:   st,
		matcher: matcher,
		log:     log,
	}
}

// FlagSummary reports the outcome of one flag pass.
type FlagSummary struct {
	RunID      string
	QueueRows  int
	Flagged    int
	Advisories int
}

// RunFlagPass matches every queue row against the exclusion list, flags
// the rows that matched and records the per-row results for audit. The
// scan is O(queue x exclusion) - the engine's documented hot path.
func (p *Pipeline) RunFlagPass() (*FlagSummary, error) {
	queue, err := p.store.LoadQueue()
	if err != nil {
		return nil, err
	}
	exclusions, err := p.store.LoadExclusions()
	if err != nil {
		return nil, err
	}

	p.log.Info().
		Int("queue_rows", len(queue)).
		Int("exclusion_rows", len(exclusions)).
		Msg("starting flag pass")

	runID, err := p.store.BeginRun(len(queue))
	if err != nil {
		return nil, err
	}

	if err := p.store.ClearFlags(); err != nil {
		return nil, err
	}

	summary := &FlagSummary{RunID: runID.String(), QueueRows: len(queue)}
	var flaggedIDs []int64

	for _, row := range queue {
		result := p.matcher.FindMatch(row.Record, exclusions)
		if result == nil {
			continue
		}

		advisory := p.matcher.PossibleFalsePositive(result)
		if err := p.store.SaveMatchResult(runID, row.ID, result, advisory); err != nil {
			return nil, err
		}

		flaggedIDs = append(flaggedIDs, row.ID)
		summary.Flagged++
		if advisory {
			summary.Advisories++
		}

		p.log.Debug().
			Int64("queue_id", row.ID).
			Str("name", row.Record.Name).
			Str("matched", result.Matched.Name).
			Strs("predicates", result.FiredPredicates()).
			Bool("possible_false_positive", advisory).
			Msg("queue row flagged")
	}

	if err := p.store.FlagQueueRows(flaggedIDs); err != nil {
		return nil, err
	}
	if err := p.store.FinishRun(runID, summary.Flagged); err != nil {
		return nil, err
	}

	p.log.Info().
		Str("run_id", summary.RunID).
		Int("flagged", summary.Flagged).
		Int("advisories", summary.Advisories).
		Msg("flag pass complete")

	return summary, nil
}

// MigrateSummary reports the outcome of one migrate pass.
type MigrateSummary struct {
	Migrated int
	Removed  int
}

// RunMigratePass moves queue entries not already on the exclusion list to
// it and deletes the migrated queue rows. Duplicate rows left behind in
// the queue are untouched, so re-running is a no-op.
func (p *Pipeline) RunMigratePass() (*MigrateSummary, error) {
	queue, err := p.store.LoadQueue()
	if err != nil {
		return nil, err
	}
	exclusions, err := p.store.LoadExclusions()
	if err != nil {
		return nil, err
	}

	existing := make(merge.ExclusionSet, len(exclusions))
	for _, r := range exclusions {
		existing.Add(merge.EntryFor(r))
	}

	candidates := make([]engine.Record, len(queue))
	for i, row := range queue {
		candidates[i] = row.Record
	}

	newEntries, rowsToRemove := merge.ComputeNewEntries(candidates, existing)
	if len(newEntries) == 0 {
		p.log.Info().Msg("no new entries to migrate")
		return &MigrateSummary{}, nil
	}

	if err := p.store.AppendExclusions(newEntries); err != nil {
		return nil, err
	}

	// Row indices refer to the loaded queue slice; resolve them to row
	// identities before deleting.
	ids := make([]int64, len(rowsToRemove))
	for i, rowIdx := range rowsToRemove {
		ids[i] = queue[rowIdx].ID
	}
	if err := p.store.DeleteQueueRows(ids); err != nil {
		return nil, err
	}

	summary := &MigrateSummary{Migrated: len(newEntries), Removed: len(ids)}
	p.log.Info().
		Int("migrated", summary.Migrated).
		Int("removed", summary.Removed).
		Msg("migrate pass complete")

	return summary, nil
}

// RunIntake appends source rows to the queue, skipping names already
// queued or repeated within the batch.
func (p *Pipeline) RunIntake(source []intake.Row) (int, error) {
	names, err := p.store.QueueNames()
	if err != nil {
		return 0, err
	}

	selected := intake.SelectNew(source, intake.NewNameSet(names))
	if len(selected) == 0 {
		p.log.Info().Msg("no new rows to queue")
		return 0, nil
	}

	if err := p.store.AppendQueue(selected); err != nil {
		return 0, err
	}

	p.log.Info().
		Int("source_rows", len(source)).
		Int("queued", len(selected)).
		Msg("intake complete")

	return len(selected), nil
}

// Describe renders a short human summary for CLI output.
func (s *FlagSummary) Describe() string {
	return fmt.Sprintf("run %s: %d of %d queue rows flagged (%d possible false positives)",
		s.RunID, s.Flagged, s.QueueRows, s.Advisories)
}
