package engine

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"

	"db-clone/internal/dialect"
)

// DefaultMaxConcurrent is the concurrency ceiling applied when none is
// configured.
const DefaultMaxConcurrent = 15

// Scheduler enumerates source tables and runs one clone worker per table,
// never more than MaxConcurrent at a time. Completion outcomes are drained in
// finish order through a single channel, so progress counters have exactly one
// writer.
type Scheduler struct {
	MaxConcurrent int

	// OnProgress, when set, observes every progress update after an outcome
	// is recorded. Used by the CLI to drive the progress bar.
	OnProgress func(Progress)

	listTables func(ctx context.Context) ([]string, error)
	clone      func(table string) Outcome
}

func NewScheduler(source, target *sql.DB, d dialect.Dialect, maxConcurrent int) *Scheduler {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	cloner := NewCloner(source, target, d)
	return &Scheduler{
		MaxConcurrent: maxConcurrent,
		listTables: func(ctx context.Context) ([]string, error) {
			return d.ListTables(ctx, source)
		},
		clone: cloner.CloneTable,
	}
}

// Run clones every non-ignored source table and returns all outcomes. Only a
// failure to enumerate tables is returned as an error; per-table failures are
// logged, folded into progress and collected. Tables are admitted in
// enumeration order, completions land in whatever order workers finish.
func (s *Scheduler) Run(ignore IgnoreSet) ([]Outcome, error) {
	tables, err := s.listTables(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to list source tables: %w", err)
	}

	total := 0
	for _, table := range tables {
		if !ignore.Contains(table) {
			total++
		}
	}
	if total == 0 {
		log.Warn("No tables to clone")
		return nil, nil
	}

	progress := Progress{Total: total}
	done := make(chan Outcome)
	inFlight := 0
	outcomes := make([]Outcome, 0, total)

	collect := func() {
		outcome := <-done
		inFlight--
		if outcome.Err != nil {
			log.Error(outcome.Err)
		}
		progress.Processed++
		ReportProgress(progress)
		if s.OnProgress != nil {
			s.OnProgress(progress)
		}
		outcomes = append(outcomes, outcome)
	}

	for _, table := range tables {
		if ignore.Contains(table) {
			log.Infof("Ignored table %s", table)
			continue
		}
		for inFlight >= s.MaxConcurrent {
			collect()
		}
		inFlight++
		go func(t string) {
			done <- s.clone(t)
		}(table)
	}

	for inFlight > 0 {
		collect()
	}
	return outcomes, nil
}
