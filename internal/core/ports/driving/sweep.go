package driving

import (
	"context"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
)

// SweepPipeline runs one full rewrite pass over every chapter against
// the issues recorded for an analysis kind.
type SweepPipeline interface {
	// Run executes the sweep for the given analysis kind. It blocks
	// until every document has been attempted or ctx is cancelled.
	// Per-document rewrite failures do not abort the run; they are
	// counted and the sweep proceeds. Returns domain.ErrNothingToDo
	// when the kind has no recorded issues, domain.ErrSweepInProgress
	// when a sweep is already running.
	Run(ctx context.Context, kind domain.ScanKind) error

	// Status returns the current sweep status for polling.
	Status() SweepStatus

	// Cancel requests a running sweep stop before its next document.
	// Completed rewrites are kept.
	Cancel()
}

// SweepStatus is the poll view of a sweep run.
type SweepStatus struct {
	// Running indicates if a sweep is currently in progress.
	Running bool

	// PercentComplete is documents completed over total, times 100.
	// Monotonically non-decreasing within one run.
	PercentComplete float64

	// StatusText describes the current step.
	StatusText string

	// Completed counts documents rewritten so far this run.
	Completed int

	// Failed counts documents whose rewrite failed this run.
	Failed int

	// Total is the number of documents in the manuscript.
	Total int
}
