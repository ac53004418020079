package driving

import (
	"context"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
)

// Reviewer coordinates the global-edit review flow: streaming
// suggestions in from the editorial service, then applying them one
// at a time or all at once.
type Reviewer interface {
	// Stream gathers suggestions for the whole manuscript. It blocks
	// until the producer finishes or fails; suggestions gathered
	// before a failure are kept. Returns domain.ErrReviewInProgress
	// if a stream is already running.
	Stream(ctx context.Context) error

	// Suggestions returns the gathered suggestions in arrival order.
	Suggestions() []domain.Suggestion

	// ApplyOne applies a single suggestion by ID. The error wraps
	// domain.ErrConflict when the anchor text is no longer present,
	// and domain.ErrMissingTarget when the document has been deleted;
	// both are soft failures the caller should surface as warnings.
	ApplyOne(ctx context.Context, suggestionID string) error

	// ApplyAllRemaining applies every unapplied suggestion in store
	// order, skipping conflicts. Best effort, not transactional.
	ApplyAllRemaining(ctx context.Context) (ApplySummary, error)

	// Status returns the current streaming status for polling.
	Status() ReviewStatus
}

// ReviewStatus is the poll view of a suggestion stream.
type ReviewStatus struct {
	// Running indicates if streaming is currently in progress.
	Running bool

	// StatusText is the producer's latest free-text status line.
	StatusText string

	// PercentComplete is an estimate computed from suggestions found
	// per document. It is stored unclamped and can exceed 100 when
	// more suggestions are found than documents exist; clamp for
	// display only.
	PercentComplete float64
}

// ApplySummary is the combined outcome of an apply-all pass.
type ApplySummary struct {
	// Applied counts suggestions successfully applied this pass.
	Applied int

	// Conflicts counts suggestions whose anchor was no longer found.
	Conflicts int

	// Missing counts suggestions whose document no longer exists.
	Missing int

	// Message is the single human-readable summary line.
	Message string
}
