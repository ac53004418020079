package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates a suggestion's anchor text is no longer
	// present verbatim in the document. The suggestion is stale and
	// is skipped, never force-applied.
	ErrConflict = errors.New("anchor text not found")

	// ErrMissingTarget indicates the document a suggestion references
	// has been deleted. A soft failure: the suggestion is skipped.
	ErrMissingTarget = errors.New("target document missing")

	// ErrScanInProgress indicates a scan of the same kind is already
	// running for this manuscript.
	ErrScanInProgress = errors.New("scan already in progress")

	// ErrSweepInProgress indicates a rewrite sweep is already running.
	ErrSweepInProgress = errors.New("sweep already in progress")

	// ErrReviewInProgress indicates suggestion streaming is already
	// running for this manuscript.
	ErrReviewInProgress = errors.New("review already in progress")

	// ErrNothingToDo indicates a batch operation was invoked with an
	// empty input (no issues, no unapplied suggestions). Informational
	// rather than fatal.
	ErrNothingToDo = errors.New("nothing to do")

	// ErrEditorUnavailable indicates the editorial LLM service is not
	// configured. Scans, sweeps and suggestion streaming are disabled.
	ErrEditorUnavailable = errors.New("editorial service unavailable")
)
