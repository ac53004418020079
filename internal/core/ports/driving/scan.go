package driving

import (
	"context"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
)

// ScanRunner drives manuscript analysis passes and accumulates their
// results into a single analysis record.
type ScanRunner interface {
	// Scan runs one analysis kind and merges the result into the
	// record. A failed scan leaves the previously stored result for
	// every kind intact. Returns domain.ErrScanInProgress when the
	// same kind is already running.
	Scan(ctx context.Context, kind domain.ScanKind) (*domain.AnalysisRecord, error)

	// Record returns a copy of the accumulated analysis record.
	Record() domain.AnalysisRecord
}
