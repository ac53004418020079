package driving

import (
	"context"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
)

// ProjectSession exposes the live manuscript and its version history
// to the outer layers. Readers always receive snapshots; the live
// manuscript is never mutated in place by an observer.
type ProjectSession interface {
	// Manuscript returns a snapshot of the live manuscript.
	Manuscript() domain.Manuscript

	// Undo restores the previous snapshot as the live state.
	// No-op returning the current state when nothing can be undone.
	Undo(ctx context.Context) (domain.Manuscript, error)

	// Redo restores the next snapshot as the live state.
	// No-op returning the current state when nothing can be redone.
	Redo(ctx context.Context) (domain.Manuscript, error)

	// CanUndo reports whether an older snapshot is available.
	CanUndo() bool

	// CanRedo reports whether a newer snapshot is available.
	CanRedo() bool

	// HistoryPosition returns the cursor index and snapshot count.
	HistoryPosition() (cursor, length int)

	// Save persists the live manuscript through the project store.
	Save(ctx context.Context) error
}
