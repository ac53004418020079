package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driven"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driving"
	"github.com/redraft-labs/redraft-cli/internal/logger"
)

// Ensure ProjectService implements the interface.
var _ driving.ProjectSession = (*ProjectService)(nil)

// ProjectService is the single owner of the live manuscript and its
// version history. Every mutation goes through it; every reader gets
// a snapshot. The store is optional - when nil, the session is purely
// in-memory.
type ProjectService struct {
	store driven.ProjectStore

	mu      sync.RWMutex
	ms      domain.Manuscript
	history *domain.VersionHistory
}

// NewProjectService opens a session on the given manuscript. The
// opening state is pushed as the first history snapshot so the first
// mutation is undoable.
func NewProjectService(store driven.ProjectStore, ms domain.Manuscript) *ProjectService {
	history := domain.NewVersionHistory()
	history.Push(ms)
	return &ProjectService{
		store:   store,
		ms:      ms.Clone(),
		history: history,
	}
}

// Manuscript returns a snapshot of the live manuscript.
func (p *ProjectService) Manuscript() domain.Manuscript {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ms.Clone()
}

// Document returns a copy of one chapter by ID.
func (p *ProjectService) Document(id string) (domain.Document, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	doc := p.ms.Document(id)
	if doc == nil {
		return domain.Document{}, false
	}
	return *doc, true
}

// ReplaceDocument publishes an updated chapter into the live
// manuscript without recording a history snapshot. Callers batch
// their mutations and call Commit once the externally-visible
// operation is complete.
func (p *ProjectService) ReplaceDocument(doc domain.Document) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ms.Replace(doc)
}

// Commit records the current live state as a history snapshot and
// persists it. A store failure does not lose the snapshot; it is
// logged and returned so callers can surface it.
func (p *ProjectService) Commit(ctx context.Context) error {
	p.mu.Lock()
	p.history.Push(p.ms)
	ms := p.ms.Clone()
	p.mu.Unlock()

	return p.persist(ctx, ms)
}

// Undo restores the previous snapshot as the live state.
func (p *ProjectService) Undo(ctx context.Context) (domain.Manuscript, error) {
	p.mu.Lock()
	restored, ok := p.history.Undo()
	if ok {
		p.ms = restored.Clone()
	}
	ms := p.ms.Clone()
	p.mu.Unlock()

	if !ok {
		logger.Debug("undo: already at oldest retained snapshot")
		return ms, nil
	}
	return ms, p.persist(ctx, ms)
}

// Redo restores the next snapshot as the live state.
func (p *ProjectService) Redo(ctx context.Context) (domain.Manuscript, error) {
	p.mu.Lock()
	restored, ok := p.history.Redo()
	if ok {
		p.ms = restored.Clone()
	}
	ms := p.ms.Clone()
	p.mu.Unlock()

	if !ok {
		logger.Debug("redo: already at newest snapshot")
		return ms, nil
	}
	return ms, p.persist(ctx, ms)
}

// CanUndo reports whether an older snapshot is available.
func (p *ProjectService) CanUndo() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.history.CanUndo()
}

// CanRedo reports whether a newer snapshot is available.
func (p *ProjectService) CanRedo() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.history.CanRedo()
}

// HistoryPosition returns the cursor index and snapshot count.
func (p *ProjectService) HistoryPosition() (cursor, length int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.history.Cursor(), p.history.Len()
}

// Save persists the live manuscript through the project store.
func (p *ProjectService) Save(ctx context.Context) error {
	return p.persist(ctx, p.Manuscript())
}

func (p *ProjectService) persist(ctx context.Context, ms domain.Manuscript) error {
	if p.store == nil {
		return nil
	}
	if err := p.store.SaveManuscript(ctx, &ms); err != nil {
		logger.Warn("persisting manuscript %s failed: %v", ms.ID, err)
		return fmt.Errorf("save manuscript: %w", err)
	}
	return nil
}
