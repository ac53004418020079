// Package memory provides in-memory implementations of the storage
// ports, used for tests and ephemeral sessions.
package memory

import (
	"context"
	"sync"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driven"
)

// Ensure ProjectStore implements the interface.
var _ driven.ProjectStore = (*ProjectStore)(nil)

// ProjectStore is an in-memory implementation of driven.ProjectStore.
type ProjectStore struct {
	mu          sync.RWMutex
	manuscripts map[string]domain.Manuscript
	suggestions map[string][]domain.Suggestion
	analyses    map[string]domain.AnalysisRecord
}

// NewProjectStore creates a new in-memory project store.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{
		manuscripts: make(map[string]domain.Manuscript),
		suggestions: make(map[string][]domain.Suggestion),
		analyses:    make(map[string]domain.AnalysisRecord),
	}
}

// SaveManuscript stores or updates a manuscript and its documents.
func (s *ProjectStore) SaveManuscript(_ context.Context, ms *domain.Manuscript) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manuscripts[ms.ID] = ms.Clone()
	return nil
}

// GetManuscript retrieves a manuscript with its documents.
func (s *ProjectStore) GetManuscript(_ context.Context, id string) (*domain.Manuscript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ms, ok := s.manuscripts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := ms.Clone()
	return &clone, nil
}

// ListManuscripts returns all stored manuscripts without document text.
func (s *ProjectStore) ListManuscripts(_ context.Context) ([]domain.Manuscript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Manuscript, 0, len(s.manuscripts))
	for _, ms := range s.manuscripts {
		out = append(out, domain.Manuscript{ID: ms.ID, Title: ms.Title})
	}
	return out, nil
}

// DeleteManuscript removes a manuscript and everything hanging off it.
func (s *ProjectStore) DeleteManuscript(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.manuscripts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.manuscripts, id)
	delete(s.suggestions, id)
	delete(s.analyses, id)
	return nil
}

// SaveSuggestions replaces the stored suggestion list, preserving order.
func (s *ProjectStore) SaveSuggestions(_ context.Context, manuscriptID string, suggestions []domain.Suggestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions[manuscriptID] = append([]domain.Suggestion(nil), suggestions...)
	return nil
}

// GetSuggestions returns the stored suggestions in arrival order.
func (s *ProjectStore) GetSuggestions(_ context.Context, manuscriptID string) ([]domain.Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Suggestion(nil), s.suggestions[manuscriptID]...), nil
}

// SaveAnalysis stores or updates the analysis record.
func (s *ProjectStore) SaveAnalysis(_ context.Context, rec *domain.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[rec.ManuscriptID] = rec.Clone()
	return nil
}

// GetAnalysis retrieves the analysis record.
func (s *ProjectStore) GetAnalysis(_ context.Context, manuscriptID string) (*domain.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.analyses[manuscriptID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := rec.Clone()
	return &clone, nil
}
