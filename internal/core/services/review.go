package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driven"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driving"
	"github.com/redraft-labs/redraft-cli/internal/logger"
)

// Ensure ReviewService implements the interface.
var _ driving.Reviewer = (*ReviewService)(nil)

// ReviewService owns the suggestion store for one manuscript session:
// streaming ingestion, ordered read access, and the apply algorithms.
type ReviewService struct {
	project *ProjectService
	editor  driven.EditorService
	store   driven.ProjectStore

	mu          sync.Mutex
	suggestions []domain.Suggestion
	status      driving.ReviewStatus
}

// NewReviewService creates a review service. The editor may be nil;
// Stream then fails with domain.ErrEditorUnavailable but previously
// loaded suggestions can still be applied. The store may be nil for
// in-memory sessions.
func NewReviewService(project *ProjectService, editor driven.EditorService, store driven.ProjectStore) *ReviewService {
	return &ReviewService{
		project: project,
		editor:  editor,
		store:   store,
	}
}

// LoadSuggestions seeds the store with previously persisted
// suggestions, preserving their stored order.
func (s *ReviewService) LoadSuggestions(suggestions []domain.Suggestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = append([]domain.Suggestion(nil), suggestions...)
}

// Append adds one suggestion to the store, assigning an ID if absent
// and forcing status to unapplied. Arrival order is preserved.
func (s *ReviewService) Append(sug domain.Suggestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLocked(sug)
}

func (s *ReviewService) appendLocked(sug domain.Suggestion) {
	if sug.ID == "" {
		sug.ID = uuid.NewString()
	}
	if !sug.Kind.IsValid() {
		sug.Kind = domain.SuggestionOther
	}
	sug.Status = domain.StatusUnapplied
	s.suggestions = append(s.suggestions, sug)
}

// Suggestions returns the gathered suggestions in arrival order.
func (s *ReviewService) Suggestions() []domain.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Suggestion(nil), s.suggestions...)
}

// Status returns the current streaming status.
func (s *ReviewService) Status() driving.ReviewStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Stream gathers suggestions for the whole manuscript. A new run
// replaces the previous backlog rather than appending duplicates to
// it; persisted suggestions are overwritten with the fresh set.
// Progress is an estimate (suggestions found over document count); it
// is stored unclamped and may exceed 100. A producer failure keeps
// everything gathered so far and transitions back to idle with a
// failure status.
func (s *ReviewService) Stream(ctx context.Context) error {
	if s.editor == nil {
		return domain.ErrEditorUnavailable
	}

	s.mu.Lock()
	if s.status.Running {
		s.mu.Unlock()
		return domain.ErrReviewInProgress
	}
	s.status = driving.ReviewStatus{Running: true, StatusText: "reading manuscript"}
	s.suggestions = nil
	s.mu.Unlock()

	ms := s.project.Manuscript()
	docCount := len(ms.Documents)
	if docCount < 1 {
		docCount = 1
	}

	err := s.editor.StreamSuggestions(ctx, ms,
		func(status string) {
			s.mu.Lock()
			s.status.StatusText = status
			s.mu.Unlock()
		},
		func(sug domain.Suggestion) {
			s.mu.Lock()
			s.appendLocked(sug)
			s.status.PercentComplete = float64(len(s.suggestions)) / float64(docCount) * 100
			s.mu.Unlock()
		},
	)

	s.mu.Lock()
	s.status.Running = false
	found := len(s.suggestions)
	if err != nil {
		s.status.StatusText = fmt.Sprintf("review failed: %v", err)
	} else {
		s.status.StatusText = fmt.Sprintf("found %d suggestions", found)
	}
	s.mu.Unlock()

	s.persistSuggestions(ctx)

	if err != nil {
		logger.Warn("suggestion stream failed after %d suggestions: %v", found, err)
		return fmt.Errorf("stream suggestions: %w", err)
	}
	return nil
}

// ApplyOne applies a single suggestion by ID. Conflicts and missing
// documents are soft failures reported through sentinel errors; the
// manuscript is untouched in both cases.
func (s *ReviewService) ApplyOne(ctx context.Context, suggestionID string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.suggestions {
		if s.suggestions[i].ID == suggestionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("suggestion %s: %w", suggestionID, domain.ErrNotFound)
	}
	sug := s.suggestions[idx]
	s.mu.Unlock()

	if err := s.applySuggestion(sug); err != nil {
		return err
	}

	s.mu.Lock()
	s.suggestions[idx].Status = domain.StatusApplied
	s.mu.Unlock()

	if err := s.project.Commit(ctx); err != nil {
		return err
	}
	s.persistSuggestions(ctx)
	return nil
}

// applySuggestion runs the anchored literal-replace against the
// current document text. All occurrences of the anchor are replaced:
// the design intentionally does not target a single occurrence index,
// accepting that duplicate literals are patched together.
func (s *ReviewService) applySuggestion(sug domain.Suggestion) error {
	if sug.OriginalText == "" {
		return fmt.Errorf("suggestion %s has an empty anchor: %w", sug.ID, domain.ErrInvalidInput)
	}

	doc, ok := s.project.Document(sug.DocumentID)
	if !ok {
		logger.Warn("suggestion %s targets deleted document %s", sug.ID, sug.DocumentID)
		return fmt.Errorf("document %s: %w", sug.DocumentID, domain.ErrMissingTarget)
	}

	replaced := strings.ReplaceAll(doc.Text, sug.OriginalText, sug.SuggestedText)
	if replaced == doc.Text {
		// Anchor gone: the text was edited since the suggestion was
		// generated, or the suggestion was already applied.
		logger.Debug("suggestion %s: anchor not found in %s", sug.ID, sug.DocumentID)
		return fmt.Errorf("suggestion %s: %w", sug.ID, domain.ErrConflict)
	}

	doc.SetText(replaced)
	s.project.ReplaceDocument(doc)
	return nil
}

// ApplyAllRemaining applies every unapplied suggestion in store order
// against the progressively updated manuscript, so a later suggestion
// sees the effect of an earlier one on the same document. Conflicts
// are counted but not reported individually; one combined summary is
// returned. Best effort - a partial result is accepted as final.
func (s *ReviewService) ApplyAllRemaining(ctx context.Context) (driving.ApplySummary, error) {
	s.mu.Lock()
	var pending []domain.Suggestion
	for _, sug := range s.suggestions {
		if sug.Status == domain.StatusUnapplied {
			pending = append(pending, sug)
		}
	}
	s.mu.Unlock()

	var summary driving.ApplySummary
	applied := make(map[string]bool, len(pending))

	for _, sug := range pending {
		switch err := s.applySuggestion(sug); {
		case err == nil:
			applied[sug.ID] = true
			summary.Applied++
		case errors.Is(err, domain.ErrMissingTarget):
			summary.Missing++
		default:
			summary.Conflicts++
		}
	}

	if len(applied) > 0 {
		s.mu.Lock()
		for i := range s.suggestions {
			if applied[s.suggestions[i].ID] {
				s.suggestions[i].Status = domain.StatusApplied
			}
		}
		s.mu.Unlock()
	}

	if summary.Applied == 0 {
		summary.Message = "no remaining fixes could be applied"
		logger.Info("apply all: nothing applied (%d conflicts, %d missing)", summary.Conflicts, summary.Missing)
		return summary, nil
	}

	summary.Message = fmt.Sprintf("applied %d of %d remaining fixes", summary.Applied, len(pending))
	logger.Info("apply all: %s", summary.Message)

	if err := s.project.Commit(ctx); err != nil {
		return summary, err
	}
	s.persistSuggestions(ctx)
	return summary, nil
}

// persistSuggestions saves the suggestion list best-effort. Failures
// are logged, never propagated: the in-memory session stays correct.
func (s *ReviewService) persistSuggestions(ctx context.Context) {
	if s.store == nil {
		return
	}
	ms := s.project.Manuscript()
	s.mu.Lock()
	suggestions := append([]domain.Suggestion(nil), s.suggestions...)
	s.mu.Unlock()
	if err := s.store.SaveSuggestions(ctx, ms.ID, suggestions); err != nil {
		logger.Warn("persisting suggestions for %s failed: %v", ms.ID, err)
	}
}
