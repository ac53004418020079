package driven

import (
	"context"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
)

// ProjectStore persists manuscripts, their suggestions and their
// analysis records between sessions. Backed by SQLite.
type ProjectStore interface {
	// SaveManuscript stores or updates a manuscript and its documents.
	SaveManuscript(ctx context.Context, ms *domain.Manuscript) error

	// GetManuscript retrieves a manuscript with its documents in
	// display order.
	GetManuscript(ctx context.Context, id string) (*domain.Manuscript, error)

	// ListManuscripts returns all stored manuscripts without their
	// document text (titles and IDs only).
	ListManuscripts(ctx context.Context) ([]domain.Manuscript, error)

	// DeleteManuscript removes a manuscript, its suggestions and its
	// analysis record.
	DeleteManuscript(ctx context.Context, id string) error

	// SaveSuggestions replaces the stored suggestion list for a
	// manuscript, preserving order.
	SaveSuggestions(ctx context.Context, manuscriptID string, suggestions []domain.Suggestion) error

	// GetSuggestions returns the stored suggestions in arrival order.
	GetSuggestions(ctx context.Context, manuscriptID string) ([]domain.Suggestion, error)

	// SaveAnalysis stores or updates the analysis record.
	SaveAnalysis(ctx context.Context, rec *domain.AnalysisRecord) error

	// GetAnalysis retrieves the analysis record, or domain.ErrNotFound
	// if no scan has ever run for the manuscript.
	GetAnalysis(ctx context.Context, manuscriptID string) (*domain.AnalysisRecord, error)
}
