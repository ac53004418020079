package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
)

// ReviewInput is the input schema for the review tool.
type ReviewInput struct{}

// ReviewOutput is the output schema for the review tool.
type ReviewOutput struct {
	SuggestionCount int    `json:"suggestion_count"`
	Message         string `json:"message"`
}

// SuggestionsInput is the input schema for the list suggestions tool.
type SuggestionsInput struct{}

// SuggestionOutput represents one edit suggestion.
type SuggestionOutput struct {
	ID            string `json:"id"`
	ChapterID     string `json:"chapter_id"`
	Kind          string `json:"kind"`
	OriginalText  string `json:"original_text"`
	SuggestedText string `json:"suggested_text"`
	Rationale     string `json:"rationale,omitempty"`
	Applied       bool   `json:"applied"`
}

// SuggestionsOutput is the output schema for the list suggestions tool.
type SuggestionsOutput struct {
	Suggestions []SuggestionOutput `json:"suggestions"`
	Count       int                `json:"count"`
}

// ApplyInput is the input schema for the apply tool.
type ApplyInput struct {
	SuggestionID string `json:"suggestion_id" jsonschema:"the ID of the suggestion to apply"`
}

// ApplyOutput is the output schema for the apply tool.
type ApplyOutput struct {
	Applied bool   `json:"applied"`
	Message string `json:"message"`
}

// ApplyAllInput is the input schema for the apply-all tool.
type ApplyAllInput struct{}

// ApplyAllOutput is the output schema for the apply-all tool.
type ApplyAllOutput struct {
	Applied   int    `json:"applied"`
	Conflicts int    `json:"conflicts"`
	Missing   int    `json:"missing"`
	Message   string `json:"message"`
}

// ScanInput is the input schema for the scan tool.
type ScanInput struct {
	Kind string `json:"kind" jsonschema:"analysis kind: synopsis, health, continuity, themes, or cohesion"`
}

// ScanOutput is the output schema for the scan tool.
type ScanOutput struct {
	Kind    string `json:"kind"`
	Summary string `json:"summary"`
}

// SweepInput is the input schema for the sweep tool.
type SweepInput struct {
	Kind string `json:"kind" jsonschema:"analysis kind whose recorded issues to sweep: health, continuity, themes, or cohesion"`
}

// SweepOutput is the output schema for the sweep tool.
type SweepOutput struct {
	Completed int    `json:"completed"`
	Failed    int    `json:"failed"`
	Total     int    `json:"total"`
	Message   string `json:"message"`
}

// HistoryInput is the input schema for the undo and redo tools.
type HistoryInput struct{}

// HistoryOutput is the output schema for the undo and redo tools.
type HistoryOutput struct {
	Restored  bool   `json:"restored"`
	WordCount int    `json:"word_count"`
	Position  int    `json:"position"`
	Length    int    `json:"length"`
	Message   string `json:"message"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "review_manuscript",
		Description: "Gather anchored edit suggestions for every chapter of the manuscript",
	}, s.handleReview)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_suggestions",
		Description: "List the edit suggestions gathered by the last review",
	}, s.handleListSuggestions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "apply_suggestion",
		Description: "Apply one edit suggestion to its chapter by ID",
	}, s.handleApply)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "apply_all_suggestions",
		Description: "Apply every remaining edit suggestion, skipping conflicts",
	}, s.handleApplyAll)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "run_scan",
		Description: "Run a whole-manuscript analysis pass and record the result",
	}, s.handleScan)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "run_sweep",
		Description: "Rewrite every chapter against the issues recorded for an analysis kind",
	}, s.handleSweep)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "undo_change",
		Description: "Restore the previous manuscript state from history",
	}, s.handleUndo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "redo_change",
		Description: "Restore the next manuscript state after an undo",
	}, s.handleRedo)
}

// handleReview handles the review tool invocation.
func (s *Server) handleReview(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ReviewInput,
) (*mcp.CallToolResult, ReviewOutput, error) {
	if err := s.ports.Review.Stream(ctx); err != nil {
		return nil, ReviewOutput{}, err
	}

	count := len(s.ports.Review.Suggestions())
	return nil, ReviewOutput{
		SuggestionCount: count,
		Message:         fmt.Sprintf("review complete: %d suggestions gathered", count),
	}, nil
}

// handleListSuggestions handles the list suggestions tool invocation.
func (s *Server) handleListSuggestions(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ SuggestionsInput,
) (*mcp.CallToolResult, SuggestionsOutput, error) {
	suggestions := s.ports.Review.Suggestions()
	ms := s.ports.Project.Manuscript()

	output := SuggestionsOutput{
		Suggestions: make([]SuggestionOutput, len(suggestions)),
		Count:       len(suggestions),
	}
	for i, sug := range suggestions {
		// The applied marker follows the live text: an undone
		// suggestion keeps its flag but reports as unapplied.
		applied := false
		if sug.Status == domain.StatusApplied {
			if doc := ms.Document(sug.DocumentID); doc != nil {
				applied = sug.AppliedIn(doc.Text)
			}
		}
		output.Suggestions[i] = SuggestionOutput{
			ID:            sug.ID,
			ChapterID:     sug.DocumentID,
			Kind:          string(sug.Kind),
			OriginalText:  sug.OriginalText,
			SuggestedText: sug.SuggestedText,
			Rationale:     sug.Rationale,
			Applied:       applied,
		}
	}

	return nil, output, nil
}

// handleApply handles the apply tool invocation. Conflicts and missing
// chapters are soft outcomes, not errors.
func (s *Server) handleApply(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ApplyInput,
) (*mcp.CallToolResult, ApplyOutput, error) {
	err := s.ports.Review.ApplyOne(ctx, input.SuggestionID)
	switch {
	case err == nil:
		return nil, ApplyOutput{
			Applied: true,
			Message: fmt.Sprintf("applied suggestion %s", input.SuggestionID),
		}, nil
	case errors.Is(err, domain.ErrConflict):
		return nil, ApplyOutput{
			Message: "conflict: the original text is no longer in the chapter",
		}, nil
	case errors.Is(err, domain.ErrMissingTarget):
		return nil, ApplyOutput{
			Message: "skipped: the chapter no longer exists",
		}, nil
	default:
		return nil, ApplyOutput{}, err
	}
}

// handleApplyAll handles the apply-all tool invocation.
func (s *Server) handleApplyAll(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ApplyAllInput,
) (*mcp.CallToolResult, ApplyAllOutput, error) {
	summary, err := s.ports.Review.ApplyAllRemaining(ctx)
	if err != nil {
		return nil, ApplyAllOutput{}, err
	}

	return nil, ApplyAllOutput{
		Applied:   summary.Applied,
		Conflicts: summary.Conflicts,
		Missing:   summary.Missing,
		Message:   summary.Message,
	}, nil
}

// handleScan handles the scan tool invocation.
func (s *Server) handleScan(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ScanInput,
) (*mcp.CallToolResult, ScanOutput, error) {
	if s.ports.Scan == nil {
		return nil, ScanOutput{}, errors.New("scan service not available")
	}

	kind := domain.ScanKind(input.Kind)
	if !kind.IsValid() {
		return nil, ScanOutput{}, fmt.Errorf("unknown scan kind %q", input.Kind)
	}

	rec, err := s.ports.Scan.Scan(ctx, kind)
	if err != nil {
		return nil, ScanOutput{}, err
	}

	return nil, ScanOutput{
		Kind:    kind.String(),
		Summary: scanSummary(kind, rec),
	}, nil
}

// handleSweep handles the sweep tool invocation.
func (s *Server) handleSweep(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SweepInput,
) (*mcp.CallToolResult, SweepOutput, error) {
	if s.ports.Sweep == nil {
		return nil, SweepOutput{}, errors.New("sweep service not available")
	}

	kind := domain.ScanKind(input.Kind)
	if !kind.IsValid() {
		return nil, SweepOutput{}, fmt.Errorf("unknown scan kind %q", input.Kind)
	}

	if err := s.ports.Sweep.Run(ctx, kind); err != nil {
		if errors.Is(err, domain.ErrNothingToDo) {
			return nil, SweepOutput{
				Message: fmt.Sprintf("no %s issues recorded; run a %s scan first", kind, kind),
			}, nil
		}
		return nil, SweepOutput{}, err
	}

	status := s.ports.Sweep.Status()
	return nil, SweepOutput{
		Completed: status.Completed,
		Failed:    status.Failed,
		Total:     status.Total,
		Message: fmt.Sprintf("sweep complete: %d chapters rewritten, %d failed",
			status.Completed, status.Failed),
	}, nil
}

// handleUndo handles the undo tool invocation.
func (s *Server) handleUndo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	if !s.ports.Project.CanUndo() {
		return nil, HistoryOutput{Message: "nothing to undo"}, nil
	}

	ms, err := s.ports.Project.Undo(ctx)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	cursor, length := s.ports.Project.HistoryPosition()
	return nil, HistoryOutput{
		Restored:  true,
		WordCount: ms.WordCount(),
		Position:  cursor + 1,
		Length:    length,
		Message:   fmt.Sprintf("restored %q", ms.Title),
	}, nil
}

// handleRedo handles the redo tool invocation.
func (s *Server) handleRedo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	if !s.ports.Project.CanRedo() {
		return nil, HistoryOutput{Message: "nothing to redo"}, nil
	}

	ms, err := s.ports.Project.Redo(ctx)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	cursor, length := s.ports.Project.HistoryPosition()
	return nil, HistoryOutput{
		Restored:  true,
		WordCount: ms.WordCount(),
		Position:  cursor + 1,
		Length:    length,
		Message:   fmt.Sprintf("restored %q", ms.Title),
	}, nil
}

// scanSummary builds a one-line summary for a fresh scan result.
func scanSummary(kind domain.ScanKind, rec *domain.AnalysisRecord) string {
	switch kind {
	case domain.ScanSynopsis:
		if rec.Synopsis != nil {
			return fmt.Sprintf("synopsis recorded for %d chapters", len(rec.Synopsis.Chapters))
		}
	case domain.ScanHealth:
		if rec.Health != nil {
			return fmt.Sprintf("health score %d/100 with %d global issues",
				rec.Health.Score, len(rec.Health.GlobalIssues))
		}
	case domain.ScanContinuity:
		if rec.Continuity != nil {
			return fmt.Sprintf("%d continuity issues found", len(rec.Continuity.Issues))
		}
	case domain.ScanThemes:
		if rec.Themes != nil {
			return fmt.Sprintf("%d themes and %d plot threads tracked",
				len(rec.Themes.Themes), len(rec.Themes.Threads))
		}
	case domain.ScanCohesion:
		if rec.Cohesion != nil {
			return fmt.Sprintf("%d naming issues, %d timeline issues",
				len(rec.Cohesion.NamingIssues), len(rec.Cohesion.TimelineIssues))
		}
	}
	return "scan recorded"
}
