// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/redraft-labs/redraft-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ReviewCompleted carries the outcome of a suggestion stream.
type ReviewCompleted struct {
	Count int
	Err   error
}

// SuggestionApplied carries the outcome of applying one suggestion.
type SuggestionApplied struct {
	ID  string
	Err error
}

// SweepFinished carries the outcome of a sweep run.
type SweepFinished struct {
	Err error
}

// SweepTicked drives sweep progress polling.
type SweepTicked struct{}

// ScanCompleted carries the outcome of an analysis pass.
type ScanCompleted struct {
	Kind domain.ScanKind
	Err  error
}

// HistoryChanged is sent after an undo or redo.
type HistoryChanged struct {
	Err error
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSuggestions is the review and apply view.
	ViewSuggestions
	// ViewSweep is the sweep progress view.
	ViewSweep
	// ViewReport is the analysis report view.
	ViewReport
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSuggestions:
		return "suggestions"
	case ViewSweep:
		return "sweep"
	case ViewReport:
		return "report"
	default:
		return "unknown"
	}
}
