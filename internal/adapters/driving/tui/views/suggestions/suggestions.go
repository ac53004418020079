// Package suggestions provides the review and apply view for the TUI.
package suggestions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/redraft-labs/redraft-cli/internal/adapters/driving/tui/messages"
	"github.com/redraft-labs/redraft-cli/internal/adapters/driving/tui/styles"
	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driving"
)

// View represents the suggestions view: start a review, browse the
// gathered suggestions, and apply them one at a time or all at once.
type View struct {
	styles  *styles.Styles
	review  driving.Reviewer
	project driving.ProjectSession
	ctx     context.Context

	suggestions []domain.Suggestion
	selected    int
	reviewing   bool
	statusLine  string
	width       int
	height      int
}

// NewView creates a new suggestions view.
func NewView(s *styles.Styles, review driving.Reviewer, project driving.ProjectSession) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:  s,
		review:  review,
		project: project,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for review and apply calls.
func (v *View) WithContext(ctx context.Context) {
	v.ctx = ctx
}

// Init initialises the suggestions view.
func (v *View) Init() tea.Cmd {
	v.refresh()
	return nil
}

// refresh reloads the suggestion list from the reviewer.
func (v *View) refresh() {
	v.suggestions = v.review.Suggestions()
	if v.selected >= len(v.suggestions) {
		v.selected = 0
	}
}

// startReview returns a command that runs the suggestion stream.
func (v *View) startReview() tea.Cmd {
	ctx := v.ctx
	rev := v.review
	return func() tea.Msg {
		err := rev.Stream(ctx)
		return messages.ReviewCompleted{Count: len(rev.Suggestions()), Err: err}
	}
}

// applySelected returns a command that applies the highlighted suggestion.
func (v *View) applySelected() tea.Cmd {
	if v.selected >= len(v.suggestions) {
		return nil
	}
	ctx := v.ctx
	rev := v.review
	id := v.suggestions[v.selected].ID
	return func() tea.Msg {
		return messages.SuggestionApplied{ID: id, Err: rev.ApplyOne(ctx, id)}
	}
}

// Update handles messages for the suggestions view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case messages.ReviewCompleted:
		v.reviewing = false
		v.refresh()
		if msg.Err != nil {
			v.statusLine = v.styles.Error.Render(fmt.Sprintf("review failed: %v", msg.Err))
		} else {
			v.statusLine = v.styles.Success.Render(fmt.Sprintf("found %d suggestions", msg.Count))
		}
		return v, nil

	case messages.SuggestionApplied:
		v.refresh()
		switch {
		case msg.Err == nil:
			v.statusLine = v.styles.Success.Render("applied")
		case isConflict(msg.Err):
			v.statusLine = v.styles.Warning.Render("conflict: original text no longer present")
		default:
			v.statusLine = v.styles.Error.Render(fmt.Sprintf("apply failed: %v", msg.Err))
		}
		return v, nil

	case messages.HistoryChanged:
		v.refresh()
		if msg.Err != nil {
			v.statusLine = v.styles.Error.Render(fmt.Sprintf("undo failed: %v", msg.Err))
		} else {
			v.statusLine = v.styles.Muted.Render("history restored")
		}
		return v, nil

	case tea.KeyMsg:
		if v.reviewing {
			return v, nil
		}
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}

		case "down", "j":
			if v.selected < len(v.suggestions)-1 {
				v.selected++
			}

		case "r":
			v.reviewing = true
			v.statusLine = v.styles.Muted.Render("reviewing manuscript...")
			return v, v.startReview()

		case "a":
			return v, v.applySelected()

		case "A":
			ctx := v.ctx
			rev := v.review
			return v, func() tea.Msg {
				_, err := rev.ApplyAllRemaining(ctx)
				return messages.SuggestionApplied{Err: err}
			}

		case "u":
			ctx := v.ctx
			proj := v.project
			return v, func() tea.Msg {
				_, err := proj.Undo(ctx)
				return messages.HistoryChanged{Err: err}
			}
		}
	}

	return v, nil
}

// View renders the suggestions view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Suggestions"))
	b.WriteString("\n\n")

	if len(v.suggestions) == 0 {
		b.WriteString(v.styles.Muted.Render("No suggestions yet. Press r to review the manuscript."))
		b.WriteString("\n")
	}

	ms := v.project.Manuscript()
	for i, sug := range v.suggestions {
		// The marker follows the live text, not just the flag: an
		// undone suggestion renders as unapplied again.
		marker := "[ ]"
		if sug.Status == domain.StatusApplied {
			if doc := ms.Document(sug.DocumentID); doc != nil && sug.AppliedIn(doc.Text) {
				marker = "[x]"
			}
		}

		line := fmt.Sprintf("%s (%s) %s", marker, sug.Kind, clip(sug.OriginalText, 50))
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Subtitle
		}
		b.WriteString(cursor + style.Render(line))
		b.WriteString("\n")

		if i == v.selected {
			b.WriteString("      " + v.styles.Muted.Render("→ "+clip(sug.SuggestedText, 60)))
			b.WriteString("\n")
			if sug.Rationale != "" {
				b.WriteString("      " + v.styles.Muted.Render(clip(sug.Rationale, 64)))
				b.WriteString("\n")
			}
		}
	}

	if v.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(v.statusLine)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[r] Review  [a] Apply  [A] Apply all  [u] Undo  [Esc] Back"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Reviewing reports whether a review stream is in flight.
func (v *View) Reviewing() bool {
	return v.reviewing
}

func isConflict(err error) bool {
	return errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrMissingTarget)
}

// clip shortens s for single-line display.
func clip(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
