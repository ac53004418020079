// Package report provides the analysis report view for the TUI.
package report

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/redraft-labs/redraft-cli/internal/adapters/driving/tui/styles"
	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driving"
	"github.com/redraft-labs/redraft-cli/internal/core/services"
)

// View represents the scrollable analysis report view.
type View struct {
	styles   *styles.Styles
	project  driving.ProjectSession
	scan     driving.ScanRunner
	viewport viewport.Model
	ready    bool
}

// NewView creates a new report view. The scan runner may be nil; the
// view then renders the report for an empty record.
func NewView(s *styles.Styles, project driving.ProjectSession, scan driving.ScanRunner) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:   s,
		project:  project,
		scan:     scan,
		viewport: viewport.New(80, 20),
	}
}

// Init initialises the report view.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	return nil
}

// Refresh re-renders the report from the current record.
func (v *View) Refresh() {
	var rec domain.AnalysisRecord
	if v.scan != nil {
		rec = v.scan.Record()
	}
	v.viewport.SetContent(services.RenderReport(v.project.Manuscript(), rec))
}

// Update handles messages for the report view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		v.viewport.Width = msg.Width
		v.viewport.Height = msg.Height - 4
		v.ready = true
		return v, nil
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the report view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Report"))
	b.WriteString("\n\n")
	b.WriteString(v.viewport.View())
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Scroll  [Esc] Back"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = height - 4
	v.ready = true
}
