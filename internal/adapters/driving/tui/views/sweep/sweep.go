// Package sweep provides the sweep progress view for the TUI.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/redraft-labs/redraft-cli/internal/adapters/driving/tui/messages"
	"github.com/redraft-labs/redraft-cli/internal/adapters/driving/tui/styles"
	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driving"
)

// pollInterval is how often the view polls sweep status while running.
const pollInterval = 500 * time.Millisecond

// sweepKinds are the analysis kinds whose issues can be swept.
var sweepKinds = []domain.ScanKind{
	domain.ScanHealth,
	domain.ScanContinuity,
	domain.ScanThemes,
	domain.ScanCohesion,
}

// View represents the sweep view: pick an analysis kind, then watch
// the rewrite pass move through the manuscript chapter by chapter.
type View struct {
	styles *styles.Styles
	sweep  driving.SweepPipeline
	ctx    context.Context

	progress progress.Model
	spinner  spinner.Model

	selected   int
	running    bool
	statusLine string
	width      int
	height     int
}

// NewView creates a new sweep view.
func NewView(s *styles.Styles, sweep driving.SweepPipeline) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &View{
		styles:   s,
		sweep:    sweep,
		ctx:      context.Background(),
		progress: progress.New(progress.WithDefaultGradient()),
		spinner:  sp,
		width:    80,
		height:   24,
	}
}

// WithContext sets the context used for sweep runs.
func (v *View) WithContext(ctx context.Context) {
	v.ctx = ctx
}

// Init initialises the sweep view.
func (v *View) Init() tea.Cmd {
	return v.spinner.Tick
}

// startSweep returns a command that runs the sweep for the given kind.
func (v *View) startSweep(kind domain.ScanKind) tea.Cmd {
	ctx := v.ctx
	sweep := v.sweep
	run := func() tea.Msg {
		return messages.SweepFinished{Err: sweep.Run(ctx, kind)}
	}
	return tea.Batch(run, tickCmd())
}

// tickCmd schedules the next status poll.
func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return messages.SweepTicked{}
	})
}

// Update handles messages for the sweep view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.progress.Width = min(msg.Width-4, 60)
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.SweepTicked:
		if !v.running {
			return v, nil
		}
		return v, tickCmd()

	case messages.SweepFinished:
		v.running = false
		status := v.sweep.Status()
		switch {
		case msg.Err == nil:
			v.statusLine = v.styles.Success.Render(fmt.Sprintf(
				"sweep complete: %d chapters rewritten, %d failed",
				status.Completed, status.Failed))
		case errors.Is(msg.Err, domain.ErrNothingToDo):
			v.statusLine = v.styles.Warning.Render(
				"no issues recorded for that kind; run a scan first")
		case errors.Is(msg.Err, context.Canceled):
			v.statusLine = v.styles.Warning.Render(fmt.Sprintf(
				"sweep cancelled after %d chapters", status.Completed))
		default:
			v.statusLine = v.styles.Error.Render(fmt.Sprintf("sweep failed: %v", msg.Err))
		}
		return v, nil

	case tea.KeyMsg:
		if v.running {
			if msg.String() == "c" {
				v.sweep.Cancel()
			}
			return v, nil
		}
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}

		case "down", "j":
			if v.selected < len(sweepKinds)-1 {
				v.selected++
			}

		case "enter":
			v.running = true
			v.statusLine = ""
			return v, v.startSweep(sweepKinds[v.selected])
		}
	}

	return v, nil
}

// View renders the sweep view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Sweep"))
	b.WriteString("\n\n")

	if v.running {
		status := v.sweep.Status()
		b.WriteString(v.spinner.View())
		b.WriteString(" ")
		b.WriteString(v.styles.Normal.Render(status.StatusText))
		b.WriteString("\n\n")
		b.WriteString(v.progress.ViewAs(status.PercentComplete / 100))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf(
			"%d of %d chapters (%d failed)", status.Completed, status.Total, status.Failed)))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[c] Cancel"))
		return b.String()
	}

	b.WriteString(v.styles.Muted.Render("Rewrite every chapter against recorded issues."))
	b.WriteString("\n\n")

	for i, kind := range sweepKinds {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Subtitle
		}
		b.WriteString(cursor + style.Render(kind.String()))
		b.WriteString("\n")
	}

	if v.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(v.statusLine)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Sweep  [Esc] Back"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Running reports whether a sweep is in flight.
func (v *View) Running() bool {
	return v.running
}
