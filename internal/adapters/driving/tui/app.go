package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/redraft-labs/redraft-cli/internal/adapters/driving/tui/messages"
	"github.com/redraft-labs/redraft-cli/internal/adapters/driving/tui/styles"
	"github.com/redraft-labs/redraft-cli/internal/adapters/driving/tui/views/menu"
	"github.com/redraft-labs/redraft-cli/internal/adapters/driving/tui/views/report"
	"github.com/redraft-labs/redraft-cli/internal/adapters/driving/tui/views/suggestions"
	"github.com/redraft-labs/redraft-cli/internal/adapters/driving/tui/views/sweep"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// suggestionsView is the review and apply view.
	suggestionsView *suggestions.View

	// sweepView is the sweep progress view.
	sweepView *sweep.View

	// reportView is the analysis report view.
	reportView *report.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	menuView := menu.NewView(s)
	suggestionsView := suggestions.NewView(s, ports.Review, ports.Project)
	sweepView := sweep.NewView(s, ports.Sweep)
	reportView := report.NewView(s, ports.Project, ports.Scan)

	ms := ports.Project.Manuscript()
	menuView.SetManuscript(ms.Title, len(ms.Documents), ms.WordCount())

	return &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		menuView:        menuView,
		suggestionsView: suggestionsView,
		sweepView:       sweepView,
		reportView:      reportView,
		currentView:     messages.ViewMenu,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) {
	a.ctx = ctx
	a.suggestionsView.WithContext(ctx)
	a.sweepView.WithContext(ctx)
}

// Init initialises the application.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.menuView.Init(),
		a.suggestionsView.Init(),
		a.sweepView.Init(),
		a.reportView.Init(),
	)
}

// Update handles incoming messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.suggestionsView.SetDimensions(msg.Width, msg.Height)
		a.sweepView.SetDimensions(msg.Width, msg.Height)
		a.reportView.SetDimensions(msg.Width, msg.Height)
		return a.routeToCurrent(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewReport {
			a.reportView.Refresh()
		}
		ms := a.ports.Project.Manuscript()
		a.menuView.SetManuscript(ms.Title, len(ms.Documents), ms.WordCount())
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if msg.String() == "esc" && a.currentView != messages.ViewMenu {
			// A running sweep owns the view until it finishes or is cancelled
			if a.currentView == messages.ViewSweep && a.sweepView.Running() {
				break
			}
			if a.currentView == messages.ViewSuggestions && a.suggestionsView.Reviewing() {
				break
			}
			a.currentView = messages.ViewMenu
			ms := a.ports.Project.Manuscript()
			a.menuView.SetManuscript(ms.Title, len(ms.Documents), ms.WordCount())
			return a, nil
		}
	}

	return a.routeToCurrent(msg)
}

// routeToCurrent forwards a message to the active view.
func (a *App) routeToCurrent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSuggestions:
		a.suggestionsView, cmd = a.suggestionsView.Update(msg)
	case messages.ViewSweep:
		a.sweepView, cmd = a.sweepView.Update(msg)
	case messages.ViewReport:
		a.reportView, cmd = a.reportView.Update(msg)
	}

	return a, cmd
}

// View renders the current view.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSuggestions:
		return a.suggestionsView.View()
	case messages.ViewSweep:
		return a.sweepView.View()
	case messages.ViewReport:
		return a.reportView.View()
	default:
		return a.menuView.View()
	}
}

// CurrentView returns the active view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}
