// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/redraft-labs/redraft-cli/internal/adapters/driving/tui/messages"
	"github.com/redraft-labs/redraft-cli/internal/adapters/driving/tui/styles"
)

// Item represents a single menu option.
type Item struct {
	Label string
	View  messages.ViewType
	Quit  bool // If true, selecting this item quits the app
}

// View represents the main menu view.
type View struct {
	styles    *styles.Styles
	items     []Item
	selected  int
	title     string
	wordCount int
	chapters  int
	width     int
	height    int
	ready     bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Suggestions", View: messages.ViewSuggestions},
			{Label: "Sweep", View: messages.ViewSweep},
			{Label: "Report", View: messages.ViewReport},
			{Label: "Quit", Quit: true},
		},
		selected: 0,
		width:    80,
		height:   24,
	}
}

// SetManuscript sets the manuscript summary shown under the title.
func (v *View) SetManuscript(title string, chapters, wordCount int) {
	v.title = title
	v.chapters = chapters
	v.wordCount = wordCount
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			item := v.items[v.selected]
			if item.Quit {
				return v, tea.Quit
			}
			return v, func() tea.Msg {
				return messages.ViewChanged{View: item.View}
			}

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Redraft"))
	b.WriteString("\n\n")

	if v.title != "" {
		summary := fmt.Sprintf("%s  (%d chapters, %d words)", v.title, v.chapters, v.wordCount)
		b.WriteString(v.styles.Muted.Render(summary))
		b.WriteString("\n\n")
	}

	for i, item := range v.items {
		cursor := "  "
		style := v.styles.Normal

		if i == v.selected {
			cursor = "> "
			style = v.styles.Subtitle
		}

		b.WriteString(cursor + style.Render(item.Label))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
