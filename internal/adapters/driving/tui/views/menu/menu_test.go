package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redraft-labs/redraft-cli/internal/adapters/driving/tui/messages"
)

func TestView_Navigation(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)

	// Down moves the cursor
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, v.selected)

	// Up moves back
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, v.selected)

	// Up at the top stays put
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, v.selected)
}

func TestView_SelectEmitsViewChanged(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	changed, ok := msg.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewSuggestions, changed.View)
}

func TestView_QuitItem(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)
	v.selected = len(v.items) - 1

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_RendersManuscriptSummary(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)
	v.SetManuscript("The Long Winter", 12, 84000)

	out := v.View()

	assert.Contains(t, out, "Redraft")
	assert.Contains(t, out, "The Long Winter")
	assert.Contains(t, out, "12 chapters")
}
