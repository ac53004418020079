// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Apply applies the highlighted suggestion.
	Apply key.Binding

	// ApplyAll applies every remaining suggestion.
	ApplyAll key.Binding

	// Review starts a suggestion stream.
	Review key.Binding

	// Undo restores the previous manuscript state.
	Undo key.Binding

	// Redo restores the next manuscript state.
	Redo key.Binding

	// Cancel stops a running sweep.
	Cancel key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Apply: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "apply"),
		),
		ApplyAll: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "apply all"),
		),
		Review: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "review"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "redo"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cancel"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help footer.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

// SuggestionsHelp returns keybindings for the suggestions view.
func (k *KeyMap) SuggestionsHelp() []key.Binding {
	return []key.Binding{k.Review, k.Apply, k.ApplyAll, k.Undo, k.Back}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
