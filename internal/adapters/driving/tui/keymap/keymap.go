// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Back closes the overlay or leaves the search input.
	Back key.Binding

	// Submit submits the focused form or query.
	Submit key.Binding

	// Select opens the detail overlay for the highlighted card.
	Select key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// NextField moves focus between form fields.
	NextField key.Binding

	// Search focuses the search input.
	Search key.Binding

	// LoadMore appends the next catalog page.
	LoadMore key.Binding

	// Logout clears the session.
	Logout key.Binding
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
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "next field"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "load more"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "logout"),
		),
	}
}

// LoginHelp returns keybindings for the login form.
func (k *KeyMap) LoginHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Submit}
}

// CatalogHelp returns keybindings for the card list. The load-more hint is
// omitted when canLoadMore is false.
func (k *KeyMap) CatalogHelp(canLoadMore bool) []key.Binding {
	bindings := []key.Binding{k.Search, k.Select}
	if canLoadMore {
		bindings = append(bindings, k.LoadMore)
	}
	return append(bindings, k.Logout, k.Quit)
}

// InputHelp returns keybindings while the search input has focus.
func (k *KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Back}
}

// OverlayHelp returns keybindings while the detail overlay is open.
func (k *KeyMap) OverlayHelp() []key.Binding {
	return []key.Binding{k.Back}
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
