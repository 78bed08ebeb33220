// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateLoading   State = "loading"
	StateSearching State = "searching"
	StateError     State = "error"
)

// Bar displays application status, an entry count and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	spinner spinner.Model
	state   State
	message string
	label   string
	count   int
	hints   []key.Binding
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Muted

	return &Bar{
		styles:  s,
		keymap:  km,
		spinner: sp,
		state:   StateReady,
		hints:   []key.Binding{km.Quit},
		width:   80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update advances the spinner while the bar is busy.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); ok && s.Busy() {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	// Two columns go to the bar's horizontal padding.
	padding := max(s.width-2-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the left side of the status bar.
func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		return s.spinner.View() + s.styles.Muted.Render("Loading...")
	case StateSearching:
		return s.spinner.View() + s.styles.Muted.Render("Searching...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateReady:
		if s.label != "" {
			return s.styles.Normal.Render(fmt.Sprintf("%s %d", s.label, s.count))
		}
	}
	return s.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	hints := make([]string, 0, len(s.hints))
	for _, b := range s.hints {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state. Entering a busy state returns the
// spinner tick command.
func (s *Bar) SetState(state State) tea.Cmd {
	s.state = state
	if s.Busy() {
		return s.spinner.Tick
	}
	return nil
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// Busy reports whether a load or search is in flight.
func (s *Bar) Busy() bool {
	return s.state == StateLoading || s.state == StateSearching
}

// SetMessage sets the error message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetCount sets the count line, e.g. "Showing" 21 or "Found" 3.
func (s *Bar) SetCount(label string, count int) {
	s.label = label
	s.count = count
}

// Count returns the count label and value.
func (s *Bar) Count() (string, int) {
	return s.label, s.count
}

// SetHints sets the keybinding hints shown on the right.
func (s *Bar) SetHints(hints []key.Binding) {
	s.hints = hints
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.label = ""
	s.count = 0
}
