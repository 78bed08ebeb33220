// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/styles"
)

// Field wraps a bubbles textinput with a label and the TUI styling.
type Field struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewField creates a focused text field.
func NewField(s *styles.Styles, label, placeholder string) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &Field{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     50,
	}
}

// NewSecretField creates a field that masks its input.
func NewSecretField(s *styles.Styles, label, placeholder string) *Field {
	f := NewField(s, label, placeholder)
	f.textinput.EchoMode = textinput.EchoPassword
	f.textinput.EchoCharacter = '•'
	return f
}

// NewSearchField creates the catalog search box.
func NewSearchField(s *styles.Styles) *Field {
	return NewField(s, "Search: ", "Search by name...")
}

// Init initialises the field.
func (f *Field) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and the field.
func (f *Field) View() string {
	label := f.styles.Title.Render(f.label)
	input := f.styles.InputField.Render(f.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// Label returns the field label.
func (f *Field) Label() string {
	return f.label
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// Masked reports whether the field hides its input.
func (f *Field) Masked() bool {
	return f.textinput.EchoMode == textinput.EchoPassword
}

// SetWidth sets the width of the field.
func (f *Field) SetWidth(width int) {
	f.width = width
	// Account for label and padding
	f.textinput.Width = max(width-len(f.label)-6, 20)
}

// Width returns the current width.
func (f *Field) Width() int {
	return f.width
}

// Reset clears the input.
func (f *Field) Reset() {
	f.textinput.Reset()
}
