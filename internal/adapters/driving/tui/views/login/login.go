// Package login provides the identifier and secret form shown before a
// session exists.
package login

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driving"
)

// MissingFieldsMessage is shown when either field is empty on submit.
const MissingFieldsMessage = "Please fill in both fields"

const (
	fieldIdentifier = iota
	fieldSecret
	fieldCount
)

// View is the login form.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	fields    [fieldCount]*input.Field
	statusbar *status.Bar

	sessionService driving.SessionService
	ctx            context.Context

	focus      int
	submitting bool
	message    string
	width      int
	height     int
	ready      bool
}

// NewView creates a new login view.
func NewView(s *styles.Styles, km *keymap.KeyMap, sessionService driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:         s,
		keymap:         km,
		statusbar:      status.NewBar(s, km),
		sessionService: sessionService,
		ctx:            context.Background(),
		width:          80,
		height:         24,
	}
	v.fields[fieldIdentifier] = input.NewField(s, "Email:    ", "ash@example.com")
	v.fields[fieldSecret] = input.NewSecretField(s, "Password: ", "")
	v.statusbar.SetHints(km.LoginHelp())
	v.setFocus(fieldIdentifier)
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.fields[v.focus].Init()
}

// Update handles messages for the login view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.LoggedIn:
		v.submitting = false
		v.statusbar.SetState(status.StateReady)
		if msg.Err != nil {
			v.message = "Login failed: " + msg.Err.Error()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.statusbar, cmd = v.statusbar.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.submitting {
		return v, nil
	}

	switch msg.String() {
	case "tab", "down":
		v.setFocus((v.focus + 1) % fieldCount)
		return v, nil
	case "shift+tab", "up":
		v.setFocus((v.focus + fieldCount - 1) % fieldCount)
		return v, nil
	case "enter":
		return v.submit()
	}

	var cmd tea.Cmd
	v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
	return v, cmd
}

// submit checks both fields are present and starts the login.
func (v *View) submit() (*View, tea.Cmd) {
	identifier := strings.TrimSpace(v.fields[fieldIdentifier].Value())
	secret := v.fields[fieldSecret].Value()
	if identifier == "" || secret == "" {
		v.message = MissingFieldsMessage
		return v, nil
	}

	v.message = ""
	v.submitting = true
	spin := v.statusbar.SetState(status.StateLoading)
	return v, tea.Batch(spin, v.performLogin(identifier, secret))
}

// performLogin persists the session flag.
func (v *View) performLogin(identifier, secret string) tea.Cmd {
	return func() tea.Msg {
		if v.sessionService == nil {
			return messages.LoggedIn{Err: ErrNoSessionService}
		}
		session, err := v.sessionService.Login(v.ctx, identifier, secret)
		return messages.LoggedIn{Session: session, Err: err}
	}
}

// setFocus moves focus to the field at index.
func (v *View) setFocus(index int) {
	v.focus = index
	for i, f := range v.fields {
		if i == index {
			f.Focus()
		} else {
			f.Blur()
		}
	}
}

// View renders the login form.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections,
		v.styles.Title.Render("Dexter"),
		v.styles.Muted.Render("Log in to browse the catalog"),
		"",
		v.fields[fieldIdentifier].View(),
		v.fields[fieldSecret].View(),
		"",
	)

	if v.message != "" {
		sections = append(sections, v.styles.Error.Render(v.message), "")
	}

	sections = append(sections, v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	for _, f := range v.fields {
		f.SetWidth(min(width, 60))
	}
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Focus returns the index of the focused field.
func (v *View) Focus() int {
	return v.focus
}

// Identifier returns the identifier field value.
func (v *View) Identifier() string {
	return v.fields[fieldIdentifier].Value()
}

// Message returns the inline message, if any.
func (v *View) Message() string {
	return v.message
}

// Submitting reports whether a login is in flight.
func (v *View) Submitting() bool {
	return v.submitting
}

// Reset clears both fields and focuses the identifier.
func (v *View) Reset() {
	for _, f := range v.fields {
		f.Reset()
	}
	v.message = ""
	v.submitting = false
	v.statusbar.Clear()
	v.setFocus(fieldIdentifier)
}
