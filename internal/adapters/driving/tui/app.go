package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/views/catalog"
	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/views/login"
	"github.com/custodia-labs/dexter-cli/internal/core/domain"
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

	// loginView is the identifier and secret form.
	loginView *login.View

	// catalogView is the card list with search and detail overlay.
	catalogView *catalog.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// session is the session created by the last login, if any.
	session *domain.Session

	// err holds the last error that occurred.
	err error

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
	km := keymap.DefaultKeyMap()

	return &App{
		ports:     ports,
		ctx:       context.Background(),
		styles:    s,
		loginView: login.NewView(s, km, ports.Session),
		catalogView: catalog.NewView(s, km, catalog.Services{
			Catalog: ports.Catalog,
			Search:  ports.Search,
			Session: ports.Session,
		}),
		currentView: messages.ViewSplash,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.loginView.WithContext(ctx)
	a.catalogView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It resolves the startup route from the stored session.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("dexter"),
		a.resolveRoute(),
	)
}

// resolveRoute picks the login or catalog view from the session store.
func (a *App) resolveRoute() tea.Cmd {
	return func() tea.Msg {
		route := a.ports.Session.Route(a.ctx)
		return messages.ViewChanged{View: messages.ViewForRoute(route)}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.LoggedIn:
		a.loginView, cmd = a.loginView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			return a, cmd
		}
		a.err = nil
		a.session = msg.Session
		a.loginView.Reset()
		return a, a.switchTo(messages.ViewCatalog)

	case messages.LoggedOut:
		if msg.Err != nil {
			a.err = msg.Err
			a.catalogView, cmd = a.catalogView.Update(msg)
			return a, cmd
		}
		a.err = nil
		a.session = nil
		a.catalogView.Reset()
		return a, a.switchTo(messages.ViewLogin)

	case messages.ErrorOccurred:
		a.err = msg.Err

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case messages.ViewCatalog:
		a.catalogView, cmd = a.catalogView.Update(msg)
	case messages.ViewSplash:
		// Nothing to forward until the route is known
	}

	return a, cmd
}

// switchTo activates a view and runs its initialisation.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	switch view {
	case messages.ViewLogin:
		return a.loginView.Init()
	case messages.ViewCatalog:
		return a.catalogView.Init()
	case messages.ViewSplash:
	}
	return nil
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewLogin:
		return a.loginView.View()
	case messages.ViewCatalog:
		return a.catalogView.View()
	default:
		return a.styles.Title.Render("Dexter") + "\n\n" + a.styles.Muted.Render("Loading...")
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Session returns the session created by the last login in this run.
func (a *App) Session() *domain.Session {
	return a.session
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.loginView.SetDimensions(width, height)
	a.catalogView.SetDimensions(width, height)
}
