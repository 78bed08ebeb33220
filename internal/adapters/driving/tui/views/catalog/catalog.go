// Package catalog provides the card list view with search, paging and the
// detail overlay.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dexter-cli/internal/core/domain"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driving"
)

// Services groups the driving ports the view calls.
type Services struct {
	Catalog driving.CatalogService
	Search  driving.SearchService
	Session driving.SessionService
}

// View renders the accumulated catalog, or the current search results,
// as coloured cards.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	list      *list.CardList
	statusbar *status.Bar

	services Services
	ctx      context.Context

	// items and cursor mirror the aggregator after the last page load.
	items  []domain.CatalogItem
	cursor domain.PageCursor

	// query is the last submitted non-empty query; empty means the list
	// shows the accumulated catalog.
	query string
	// seq numbers submitted queries. Completions with an older seq are
	// dropped.
	seq uint64

	loading    bool
	searching  bool
	focusInput bool
	detail     *domain.CatalogItem
	err        error

	width  int
	height int
	ready  bool
}

// NewView creates a new catalog view.
func NewView(s *styles.Styles, km *keymap.KeyMap, services Services) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:    s,
		keymap:    km,
		input:     input.NewSearchField(s),
		list:      list.NewCardList(s),
		statusbar: status.NewBar(s, km),
		services:  services,
		ctx:       context.Background(),
		cursor:    domain.InitialCursor(),
		width:     80,
		height:    24,
	}
	v.input.Blur()
	v.refreshHints()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the first page.
func (v *View) Init() tea.Cmd {
	v.loading = true
	spin := v.statusbar.SetState(status.StateLoading)
	v.refreshHints()
	return tea.Batch(spin, v.loadInitial())
}

// Update handles messages for the catalog view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.PageLoaded:
		v.handlePageLoaded(msg)
		return v, nil

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.LoggedOut:
		if msg.Err != nil {
			v.setError(msg.Err)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.statusbar, cmd = v.statusbar.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.detail != nil {
		if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter {
			v.detail = nil
			v.refreshHints()
		}
		return v, nil
	}

	if v.focusInput {
		return v.handleInputKey(msg)
	}

	switch msg.String() {
	case "/":
		v.focusInput = true
		v.refreshHints()
		return v, v.input.Focus()
	case "enter":
		if item := v.list.SelectedItem(); item != nil {
			v.detail = item
			v.refreshHints()
		}
		return v, nil
	case "esc":
		if v.query != "" {
			v.input.SetValue("")
			return v, v.submitQuery()
		}
		return v, nil
	case "m":
		if !v.CanLoadMore() {
			return v, nil
		}
		v.loading = true
		spin := v.statusbar.SetState(status.StateLoading)
		v.refreshHints()
		return v, tea.Batch(spin, v.loadMore())
	case "L":
		return v, v.logout()
	case "q":
		return v, tea.Quit
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// handleInputKey processes keys while the search input has focus.
func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		v.focusInput = false
		v.input.Blur()
		v.refreshHints()
		return v, nil
	case tea.KeyEnter:
		v.focusInput = false
		v.input.Blur()
		return v, v.submitQuery()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submitQuery resolves the input's current value. Every submission, empty
// or not, supersedes the previous one.
func (v *View) submitQuery() tea.Cmd {
	v.seq++
	v.query = domain.NormaliseQuery(v.input.Value())
	v.err = nil

	var spin tea.Cmd
	if v.query == "" {
		// Restore immediately; the empty resolve only cancels work in flight.
		v.showCatalog()
	} else {
		v.searching = true
		spin = v.statusbar.SetState(status.StateSearching)
	}
	v.refreshHints()
	return tea.Batch(spin, v.performSearch(v.seq, v.query))
}

// handlePageLoaded applies a finished page load.
func (v *View) handlePageLoaded(msg messages.PageLoaded) {
	v.loading = false
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.items = msg.Items
	v.cursor = msg.Cursor
	if v.query == "" {
		v.list.ReplaceKeepSelection(v.items)
		v.statusbar.SetCount("Showing", len(v.items))
	}
	v.settle()
}

// handleSearchCompleted applies a search result unless a newer query has
// been submitted since.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Seq != v.seq {
		return
	}
	v.searching = false

	switch {
	case errors.Is(msg.Err, domain.ErrSuperseded):
		// Overtaken outside this view; nothing to show.
		v.settle()
		return
	case msg.Err != nil:
		v.detail = nil
		v.list.SetItems(nil)
		v.statusbar.SetCount("Found", 0)
		v.setError(msg.Err)
		return
	case msg.Result.Unfiltered:
		v.showCatalog()
		return
	}

	v.err = nil
	v.detail = nil
	v.list.SetItems(msg.Result.Items)
	v.statusbar.SetCount("Found", len(msg.Result.Items))
	v.settle()
}

// showCatalog puts the accumulated catalog back in the list.
func (v *View) showCatalog() {
	v.query = ""
	v.searching = false
	v.detail = nil
	v.list.SetItems(v.items)
	v.statusbar.SetCount("Showing", len(v.items))
	v.settle()
}

// settle returns the status bar to ready unless work is still in flight.
func (v *View) settle() {
	switch {
	case v.loading:
		v.statusbar.SetState(status.StateLoading)
	case v.searching:
		v.statusbar.SetState(status.StateSearching)
	default:
		v.statusbar.SetState(status.StateReady)
	}
	v.refreshHints()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// refreshHints picks the keybinding hints for the current mode.
func (v *View) refreshHints() {
	switch {
	case v.detail != nil:
		v.statusbar.SetHints(v.keymap.OverlayHelp())
	case v.focusInput:
		v.statusbar.SetHints(v.keymap.InputHelp())
	default:
		v.statusbar.SetHints(v.keymap.CatalogHelp(v.CanLoadMore()))
	}
}

// CanLoadMore reports whether the load-more action is offered: no query
// is active, the catalog has further pages and no load is running.
func (v *View) CanLoadMore() bool {
	return v.query == "" && v.cursor.HasMore && !v.loading
}

func (v *View) loadInitial() tea.Cmd {
	return func() tea.Msg {
		if v.services.Catalog == nil {
			return messages.PageLoaded{Err: ErrNoCatalogService}
		}
		items, err := v.services.Catalog.LoadInitial(v.ctx)
		return messages.PageLoaded{Items: items, Cursor: v.services.Catalog.Cursor(), Err: err}
	}
}

func (v *View) loadMore() tea.Cmd {
	return func() tea.Msg {
		if v.services.Catalog == nil {
			return messages.PageLoaded{Err: ErrNoCatalogService}
		}
		items, err := v.services.Catalog.LoadMore(v.ctx)
		return messages.PageLoaded{Items: items, Cursor: v.services.Catalog.Cursor(), Err: err}
	}
}

func (v *View) performSearch(seq uint64, query string) tea.Cmd {
	return func() tea.Msg {
		if v.services.Search == nil {
			return messages.SearchCompleted{Seq: seq, Err: ErrNoSearchService}
		}
		result, err := v.services.Search.Resolve(v.ctx, query)
		return messages.SearchCompleted{Seq: seq, Result: result, Err: err}
	}
}

func (v *View) logout() tea.Cmd {
	return func() tea.Msg {
		if v.services.Session == nil {
			return messages.LoggedOut{Err: ErrNoSessionService}
		}
		return messages.LoggedOut{Err: v.services.Session.Logout(v.ctx)}
	}
}

// View renders the catalog view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("Dexter"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.detail != nil {
		sections = append(sections, v.renderDetail(v.detail))
	} else {
		sections = append(sections, v.list.View())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderDetail renders the overlay: HP badge, name, primary type badge and
// the attack, defense and speed stats.
func (v *View) renderDetail(item *domain.CatalogItem) string {
	colour := styles.CardColour(item.Color)

	hp := v.styles.BadgeFor(v.styles.Theme().Primary).
		Render(fmt.Sprintf("HP %d", item.Stat(domain.StatHP)))
	name := v.styles.Title.Render(fmt.Sprintf("%s  #%03d", item.DisplayName(), item.ID))
	typeBadge := v.styles.BadgeFor(colour).Render(domain.Capitalise(item.PrimaryType()))

	stats := []string{
		fmt.Sprintf("Attack   %d", item.Stat(domain.StatAttack)),
		fmt.Sprintf("Defense  %d", item.Stat(domain.StatDefense)),
		fmt.Sprintf("Speed    %d", item.Stat(domain.StatSpeed)),
	}

	lines := []string{hp, "", name, typeBadge, "", v.styles.Normal.Render(strings.Join(stats, "\n"))}
	if len(item.Abilities) > 0 {
		abilities := make([]string, len(item.Abilities))
		for i, a := range item.Abilities {
			abilities[i] = domain.Capitalise(a)
		}
		lines = append(lines, "", v.styles.Muted.Render("Abilities: "+strings.Join(abilities, ", ")))
	}
	if item.ImageURL != "" {
		lines = append(lines, v.styles.Muted.Render(item.ImageURL))
	}

	return v.styles.Border.
		BorderForeground(colour).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-8) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Items returns the entries currently shown.
func (v *View) Items() []domain.CatalogItem {
	return v.list.Items()
}

// Query returns the last submitted query.
func (v *View) Query() string {
	return v.query
}

// Detail returns the entry shown in the overlay, or nil when closed.
func (v *View) Detail() *domain.CatalogItem {
	return v.detail
}

// InputFocused returns whether the search input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Loading reports whether a page load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset clears search state and the overlay. The accumulated catalog is
// kept until the next Init reloads it.
func (v *View) Reset() {
	v.seq++
	v.query = ""
	v.searching = false
	v.loading = false
	v.focusInput = false
	v.detail = nil
	v.err = nil
	v.input.Reset()
	v.input.Blur()
	v.statusbar.Clear()
	v.refreshHints()
}
