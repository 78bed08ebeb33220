package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dexter-cli/internal/core/domain"
)

// MockCatalogService implements driving.CatalogService for testing.
type MockCatalogService struct {
	LoadInitialFunc func(ctx context.Context) ([]domain.CatalogItem, error)
	LoadMoreFunc    func(ctx context.Context) ([]domain.CatalogItem, error)
	cursor          domain.PageCursor
}

func (m *MockCatalogService) LoadInitial(ctx context.Context) ([]domain.CatalogItem, error) {
	if m.LoadInitialFunc != nil {
		return m.LoadInitialFunc(ctx)
	}
	return nil, nil
}

func (m *MockCatalogService) LoadMore(ctx context.Context) ([]domain.CatalogItem, error) {
	if m.LoadMoreFunc != nil {
		return m.LoadMoreFunc(ctx)
	}
	return nil, nil
}

func (m *MockCatalogService) Lookup(ctx context.Context, ref string) (domain.CatalogItem, error) {
	return domain.CatalogItem{}, domain.ErrNotFound
}

func (m *MockCatalogService) Items() []domain.CatalogItem { return nil }

func (m *MockCatalogService) Cursor() domain.PageCursor { return m.cursor }

func (m *MockCatalogService) Loading() bool { return false }

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	ResolveFunc func(ctx context.Context, query string) (domain.SearchResult, error)
}

func (m *MockSearchService) Resolve(ctx context.Context, query string) (domain.SearchResult, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, query)
	}
	return domain.SearchResult{Query: query, Unfiltered: query == ""}, nil
}

// MockSessionService implements driving.SessionService for testing.
type MockSessionService struct {
	logouts int
	err     error
}

func (m *MockSessionService) Current(ctx context.Context) (*domain.Session, error) {
	return nil, nil
}

func (m *MockSessionService) Route(ctx context.Context) domain.Route {
	return domain.RouteCatalog
}

func (m *MockSessionService) Login(ctx context.Context, identifier, secret string) (*domain.Session, error) {
	return nil, nil
}

func (m *MockSessionService) Logout(ctx context.Context) error {
	m.logouts++
	return m.err
}

func entry(id int, name, colour string) domain.CatalogItem {
	return domain.CatalogItem{
		ID:        id,
		Name:      name,
		Types:     []string{"grass", "poison"},
		Abilities: []string{"overgrow", "chlorophyll"},
		Stats: map[string]int{
			domain.StatHP: 45, domain.StatAttack: 49, domain.StatDefense: 50, domain.StatSpeed: 51,
		},
		ImageURL: fmt.Sprintf("https://img.example/%d.png", id),
		Color:    colour,
	}
}

func page(from, n int) []domain.CatalogItem {
	items := make([]domain.CatalogItem, 0, n)
	for i := range n {
		items = append(items, entry(from+i, fmt.Sprintf("entry-%d", from+i), "green"))
	}
	return items
}

type fixture struct {
	view    *View
	catalog *MockCatalogService
	search  *MockSearchService
	session *MockSessionService
}

// newLoadedView returns a view that has applied a 21-entry first page.
func newLoadedView(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		catalog: &MockCatalogService{cursor: domain.PageCursor{Offset: 0, HasMore: true, Loaded: true}},
		search:  &MockSearchService{},
		session: &MockSessionService{},
	}
	f.catalog.LoadInitialFunc = func(context.Context) ([]domain.CatalogItem, error) {
		return page(1, 21), nil
	}
	f.view = NewView(nil, nil, Services{Catalog: f.catalog, Search: f.search, Session: f.session})
	f.view.SetDimensions(120, 60)

	require.NotNil(t, f.view.Init())
	require.True(t, f.view.Loading())
	f.view.Update(f.view.loadInitial()())
	require.Len(t, f.view.Items(), 21)
	return f
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeQuery(v *View, q string) tea.Cmd {
	v.Update(key("/"))
	v.input.SetValue("")
	for _, r := range q {
		v.Update(key(string(r)))
	}
	_, cmd := v.Update(key("enter"))
	return cmd
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, Services{})

	require.NotNil(t, v)
	assert.False(t, v.Ready())
	assert.Equal(t, "Initialising...", v.View())
	assert.False(t, v.InputFocused())
	assert.Nil(t, v.Detail())
}

func TestView_InitialLoad(t *testing.T) {
	f := newLoadedView(t)

	assert.False(t, f.view.Loading())
	assert.True(t, f.view.CanLoadMore())
	view := f.view.View()
	assert.Contains(t, view, "Showing 21")
	assert.Contains(t, view, "load more")
	assert.Contains(t, view, "Entry 1")
}

func TestView_LoadMoreAppends(t *testing.T) {
	f := newLoadedView(t)
	f.catalog.LoadMoreFunc = func(context.Context) ([]domain.CatalogItem, error) {
		return append(page(1, 21), page(22, 21)...), nil
	}
	f.catalog.cursor = domain.PageCursor{Offset: 21, HasMore: true, Loaded: true}
	f.view.list.SetSelected(5)

	_, cmd := f.view.Update(key("m"))
	require.NotNil(t, cmd)
	assert.True(t, f.view.Loading())
	assert.False(t, f.view.CanLoadMore())

	f.view.Update(f.view.loadMore()())

	assert.Len(t, f.view.Items(), 42)
	assert.Equal(t, 5, f.view.list.Selected())
	assert.Contains(t, f.view.View(), "Showing 42")
}

func TestView_LoadMoreHiddenWhenExhausted(t *testing.T) {
	f := newLoadedView(t)
	f.view.Update(messages.PageLoaded{Items: page(1, 21), Cursor: domain.PageCursor{HasMore: false, Loaded: true}})

	_, cmd := f.view.Update(key("m"))

	assert.Nil(t, cmd)
	assert.False(t, f.view.CanLoadMore())
	assert.NotContains(t, f.view.View(), "load more")
}

func TestView_LoadFailureKeepsState(t *testing.T) {
	f := newLoadedView(t)

	f.view.Update(messages.PageLoaded{Err: domain.ErrNetwork})

	assert.Len(t, f.view.Items(), 21)
	assert.ErrorIs(t, f.view.Err(), domain.ErrNetwork)
	assert.Contains(t, f.view.View(), "network error")
	assert.True(t, f.view.CanLoadMore())
}

func TestView_SearchShowsResults(t *testing.T) {
	f := newLoadedView(t)
	pikachu := entry(25, "pikachu", "yellow")
	var gotQuery string
	f.search.ResolveFunc = func(_ context.Context, q string) (domain.SearchResult, error) {
		gotQuery = q
		return domain.SearchResult{Query: q, Pass: domain.MatchPassPrefix, Items: []domain.CatalogItem{pikachu}}, nil
	}

	cmd := typeQuery(f.view, "Pika")
	require.NotNil(t, cmd)
	assert.Equal(t, "pika", f.view.Query())
	assert.False(t, f.view.InputFocused())
	assert.False(t, f.view.CanLoadMore())

	f.view.Update(f.view.performSearch(f.view.seq, f.view.Query())())

	assert.Equal(t, "pika", gotQuery)
	require.Len(t, f.view.Items(), 1)
	assert.Equal(t, "pikachu", f.view.Items()[0].Name)
	view := f.view.View()
	assert.Contains(t, view, "Found 1")
	assert.NotContains(t, view, "load more")
}

func TestView_SearchNoResults(t *testing.T) {
	f := newLoadedView(t)
	typeQuery(f.view, "zzz")

	f.view.Update(messages.SearchCompleted{Seq: f.view.seq, Result: domain.SearchResult{Query: "zzz", Pass: domain.MatchPassNone}})

	assert.Empty(t, f.view.Items())
	assert.Contains(t, f.view.View(), "Found 0")
	assert.Contains(t, f.view.View(), "No entries")
}

func TestView_StaleSearchDropped(t *testing.T) {
	f := newLoadedView(t)
	typeQuery(f.view, "pi")
	first := f.view.seq
	typeQuery(f.view, "char")
	second := f.view.seq
	require.Greater(t, second, first)

	f.view.Update(messages.SearchCompleted{Seq: second, Result: domain.SearchResult{
		Query: "char", Pass: domain.MatchPassPrefix, Items: []domain.CatalogItem{entry(4, "charmander", "red")},
	}})
	f.view.Update(messages.SearchCompleted{Seq: first, Result: domain.SearchResult{
		Query: "pi", Pass: domain.MatchPassPrefix, Items: []domain.CatalogItem{entry(25, "pikachu", "yellow")},
	}})

	require.Len(t, f.view.Items(), 1)
	assert.Equal(t, "charmander", f.view.Items()[0].Name)
	assert.Equal(t, "char", f.view.Query())
}

func TestView_SupersededCompletionSettles(t *testing.T) {
	f := newLoadedView(t)
	typeQuery(f.view, "pi")

	f.view.Update(messages.SearchCompleted{Seq: f.view.seq, Err: domain.ErrSuperseded})

	assert.NoError(t, f.view.Err())
	assert.NotContains(t, f.view.View(), "Searching")
}

func TestView_EmptyQueryRestoresList(t *testing.T) {
	f := newLoadedView(t)
	typeQuery(f.view, "pika")
	f.view.Update(messages.SearchCompleted{Seq: f.view.seq, Result: domain.SearchResult{
		Query: "pika", Pass: domain.MatchPassPrefix, Items: []domain.CatalogItem{entry(25, "pikachu", "yellow")},
	}})
	require.Len(t, f.view.Items(), 1)

	cmd := typeQuery(f.view, "")

	require.NotNil(t, cmd)
	assert.Equal(t, "", f.view.Query())
	assert.Len(t, f.view.Items(), 21)
	assert.True(t, f.view.CanLoadMore())
	assert.Contains(t, f.view.View(), "Showing 21")
}

func TestView_EmptyQuerySupersedesInFlightSearch(t *testing.T) {
	f := newLoadedView(t)
	typeQuery(f.view, "pika")
	stale := f.view.seq

	typeQuery(f.view, "   ")
	f.view.Update(messages.SearchCompleted{Seq: stale, Result: domain.SearchResult{
		Query: "pika", Pass: domain.MatchPassPrefix, Items: []domain.CatalogItem{entry(25, "pikachu", "yellow")},
	}})

	assert.Len(t, f.view.Items(), 21)
}

func TestView_EscClearsActiveQuery(t *testing.T) {
	f := newLoadedView(t)
	typeQuery(f.view, "pika")
	f.view.Update(messages.SearchCompleted{Seq: f.view.seq, Result: domain.SearchResult{
		Query: "pika", Pass: domain.MatchPassPrefix, Items: []domain.CatalogItem{entry(25, "pikachu", "yellow")},
	}})

	_, cmd := f.view.Update(key("esc"))

	require.NotNil(t, cmd)
	assert.Equal(t, "", f.view.Query())
	assert.Len(t, f.view.Items(), 21)
}

func TestView_EscLeavesInputWithoutSearching(t *testing.T) {
	f := newLoadedView(t)
	f.view.Update(key("/"))
	require.True(t, f.view.InputFocused())
	f.view.Update(key("x"))

	_, cmd := f.view.Update(key("esc"))

	assert.Nil(t, cmd)
	assert.False(t, f.view.InputFocused())
	assert.Equal(t, "", f.view.Query())
}

func TestView_SearchFailure(t *testing.T) {
	f := newLoadedView(t)
	typeQuery(f.view, "pika")

	f.view.Update(messages.SearchCompleted{Seq: f.view.seq, Err: fmt.Errorf("fetch index: %w", domain.ErrNetwork)})

	assert.ErrorIs(t, f.view.Err(), domain.ErrNetwork)
	assert.Contains(t, f.view.View(), "fetch index")
}

func TestView_SearchFailureClearsPreviousResults(t *testing.T) {
	f := newLoadedView(t)
	typeQuery(f.view, "pika")
	f.view.Update(messages.SearchCompleted{Seq: f.view.seq, Result: domain.SearchResult{
		Query: "pika", Pass: domain.MatchPassPrefix, Items: []domain.CatalogItem{entry(25, "pikachu", "yellow")},
	}})
	require.Len(t, f.view.Items(), 1)
	_, found := f.view.statusbar.Count()
	require.Equal(t, 1, found)

	typeQuery(f.view, "char")
	f.view.Update(messages.SearchCompleted{Seq: f.view.seq, Err: fmt.Errorf("fetch index: %w", domain.ErrNetwork)})

	assert.Equal(t, "char", f.view.Query())
	assert.Empty(t, f.view.Items())
	label, found := f.view.statusbar.Count()
	assert.Equal(t, "Found", label)
	assert.Equal(t, 0, found)
	assert.ErrorIs(t, f.view.Err(), domain.ErrNetwork)
	assert.Contains(t, f.view.View(), "No entries")

	f.view.Update(key("esc"))
	assert.Len(t, f.view.Items(), 21)
}

func TestView_DetailOverlay(t *testing.T) {
	f := newLoadedView(t)
	f.view.list.SetSelected(2)

	f.view.Update(key("enter"))

	detail := f.view.Detail()
	require.NotNil(t, detail)
	assert.Same(t, &f.view.Items()[2], detail)
	view := f.view.View()
	assert.Contains(t, view, "HP 45")
	assert.Contains(t, view, "Entry 3")
	assert.Contains(t, view, "#003")
	assert.Contains(t, view, "Grass")
	assert.Contains(t, view, "Attack   49")
	assert.Contains(t, view, "Defense  50")
	assert.Contains(t, view, "Speed    51")

	// Other keys are swallowed while the overlay is open.
	_, cmd := f.view.Update(key("m"))
	assert.Nil(t, cmd)
	assert.NotNil(t, f.view.Detail())

	f.view.Update(key("esc"))
	assert.Nil(t, f.view.Detail())
}

func TestView_DetailOnEmptyList(t *testing.T) {
	v := NewView(nil, nil, Services{})
	v.SetDimensions(100, 40)

	v.Update(key("enter"))

	assert.Nil(t, v.Detail())
}

func TestView_Logout(t *testing.T) {
	f := newLoadedView(t)

	_, cmd := f.view.Update(key("L"))
	require.NotNil(t, cmd)

	msg := cmd()
	loggedOut, ok := msg.(messages.LoggedOut)
	require.True(t, ok)
	assert.NoError(t, loggedOut.Err)
	assert.Equal(t, 1, f.session.logouts)
}

func TestView_LogoutFailure(t *testing.T) {
	f := newLoadedView(t)
	f.session.err = errors.New("store locked")

	_, cmd := f.view.Update(key("L"))
	f.view.Update(cmd())

	assert.Contains(t, f.view.View(), "store locked")
}

func TestView_Quit(t *testing.T) {
	f := newLoadedView(t)

	_, cmd := f.view.Update(key("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_TypingQDoesNotQuitInInput(t *testing.T) {
	f := newLoadedView(t)
	f.view.Update(key("/"))

	f.view.Update(key("q"))

	assert.True(t, f.view.InputFocused())
	assert.Equal(t, "q", f.view.input.Value())
}

func TestView_MissingServices(t *testing.T) {
	v := NewView(nil, nil, Services{})

	loaded, ok := v.loadInitial()().(messages.PageLoaded)
	require.True(t, ok)
	assert.ErrorIs(t, loaded.Err, ErrNoCatalogService)

	more, ok := v.loadMore()().(messages.PageLoaded)
	require.True(t, ok)
	assert.ErrorIs(t, more.Err, ErrNoCatalogService)

	searched, ok := v.performSearch(1, "x")().(messages.SearchCompleted)
	require.True(t, ok)
	assert.ErrorIs(t, searched.Err, ErrNoSearchService)

	out, ok := v.logout()().(messages.LoggedOut)
	require.True(t, ok)
	assert.ErrorIs(t, out.Err, ErrNoSessionService)
}

func TestView_Reset(t *testing.T) {
	f := newLoadedView(t)
	typeQuery(f.view, "pika")
	stale := f.view.seq

	f.view.Reset()
	f.view.Update(messages.SearchCompleted{Seq: stale, Result: domain.SearchResult{Query: "pika"}})

	assert.Equal(t, "", f.view.Query())
	assert.Nil(t, f.view.Detail())
	assert.NoError(t, f.view.Err())
}
