package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dexter-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dexter-cli/internal/core/domain"
	"github.com/custodia-labs/dexter-cli/internal/core/services"
)

// MockCatalogService implements driving.CatalogService for CLI tests.
type MockCatalogService struct {
	pages       [][]domain.CatalogItem
	loaded      int
	err         error
	lookup      map[string]domain.CatalogItem
	lookupErr   error
	initialRuns int
}

func (m *MockCatalogService) LoadInitial(_ context.Context) ([]domain.CatalogItem, error) {
	m.initialRuns++
	if m.err != nil {
		return nil, m.err
	}
	m.loaded = min(1, len(m.pages))
	return m.Items(), nil
}

func (m *MockCatalogService) LoadMore(_ context.Context) ([]domain.CatalogItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.loaded < len(m.pages) {
		m.loaded++
	}
	return m.Items(), nil
}

func (m *MockCatalogService) Lookup(_ context.Context, ref string) (domain.CatalogItem, error) {
	if m.lookupErr != nil {
		return domain.CatalogItem{}, m.lookupErr
	}
	item, ok := m.lookup[ref]
	if !ok {
		return domain.CatalogItem{}, fmt.Errorf("lookup %q: %w", ref, domain.ErrNotFound)
	}
	return item, nil
}

func (m *MockCatalogService) Items() []domain.CatalogItem {
	var items []domain.CatalogItem
	for _, p := range m.pages[:m.loaded] {
		items = append(items, p...)
	}
	return items
}

func (m *MockCatalogService) Cursor() domain.PageCursor {
	return domain.PageCursor{HasMore: m.loaded < len(m.pages), Loaded: m.loaded > 0}
}

func (m *MockCatalogService) Loading() bool { return false }

// MockSearchService implements driving.SearchService for CLI tests.
type MockSearchService struct {
	results map[string][]domain.CatalogItem
	err     error
}

func (m *MockSearchService) Resolve(_ context.Context, query string) (domain.SearchResult, error) {
	if m.err != nil {
		return domain.SearchResult{}, m.err
	}
	q := domain.NormaliseQuery(query)
	if q == "" {
		return domain.SearchResult{Unfiltered: true, Pass: domain.MatchPassNone}, nil
	}
	items := m.results[q]
	pass := domain.MatchPassNone
	if len(items) > 0 {
		pass = domain.MatchPassPrefix
	}
	return domain.SearchResult{Query: q, Pass: pass, Items: items}, nil
}

func pokemon(id int, name, typ, ability, colour string) domain.CatalogItem {
	return domain.CatalogItem{
		ID:        id,
		Name:      name,
		Types:     []string{typ},
		Abilities: []string{ability},
		Stats: map[string]int{
			domain.StatHP: 45, domain.StatAttack: 49, domain.StatDefense: 49, domain.StatSpeed: 45,
		},
		ImageURL: fmt.Sprintf("https://img.example/%d.png", id),
		Color:    colour,
	}
}

func numbered(from, n int) []domain.CatalogItem {
	items := make([]domain.CatalogItem, n)
	for i := range n {
		items[i] = pokemon(from+i, fmt.Sprintf("entry-%d", from+i), "normal", "run-away", "gray")
	}
	return items
}

type testServices struct {
	catalog  *MockCatalogService
	search   *MockSearchService
	session  *services.SessionService
	settings *services.SettingsService
	config   *memory.ConfigStore
}

// setupTestServices installs mock catalog/search services and real session
// and settings services over in-memory stores.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	pikachu := pokemon(25, "pikachu", "electric", "static", "yellow")
	ts := &testServices{
		catalog: &MockCatalogService{
			pages:  [][]domain.CatalogItem{numbered(1, 21), numbered(22, 21)},
			lookup: map[string]domain.CatalogItem{"pikachu": pikachu, "25": pikachu},
		},
		search: &MockSearchService{results: map[string][]domain.CatalogItem{
			"pika": {pikachu},
		}},
		config: memory.NewConfigStore(),
	}
	ts.session = services.NewSessionService(memory.NewSessionStore())
	ts.settings = services.NewSettingsService(ts.config)

	SetServices(Services{
		Catalog:  ts.catalog,
		Search:   ts.search,
		Session:  ts.session,
		Settings: ts.settings,
	})
	t.Cleanup(func() { SetServices(Services{}) })
	return ts
}

// login creates a session so gated commands run.
func (ts *testServices) login(t *testing.T) {
	t.Helper()
	_, err := ts.session.Login(context.Background(), "ash@example.com", "pikachu")
	require.NoError(t, err)
}

// resetFlags restores package-level flag variables between runs.
func resetFlags() {
	verbose = false
	loginIdentifier = ""
	listPages = 1
	listJSON = false
	searchJSON = false
	tuiLogFile = ""
}

// runCommand executes the root command with args and stdin, returning
// everything written to stdout and stderr.
func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags()
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
