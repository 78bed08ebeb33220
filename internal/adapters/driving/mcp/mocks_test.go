package mcp

import (
	"context"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driving"
)

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	pages     [][]domain.CatalogItem
	loaded    int
	item      domain.CatalogItem
	lookupRef string
	err       error
	lookupErr error
}

func (m *mockCatalogService) LoadInitial(_ context.Context) ([]domain.CatalogItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.loaded = min(1, len(m.pages))
	return m.Items(), nil
}

func (m *mockCatalogService) LoadMore(_ context.Context) ([]domain.CatalogItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.loaded < len(m.pages) {
		m.loaded++
	}
	return m.Items(), nil
}

func (m *mockCatalogService) Lookup(_ context.Context, ref string) (domain.CatalogItem, error) {
	m.lookupRef = ref
	return m.item, m.lookupErr
}

func (m *mockCatalogService) Items() []domain.CatalogItem {
	var items []domain.CatalogItem
	for _, p := range m.pages[:m.loaded] {
		items = append(items, p...)
	}
	return items
}

func (m *mockCatalogService) Cursor() domain.PageCursor {
	return domain.PageCursor{
		Offset:  max(m.loaded-1, 0) * domain.DefaultPageSize,
		HasMore: m.loaded < len(m.pages),
		Loaded:  m.loaded > 0,
	}
}

func (m *mockCatalogService) Loading() bool { return false }

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	result domain.SearchResult
	err    error
	query  string
}

func (m *mockSearchService) Resolve(_ context.Context, query string) (domain.SearchResult, error) {
	m.query = query
	if m.err != nil {
		return domain.SearchResult{}, m.err
	}
	if domain.NormaliseQuery(query) == "" {
		return domain.SearchResult{Unfiltered: true, Pass: domain.MatchPassNone}, nil
	}
	return m.result, nil
}

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	session *domain.Session
	err     error
}

func (m *mockSessionService) Current(_ context.Context) (*domain.Session, error) {
	return m.session, m.err
}

func (m *mockSessionService) Route(_ context.Context) domain.Route {
	return domain.RouteFor(m.session)
}

func (m *mockSessionService) Login(_ context.Context, identifier, _ string) (*domain.Session, error) {
	return &domain.Session{Authenticated: true, Identifier: identifier}, nil
}

func (m *mockSessionService) Logout(_ context.Context) error {
	m.session = nil
	return nil
}

func item(id int, name string) domain.CatalogItem {
	return domain.CatalogItem{
		ID:        id,
		Name:      name,
		Types:     []string{"electric"},
		Abilities: []string{"static"},
		Stats:     map[string]int{domain.StatHP: 35, domain.StatSpeed: 90},
		Color:     "yellow",
	}
}

func pageOf(from, n int) []domain.CatalogItem {
	items := make([]domain.CatalogItem, n)
	for i := range n {
		items[i] = item(from+i, "entry")
	}
	return items
}

func loggedIn() *mockSessionService {
	return &mockSessionService{session: &domain.Session{Authenticated: true, Identifier: "ash@example.com"}}
}

// catalogOf returns a factory that always hands out c.
func catalogOf(c driving.CatalogService) CatalogFactory {
	return func() driving.CatalogService { return c }
}

// searchOf returns a factory that always hands out s.
func searchOf(s driving.SearchService) SearchFactory {
	return func() driving.SearchService { return s }
}
