package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dexter-cli/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService aggregates paginated catalog listings into a hydrated,
// append-only sequence of items.
//
// Each load is atomic: items and cursor change only after the whole page has
// been listed and hydrated. At most one load runs at a time.
type CatalogService struct {
	client      driven.CatalogClient
	pageSize    int
	concurrency int

	mu      sync.Mutex
	items   []domain.CatalogItem
	cursor  domain.PageCursor
	loading bool
}

// NewCatalogService creates a catalog aggregator.
// Non-positive pageSize or concurrency fall back to the defaults.
func NewCatalogService(client driven.CatalogClient, pageSize, concurrency int) *CatalogService {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &CatalogService{
		client:      client,
		pageSize:    pageSize,
		concurrency: concurrency,
		cursor:      domain.InitialCursor(),
	}
}

// LoadInitial loads the first page and replaces the accumulated items.
func (s *CatalogService) LoadInitial(ctx context.Context) ([]domain.CatalogItem, error) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil, domain.ErrLoadInProgress
	}
	s.loading = true
	s.mu.Unlock()
	defer s.finishLoad()

	logger.Section("Catalog Load")
	logger.Debug("Initial page: offset=0 limit=%d", s.pageSize)

	items, hasMore, err := s.fetchPage(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("load initial page: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.cursor = domain.PageCursor{Offset: 0, HasMore: hasMore, Loaded: true}
	logger.Info("Loaded %d items, more=%t", len(items), hasMore)
	return cloneItems(s.items), nil
}

// LoadMore appends the next page to the accumulated items.
// It returns the current items unchanged, without any network call, when
// the catalog is exhausted or another load is in flight.
func (s *CatalogService) LoadMore(ctx context.Context) ([]domain.CatalogItem, error) {
	s.mu.Lock()
	if !s.cursor.Loaded && !s.loading {
		s.mu.Unlock()
		return s.LoadInitial(ctx)
	}
	if s.loading || !s.cursor.HasMore {
		logger.Debug("LoadMore skipped: loading=%t more=%t", s.loading, s.cursor.HasMore)
		items := cloneItems(s.items)
		s.mu.Unlock()
		return items, nil
	}
	s.loading = true
	offset := s.cursor.Offset + s.pageSize
	s.mu.Unlock()
	defer s.finishLoad()

	logger.Section("Catalog Load More")
	logger.Debug("Next page: offset=%d limit=%d", offset, s.pageSize)

	page, hasMore, err := s.fetchPage(ctx, offset)
	if err != nil {
		return nil, fmt.Errorf("load page at offset %d: %w", offset, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, page...)
	s.cursor = domain.PageCursor{Offset: offset, HasMore: hasMore, Loaded: true}
	logger.Info("Appended %d items (total %d), more=%t", len(page), len(s.items), hasMore)
	return cloneItems(s.items), nil
}

// Lookup hydrates one entry by name or identifier.
func (s *CatalogService) Lookup(ctx context.Context, ref string) (domain.CatalogItem, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.CatalogItem{}, fmt.Errorf("%w: empty reference", domain.ErrInvalidInput)
	}

	item, err := s.client.FetchDetail(ctx, s.client.Locator(ref))
	if err != nil {
		return domain.CatalogItem{}, fmt.Errorf("lookup %q: %w", ref, err)
	}
	return item, nil
}

// Items returns a copy of the accumulated items.
func (s *CatalogService) Items() []domain.CatalogItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// Cursor returns the current page cursor.
func (s *CatalogService) Cursor() domain.PageCursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Loading reports whether a load is in flight.
func (s *CatalogService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// fetchPage lists and hydrates one page without touching service state.
func (s *CatalogService) fetchPage(ctx context.Context, offset int) ([]domain.CatalogItem, bool, error) {
	page, err := s.client.ListPage(ctx, offset, s.pageSize)
	if err != nil {
		return nil, false, err
	}

	items, err := hydrate(ctx, s.client, page.Items, s.concurrency)
	if err != nil {
		return nil, false, err
	}
	return items, page.HasMore, nil
}

func (s *CatalogService) finishLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

// cloneItems copies the slice header contents so callers cannot mutate
// the aggregator's backing array.
func cloneItems(items []domain.CatalogItem) []domain.CatalogItem {
	if items == nil {
		return []domain.CatalogItem{}
	}
	out := make([]domain.CatalogItem, len(items))
	copy(out, items)
	return out
}
