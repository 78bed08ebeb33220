package mcp

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dexter-cli/internal/core/services"
)

var _ driven.CatalogClient = (*overlapClient)(nil)

const overlapLocatorPrefix = "mem://pokemon/"

// overlapClient is an in-memory driven.CatalogClient whose index and list
// calls wait until `overlap` callers are inside at once, so concurrent
// tool calls are guaranteed to run side by side.
type overlapClient struct {
	names   []string
	overlap int

	mu      sync.Mutex
	entered int
	ready   chan struct{}
}

func newOverlapClient(overlap int, names ...string) *overlapClient {
	return &overlapClient{names: names, overlap: overlap, ready: make(chan struct{})}
}

func (c *overlapClient) rendezvous(ctx context.Context) error {
	c.mu.Lock()
	c.entered++
	if c.entered == c.overlap {
		close(c.ready)
	}
	c.mu.Unlock()

	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(2 * time.Second):
		return nil
	}
}

func (c *overlapClient) summaries(names []string) []domain.CatalogSummary {
	out := make([]domain.CatalogSummary, len(names))
	for i, n := range names {
		out[i] = domain.CatalogSummary{Name: n, Locator: overlapLocatorPrefix + n}
	}
	return out
}

func (c *overlapClient) ListPage(ctx context.Context, offset, limit int) (domain.Page, error) {
	if offset == 0 {
		if err := c.rendezvous(ctx); err != nil {
			return domain.Page{}, err
		}
	}
	end := min(offset+limit, len(c.names))
	var items []domain.CatalogSummary
	if offset < end {
		items = c.summaries(c.names[offset:end])
	}
	return domain.Page{Items: items, HasMore: end < len(c.names), Total: len(c.names)}, nil
}

func (c *overlapClient) FetchDetail(ctx context.Context, locator string) (domain.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.CatalogItem{}, err
	}
	name := strings.TrimPrefix(locator, overlapLocatorPrefix)
	for i, n := range c.names {
		if n == name {
			return domain.CatalogItem{ID: i + 1, Name: n, Types: []string{"normal"}}, nil
		}
	}
	return domain.CatalogItem{}, fmt.Errorf("detail %s: %w", name, domain.ErrNotFound)
}

func (c *overlapClient) FetchFullIndex(ctx context.Context, limit int) ([]domain.CatalogSummary, error) {
	if err := c.rendezvous(ctx); err != nil {
		return nil, err
	}
	return c.summaries(c.names[:min(limit, len(c.names))]), nil
}

func (c *overlapClient) Locator(ref string) string {
	return overlapLocatorPrefix + strings.ToLower(ref)
}

// overlapNames is a 42-entry index: two full pages of 21.
func overlapNames() []string {
	names := []string{"bulbasaur", "charmander", "squirtle", "pikachu"}
	for i := len(names); i < 2*domain.DefaultPageSize; i++ {
		names = append(names, fmt.Sprintf("entry-%03d", i+1))
	}
	return names
}

func newServiceServer(t *testing.T, client driven.CatalogClient) (*Server, *int) {
	t.Helper()
	var (
		mu    sync.Mutex
		built int
	)
	return newTestServer(t, &Ports{
		Catalog: func() driving.CatalogService {
			mu.Lock()
			built++
			mu.Unlock()
			return services.NewCatalogService(client, domain.DefaultPageSize, 4)
		},
		Search: func() driving.SearchService {
			return services.NewSearchService(client, 0, 0, 4)
		},
	}), &built
}

func TestServer_ConcurrentSearches(t *testing.T) {
	server, _ := newServiceServer(t, newOverlapClient(2, overlapNames()...))

	queries := []string{"pika", "bulba"}
	outputs := make([]SearchOutput, len(queries))
	errs := make([]error, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, outputs[i], errs[i] = server.handleSearch(context.Background(), nil, SearchInput{Query: q})
		}()
	}
	wg.Wait()

	for i := range queries {
		require.NoError(t, errs[i], "query %q", queries[i])
		require.Equal(t, 1, outputs[i].Count, "query %q", queries[i])
	}
	assert.Equal(t, "pikachu", outputs[0].Items[0].Name)
	assert.Equal(t, "bulbasaur", outputs[1].Items[0].Name)
}

func TestServer_ConcurrentLists(t *testing.T) {
	server, built := newServiceServer(t, newOverlapClient(2, overlapNames()...))

	pages := []int{2, 1}
	outputs := make([]ListOutput, len(pages))
	errs := make([]error, len(pages))

	var wg sync.WaitGroup
	for i, p := range pages {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, outputs[i], errs[i] = server.handleList(context.Background(), nil, ListInput{Pages: p})
		}()
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, 42, outputs[0].Count)
	assert.False(t, outputs[0].HasMore)
	assert.Equal(t, 21, outputs[1].Count)
	assert.True(t, outputs[1].HasMore)
	assert.Equal(t, 2, *built)
}
