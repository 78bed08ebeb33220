package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driven"
)

// Ensure fakeCatalog implements the interface.
var _ driven.CatalogClient = (*fakeCatalog)(nil)

const fakeLocatorPrefix = "mem://pokemon/"

// fakeCatalog is an in-memory driven.CatalogClient.
// Entries get identifiers in index order starting at 1.
type fakeCatalog struct {
	mu    sync.Mutex
	names []string

	listErr    error
	indexErr   error
	detailErrs map[string]error
	delays     map[string]time.Duration

	// indexGate blocks the next FetchFullIndex call until closed.
	indexGate    chan struct{}
	indexEntered chan struct{}

	// listGate blocks the next ListPage call until closed.
	listGate    chan struct{}
	listEntered chan struct{}

	listCalls   []int
	indexCalls  int
	detailCalls []string
}

func newFakeCatalog(names ...string) *fakeCatalog {
	return &fakeCatalog{
		names:      names,
		detailErrs: make(map[string]error),
		delays:     make(map[string]time.Duration),
	}
}

// starterNames is the four-entry index used by the search scenarios.
var starterNames = []string{"bulbasaur", "charmander", "squirtle", "pikachu"}

// numberedNames returns n generated names.
func numberedNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("entry-%03d", i+1)
	}
	return names
}

func (f *fakeCatalog) ListPage(ctx context.Context, offset, limit int) (domain.Page, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, offset)
	gate, entered := f.listGate, f.listEntered
	f.listGate, f.listEntered = nil, nil
	err := f.listErr
	f.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return domain.Page{}, ctx.Err()
		}
	}
	if err != nil {
		return domain.Page{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	end := min(offset+limit, len(f.names))
	var items []domain.CatalogSummary
	if offset < end {
		items = f.summaries(f.names[offset:end])
	}
	return domain.Page{Items: items, HasMore: end < len(f.names), Total: len(f.names)}, nil
}

func (f *fakeCatalog) FetchDetail(ctx context.Context, locator string) (domain.CatalogItem, error) {
	name := strings.TrimPrefix(locator, fakeLocatorPrefix)

	f.mu.Lock()
	f.detailCalls = append(f.detailCalls, name)
	err := f.detailErrs[name]
	delay := f.delays[name]
	id := 0
	for i, n := range f.names {
		if n == name {
			id = i + 1
			break
		}
	}
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return domain.CatalogItem{}, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return domain.CatalogItem{}, err
	}
	if err != nil {
		return domain.CatalogItem{}, err
	}
	if id == 0 {
		return domain.CatalogItem{}, fmt.Errorf("detail %s: %w", name, domain.ErrNotFound)
	}
	return domain.CatalogItem{
		ID:        id,
		Name:      name,
		Types:     []string{"normal"},
		Abilities: []string{"run-away"},
		Stats:     map[string]int{domain.StatHP: 10 * id},
		Color:     "gray",
	}, nil
}

func (f *fakeCatalog) FetchFullIndex(ctx context.Context, limit int) ([]domain.CatalogSummary, error) {
	f.mu.Lock()
	f.indexCalls++
	gate, entered := f.indexGate, f.indexEntered
	f.indexGate, f.indexEntered = nil, nil
	err := f.indexErr
	f.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	end := min(limit, len(f.names))
	return f.summaries(f.names[:end]), nil
}

func (f *fakeCatalog) Locator(ref string) string {
	return fakeLocatorPrefix + strings.ToLower(strings.TrimSpace(ref))
}

// blockIndex makes the next FetchFullIndex wait for release.
// The returned channel is closed once that call has started.
func (f *fakeCatalog) blockIndex() (entered <-chan struct{}, release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	f.indexGate = gate
	f.indexEntered = make(chan struct{})
	return f.indexEntered, func() { close(gate) }
}

// blockList makes the next ListPage wait for release.
func (f *fakeCatalog) blockList() (entered <-chan struct{}, release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	f.listGate = gate
	f.listEntered = make(chan struct{})
	return f.listEntered, func() { close(gate) }
}

func (f *fakeCatalog) failDetail(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.detailErrs, name)
		return
	}
	f.detailErrs[name] = err
}

func (f *fakeCatalog) listOffsets() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.listCalls...)
}

func (f *fakeCatalog) detailCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.detailCalls)
}

func (f *fakeCatalog) indexCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.indexCalls
}

func (f *fakeCatalog) summaries(names []string) []domain.CatalogSummary {
	out := make([]domain.CatalogSummary, len(names))
	for i, n := range names {
		out[i] = domain.CatalogSummary{Name: n, Locator: fakeLocatorPrefix + n}
	}
	return out
}

func itemNames(items []domain.CatalogItem) []string {
	names := make([]string, len(items))
	for i := range items {
		names[i] = items[i].Name
	}
	return names
}

// networkFailure mimics an adapter error wrapping domain.ErrNetwork.
func networkFailure(what string) error {
	return fmt.Errorf("%s: status 500: %w", what, domain.ErrNetwork)
}
