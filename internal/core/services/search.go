package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dexter-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService resolves queries against the full name index.
//
// Every call is tagged with a generation. Starting a call cancels the one
// before it, and a call that finishes after a newer one started reports
// domain.ErrSuperseded instead of its result.
type SearchService struct {
	client      driven.CatalogClient
	indexLimit  int
	searchLimit int
	concurrency int

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
}

// NewSearchService creates a search resolver.
// Non-positive limits fall back to the defaults.
func NewSearchService(client driven.CatalogClient, indexLimit, searchLimit, concurrency int) *SearchService {
	if indexLimit <= 0 {
		indexLimit = domain.DefaultIndexLimit
	}
	if searchLimit <= 0 {
		searchLimit = domain.DefaultSearchLimit
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &SearchService{
		client:      client,
		indexLimit:  indexLimit,
		searchLimit: searchLimit,
		concurrency: concurrency,
	}
}

// Resolve matches query against the index and hydrates the matches.
func (s *SearchService) Resolve(ctx context.Context, query string) (domain.SearchResult, error) {
	gen, ctx, done := s.begin(ctx)
	defer done()

	q := domain.NormaliseQuery(query)
	result := domain.SearchResult{
		Query:      q,
		Pass:       domain.MatchPassNone,
		Items:      []domain.CatalogItem{},
		Generation: gen,
	}

	if q == "" {
		logger.Debug("Empty query, returning unfiltered result")
		result.Unfiltered = true
		return result, nil
	}

	logger.Section("Search")
	logger.Debug("Query: %q (generation %d)", q, gen)

	index, err := s.client.FetchFullIndex(ctx, s.indexLimit)
	if err != nil {
		if s.stale(gen) {
			return domain.SearchResult{}, domain.ErrSuperseded
		}
		return domain.SearchResult{}, fmt.Errorf("fetch index: %w", err)
	}

	matches, pass := selectMatches(index, q, s.searchLimit)
	logger.Debug("Index size %d, %d matches via %s pass", len(index), len(matches), pass)
	result.Pass = pass

	items, err := hydrate(ctx, s.client, matches, s.concurrency)
	if err != nil {
		if s.stale(gen) {
			return domain.SearchResult{}, domain.ErrSuperseded
		}
		return domain.SearchResult{}, fmt.Errorf("resolve %q: %w", q, err)
	}
	if s.stale(gen) {
		logger.Debug("Discarding result of generation %d", gen)
		return domain.SearchResult{}, domain.ErrSuperseded
	}

	result.Items = items
	logger.Info("Found %d items for %q", len(items), q)
	return result, nil
}

// begin registers a new call and cancels the previous one.
func (s *SearchService) begin(parent context.Context) (uint64, context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	s.cancel = cancel
	s.mu.Unlock()

	return gen, ctx, func() {
		cancel()
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.generation == gen {
			s.cancel = nil
		}
	}
}

func (s *SearchService) stale(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation != gen
}
