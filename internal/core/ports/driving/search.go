package driving

import (
	"context"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
)

// SearchService resolves free-text queries against the full catalog index.
type SearchService interface {
	// Resolve returns at most the configured number of hydrated matches.
	// An empty query yields a result with Unfiltered set and no items.
	// A call overtaken by a newer one returns domain.ErrSuperseded.
	Resolve(ctx context.Context, query string) (domain.SearchResult, error)
}
