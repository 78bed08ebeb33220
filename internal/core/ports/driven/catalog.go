package driven

import (
	"context"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
)

// CatalogClient reads the remote paginated catalog.
// Every method is all-or-nothing: on error no partial data is returned.
// Implementations do not retry.
type CatalogClient interface {
	// ListPage fetches one page of summaries starting at offset.
	// Errors wrap domain.ErrNetwork.
	ListPage(ctx context.Context, offset, limit int) (domain.Page, error)

	// FetchDetail hydrates the entry behind a locator.
	// Errors wrap domain.ErrNotFound for stale locators and
	// domain.ErrNetwork otherwise.
	FetchDetail(ctx context.Context, locator string) (domain.CatalogItem, error)

	// FetchFullIndex fetches the unpaginated name index, bounded by limit.
	FetchFullIndex(ctx context.Context, limit int) ([]domain.CatalogSummary, error)

	// Locator builds the detail locator for a name or numeric identifier.
	Locator(ref string) string
}
