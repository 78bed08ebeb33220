package driving

import (
	"context"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
)

// CatalogService owns the accumulated catalog listing and its page cursor.
type CatalogService interface {
	// LoadInitial loads the first page, replacing any accumulated items.
	// On error the previous state is kept.
	LoadInitial(ctx context.Context) ([]domain.CatalogItem, error)

	// LoadMore appends the next page. It is a no-op returning the current
	// items when no further pages exist or a load is already running.
	// On error the previous state is kept.
	LoadMore(ctx context.Context) ([]domain.CatalogItem, error)

	// Lookup hydrates a single entry by name or numeric identifier without
	// touching the accumulated list.
	Lookup(ctx context.Context, ref string) (domain.CatalogItem, error)

	// Items returns a copy of the accumulated items.
	Items() []domain.CatalogItem

	// Cursor returns the current page cursor.
	Cursor() domain.PageCursor

	// Loading reports whether a page load is in flight.
	Loading() bool
}
