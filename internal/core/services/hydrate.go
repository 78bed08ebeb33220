package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driven"
)

// defaultConcurrency bounds parallel detail fetches when none is configured.
const defaultConcurrency = 8

// hydrate fetches the detail of every summary concurrently.
// The result preserves the order of summaries. The first failure cancels the
// remaining fetches and the whole call fails; no partial slice is returned.
func hydrate(
	ctx context.Context,
	client driven.CatalogClient,
	summaries []domain.CatalogSummary,
	concurrency int,
) ([]domain.CatalogItem, error) {
	if len(summaries) == 0 {
		return []domain.CatalogItem{}, nil
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	items := make([]domain.CatalogItem, len(summaries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, summary := range summaries {
		g.Go(func() error {
			item, err := client.FetchDetail(gctx, summary.Locator)
			if err != nil {
				return fmt.Errorf("hydrate %s: %w", summary.Name, err)
			}
			items[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
