package services

import (
	"strings"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
)

// selectMatches applies the two-pass name match to an index.
// Names starting with query win; only when there are none do names
// containing query anywhere qualify. Index order is preserved and at most
// limit entries are returned. query must already be normalised.
func selectMatches(
	index []domain.CatalogSummary,
	query string,
	limit int,
) ([]domain.CatalogSummary, domain.MatchPass) {
	if query == "" || limit <= 0 {
		return nil, domain.MatchPassNone
	}

	if prefix := filterNames(index, query, limit, strings.HasPrefix); len(prefix) > 0 {
		return prefix, domain.MatchPassPrefix
	}
	if contains := filterNames(index, query, limit, strings.Contains); len(contains) > 0 {
		return contains, domain.MatchPassSubstring
	}
	return nil, domain.MatchPassNone
}

func filterNames(
	index []domain.CatalogSummary,
	query string,
	limit int,
	match func(s, substr string) bool,
) []domain.CatalogSummary {
	var out []domain.CatalogSummary
	for _, entry := range index {
		if match(strings.ToLower(entry.Name), query) {
			out = append(out, entry)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
