package domain

import "strings"

// MatchPass identifies which matching policy produced a search result.
type MatchPass string

const (
	// MatchPassNone means no entry matched, or no filtering took place.
	MatchPassNone MatchPass = "none"

	// MatchPassPrefix means the result holds names starting with the query.
	MatchPassPrefix MatchPass = "prefix"

	// MatchPassSubstring means no name started with the query and the
	// result holds names containing it.
	MatchPassSubstring MatchPass = "substring"
)

// String returns the string representation.
func (p MatchPass) String() string {
	return string(p)
}

// SearchResult is the outcome of resolving one query.
type SearchResult struct {
	// Query is the normalised query that was resolved.
	Query string

	// Unfiltered is true when the query was empty. Callers fall back to
	// the catalog's accumulated list.
	Unfiltered bool

	// Pass records which matching policy selected Items.
	Pass MatchPass

	// Items are the hydrated matches in index order.
	Items []CatalogItem

	// Generation is the resolver's request sequence number for this result.
	Generation uint64
}

// NormaliseQuery lower-cases and trims a free-text query.
func NormaliseQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
