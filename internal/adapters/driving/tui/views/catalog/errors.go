package catalog

import "errors"

// Error definitions for the catalog view.
var (
	// ErrNoCatalogService indicates that no catalog service was provided.
	ErrNoCatalogService = errors.New("catalog service is required")

	// ErrNoSearchService indicates that no search service was provided.
	ErrNoSearchService = errors.New("search service is required")

	// ErrNoSessionService indicates that no session service was provided.
	ErrNoSessionService = errors.New("session service is required")
)
