// Package domain defines the core business entities for Dexter.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CatalogSummary: A name plus locator from the list or index endpoint
//   - CatalogItem: A hydrated catalog entry
//   - PageCursor: Pagination progress of the catalog aggregator
//   - SearchResult: The outcome of resolving one query
//   - Session: The locally persisted login flag
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
