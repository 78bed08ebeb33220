package mcp

import (
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driving"
)

// CatalogFactory returns a fresh catalog aggregator. Each tool call owns
// the paging state of the aggregator it gets.
type CatalogFactory func() driving.CatalogService

// SearchFactory returns a fresh search resolver. Each tool call owns the
// generation counter of the resolver it gets.
type SearchFactory func() driving.SearchService

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Catalog builds the aggregator used by one tool or resource call.
	Catalog CatalogFactory

	// Search builds the resolver used by one tool call.
	Search SearchFactory

	// Session gates the tools on a local login. When nil, tools run
	// without a session check.
	Session driving.SessionService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
