// Package tui provides an interactive terminal user interface for dexter.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Catalog owns the paginated listing.
	Catalog driving.CatalogService

	// Search resolves free-text queries.
	Search driving.SearchService

	// Session manages the local login flag.
	Session driving.SessionService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	catalog driving.CatalogService,
	search driving.SearchService,
	session driving.SessionService,
) *Ports {
	return &Ports{
		Catalog: catalog,
		Search:  search,
		Session: session,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Session == nil {
		return ErrMissingSessionService
	}
	return nil
}
