// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/dexter-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSplash is shown while the startup route is resolved.
	ViewSplash ViewType = iota
	// ViewLogin is the identifier and secret form.
	ViewLogin
	// ViewCatalog is the card list with search and detail overlay.
	ViewCatalog
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSplash:
		return "splash"
	case ViewLogin:
		return "login"
	case ViewCatalog:
		return "catalog"
	default:
		return "unknown"
	}
}

// ViewForRoute maps a startup route to the view that renders it.
func ViewForRoute(r domain.Route) ViewType {
	if r == domain.RouteCatalog {
		return ViewCatalog
	}
	return ViewLogin
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// PageLoaded carries the accumulated catalog after a page load.
type PageLoaded struct {
	Items  []domain.CatalogItem
	Cursor domain.PageCursor
	Err    error
}

// SearchCompleted carries the outcome of one submitted query.
// Seq is the view's submission counter used to drop stale completions.
type SearchCompleted struct {
	Seq    uint64
	Result domain.SearchResult
	Err    error
}

// LoggedIn signals the login attempt finished.
type LoggedIn struct {
	Session *domain.Session
	Err     error
}

// LoggedOut signals the session was cleared.
type LoggedOut struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
