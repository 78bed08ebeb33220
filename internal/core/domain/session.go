package domain

import "time"

// Session is the locally persisted authentication state.
type Session struct {
	// ID is a random identifier generated at login.
	ID string

	// Authenticated is the persisted "is logged in" flag.
	Authenticated bool

	// Identifier is the last identifier (email) used to log in.
	Identifier string

	// CreatedAt is when the session was created.
	CreatedAt time.Time
}

// Route is the screen an application should open at startup.
type Route string

const (
	// RouteLogin sends the user to the login screen.
	RouteLogin Route = "login"

	// RouteCatalog sends the user straight to the catalog.
	RouteCatalog Route = "catalog"
)

// RouteFor picks the initial route for a possibly nil session.
func RouteFor(s *Session) Route {
	if s != nil && s.Authenticated {
		return RouteCatalog
	}
	return RouteLogin
}
