package driving

import (
	"context"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
)

// SessionService manages the local login flag.
type SessionService interface {
	// Current returns the stored session, or nil when logged out.
	Current(ctx context.Context) (*domain.Session, error)

	// Route picks the screen to open at startup. Store errors fall back
	// to the login route.
	Route(ctx context.Context) domain.Route

	// Login checks that both fields are present and persists the flag.
	// The secret is never stored.
	Login(ctx context.Context, identifier, secret string) (*domain.Session, error)

	// Logout clears the stored flag.
	Logout(ctx context.Context) error
}
