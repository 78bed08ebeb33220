package driven

import (
	"context"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
)

// SessionStore persists the local login flag.
type SessionStore interface {
	// Load returns the stored session.
	// Returns nil and no error when nothing has been stored.
	Load(ctx context.Context) (*domain.Session, error)

	// Save replaces the stored session.
	Save(ctx context.Context, session domain.Session) error

	// Clear removes the stored session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
