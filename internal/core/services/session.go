package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dexter-cli/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// ErrMissingCredentials is returned when login is attempted with an empty
// identifier or secret.
var ErrMissingCredentials = fmt.Errorf("%w: please fill in both fields", domain.ErrInvalidInput)

// SessionService manages the local login flag.
// No credentials are verified and the secret is never persisted.
type SessionService struct {
	store driven.SessionStore
	now   func() time.Time
}

// NewSessionService creates a session service backed by store.
func NewSessionService(store driven.SessionStore) *SessionService {
	return &SessionService{
		store: store,
		now:   time.Now,
	}
}

// Current returns the stored session, or nil when logged out.
func (s *SessionService) Current(ctx context.Context) (*domain.Session, error) {
	session, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil || !session.Authenticated {
		return nil, nil
	}
	return session, nil
}

// Route picks the startup screen from the stored session.
func (s *SessionService) Route(ctx context.Context) domain.Route {
	session, err := s.Current(ctx)
	if err != nil {
		logger.Warn("Session check failed, routing to login: %v", err)
		return domain.RouteLogin
	}
	return domain.RouteFor(session)
}

// Login persists a new session once both fields are non-empty.
func (s *SessionService) Login(ctx context.Context, identifier, secret string) (*domain.Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || secret == "" {
		return nil, ErrMissingCredentials
	}

	session := domain.Session{
		ID:            uuid.New().String(),
		Authenticated: true,
		Identifier:    identifier,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	logger.Info("Logged in as %s (session %s)", identifier, session.ID)
	return &session, nil
}

// Logout clears the stored session.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	logger.Info("Logged out")
	return nil
}
