package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore for testing.
type SessionStore struct {
	mu      sync.RWMutex
	session *domain.Session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Load returns the stored session, or nil when empty.
func (s *SessionStore) Load(_ context.Context) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, nil
	}
	session := *s.session
	return &session, nil
}

// Save replaces the stored session.
func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session
	return nil
}

// Clear removes the stored session.
func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}
