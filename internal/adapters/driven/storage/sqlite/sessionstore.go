package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driven"
)

// Flag keys holding the session.
const (
	flagLoggedIn   = "is_logged_in"
	flagIdentifier = "user_identifier"
	flagSessionID  = "session_id"
	flagLoggedInAt = "logged_in_at"
)

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// Load reads the session flags.
// Returns nil and no error if no session has been stored.
func (s *sessionStore) Load(ctx context.Context) (*domain.Session, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT key, value FROM flags WHERE key IN (?, ?, ?, ?)
	`, flagLoggedIn, flagIdentifier, flagSessionID, flagLoggedInAt)
	if err != nil {
		return nil, fmt.Errorf("querying flags: %w", err)
	}
	defer rows.Close()

	flags := make(map[string]string, 4)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning flag: %w", err)
		}
		flags[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading flags: %w", err)
	}

	raw, ok := flags[flagLoggedIn]
	if !ok {
		return nil, nil
	}
	loggedIn, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s=%q: %w", flagLoggedIn, raw, err)
	}

	session := &domain.Session{
		ID:            flags[flagSessionID],
		Authenticated: loggedIn,
		Identifier:    flags[flagIdentifier],
	}
	if at := flags[flagLoggedInAt]; at != "" {
		session.CreatedAt, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parsing %s=%q: %w", flagLoggedInAt, at, err)
		}
	}
	return session, nil
}

// Save replaces all session flags in one transaction.
func (s *sessionStore) Save(ctx context.Context, session domain.Session) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	values := map[string]string{
		flagLoggedIn:   strconv.FormatBool(session.Authenticated),
		flagIdentifier: session.Identifier,
		flagSessionID:  session.ID,
		flagLoggedInAt: session.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	now := time.Now().UTC()
	for key, value := range values {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO flags (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				value = excluded.value,
				updated_at = excluded.updated_at
		`, key, value, now)
		if err != nil {
			return fmt.Errorf("saving flag %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing session: %w", err)
	}
	return nil
}

// Clear removes all session flags.
func (s *sessionStore) Clear(ctx context.Context) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM flags WHERE key IN (?, ?, ?, ?)
	`, flagLoggedIn, flagIdentifier, flagSessionID, flagLoggedInAt)
	if err != nil {
		return fmt.Errorf("clearing flags: %w", err)
	}
	return nil
}
