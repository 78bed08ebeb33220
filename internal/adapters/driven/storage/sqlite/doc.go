// Package sqlite provides the SQLite-backed flag store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. The session is kept as
// rows of a single key/value table:
//
//   - is_logged_in: "true" while a session exists
//   - user_identifier: the identifier used at login
//   - session_id: random identifier generated at login
//   - logged_in_at: RFC 3339 timestamp of the login
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files; applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.dexter/data/session.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
