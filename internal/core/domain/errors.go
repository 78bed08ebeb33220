package domain

import "errors"

// Domain errors represent business logic failures.
// Adapter errors wrap these so callers can test with errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist, for example
	// a stale catalog locator.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or missing input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNetwork indicates a transport failure or a non-success response
	// from the remote catalog.
	ErrNetwork = errors.New("network error")

	// ErrLoadInProgress indicates a catalog page load is already running.
	ErrLoadInProgress = errors.New("load in progress")

	// ErrSuperseded indicates a search was overtaken by a newer one and its
	// result must be discarded.
	ErrSuperseded = errors.New("superseded by a newer request")

	// ErrNotAuthenticated indicates no local session exists.
	ErrNotAuthenticated = errors.New("not logged in")
)
