package pokeapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
)

// PokeAPI-specific errors.
var (
	// ErrEmptyLocator indicates a detail fetch was requested without a URL.
	ErrEmptyLocator = errors.New("pokeapi: empty locator")

	// ErrMalformedEntry indicates a detail payload lacks required fields.
	ErrMalformedEntry = errors.New("pokeapi: malformed entry")
)

// APIError represents a non-success HTTP response.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pokeapi: API error %d (URL: %s)", e.StatusCode, e.URL)
}

// Unwrap maps the status code onto the domain error kinds.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return domain.ErrNetwork
}

// RateLimitError is returned when the server answered 429.
type RateLimitError struct {
	RetryAt time.Time
	URL     string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("pokeapi: rate limit exceeded, retry after %s (URL: %s)",
		e.RetryAt.Format(time.RFC3339), e.URL)
}

// Unwrap reports rate limiting as a network failure.
func (e *RateLimitError) Unwrap() error {
	return domain.ErrNetwork
}

// TransportError wraps a failure to complete the HTTP exchange or decode it.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("pokeapi: %s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap returns both the cause and domain.ErrNetwork.
func (e *TransportError) Unwrap() []error {
	return []error{e.Err, domain.ErrNetwork}
}
