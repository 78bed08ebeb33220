package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultBaseURL is the public catalog API root.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// APISettings configures the remote catalog client.
type APISettings struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string

	// Timeout bounds every individual HTTP request.
	Timeout time.Duration

	// RequestsPerSecond is the sustained client-side request rate.
	RequestsPerSecond float64

	// Burst is the token bucket size for the request rate.
	Burst int
}

// CatalogSettings configures paging, search and hydration.
type CatalogSettings struct {
	// PageSize is the number of entries per page.
	PageSize int

	// IndexLimit bounds the name index fetched for search.
	IndexLimit int

	// SearchLimit caps the number of search matches.
	SearchLimit int

	// Concurrency bounds parallel detail fetches within one load.
	Concurrency int
}

// LogSettings configures diagnostics.
type LogSettings struct {
	// Verbose enables debug logging to stderr.
	Verbose bool
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	// API holds remote client settings.
	API APISettings

	// Catalog holds paging and search settings.
	Catalog CatalogSettings

	// Log holds logging settings.
	Log LogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:           DefaultBaseURL,
			Timeout:           15 * time.Second,
			RequestsPerSecond: 20,
			Burst:             10,
		},
		Catalog: CatalogSettings{
			PageSize:    DefaultPageSize,
			IndexLimit:  DefaultIndexLimit,
			SearchLimit: DefaultSearchLimit,
			Concurrency: 8,
		},
	}
}

// Validate reports the first invalid setting.
func (s *AppSettings) Validate() error {
	if s.API.BaseURL == "" {
		return fmt.Errorf("%w: api base url is empty", ErrInvalidInput)
	}
	if !strings.HasPrefix(s.API.BaseURL, "http://") && !strings.HasPrefix(s.API.BaseURL, "https://") {
		return fmt.Errorf("%w: api base url must be http(s): %q", ErrInvalidInput, s.API.BaseURL)
	}
	if s.API.Timeout <= 0 {
		return fmt.Errorf("%w: api timeout must be positive", ErrInvalidInput)
	}
	if s.API.RequestsPerSecond <= 0 || s.API.Burst <= 0 {
		return fmt.Errorf("%w: api rate limit must be positive", ErrInvalidInput)
	}
	if s.Catalog.PageSize <= 0 || s.Catalog.IndexLimit <= 0 ||
		s.Catalog.SearchLimit <= 0 || s.Catalog.Concurrency <= 0 {
		return fmt.Errorf("%w: catalog limits must be positive", ErrInvalidInput)
	}
	return nil
}
