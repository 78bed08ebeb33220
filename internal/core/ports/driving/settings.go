package driving

import "github.com/custodia-labs/dexter-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the current settings, with defaults for unset keys.
	Get() (*domain.AppSettings, error)

	// Value returns the effective value of key in string form.
	Value(key string) (string, error)

	// Set validates and stores a single key given in string form.
	Set(key, value string) error

	// Reset removes a key so its default applies again.
	Reset(key string) error

	// Keys returns all recognised setting keys.
	Keys() []string

	// Path returns where settings are persisted.
	Path() string
}
