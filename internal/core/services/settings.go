package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAPIBaseURL        = "api.base_url"
	keyAPITimeout        = "api.timeout_seconds"
	keyAPIRate           = "api.requests_per_second"
	keyAPIBurst          = "api.burst"
	keyCatalogPageSize   = "catalog.page_size"
	keyCatalogIndexLimit = "catalog.index_limit"
	keyCatalogSearchMax  = "catalog.search_limit"
	keyCatalogWorkers    = "catalog.concurrency"
	keyLogVerbose        = "log.verbose"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindBool
)

// settingKinds lists every recognised key with its stored type.
var settingKinds = map[string]valueKind{
	keyAPIBaseURL:        kindString,
	keyAPITimeout:        kindInt,
	keyAPIRate:           kindFloat,
	keyAPIBurst:          kindInt,
	keyCatalogPageSize:   kindInt,
	keyCatalogIndexLimit: kindInt,
	keyCatalogSearchMax:  kindInt,
	keyCatalogWorkers:    kindInt,
	keyLogVerbose:        kindBool,
}

// SettingsService maps dot-notation config keys onto domain.AppSettings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL: strings.TrimRight(s.getString(keyAPIBaseURL, defaults.API.BaseURL), "/"),
			Timeout: time.Duration(
				s.getInt(keyAPITimeout, int(defaults.API.Timeout/time.Second)),
			) * time.Second,
			RequestsPerSecond: s.getFloat(keyAPIRate, defaults.API.RequestsPerSecond),
			Burst:             s.getInt(keyAPIBurst, defaults.API.Burst),
		},
		Catalog: domain.CatalogSettings{
			PageSize:    s.getInt(keyCatalogPageSize, defaults.Catalog.PageSize),
			IndexLimit:  s.getInt(keyCatalogIndexLimit, defaults.Catalog.IndexLimit),
			SearchLimit: s.getInt(keyCatalogSearchMax, defaults.Catalog.SearchLimit),
			Concurrency: s.getInt(keyCatalogWorkers, defaults.Catalog.Concurrency),
		},
		Log: domain.LogSettings{
			Verbose: s.getBool(keyLogVerbose, defaults.Log.Verbose),
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Set parses value for key, validates the resulting settings and stores it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	typed, err := parseValue(kind, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	previous, existed := s.configStore.Get(key)
	if err := s.configStore.Set(key, typed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	if _, err := s.Get(); err != nil {
		// Roll back so the stored config stays loadable.
		if existed {
			_ = s.configStore.Set(key, previous)
		} else {
			_ = s.configStore.Delete(key)
		}
		return err
	}
	return nil
}

// Reset removes key so its default applies again.
func (s *SettingsService) Reset(key string) error {
	if _, ok := settingKinds[key]; !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err := s.configStore.Delete(key); err != nil {
		return fmt.Errorf("reset %s: %w", key, err)
	}
	return nil
}

// Keys returns all recognised setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value returns the effective value of key in string form.
func (s *SettingsService) Value(key string) (string, error) {
	if _, ok := settingKinds[key]; !ok {
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	settings, err := s.Get()
	if err != nil {
		return "", err
	}

	switch key {
	case keyAPIBaseURL:
		return settings.API.BaseURL, nil
	case keyAPITimeout:
		return strconv.Itoa(int(settings.API.Timeout / time.Second)), nil
	case keyAPIRate:
		return strconv.FormatFloat(settings.API.RequestsPerSecond, 'g', -1, 64), nil
	case keyAPIBurst:
		return strconv.Itoa(settings.API.Burst), nil
	case keyCatalogPageSize:
		return strconv.Itoa(settings.Catalog.PageSize), nil
	case keyCatalogIndexLimit:
		return strconv.Itoa(settings.Catalog.IndexLimit), nil
	case keyCatalogSearchMax:
		return strconv.Itoa(settings.Catalog.SearchLimit), nil
	case keyCatalogWorkers:
		return strconv.Itoa(settings.Catalog.Concurrency), nil
	default:
		return strconv.FormatBool(settings.Log.Verbose), nil
	}
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func parseValue(kind valueKind, value string) (any, error) {
	switch kind {
	case kindInt:
		return strconv.Atoi(value)
	case kindFloat:
		return strconv.ParseFloat(value, 64)
	case kindBool:
		return strconv.ParseBool(value)
	default:
		if value == "" {
			return nil, fmt.Errorf("empty value")
		}
		return value, nil
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
