// Package cli provides the Cobra command tree for the dexter binary.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dexter-cli/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// verbose is the persistent --verbose flag.
var verbose bool

// Services used by the commands. Set through SetServices.
var (
	catalogService  driving.CatalogService
	searchService   driving.SearchService
	sessionService  driving.SessionService
	settingsService driving.SettingsService
	configWatcher   ConfigWatcher

	newCatalogService func() driving.CatalogService
	newSearchService  func() driving.SearchService
)

// ConfigWatcher reloads configuration when it changes on disk.
type ConfigWatcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// Services bundles the driving ports the commands depend on.
type Services struct {
	Catalog  driving.CatalogService
	Search   driving.SearchService
	Session  driving.SessionService
	Settings driving.SettingsService

	// NewCatalog and NewSearch build fresh services for one request.
	// The MCP server uses them so concurrent tool calls do not share
	// paging state or search generations.
	NewCatalog func() driving.CatalogService
	NewSearch  func() driving.SearchService

	// Watcher is optional. Long-running commands use it to pick up
	// config edits.
	Watcher ConfigWatcher
}

// SetServices installs the services used by all commands.
func SetServices(s Services) {
	catalogService = s.Catalog
	searchService = s.Search
	sessionService = s.Session
	settingsService = s.Settings
	configWatcher = s.Watcher
	newCatalogService = s.NewCatalog
	newSearchService = s.NewSearch
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "dexter",
	Short: "Browse and search the Pokémon catalog from your terminal",
	Long: `Dexter browses the public PokeAPI catalog.

Log in once with 'dexter login', then list the catalog page by page,
search it by name, or open the interactive UI with 'dexter tui'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		applyVerbose()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// applyVerbose turns on debug logging from the flag or the config file.
func applyVerbose() {
	enabled := verbose
	if !enabled && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			enabled = settings.Log.Verbose
		}
	}
	logger.SetVerbose(enabled)
}

// watchConfig re-applies logging settings whenever the config file changes.
func watchConfig(ctx context.Context) {
	if configWatcher == nil {
		return
	}
	err := configWatcher.Watch(ctx, func() {
		applyVerbose()
		logger.Debug("Configuration reloaded")
	})
	if err != nil {
		logger.Warn("Config watch disabled: %v", err)
	}
}

// requireSession fails with domain.ErrNotAuthenticated unless a session exists.
func requireSession(ctx context.Context) (*domain.Session, error) {
	if sessionService == nil {
		return nil, errors.New("session service not configured")
	}
	session, err := sessionService.Current(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("%w: run 'dexter login' first", domain.ErrNotAuthenticated)
	}
	return session, nil
}

// commandContext returns the command's context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
