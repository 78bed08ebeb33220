// Command dexter browses and searches the PokeAPI catalog.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/dexter-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/dexter-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/dexter-cli/internal/connectors/pokeapi"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dexter-cli/internal/core/services"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening data store: %w", err)
	}
	defer store.Close()

	client := pokeapi.NewClient(pokeapi.ConfigFromSettings(settings.API))
	catalog := settings.Catalog
	newCatalog := func() driving.CatalogService {
		return services.NewCatalogService(client, catalog.PageSize, catalog.Concurrency)
	}
	newSearch := func() driving.SearchService {
		return services.NewSearchService(client, catalog.IndexLimit, catalog.SearchLimit, catalog.Concurrency)
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Catalog:    newCatalog(),
		Search:     newSearch(),
		Session:    services.NewSessionService(store.SessionStore()),
		Settings:   settingsService,
		NewCatalog: newCatalog,
		NewSearch:  newSearch,
		Watcher:    configStore,
	})

	return cli.Execute(ctx)
}
