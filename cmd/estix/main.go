// Command estix exchanges insurance estimate projects as ESX documents.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/estix-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/estix-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/estix-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/estix-cli/internal/codec/esx"
	"github.com/custodia-labs/estix-cli/internal/codec/sheet"
	"github.com/custodia-labs/estix-cli/internal/core/services"
)

// version is set at build time via -ldflags.
var version = "dev"

// homeEnv relocates the config file and database, mainly for tests and
// portable installs.
const homeEnv = "ESTIX_HOME"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	configDir, dataDir := "", ""
	if home := os.Getenv(homeEnv); home != "" {
		configDir = home
		dataDir = filepath.Join(home, "data")
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return err
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening store: %v\n", err)
		return err
	}
	defer store.Close()

	settings := services.NewSettingsService(configStore)
	interchange := services.NewInterchangeService(
		store.ProjectStore(),
		store.ExportStore(),
		esx.NewEncoder(),
		esx.NewDecoder(),
		sheet.NewReader(),
		settings,
	)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Interchange: interchange,
		Project:     services.NewProjectService(store.ProjectStore()),
		Settings:    settings,
	})

	// cobra reports command errors itself.
	return cli.Execute()
}
