package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/estix-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/estix-cli/internal/codec/esx"
	"github.com/custodia-labs/estix-cli/internal/codec/sheet"
	"github.com/custodia-labs/estix-cli/internal/core/domain"
	"github.com/custodia-labs/estix-cli/internal/core/services"
)

// testEnv wires the real services over in-memory stores.
type testEnv struct {
	projects *memory.ProjectStore
	exports  *memory.ExportStore
	config   *memory.ConfigStore
}

// setupTestServices installs services backed by memory stores seeded with
// one project. The previous services are restored when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	oldInterchange, oldProject, oldSettings := interchangeService, projectService, settingsService
	t.Cleanup(func() {
		interchangeService, projectService, settingsService = oldInterchange, oldProject, oldSettings
	})

	env := &testEnv{
		projects: memory.NewProjectStore(),
		exports:  memory.NewExportStore(),
		config:   memory.NewConfigStore(),
	}
	require.NoError(t, env.projects.SaveGraph(context.Background(), testGraph()))

	settings := services.NewSettingsService(env.config)
	SetServices(Services{
		Interchange: services.NewInterchangeService(
			env.projects, env.exports,
			esx.NewEncoder(), esx.NewDecoder(), sheet.NewReader(),
			settings,
		),
		Project:  services.NewProjectService(env.projects),
		Settings: settings,
	})
	return env
}

// clearServices removes all services for the duration of the test.
func clearServices(t *testing.T) {
	t.Helper()
	oldInterchange, oldProject, oldSettings := interchangeService, projectService, settingsService
	SetServices(Services{})
	t.Cleanup(func() {
		interchangeService, projectService, settingsService = oldInterchange, oldProject, oldSettings
	})
}

func testGraph() *domain.ProjectGraph {
	return &domain.ProjectGraph{
		Project: domain.Project{
			ID:          "proj-1",
			Name:        "Henderson Water Loss",
			ClaimNumber: "CLM-42",
			Insured:     domain.Contact{Name: "Dana Henderson"},
			Total:       105,
		},
		Levels: []domain.Level{{ID: "lvl-1", Name: "Main Floor"}},
		Rooms: []domain.Room{
			{ID: "room-1", LevelID: domain.StringPtr("lvl-1"), Name: "Kitchen", Category: "Kitchen"},
		},
		LineItems: []domain.LineItem{
			{ID: "item-1", RoomID: domain.StringPtr("room-1"), Selector: "DRY", Description: "Drywall",
				Quantity: 10, Unit: "SF", UnitPrice: 3, Total: 30},
			{ID: "item-2", Selector: "WTR", Description: "Water extraction", Quantity: 1, UnitPrice: 75, Total: 75},
		},
		Photos: []domain.Photo{
			{ID: "ph-1", RoomID: domain.StringPtr("room-1"), Filename: "kitchen.jpg"},
		},
	}
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(stdin)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
