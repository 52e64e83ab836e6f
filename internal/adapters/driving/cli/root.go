// Package cli provides the cobra command tree for estix.
//
// Commands reach the core only through driving ports. The services are
// injected once at startup with SetServices; a command whose service is
// missing fails with a "not configured" error instead of panicking.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/estix-cli/internal/core/ports/driving"
	"github.com/custodia-labs/estix-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	interchangeService driving.InterchangeService
	projectService     driving.ProjectService
	settingsService    driving.SettingsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "estix",
	Short: "Exchange insurance estimates as ESX documents",
	Long: `estix converts stored estimate projects to and from the ESX
interchange format used by claims estimating tools.

Export a project to a document, import documents received from other
systems, inspect a document before importing it, or watch an inbox
directory for new files.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic output to stderr")
}

// Services holds the driving ports used by the commands.
type Services struct {
	Interchange driving.InterchangeService
	Project     driving.ProjectService
	Settings    driving.SettingsService
}

// SetServices injects the services used by all commands.
func SetServices(s Services) {
	interchangeService = s.Interchange
	projectService = s.Project
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
