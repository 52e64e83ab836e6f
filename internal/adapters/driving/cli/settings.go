package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change interchange settings.

Settings are stored in ~/.estix/config.toml. Without a subcommand the
current settings are shown.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change one setting.

Keys:
  export.include_photos  include photo references by default (true/false)
  export.output_dir      directory exported documents are written to
  import.max_bytes       largest document accepted for import or preview
  watch.dir              inbox directory used by "estix watch"
  watch.rate             inbox files imported per second`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Export]")
	cmd.Printf("  Include photos: %s\n", yesNo(settings.IncludePhotos))
	cmd.Printf("  Output directory: %s\n", orNotSet(settings.OutputDir, "(current directory)"))
	cmd.Println()

	cmd.Println("[Import]")
	cmd.Printf("  Max document size: %d bytes\n", settings.MaxImportBytes)
	cmd.Println()

	cmd.Println("[Watch]")
	cmd.Printf("  Inbox: %s\n", orNotSet(settings.WatchDir, "(not set)"))
	cmd.Printf("  Rate: %d file(s)/s\n", settings.WatchRate)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if !isKnownKey(key) {
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(settingsService.Keys(), ", "))
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func isKnownKey(key string) bool {
	for _, k := range settingsService.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orNotSet(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
