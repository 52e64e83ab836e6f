package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/estix-cli/internal/core/ports/driving"
)

var (
	exportOutput   string
	exportPhotos   bool
	exportNoPhotos bool
	exportStdout   bool
)

var exportCmd = &cobra.Command{
	Use:   "export [project-id]",
	Short: "Export a project as an ESX document",
	Long: `Encode a stored project, with its levels, rooms, line items and
photos, as an ESX document.

The file is written to --output when given, otherwise to the configured
export.output_dir, otherwise to the current directory. The file name is
derived from the claim number and today's date.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file or directory")
	exportCmd.Flags().BoolVar(&exportPhotos, "photos", false, "include photo references")
	exportCmd.Flags().BoolVar(&exportNoPhotos, "no-photos", false, "omit photo references")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "write the document to stdout")
	exportCmd.MarkFlagsMutuallyExclusive("photos", "no-photos")
	exportCmd.MarkFlagsMutuallyExclusive("output", "stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if interchangeService == nil {
		return errors.New("interchange service not configured")
	}

	var opts driving.ExportOptions
	switch {
	case cmd.Flags().Changed("photos"):
		opts.IncludePhotos = &exportPhotos
	case cmd.Flags().Changed("no-photos"):
		include := !exportNoPhotos
		opts.IncludePhotos = &include
	}

	result, err := interchangeService.Export(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if exportStdout {
		_, err := cmd.OutOrStdout().Write(result.Content)
		return err
	}

	path, err := exportPath(exportOutput, result.Filename)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, result.Content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	rec := result.Record
	cmd.Printf("Exported %s\n", path)
	cmd.Printf("  Levels: %d, Rooms: %d, Line items: %d, Photos: %d\n",
		rec.LevelCount, rec.RoomCount, rec.LineItemCount, rec.PhotoCount)
	cmd.Printf("  Size: %d bytes\n", rec.SizeBytes)
	return nil
}

// exportPath resolves where a document named filename is written.
// An explicit output that is an existing directory, or ends with a
// separator, receives the generated file name.
func exportPath(output, filename string) (string, error) {
	dir := output
	if dir == "" {
		dir = "."
		if settingsService != nil {
			settings, err := settingsService.Get()
			if err != nil {
				return "", fmt.Errorf("failed to get settings: %w", err)
			}
			if settings.OutputDir != "" {
				dir = settings.OutputDir
			}
		}
	} else if info, err := os.Stat(output); (err != nil || !info.IsDir()) &&
		!os.IsPathSeparator(output[len(output)-1]) {
		return output, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	return filepath.Join(dir, filename), nil
}
