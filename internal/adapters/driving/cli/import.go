package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/estix-cli/internal/core/ports/driving"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import an ESX document as a new project",
	Long: `Decode an ESX document and store it as a new project.

Pass - to read the document from stdin. Documents are checked against the
configured import.max_bytes limit before decoding.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importSheetCmd = &cobra.Command{
	Use:   "sheet [project-id] [file]",
	Short: "Append spreadsheet line items to a project",
	Long: `Read line items from a CSV spreadsheet and append them to an
existing project.

The first row names the columns: Room, Selector, Description, Quantity,
Unit, UnitPrice, Total and Category, in any order. Rows are attached to
the project's rooms by name; rows naming an unknown room are kept
without a room.`,
	Args: cobra.ExactArgs(2),
	RunE: runImportSheet,
}

func init() {
	importCmd.AddCommand(importSheetCmd)
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if interchangeService == nil {
		return errors.New("interchange service not configured")
	}

	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	summary, err := interchangeService.Import(cmd.Context(), data)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %q as %s\n", summary.ProjectName, summary.ProjectID)
	printSummary(cmd, summary)
	if summary.UnresolvedPhotos > 0 {
		cmd.Printf("  Warning: %d photo(s) reference rooms that do not exist\n", summary.UnresolvedPhotos)
	}
	return nil
}

func runImportSheet(cmd *cobra.Command, args []string) error {
	if interchangeService == nil {
		return errors.New("interchange service not configured")
	}

	data, err := readInput(cmd, args[1])
	if err != nil {
		return err
	}

	summary, err := interchangeService.ImportSheet(cmd.Context(), args[0], data)
	if err != nil {
		return fmt.Errorf("sheet import failed: %w", err)
	}

	cmd.Printf("Updated %q (%s)\n", summary.ProjectName, summary.ProjectID)
	printSummary(cmd, summary)
	if summary.UnmatchedRows > 0 {
		cmd.Printf("  %d row(s) did not match a room and were added without one\n", summary.UnmatchedRows)
	}
	return nil
}

func printSummary(cmd *cobra.Command, s *driving.ImportSummary) {
	cmd.Printf("  Levels: %d, Rooms: %d, Line items: %d, Photos: %d\n",
		s.LevelCount, s.RoomCount, s.LineItemCount, s.PhotoCount)
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
