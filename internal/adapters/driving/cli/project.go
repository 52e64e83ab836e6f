package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/estix-cli/internal/adapters/driving/outline"
)

const timeFormat = "2006-01-02 15:04"

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage stored projects",
	Long:  `List, inspect and delete the estimate projects stored by estix.`,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored projects",
	Args:  cobra.NoArgs,
	RunE:  runProjectList,
}

var projectShowCmd = &cobra.Command{
	Use:   "show [project-id]",
	Short: "Show a project with its rooms and line items",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectShow,
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [project-id]",
	Short: "Delete a project",
	Long:  `Delete a project and all of its levels, rooms, line items and photos. The export history is kept.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDelete,
}

var projectExportsCmd = &cobra.Command{
	Use:   "exports [project-id]",
	Short: "Show the export history of a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectExports,
}

func init() {
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	projectCmd.AddCommand(projectExportsCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjectList(cmd *cobra.Command, _ []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	projects, err := projectService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if len(projects) == 0 {
		cmd.Println("No projects stored.")
		return nil
	}

	cmd.Println("Projects:")
	for i := range projects {
		p := &projects[i]
		cmd.Printf("  %s  %s\n", p.ID, p.Name)
		if p.ClaimNumber != "" {
			cmd.Printf("      Claim: %s\n", p.ClaimNumber)
		}
		cmd.Printf("      Total: %s, modified %s\n", outline.Amount(p.Total), p.ModifiedAt.Local().Format(timeFormat))
	}
	return nil
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	graph, err := projectService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}

	return outline.Write(cmd.OutOrStdout(), outline.Build(outline.FromGraph(graph), nil))
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	if err := projectService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	cmd.Printf("Deleted project %s\n", args[0])
	return nil
}

func runProjectExports(cmd *cobra.Command, args []string) error {
	if interchangeService == nil {
		return errors.New("interchange service not configured")
	}

	records, err := interchangeService.ListExports(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list exports: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No exports recorded.")
		return nil
	}

	cmd.Println("Exports:")
	for i := range records {
		r := &records[i]
		photos := "without photos"
		if r.IncludePhotos {
			photos = "with photos"
		}
		cmd.Printf("  %s  %s\n", r.CreatedAt.Local().Format(timeFormat), r.Filename)
		cmd.Printf("      %d bytes, %d line items, %s, format %s\n",
			r.SizeBytes, r.LineItemCount, photos, r.FormatVersion)
	}
	return nil
}
