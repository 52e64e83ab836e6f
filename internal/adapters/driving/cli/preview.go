package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/estix-cli/internal/adapters/driving/outline"
	"github.com/custodia-labs/estix-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/estix-cli/internal/core/domain"
)

var (
	previewFormat string
	previewPlain  bool
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Inspect an ESX document without importing it",
	Long: `Decode an ESX document and show its contents without storing
anything.

On a terminal the document opens in an interactive outline where levels
can be folded and the document imported with a key press. Use --plain, or
redirect the output, to print the outline instead.

Formats:
  tree - indented outline (default)
  yaml - structured YAML
  json - structured JSON`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewFormat, "format", "f", "tree", "output format: tree, yaml or json")
	previewCmd.Flags().BoolVar(&previewPlain, "plain", false, "print the outline instead of opening the interactive view")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	if interchangeService == nil {
		return errors.New("interchange service not configured")
	}

	switch previewFormat {
	case "tree", "yaml", "json":
	default:
		return fmt.Errorf("unknown format %q: use tree, yaml or json", previewFormat)
	}

	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	result, err := interchangeService.Preview(cmd.Context(), data)
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("document could not be read: %w", result.Err)
	}

	switch previewFormat {
	case "yaml":
		out, err := yaml.Marshal(newPreviewDocument(result))
		if err != nil {
			return fmt.Errorf("failed to marshal preview: %w", err)
		}
		cmd.Print(string(out))
		return nil
	case "json":
		out, err := json.MarshalIndent(newPreviewDocument(result), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal preview: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	if !previewPlain && isTerminal(cmd) {
		return runPreviewTUI(cmd, tui.Document{Name: args[0], Data: data, Result: result})
	}
	return outline.Write(cmd.OutOrStdout(), outline.Build(result, nil))
}

func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runPreviewTUI(cmd *cobra.Command, doc tui.Document) error {
	app, err := tui.NewApp(&tui.Ports{Interchange: interchangeService}, doc)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if summary := app.Imported(); summary != nil {
		cmd.Printf("Imported %q as %s\n", summary.ProjectName, summary.ProjectID)
	}
	return nil
}

// previewDocument is the structured form printed by --format yaml|json.
type previewDocument struct {
	Project previewProject `yaml:"project" json:"project"`
	Levels  []previewLevel `yaml:"levels" json:"levels"`
	Photos  []previewPhoto `yaml:"photos,omitempty" json:"photos,omitempty"`
}

type previewProject struct {
	Name         string     `yaml:"name" json:"name"`
	ClaimNumber  string     `yaml:"claim_number,omitempty" json:"claim_number,omitempty"`
	PolicyNumber string     `yaml:"policy_number,omitempty" json:"policy_number,omitempty"`
	DateOfLoss   *time.Time `yaml:"date_of_loss,omitempty" json:"date_of_loss,omitempty"`
	Insured      string     `yaml:"insured,omitempty" json:"insured,omitempty"`
	Adjuster     string     `yaml:"adjuster,omitempty" json:"adjuster,omitempty"`
	Address      string     `yaml:"address,omitempty" json:"address,omitempty"`
	Total        float64    `yaml:"total" json:"total"`
}

type previewLevel struct {
	Name      string        `yaml:"name" json:"name"`
	Label     string        `yaml:"label,omitempty" json:"label,omitempty"`
	Synthetic bool          `yaml:"synthetic,omitempty" json:"synthetic,omitempty"`
	Rooms     []previewRoom `yaml:"rooms,omitempty" json:"rooms,omitempty"`
}

type previewRoom struct {
	Name       string        `yaml:"name" json:"name"`
	Category   string        `yaml:"category,omitempty" json:"category,omitempty"`
	Synthetic  bool          `yaml:"synthetic,omitempty" json:"synthetic,omitempty"`
	SquareFeet float64       `yaml:"square_feet,omitempty" json:"square_feet,omitempty"`
	HeightIn   float64       `yaml:"height_in,omitempty" json:"height_in,omitempty"`
	Items      []previewItem `yaml:"items,omitempty" json:"items,omitempty"`
}

type previewItem struct {
	Selector    string  `yaml:"selector,omitempty" json:"selector,omitempty"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Quantity    float64 `yaml:"quantity" json:"quantity"`
	Unit        string  `yaml:"unit,omitempty" json:"unit,omitempty"`
	UnitPrice   float64 `yaml:"unit_price" json:"unit_price"`
	Total       float64 `yaml:"total" json:"total"`
}

type previewPhoto struct {
	Filename string `yaml:"filename" json:"filename"`
	Room     string `yaml:"room,omitempty" json:"room,omitempty"`
	Resolved bool   `yaml:"resolved" json:"resolved"`
	Caption  string `yaml:"caption,omitempty" json:"caption,omitempty"`
}

func newPreviewDocument(result *domain.ParseResult) previewDocument {
	p := result.Project
	doc := previewDocument{
		Project: previewProject{
			Name:         p.Name,
			ClaimNumber:  p.ClaimNumber,
			PolicyNumber: p.PolicyNumber,
			DateOfLoss:   p.DateOfLoss,
			Insured:      p.Insured.Name,
			Adjuster:     p.Adjuster.Name,
			Address:      p.Address.String(),
			Total:        p.Total,
		},
		Levels: make([]previewLevel, len(result.Levels)),
	}

	for i, l := range result.Levels {
		doc.Levels[i] = previewLevel{Name: l.Name, Label: l.Label, Synthetic: l.Synthetic}
	}

	// Rooms keep their document position within each level.
	roomSlot := make([]int, len(result.Rooms))
	for i, r := range result.Rooms {
		if r.LevelIndex < 0 || r.LevelIndex >= len(doc.Levels) {
			roomSlot[i] = -1
			continue
		}
		level := &doc.Levels[r.LevelIndex]
		roomSlot[i] = len(level.Rooms)
		level.Rooms = append(level.Rooms, previewRoom{
			Name:       r.Name,
			Category:   r.Category,
			Synthetic:  r.Synthetic,
			SquareFeet: r.Dimensions.SquareFeet,
			HeightIn:   r.Dimensions.HeightIn,
		})
	}

	for _, item := range result.LineItems {
		if item.RoomIndex < 0 || item.RoomIndex >= len(result.Rooms) || roomSlot[item.RoomIndex] < 0 {
			continue
		}
		room := &doc.Levels[result.Rooms[item.RoomIndex].LevelIndex].Rooms[roomSlot[item.RoomIndex]]
		room.Items = append(room.Items, previewItem{
			Selector:    item.Selector,
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}

	for _, ph := range result.Photos {
		doc.Photos = append(doc.Photos, previewPhoto{
			Filename: ph.Filename,
			Room:     ph.RoomName,
			Resolved: ph.RoomIndex >= 0,
			Caption:  ph.Caption,
		})
	}

	return doc
}
