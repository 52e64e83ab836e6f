package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/estix-cli/internal/core/ports/driving"
)

// ExportInput is the input schema for the export_project tool.
type ExportInput struct {
	ProjectID     string `json:"project_id" jsonschema:"the stored project to export"`
	IncludePhotos *bool  `json:"include_photos,omitempty" jsonschema:"include photo references (defaults to the configured setting)"`
}

// ExportOutput is the output schema for the export_project tool.
type ExportOutput struct {
	Filename      string `json:"filename"`
	Document      string `json:"document"`
	SizeBytes     int64  `json:"size_bytes"`
	LineItemCount int    `json:"line_item_count"`
	PhotoCount    int    `json:"photo_count"`
}

// DocumentInput carries an ESX document as text.
type DocumentInput struct {
	Document string `json:"document" jsonschema:"the ESX document XML"`
}

// ImportOutput is the output schema for the import_esx tool.
type ImportOutput struct {
	ProjectID        string `json:"project_id"`
	ProjectName      string `json:"project_name"`
	LevelCount       int    `json:"level_count"`
	RoomCount        int    `json:"room_count"`
	LineItemCount    int    `json:"line_item_count"`
	PhotoCount       int    `json:"photo_count"`
	UnresolvedPhotos int    `json:"unresolved_photos,omitempty"`
}

// PreviewOutput is the output schema for the preview_esx tool.
type PreviewOutput struct {
	Success     bool    `json:"success"`
	Diagnostic  string  `json:"diagnostic,omitempty"`
	ProjectName string  `json:"project_name,omitempty"`
	ClaimNumber string  `json:"claim_number,omitempty"`
	Total       float64 `json:"total"`
	Levels      int     `json:"levels"`
	Rooms       int     `json:"rooms"`
	LineItems   int     `json:"line_items"`
	Photos      int     `json:"photos"`

	// UnresolvedPhotos counts photos naming a room the document lacks.
	UnresolvedPhotos int `json:"unresolved_photos,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export_project",
		Description: "Export a stored estimate project as an ESX document",
	}, s.handleExport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "import_esx",
		Description: "Import an ESX document as a new estimate project",
	}, s.handleImport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "preview_esx",
		Description: "Summarise an ESX document without importing it",
	}, s.handlePreview)
}

func (s *Server) handleExport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExportInput,
) (*mcp.CallToolResult, ExportOutput, error) {
	if input.ProjectID == "" {
		return nil, ExportOutput{}, errors.New("project_id is required")
	}

	result, err := s.ports.Interchange.Export(ctx, input.ProjectID,
		driving.ExportOptions{IncludePhotos: input.IncludePhotos})
	if err != nil {
		return nil, ExportOutput{}, err
	}

	return nil, ExportOutput{
		Filename:      result.Filename,
		Document:      string(result.Content),
		SizeBytes:     result.Record.SizeBytes,
		LineItemCount: result.Record.LineItemCount,
		PhotoCount:    result.Record.PhotoCount,
	}, nil
}

func (s *Server) handleImport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, ImportOutput, error) {
	summary, err := s.ports.Interchange.Import(ctx, []byte(input.Document))
	if err != nil {
		return nil, ImportOutput{}, err
	}

	return nil, ImportOutput{
		ProjectID:        summary.ProjectID,
		ProjectName:      summary.ProjectName,
		LevelCount:       summary.LevelCount,
		RoomCount:        summary.RoomCount,
		LineItemCount:    summary.LineItemCount,
		PhotoCount:       summary.PhotoCount,
		UnresolvedPhotos: summary.UnresolvedPhotos,
	}, nil
}

// handlePreview reports decode failures in the output rather than as a
// tool error so the assistant can show the diagnostic.
func (s *Server) handlePreview(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, PreviewOutput, error) {
	result, err := s.ports.Interchange.Preview(ctx, []byte(input.Document))
	if err != nil {
		return nil, PreviewOutput{}, err
	}

	if !result.Success {
		return nil, PreviewOutput{Diagnostic: result.Diagnostic()}, nil
	}

	output := PreviewOutput{
		Success:     true,
		ProjectName: result.Project.Name,
		ClaimNumber: result.Project.ClaimNumber,
		Total:       result.Project.Total,
		Levels:      len(result.Levels),
		Rooms:       len(result.Rooms),
		LineItems:   len(result.LineItems),
		Photos:      len(result.Photos),
	}
	for _, p := range result.Photos {
		if p.RoomIndex < 0 && p.RoomName != "" {
			output.UnresolvedPhotos++
		}
	}

	return nil, output, nil
}
