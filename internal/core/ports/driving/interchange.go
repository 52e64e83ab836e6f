package driving

import (
	"context"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
)

// InterchangeService moves projects in and out of ESX documents.
type InterchangeService interface {
	// Export encodes a stored project and records an audit entry.
	Export(ctx context.Context, projectID string, opts ExportOptions) (*ExportResult, error)

	// Import decodes a document and persists it as a new project.
	Import(ctx context.Context, data []byte) (*ImportSummary, error)

	// Preview decodes a document without persisting anything.
	Preview(ctx context.Context, data []byte) (*domain.ParseResult, error)

	// ImportSheet appends spreadsheet line items to an existing project.
	ImportSheet(ctx context.Context, projectID string, data []byte) (*ImportSummary, error)

	// ListExports returns the export history for a project.
	ListExports(ctx context.Context, projectID string) ([]domain.ExportRecord, error)
}

// ExportOptions controls a single export.
type ExportOptions struct {
	// IncludePhotos overrides the configured default when non-nil.
	IncludePhotos *bool
}

// ExportResult is a generated document with its audit record.
type ExportResult struct {
	// Filename is the suggested file name for the document.
	Filename string

	// Content is the encoded document.
	Content []byte

	// Record is the persisted audit entry.
	Record domain.ExportRecord
}

// ImportSummary reports what an import persisted.
type ImportSummary struct {
	// ProjectID is the new (or target) project.
	ProjectID string

	// ProjectName is the project title as stored.
	ProjectName string

	LevelCount    int
	RoomCount     int
	LineItemCount int
	PhotoCount    int

	// UnresolvedPhotos counts photos whose room name matched no room.
	UnresolvedPhotos int

	// UnmatchedRows counts sheet rows whose room name matched no room.
	UnmatchedRows int
}
