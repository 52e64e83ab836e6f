package driven

import (
	"context"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
)

// ProjectStore persists projects together with their children.
type ProjectStore interface {
	// SaveGraph stores or replaces a project and all of its children.
	SaveGraph(ctx context.Context, graph *domain.ProjectGraph) error

	// GetGraph loads a project and its children.
	// Returns domain.ErrNotFound if the project does not exist.
	GetGraph(ctx context.Context, projectID string) (*domain.ProjectGraph, error)

	// ListProjects returns project headers ordered by name.
	ListProjects(ctx context.Context) ([]domain.Project, error)

	// DeleteProject removes a project and its children.
	DeleteProject(ctx context.Context, projectID string) error
}

// ExportStore persists the export audit trail.
type ExportStore interface {
	// SaveExport records one export.
	SaveExport(ctx context.Context, record domain.ExportRecord) error

	// ListExports returns records for a project, newest first.
	ListExports(ctx context.Context, projectID string) ([]domain.ExportRecord, error)
}
