package driving

import (
	"context"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
)

// ProjectService browses stored projects.
type ProjectService interface {
	// List returns all project headers.
	List(ctx context.Context) ([]domain.Project, error)

	// Get returns a project with its children.
	Get(ctx context.Context, projectID string) (*domain.ProjectGraph, error)

	// Delete removes a project and its children.
	Delete(ctx context.Context, projectID string) error
}
