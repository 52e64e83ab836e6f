package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
	"github.com/custodia-labs/estix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/estix-cli/internal/core/ports/driving"
)

// Ensure ProjectService implements the interface.
var _ driving.ProjectService = (*ProjectService)(nil)

// ProjectService browses stored projects.
type ProjectService struct {
	projects driven.ProjectStore
}

// NewProjectService creates a new project service.
func NewProjectService(projects driven.ProjectStore) *ProjectService {
	return &ProjectService{projects: projects}
}

// List returns all project headers.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	if s.projects == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.projects.ListProjects(ctx)
}

// Get returns a project with its children.
func (s *ProjectService) Get(ctx context.Context, projectID string) (*domain.ProjectGraph, error) {
	if s.projects == nil {
		return nil, domain.ErrNotImplemented
	}
	if strings.TrimSpace(projectID) == "" {
		return nil, fmt.Errorf("%w: project id is required", domain.ErrInvalidInput)
	}
	return s.projects.GetGraph(ctx, projectID)
}

// Delete removes a project and its children.
func (s *ProjectService) Delete(ctx context.Context, projectID string) error {
	if s.projects == nil {
		return domain.ErrNotImplemented
	}
	if strings.TrimSpace(projectID) == "" {
		return fmt.Errorf("%w: project id is required", domain.ErrInvalidInput)
	}
	return s.projects.DeleteProject(ctx, projectID)
}
