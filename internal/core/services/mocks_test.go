package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
)

// MockProjectStore is a mock implementation of driven.ProjectStore.
type MockProjectStore struct {
	mock.Mock
}

func (m *MockProjectStore) SaveGraph(ctx context.Context, graph *domain.ProjectGraph) error {
	args := m.Called(ctx, graph)
	return args.Error(0)
}

func (m *MockProjectStore) GetGraph(ctx context.Context, projectID string) (*domain.ProjectGraph, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectGraph), args.Error(1)
}

func (m *MockProjectStore) ListProjects(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectStore) DeleteProject(ctx context.Context, projectID string) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

// MockExportStore is a mock implementation of driven.ExportStore.
type MockExportStore struct {
	mock.Mock
}

func (m *MockExportStore) SaveExport(ctx context.Context, record domain.ExportRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockExportStore) ListExports(ctx context.Context, projectID string) ([]domain.ExportRecord, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExportRecord), args.Error(1)
}
