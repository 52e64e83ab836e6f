package mcp

import (
	"context"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
	"github.com/custodia-labs/estix-cli/internal/core/ports/driving"
)

// mockInterchangeService is a mock implementation of driving.InterchangeService.
type mockInterchangeService struct {
	exportResult *driving.ExportResult
	summary      *driving.ImportSummary
	parseResult  *domain.ParseResult
	err          error

	gotProjectID string
	gotOptions   driving.ExportOptions
	gotData      []byte
}

func (m *mockInterchangeService) Export(
	_ context.Context,
	projectID string,
	opts driving.ExportOptions,
) (*driving.ExportResult, error) {
	m.gotProjectID = projectID
	m.gotOptions = opts
	return m.exportResult, m.err
}

func (m *mockInterchangeService) Import(_ context.Context, data []byte) (*driving.ImportSummary, error) {
	m.gotData = data
	return m.summary, m.err
}

func (m *mockInterchangeService) Preview(_ context.Context, data []byte) (*domain.ParseResult, error) {
	m.gotData = data
	return m.parseResult, m.err
}

func (m *mockInterchangeService) ImportSheet(_ context.Context, _ string, _ []byte) (*driving.ImportSummary, error) {
	return m.summary, m.err
}

func (m *mockInterchangeService) ListExports(_ context.Context, _ string) ([]domain.ExportRecord, error) {
	return nil, m.err
}

// mockProjectService is a mock implementation of driving.ProjectService.
type mockProjectService struct {
	projects []domain.Project
	graph    *domain.ProjectGraph
	err      error
}

func (m *mockProjectService) List(_ context.Context) ([]domain.Project, error) {
	return m.projects, m.err
}

func (m *mockProjectService) Get(_ context.Context, _ string) (*domain.ProjectGraph, error) {
	return m.graph, m.err
}

func (m *mockProjectService) Delete(_ context.Context, _ string) error {
	return m.err
}
