package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/estix-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/estix-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/estix-cli/internal/core/domain"
	"github.com/custodia-labs/estix-cli/internal/core/ports/driving"
)

// MockInterchangeService is a mock implementation of driving.InterchangeService.
type MockInterchangeService struct {
	mock.Mock
}

func (m *MockInterchangeService) Export(ctx context.Context, projectID string, opts driving.ExportOptions) (*driving.ExportResult, error) {
	args := m.Called(ctx, projectID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driving.ExportResult), args.Error(1)
}

func (m *MockInterchangeService) Import(ctx context.Context, data []byte) (*driving.ImportSummary, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driving.ImportSummary), args.Error(1)
}

func (m *MockInterchangeService) Preview(ctx context.Context, data []byte) (*domain.ParseResult, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParseResult), args.Error(1)
}

func (m *MockInterchangeService) ImportSheet(ctx context.Context, projectID string, data []byte) (*driving.ImportSummary, error) {
	args := m.Called(ctx, projectID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driving.ImportSummary), args.Error(1)
}

func (m *MockInterchangeService) ListExports(ctx context.Context, projectID string) ([]domain.ExportRecord, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExportRecord), args.Error(1)
}

func testDocument() Document {
	return Document{
		Name: "smith.esx",
		Data: []byte("<ESX/>"),
		Result: &domain.ParseResult{
			Success: true,
			Project: &domain.Project{Name: "Smith"},
			Levels:  []domain.ParsedLevel{{Name: "Main Floor"}},
			Rooms:   []domain.ParsedRoom{{Name: "Kitchen"}},
		},
	}
}

func newTestApp(t *testing.T, svc *MockInterchangeService) *App {
	t.Helper()
	app, err := NewApp(&Ports{Interchange: svc}, testDocument())
	require.NoError(t, err)
	return app
}

func TestNewApp_Validation(t *testing.T) {
	_, err := NewApp(nil, testDocument())
	assert.ErrorIs(t, err, ErrMissingInterchangeService)

	_, err = NewApp(&Ports{}, testDocument())
	assert.ErrorIs(t, err, ErrMissingInterchangeService)

	_, err = NewApp(&Ports{Interchange: new(MockInterchangeService)}, Document{Name: "x"})
	assert.ErrorIs(t, err, ErrMissingDocument)
}

func TestApp_ViewShowsOutline(t *testing.T) {
	app := newTestApp(t, new(MockInterchangeService))
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := app.View()

	assert.Contains(t, view, "estix preview: smith.esx")
	assert.Contains(t, view, "Smith")
	assert.Contains(t, view, "Main Floor")
	assert.Contains(t, view, "Kitchen")
	assert.Contains(t, view, "Ready")
	assert.NotNil(t, app.Init())
}

func TestApp_QuitAndHelp(t *testing.T) {
	app := newTestApp(t, new(MockInterchangeService))

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.Nil(t, cmd)
	assert.Contains(t, app.View(), "fold level")

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_ImportFlow(t *testing.T) {
	svc := new(MockInterchangeService)
	svc.On("Import", mock.Anything, []byte("<ESX/>")).
		Return(&driving.ImportSummary{ProjectID: "p-1", ProjectName: "Smith"}, nil).Once()
	app := newTestApp(t, svc)

	_, cmd := app.Update(messages.ImportRequested{})
	require.NotNil(t, cmd)
	assert.Equal(t, status.StateImporting, app.status.State())

	_, again := app.Update(messages.ImportRequested{})
	assert.Nil(t, again, "no second import while one is running")

	app.Update(cmd())

	assert.Equal(t, status.StateImported, app.status.State())
	assert.Contains(t, app.View(), `Imported "Smith" as p-1`)
	require.NotNil(t, app.Imported())
	assert.Equal(t, "p-1", app.Imported().ProjectID)

	_, cmd = app.Update(messages.ImportRequested{})
	assert.Nil(t, cmd)
	assert.Contains(t, app.status.Message(), "Already imported")
	svc.AssertExpectations(t)
}

func TestApp_ImportFailure(t *testing.T) {
	svc := new(MockInterchangeService)
	svc.On("Import", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))
	app := newTestApp(t, svc)

	_, cmd := app.Update(messages.ImportRequested{})
	app.Update(cmd())

	assert.Equal(t, status.StateError, app.status.State())
	assert.Contains(t, app.View(), "disk full")
	assert.Nil(t, app.Imported())
}

func TestApp_LevelToggledUpdatesStatus(t *testing.T) {
	app := newTestApp(t, new(MockInterchangeService))

	app.Update(messages.LevelToggled{Level: 0, Collapsed: true})
	assert.Equal(t, "Collapsed Main Floor", app.status.Message())

	app.Update(messages.LevelToggled{Level: 0, Collapsed: false})
	assert.Equal(t, "Expanded Main Floor", app.status.Message())
}

func TestApp_WithContext(t *testing.T) {
	app := newTestApp(t, new(MockInterchangeService))
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "v")

	assert.Same(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}
