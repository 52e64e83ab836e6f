package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/estix-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/estix-cli/internal/core/domain"
)

func TestProjectService_ListGetDelete(t *testing.T) {
	store := memory.NewProjectStore()
	ctx := context.Background()
	require.NoError(t, store.SaveGraph(ctx, sampleProject()))
	svc := NewProjectService(store)

	projects, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Henderson Water Loss", projects[0].Name)

	graph, err := svc.Get(ctx, "proj-1")
	require.NoError(t, err)
	assert.Len(t, graph.Rooms, 2)

	require.NoError(t, svc.Delete(ctx, "proj-1"))
	_, err = svc.Get(ctx, "proj-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_RequiresID(t *testing.T) {
	svc := NewProjectService(memory.NewProjectStore())
	ctx := context.Background()

	_, err := svc.Get(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.Delete(ctx, ""), domain.ErrInvalidInput)
}

func TestProjectService_StoreErrors(t *testing.T) {
	store := new(MockProjectStore)
	store.On("ListProjects", context.Background()).Return(nil, errors.New("db closed"))
	store.On("DeleteProject", context.Background(), "proj-1").Return(domain.ErrNotFound)
	svc := NewProjectService(store)

	_, err := svc.List(context.Background())
	assert.EqualError(t, err, "db closed")
	assert.ErrorIs(t, svc.Delete(context.Background(), "proj-1"), domain.ErrNotFound)
	store.AssertExpectations(t)
}

func TestProjectService_NotConfigured(t *testing.T) {
	svc := NewProjectService(nil)
	ctx := context.Background()

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = svc.Get(ctx, "p")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.ErrorIs(t, svc.Delete(ctx, "p"), domain.ErrNotImplemented)
}
