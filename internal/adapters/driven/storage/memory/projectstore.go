package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
	"github.com/custodia-labs/estix-cli/internal/core/ports/driven"
)

// Ensure ProjectStore implements the interface.
var _ driven.ProjectStore = (*ProjectStore)(nil)

// ProjectStore is an in-memory implementation of driven.ProjectStore.
// Graphs are copied on the way in and out so callers cannot mutate
// stored state.
type ProjectStore struct {
	mu     sync.RWMutex
	graphs map[string]*domain.ProjectGraph
}

// NewProjectStore creates a new in-memory project store.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{
		graphs: make(map[string]*domain.ProjectGraph),
	}
}

// SaveGraph stores or replaces a project and all of its children.
func (s *ProjectStore) SaveGraph(_ context.Context, graph *domain.ProjectGraph) error {
	if graph == nil || graph.Project.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[graph.Project.ID] = cloneGraph(graph)
	return nil
}

// GetGraph loads a project and its children.
func (s *ProjectStore) GetGraph(_ context.Context, projectID string) (*domain.ProjectGraph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	graph, ok := s.graphs[projectID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneGraph(graph), nil
}

// ListProjects returns project headers ordered by name, then ID.
func (s *ProjectStore) ListProjects(_ context.Context) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Project, 0, len(s.graphs))
	for _, graph := range s.graphs {
		result = append(result, graph.Project)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := strings.ToLower(result[i].Name), strings.ToLower(result[j].Name)
		if a != b {
			return a < b
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// DeleteProject removes a project and its children.
func (s *ProjectStore) DeleteProject(_ context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.graphs[projectID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.graphs, projectID)
	return nil
}

func cloneGraph(g *domain.ProjectGraph) *domain.ProjectGraph {
	out := &domain.ProjectGraph{
		Project:   g.Project,
		Levels:    append([]domain.Level(nil), g.Levels...),
		Rooms:     make([]domain.Room, len(g.Rooms)),
		LineItems: make([]domain.LineItem, len(g.LineItems)),
		Photos:    make([]domain.Photo, len(g.Photos)),
	}
	out.Project.DateOfLoss = cloneTime(g.Project.DateOfLoss)
	for i, r := range g.Rooms {
		r.LevelID = cloneString(r.LevelID)
		out.Rooms[i] = r
	}
	for i, item := range g.LineItems {
		item.RoomID = cloneString(item.RoomID)
		out.LineItems[i] = item
	}
	for i, p := range g.Photos {
		p.RoomID = cloneString(p.RoomID)
		p.TakenAt = cloneTime(p.TakenAt)
		out.Photos[i] = p
	}
	return out
}
