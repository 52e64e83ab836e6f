package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
	"github.com/custodia-labs/estix-cli/internal/core/ports/driven"
)

// Ensure ExportStore implements the interface.
var _ driven.ExportStore = (*ExportStore)(nil)

// ExportStore is an in-memory implementation of driven.ExportStore.
type ExportStore struct {
	mu      sync.RWMutex
	records []domain.ExportRecord
}

// NewExportStore creates a new in-memory export store.
func NewExportStore() *ExportStore {
	return &ExportStore{}
}

// SaveExport records one export.
func (s *ExportStore) SaveExport(_ context.Context, record domain.ExportRecord) error {
	if record.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// ListExports returns records for a project, newest first.
func (s *ExportStore) ListExports(_ context.Context, projectID string) ([]domain.ExportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.ExportRecord
	for _, r := range s.records {
		if r.ProjectID == projectID {
			result = append(result, r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
