package sqlite

import (
	"context"
	"fmt"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
	"github.com/custodia-labs/estix-cli/internal/core/ports/driven"
)

// exportStore implements driven.ExportStore.
type exportStore struct {
	store *Store
}

var _ driven.ExportStore = (*exportStore)(nil)

// SaveExport records one export.
func (s *exportStore) SaveExport(ctx context.Context, r domain.ExportRecord) error {
	if r.ID == "" {
		return domain.ErrInvalidInput
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO exports (id, project_id, filename, size_bytes,
			level_count, room_count, line_item_count, photo_count,
			format_version, include_photos, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.ProjectID, r.Filename, r.SizeBytes,
		r.LevelCount, r.RoomCount, r.LineItemCount, r.PhotoCount,
		r.FormatVersion, r.IncludePhotos, formatTime(r.CreatedAt))
	if err != nil {
		return fmt.Errorf("saving export: %w", err)
	}
	return nil
}

// ListExports returns records for a project, newest first.
func (s *exportStore) ListExports(ctx context.Context, projectID string) ([]domain.ExportRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, project_id, filename, size_bytes,
			level_count, room_count, line_item_count, photo_count,
			format_version, include_photos, created_at
		FROM exports WHERE project_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing exports: %w", err)
	}
	defer rows.Close()

	var records []domain.ExportRecord
	for rows.Next() {
		var r domain.ExportRecord
		var createdAt string
		if err := rows.Scan(&r.ID, &r.ProjectID, &r.Filename, &r.SizeBytes,
			&r.LevelCount, &r.RoomCount, &r.LineItemCount, &r.PhotoCount,
			&r.FormatVersion, &r.IncludePhotos, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning export: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}
