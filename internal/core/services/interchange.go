package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
	"github.com/custodia-labs/estix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/estix-cli/internal/core/ports/driving"
	"github.com/custodia-labs/estix-cli/internal/logger"
	"github.com/custodia-labs/estix-cli/internal/money"
)

// Ensure InterchangeService implements the interface.
var _ driving.InterchangeService = (*InterchangeService)(nil)

// InterchangeService exports stored projects to ESX and imports ESX
// documents and spreadsheets into the project store.
type InterchangeService struct {
	projects driven.ProjectStore
	exports  driven.ExportStore
	encoder  driven.DocumentEncoder
	decoder  driven.DocumentDecoder
	sheets   driven.SheetReader
	settings driving.SettingsService

	newID func() string
	now   func() time.Time
}

// NewInterchangeService creates a new interchange service.
// exports, sheets and settings may be nil.
func NewInterchangeService(
	projects driven.ProjectStore,
	exports driven.ExportStore,
	encoder driven.DocumentEncoder,
	decoder driven.DocumentDecoder,
	sheets driven.SheetReader,
	settings driving.SettingsService,
) *InterchangeService {
	return &InterchangeService{
		projects: projects,
		exports:  exports,
		encoder:  encoder,
		decoder:  decoder,
		sheets:   sheets,
		settings: settings,
		newID:    func() string { return uuid.New().String() },
		now:      time.Now,
	}
}

func (s *InterchangeService) currentSettings() domain.Settings {
	if s.settings != nil {
		if settings, err := s.settings.Get(); err == nil && settings != nil {
			return *settings
		}
	}
	return domain.DefaultSettings()
}

func (s *InterchangeService) checkSize(data []byte) error {
	limit := s.currentSettings().MaxImportBytes
	if limit > 0 && int64(len(data)) > limit {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", domain.ErrInputTooLarge, len(data), limit)
	}
	return nil
}

// Export encodes a stored project and records an audit entry.
func (s *InterchangeService) Export(
	ctx context.Context,
	projectID string,
	opts driving.ExportOptions,
) (*driving.ExportResult, error) {
	if s.projects == nil || s.encoder == nil {
		return nil, domain.ErrNotImplemented
	}

	logger.Section("Export")
	defer logger.Timed("export")()
	graph, err := s.projects.GetGraph(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project %s: %w", projectID, err)
	}

	includePhotos := s.currentSettings().IncludePhotos
	if opts.IncludePhotos != nil {
		includePhotos = *opts.IncludePhotos
	}

	content, err := s.encoder.Encode(graph, domain.EncodeOptions{IncludePhotos: includePhotos})
	if err != nil {
		return nil, fmt.Errorf("encoding project %s: %w", projectID, err)
	}

	now := s.now()
	levels, rooms, items, photos := graph.Counts()
	if !includePhotos {
		photos = 0
	}
	record := domain.ExportRecord{
		ID:            s.newID(),
		ProjectID:     projectID,
		Filename:      ExportFilename(graph.Project, now),
		SizeBytes:     int64(len(content)),
		LevelCount:    levels,
		RoomCount:     rooms,
		LineItemCount: items,
		PhotoCount:    photos,
		FormatVersion: s.encoder.FormatVersion(),
		IncludePhotos: includePhotos,
		CreatedAt:     now,
	}
	logger.Info("Encoded %s: %d levels, %d rooms, %d line items, %d photos, %d bytes",
		record.Filename, levels, rooms, items, photos, record.SizeBytes)

	if s.exports != nil {
		if err := s.exports.SaveExport(ctx, record); err != nil {
			return nil, fmt.Errorf("recording export: %w", err)
		}
	}

	return &driving.ExportResult{
		Filename: record.Filename,
		Content:  content,
		Record:   record,
	}, nil
}

// Preview decodes a document without persisting it. Decode failures are
// reported through the ParseResult; the error is reserved for inputs
// rejected before decoding.
func (s *InterchangeService) Preview(_ context.Context, data []byte) (*domain.ParseResult, error) {
	if s.decoder == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := s.checkSize(data); err != nil {
		return nil, err
	}
	return s.decoder.Decode(data), nil
}

// Import decodes a document and persists it as a new project.
func (s *InterchangeService) Import(ctx context.Context, data []byte) (*driving.ImportSummary, error) {
	if s.projects == nil || s.decoder == nil {
		return nil, domain.ErrNotImplemented
	}

	logger.Section("Import")
	defer logger.Timed("import")()
	if err := s.checkSize(data); err != nil {
		return nil, err
	}

	result := s.decoder.Decode(data)
	if !result.Success {
		logger.Warn("Decode failed: %s", result.Diagnostic())
		return nil, fmt.Errorf("decoding document: %w", result.Err)
	}

	graph, unresolved := s.graphFromParse(result)
	if err := s.projects.SaveGraph(ctx, graph); err != nil {
		return nil, fmt.Errorf("saving project: %w", err)
	}

	levels, rooms, items, photos := graph.Counts()
	logger.Info("Imported %q as %s: %d levels, %d rooms, %d line items, %d photos",
		graph.Project.Name, graph.Project.ID, levels, rooms, items, photos)

	return &driving.ImportSummary{
		ProjectID:        graph.Project.ID,
		ProjectName:      graph.Project.Name,
		LevelCount:       levels,
		RoomCount:        rooms,
		LineItemCount:    items,
		PhotoCount:       photos,
		UnresolvedPhotos: unresolved,
	}, nil
}

// graphFromParse mints storage IDs for the positional records. The
// encoder's fallback container is unwound: rooms on the synthetic level
// lose their level, and items in the synthetic General room lose their
// room. A user room that happens to be called General is kept.
func (s *InterchangeService) graphFromParse(result *domain.ParseResult) (*domain.ProjectGraph, int) {
	now := s.now()
	project := *result.Project
	project.ID = s.newID()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.ModifiedAt = now

	graph := &domain.ProjectGraph{Project: project}

	levelIDs := make([]*string, len(result.Levels))
	for i, pl := range result.Levels {
		if pl.Synthetic {
			continue
		}
		id := s.newID()
		levelIDs[i] = &id
		graph.Levels = append(graph.Levels, domain.Level{
			ID:       id,
			Name:     pl.Name,
			Label:    labelIfDistinct(pl.Label, pl.Name),
			Position: len(graph.Levels),
		})
	}

	roomIDs := make([]*string, len(result.Rooms))
	for i, pr := range result.Rooms {
		if pr.Synthetic {
			continue
		}
		id := s.newID()
		roomIDs[i] = &id
		graph.Rooms = append(graph.Rooms, domain.Room{
			ID:         id,
			LevelID:    levelIDs[pr.LevelIndex],
			Name:       pr.Name,
			Category:   pr.Category,
			Dimensions: pr.Dimensions,
		})
	}

	for _, pi := range result.LineItems {
		graph.LineItems = append(graph.LineItems, domain.LineItem{
			ID:          s.newID(),
			RoomID:      roomIDs[pi.RoomIndex],
			Selector:    pi.Selector,
			Description: pi.Description,
			Quantity:    pi.Quantity,
			Unit:        pi.Unit,
			UnitPrice:   pi.UnitPrice,
			Total:       pi.Total,
			Category:    pi.Category,
		})
	}

	unresolved := 0
	for _, pp := range result.Photos {
		var roomID *string
		if pp.RoomIndex >= 0 {
			roomID = roomIDs[pp.RoomIndex]
		} else if pp.RoomName != "" && pp.RoomName != domain.FallbackRoomName {
			unresolved++
		}
		graph.Photos = append(graph.Photos, domain.Photo{
			ID:       s.newID(),
			RoomID:   roomID,
			Filename: pp.Filename,
			Type:     pp.Type,
			Caption:  pp.Caption,
			TakenAt:  pp.TakenAt,
			URL:      pp.URL,
		})
	}

	return graph, unresolved
}

func labelIfDistinct(label, name string) string {
	if label == name {
		return ""
	}
	return label
}

// ImportSheet appends spreadsheet line items to an existing project,
// matching the room column against room names case-insensitively.
func (s *InterchangeService) ImportSheet(
	ctx context.Context,
	projectID string,
	data []byte,
) (*driving.ImportSummary, error) {
	if s.projects == nil || s.sheets == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := s.checkSize(data); err != nil {
		return nil, err
	}

	graph, err := s.projects.GetGraph(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project %s: %w", projectID, err)
	}

	rows, err := s.sheets.Read(data)
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	roomsByName := make(map[string]string, len(graph.Rooms))
	for _, room := range graph.Rooms {
		key := strings.ToLower(strings.TrimSpace(room.Name))
		if _, ok := roomsByName[key]; !ok {
			roomsByName[key] = room.ID
		}
	}

	unmatched := 0
	for _, row := range rows {
		var roomID *string
		if row.RoomName != "" {
			if id, ok := roomsByName[strings.ToLower(strings.TrimSpace(row.RoomName))]; ok {
				roomID = domain.StringPtr(id)
			} else {
				unmatched++
				logger.Debug("Sheet row %q: no room named %q", row.Selector, row.RoomName)
			}
		}
		graph.LineItems = append(graph.LineItems, domain.LineItem{
			ID:          s.newID(),
			RoomID:      roomID,
			Selector:    row.Selector,
			Description: row.Description,
			Quantity:    row.Quantity,
			Unit:        row.Unit,
			UnitPrice:   row.UnitPrice,
			Total:       row.Total,
			Category:    row.Category,
		})
	}

	graph.Project.Total = projectTotal(graph.LineItems)
	graph.Project.ModifiedAt = s.now()
	if err := s.projects.SaveGraph(ctx, graph); err != nil {
		return nil, fmt.Errorf("saving project: %w", err)
	}

	levels, rooms, items, photos := graph.Counts()
	return &driving.ImportSummary{
		ProjectID:     graph.Project.ID,
		ProjectName:   graph.Project.Name,
		LevelCount:    levels,
		RoomCount:     rooms,
		LineItemCount: items,
		PhotoCount:    photos,
		UnmatchedRows: unmatched,
	}, nil
}

// ListExports returns the export history for a project.
func (s *InterchangeService) ListExports(ctx context.Context, projectID string) ([]domain.ExportRecord, error) {
	if s.exports == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.exports.ListExports(ctx, projectID)
}

func projectTotal(items []domain.LineItem) float64 {
	totals := make([]float64, len(items))
	for i, item := range items {
		totals[i] = item.Total
	}
	return money.Sum(totals)
}
