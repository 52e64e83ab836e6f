package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
	"github.com/custodia-labs/estix-cli/internal/core/ports/driven"
)

// projectStore implements driven.ProjectStore.
type projectStore struct {
	store *Store
}

var _ driven.ProjectStore = (*projectStore)(nil)

const projectColumns = `id, name, claim_number, policy_number, date_of_loss,
	insured_name, insured_phone, insured_email,
	adjuster_name, adjuster_phone, adjuster_email,
	street, city, state, zip, total, created_at, modified_at`

// SaveGraph stores or replaces a project and all of its children.
func (s *projectStore) SaveGraph(ctx context.Context, graph *domain.ProjectGraph) error {
	if graph == nil || graph.Project.ID == "" {
		return domain.ErrInvalidInput
	}
	p := graph.Project

	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO projects (`+projectColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				claim_number = excluded.claim_number,
				policy_number = excluded.policy_number,
				date_of_loss = excluded.date_of_loss,
				insured_name = excluded.insured_name,
				insured_phone = excluded.insured_phone,
				insured_email = excluded.insured_email,
				adjuster_name = excluded.adjuster_name,
				adjuster_phone = excluded.adjuster_phone,
				adjuster_email = excluded.adjuster_email,
				street = excluded.street,
				city = excluded.city,
				state = excluded.state,
				zip = excluded.zip,
				total = excluded.total,
				modified_at = excluded.modified_at
		`, p.ID, p.Name, p.ClaimNumber, p.PolicyNumber, nullTime(p.DateOfLoss),
			p.Insured.Name, p.Insured.Phone, p.Insured.Email,
			p.Adjuster.Name, p.Adjuster.Phone, p.Adjuster.Email,
			p.Address.Street, p.Address.City, p.Address.State, p.Address.Zip,
			p.Total, formatTime(p.CreatedAt), formatTime(p.ModifiedAt))
		if err != nil {
			return fmt.Errorf("saving project: %w", err)
		}

		for _, table := range []string{"levels", "rooms", "line_items", "photos"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE project_id = ?", p.ID); err != nil {
				return fmt.Errorf("clearing %s: %w", table, err)
			}
		}

		for _, l := range graph.Levels {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO levels (id, project_id, name, label, position)
				VALUES (?, ?, ?, ?, ?)
			`, l.ID, p.ID, l.Name, l.Label, l.Position)
			if err != nil {
				return fmt.Errorf("saving level %s: %w", l.ID, err)
			}
		}

		for i, r := range graph.Rooms {
			d := r.Dimensions
			_, err := tx.ExecContext(ctx, `
				INSERT INTO rooms (id, project_id, level_id, seq, name, category,
					square_feet, perimeter_lf, wall_sf, ceiling_sf, height_in)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, r.ID, p.ID, nullString(r.LevelID), i, r.Name, r.Category,
				d.SquareFeet, d.PerimeterLF, d.WallSF, d.CeilingSF, d.HeightIn)
			if err != nil {
				return fmt.Errorf("saving room %s: %w", r.ID, err)
			}
		}

		for i, item := range graph.LineItems {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO line_items (id, project_id, room_id, seq, selector, description,
					quantity, unit, unit_price, total, category)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, item.ID, p.ID, nullString(item.RoomID), i, item.Selector, item.Description,
				item.Quantity, item.Unit, item.UnitPrice, item.Total, item.Category)
			if err != nil {
				return fmt.Errorf("saving line item %s: %w", item.ID, err)
			}
		}

		for i, ph := range graph.Photos {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO photos (id, project_id, room_id, seq, filename, type, caption, taken_at, url)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, ph.ID, p.ID, nullString(ph.RoomID), i, ph.Filename, ph.Type, ph.Caption,
				nullTime(ph.TakenAt), ph.URL)
			if err != nil {
				return fmt.Errorf("saving photo %s: %w", ph.ID, err)
			}
		}

		return nil
	})
}

// GetGraph loads a project and its children.
func (s *projectStore) GetGraph(ctx context.Context, projectID string) (*domain.ProjectGraph, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE id = ?", projectID)
	project, err := scanProject(row)
	if err != nil {
		return nil, err
	}

	graph := &domain.ProjectGraph{Project: *project}
	if graph.Levels, err = s.levels(ctx, projectID); err != nil {
		return nil, err
	}
	if graph.Rooms, err = s.rooms(ctx, projectID); err != nil {
		return nil, err
	}
	if graph.LineItems, err = s.lineItems(ctx, projectID); err != nil {
		return nil, err
	}
	if graph.Photos, err = s.photos(ctx, projectID); err != nil {
		return nil, err
	}
	return graph, nil
}

// ListProjects returns project headers ordered by name.
func (s *projectStore) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+projectColumns+" FROM projects ORDER BY name COLLATE NOCASE, id")
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// DeleteProject removes a project; children cascade.
func (s *projectStore) DeleteProject(ctx context.Context, projectID string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", projectID)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *projectStore) levels(ctx context.Context, projectID string) ([]domain.Level, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, label, position FROM levels
		WHERE project_id = ? ORDER BY position, rowid
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading levels: %w", err)
	}
	defer rows.Close()

	var levels []domain.Level
	for rows.Next() {
		var l domain.Level
		if err := rows.Scan(&l.ID, &l.Name, &l.Label, &l.Position); err != nil {
			return nil, fmt.Errorf("scanning level: %w", err)
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}

func (s *projectStore) rooms(ctx context.Context, projectID string) ([]domain.Room, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, level_id, name, category,
			square_feet, perimeter_lf, wall_sf, ceiling_sf, height_in
		FROM rooms WHERE project_id = ? ORDER BY seq
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading rooms: %w", err)
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var r domain.Room
		var levelID sql.NullString
		d := &r.Dimensions
		if err := rows.Scan(&r.ID, &levelID, &r.Name, &r.Category,
			&d.SquareFeet, &d.PerimeterLF, &d.WallSF, &d.CeilingSF, &d.HeightIn); err != nil {
			return nil, fmt.Errorf("scanning room: %w", err)
		}
		r.LevelID = stringPtr(levelID)
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

func (s *projectStore) lineItems(ctx context.Context, projectID string) ([]domain.LineItem, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, room_id, selector, description, quantity, unit, unit_price, total, category
		FROM line_items WHERE project_id = ? ORDER BY seq
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading line items: %w", err)
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		var item domain.LineItem
		var roomID sql.NullString
		if err := rows.Scan(&item.ID, &roomID, &item.Selector, &item.Description,
			&item.Quantity, &item.Unit, &item.UnitPrice, &item.Total, &item.Category); err != nil {
			return nil, fmt.Errorf("scanning line item: %w", err)
		}
		item.RoomID = stringPtr(roomID)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *projectStore) photos(ctx context.Context, projectID string) ([]domain.Photo, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, room_id, filename, type, caption, taken_at, url
		FROM photos WHERE project_id = ? ORDER BY seq
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading photos: %w", err)
	}
	defer rows.Close()

	var photos []domain.Photo
	for rows.Next() {
		var p domain.Photo
		var roomID, takenAt sql.NullString
		if err := rows.Scan(&p.ID, &roomID, &p.Filename, &p.Type, &p.Caption, &takenAt, &p.URL); err != nil {
			return nil, fmt.Errorf("scanning photo: %w", err)
		}
		p.RoomID = stringPtr(roomID)
		p.TakenAt = timePtr(takenAt)
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var dateOfLoss sql.NullString
	var createdAt, modifiedAt string
	err := row.Scan(&p.ID, &p.Name, &p.ClaimNumber, &p.PolicyNumber, &dateOfLoss,
		&p.Insured.Name, &p.Insured.Phone, &p.Insured.Email,
		&p.Adjuster.Name, &p.Adjuster.Phone, &p.Adjuster.Email,
		&p.Address.Street, &p.Address.City, &p.Address.State, &p.Address.Zip,
		&p.Total, &createdAt, &modifiedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	p.DateOfLoss = timePtr(dateOfLoss)
	p.CreatedAt = parseTime(createdAt)
	p.ModifiedAt = parseTime(modifiedAt)
	return &p, nil
}
