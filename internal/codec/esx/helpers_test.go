package esx

import (
	"time"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
)

// sampleGraph builds a project with one level, two rooms on it, one
// unassigned room, and line items spread across all of them plus one
// without a room.
func sampleGraph() *domain.ProjectGraph {
	loss := time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC)
	taken := time.Date(2026, 2, 12, 9, 30, 0, 0, time.UTC)

	return &domain.ProjectGraph{
		Project: domain.Project{
			ID:           "proj-1",
			Name:         "Henderson Water Loss",
			ClaimNumber:  "CLM-2026-0042",
			PolicyNumber: "HO-778812",
			DateOfLoss:   &loss,
			Insured:      domain.Contact{Name: "Dana Henderson", Phone: "555-0101", Email: "dana@example.com"},
			Adjuster:     domain.Contact{Name: "Sam Ortiz"},
			Address:      domain.Address{Street: "12 Elm St", City: "Springfield", State: "IL", Zip: "62701"},
			CreatedAt:    time.Date(2026, 2, 12, 8, 0, 0, 0, time.UTC),
		},
		Levels: []domain.Level{
			{ID: "lvl-1", Name: "Main Floor", Position: 0},
		},
		Rooms: []domain.Room{
			{
				ID:       "room-1",
				LevelID:  domain.StringPtr("lvl-1"),
				Name:     "Kitchen",
				Category: "Kitchen",
				Dimensions: domain.Dimensions{
					SquareFeet:  180,
					PerimeterLF: 54,
					WallSF:      432,
					CeilingSF:   180,
					HeightIn:    96,
				},
			},
			{
				ID:         "room-2",
				LevelID:    domain.StringPtr("lvl-1"),
				Name:       "Hallway",
				Dimensions: domain.Dimensions{HeightIn: 108},
			},
			{ID: "room-3", Name: "Shed"},
		},
		LineItems: []domain.LineItem{
			{
				ID: "item-1", RoomID: domain.StringPtr("room-1"),
				Selector: "DRY1/2", Description: "Drywall - hung, taped, floated",
				Quantity: 120, Unit: "SF", UnitPrice: 2.5, Total: 300, Category: "DRY",
			},
			{
				ID: "item-2", RoomID: domain.StringPtr("room-2"),
				Selector: "PNT", Description: "Paint walls",
				Quantity: 40.5, Unit: "SF", UnitPrice: 1.1, Total: 44.55, Category: "PNT",
			},
			{
				ID: "item-3", RoomID: domain.StringPtr("room-3"),
				Selector: "DMO", Description: "Tear out shelving",
				Quantity: 1, Unit: "EA", UnitPrice: 75, Total: 75, Category: "DMO",
			},
			{
				ID:       "item-4",
				Selector: "WTR", Description: "Water extraction",
				Quantity: 2, Unit: "HR", UnitPrice: 60.05, Total: 120.1, Category: "WTR",
			},
		},
		Photos: []domain.Photo{
			{ID: "ph-1", RoomID: domain.StringPtr("room-1"), Filename: "kitchen.jpg", Type: "damage", Caption: "Wet drywall", TakenAt: &taken},
			{ID: "ph-2", RoomID: domain.StringPtr("gone"), Filename: "misc.jpg"},
		},
	}
}

func findRoom(rooms []domain.ParsedRoom, name string) (domain.ParsedRoom, bool) {
	for _, r := range rooms {
		if r.Name == name {
			return r, true
		}
	}
	return domain.ParsedRoom{}, false
}

func itemsInRoom(items []domain.ParsedLineItem, roomName string) []domain.ParsedLineItem {
	var out []domain.ParsedLineItem
	for _, it := range items {
		if it.RoomName == roomName {
			out = append(out, it)
		}
	}
	return out
}
