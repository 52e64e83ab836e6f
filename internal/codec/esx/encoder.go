package esx

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
	"github.com/custodia-labs/estix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/estix-cli/internal/money"
)

// Ensure Encoder implements the interface.
var _ driven.DocumentEncoder = (*Encoder)(nil)

// Encoder writes project graphs as ESX documents.
type Encoder struct{}

// NewEncoder creates a new ESX encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// FormatVersion returns the ESX version the encoder writes.
func (e *Encoder) FormatVersion() string {
	return FormatVersion
}

// grouping is the per-call ownership index built from room and level
// references. Levels keep caller order.
type grouping struct {
	roomsByID map[string]*domain.Room

	roomsByLevel    map[string][]*domain.Room
	unattachedRooms []*domain.Room

	itemsByRoom     map[string][]*domain.LineItem
	unattachedItems []*domain.LineItem
}

func groupGraph(g *domain.ProjectGraph) *grouping {
	levelIDs := make(map[string]struct{}, len(g.Levels))
	for i := range g.Levels {
		levelIDs[g.Levels[i].ID] = struct{}{}
	}

	gr := &grouping{
		roomsByID:    make(map[string]*domain.Room, len(g.Rooms)),
		roomsByLevel: make(map[string][]*domain.Room),
		itemsByRoom:  make(map[string][]*domain.LineItem),
	}
	for i := range g.Rooms {
		room := &g.Rooms[i]
		gr.roomsByID[room.ID] = room
	}

	for i := range g.LineItems {
		item := &g.LineItems[i]
		if item.RoomID != nil {
			if _, ok := gr.roomsByID[*item.RoomID]; ok {
				gr.itemsByRoom[*item.RoomID] = append(gr.itemsByRoom[*item.RoomID], item)
				continue
			}
		}
		gr.unattachedItems = append(gr.unattachedItems, item)
	}

	for i := range g.Rooms {
		room := &g.Rooms[i]
		if room.LevelID != nil {
			if _, ok := levelIDs[*room.LevelID]; ok {
				gr.roomsByLevel[*room.LevelID] = append(gr.roomsByLevel[*room.LevelID], room)
				continue
			}
		}
		gr.unattachedRooms = append(gr.unattachedRooms, room)
	}

	return gr
}

// Encode renders the graph as an ESX document. It fails only when the
// project name is blank; every other missing value is written as its
// default.
func (e *Encoder) Encode(g *domain.ProjectGraph, opts domain.EncodeOptions) ([]byte, error) {
	if g == nil || strings.TrimSpace(g.Project.Name) == "" {
		return nil, fmt.Errorf("%w: project name", domain.ErrMissingRequiredField)
	}

	gr := groupGraph(g)

	w := &xmlWriter{}
	w.header()
	w.open(rootElement, attr{attrVersion, FormatVersion})

	writeProject(w, &g.Project)
	writeEstimate(w, g, gr)
	if opts.IncludePhotos && len(g.Photos) > 0 {
		writePhotos(w, g.Photos, gr.roomsByID)
	}

	w.close(rootElement)
	return w.bytes(), nil
}

func writeProject(w *xmlWriter, p *domain.Project) {
	w.open("ProjectInfo")
	w.leaf("Name", p.Name)
	w.leaf("ClaimNumber", p.ClaimNumber)
	w.leaf("PolicyNumber", p.PolicyNumber)
	w.leaf("DateOfLoss", formatDate(p.DateOfLoss))
	w.leaf("DateCreated", formatTimestamp(p.CreatedAt))
	w.leaf("DateModified", formatTimestamp(p.ModifiedAt))
	w.close("ProjectInfo")

	w.open("InsuredInfo")
	writeContact(w, p.Insured)
	w.open("Address")
	w.leaf("Street", p.Address.Street)
	w.leaf("City", p.Address.City)
	w.leaf("State", p.Address.State)
	w.leaf("Zip", p.Address.Zip)
	w.close("Address")
	w.close("InsuredInfo")

	w.open("AdjusterInfo")
	writeContact(w, p.Adjuster)
	w.close("AdjusterInfo")
}

func writeContact(w *xmlWriter, c domain.Contact) {
	w.leaf("Name", c.Name)
	w.leaf("Phone", c.Phone)
	w.leaf("Email", c.Email)
}

func writeEstimate(w *xmlWriter, g *domain.ProjectGraph, gr *grouping) {
	totals := make([]float64, len(g.LineItems))
	for i := range g.LineItems {
		totals[i] = g.LineItems[i].Total
	}

	w.open("Estimate")
	w.leaf("TotalAmount", formatAmount(money.Sum(totals)))
	w.open("Levels")

	for i := range g.Levels {
		level := &g.Levels[i]
		w.open("Level", attr{attrName, level.Name}, attr{attrLabel, level.DisplayLabel()})
		for _, room := range gr.roomsByLevel[level.ID] {
			writeRoom(w, room, gr.itemsByRoom[room.ID])
		}
		w.close("Level")
	}

	if len(gr.unattachedRooms) > 0 || len(gr.unattachedItems) > 0 {
		w.open("Level",
			attr{attrName, FallbackLevelName},
			attr{attrLabel, FallbackLevelName},
			attr{attrSynthetic, "true"},
		)
		if len(gr.unattachedItems) > 0 {
			writeRoom(w, &domain.Room{Name: FallbackRoomName}, gr.unattachedItems, attr{attrSynthetic, "true"})
		}
		for _, room := range gr.unattachedRooms {
			writeRoom(w, room, gr.itemsByRoom[room.ID])
		}
		w.close("Level")
	}

	w.close("Levels")
	w.close("Estimate")
}

func writeRoom(w *xmlWriter, room *domain.Room, items []*domain.LineItem, extra ...attr) {
	attrs := append([]attr{{attrName, room.Name}, {attrCategory, room.Category}}, extra...)
	w.open("Room", attrs...)

	dims := room.Dimensions
	w.open("Dimensions")
	w.leaf("SquareFeet", formatAmount(dims.SquareFeet))
	w.leaf("PerimeterLF", formatAmount(dims.PerimeterLF))
	w.leaf("WallSF", formatAmount(dims.WallSF))
	w.leaf("CeilingSF", formatAmount(dims.CeilingSF))
	w.leaf("HeightFT", formatHeight(dims.HeightIn))
	w.close("Dimensions")

	w.open("LineItems")
	for _, item := range items {
		w.open("LineItem")
		w.leaf("Selector", item.Selector)
		w.leaf("Description", item.Description)
		w.leaf("Quantity", formatAmount(item.Quantity))
		w.leaf("Unit", item.Unit)
		w.leaf("UnitPrice", formatAmount(item.UnitPrice))
		w.leaf("Total", formatAmount(item.Total))
		w.leaf("Category", item.Category)
		w.close("LineItem")
	}
	w.close("LineItems")

	w.close("Room")
}

func writePhotos(w *xmlWriter, photos []domain.Photo, roomsByID map[string]*domain.Room) {
	w.open("Photos")
	for i := range photos {
		photo := &photos[i]
		roomName := FallbackRoomName
		if photo.RoomID != nil {
			if room, ok := roomsByID[*photo.RoomID]; ok {
				roomName = room.Name
			}
		}
		takenAt := ""
		if photo.TakenAt != nil {
			takenAt = formatTimestamp(*photo.TakenAt)
		}

		w.open("Photo")
		w.leaf("Filename", photo.Filename)
		w.leaf("Room", roomName)
		w.leaf("Type", photo.Type)
		w.leaf("Caption", photo.Caption)
		w.leaf("TakenAt", takenAt)
		w.leaf("URL", photo.URL)
		w.close("Photo")
	}
	w.close("Photos")
}
