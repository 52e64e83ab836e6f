// Package outline flattens a decoded ESX document into display rows shared
// by the CLI tree output and the TUI preview.
package outline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
)

// Kind identifies what a row describes.
type Kind int

const (
	KindProject Kind = iota
	KindLevel
	KindRoom
	KindItem
	KindSection
	KindPhoto
)

// Row is one line of the outline.
type Row struct {
	Kind   Kind
	Depth  int
	Text   string
	Detail string

	// Level is the owning level position, or -1 outside the estimate.
	Level int

	// Synthetic marks rows inside the fallback container.
	Synthetic bool

	// Unresolved marks photos whose room name matched no room.
	Unresolved bool
}

// Build returns the rows for a successful parse result. Levels listed in
// collapsed hide their rooms and items.
func Build(result *domain.ParseResult, collapsed map[int]bool) []Row {
	if result == nil || result.Project == nil {
		return nil
	}

	roomsByLevel := make(map[int][]int, len(result.Levels))
	for i, r := range result.Rooms {
		roomsByLevel[r.LevelIndex] = append(roomsByLevel[r.LevelIndex], i)
	}
	itemsByRoom := make(map[int][]int, len(result.Rooms))
	for i, item := range result.LineItems {
		itemsByRoom[item.RoomIndex] = append(itemsByRoom[item.RoomIndex], i)
	}

	rows := []Row{projectRow(result.Project)}

	for li, level := range result.Levels {
		rooms := roomsByLevel[li]
		text := level.Name
		if level.Label != "" && level.Label != level.Name {
			text += " (" + level.Label + ")"
		}
		rows = append(rows, Row{
			Kind:      KindLevel,
			Text:      text,
			Detail:    plural(len(rooms), "room"),
			Level:     li,
			Synthetic: level.Synthetic,
		})
		if collapsed[li] {
			continue
		}

		for _, ri := range rooms {
			room := result.Rooms[ri]
			items := itemsByRoom[ri]
			rows = append(rows, Row{
				Kind:      KindRoom,
				Depth:     1,
				Text:      room.Name,
				Detail:    roomDetail(room, len(items)),
				Level:     li,
				Synthetic: level.Synthetic,
			})
			for _, ii := range items {
				item := result.LineItems[ii]
				rows = append(rows, Row{
					Kind:      KindItem,
					Depth:     2,
					Text:      itemText(item),
					Detail:    itemDetail(item),
					Level:     li,
					Synthetic: level.Synthetic,
				})
			}
		}
	}

	if len(result.Photos) > 0 {
		rows = append(rows, Row{
			Kind:   KindSection,
			Text:   "Photos",
			Detail: plural(len(result.Photos), "photo"),
			Level:  -1,
		})
		for _, p := range result.Photos {
			row := Row{Kind: KindPhoto, Depth: 1, Text: p.Filename, Level: -1}
			switch {
			case p.RoomIndex >= 0:
				row.Detail = "in " + result.Rooms[p.RoomIndex].Name
			case p.RoomName != "":
				row.Detail = "room " + strconv.Quote(p.RoomName) + " not found"
				row.Unresolved = true
			default:
				row.Detail = "no room"
			}
			rows = append(rows, row)
		}
	}

	return rows
}

// FromGraph arranges a stored graph in document order so stored projects
// render the same way as decoded documents.
// Unassigned rooms and line items are grouped under the fallback level.
func FromGraph(g *domain.ProjectGraph) *domain.ParseResult {
	result := &domain.ParseResult{Success: true, Project: &g.Project}

	levelIndex := make(map[string]int, len(g.Levels))
	for _, l := range g.Levels {
		levelIndex[l.ID] = len(result.Levels)
		result.Levels = append(result.Levels, domain.ParsedLevel{
			Name:     l.Name,
			Label:    l.Label,
			Position: len(result.Levels),
		})
	}

	fallback := -1
	fallbackLevel := func() int {
		if fallback < 0 {
			fallback = len(result.Levels)
			result.Levels = append(result.Levels, domain.ParsedLevel{
				Name:      domain.FallbackLevelName,
				Position:  fallback,
				Synthetic: true,
			})
		}
		return fallback
	}

	// The General room leads the fallback level, ahead of unassigned rooms.
	known := make(map[string]bool, len(g.Rooms))
	for _, r := range g.Rooms {
		known[r.ID] = true
	}
	general := -1
	for _, item := range g.LineItems {
		if item.RoomID == nil || !known[*item.RoomID] {
			li := fallbackLevel()
			general = len(result.Rooms)
			result.Rooms = append(result.Rooms, domain.ParsedRoom{
				Name:       domain.FallbackRoomName,
				Synthetic:  true,
				LevelName:  result.Levels[li].Name,
				LevelIndex: li,
			})
			break
		}
	}

	roomIndex := make(map[string]int, len(g.Rooms))
	for _, r := range g.Rooms {
		li, ok := -1, false
		if r.LevelID != nil {
			li, ok = levelIndex[*r.LevelID]
		}
		if !ok {
			li = fallbackLevel()
		}
		roomIndex[r.ID] = len(result.Rooms)
		result.Rooms = append(result.Rooms, domain.ParsedRoom{
			Name:       r.Name,
			Category:   r.Category,
			Dimensions: r.Dimensions,
			LevelName:  result.Levels[li].Name,
			LevelIndex: li,
		})
	}

	for _, item := range g.LineItems {
		ri, ok := -1, false
		if item.RoomID != nil {
			ri, ok = roomIndex[*item.RoomID]
		}
		if !ok {
			ri = general
		}
		result.LineItems = append(result.LineItems, domain.ParsedLineItem{
			Selector:    item.Selector,
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
			Category:    item.Category,
			RoomName:    result.Rooms[ri].Name,
			RoomIndex:   ri,
		})
	}

	for _, ph := range g.Photos {
		parsed := domain.ParsedPhoto{
			Filename:  ph.Filename,
			Type:      ph.Type,
			Caption:   ph.Caption,
			TakenAt:   ph.TakenAt,
			URL:       ph.URL,
			RoomIndex: -1,
		}
		if ph.RoomID != nil {
			if ri, ok := roomIndex[*ph.RoomID]; ok {
				parsed.RoomIndex = ri
				parsed.RoomName = result.Rooms[ri].Name
			}
		}
		result.Photos = append(result.Photos, parsed)
	}

	return result
}

// Write renders rows as indented plain text.
func Write(w io.Writer, rows []Row) error {
	for _, row := range rows {
		line := strings.Repeat("  ", row.Depth) + row.Text
		if row.Detail != "" {
			line += "  " + row.Detail
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func projectRow(p *domain.Project) Row {
	var parts []string
	if p.ClaimNumber != "" {
		parts = append(parts, "claim "+p.ClaimNumber)
	}
	if p.Insured.Name != "" {
		parts = append(parts, "insured "+p.Insured.Name)
	}
	parts = append(parts, "total "+Amount(p.Total))
	return Row{Kind: KindProject, Text: p.Name, Detail: strings.Join(parts, ", "), Level: -1}
}

func roomDetail(room domain.ParsedRoom, items int) string {
	var parts []string
	if room.Category != "" {
		parts = append(parts, room.Category)
	}
	if sf := room.Dimensions.SquareFeet; sf > 0 {
		parts = append(parts, strconv.FormatFloat(sf, 'f', -1, 64)+" SF")
	}
	parts = append(parts, plural(items, "item"))
	return strings.Join(parts, ", ")
}

func itemText(item domain.ParsedLineItem) string {
	desc := strings.TrimSpace(item.Description)
	switch {
	case item.Selector == "":
		return desc
	case desc == "":
		return item.Selector
	default:
		return item.Selector + " " + desc
	}
}

func itemDetail(item domain.ParsedLineItem) string {
	qty := strconv.FormatFloat(item.Quantity, 'f', -1, 64)
	if item.Unit != "" {
		qty += " " + item.Unit
	}
	return fmt.Sprintf("%s @ %s = %s", qty, Amount(item.UnitPrice), Amount(item.Total))
}

// Amount formats a currency value with two decimals.
func Amount(f float64) string {
	return "$" + strconv.FormatFloat(f, 'f', 2, 64)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
