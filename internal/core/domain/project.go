package domain

import (
	"strings"
	"time"
)

// Contact is a name/phone/email triple attached to a project.
type Contact struct {
	Name  string
	Phone string
	Email string
}

// Address is the loss property location.
type Address struct {
	Street string
	City   string
	State  string
	Zip    string
}

// String joins the non-empty address parts on one line.
func (a Address) String() string {
	var parts []string
	if a.Street != "" {
		parts = append(parts, a.Street)
	}
	if a.City != "" {
		parts = append(parts, a.City)
	}
	region := strings.TrimSpace(a.State + " " + a.Zip)
	if region != "" {
		parts = append(parts, region)
	}
	return strings.Join(parts, ", ")
}

// Project is the estimate header. Only Name is mandatory.
type Project struct {
	// ID is the storage identifier.
	ID string

	// Name is the human-readable project title.
	Name string

	// ClaimNumber is the insurance claim identifier.
	ClaimNumber string

	// PolicyNumber is the insurance policy identifier.
	PolicyNumber string

	// DateOfLoss is when the damage occurred.
	DateOfLoss *time.Time

	// Insured is the property owner's contact.
	Insured Contact

	// Adjuster is the carrier adjuster's contact.
	Adjuster Contact

	// Address is the loss property address.
	Address Address

	// CreatedAt is when the project was first created.
	CreatedAt time.Time

	// ModifiedAt is when the project was last changed.
	ModifiedAt time.Time

	// Total is the computed grand total of all line items.
	Total float64
}

// Level is a building story grouping rooms.
type Level struct {
	// ID is the storage identifier.
	ID string

	// Name is the level name.
	Name string

	// Label is an optional display label.
	Label string

	// Position orders levels within a project.
	Position int
}

// DisplayLabel returns Label, falling back to Name.
func (l Level) DisplayLabel() string {
	if l.Label != "" {
		return l.Label
	}
	return l.Name
}

// Dimensions summarises a room's measurements. A zero field means absent;
// the codec performs no derivation between fields.
type Dimensions struct {
	SquareFeet  float64
	PerimeterLF float64
	WallSF      float64
	CeilingSF   float64

	// HeightIn is the ceiling height in inches. ESX carries it in feet;
	// values survive the round trip to the hundredth of an inch.
	HeightIn float64
}

// Room is a space holding dimensional attributes and line items.
type Room struct {
	// ID is the storage identifier.
	ID string

	// LevelID links to the owning Level. Nil means unassigned.
	LevelID *string

	// Name is the room name.
	Name string

	// Category is an optional room category tag.
	Category string

	// Dimensions holds the room measurements.
	Dimensions Dimensions
}

// LineItem is one priced scope-of-work entry.
type LineItem struct {
	// ID is the storage identifier.
	ID string

	// RoomID links to the owning Room. Nil means unassigned.
	RoomID *string

	// Selector is the pricing catalog code.
	Selector string

	// Description is free text.
	Description string

	// Quantity is the amount of Unit.
	Quantity float64

	// Unit is the unit-of-measure code (SF, LF, EA...).
	Unit string

	// UnitPrice is the price per Unit.
	UnitPrice float64

	// Total is the computed line total.
	Total float64

	// Category is the trade category tag.
	Category string
}

// Photo is an image attached to a project and optionally a room.
type Photo struct {
	// ID is the storage identifier.
	ID string

	// RoomID links to the Room shown. Nil means no room.
	RoomID *string

	Filename string
	Type     string
	Caption  string
	TakenAt  *time.Time
	URL      string
}

// ProjectGraph is a project together with all of its children.
// It is the unit exchanged with the interchange codec and the project store.
type ProjectGraph struct {
	Project   Project
	Levels    []Level
	Rooms     []Room
	LineItems []LineItem
	Photos    []Photo
}

// Counts returns the number of levels, rooms, line items and photos.
func (g *ProjectGraph) Counts() (levels, rooms, items, photos int) {
	return len(g.Levels), len(g.Rooms), len(g.LineItems), len(g.Photos)
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
