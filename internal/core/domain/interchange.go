package domain

import "time"

// Names of the fallback containers for unassigned rooms and line items.
const (
	FallbackLevelName = "Unassigned"
	FallbackRoomName  = "General"
)

// EncodeOptions controls ESX document generation.
type EncodeOptions struct {
	// IncludePhotos emits the Photos section when photos exist.
	IncludePhotos bool
}

// ParsedLevel is a level reconstructed from document nesting.
type ParsedLevel struct {
	Name     string
	Label    string
	Position int

	// Synthetic marks the fallback container an encoder creates for
	// unassigned rooms and line items.
	Synthetic bool
}

// ParsedRoom is a room reconstructed from document nesting.
type ParsedRoom struct {
	Name       string
	Category   string
	Dimensions Dimensions

	// Synthetic marks the General room an encoder creates to hold
	// unassigned line items. A user room with the same name is not
	// synthetic.
	Synthetic bool

	// LevelName is the owning level's name.
	LevelName string

	// LevelIndex is the owning level's position in ParseResult.Levels.
	LevelIndex int
}

// ParsedLineItem is a line item reconstructed from document nesting.
type ParsedLineItem struct {
	Selector    string
	Description string
	Quantity    float64
	Unit        string
	UnitPrice   float64
	Total       float64
	Category    string

	RoomName  string
	LevelName string

	// RoomIndex is the owning room's position in ParseResult.Rooms.
	RoomIndex int
}

// ParsedPhoto is a photo entry. Its room is free text, resolved by name.
type ParsedPhoto struct {
	Filename string
	RoomName string
	Type     string
	Caption  string
	TakenAt  *time.Time
	URL      string

	// RoomIndex is the first room in ParseResult.Rooms whose name matches
	// RoomName, or -1 when none does.
	RoomIndex int
}

// ParseResult is the outcome of decoding an ESX document.
// On failure only Success and Err are meaningful.
type ParseResult struct {
	Success   bool
	Project   *Project
	Levels    []ParsedLevel
	Rooms     []ParsedRoom
	LineItems []ParsedLineItem
	Photos    []ParsedPhoto

	// Err wraps ErrMalformedDocument or ErrMissingRootElement.
	Err error
}

// Diagnostic returns the failure message, or an empty string on success.
func (r *ParseResult) Diagnostic() string {
	if r == nil || r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// ExportRecord is the audit entry persisted for each export.
type ExportRecord struct {
	ID            string
	ProjectID     string
	Filename      string
	SizeBytes     int64
	LevelCount    int
	RoomCount     int
	LineItemCount int
	PhotoCount    int
	FormatVersion string
	IncludePhotos bool
	CreatedAt     time.Time
}
