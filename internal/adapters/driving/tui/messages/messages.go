// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/estix-cli/internal/core/ports/driving"
)

// ImportRequested asks the app to persist the previewed document.
type ImportRequested struct{}

// ImportCompleted carries the outcome of an import back to the model.
type ImportCompleted struct {
	Summary *driving.ImportSummary
	Err     error
}

// LevelToggled is sent when a level is folded or unfolded.
type LevelToggled struct {
	Level     int
	Collapsed bool
}
