// Package preview provides the scrollable document outline view.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/estix-cli/internal/adapters/driving/outline"
	"github.com/custodia-labs/estix-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/estix-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/estix-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/estix-cli/internal/core/domain"
)

// reservedLines covers the title, separator and status bar.
const reservedLines = 4

// View renders a decoded document as a foldable outline.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	result    *domain.ParseResult
	collapsed map[int]bool
	rows      []outline.Row

	cursor       int
	scrollOffset int
	width        int
	height       int
}

// NewView creates a preview view for result.
func NewView(s *styles.Styles, km *keymap.KeyMap, result *domain.ParseResult) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	v := &View{
		styles:    s,
		keymap:    km,
		result:    result,
		collapsed: make(map[int]bool),
		width:     80,
		height:    24,
	}
	v.rebuild()
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles key presses and resizes.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil
	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Up):
		v.moveCursor(-1)
	case key.Matches(msg, v.keymap.Down):
		v.moveCursor(1)
	case key.Matches(msg, v.keymap.PageUp):
		v.moveCursor(-v.visibleLines())
	case key.Matches(msg, v.keymap.PageDown):
		v.moveCursor(v.visibleLines())
	case key.Matches(msg, v.keymap.Top):
		v.moveCursor(-len(v.rows))
	case key.Matches(msg, v.keymap.Bottom):
		v.moveCursor(len(v.rows))
	case key.Matches(msg, v.keymap.Toggle):
		return v, v.toggle()
	case key.Matches(msg, v.keymap.Import):
		if v.result != nil && v.result.Success {
			return v, func() tea.Msg { return messages.ImportRequested{} }
		}
	}
	return v, nil
}

// toggle folds or unfolds the level owning the cursor row.
func (v *View) toggle() tea.Cmd {
	if v.cursor >= len(v.rows) {
		return nil
	}
	level := v.rows[v.cursor].Level
	if level < 0 {
		return nil
	}
	v.collapsed[level] = !v.collapsed[level]
	v.rebuild()

	// Keep the cursor on the level row itself.
	for i, row := range v.rows {
		if row.Kind == outline.KindLevel && row.Level == level {
			v.cursor = i
			break
		}
	}
	v.clampScroll()

	collapsed := v.collapsed[level]
	return func() tea.Msg {
		return messages.LevelToggled{Level: level, Collapsed: collapsed}
	}
}

func (v *View) rebuild() {
	if v.result == nil || !v.result.Success {
		v.rows = nil
		return
	}
	v.rows = outline.Build(v.result, v.collapsed)
}

func (v *View) moveCursor(delta int) {
	v.cursor += delta
	if v.cursor >= len(v.rows) {
		v.cursor = len(v.rows) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	v.clampScroll()
}

// clampScroll keeps the cursor inside the visible window.
func (v *View) clampScroll() {
	visible := v.visibleLines()
	if v.cursor < v.scrollOffset {
		v.scrollOffset = v.cursor
	}
	if v.cursor >= v.scrollOffset+visible {
		v.scrollOffset = v.cursor - visible + 1
	}
	if maxOffset := len(v.rows) - visible; v.scrollOffset > maxOffset {
		v.scrollOffset = maxInt(maxOffset, 0)
	}
}

func (v *View) visibleLines() int {
	return maxInt(v.height-reservedLines, 1)
}

// View renders the outline.
func (v *View) View() string {
	var b strings.Builder

	if v.result == nil || !v.result.Success {
		b.WriteString(v.styles.Title.Render("Document could not be read"))
		b.WriteString("\n\n")
		if v.result != nil && v.result.Err != nil {
			b.WriteString(v.styles.Error.Render(v.result.Diagnostic()))
			b.WriteString("\n")
		}
		return b.String()
	}

	end := minInt(v.scrollOffset+v.visibleLines(), len(v.rows))
	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.renderRow(v.rows[i], i == v.cursor))
		b.WriteString("\n")
	}

	if len(v.rows) > v.visibleLines() {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  rows %d-%d of %d",
			v.scrollOffset+1, end, len(v.rows))))
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderRow(row outline.Row, selected bool) string {
	text := row.Text
	if row.Kind == outline.KindLevel {
		marker := "▾ "
		if v.collapsed[row.Level] {
			marker = "▸ "
		}
		text = marker + text
	}
	text = strings.Repeat("  ", row.Depth) + text

	if selected {
		line := text
		if row.Detail != "" {
			line += "  " + row.Detail
		}
		return v.styles.Cursor.Render(line)
	}

	style := v.styles.Normal
	switch row.Kind {
	case outline.KindProject:
		style = v.styles.Title
	case outline.KindLevel, outline.KindSection:
		style = v.styles.Level
	case outline.KindRoom:
		style = v.styles.Room
	case outline.KindItem:
		style = v.styles.Item
	case outline.KindPhoto:
		if row.Unresolved {
			style = v.styles.Warning
		}
	}
	if row.Synthetic {
		style = v.styles.Synthetic
	}

	line := style.Render(text)
	if row.Detail != "" {
		line += "  " + v.styles.Detail.Render(row.Detail)
	}
	return line
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.clampScroll()
}

// Rows returns the currently visible outline rows.
func (v *View) Rows() []outline.Row {
	return v.rows
}

// Cursor returns the selected row index.
func (v *View) Cursor() int {
	return v.cursor
}

// ScrollOffset returns the first rendered row.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
