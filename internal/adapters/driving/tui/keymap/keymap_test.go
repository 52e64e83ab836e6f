package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"q", "ctrl+c", "esc"}},
		{"help", km.Help, []string{"?"}},
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"page up", km.PageUp, []string{"pgup", "ctrl+u"}},
		{"page down", km.PageDown, []string{"pgdown", "ctrl+d"}},
		{"top", km.Top, []string{"home", "g"}},
		{"bottom", km.Bottom, []string{"end", "G"}},
		{"toggle", km.Toggle, []string{"enter", " "}},
		{"import", km.Import, []string{"i"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_MatchesKeyMsg(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i")}, km.Import))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, km.Toggle))
	assert.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, km.Import))
}

func TestKeyMap_Help(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 4)
	full := km.FullHelp()
	require.Len(t, full, 3)
	total := 0
	for _, col := range full {
		total += len(col)
	}
	assert.Equal(t, 10, total)
}
