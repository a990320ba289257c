package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		updated, _ := m.Update(key(k))
		m = updated.(Model)
	}
	return m
}

func TestSelectionDefaultsToAllFeatures(t *testing.T) {
	m := NewModel([]string{"features/a.feature", "features/b.feature"})
	m = press(m, "enter")

	paths, headed, aborted := m.Selection()
	assert.False(t, aborted)
	assert.False(t, headed)
	assert.Equal(t, []string{"features/a.feature", "features/b.feature"}, paths)
}

func TestTogglingFeatures(t *testing.T) {
	m := NewModel([]string{"a.feature", "b.feature", "c.feature"})
	m = press(m, " ", "down", "down", " ", "enter")

	paths, _, aborted := m.Selection()
	assert.False(t, aborted)
	assert.Equal(t, []string{"a.feature", "c.feature"}, paths)
}

func TestToggleOffAgain(t *testing.T) {
	m := NewModel([]string{"a.feature", "b.feature"})
	m = press(m, " ", " ", "enter")

	paths, _, _ := m.Selection()
	assert.Equal(t, []string{"a.feature", "b.feature"}, paths, "untoggled selection falls back to all features")
}

func TestHeadedToggle(t *testing.T) {
	m := NewModel([]string{"a.feature"})
	m = press(m, "h", "enter")

	_, headed, _ := m.Selection()
	assert.True(t, headed)
}

func TestQuitAborts(t *testing.T) {
	m := NewModel([]string{"a.feature"})
	m = press(m, "q")

	_, _, aborted := m.Selection()
	assert.True(t, aborted)
}

func TestCursorStaysInBounds(t *testing.T) {
	m := NewModel([]string{"a.feature", "b.feature"})
	m = press(m, "up", "k", "down", "j", "j", "j", " ", "enter")

	paths, _, _ := m.Selection()
	assert.Equal(t, []string{"b.feature"}, paths)
}

func TestDiscoverFeatures(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested"), 0755))
	for _, name := range []string{"one.feature", "nested/two.feature", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("Feature:"), 0644))
	}

	features, err := DiscoverFeatures(root)
	require.NoError(t, err)
	assert.Len(t, features, 2)
	for _, feature := range features {
		assert.True(t, filepath.Ext(feature) == ".feature")
	}
}
