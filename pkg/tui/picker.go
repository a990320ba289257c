package tui

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles for the picker
var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#874BFD")).
		Bold(true)

	selectedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00FF00"))

	helpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#626262"))
)

// Model is the Bubble Tea model for the interactive feature picker.
type Model struct {
	features []string
	selected map[int]bool
	cursor   int
	headed   bool
	aborted  bool
	done     bool
}

// NewModel creates a picker over the given feature file paths.
func NewModel(features []string) Model {
	return Model{
		features: features,
		selected: make(map[int]bool),
	}
}

// Init is called when the program starts
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.features)-1 {
				m.cursor++
			}
		case " ":
			m.selected[m.cursor] = !m.selected[m.cursor]
		case "h":
			m.headed = !m.headed
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the picker
func (m Model) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("browserdog — pick features to run"))
	b.WriteString("\n\n")

	for i, feature := range m.features {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		check := "[ ]"
		line := fmt.Sprintf("%s %s", check, feature)
		if m.selected[i] {
			line = selectedStyle.Render(fmt.Sprintf("[x] %s", feature))
		}
		b.WriteString(cursor + line + "\n")
	}

	mode := "headless"
	if m.headed {
		mode = "headed"
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf(
		"space: toggle • h: %s mode • enter: run (all if none selected) • q: quit", mode)))
	b.WriteString("\n")
	return b.String()
}

// Selection returns the chosen feature paths (all features when nothing was
// toggled), whether a headed browser was requested, and whether the picker
// was aborted.
func (m Model) Selection() (paths []string, headed, aborted bool) {
	if m.aborted {
		return nil, m.headed, true
	}
	for i, feature := range m.features {
		if m.selected[i] {
			paths = append(paths, feature)
		}
	}
	if len(paths) == 0 {
		paths = append(paths, m.features...)
	}
	return paths, m.headed, false
}

// DiscoverFeatures walks root and returns every .feature file under it.
func DiscoverFeatures(root string) ([]string, error) {
	var features []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".feature") {
			features = append(features, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover features under %s: %w", root, err)
	}
	return features, nil
}
