package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// RunFunc simulates the machine at path and returns a short report.
type RunFunc func(path string) (string, error)

// Menu is the interactive machine picker: it lists description files and runs the selected one.
// It keeps running until the user quits.
type Menu struct {
	entries []string
	cursor  int
	run     RunFunc

	report string
	err    error
	ran    string
}

// NewMenu creates a menu over entries. run is called synchronously on selection.
func NewMenu(entries []string, run RunFunc) *Menu {
	return &Menu{entries: entries, run: run}
}

// Init implements tea.Model.
func (m *Menu) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.entries) == 0 {
			return m, nil
		}
		m.ran = m.entries[m.cursor]
		m.report, m.err = m.run(m.ran)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Menu) View() string {
	var s strings.Builder
	s.WriteString(cyan.Render("Turing machine simulator") + "\n\n")

	if len(m.entries) == 0 {
		s.WriteString(dim.Render("No machine descriptions (mt_*.txt) found.") + "\n")
	}
	for i, e := range m.entries {
		label := fmt.Sprintf("%s %s", filepath.Base(filepath.Dir(e)), filepath.Base(e))
		if i == m.cursor {
			s.WriteString(yellow.Render("> ") + white.Render(label) + "\n")
		} else {
			s.WriteString("  " + dim.Render(label) + "\n")
		}
	}

	if m.ran != "" {
		s.WriteString("\n")
		if m.err != nil {
			s.WriteString(red.Render("Error: "+m.err.Error()) + "\n")
		} else {
			s.WriteString(green.Render(m.report) + "\n")
		}
	}

	s.WriteString("\n" + dim.Render("↑/↓ select • enter run • q quit") + "\n")
	return s.String()
}

// Selected returns the entry under the cursor.
func (m *Menu) Selected() string {
	if len(m.entries) == 0 {
		return ""
	}
	return m.entries[m.cursor]
}
