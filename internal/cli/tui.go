package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aurtools/aurinfo/pkg/aur"
)

// List styles.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// packageListModel is the bubbletea model for interactive package selection.
type packageListModel struct {
	packages []aur.Package
	cursor   int
	selected *aur.Package
	height   int
	offset   int
}

func newPackageListModel(packages []aur.Package) packageListModel {
	return packageListModel{
		packages: packages,
		height:   15,
	}
}

func (m packageListModel) Init() tea.Cmd {
	return nil
}

func (m packageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.packages)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			pkg := m.packages[m.cursor]
			m.selected = &pkg
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m packageListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Package"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.packages))
	for i := m.offset; i < end; i++ {
		pkg := m.packages[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		line := fmt.Sprintf("%s%s %s", cursor, style.Render(pkg.Name), listDimStyle.Render(pkg.Version))
		if pkg.NumVotes > 0 {
			line += listDimStyle.Render(fmt.Sprintf("  (%d votes)", pkg.NumVotes))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.packages) > end {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("\n… %d more", len(m.packages)-end)))
		b.WriteString("\n")
	}
	return b.String()
}
