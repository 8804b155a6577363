package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/layer"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// viewPicker is the bubbletea model for choosing which side of the garment
// to export. Views with artwork are marked.
type viewPicker struct {
	views    []garment.View
	layers   layer.Set
	cursor   int
	selected *garment.View
}

func newViewPicker(layers layer.Set, initial garment.View) viewPicker {
	m := viewPicker{views: garment.Views(), layers: layers}
	for i, v := range m.views {
		if v == initial {
			m.cursor = i
		}
	}
	return m
}

func (m viewPicker) Init() tea.Cmd {
	return nil
}

func (m viewPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k", "left", "h":
			m.cursor = (m.cursor + len(m.views) - 1) % len(m.views)
		case "down", "j", "right", "l":
			m.cursor = (m.cursor + 1) % len(m.views)
		case "enter":
			v := m.views[m.cursor]
			m.selected = &v
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m viewPicker) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select View"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, v := range m.views {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		designs := m.designCount(v)
		mark := " "
		if designs > 0 {
			mark = styleIconSuccess.Render("*")
		}
		line := fmt.Sprintf("%s%s %-6s %4d°  %s", cursor, mark, v, v.Rotation(), m.zoneNames(v))

		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case designs == 0:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s has artwork\n", styleIconSuccess.Render("*")))
	return b.String()
}

func (m viewPicker) designCount(v garment.View) int {
	n := 0
	for _, z := range garment.ZonesForView(v) {
		if l, err := m.layers.Get(z.ID); err == nil && l.Drawable() {
			n++
		}
	}
	return n
}

func (m viewPicker) zoneNames(v garment.View) string {
	zones := garment.ZonesForView(v)
	names := make([]string, len(zones))
	for i, z := range zones {
		names[i] = z.Name
	}
	return strings.Join(names, ", ")
}

// pickView runs the picker and returns the chosen view. Quitting without a
// choice is an error.
func pickView(layers layer.Set, initial garment.View) (garment.View, error) {
	final, err := tea.NewProgram(newViewPicker(layers, initial)).Run()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "view picker")
	}
	if m, ok := final.(viewPicker); ok && m.selected != nil {
		return *m.selected, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "no view selected")
}
