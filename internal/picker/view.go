package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
)

var (
	colorFg     = lipgloss.Color("#cdd6f4")
	colorFgDim  = lipgloss.Color("#6c7086")
	colorAccent = lipgloss.Color("#89b4fa")
	colorMark   = lipgloss.Color("#f9e2af")
	colorError  = lipgloss.Color("#f38ba8")

	rowStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	rowSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	markStyle = lipgloss.NewStyle().
			Foreground(colorMark)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorFgDim)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	previewBorderStyle = lipgloss.NewStyle().
				Foreground(colorFgDim)
)

func rowZoneID(index int) string {
	return fmt.Sprintf("row-%d", index)
}

func (m Model) View() string {
	if m.cancelled || m.selection != nil {
		return ""
	}

	var b strings.Builder

	if m.previewOn {
		b.WriteString(m.viewPreview())
	}

	b.WriteString(m.viewList())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.viewStatus())

	return zone.Scan(b.String())
}

// previewHeight is the number of screen rows given to the preview pane.
func (m Model) previewHeight() int {
	if !m.previewOn {
		return 0
	}
	h := m.height * m.opts.PreviewRatio / 100
	if h < 3 {
		h = 3
	}
	return h
}

// listHeight is what remains for rows after preview, query, and status.
func (m Model) listHeight() int {
	const chrome = 2 // query line, status line
	h := m.height - m.previewHeight() - chrome
	if m.previewOn {
		h-- // border line
	}
	if h < 1 {
		h = 10
	}
	return h
}

func (m Model) viewPreview() string {
	var b strings.Builder
	lines := strings.Split(m.previewText, "\n")
	height := m.previewHeight()

	for i := 0; i < height; i++ {
		if i < len(lines) {
			b.WriteString(truncate(lines[i], m.width))
		}
		b.WriteString("\n")
	}
	b.WriteString(previewBorderStyle.Render(strings.Repeat("-", max(m.width, 1))))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewList() string {
	var b strings.Builder
	height := m.listHeight()

	// keep the cursor visible
	offset := m.offset
	if m.cursor < offset {
		offset = m.cursor
	}
	if m.cursor >= offset+height {
		offset = m.cursor - height + 1
	}

	for i := offset; i < len(m.rows) && i < offset+height; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		mark := " "
		if m.marked[i] {
			mark = markStyle.Render("*")
		}

		row := truncate(m.rows[i], m.width-4)
		if i == m.cursor {
			row = rowSelectedStyle.Render(row)
		} else {
			row = rowStyle.Render(row)
		}

		b.WriteString(zone.Mark(rowZoneID(i), cursor+mark+row))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewStatus() string {
	switch {
	case m.err != nil:
		return errorStyle.Render("error: " + m.err.Error())
	case m.loading:
		return statusStyle.Render("loading...")
	case len(m.rows) == 0:
		return statusStyle.Render("no matches")
	default:
		marked := ""
		if len(m.markOrder) > 0 {
			marked = fmt.Sprintf("  %d marked", len(m.markOrder))
		}
		return statusStyle.Render(fmt.Sprintf("%d/%d%s  tab: mark  ctrl+/: preview", m.cursor+1, len(m.rows), marked))
	}
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
