package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.tooSmall() || m.scene == nil {
		return m.renderTooSmall()
	}

	frame := m.composeFrame()
	cols, rows := m.canvasCells()
	grid := newBrailleGrid(cols, rows, m.cfg.Render.CellWidth, m.cfg.Render.CellHeight)
	grid.draw(frame, m.palette)

	list := lipgloss.NewStyle().
		Width(m.listCols()).
		Height(m.bodyRows()).
		Render(m.scene.list.View(m.listCols()-1, m.bodyRows()))
	canvas := styles.Canvas.Render(grid.String())

	return strings.Join([]string{
		m.renderHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, list, canvas),
		m.renderStatusLine(frame.Cursor.String()),
		m.renderHelp(),
	}, "\n")
}

// renderHeader renders the title and graph counts.
func (m model) renderHeader() string {
	st := m.scene.stats
	title := styles.Title.Render("refgraph")
	counts := styles.Counts.Render(fmt.Sprintf("%d refs  %d links  %d clusters",
		st.Nodes, st.Edges, st.Components))
	gap := max(1, m.width-lipgloss.Width(title)-lipgloss.Width(counts))
	return title + strings.Repeat(" ", gap) + counts
}

// renderStatusLine renders pointer state, energy, zoom and the last status
// message.
func (m model) renderStatusLine(cursor string) string {
	s := m.scene
	state := styles.State.Render(fmt.Sprintf("%s [%s]", s.machine.State(), cursor))
	meta := styles.Footer.Render(fmt.Sprintf("  energy %.3f  zoom %.2fx", s.engine.Alpha(), s.vp.Transform().Scale))

	line := state + meta
	if m.status != "" {
		room := m.width - lipgloss.Width(line) - 2
		if room > 0 {
			msg := runewidth.Truncate(m.status, room, "…")
			if m.failed {
				line += "  " + styles.Error.Render(msg)
			} else {
				line += "  " + styles.Status.Render(msg)
			}
		}
	}
	return line
}

func (m model) renderHelp() string {
	return styles.Footer.Render(m.help.View(keys))
}

// renderTooSmall renders a message when the terminal is too small.
func (m model) renderTooSmall() string {
	msg := fmt.Sprintf("Terminal too small (%dx%d)\nMinimum: %dx%d", m.width, m.height, minWidth, minHeight)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, styles.Notice.Render(msg))
}
