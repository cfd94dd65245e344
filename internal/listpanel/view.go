package listpanel

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/npratt/refgraph/internal/catalog"
	"github.com/npratt/refgraph/internal/render"
)

// styles contains the lipgloss styles used by the list.
var styles = struct {
	Year        lipgloss.Style
	Title       lipgloss.Style
	TitleActive lipgloss.Style
	Summary     lipgloss.Style
	Marker      lipgloss.Style
	Empty       lipgloss.Style
}{
	Year: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("245")),

	Title: lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")),

	TitleActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("231")),

	Summary: lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")),

	Marker: lipgloss.NewStyle().
		Foreground(lipgloss.Color("231")),

	Empty: lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color("240")),
}

var palette = render.DefaultPalette()

// View renders the visible entries into exactly height lines of at most
// width cells.
func (p *Panel) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := make([]string, 0, height)
	if len(p.entries) == 0 {
		lines = append(lines, styles.Empty.Render(truncate("no references", width)))
	}

	for row := p.offset; row < len(p.entries) && len(lines) < height; row++ {
		lines = append(lines, renderEntry(p.entries[row], width)...)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func renderEntry(e Entry, width int) []string {
	marker := "  "
	title := styles.Title
	if e.Active {
		marker = styles.Marker.Render("▌ ")
		title = styles.TitleActive
	}
	inner := width - 2
	if inner < 1 {
		inner = 1
	}

	year := strconv.Itoa(e.Record.Year)
	head := styles.Year.Render(year)
	if room := inner - runewidth.StringWidth(year) - 2; room > 0 {
		head += "  " + badge(e.Record.Category, room)
	}

	return []string{
		marker + head,
		marker + title.Render(truncate(e.Record.Title, inner)),
		marker + styles.Summary.Render(truncate(e.Record.Summary, inner)),
		"",
	}
}

func badge(c catalog.Category, width int) string {
	label := c.Label()
	if label == "" {
		label = "OTHER"
	}
	color := palette.Category(c).Hex()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Render(truncate(label, width))
}

func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
