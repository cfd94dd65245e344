package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/npratt/refgraph/internal/render"
)

// Each terminal cell holds a 2x4 braille dot matrix.
const (
	dotsX       = 2
	dotsY       = 4
	brailleBase = 0x2800
)

// dotBits maps a dot position within a cell to its braille bit.
var dotBits = [dotsY][dotsX]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Cell layers; a higher layer owns the cell colour.
const (
	layerEmpty = iota
	layerEdge
	layerNode
	layerText
)

type cell struct {
	dots  rune
	text  rune
	color string
	layer int
	bold  bool
}

// brailleGrid rasterises a frame onto terminal cells.
type brailleGrid struct {
	cols, rows int
	cellW      float64 // screen pixels per column
	cellH      float64 // screen pixels per row
	cells      [][]cell
	styleByHex map[string]lipgloss.Style
}

func newBrailleGrid(cols, rows, cellW, cellH int) *brailleGrid {
	cells := make([][]cell, rows)
	for y := range cells {
		cells[y] = make([]cell, cols)
	}
	return &brailleGrid{
		cols:       cols,
		rows:       rows,
		cellW:      float64(cellW),
		cellH:      float64(cellH),
		cells:      cells,
		styleByHex: make(map[string]lipgloss.Style),
	}
}

// setDot lights the dot at dot coordinates (dx, dy).
func (g *brailleGrid) setDot(dx, dy int, color string, layer int) {
	if dx < 0 || dy < 0 {
		return
	}
	cx, cy := dx/dotsX, dy/dotsY
	if cx >= g.cols || cy >= g.rows {
		return
	}
	c := &g.cells[cy][cx]
	c.dots |= dotBits[dy%dotsY][dx%dotsX]
	if layer >= c.layer {
		c.layer = layer
		c.color = color
	}
}

// toDot converts screen pixels to dot coordinates.
func (g *brailleGrid) toDot(x, y float64) (int, int) {
	return int(math.Floor(x / (g.cellW / dotsX))), int(math.Floor(y / (g.cellH / dotsY)))
}

// line draws a segment between two screen points (Bresenham in dot space).
// The segment is clipped to the canvas first, so only its visible part is
// walked.
func (g *brailleGrid) line(x0, y0, x1, y1 float64, color string) {
	x0, y0, x1, y1, ok := g.clip(x0, y0, x1, y1)
	if !ok {
		return
	}
	ax, ay := g.toDot(x0, y0)
	bx, by := g.toDot(x1, y1)
	dx := abs(bx - ax)
	dy := -abs(by - ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	err := dx + dy
	for {
		g.setDot(ax, ay, color, layerEdge)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ax += sx
		}
		if e2 <= dx {
			err += dx
			ay += sy
		}
	}
}

// clip trims a segment to the canvas rectangle (Liang-Barsky). It reports
// false when no part of the segment is on the canvas.
func (g *brailleGrid) clip(x0, y0, x1, y1 float64) (float64, float64, float64, float64, bool) {
	// Keep the far edges inside the last dot.
	maxX := float64(g.cols)*g.cellW - 1e-6
	maxY := float64(g.rows)*g.cellH - 1e-6
	dx, dy := x1-x0, y1-y0

	t0, t1 := 0.0, 1.0
	for _, b := range [4][2]float64{
		{-dx, x0},
		{dx, maxX - x0},
		{-dy, y0},
		{dy, maxY - y0},
	} {
		p, q := b[0], b[1]
		switch {
		case p == 0:
			if q < 0 {
				return 0, 0, 0, 0, false
			}
		case p < 0:
			r := q / p
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		default:
			r := q / p
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	if math.IsNaN(t0) || math.IsNaN(t1) {
		return 0, 0, 0, 0, false
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// disc fills a circle given in screen pixels.
func (g *brailleGrid) disc(x, y, r float64, color string) {
	dw := g.cellW / dotsX
	dh := g.cellH / dotsY
	minX, minY := g.toDot(x-r, y-r)
	maxX, maxY := g.toDot(x+r, y+r)
	lit := false
	for dy := minY; dy <= maxY; dy++ {
		for dx := minX; dx <= maxX; dx++ {
			px := (float64(dx) + 0.5) * dw
			py := (float64(dy) + 0.5) * dh
			if math.Hypot(px-x, py-y) <= r {
				g.setDot(dx, dy, color, layerNode)
				lit = true
			}
		}
	}
	// Small nodes still show up as one dot.
	if !lit {
		cx, cy := g.toDot(x, y)
		g.setDot(cx, cy, color, layerNode)
	}
}

// text writes s centred on screen point (x, y).
func (g *brailleGrid) text(x, y float64, s, color string, bold bool) {
	row := int(math.Floor(y / g.cellH))
	col := int(math.Floor(x/g.cellW)) - runewidth.StringWidth(s)/2
	g.textAt(col, row, s, color, bold)
}

// textAt writes s starting at a cell.
func (g *brailleGrid) textAt(col, row int, s, color string, bold bool) {
	if row < 0 || row >= g.rows {
		return
	}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w != 1 {
			r = '?'
		}
		if col >= 0 && col < g.cols {
			c := &g.cells[row][col]
			c.text = r
			c.color = color
			c.layer = layerText
			c.bold = bold
		}
		col++
	}
}

// draw rasterises f using the palette.
func (g *brailleGrid) draw(f render.Frame, p *render.Palette) {
	for _, e := range f.Edges {
		g.line(e.From.X, e.From.Y, e.To.X, e.To.Y, p.Hex(p.Edge, e.Alpha))
	}
	for _, n := range f.Nodes {
		g.disc(n.Center.X, n.Center.Y, n.ScreenRadius, p.Hex(p.Category(n.Category), n.Alpha))
	}
	label := p.Hex(p.Label, 255)
	for _, l := range f.Labels {
		g.text(l.At.X, l.At.Y, l.Text, label, false)
	}
	if f.Tooltip != nil {
		g.tooltip(*f.Tooltip, p)
	}
}

const tooltipCols = 36

// tooltip draws the hover card below and right of the node, flipped to
// stay on the canvas.
func (g *brailleGrid) tooltip(t render.Tooltip, p *render.Palette) {
	width := tooltipCols
	if width > g.cols {
		width = g.cols
	}
	lines := []string{
		runewidth.Truncate(t.Title, width, "…"),
		runewidth.Truncate(t.Meta, width, "…"),
		runewidth.Truncate(t.Summary, width, "…"),
	}

	col := int(t.At.X/g.cellW) + 2
	row := int(t.At.Y/g.cellH) + 1
	if col+width > g.cols {
		col = g.cols - width
	}
	if row+len(lines) > g.rows {
		row = int(t.At.Y/g.cellH) - len(lines) - 1
	}
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}

	bright := p.Hex(p.Label, 255)
	dim := p.Hex(p.Label, 160)
	for i, l := range lines {
		pad := l + strings.Repeat(" ", max(0, width-runewidth.StringWidth(l)))
		color := dim
		if i == 0 {
			color = bright
		}
		g.textAt(col, row+i, pad, color, i == 0)
	}
}

// String renders the grid, one styled run per colour change.
func (g *brailleGrid) String() string {
	var b strings.Builder
	for y, row := range g.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		current := cell{layer: -1}
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current.layer == layerEmpty {
				b.WriteString(run.String())
			} else {
				b.WriteString(g.style(current.color, current.bold).Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range row {
			if c.layer != current.layer || c.color != current.color || c.bold != current.bold {
				flush()
				current = c
			}
			switch {
			case c.text != 0:
				run.WriteRune(c.text)
			case c.dots != 0:
				run.WriteRune(brailleBase + c.dots)
			default:
				run.WriteByte(' ')
			}
		}
		flush()
	}
	return b.String()
}

func (g *brailleGrid) style(hex string, bold bool) lipgloss.Style {
	key := hex
	if bold {
		key += "!"
	}
	if s, ok := g.styleByHex[key]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(bold)
	g.styleByHex[key] = s
	return s
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
