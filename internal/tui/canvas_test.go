package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/npratt/refgraph/internal/render"
	"github.com/npratt/refgraph/internal/viewport"
)

func TestBrailleGrid_SetDot(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   rune
	}{
		{0, 0, 0x01},
		{0, 1, 0x02},
		{0, 2, 0x04},
		{0, 3, 0x40},
		{1, 0, 0x08},
		{1, 3, 0x80},
	}
	for _, tt := range tests {
		g := newBrailleGrid(2, 1, 8, 16)
		g.setDot(tt.dx, tt.dy, "#ffffff", layerEdge)
		if got := g.cells[0][0].dots; got != tt.want {
			t.Errorf("setDot(%d, %d) bits = %#x, want %#x", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestBrailleGrid_SetDotOutOfRange(t *testing.T) {
	g := newBrailleGrid(2, 2, 8, 16)
	for _, d := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 8}} {
		g.setDot(d[0], d[1], "#ffffff", layerEdge)
	}
	if strings.TrimSpace(ansi.Strip(g.String())) != "" {
		t.Errorf("out of range dots drawn: %q", g.String())
	}
}

func TestBrailleGrid_LayerOwnsColour(t *testing.T) {
	g := newBrailleGrid(1, 1, 8, 16)
	g.setDot(0, 0, "#111111", layerNode)
	g.setDot(1, 1, "#222222", layerEdge)
	c := g.cells[0][0]
	if c.color != "#111111" {
		t.Errorf("colour = %s, want node colour to win", c.color)
	}
	if c.dots != 0x01|0x10 {
		t.Errorf("dots = %#x, want both dots lit", c.dots)
	}
}

func TestBrailleGrid_LineConnectsEndpoints(t *testing.T) {
	g := newBrailleGrid(10, 2, 8, 16)
	// Full width along the first dot row: 20 dots at 4px each.
	g.line(0, 0, 79, 0, "#ffffff")
	for x := 0; x < 10; x++ {
		if g.cells[0][x].dots&(0x01|0x08) != 0x01|0x08 {
			t.Errorf("cell %d dots = %#x, want top row lit", x, g.cells[0][x].dots)
		}
	}
	if g.cells[1][0].dots != 0 {
		t.Error("horizontal line leaked into the next row")
	}
}

func TestBrailleGrid_LineClippedToCanvas(t *testing.T) {
	// One end far off the left edge: the visible part is still drawn.
	g := newBrailleGrid(10, 2, 8, 16)
	g.line(-1e6, 8, 40, 8, "#ffffff")
	for x := 0; x < 5; x++ {
		if g.cells[0][x].dots&0x04 == 0 {
			t.Errorf("cell %d dots = %#x, want the clipped edge drawn", x, g.cells[0][x].dots)
		}
	}
	if g.cells[0][9].dots != 0 {
		t.Error("edge drawn past its visible end")
	}

	// Both ends off the canvas, crossing it diagonally.
	g = newBrailleGrid(4, 4, 8, 16)
	g.line(-1e6, -1e6, 1e6, 1e6, "#ffffff")
	if g.cells[0][0].dots&0x01 == 0 || g.cells[1][3].dots == 0 {
		t.Errorf("diagonal crossing not drawn:\n%s", ansi.Strip(g.String()))
	}

	// Entirely off the canvas.
	g = newBrailleGrid(4, 4, 8, 16)
	g.line(-1e6, -10, 1e6, -10, "#ffffff")
	g.line(1e3, 1e3, 2e3, 5e3, "#ffffff")
	if strings.TrimSpace(ansi.Strip(g.String())) != "" {
		t.Errorf("off-canvas segment drawn:\n%s", g.String())
	}
}

func TestBrailleGrid_ClipKeepsInsideSegments(t *testing.T) {
	g := newBrailleGrid(10, 2, 8, 16)
	x0, y0, x1, y1, ok := g.clip(4, 4, 60, 20)
	if !ok || x0 != 4 || y0 != 4 || x1 != 60 || y1 != 20 {
		t.Errorf("clip = (%v, %v, %v, %v, %v), want segment unchanged", x0, y0, x1, y1, ok)
	}
}

func TestBrailleGrid_Disc(t *testing.T) {
	g := newBrailleGrid(4, 2, 8, 16)
	g.disc(16, 16, 10, "#ffffff")
	lit := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c.dots != 0 {
				lit++
				if c.layer != layerNode {
					t.Errorf("disc cell layer = %d, want node", c.layer)
				}
			}
		}
	}
	if lit < 4 {
		t.Errorf("disc lit %d cells, want the 2x2 around its centre", lit)
	}

	tiny := newBrailleGrid(2, 1, 8, 16)
	tiny.disc(5, 5, 0.1, "#ffffff")
	if tiny.cells[0][0].dots == 0 {
		t.Error("tiny disc should still light one dot")
	}
}

func TestBrailleGrid_TextCentred(t *testing.T) {
	g := newBrailleGrid(10, 1, 8, 16)
	g.text(40, 8, "abcd", "#ffffff", false)
	if got := ansi.Strip(g.String()); got != "   abcd   " {
		t.Errorf("String() = %q, want text centred on column 5", got)
	}
}

func TestBrailleGrid_StringSize(t *testing.T) {
	g := newBrailleGrid(12, 3, 8, 16)
	g.line(0, 0, 95, 47, "#888888")
	g.text(48, 24, "x", "#ffffff", true)
	lines := strings.Split(g.String(), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w != 12 {
			t.Errorf("line %d width = %d, want 12", i, w)
		}
	}
}

func TestBrailleGrid_TooltipStaysOnCanvas(t *testing.T) {
	g := newBrailleGrid(40, 6, 8, 16)
	g.tooltip(render.Tooltip{
		ID:      "a",
		Title:   "A very long title that will not fit in the card",
		Meta:    "2001 // Ada",
		Summary: "Summary.",
		At:      viewport.Point{X: 39 * 8, Y: 5 * 16},
	}, render.DefaultPalette())

	out := ansi.Strip(g.String())
	if !strings.Contains(out, "2001 // Ada") {
		t.Errorf("tooltip meta missing:\n%s", out)
	}
	if !strings.Contains(out, "…") {
		t.Errorf("long title not truncated:\n%s", out)
	}
	for i, l := range strings.Split(out, "\n") {
		if w := ansi.StringWidth(l); w != 40 {
			t.Errorf("line %d width = %d, want 40", i, w)
		}
	}
}

func TestBrailleGrid_DrawFrame(t *testing.T) {
	f := render.Frame{
		Width:  80,
		Height: 32,
		Edges: []render.EdgeMark{{
			From: viewport.Point{X: 4, Y: 4}, To: viewport.Point{X: 76, Y: 4}, Alpha: 60,
		}},
		Nodes: []render.NodeMark{{
			ID: "a", Center: viewport.Point{X: 40, Y: 20}, ScreenRadius: 6, Alpha: 255,
		}},
		Labels: []render.Label{{ID: "a", Text: "Ada '01", At: viewport.Point{X: 40, Y: 28}}},
	}
	g := newBrailleGrid(10, 2, 8, 16)
	g.draw(f, render.DefaultPalette())

	out := ansi.Strip(g.String())
	if !strings.Contains(out, "Ada '01") {
		t.Errorf("label missing:\n%s", out)
	}
	if !strings.ContainsRune(out, brailleBase|0x02|0x10) {
		t.Errorf("edge missing:\n%s", out)
	}
}
