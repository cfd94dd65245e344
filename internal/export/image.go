package export

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/npratt/refgraph/internal/render"
)

const (
	tooltipWidth  = 260.0
	tooltipHeight = 58.0
)

func writePNG(path string, f render.Frame, p *render.Palette, title string) error {
	w, h := int(math.Ceil(f.Width)), int(math.Ceil(f.Height))
	dc := gg.NewContext(w, h)
	dc.SetColor(render.NRGBA(p.Background, 255))
	dc.Clear()

	dc.SetLineWidth(1)
	for _, e := range f.Edges {
		dc.SetColor(render.NRGBA(p.Edge, e.Alpha))
		dc.DrawLine(e.From.X, e.From.Y, e.To.X, e.To.Y)
		dc.Stroke()
	}

	for _, n := range f.Nodes {
		dc.SetColor(render.NRGBA(p.Category(n.Category), n.Alpha))
		dc.DrawCircle(n.Center.X, n.Center.Y, math.Max(n.ScreenRadius, 0.5))
		dc.Fill()
	}

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(render.NRGBA(p.Label, 255))
	for _, l := range f.Labels {
		dc.DrawStringAnchored(l.Text, l.At.X, l.At.Y, 0.5, 0.5)
	}

	if t := f.Tooltip; t != nil {
		x, y := t.At.X+12, t.At.Y+12
		dc.SetColor(render.NRGBA(p.Background, 230))
		dc.DrawRoundedRectangle(x, y, tooltipWidth, tooltipHeight, 6)
		dc.Fill()
		dc.SetColor(render.NRGBA(p.Label, 255))
		dc.DrawStringAnchored(clip(t.Title, 34), x+8, y+14, 0, 0.5)
		dc.SetColor(render.NRGBA(p.Label, 160))
		dc.DrawStringAnchored(clip(t.Meta, 34), x+8, y+30, 0, 0.5)
		dc.DrawStringAnchored(clip(t.Summary, 34), x+8, y+46, 0, 0.5)
	}

	if title != "" {
		dc.SetColor(render.NRGBA(p.Label, 200))
		dc.DrawStringAnchored(title, 16, 20, 0, 0.5)
	}

	return dc.SavePNG(path)
}

func writeSVG(w io.Writer, f render.Frame, p *render.Palette, title string) error {
	width, height := int(math.Ceil(f.Width)), int(math.Ceil(f.Height))
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:%s", css(render.NRGBA(p.Background, 255))))

	edge := css(render.NRGBA(p.Edge, 255))
	for _, e := range f.Edges {
		canvas.Line(round(e.From.X), round(e.From.Y), round(e.To.X), round(e.To.Y),
			fmt.Sprintf("stroke:%s;stroke-opacity:%s;stroke-width:1", edge, opacity(e.Alpha)))
	}

	for _, n := range f.Nodes {
		r := round(n.ScreenRadius)
		if r < 1 {
			r = 1
		}
		canvas.Circle(round(n.Center.X), round(n.Center.Y), r,
			fmt.Sprintf("fill:%s;fill-opacity:%s", css(render.NRGBA(p.Category(n.Category), 255)), opacity(n.Alpha)))
	}

	label := css(render.NRGBA(p.Label, 255))
	for _, l := range f.Labels {
		canvas.Text(round(l.At.X), round(l.At.Y), l.Text,
			fmt.Sprintf("fill:%s;font-size:%.0fpx;font-family:monospace;text-anchor:middle;dominant-baseline:middle", label, l.Size))
	}

	if t := f.Tooltip; t != nil {
		x, y := round(t.At.X+12), round(t.At.Y+12)
		canvas.Roundrect(x, y, int(tooltipWidth), int(tooltipHeight), 6, 6,
			fmt.Sprintf("fill:%s;fill-opacity:0.9", css(render.NRGBA(p.Background, 255))))
		canvas.Text(x+8, y+18, t.Title, fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;font-weight:bold", label))
		canvas.Text(x+8, y+34, t.Meta, fmt.Sprintf("fill:%s;fill-opacity:0.6;font-size:11px;font-family:monospace", label))
		canvas.Text(x+8, y+50, clip(t.Summary, 40), fmt.Sprintf("fill:%s;fill-opacity:0.6;font-size:11px;font-family:monospace", label))
	}

	if title != "" {
		canvas.Text(16, 24, title, fmt.Sprintf("fill:%s;font-size:14px;font-family:monospace", label))
	}

	canvas.End()
	return nil
}

func round(v float64) int {
	return int(math.Round(v))
}

func opacity(a uint8) string {
	return fmt.Sprintf("%.3f", float64(a)/255)
}

func css(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
