// Package render turns the layout, interaction state and view transform into
// a backend-neutral frame of edges, nodes, labels and a tooltip. The
// terminal canvas and the image exporters both draw from a Frame.
package render

import (
	"math"

	"github.com/npratt/refgraph/internal/catalog"
	"github.com/npratt/refgraph/internal/config"
	"github.com/npratt/refgraph/internal/graph"
	"github.com/npratt/refgraph/internal/interaction"
	"github.com/npratt/refgraph/internal/layout"
	"github.com/npratt/refgraph/internal/viewport"
)

// Tier is the emphasis level of an edge.
type Tier int

const (
	TierNeutral Tier = iota
	TierDimmed
	TierEmphasized
)

// String returns a string representation of the Tier.
func (t Tier) String() string {
	switch t {
	case TierNeutral:
		return "neutral"
	case TierDimmed:
		return "dimmed"
	case TierEmphasized:
		return "emphasized"
	default:
		return "unknown"
	}
}

// Cursor is the pointer shape the host should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
	CursorGrabbing
)

// String returns a string representation of the Cursor.
func (c Cursor) String() string {
	switch c {
	case CursorPointer:
		return "pointer"
	case CursorGrabbing:
		return "grabbing"
	default:
		return "default"
	}
}

// EdgeMark is an edge in screen coordinates.
type EdgeMark struct {
	SourceID string
	TargetID string
	Weight   int
	From     viewport.Point
	To       viewport.Point
	Tier     Tier
	Alpha    uint8
}

// NodeMark is a node disc. Center is in screen coordinates; Radius is in
// world units and ScreenRadius is Radius times the view scale.
type NodeMark struct {
	ID           string
	Index        int
	Category     catalog.Category
	Center       viewport.Point
	Radius       float64
	ScreenRadius float64
	Alpha        uint8
	Focused      bool
	Selected     bool
	Dimmed       bool
}

// Label is text centered horizontally at At. Size is in screen pixels and
// does not change with zoom.
type Label struct {
	ID   string
	Text string
	At   viewport.Point
	Size float64
}

// Tooltip describes the pointer-hovered reference.
type Tooltip struct {
	ID      string
	Title   string
	Meta    string
	Summary string
	At      viewport.Point
}

// Frame is everything to draw for one tick, in draw order.
type Frame struct {
	Width   float64
	Height  float64
	Scale   float64
	Edges   []EdgeMark
	Nodes   []NodeMark
	Labels  []Label
	Tooltip *Tooltip
	Cursor  Cursor
}

// Input is the state a frame is composed from. Nodes are indexed by their
// graph index.
type Input struct {
	Graph     *graph.Graph
	Nodes     []layout.Node
	State     interaction.Snapshot
	Transform viewport.Transform
	Frame     int
	Width     float64
	Height    float64
	Config    config.RenderConfig
}

// Compose builds the frame for in. It has no side effects.
func Compose(in Input) Frame {
	cfg := in.Config
	t := in.Transform
	if t.Scale == 0 {
		t = viewport.Identity
	}
	focused := in.State.Focused
	selected := in.State.Selected

	pos := make([]viewport.Point, in.Graph.Len())
	for _, n := range in.Nodes {
		if n.Index >= 0 && n.Index < len(pos) {
			pos[n.Index] = viewport.Point{X: n.X, Y: n.Y}
		}
	}

	f := Frame{
		Width:  in.Width,
		Height: in.Height,
		Scale:  t.Scale,
		Edges:  make([]EdgeMark, 0, len(in.Graph.Edges)),
		Nodes:  make([]NodeMark, 0, in.Graph.Len()),
	}

	for _, e := range in.Graph.Edges {
		m := EdgeMark{
			SourceID: e.SourceID,
			TargetID: e.TargetID,
			Weight:   e.Weight,
			From:     t.WorldToScreen(pos[e.Source]),
			To:       t.WorldToScreen(pos[e.Target]),
			Tier:     TierNeutral,
			Alpha:    cfg.EdgeAlpha,
		}
		switch {
		case focused != "" && e.Touches(focused):
			m.Tier, m.Alpha = TierEmphasized, cfg.EdgeFocusAlpha
		case focused != "":
			m.Tier, m.Alpha = TierDimmed, cfg.EdgeDimAlpha
		}
		f.Edges = append(f.Edges, m)
	}

	lo, hi := in.Graph.YearRange()
	idle := focused == "" && selected == ""

	for i, r := range in.Graph.Records {
		isFocus := r.ID == focused
		isSel := r.ID == selected
		dimmed := focused != "" && !isFocus && !in.Graph.IsNeighbor(r.ID, focused)

		radius := yearRadius(r.Year, lo, hi, cfg.MinRadius, cfg.MaxRadius)
		if isFocus || isSel {
			radius = cfg.FocusRadius
		}
		drawn := radius
		if idle {
			drawn += math.Sin(float64(in.Frame)*cfg.BreathRate+float64(i)) * cfg.BreathAmplitude
		}

		alpha := uint8(255)
		if dimmed {
			alpha = cfg.NodeDimAlpha
		}

		center := t.WorldToScreen(pos[i])
		f.Nodes = append(f.Nodes, NodeMark{
			ID:           r.ID,
			Index:        i,
			Category:     r.Category,
			Center:       center,
			Radius:       drawn,
			ScreenRadius: drawn * t.Scale,
			Alpha:        alpha,
			Focused:      isFocus,
			Selected:     isSel,
			Dimmed:       dimmed,
		})

		if isFocus || isSel {
			below := viewport.Point{X: pos[i].X, Y: pos[i].Y + radius + cfg.LabelOffset/t.Scale}
			f.Labels = append(f.Labels, Label{
				ID:   r.ID,
				Text: r.ShortLabel(),
				At:   t.WorldToScreen(below),
				Size: cfg.LabelSize,
			})
		}
	}

	hover := in.State.PointerHover
	if hover != "" && !in.State.Panning {
		if i, ok := in.Graph.Index(hover); ok {
			r := in.Graph.Records[i]
			f.Tooltip = &Tooltip{
				ID:      r.ID,
				Title:   r.Title,
				Meta:    r.Meta(),
				Summary: r.Summary,
				At:      t.WorldToScreen(pos[i]),
			}
		}
	}

	switch {
	case in.State.Panning:
		f.Cursor = CursorGrabbing
	case hover != "":
		f.Cursor = CursorPointer
	default:
		f.Cursor = CursorDefault
	}

	return f
}

// yearRadius maps year linearly from [lo, hi] onto [minR, maxR]. A single
// year range maps to the midpoint.
func yearRadius(year, lo, hi int, minR, maxR float64) float64 {
	if hi == lo {
		return (minR + maxR) / 2
	}
	return minR + float64(year-lo)/float64(hi-lo)*(maxR-minR)
}
