// Package viewport maps between screen pixels and layout world coordinates
// and implements pan and pointer-anchored zoom.
package viewport

import (
	"math"

	"github.com/npratt/refgraph/internal/config"
)

// Point is a position in screen or world coordinates.
type Point struct {
	X, Y float64
}

// Transform is the world-to-screen mapping: screen = world*Scale + (X, Y).
type Transform struct {
	X, Y  float64
	Scale float64
}

// Identity is the transform with no offset and unit scale.
var Identity = Transform{Scale: 1}

// ScreenToWorld converts a screen point to world coordinates.
func (t Transform) ScreenToWorld(p Point) Point {
	return Point{X: (p.X - t.X) / t.Scale, Y: (p.Y - t.Y) / t.Scale}
}

// WorldToScreen converts a world point to screen coordinates.
func (t Transform) WorldToScreen(p Point) Point {
	return Point{X: p.X*t.Scale + t.X, Y: p.Y*t.Scale + t.Y}
}

// Bounds is an axis-aligned world rectangle.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Viewport holds the current transform, the canvas size in screen pixels
// and the pan anchor while a pan is in progress.
type Viewport struct {
	cfg    config.ViewportConfig
	t      Transform
	width  float64
	height float64

	panning   bool
	panStart  Point
	panOrigin Transform
}

// New returns a viewport over a width x height canvas with the identity
// transform.
func New(cfg config.ViewportConfig, width, height float64) *Viewport {
	return &Viewport{
		cfg:    cfg,
		t:      Identity,
		width:  width,
		height: height,
	}
}

// Transform returns the current transform.
func (v *Viewport) Transform() Transform { return v.t }

// SetTransform replaces the transform, clamping its scale.
func (v *Viewport) SetTransform(t Transform) {
	t.Scale = v.clamp(t.Scale)
	v.t = t
}

// Size returns the canvas size in screen pixels.
func (v *Viewport) Size() (width, height float64) { return v.width, v.height }

// Resize changes the canvas size. The transform is kept.
func (v *Viewport) Resize(width, height float64) {
	v.width, v.height = width, height
}

// Reset restores the identity transform and drops any pan in progress.
func (v *Viewport) Reset() {
	v.t = Identity
	v.panning = false
}

// ScreenToWorld converts a screen point with the current transform.
func (v *Viewport) ScreenToWorld(p Point) Point { return v.t.ScreenToWorld(p) }

// WorldToScreen converts a world point with the current transform.
func (v *Viewport) WorldToScreen(p Point) Point { return v.t.WorldToScreen(p) }

// Contains reports whether p lies on the canvas, edges included.
func (v *Viewport) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= v.width && p.Y <= v.height
}

// BeginPan anchors a pan at screen point p.
func (v *Viewport) BeginPan(p Point) {
	v.panning = true
	v.panStart = p
	v.panOrigin = v.t
}

// PanTo moves the offset by the pointer displacement since BeginPan.
// Panning is unconstrained.
func (v *Viewport) PanTo(p Point) {
	if !v.panning {
		return
	}
	v.t.X = v.panOrigin.X + (p.X - v.panStart.X)
	v.t.Y = v.panOrigin.Y + (p.Y - v.panStart.Y)
}

// EndPan finishes the pan in progress.
func (v *Viewport) EndPan() { v.panning = false }

// Panning reports whether a pan is in progress.
func (v *Viewport) Panning() bool { return v.panning }

// Zoom applies a wheel delta at screen point p. A positive delta zooms
// out. The world point under p stays fixed. Zoom reports false, leaving
// the transform untouched, when p is off the canvas so the event can be
// handled elsewhere.
func (v *Viewport) Zoom(p Point, delta float64) bool {
	if !v.Contains(p) {
		return false
	}
	v.zoomTo(p, v.t.Scale-delta*v.cfg.ZoomSensitivity)
	return true
}

// ZoomAt multiplies the scale by factor about screen point p.
func (v *Viewport) ZoomAt(p Point, factor float64) {
	v.zoomTo(p, v.t.Scale*factor)
}

func (v *Viewport) zoomTo(p Point, scale float64) {
	scale = v.clamp(scale)
	w := v.t.ScreenToWorld(p)
	v.t.X -= w.X * (scale - v.t.Scale)
	v.t.Y -= w.Y * (scale - v.t.Scale)
	v.t.Scale = scale
}

// Fit scales and centers b on the canvas, leaving padding pixels on each
// side. The scale is clamped to the zoom limits.
func (v *Viewport) Fit(b Bounds, padding float64) {
	gw := math.Max(b.MaxX-b.MinX, 1)
	gh := math.Max(b.MaxY-b.MinY, 1)
	sx := (v.width - 2*padding) / gw
	sy := (v.height - 2*padding) / gh
	s := math.Min(sx, sy)
	if s <= 0 {
		s = 1
	}
	v.t.Scale = v.clamp(s)
	v.CenterOn(Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2})
}

// CenterOn moves the offset so world point w sits at the canvas center.
func (v *Viewport) CenterOn(w Point) {
	v.t.X = v.width/2 - w.X*v.t.Scale
	v.t.Y = v.height/2 - w.Y*v.t.Scale
}

func (v *Viewport) clamp(s float64) float64 {
	return math.Max(v.cfg.MinScale, math.Min(v.cfg.MaxScale, s))
}
