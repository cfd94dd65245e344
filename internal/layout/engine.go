// Package layout positions graph nodes with a fixed-step force simulation:
// spring links, pairwise charge, centering and collision, cooled by an
// energy value (alpha) that decays toward a target.
package layout

import (
	"math"
	"math/rand/v2"

	"github.com/npratt/refgraph/internal/config"
	"github.com/npratt/refgraph/internal/graph"
)

// distanceMin2 bounds the charge force for nearly coincident nodes.
const distanceMin2 = 1.0

// Node is the simulated state of one graph node. Index matches the node
// index in the source graph.
type Node struct {
	ID     string
	Index  int
	X, Y   float64
	VX, VY float64
	FX, FY float64
	Pinned bool
}

type link struct {
	source   int
	target   int
	distance float64
	strength float64
	bias     float64
}

// Engine owns node positions and velocities. It is not safe for concurrent
// use; callers drive it from a single loop.
type Engine struct {
	cfg   config.LayoutConfig
	nodes []Node
	links []link
	index map[string]int

	alpha       float64
	alphaTarget float64
	cx, cy      float64

	rng   *rand.Rand
	steps int
}

// New creates an engine for g with its center force at the middle of a
// width x height surface. Nodes start on a phyllotaxis spiral around the
// center, so two engines built from the same graph evolve identically.
func New(g *graph.Graph, cfg config.LayoutConfig, width, height float64) *Engine {
	e := &Engine{
		cfg:   cfg,
		nodes: make([]Node, g.Len()),
		index: make(map[string]int, g.Len()),
		alpha: 1,
		cx:    width / 2,
		cy:    height / 2,
		rng:   rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}

	angleStep := math.Pi * (3 - math.Sqrt(5))
	for i, r := range g.Records {
		radius := 10 * math.Sqrt(0.5+float64(i))
		angle := float64(i) * angleStep
		e.nodes[i] = Node{
			ID:    r.ID,
			Index: i,
			X:     e.cx + radius*math.Cos(angle),
			Y:     e.cy + radius*math.Sin(angle),
		}
		e.index[r.ID] = i
	}

	for _, edge := range g.Edges {
		ds := float64(g.DegreeAt(edge.Source))
		dt := float64(g.DegreeAt(edge.Target))
		e.links = append(e.links, link{
			source:   edge.Source,
			target:   edge.Target,
			distance: cfg.LinkDistance / math.Sqrt(float64(edge.Weight)),
			strength: 1 / math.Min(ds, dt),
			bias:     ds / (ds + dt),
		})
	}

	return e
}

// Warmup runs n steps synchronously, typically before the first frame.
func (e *Engine) Warmup(n int) {
	for i := 0; i < n; i++ {
		e.Step()
	}
}

// Tick advances the simulation by one step unless it has come to rest.
// It reports whether a step ran.
func (e *Engine) Tick() bool {
	if e.Resting() {
		return false
	}
	e.Step()
	return true
}

// Settle steps until the simulation rests or max steps have run, and
// returns the number of steps taken.
func (e *Engine) Settle(max int) int {
	n := 0
	for n < max && !e.Resting() {
		e.Step()
		n++
	}
	return n
}

// Resting reports whether the energy has decayed below the minimum with no
// target holding it up.
func (e *Engine) Resting() bool {
	return e.alpha < e.cfg.AlphaMin && e.alphaTarget < e.cfg.AlphaMin
}

// Step runs one integration step regardless of energy.
func (e *Engine) Step() {
	e.alpha += (e.alphaTarget - e.alpha) * e.cfg.AlphaDecay
	e.steps++

	e.applyLinks()
	e.applyCharge()
	e.applyCenter()
	e.applyCollide()

	keep := 1 - e.cfg.VelocityDecay
	for i := range e.nodes {
		n := &e.nodes[i]
		if n.Pinned {
			n.X, n.Y = n.FX, n.FY
			n.VX, n.VY = 0, 0
			continue
		}
		n.VX *= keep
		n.VY *= keep
		n.X += n.VX
		n.Y += n.VY
	}
}

// Pin fixes a node at (x, y) until Unpin. It reports whether id exists.
func (e *Engine) Pin(id string, x, y float64) bool {
	i, ok := e.index[id]
	if !ok {
		return false
	}
	n := &e.nodes[i]
	n.FX, n.FY = x, y
	n.Pinned = true
	return true
}

// Unpin releases a pinned node.
func (e *Engine) Unpin(id string) {
	if i, ok := e.index[id]; ok {
		e.nodes[i].Pinned = false
		e.nodes[i].FX, e.nodes[i].FY = 0, 0
	}
}

// Reheat sets the energy, restarting a resting simulation.
func (e *Engine) Reheat(alpha float64) {
	e.alpha = alpha
}

// SetAlphaTarget sets the level the energy decays toward.
func (e *Engine) SetAlphaTarget(t float64) {
	e.alphaTarget = t
}

// SetCenter moves the center force target without touching positions.
func (e *Engine) SetCenter(x, y float64) {
	e.cx, e.cy = x, y
}

// Resize re-centers on a width x height surface and reheats.
func (e *Engine) Resize(width, height float64) {
	e.SetCenter(width/2, height/2)
	e.Reheat(e.cfg.ResizeAlpha)
}

// Alpha returns the current energy.
func (e *Engine) Alpha() float64 { return e.alpha }

// AlphaTarget returns the energy target.
func (e *Engine) AlphaTarget() float64 { return e.alphaTarget }

// Steps returns the number of steps run so far.
func (e *Engine) Steps() int { return e.steps }

// Center returns the center force target.
func (e *Engine) Center() (x, y float64) { return e.cx, e.cy }

// Len returns the number of nodes.
func (e *Engine) Len() int { return len(e.nodes) }

// Nodes returns a copy of the node states in graph order.
func (e *Engine) Nodes() []Node {
	out := make([]Node, len(e.nodes))
	copy(out, e.nodes)
	return out
}

// Position returns the current position of id.
func (e *Engine) Position(id string) (x, y float64, ok bool) {
	i, ok := e.index[id]
	if !ok {
		return 0, 0, false
	}
	return e.nodes[i].X, e.nodes[i].Y, true
}

// Find returns the first node, in graph order, whose distance to (x, y) is
// below radius(id).
func (e *Engine) Find(x, y float64, radius func(id string) float64) (string, bool) {
	for i := range e.nodes {
		n := &e.nodes[i]
		if math.Hypot(x-n.X, y-n.Y) < radius(n.ID) {
			return n.ID, true
		}
	}
	return "", false
}

// Bounds returns the bounding box of all node centers.
func (e *Engine) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	if len(e.nodes) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, n := range e.nodes {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X)
		maxY = math.Max(maxY, n.Y)
	}
	return minX, minY, maxX, maxY, true
}

// jiggle returns a tiny random offset used to separate coincident nodes.
func (e *Engine) jiggle() float64 {
	return (e.rng.Float64() - 0.5) * 1e-6
}
