// Package interaction resolves pointer input and list intents into hover,
// drag, pan and selection state for the graph canvas.
package interaction

import (
	"log/slog"
	"math"
	"time"

	"github.com/npratt/refgraph/internal/bus"
	"github.com/npratt/refgraph/internal/config"
	"github.com/npratt/refgraph/internal/graph"
	"github.com/npratt/refgraph/internal/viewport"
)

// State is the pointer state of the canvas.
type State int

const (
	StateIdle State = iota
	StateHovering
	StateDragging
	StatePanning
)

// String returns a string representation of the State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHovering:
		return "hovering"
	case StateDragging:
		return "dragging"
	case StatePanning:
		return "panning"
	default:
		return "unknown"
	}
}

// Source identifies which surface a hover came from.
type Source int

const (
	SourceNone Source = iota
	SourcePointer
	SourceList
)

// Outcome describes what a pointer release did.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeClick
	OutcomeDragEnd
	OutcomePanEnd
)

// String returns a string representation of the Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeClick:
		return "click"
	case OutcomeDragEnd:
		return "drag_end"
	case OutcomePanEnd:
		return "pan_end"
	default:
		return "none"
	}
}

// Layout is the part of the force engine the machine drives.
type Layout interface {
	Find(x, y float64, radius func(id string) float64) (string, bool)
	Pin(id string, x, y float64) bool
	Unpin(id string)
	SetAlphaTarget(t float64)
	Reheat(alpha float64)
}

// Navigator opens a reference URL.
type Navigator interface {
	Navigate(url string)
}

// Snapshot is a read-only view of the machine for rendering.
type Snapshot struct {
	State        State
	Focused      string
	Selected     string
	PointerHover string
	ListHover    string
	Dragging     string
	Panning      bool
	HoverSource  Source
}

type drag struct {
	id    string
	start viewport.Point
	at    time.Time
}

// Machine owns the interaction flags. It is driven from a single loop:
// input handlers first, then Frame once per tick.
type Machine struct {
	g      *graph.Graph
	layout Layout
	vp     *viewport.Viewport
	bus    *bus.Bus
	nav    Navigator
	cfg    config.InteractionConfig
	energy config.LayoutConfig
	logger *slog.Logger

	pointer      viewport.Point
	pointerKnown bool

	pointerHover string
	listHover    string
	selected     string
	drag         *drag

	lastFocused  string
	lastSelected string

	unsubscribe func()
}

// Option configures a Machine.
type Option func(*Machine)

// WithNavigator sets where clicked references are opened.
func WithNavigator(n Navigator) Option {
	return func(m *Machine) {
		m.nav = n
	}
}

// WithConfig overrides the hit-testing settings.
func WithConfig(cfg config.InteractionConfig) Option {
	return func(m *Machine) {
		m.cfg = cfg
	}
}

// WithEnergy overrides the drag and selection energy levels.
func WithEnergy(cfg config.LayoutConfig) Option {
	return func(m *Machine) {
		m.energy = cfg
	}
}

// WithLogger sets the logger for state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = l
	}
}

// New creates a machine over g and subscribes it to the list intents on b.
func New(g *graph.Graph, layout Layout, vp *viewport.Viewport, b *bus.Bus, opts ...Option) *Machine {
	defaults := config.Default()
	m := &Machine{
		g:      g,
		layout: layout,
		vp:     vp,
		bus:    b,
		cfg:    defaults.Interaction,
		energy: defaults.Layout,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.unsubscribe = b.Subscribe(m.handle, bus.KindHoverStart, bus.KindHoverClear, bus.KindSelect)
	return m
}

// Close detaches the machine from the bus.
func (m *Machine) Close() {
	m.unsubscribe()
}

func (m *Machine) handle(sig bus.Signal) {
	switch sig.Kind {
	case bus.KindHoverStart:
		if m.drag != nil {
			return
		}
		if _, ok := m.g.Index(sig.ID); !ok {
			return
		}
		m.listHover = sig.ID
	case bus.KindHoverClear:
		if m.drag != nil {
			return
		}
		m.listHover = ""
	case bus.KindSelect:
		m.Select(sig.ID)
	}
	m.publish()
}

// PointerMove records the pointer at screen point p.
func (m *Machine) PointerMove(p viewport.Point) {
	m.pointer = p
	m.pointerKnown = true

	switch {
	case m.drag != nil:
		// pinned on the next frame
	case m.vp.Panning():
		m.vp.PanTo(p)
	default:
		m.refreshHover()
	}
	m.publish()
}

// PointerLeave forgets the pointer, clearing any pointer hover.
func (m *Machine) PointerLeave() {
	m.pointerKnown = false
	if m.drag == nil {
		m.pointerHover = ""
	}
	m.publish()
}

// PointerDown starts a drag when p is over a node and a pan otherwise.
// Presses off the canvas are ignored.
func (m *Machine) PointerDown(p viewport.Point, now time.Time) {
	if !m.vp.Contains(p) || m.drag != nil || m.vp.Panning() {
		return
	}
	m.pointer = p
	m.pointerKnown = true

	w := m.vp.ScreenToWorld(p)
	id, ok := m.layout.Find(w.X, w.Y, func(string) float64 { return m.cfg.PressRadius })
	if ok {
		m.drag = &drag{id: id, start: p, at: now}
		m.pointerHover = id
		m.layout.Pin(id, w.X, w.Y)
	} else {
		m.vp.BeginPan(p)
	}
	m.publish()
}

// PointerUp ends the drag or pan in progress. A drag whose screen
// displacement stayed under the threshold is a click: the node is selected,
// revealed in the list and navigated to.
func (m *Machine) PointerUp(p viewport.Point) Outcome {
	out := OutcomeNone

	switch {
	case m.drag != nil:
		d := m.drag
		m.drag = nil
		m.layout.Unpin(d.id)
		m.layout.SetAlphaTarget(0)

		if math.Hypot(p.X-d.start.X, p.Y-d.start.Y) < m.cfg.DragThreshold {
			out = OutcomeClick
			m.Select(d.id)
			m.bus.Emit(bus.Reveal(d.id))
			if m.nav != nil {
				if r, ok := m.g.Record(d.id); ok && r.URL != "" {
					m.nav.Navigate(r.URL)
				}
			}
		} else {
			out = OutcomeDragEnd
			m.logger.Debug("drag end", "id", d.id, "held", time.Since(d.at).Round(time.Millisecond))
		}
	case m.vp.Panning():
		m.vp.EndPan()
		out = OutcomePanEnd
	}

	if out != OutcomeNone {
		m.pointer = p
		m.pointerKnown = true
		m.refreshHover()
	}
	m.publish()
	return out
}

// Wheel zooms about p and reports whether the event was consumed.
func (m *Machine) Wheel(p viewport.Point, delta float64) bool {
	if !m.vp.Zoom(p, delta) {
		return false
	}
	if m.drag == nil && !m.vp.Panning() {
		m.refreshHover()
	}
	m.publish()
	return true
}

// Frame runs once per tick before the layout steps. Nodes move under a
// still pointer, so hover is re-resolved; a dragged node follows the
// pointer and keeps the layout warm.
func (m *Machine) Frame() {
	switch {
	case m.drag != nil:
		w := m.vp.ScreenToWorld(m.pointer)
		m.layout.Pin(m.drag.id, w.X, w.Y)
		m.layout.SetAlphaTarget(m.energy.DragAlphaTarget)
	case !m.vp.Panning():
		m.refreshHover()
	}
	m.publish()
}

// Select makes id the selected node. Selecting the current selection or an
// unknown id does nothing; a change reheats the layout.
func (m *Machine) Select(id string) {
	if id == m.selected {
		return
	}
	if _, ok := m.g.Index(id); !ok {
		return
	}
	m.selected = id
	m.layout.Reheat(m.energy.SelectAlpha)
	m.logger.Debug("selected", "id", id)
	m.publish()
}

// ClearSelection drops the selection without reheating.
func (m *Machine) ClearSelection() {
	m.selected = ""
	m.publish()
}

// Focused returns the node used for highlighting: the dragged node, else
// the pointer-hovered node, else the list-hovered node.
func (m *Machine) Focused() string {
	switch {
	case m.drag != nil:
		return m.drag.id
	case m.pointerHover != "":
		return m.pointerHover
	default:
		return m.listHover
	}
}

// Selected returns the selected node, or "".
func (m *Machine) Selected() string { return m.selected }

// State returns the current pointer state.
func (m *Machine) State() State {
	switch {
	case m.drag != nil:
		return StateDragging
	case m.vp.Panning():
		return StatePanning
	case m.pointerHover != "" || m.listHover != "":
		return StateHovering
	default:
		return StateIdle
	}
}

// Snapshot returns the current state for rendering.
func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{
		State:        m.State(),
		Focused:      m.Focused(),
		Selected:     m.selected,
		PointerHover: m.pointerHover,
		ListHover:    m.listHover,
		Panning:      m.vp.Panning(),
	}
	if m.drag != nil {
		s.Dragging = m.drag.id
	}
	switch {
	case m.pointerHover != "":
		s.HoverSource = SourcePointer
	case m.listHover != "":
		s.HoverSource = SourceList
	}
	return s
}

func (m *Machine) hitRadius(id string) float64 {
	if id == m.selected {
		return m.cfg.SelectedHoverRadius
	}
	return m.cfg.HoverRadius
}

func (m *Machine) refreshHover() {
	if !m.pointerKnown || !m.vp.Contains(m.pointer) {
		m.pointerHover = ""
		return
	}
	w := m.vp.ScreenToWorld(m.pointer)
	id, _ := m.layout.Find(w.X, w.Y, m.hitRadius)
	m.pointerHover = id
}

// publish emits Active when the focused or selected node changed.
func (m *Machine) publish() {
	f := m.Focused()
	if f == m.lastFocused && m.selected == m.lastSelected {
		return
	}
	m.lastFocused, m.lastSelected = f, m.selected
	m.bus.Emit(bus.Active(f, m.selected))
}
