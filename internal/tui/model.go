package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/npratt/refgraph/internal/bus"
	"github.com/npratt/refgraph/internal/catalog"
	"github.com/npratt/refgraph/internal/config"
	"github.com/npratt/refgraph/internal/graph"
	"github.com/npratt/refgraph/internal/interaction"
	"github.com/npratt/refgraph/internal/layout"
	"github.com/npratt/refgraph/internal/listpanel"
	"github.com/npratt/refgraph/internal/render"
	"github.com/npratt/refgraph/internal/viewport"
)

// Layout size constants.
const (
	headerRows   = 1
	minListCols  = 28
	maxListCols  = 48
	listPercent  = 40
	minWidth     = 60
	minHeight    = 16
	minCanvasCol = 20
)

// scene is everything built from one catalog: the graph and the
// simulation, view and interaction state over it.
type scene struct {
	graph   *graph.Graph
	stats   graph.Stats // fixed for the catalog
	engine  *layout.Engine
	vp      *viewport.Viewport
	bus     *bus.Bus
	machine *interaction.Machine
	list    *listpanel.Panel
}

func (s *scene) close() {
	s.machine.Close()
	s.list.Close()
	s.bus.Close()
}

// navQueue collects URLs from the list and the machine; the model drains
// it into asynchronous open commands after each message.
type navQueue struct {
	urls []string
}

// Navigate implements interaction.Navigator and listpanel.Navigator.
func (q *navQueue) Navigate(url string) {
	q.urls = append(q.urls, url)
}

func (q *navQueue) drain() []string {
	urls := q.urls
	q.urls = nil
	return urls
}

// model is the bubbletea model for the TUI.
type model struct {
	ctx     context.Context
	cfg     *config.Config
	records []catalog.Record
	path    string
	changes <-chan struct{}
	opener  Opener
	logger  *slog.Logger
	palette *render.Palette

	// Built on the first usable window size.
	scene *scene
	queue *navQueue

	// UI state
	width    int
	height   int
	frame    int
	captured bool
	status   string
	failed   bool
	help     help.Model
}

func newModel(t *TUI) model {
	h := help.New()
	return model{
		ctx:     t.ctx,
		cfg:     t.cfg,
		records: t.records,
		path:    t.path,
		changes: t.changes,
		opener:  t.opener,
		logger:  t.logger,
		palette: t.palette,
		queue:   &navQueue{},
		help:    h,
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{doTick(m.cfg.Render.FrameInterval)}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	return tea.Batch(cmds...)
}

// listCols returns the list pane width for the current terminal.
func (m model) listCols() int {
	return min(maxListCols, max(minListCols, m.width*listPercent/100))
}

// footerRows returns the status line plus the current help height.
func (m model) footerRows() int {
	return 1 + lipgloss.Height(m.help.View(keys))
}

// bodyRows returns the height shared by the list and the framed canvas.
func (m model) bodyRows() int {
	return m.height - headerRows - m.footerRows()
}

// canvasCells returns the canvas size in cells, inside its border.
func (m model) canvasCells() (cols, rows int) {
	return m.width - m.listCols() - 2, m.bodyRows() - 2
}

// canvasOrigin returns the terminal cell of the canvas's top-left corner.
func (m model) canvasOrigin() (col, row int) {
	return m.listCols() + 1, headerRows + 1
}

// canvasPixels returns the canvas size in screen pixels.
func (m model) canvasPixels() (w, h float64) {
	cols, rows := m.canvasCells()
	return float64(cols * m.cfg.Render.CellWidth), float64(rows * m.cfg.Render.CellHeight)
}

// tooSmall reports whether the terminal cannot host the canvas.
func (m model) tooSmall() bool {
	cols, _ := m.canvasCells()
	return m.width < minWidth || m.height < minHeight || cols < minCanvasCol
}

// toCanvas maps a terminal cell to the screen pixel at its centre.
func (m model) toCanvas(x, y int) viewport.Point {
	col, row := m.canvasOrigin()
	return viewport.Point{
		X: (float64(x-col) + 0.5) * float64(m.cfg.Render.CellWidth),
		Y: (float64(y-row) + 0.5) * float64(m.cfg.Render.CellHeight),
	}
}

// listLine maps a terminal cell to a line of the list pane.
func (m model) listLine(x, y int) (int, bool) {
	if x < 0 || x >= m.listCols() || y < headerRows || y >= headerRows+m.bodyRows() {
		return 0, false
	}
	return y - headerRows, true
}

// layoutScene builds the scene on the first usable size and resizes it
// afterwards.
func (m *model) layoutScene() {
	if m.tooSmall() {
		return
	}
	w, h := m.canvasPixels()
	if m.scene == nil {
		m.scene = m.buildScene(m.records, w, h)
		m.scene.list.SetHeight(m.bodyRows())
		return
	}
	m.scene.vp.Resize(w, h)
	m.scene.engine.Resize(w, h)
	m.scene.list.SetHeight(m.bodyRows())
}

func (m *model) buildScene(records []catalog.Record, w, h float64) *scene {
	g := graph.Build(records)
	eng := layout.New(g, m.cfg.Layout, w, h)
	eng.Warmup(m.cfg.Layout.WarmupTicks)
	vp := viewport.New(m.cfg.Viewport, w, h)
	b := bus.New()

	list := listpanel.New(records, b,
		listpanel.WithNavigator(m.queue),
		listpanel.WithLogger(m.logger),
	)
	mach := interaction.New(g, eng, vp, b,
		interaction.WithNavigator(m.queue),
		interaction.WithConfig(m.cfg.Interaction),
		interaction.WithEnergy(m.cfg.Layout),
		interaction.WithLogger(m.logger),
	)
	return &scene{graph: g, stats: g.Stats(), engine: eng, vp: vp, bus: b, machine: mach, list: list}
}

// reload swaps in a new catalog, keeping the view transform and the
// selection when its id survives.
func (m *model) reload(records []catalog.Record) {
	m.records = records
	if m.scene == nil {
		return
	}
	old := m.scene
	w, h := old.vp.Size()
	next := m.buildScene(records, w, h)
	next.vp.SetTransform(old.vp.Transform())
	next.list.SetHeight(m.bodyRows())
	selected := old.machine.Selected()
	old.close()

	m.scene = next
	m.captured = false
	if selected != "" {
		next.machine.Select(selected)
	}
	m.logger.Info("catalog reloaded", "path", m.path, "records", len(records), "edges", len(next.graph.Edges))
}

// composeFrame renders the current state into a frame.
func (m model) composeFrame() render.Frame {
	w, h := m.scene.vp.Size()
	return render.Compose(render.Input{
		Graph:     m.scene.graph,
		Nodes:     m.scene.engine.Nodes(),
		State:     m.scene.machine.Snapshot(),
		Transform: m.scene.vp.Transform(),
		Frame:     m.frame,
		Width:     w,
		Height:    h,
		Config:    m.cfg.Render,
	})
}

func (m *model) setStatus(msg string, failed bool) {
	m.status = msg
	m.failed = failed
}
