package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/refgraph/internal/catalog"
	"github.com/npratt/refgraph/internal/export"
	"github.com/npratt/refgraph/internal/viewport"
)

// tickMsg advances the simulation by one frame.
type tickMsg time.Time

// navDoneMsg reports the result of opening a URL.
type navDoneMsg struct {
	url string
	err error
}

// catalogChangedMsg signals that the watched catalog file changed.
type catalogChangedMsg struct{}

// exportDoneMsg reports the result of writing a snapshot.
type exportDoneMsg struct {
	path string
	err  error
}

// doTick schedules the next frame.
func doTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForChange waits for the next catalog change notification.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return catalogChangedMsg{}
	}
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layoutScene()

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tickMsg:
		if m.scene != nil {
			m.scene.machine.Frame()
			m.scene.engine.Tick()
			m.frame++
		}
		cmds = append(cmds, doTick(m.cfg.Render.FrameInterval))

	case navDoneMsg:
		if msg.err != nil {
			m.logger.Error("open failed", "url", msg.url, "error", msg.err)
			m.setStatus(fmt.Sprintf("open failed: %v", msg.err), true)
		} else {
			m.setStatus("opened "+msg.url, false)
		}

	case catalogChangedMsg:
		records, err := catalog.Load(m.path)
		if err != nil {
			m.logger.Error("catalog reload failed", "path", m.path, "error", err)
			m.setStatus(fmt.Sprintf("reload failed: %v", err), true)
		} else {
			m.reload(records)
			m.setStatus(fmt.Sprintf("reloaded %d references", len(records)), false)
		}
		cmds = append(cmds, waitForChange(m.changes))

	case exportDoneMsg:
		if msg.err != nil {
			m.logger.Error("export failed", "path", msg.path, "error", msg.err)
			m.setStatus(fmt.Sprintf("export failed: %v", msg.err), true)
		} else {
			m.logger.Debug("snapshot written", "path", msg.path)
			m.setStatus("exported "+msg.path, false)
		}
	}

	cmds = append(cmds, m.navigate()...)
	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard input.
func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.layoutScene()
		return nil
	}
	if m.scene == nil {
		return nil
	}
	s := m.scene
	w, h := s.vp.Size()
	center := viewport.Point{X: w / 2, Y: h / 2}

	switch {
	case key.Matches(msg, keys.Down):
		s.list.CursorDown()
	case key.Matches(msg, keys.Up):
		s.list.CursorUp()
	case key.Matches(msg, keys.Select):
		s.list.Activate()
	case key.Matches(msg, keys.Clear):
		// First press drops the list hover, the next the selection.
		if s.list.Hovered() >= 0 {
			s.list.Leave()
		} else {
			s.machine.ClearSelection()
		}
	case key.Matches(msg, keys.ZoomIn):
		s.vp.ZoomAt(center, m.cfg.Viewport.KeyZoomFactor)
	case key.Matches(msg, keys.ZoomOut):
		s.vp.ZoomAt(center, 1/m.cfg.Viewport.KeyZoomFactor)
	case key.Matches(msg, keys.Reset):
		s.vp.Reset()
	case key.Matches(msg, keys.Fit):
		if minX, minY, maxX, maxY, ok := s.engine.Bounds(); ok {
			s.vp.Fit(viewport.Bounds{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, m.cfg.Viewport.FitPadding)
		}
	case key.Matches(msg, keys.Center):
		if x, y, ok := s.engine.Position(s.machine.Selected()); ok {
			s.vp.CenterOn(viewport.Point{X: x, Y: y})
		}
	case key.Matches(msg, keys.Export):
		return m.exportFrame()
	}
	return nil
}

// handleMouse routes pointer events. A press on the canvas captures the
// pointer until release; uncaptured motion off the canvas makes the machine
// forget the pointer.
func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.scene == nil || m.tooSmall() {
		return
	}
	s := m.scene
	p := m.toCanvas(msg.X, msg.Y)
	line, overList := m.listLine(msg.X, msg.Y)

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		delta := m.cfg.Viewport.WheelDelta
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -delta
		}
		if s.machine.Wheel(p, delta) {
			return
		}
		if overList {
			if delta < 0 {
				s.list.Scroll(-1)
			} else {
				s.list.Scroll(1)
			}
		}

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if s.vp.Contains(p) {
			s.machine.PointerDown(p, time.Now())
			m.captured = true
			return
		}
		if overList {
			if row, ok := s.list.RowAt(line); ok {
				s.list.ClickRow(row)
			}
		}

	case msg.Action == tea.MouseActionRelease:
		if m.captured {
			m.captured = false
			s.machine.PointerUp(p)
		}

	case msg.Action == tea.MouseActionMotion:
		if m.captured || s.vp.Contains(p) {
			s.machine.PointerMove(p)
		} else {
			s.machine.PointerLeave()
		}
		if m.captured {
			return
		}
		if row, ok := s.list.RowAt(line); overList && ok {
			s.list.HoverRow(row)
		} else {
			s.list.Leave()
		}
	}
}

// navigate turns queued URLs into asynchronous open commands.
func (m model) navigate() []tea.Cmd {
	urls := m.queue.drain()
	if m.opener == nil {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(urls))
	for _, u := range urls {
		ctx, opener := m.ctx, m.opener
		cmds = append(cmds, func() tea.Msg {
			return navDoneMsg{url: u, err: opener.Open(ctx, u)}
		})
	}
	return cmds
}

// exportFrame writes the current frame to the configured export path.
func (m model) exportFrame() tea.Cmd {
	frame := m.composeFrame()
	path := m.cfg.Export.Path
	palette := m.palette
	return func() tea.Msg {
		return exportDoneMsg{path: path, err: export.WriteFrame(path, frame, palette, "refgraph")}
	}
}
