// Package tui provides the interactive reference explorer using bubbletea:
// a sorted list on the left and a braille-rendered force graph on the right.
package tui

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/refgraph/internal/catalog"
	"github.com/npratt/refgraph/internal/config"
	"github.com/npratt/refgraph/internal/render"
)

// Opener opens a reference URL outside the terminal.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// TUI is the terminal host for the explorer.
type TUI struct {
	ctx     context.Context
	cfg     *config.Config
	records []catalog.Record
	path    string
	changes <-chan struct{}
	opener  Opener
	logger  *slog.Logger
	palette *render.Palette
}

// Option configures the TUI.
type Option func(*TUI)

// WithConfig sets the configuration. Defaults are used otherwise.
func WithConfig(cfg *config.Config) Option {
	return func(t *TUI) {
		t.cfg = cfg
	}
}

// WithOpener sets how reference URLs are opened.
func WithOpener(o Opener) Option {
	return func(t *TUI) {
		t.opener = o
	}
}

// WithLogger sets the logger. It should not write to the terminal.
func WithLogger(l *slog.Logger) Option {
	return func(t *TUI) {
		t.logger = l
	}
}

// WithCatalogChanges reloads the catalog at path whenever changes fires.
func WithCatalogChanges(path string, changes <-chan struct{}) Option {
	return func(t *TUI) {
		t.path = path
		t.changes = changes
	}
}

// New creates a TUI for records.
func New(records []catalog.Record, opts ...Option) *TUI {
	t := &TUI{
		ctx:     context.Background(),
		records: records,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.cfg == nil {
		t.cfg = config.Default()
	}
	if p, err := render.NewPalette(t.cfg.Render.Background); err == nil {
		t.palette = p
	} else {
		t.logger.Warn("invalid background, using default", "background", t.cfg.Render.Background, "error", err)
		t.palette = render.DefaultPalette()
	}
	return t
}

// Run starts the TUI and blocks until it exits. Without a terminal it
// prints the sorted list instead.
func (t *TUI) Run(ctx context.Context) error {
	if !isTerminal() {
		return t.runSimple(stdout)
	}
	t.ctx = ctx

	p := tea.NewProgram(newModel(t),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
