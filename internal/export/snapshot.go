// Package export renders settled graph snapshots to PNG and SVG and writes
// the edge list for scripting.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/npratt/refgraph/internal/catalog"
	"github.com/npratt/refgraph/internal/config"
	"github.com/npratt/refgraph/internal/graph"
	"github.com/npratt/refgraph/internal/interaction"
	"github.com/npratt/refgraph/internal/layout"
	"github.com/npratt/refgraph/internal/render"
	"github.com/npratt/refgraph/internal/viewport"
)

// Format is an image encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

var (
	// ErrUnsupportedFormat is returned for output paths without a known
	// image extension.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrUnknownID is returned when a focus or selection id is not in the
	// catalog.
	ErrUnknownID = errors.New("unknown reference id")
)

// FormatFor infers the image format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("%w %q for %s (want .png or .svg)", ErrUnsupportedFormat, filepath.Ext(path), path)
	}
}

// Options controls a snapshot export.
type Options struct {
	Records []catalog.Record
	Config  *config.Config
	Paths   []string // One file per path; format from the extension
	Focus   string   // Highlight this node as if hovered
	Select  string   // Mark this node as selected
	Title   string   // Drawn in the top-left corner when set
	Logger  *slog.Logger
}

// Snapshot settles the layout for opts.Records, fits it to the export
// size and writes every requested file concurrently.
func Snapshot(ctx context.Context, opts Options) error {
	if len(opts.Paths) == 0 {
		return fmt.Errorf("no output paths")
	}
	for _, p := range opts.Paths {
		if _, err := FormatFor(p); err != nil {
			return err
		}
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	frame, err := Compose(opts.Records, cfg, opts.Focus, opts.Select)
	if err != nil {
		return err
	}
	palette, err := render.NewPalette(cfg.Render.Background)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, path := range opts.Paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := WriteFrame(path, frame, palette, opts.Title); err != nil {
				return err
			}
			logger.Info("snapshot written", "path", path)
			return nil
		})
	}
	return g.Wait()
}

// Compose builds the export frame: a settled layout fitted to the
// configured export size, with optional focus and selection.
func Compose(records []catalog.Record, cfg *config.Config, focus, selected string) (render.Frame, error) {
	gr := graph.Build(records)
	for _, id := range []string{focus, selected} {
		if id == "" {
			continue
		}
		if _, ok := gr.Index(id); !ok {
			return render.Frame{}, fmt.Errorf("%w: %s", ErrUnknownID, id)
		}
	}

	w := float64(cfg.Export.Width)
	h := float64(cfg.Export.Height)
	eng := layout.New(gr, cfg.Layout, w, h)
	eng.Settle(cfg.Export.SettleTicks)

	vp := viewport.New(cfg.Viewport, w, h)
	if minX, minY, maxX, maxY, ok := eng.Bounds(); ok {
		vp.Fit(viewport.Bounds{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, float64(cfg.Export.Padding))
	}

	return render.Compose(render.Input{
		Graph: gr,
		Nodes: eng.Nodes(),
		State: interaction.Snapshot{
			Focused:  focus,
			Selected: selected,
		},
		Transform: vp.Transform(),
		Width:     w,
		Height:    h,
		Config:    cfg.Render,
	}), nil
}

// WriteFrame writes f to path in the format given by its extension,
// creating parent directories.
func WriteFrame(path string, f render.Frame, p *render.Palette, title string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	switch format {
	case FormatPNG:
		return writePNG(path, f, p, title)
	default:
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := writeSVG(file, f, p, title); err != nil {
			return err
		}
		return file.Close()
	}
}
