package main

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/npratt/refgraph/internal/catalog"
	"github.com/npratt/refgraph/internal/export"
	"github.com/npratt/refgraph/internal/graph"
	"github.com/npratt/refgraph/internal/listpanel"
	"github.com/npratt/refgraph/internal/navigate"
	"github.com/npratt/refgraph/internal/tui"
)

func newViewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Explore the catalog interactively",
		Long: `Open the interactive graph view.

Hover a node or a list entry to highlight it and its neighbours, click to
select and open its URL, drag nodes to pin them while the layout reacts,
and use the wheel to zoom. Press ? for the full key list.

Logs go to the log file (paths.log) so they do not corrupt the display.
When stdout is not a terminal the sorted reference list is printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, records, err := a.loadRuntime(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed(FlagWatch) {
				cfg.Catalog.Watch, _ = cmd.Flags().GetBool(FlagWatch)
			}
			if noBrowser, _ := cmd.Flags().GetBool(FlagNoBrowser); noBrowser {
				cfg.Browser.Enabled = false
			}

			logResult, err := SetupTUILogger(cfg.Paths.Log, a.logLevel, cfg.LogRotation)
			if err != nil {
				return err
			}
			defer func() { _ = logResult.Close() }()
			logger := logResult.Logger
			slog.SetDefault(logger)

			opts := []tui.Option{
				tui.WithConfig(cfg),
				tui.WithLogger(logger),
				tui.WithOpener(navigate.New(cfg.Browser, navigate.WithLogger(logger))),
			}

			if cfg.Catalog.Watch {
				if cfg.Catalog.Path == "" {
					return fmt.Errorf("--%s needs a catalog file (--%s)", FlagWatch, FlagCatalog)
				}
				w, err := catalog.NewWatcher(cfg.Catalog.Path,
					catalog.WithDebounce(cfg.Catalog.Debounce),
					catalog.WithLogger(logger),
				)
				if err != nil {
					return err
				}
				if err := w.Start(cmd.Context()); err != nil {
					return err
				}
				defer w.Stop()
				opts = append(opts, tui.WithCatalogChanges(cfg.Catalog.Path, w.Changes()))
			}

			logger.Info("view starting", "catalog", cfg.Catalog.Path, "records", len(records), "watch", cfg.Catalog.Watch)
			return tui.New(records, opts...).Run(cmd.Context())
		},
	}

	cmd.Flags().Bool(FlagWatch, false, "Reload the catalog when its file changes")
	cmd.Flags().Bool(FlagNoBrowser, false, "Log URLs instead of opening them")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file.png|file.svg>...",
		Short: "Render a settled snapshot of the graph",
		Long: `Settle the layout, fit it to the export size and write one image per
argument. The format follows the file extension (.png or .svg).

--focus draws the graph as if that reference were hovered; --select marks
it as selected.`,
		Example: `  refgraph export graph.png
  refgraph export --catalog refs.yaml --focus ross-2002-wearable-interfaces graph.svg graph.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, records, err := a.loadRuntime(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed(FlagWidth) {
				cfg.Export.Width, _ = cmd.Flags().GetInt(FlagWidth)
			}
			if cmd.Flags().Changed(FlagHeight) {
				cfg.Export.Height, _ = cmd.Flags().GetInt(FlagHeight)
			}
			if cmd.Flags().Changed(FlagTicks) {
				cfg.Export.SettleTicks, _ = cmd.Flags().GetInt(FlagTicks)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			focus, _ := cmd.Flags().GetString(FlagFocus)
			sel, _ := cmd.Flags().GetString(FlagSelect)
			title, _ := cmd.Flags().GetString(FlagTitle)

			return export.Snapshot(cmd.Context(), export.Options{
				Records: records,
				Config:  cfg,
				Paths:   args,
				Focus:   focus,
				Select:  sel,
				Title:   title,
				Logger:  a.logger,
			})
		},
	}

	cmd.Flags().String(FlagFocus, "", "Reference id to draw as hovered")
	cmd.Flags().String(FlagSelect, "", "Reference id to draw as selected")
	cmd.Flags().String(FlagTitle, "", "Title drawn in the top-left corner")
	cmd.Flags().Int(FlagWidth, 0, "Image width in pixels (default: export.width)")
	cmd.Flags().Int(FlagHeight, 0, "Image height in pixels (default: export.height)")
	cmd.Flags().Int(FlagTicks, 0, "Maximum simulation steps before rendering (default: export.settle_ticks)")
	return cmd
}

func newEdgesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edges",
		Short: "Print the tag-overlap edges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, records, err := a.loadRuntime(cmd)
			if err != nil {
				return err
			}
			format := export.EdgesText
			if asJSON, _ := cmd.Flags().GetBool(FlagJSON); asJSON {
				format = export.EdgesJSON
			}
			return export.WriteEdges(cmd.OutOrStdout(), graph.Build(records), format)
		},
	}
	cmd.Flags().Bool(FlagJSON, false, "Output as JSON")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the references, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, records, err := a.loadRuntime(cmd)
			if err != nil {
				return err
			}
			sorted := listpanel.Sorted(records)
			if asJSON, _ := cmd.Flags().GetBool(FlagJSON); asJSON {
				return writeJSON(cmd.OutOrStdout(), sorted)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "YEAR\tCATEGORY\tID\tTITLE")
			for _, r := range sorted {
				_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.Year, r.Category.Label(), r.ID, r.Title)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Bool(FlagJSON, false, "Output as JSON")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print graph statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, records, err := a.loadRuntime(cmd)
			if err != nil {
				return err
			}
			s := graph.Build(records).Stats()
			if asJSON, _ := cmd.Flags().GetBool(FlagJSON); asJSON {
				return writeJSON(cmd.OutOrStdout(), s)
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "References:  %d (%d-%d)\n", s.Nodes, s.MinYear, s.MaxYear)
			_, _ = fmt.Fprintf(w, "Links:       %d (total weight %d, max %d)\n", s.Edges, s.TotalWeight, s.MaxWeight)
			_, _ = fmt.Fprintf(w, "Clusters:    %d (largest %d)\n", s.Components, s.Largest)
			_, _ = fmt.Fprintf(w, "Isolated:    %d\n", s.Isolated)
			if s.Hub != "" {
				_, _ = fmt.Fprintf(w, "Hub:         %s\n", s.Hub)
			}
			return nil
		},
	}
	cmd.Flags().Bool(FlagJSON, false, "Output as JSON")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
