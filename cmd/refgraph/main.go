package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/npratt/refgraph/internal/catalog"
	"github.com/npratt/refgraph/internal/config"
)

var version = "dev"

// app carries what every command shares: the stderr logger, its level and
// the viper instance the persistent flags are bound to.
type app struct {
	logger   *slog.Logger
	logLevel *slog.LevelVar
	v        *viper.Viper
}

// loadRuntime resolves configuration and loads the catalog it names.
// Explicitly set flags win over every config source.
func (a *app) loadRuntime(cmd *cobra.Command) (*config.Config, []catalog.Record, error) {
	if a.v.GetBool(FlagVerbose) {
		a.logLevel.Set(slog.LevelDebug)
	}

	cfg, err := config.LoadConfig(a.v)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed(FlagCatalog) {
		cfg.Catalog.Path, _ = cmd.Flags().GetString(FlagCatalog)
	}
	if cmd.Flags().Changed(FlagLogFile) {
		cfg.Paths.Log, _ = cmd.Flags().GetString(FlagLogFile)
	}

	records, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, nil, err
	}
	a.logger.Debug("catalog loaded", "path", cfg.Catalog.Path, "records", len(records))
	return cfg, records, nil
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "refgraph",
		Short: "Explore a reference catalog as a force-directed graph",
		Long: `refgraph lays out a catalog of research references as a graph whose
edges connect references that share tags, then lets you explore it in the
terminal or export a settled snapshot.

References are listed newest first beside the graph. Hovering either view
highlights the reference in both; clicking opens its URL.`,
		SilenceUsage: true,
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().Bool(FlagVerbose, false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().String(FlagConfig, "", "Config file path (default: .refgraph/config.yaml)")
	rootCmd.PersistentFlags().String(FlagCatalog, "", "Catalog file, .yaml or .json (default: built-in catalog)")
	rootCmd.PersistentFlags().String(FlagLogFile, "", "Log file path for the interactive view")

	// Bind all flags to viper; flags that mirror a config setting bind to
	// its nested key so they do not shadow the whole section.
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		key := f.Name
		if k, ok := configKeys[f.Name]; ok {
			key = k
		}
		_ = a.v.BindPFlag(key, f)
	})

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "refgraph %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newViewCmd(a))
	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newEdgesCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newStatsCmd(a))
	return rootCmd
}

func newApp(logLevel *slog.LevelVar, logger *slog.Logger) *app {
	v := viper.New()
	config.BindEnv(v)
	return &app{logger: logger, logLevel: logLevel, v: v}
}

func main() {
	logLevel := &slog.LevelVar{}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd(newApp(logLevel, logger))
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}
