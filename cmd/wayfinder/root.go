package main

import (
	"fmt"
	"log/slog"

	"github.com/sanonone/wayfinder/internal/server"
	"github.com/sanonone/wayfinder/pkg/engine"
	"github.com/sanonone/wayfinder/pkg/layout"
	"github.com/spf13/cobra"
)

var (
	configPath string
	layoutPath string
	logLevel   string
	siteName   string
)

var rootCmd = &cobra.Command{
	Use:   "wayfinder",
	Short: "Indoor wayfinding engine and service",
	Long: `Wayfinder turns building layouts (rooms, corridors, junctions, stairs and
elevators) into per-floor navigation graphs and answers route queries with
turn-by-turn instructions.

Without --config or --layout a generated demo campus is loaded.

Examples:
  wayfinder serve --config wayfinder.yaml
  wayfinder route AB1-101 AB1-205 --preference elevator
  wayfinder check --layout north-wing.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&layoutPath, "layout", "",
		"Path to an extra layout file to load")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, error (overrides the config)")
	rootCmd.PersistentFlags().StringVar(&siteName, "site", "",
		"Layout name used by route and check (default: the only loaded layout)")

	rootCmd.AddCommand(serveCmd, routeCmd, checkCmd, mcpCmd)
}

// app is what every subcommand needs: the validated configuration, the
// engine and the loaded layouts.
type app struct {
	cfg     server.Config
	engine  *engine.Engine
	layouts *layout.Registry
}

func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := server.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Logs go to stderr so route and mcp output stay clean on stdout.
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	var extra []server.LayoutSource
	if layoutPath != "" {
		extra = append(extra, server.LayoutSource{Path: layoutPath})
	}
	if len(cfg.Layouts) == 0 && len(extra) == 0 && !cfg.Campus.Enabled {
		slog.Warn("No layouts configured, loading the demo campus", "name", cfg.Campus.Name)
		cfg.Campus.Enabled = true
	}

	reg, err := cfg.BuildRegistry(extra...)
	if err != nil {
		return nil, err
	}

	eng := engine.New(engine.Options{Threshold: cfg.Threshold, Logger: logger})
	return &app{cfg: cfg, engine: eng, layouts: reg}, nil
}

// site resolves --site, defaulting to the only loaded layout.
func (a *app) site() (*layout.Layout, error) {
	if siteName != "" {
		return a.layouts.Get(siteName)
	}
	names := a.layouts.Names()
	if len(names) != 1 {
		return nil, fmt.Errorf("%d layouts loaded %v, choose one with --site", len(names), names)
	}
	return a.layouts.Get(names[0])
}
