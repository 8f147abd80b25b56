package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sanonone/wayfinder/internal/server"
	"github.com/spf13/cobra"
)

var httpAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API until SIGINT or SIGTERM.

Endpoints:
  POST /route, POST /routes
  GET  /layouts, /layouts/{name}, /layouts/{name}/nodes,
       /layouts/{name}/suggest, /layouts/{name}/check
  GET  /healthz (no auth), /metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		if httpAddr != "" {
			a.cfg.HTTPAddr = httpAddr
		}

		srv, err := server.NewServer(a.engine, a.layouts, a.cfg)
		if err != nil {
			return err
		}

		shutdownChan := make(chan os.Signal, 1)
		signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Run()
		}()

		select {
		case err := <-errCh:
			return err
		case sig := <-shutdownChan:
			slog.Info("Signal received", "signal", sig.String())
		}

		srv.Shutdown()
		return <-errCh
	},
}

func init() {
	serveCmd.Flags().StringVar(&httpAddr, "http-addr", "",
		"Address for the HTTP API, e.g. :9191 (overrides the config)")
}
