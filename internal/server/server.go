package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sanonone/wayfinder/pkg/engine"
	"github.com/sanonone/wayfinder/pkg/layout"
	"github.com/sanonone/wayfinder/pkg/metrics"
)

// Server holds the HTTP interface, the routing engine and the loaded layouts.
type Server struct {
	Engine  *engine.Engine
	Layouts *layout.Registry

	httpServer *http.Server
	handler    http.Handler
	authToken  string
	maxBatch   int
}

// NewServer wires the HTTP routes around an existing Engine and Registry.
func NewServer(eng *engine.Engine, layouts *layout.Registry, cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		Engine:    eng,
		Layouts:   layouts,
		authToken: cfg.AuthToken,
		maxBatch:  cfg.MaxBatch,
	}

	layouts.Each(func(l *layout.Layout) bool {
		metrics.LayoutNodes.WithLabelValues(l.Name).Set(float64(len(l.Nodes)))
		return true
	})

	mux := http.NewServeMux()
	s.registerHTTPHandlers(mux)

	// Chain middlewares: Recovery -> Logging -> Auth -> Mux
	// Recovery must be outer-most to catch everything.

	var handler http.Handler = mux
	handler = s.authMiddleware(handler)
	handler = s.LoggingMiddleware(handler)
	handler = s.RecoveryMiddleware(handler)

	rootMux := http.NewServeMux()
	rootMux.HandleFunc("GET /healthz", s.handleHealthz)
	rootMux.Handle("/", handler)

	s.handler = rootMux
	s.httpServer = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           rootMux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the root handler, including middlewares.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	slog.Info("HTTP server listening", "addr", s.httpServer.Addr, "layouts", s.Layouts.Names())
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server startup failed: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP server, waiting up to five seconds for in-flight
// requests.
func (s *Server) Shutdown() {
	slog.Info("Starting graceful shutdown of HTTP Server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}
}

func (s *Server) registerHTTPHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /route", s.handleRoute)
	mux.HandleFunc("POST /routes", s.handleRouteBatch)
	mux.HandleFunc("GET /layouts", s.handleListLayouts)
	mux.HandleFunc("GET /layouts/{name}", s.handleGetLayout)
	mux.HandleFunc("GET /layouts/{name}/nodes", s.handleLayoutNodes)
	mux.HandleFunc("GET /layouts/{name}/suggest", s.handleSuggest)
	mux.HandleFunc("GET /layouts/{name}/check", s.handleCheck)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.writeHTTPError(w, http.StatusNotFound, "endpoint not found")
	})
}
