// Package engine provides the indoor wayfinding engine.
//
// It turns a flat node set into a per-floor navigation graph, plans a route
// between two node ids (crossing floors through stairs or elevators when
// needed) and synthesizes human-readable turn instructions from the node
// geometry.
//
// The engine is stateless with respect to building data: every call receives
// the full node set and allocates only request-local state, so a single Engine
// can serve concurrent requests against the same layout.
//
// Basic usage:
//
//	eng := engine.New(engine.DefaultOptions())
//	res, err := eng.Route(nodes, engine.RouteRequest{StartID: "AB1-101", DestID: "AB1-205"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Path, res.Instructions)
package engine

import (
	"io"
	"log/slog"

	"github.com/sanonone/wayfinder/pkg/spatial"
)

// DefaultThreshold is the base connection distance between a room and a hub,
// in layout units.
const DefaultThreshold = 100.0

// Options configures an Engine.
type Options struct {
	// Threshold is the base proximity distance T. Corridors connect within
	// 1.5T and junctions within 2T. Non-positive values select DefaultThreshold.
	Threshold float64

	// Logger receives debug records about degraded routes. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns the configuration used by the package-level helpers.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold}
}

// Engine plans routes and generates directions. It is immutable after New.
type Engine struct {
	opts Options
	log  *slog.Logger
}

// New creates an Engine.
func New(opts Options) *Engine {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{opts: opts, log: logger}
}

// Threshold returns the base proximity distance in use.
func (e *Engine) Threshold() float64 {
	return e.opts.Threshold
}

// RouteRequest is a single routing query.
type RouteRequest struct {
	StartID    string     `json:"start_id" validate:"required"`
	DestID     string     `json:"dest_id" validate:"required"`
	Preference Preference `json:"preference"`
}

// RouteResult bundles the planned path with its directions.
type RouteResult struct {
	Plan
	Directions
}

// Route plans a path and generates its directions in one call.
func (e *Engine) Route(nodes spatial.Nodes, req RouteRequest) (RouteResult, error) {
	plan, err := e.Plan(nodes, req.StartID, req.DestID, req.Preference)
	if err != nil {
		return RouteResult{}, err
	}
	dirs, err := e.GenerateDirections(nodes, plan.Path, req.Preference)
	if err != nil {
		return RouteResult{}, err
	}
	return RouteResult{Plan: plan, Directions: dirs}, nil
}

// BuildAdjacency builds a floor graph with DefaultOptions.
func BuildAdjacency(nodes spatial.Nodes, floor int) Graph {
	return New(DefaultOptions()).BuildAdjacency(nodes, floor)
}

// FindPath plans a route with DefaultOptions.
func FindPath(nodes spatial.Nodes, startID, destID string, pref Preference) ([]string, error) {
	return New(DefaultOptions()).FindPath(nodes, startID, destID, pref)
}

// GenerateDirections synthesizes directions with DefaultOptions.
func GenerateDirections(nodes spatial.Nodes, path []string, pref Preference) (Directions, error) {
	return New(DefaultOptions()).GenerateDirections(nodes, path, pref)
}
