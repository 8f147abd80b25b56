package server

import (
	"github.com/sanonone/wayfinder/pkg/engine"
	"github.com/sanonone/wayfinder/pkg/layout"
	"github.com/sanonone/wayfinder/pkg/spatial"
)

// RouteRequest defines the body of POST /route.
type RouteRequest struct {
	Layout string `json:"layout" validate:"required"`
	engine.RouteRequest
}

// BatchRouteRequest defines the body of POST /routes.
type BatchRouteRequest struct {
	Layout string                `json:"layout" validate:"required"`
	Routes []engine.RouteRequest `json:"routes" validate:"required,min=1,dive"`
}

// RouteResponse is a planned route with its directions.
type RouteResponse struct {
	Path         []string        `json:"path"`
	Instructions []string        `json:"instructions"`
	Waypoints    []string        `json:"waypoints"`
	Strategy     engine.Strategy `json:"strategy"`
	Omitted      []string        `json:"omitted,omitempty"`
	Transport    *spatial.Node   `json:"transport,omitempty"`
}

func newRouteResponse(res engine.RouteResult) RouteResponse {
	return RouteResponse{
		Path:         res.Path,
		Instructions: res.Instructions,
		Waypoints:    res.Waypoints,
		Strategy:     res.Strategy,
		Omitted:      res.Omitted,
		Transport:    res.Transport,
	}
}

// BatchRouteItem is one result of POST /routes. Exactly one of Route and
// Error is set.
type BatchRouteItem struct {
	StartID string         `json:"start_id"`
	DestID  string         `json:"dest_id"`
	Route   *RouteResponse `json:"route,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// BatchRouteResponse preserves the order of the request.
type BatchRouteResponse struct {
	Results []BatchRouteItem `json:"results"`
}

// LayoutInfo summarizes a registered layout.
type LayoutInfo struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Nodes       int                      `json:"nodes"`
	Floors      []int                    `json:"floors"`
	Buildings   []string                 `json:"buildings"`
	Types       map[spatial.NodeType]int `json:"types"`
}

func newLayoutInfo(l *layout.Layout) LayoutInfo {
	return LayoutInfo{
		Name:        l.Name,
		Description: l.Description,
		Nodes:       len(l.Nodes),
		Floors:      l.Nodes.Floors(),
		Buildings:   l.Nodes.Buildings(),
		Types:       l.Nodes.CountByType(),
	}
}

// LayoutsResponse is the body of GET /layouts.
type LayoutsResponse struct {
	Layouts []LayoutInfo `json:"layouts"`
}

// NodesResponse is the body of GET /layouts/{name}/nodes.
type NodesResponse struct {
	Layout string        `json:"layout"`
	Nodes  spatial.Nodes `json:"nodes"`
}

// SuggestResponse is the body of GET /layouts/{name}/suggest.
type SuggestResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// Suggestion is a room matching a number prefix.
type Suggestion struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Floor  int    `json:"floor"`
}

// CheckResponse is the body of GET /layouts/{name}/check.
type CheckResponse struct {
	Layout  string               `json:"layout"`
	Healthy bool                 `json:"healthy"`
	Floors  []layout.FloorReport `json:"floors"`
}
