package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sanonone/wayfinder/pkg/engine"
	"github.com/sanonone/wayfinder/pkg/layout"
)

type Service struct {
	engine  *engine.Engine
	layouts *layout.Registry
}

func NewService(eng *engine.Engine, layouts *layout.Registry) *Service {
	return &Service{
		engine:  eng,
		layouts: layouts,
	}
}

// --- Tool Handlers ---

func (s *Service) FindRoute(ctx context.Context, req *mcp.CallToolRequest, args FindRouteArgs) (*mcp.CallToolResult, FindRouteResult, error) {
	pref, err := engine.ParsePreference(args.Preference)
	if err != nil {
		return nil, FindRouteResult{}, err
	}
	l, err := s.layouts.Get(args.Layout)
	if err != nil {
		return nil, FindRouteResult{}, err
	}

	res, err := s.engine.Route(l.Nodes, engine.RouteRequest{StartID: args.StartID, DestID: args.DestID, Preference: pref})
	if err != nil {
		return nil, FindRouteResult{}, err
	}

	var sb strings.Builder
	for i, step := range res.Instructions {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
	}
	if res.Incomplete() {
		sb.WriteString(fmt.Sprintf("Note: the route is approximate, missing %s.\n", strings.Join(res.Omitted, ", ")))
	}

	return nil, FindRouteResult{
		Path:         res.Path,
		Instructions: res.Instructions,
		Waypoints:    res.Waypoints,
		Strategy:     string(res.Strategy),
		Omitted:      res.Omitted,
		Summary:      sb.String(),
	}, nil
}

func (s *Service) ListLayouts(ctx context.Context, req *mcp.CallToolRequest, args ListLayoutsArgs) (*mcp.CallToolResult, ListLayoutsResult, error) {
	out := ListLayoutsResult{Layouts: []LayoutSummary{}}
	s.layouts.Each(func(l *layout.Layout) bool {
		out.Layouts = append(out.Layouts, LayoutSummary{
			Name:      l.Name,
			Nodes:     len(l.Nodes),
			Floors:    l.Nodes.Floors(),
			Buildings: l.Nodes.Buildings(),
		})
		return true
	})
	return nil, out, nil
}

func (s *Service) SuggestRooms(ctx context.Context, req *mcp.CallToolRequest, args SuggestRoomsArgs) (*mcp.CallToolResult, SuggestRoomsResult, error) {
	l, err := s.layouts.Get(args.Layout)
	if err != nil {
		return nil, SuggestRoomsResult{}, err
	}

	out := SuggestRoomsResult{Rooms: []string{}}
	for _, n := range l.Suggest(args.Building, args.Prefix, args.Limit) {
		out.Rooms = append(out.Rooms, n.ID)
	}
	return nil, out, nil
}

func (s *Service) CheckLayout(ctx context.Context, req *mcp.CallToolRequest, args CheckLayoutArgs) (*mcp.CallToolResult, CheckLayoutResult, error) {
	l, err := s.layouts.Get(args.Layout)
	if err != nil {
		return nil, CheckLayoutResult{}, err
	}

	out := CheckLayoutResult{Healthy: true}
	var sb strings.Builder
	for _, r := range l.Check(s.engine) {
		status := "ok"
		if !r.Healthy() {
			out.Healthy = false
			status = fmt.Sprintf("isolated [%s], unreachable rooms [%s]",
				strings.Join(r.Isolated, ", "), strings.Join(r.Stranded, ", "))
		}
		sb.WriteString(fmt.Sprintf("- %s floor %d: %d nodes, %d components, %s\n", r.Building, r.Floor, r.Nodes, r.Components, status))
	}
	out.Report = sb.String()
	return nil, out, nil
}
