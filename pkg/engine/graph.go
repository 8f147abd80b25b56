package engine

import (
	"slices"

	"github.com/sanonone/wayfinder/pkg/spatial"
)

// Graph is the adjacency list of one floor. It is derived from the node set on
// every request and never stored.
//
// Edges are undirected and unweighted; hop count is the only distance metric.
type Graph struct {
	order     []string
	neighbors map[string][]string
}

// Neighbors returns the nodes adjacent to id in discovery order.
func (g Graph) Neighbors(id string) []string {
	return g.neighbors[id]
}

// Adjacent reports whether a and b share an edge.
func (g Graph) Adjacent(a, b string) bool {
	return slices.Contains(g.neighbors[a], b)
}

// Has reports whether id is a vertex of the graph.
func (g Graph) Has(id string) bool {
	_, ok := g.neighbors[id]
	return ok
}

// IDs returns the vertex ids in node-set order.
func (g Graph) IDs() []string {
	return slices.Clone(g.order)
}

// Len returns the number of vertices.
func (g Graph) Len() int {
	return len(g.order)
}

// EdgeCount returns the number of undirected edges.
func (g Graph) EdgeCount() int {
	total := 0
	for _, ns := range g.neighbors {
		total += len(ns)
	}
	return total / 2
}

// BuildAdjacency connects the nodes of one floor using the proximity rules of
// the engine. Every node on the floor becomes a vertex, including isolated ones.
func (e *Engine) BuildAdjacency(nodes spatial.Nodes, floor int) Graph {
	floorNodes := nodes.OnFloor(floor)
	g := Graph{
		order:     make([]string, 0, len(floorNodes)),
		neighbors: make(map[string][]string, len(floorNodes)),
	}

	for _, a := range floorNodes {
		g.order = append(g.order, a.ID)
		adj := make([]string, 0)
		for _, b := range floorNodes {
			if a.ID == b.ID {
				continue
			}
			if e.connected(a, b) {
				adj = append(adj, b.ID)
			}
		}
		g.neighbors[a.ID] = adj
	}
	return g
}

// connected applies the edge rule to a pair of same-floor nodes. The rule is
// symmetric so the resulting graph is undirected.
func (e *Engine) connected(a, b spatial.Node) bool {
	if a.Building != b.Building || a.Floor != b.Floor {
		return false
	}

	// Vertical transport reaches every hub on its floor regardless of distance.
	if (a.Type.IsVerticalTransport() && b.Type.IsHub()) || (b.Type.IsVerticalTransport() && a.Type.IsHub()) {
		return true
	}

	if !proximityPair(a.Type, b.Type) {
		return false
	}
	return a.DistanceTo(b) <= e.threshold(a.Type, b.Type)
}

// proximityPair lists the type pairings that connect by distance.
func proximityPair(a, b spatial.NodeType) bool {
	switch {
	case a == spatial.Room:
		return b.IsHub()
	case b == spatial.Room:
		return a.IsHub()
	default:
		return a.IsHub() && b.IsHub()
	}
}

// threshold widens the base distance for hubs. Junctions win over corridors.
func (e *Engine) threshold(a, b spatial.NodeType) float64 {
	base := e.opts.Threshold
	switch {
	case a == spatial.Junction || b == spatial.Junction:
		return base * 2
	case a == spatial.Corridor || b == spatial.Corridor:
		return base * 1.5
	default:
		return base
	}
}
