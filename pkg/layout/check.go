package layout

import (
	"slices"

	"github.com/sanonone/wayfinder/pkg/engine"
	"github.com/sanonone/wayfinder/pkg/spatial"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// FloorReport summarizes the adjacency graph of one floor of one building.
type FloorReport struct {
	Building   string `json:"building"`
	Floor      int    `json:"floor"`
	Nodes      int    `json:"nodes"`
	Edges      int    `json:"edges"`
	Components int    `json:"components"`
	// Isolated lists nodes with no neighbor at all.
	Isolated []string `json:"isolated"`
	// Stranded lists rooms that share no component with any hub, so routing
	// to or from them only works through the fallback path.
	Stranded []string `json:"stranded"`
}

// Healthy reports whether every room of the floor can reach a hub.
func (r FloorReport) Healthy() bool {
	return len(r.Isolated) == 0 && len(r.Stranded) == 0
}

// Check builds the adjacency graph of every floor with eng and reports its
// connectivity per building. Reports are ordered by building then floor.
func (l *Layout) Check(eng *engine.Engine) []FloorReport {
	var reports []FloorReport
	for _, floor := range l.Nodes.Floors() {
		adj := eng.BuildAdjacency(l.Nodes, floor)
		onFloor := l.Nodes.OnFloor(floor)
		for _, building := range onFloor.Buildings() {
			reports = append(reports, checkFloor(adj, onFloor, building, floor))
		}
	}
	slices.SortStableFunc(reports, func(a, b FloorReport) int {
		if a.Building != b.Building {
			if a.Building < b.Building {
				return -1
			}
			return 1
		}
		return a.Floor - b.Floor
	})
	return reports
}

func checkFloor(adj engine.Graph, onFloor spatial.Nodes, building string, floor int) FloorReport {
	report := FloorReport{Building: building, Floor: floor, Isolated: []string{}, Stranded: []string{}}

	g := simple.NewUndirectedGraph()
	ids := make(map[string]int64)
	var members spatial.Nodes
	for _, n := range onFloor {
		if n.Building != building {
			continue
		}
		id := int64(len(members))
		ids[n.ID] = id
		members = append(members, n)
		g.AddNode(simple.Node(id))
	}
	report.Nodes = len(members)

	for _, n := range members {
		neighbors := adj.Neighbors(n.ID)
		if len(neighbors) == 0 {
			report.Isolated = append(report.Isolated, n.ID)
		}
		for _, m := range neighbors {
			to, ok := ids[m]
			if !ok || to <= ids[n.ID] {
				continue
			}
			g.SetEdge(g.NewEdge(simple.Node(ids[n.ID]), simple.Node(to)))
			report.Edges++
		}
	}

	components := topo.ConnectedComponents(g)
	report.Components = len(components)
	for _, component := range components {
		if hasHub(component, members) {
			continue
		}
		for _, gn := range component {
			if n := members[gn.ID()]; n.Type == spatial.Room {
				report.Stranded = append(report.Stranded, n.ID)
			}
		}
	}
	slices.Sort(report.Stranded)
	return report
}

func hasHub(component []graph.Node, members spatial.Nodes) bool {
	for _, gn := range component {
		if members[gn.ID()].Type.IsHub() {
			return true
		}
	}
	return false
}
