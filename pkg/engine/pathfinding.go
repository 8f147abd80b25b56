package engine

import (
	"github.com/sanonone/wayfinder/pkg/spatial"
)

// Strategy names how a path was produced.
type Strategy string

const (
	// StrategyTrivial is a start equal to the destination.
	StrategyTrivial Strategy = "trivial"
	// StrategySameFloor is a breadth-first search over one floor graph.
	StrategySameFloor Strategy = "same_floor_bfs"
	// StrategyFallback stitches through the nearest junctions when the floor
	// graph does not connect the endpoints. The result may not be connected.
	StrategyFallback Strategy = "same_floor_fallback"
	// StrategyCrossFloor stitches through a vertical transport pair.
	StrategyCrossFloor Strategy = "cross_floor"
)

// Legs that can be omitted from a stitched path.
const (
	LegStartJunction = "start_junction"
	LegDestJunction  = "dest_junction"
	LegTransport     = "vertical_transport"
	LegDestTransport = "dest_vertical_transport"
)

// Plan is the result of route planning.
type Plan struct {
	Path     []string `json:"path"`
	Strategy Strategy `json:"strategy"`
	// Omitted lists the stitched legs that could not be resolved and were
	// left out of Path.
	Omitted []string `json:"omitted,omitempty"`
	// Transport is the vertical transport node used on the start floor.
	Transport *spatial.Node `json:"transport,omitempty"`
}

// Incomplete reports whether any stitched leg was dropped.
func (p Plan) Incomplete() bool {
	return len(p.Omitted) > 0
}

// FindPath returns the ordered node ids from startID to destID.
func (e *Engine) FindPath(nodes spatial.Nodes, startID, destID string, pref Preference) ([]string, error) {
	plan, err := e.Plan(nodes, startID, destID, pref)
	if err != nil {
		return nil, err
	}
	return plan.Path, nil
}

// Plan resolves both endpoints and routes between them.
//
// Same-floor requests use breadth-first search and fall back to the nearest
// junctions when the floor graph does not connect the endpoints. Cross-floor
// requests are stitched through one stairs or elevator pair chosen by pref.
// Neither case reports "no route"; unresolvable legs are listed in Omitted.
func (e *Engine) Plan(nodes spatial.Nodes, startID, destID string, pref Preference) (Plan, error) {
	start, ok := nodes.Find(startID)
	if !ok {
		return Plan{}, nodeNotFound("start", startID)
	}
	dest, ok := nodes.Find(destID)
	if !ok {
		return Plan{}, nodeNotFound("destination", destID)
	}

	if start.ID == dest.ID {
		return Plan{Path: []string{start.ID}, Strategy: StrategyTrivial}, nil
	}

	var plan Plan
	if start.Floor != dest.Floor {
		plan = e.crossFloor(nodes, start, dest, pref)
	} else if path, found := bfs(e.BuildAdjacency(nodes, start.Floor), start.ID, dest.ID); found {
		plan = Plan{Path: path, Strategy: StrategySameFloor}
	} else {
		plan = e.fallback(nodes, start, dest)
	}

	if plan.Incomplete() {
		e.log.Debug("route legs omitted",
			"start", start.ID,
			"dest", dest.ID,
			"strategy", plan.Strategy,
			"omitted", plan.Omitted,
		)
	}
	return plan, nil
}

// bfs returns the minimum-hop path between two vertices. Neighbors are expanded
// in graph order so ties resolve to the first-discovered branch.
func bfs(g Graph, startID, destID string) ([]string, bool) {
	parent := map[string]string{startID: ""}
	queue := []string{startID}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == destID {
			return tracePath(parent, startID, destID), true
		}

		for _, next := range g.Neighbors(curr) {
			if _, seen := parent[next]; !seen {
				parent[next] = curr
				queue = append(queue, next)
			}
		}
	}
	return nil, false
}

// tracePath walks parent links back from dest to start and reverses them.
func tracePath(parent map[string]string, start, dest string) []string {
	rev := []string{dest}
	for curr := dest; curr != start; {
		curr = parent[curr]
		rev = append(rev, curr)
	}
	path := make([]string, len(rev))
	for i, id := range rev {
		path[len(rev)-1-i] = id
	}
	return path
}

// fallback returns start, the junction nearest each endpoint and dest. The
// junction hops are not checked against the floor graph.
func (e *Engine) fallback(nodes spatial.Nodes, start, dest spatial.Node) Plan {
	plan := Plan{Path: []string{start.ID}, Strategy: StrategyFallback}

	if j, ok := spatial.Nearest(start, nodes.Junctions(start.Building, start.Floor)); ok {
		plan.Path = append(plan.Path, j.ID)
	} else {
		plan.Omitted = append(plan.Omitted, LegStartJunction)
	}
	if j, ok := spatial.Nearest(dest, nodes.Junctions(dest.Building, dest.Floor)); ok {
		plan.Path = append(plan.Path, j.ID)
	} else {
		plan.Omitted = append(plan.Omitted, LegDestJunction)
	}

	plan.Path = append(plan.Path, dest.ID)
	e.log.Debug("floor graph does not connect endpoints, using junction fallback",
		"start", start.ID, "dest", dest.ID)
	return plan
}

// crossFloor stitches start, its nearest junction, a vertical transport node,
// the matching node on the destination floor, the junction nearest the
// destination and dest. Missing elements are omitted.
func (e *Engine) crossFloor(nodes spatial.Nodes, start, dest spatial.Node, pref Preference) Plan {
	plan := Plan{Path: []string{start.ID}, Strategy: StrategyCrossFloor}

	if j, ok := spatial.Nearest(start, nodes.Junctions(start.Building, start.Floor)); ok {
		plan.Path = append(plan.Path, j.ID)
	} else {
		plan.Omitted = append(plan.Omitted, LegStartJunction)
	}

	if vt, ok := chooseTransport(nodes, start, dest.Floor-start.Floor, pref); ok {
		plan.Path = append(plan.Path, vt.ID)
		plan.Transport = &vt
		if match, ok := nodes.Matching(vt, dest.Building, dest.Floor); ok {
			plan.Path = append(plan.Path, match.ID)
		} else {
			plan.Omitted = append(plan.Omitted, LegDestTransport)
		}
	} else {
		plan.Omitted = append(plan.Omitted, LegTransport, LegDestTransport)
	}

	if j, ok := spatial.Nearest(dest, nodes.Junctions(dest.Building, dest.Floor)); ok {
		plan.Path = append(plan.Path, j.ID)
	} else {
		plan.Omitted = append(plan.Omitted, LegDestJunction)
	}

	plan.Path = append(plan.Path, dest.ID)
	return plan
}

// chooseTransport picks the first stairs or elevator on the start floor
// following the preference order.
func chooseTransport(nodes spatial.Nodes, start spatial.Node, floorDiff int, pref Preference) (spatial.Node, bool) {
	for _, t := range pref.transportOrder(floorDiff) {
		if vt, ok := nodes.FirstOfType(t, start.Building, start.Floor); ok {
			return vt, true
		}
	}
	return spatial.Node{}, false
}
