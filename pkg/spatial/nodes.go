package spatial

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/go-playground/validator/v10"
)

var (
	ErrDuplicateID = errors.New("duplicate node id")
	ErrUnknownType = errors.New("unknown node type")
	ErrInvalidNode = errors.New("invalid node")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Nodes is the flat node set describing one or more buildings.
type Nodes []Node

// Find returns the node with the given id.
func (ns Nodes) Find(id string) (Node, bool) {
	for _, n := range ns {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Index returns an id -> node map. On duplicate ids the first node wins, as
// with Find. Callers resolving many ids against the same set should build it
// once per request.
func (ns Nodes) Index() map[string]Node {
	idx := make(map[string]Node, len(ns))
	for _, n := range ns {
		if _, dup := idx[n.ID]; !dup {
			idx[n.ID] = n
		}
	}
	return idx
}

// OnFloor returns the nodes of every building on the given floor, in input order.
func (ns Nodes) OnFloor(floor int) Nodes {
	out := make(Nodes, 0)
	for _, n := range ns {
		if n.Floor == floor {
			out = append(out, n)
		}
	}
	return out
}

// Filter returns the nodes matching building, floor and type, in input order.
func (ns Nodes) Filter(t NodeType, building string, floor int) Nodes {
	out := make(Nodes, 0)
	for _, n := range ns {
		if n.Type == t && n.Building == building && n.Floor == floor {
			out = append(out, n)
		}
	}
	return out
}

// Junctions returns the junction nodes of a building floor.
func (ns Nodes) Junctions(building string, floor int) Nodes {
	return ns.Filter(Junction, building, floor)
}

// FirstOfType returns the first node of type t on a building floor.
func (ns Nodes) FirstOfType(t NodeType, building string, floor int) (Node, bool) {
	for _, n := range ns {
		if n.Type == t && n.Building == building && n.Floor == floor {
			return n, true
		}
	}
	return Node{}, false
}

// Matching returns the counterpart of a vertical transport node on another
// floor: same type, the given building and floor, identical coordinates.
func (ns Nodes) Matching(vertical Node, building string, floor int) (Node, bool) {
	for _, n := range ns {
		if n.Type == vertical.Type && n.Building == building && n.Floor == floor && n.SamePosition(vertical) {
			return n, true
		}
	}
	return Node{}, false
}

// Nearest returns the candidate closest to from. Ties go to the candidate that
// appears first. It reports false for an empty candidate set.
func Nearest(from Node, candidates Nodes) (Node, bool) {
	var best Node
	found := false
	bestDist := math.Inf(1)
	for _, c := range candidates {
		if d := from.DistanceTo(c); d < bestDist {
			bestDist = d
			best = c
			found = true
		}
	}
	return best, found
}

// Floors returns the distinct floor indexes in ascending order.
func (ns Nodes) Floors() []int {
	seen := make(map[int]struct{})
	out := make([]int, 0)
	for _, n := range ns {
		if _, ok := seen[n.Floor]; !ok {
			seen[n.Floor] = struct{}{}
			out = append(out, n.Floor)
		}
	}
	slices.Sort(out)
	return out
}

// Buildings returns the distinct building identifiers in ascending order.
func (ns Nodes) Buildings() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, n := range ns {
		if _, ok := seen[n.Building]; !ok {
			seen[n.Building] = struct{}{}
			out = append(out, n.Building)
		}
	}
	slices.Sort(out)
	return out
}

// CountByType tallies nodes per type.
func (ns Nodes) CountByType() map[NodeType]int {
	out := make(map[NodeType]int)
	for _, n := range ns {
		out[n.Type]++
	}
	return out
}

// Validate checks that every node is well formed and that ids are unique
// across the whole set.
func Validate(ns Nodes) error {
	seen := make(map[string]int, len(ns))
	for i, n := range ns {
		if err := validate.Struct(n); err != nil {
			return fmt.Errorf("%w at index %d: %v", ErrInvalidNode, i, err)
		}
		if !n.Type.Valid() {
			return fmt.Errorf("%w %q for node %q", ErrUnknownType, n.Type, n.ID)
		}
		if prev, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w %q (indexes %d and %d)", ErrDuplicateID, n.ID, prev, i)
		}
		seen[n.ID] = i
	}
	return nil
}
