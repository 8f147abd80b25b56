package engine

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/sanonone/wayfinder/pkg/spatial"
)

const (
	// diagonalTolerance is how close |dx| and |dy| must be for a diagonal move.
	diagonalTolerance = 0.5
	// minTurn is the smallest heading change reported as a turn.
	minTurn = math.Pi / 6
	// sharpTurn upgrades "slightly left/right" to a plain "left/right".
	sharpTurn = 2 * math.Pi / 3
)

// Directions is the human-readable form of a path.
type Directions struct {
	Instructions []string `json:"instructions"`
	// Waypoints are the room ids along the path, in path order.
	Waypoints []string `json:"waypoints"`
}

// GenerateDirections turns a path into step instructions and extracts the
// room waypoints. Paths shorter than two nodes yield empty directions. Every
// id in path must resolve in nodes.
//
// The preference only changes the wording when the route changes floors and
// the requested transport type does not exist on the floor the other one was
// taken from.
func (e *Engine) GenerateDirections(nodes spatial.Nodes, path []string, pref Preference) (Directions, error) {
	dirs := Directions{Instructions: []string{}, Waypoints: []string{}}
	if len(path) < 2 {
		return dirs, nil
	}

	idx := nodes.Index()
	steps := make([]spatial.Node, len(path))
	for i, id := range path {
		n, ok := idx[id]
		if !ok {
			return Directions{}, nodeNotFound("path", id)
		}
		steps[i] = n
		if n.Type == spatial.Room {
			dirs.Waypoints = append(dirs.Waypoints, n.ID)
		}
	}

	startRoom, endRoom := steps[0], steps[len(steps)-1]
	last := len(steps) - 2

	for i := 0; i <= last; i++ {
		current, next := steps[i], steps[i+1]

		if i == 0 {
			dirs.Instructions = append(dirs.Instructions, leaveRoom(current, next))
			continue
		}
		prev := steps[i-1]

		switch {
		case next.Type.IsVerticalTransport() && current.Type != next.Type:
			if want, ok := substituted(nodes, pref, next, startRoom.Floor != endRoom.Floor); ok {
				dirs.Instructions = append(dirs.Instructions,
					fmt.Sprintf("No %s available on this floor, using the %s instead", want, next.Type))
			}
			if s, ok := changeFloor(next.Type, startRoom.Floor, endRoom.Floor); ok {
				dirs.Instructions = append(dirs.Instructions, s)
			}

		case next.Type == spatial.Room && i == last:
			if turn, ok := turnDirection(prev, current, next); ok {
				dirs.Instructions = append(dirs.Instructions,
					fmt.Sprintf("Turn %s and walk straight to reach Room %s", turn, roomNumber(next.ID)))
			} else {
				dirs.Instructions = append(dirs.Instructions,
					fmt.Sprintf("Walk straight ahead to reach Room %s", roomNumber(next.ID)))
			}

		case current.Type == spatial.Corridor:
			if turn, ok := turnDirection(prev, current, next); ok {
				dirs.Instructions = append(dirs.Instructions, "At the corridor, turn "+turn)
			}

		case current.Type == spatial.Junction:
			if turn, ok := turnDirection(prev, current, next); ok {
				dirs.Instructions = append(dirs.Instructions, "At the intersection, turn "+turn)
			}
		}
	}

	return dirs, nil
}

// substituted reports the preferred transport type when vt was taken in its
// place: the route changes floors and vt's floor has no node of that type.
func substituted(nodes spatial.Nodes, pref Preference, vt spatial.Node, changesFloor bool) (spatial.NodeType, bool) {
	want, ok := pref.explicit()
	if !ok || !changesFloor || want == vt.Type {
		return "", false
	}
	if _, present := nodes.FirstOfType(want, vt.Building, vt.Floor); present {
		return "", false
	}
	return want, true
}

// leaveRoom phrases the first movement of a route.
func leaveRoom(from, to spatial.Node) string {
	dir := moveDirection(from, to)
	if dir == "backward" {
		return "When you leave the room, turn around and walk forward"
	}
	return "When you leave the room, walk " + dir
}

// moveDirection classifies a movement vector by its dominant axis. Moves whose
// axis magnitudes are within diagonalTolerance of each other are diagonal.
// Positive y is forward.
func moveDirection(from, to spatial.Node) string {
	dx := to.X - from.X
	dy := to.Y - from.Y

	if math.Abs(math.Abs(dx)-math.Abs(dy)) < diagonalTolerance && dy != 0 {
		switch {
		case dx > 0:
			return "diagonally right"
		case dx < 0:
			return "diagonally left"
		}
	}

	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return "right"
		}
		return "left"
	}
	if dy > 0 {
		return "forward"
	}
	return "backward"
}

// changeFloor phrases a ride between the route's start and end floors.
func changeFloor(t spatial.NodeType, from, to int) (string, bool) {
	switch {
	case from > to:
		return fmt.Sprintf("Walk to the %s and go down from floor %d to floor %d", t, from, to), true
	case from < to:
		return fmt.Sprintf("Walk to the %s and go up from floor %d to floor %d", t, from, to), true
	}
	return "", false
}

// turnDirection compares the heading into current with the heading out of it.
// It reports false when the change is below minTurn.
func turnDirection(prev, current, next spatial.Node) (string, bool) {
	turn := normalizeAngle(current.Heading(next) - prev.Heading(current))
	if math.Abs(turn) < minTurn {
		return "", false
	}

	side := "right"
	if turn < 0 {
		side = "left"
	}
	if math.Abs(turn) >= sharpTurn {
		return side, true
	}
	return "slightly " + side, true
}

// normalizeAngle maps a into (-π, π].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// roomNumber extracts the display number from ids shaped like "AB1-101".
// Ids without a second segment fall back to their trailing digits ("R2" is
// room 2), and are shown as is when they have none.
func roomNumber(id string) string {
	parts := strings.Split(id, "-")
	if len(parts) >= 2 && parts[1] != "" {
		return parts[1]
	}
	prefix := strings.TrimRightFunc(id, unicode.IsDigit)
	if prefix == id {
		return id
	}
	return id[len(prefix):]
}
