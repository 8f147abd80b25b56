// Package spatial holds the passive building model consumed by the routing engine.
//
// A building layout is a flat list of Node descriptors. Nodes carry floor-local
// planar coordinates, a floor index, the building they belong to and a type that
// drives how the engine connects them. The package never mutates the slices it
// is handed; every helper returns values or freshly allocated slices.
package spatial

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// NodeType classifies a point of interest in a building.
type NodeType string

const (
	Room     NodeType = "room"
	Corridor NodeType = "corridor"
	Junction NodeType = "junction"
	Stairs   NodeType = "stairs"
	Elevator NodeType = "elevator"
	Lobby    NodeType = "lobby"
)

var nodeTypes = []NodeType{Room, Corridor, Junction, Stairs, Elevator, Lobby}

// ParseNodeType converts a case-insensitive label into a NodeType.
func ParseNodeType(s string) (NodeType, error) {
	t := NodeType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range nodeTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Valid reports whether t is one of the known node types.
func (t NodeType) Valid() bool {
	for _, known := range nodeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsVerticalTransport reports whether t moves people between floors.
func (t NodeType) IsVerticalTransport() bool {
	return t == Stairs || t == Elevator
}

// IsHub reports whether t is a corridor or a junction.
func (t NodeType) IsHub() bool {
	return t == Corridor || t == Junction
}

// UnmarshalText accepts any casing of the known labels.
func (t *NodeType) UnmarshalText(text []byte) error {
	parsed, err := ParseNodeType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t NodeType) MarshalText() ([]byte, error) {
	return []byte(t), nil
}

// Node is an addressable point in a building graph.
type Node struct {
	ID       string   `json:"id" yaml:"id" validate:"required"`
	Name     string   `json:"name" yaml:"name"`
	X        float64  `json:"x" yaml:"x"`
	Y        float64  `json:"y" yaml:"y"`
	Floor    int      `json:"floor" yaml:"floor"`
	Building string   `json:"building" yaml:"building" validate:"required"`
	Type     NodeType `json:"type" yaml:"type" validate:"required"`
}

// Point returns the node position as a planar vector.
func (n Node) Point() r2.Vec {
	return r2.Vec{X: n.X, Y: n.Y}
}

// DistanceTo returns the Euclidean distance between n and other, ignoring floors.
func (n Node) DistanceTo(other Node) float64 {
	return r2.Norm(r2.Sub(other.Point(), n.Point()))
}

// SamePosition reports whether two nodes sit at exactly the same coordinates.
// Vertical transport nodes on different floors that share a position are the
// same physical shaft or staircase.
func (n Node) SamePosition(other Node) bool {
	return n.X == other.X && n.Y == other.Y
}

// Heading returns the angle in radians of the vector from n to other.
func (n Node) Heading(other Node) float64 {
	return math.Atan2(other.Y-n.Y, other.X-n.X)
}

func (n Node) String() string {
	return fmt.Sprintf("%s(%s %s/%d @%.1f,%.1f)", n.ID, n.Type, n.Building, n.Floor, n.X, n.Y)
}
