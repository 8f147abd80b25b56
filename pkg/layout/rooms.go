package layout

import (
	"fmt"

	"github.com/sanonone/wayfinder/pkg/spatial"
)

// DefaultBuilding is assigned to rooms that do not name their building.
const DefaultBuilding = "unknown"

// Room is a floor plan rectangle as drawn by plan editors. Only its anchor
// point takes part in routing.
type Room struct {
	ID       string           `yaml:"id"`
	Name     string           `yaml:"name"`
	X        float64          `yaml:"x"`
	Y        float64          `yaml:"y"`
	Floor    int              `yaml:"floor"`
	Width    float64          `yaml:"width"`
	Height   float64          `yaml:"height"`
	Type     spatial.NodeType `yaml:"type"`
	Building string           `yaml:"building"`
}

// Node converts the room into a navigation node, defaulting the type to room
// and the building to DefaultBuilding.
func (r Room) Node() spatial.Node {
	n := spatial.Node{
		ID:       r.ID,
		Name:     r.Name,
		X:        r.X,
		Y:        r.Y,
		Floor:    r.Floor,
		Building: r.Building,
		Type:     r.Type,
	}
	if n.Type == "" {
		n.Type = spatial.Room
	}
	if n.Building == "" {
		n.Building = DefaultBuilding
	}
	return n
}

// JunctionPoint is one junction of the per-floor grid, relative to the
// building offset.
type JunctionPoint struct {
	Suffix string  `yaml:"suffix"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

// BuildingOffset shifts the junction grid of one building.
type BuildingOffset struct {
	Building string  `yaml:"building"`
	OffsetX  float64 `yaml:"offset_x"`
	OffsetY  float64 `yaml:"offset_y"`
}

// JunctionGrid stamps the same set of junctions on every floor of every
// listed building.
type JunctionGrid struct {
	Floors    []int            `yaml:"floors"`
	Buildings []BuildingOffset `yaml:"buildings"`
	// Points defaults to DefaultJunctionPoints when empty.
	Points []JunctionPoint `yaml:"points"`
}

// DefaultJunctionPoints is a center hub with left, right and top wings.
func DefaultJunctionPoints() []JunctionPoint {
	return []JunctionPoint{
		{Suffix: "center", X: 4, Y: 16},
		{Suffix: "left-1", X: 4, Y: 4},
		{Suffix: "left-2", X: 4, Y: 12},
		{Suffix: "right-1", X: 12, Y: 4},
		{Suffix: "right-2", X: 12, Y: 12},
		{Suffix: "top-1", X: 6, Y: 28},
		{Suffix: "top-2", X: 10, Y: 28},
	}
}

// Expand returns the junction nodes, building by building and floor by floor.
// Ids follow "<building>-<floor>-junction-<suffix>".
func (g JunctionGrid) Expand() spatial.Nodes {
	points := g.Points
	if len(points) == 0 {
		points = DefaultJunctionPoints()
	}

	nodes := make(spatial.Nodes, 0, len(g.Buildings)*len(g.Floors)*len(points))
	for _, b := range g.Buildings {
		for _, floor := range g.Floors {
			for _, p := range points {
				nodes = append(nodes, spatial.Node{
					ID:       fmt.Sprintf("%s-%d-junction-%s", b.Building, floor, p.Suffix),
					Name:     "Junction",
					X:        p.X + b.OffsetX,
					Y:        p.Y + b.OffsetY,
					Floor:    floor,
					Building: b.Building,
					Type:     spatial.Junction,
				})
			}
		}
	}
	return nodes
}
