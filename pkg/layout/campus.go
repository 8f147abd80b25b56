package layout

import (
	"fmt"

	"github.com/sanonone/wayfinder/pkg/spatial"
)

// CampusSpec describes a generated campus: identical buildings with numbered
// rooms, one corridor, a staircase on every floor but the top one and an
// elevator on every floor.
type CampusSpec struct {
	Buildings     []BuildingOffset `yaml:"buildings"`
	Floors        []int            `yaml:"floors"`
	RoomsPerFloor int              `yaml:"rooms_per_floor"`
	// Junctions stamps DefaultJunctionPoints on every floor.
	Junctions bool `yaml:"junctions"`
}

// DefaultCampus returns the two-building, four-floor demo campus.
func DefaultCampus() CampusSpec {
	return CampusSpec{
		Buildings: []BuildingOffset{
			{Building: "AB1"},
			{Building: "AB2", OffsetX: 40},
		},
		Floors:        []int{0, 1, 2, 3},
		RoomsPerFloor: 40,
		Junctions:     true,
	}
}

// GenerateCampus builds the node set of a campus. Room ids look like
// "AB1-205" (floor 2, room 05) and are laid out ten to a row.
func GenerateCampus(spec CampusSpec) spatial.Nodes {
	top := 0
	for _, f := range spec.Floors {
		top = max(top, f)
	}

	nodes := make(spatial.Nodes, 0)
	for _, b := range spec.Buildings {
		for _, floor := range spec.Floors {
			for i := 1; i <= spec.RoomsPerFloor; i++ {
				number := fmt.Sprintf("%d%02d", floor, i)
				nodes = append(nodes, spatial.Node{
					ID:       fmt.Sprintf("%s-%s", b.Building, number),
					Name:     number,
					X:        float64(20 + (i%10)*6),
					Y:        float64(20 + (i/10)*6),
					Floor:    floor,
					Building: b.Building,
					Type:     spatial.Room,
				})
			}

			nodes = append(nodes, spatial.Node{
				ID: fmt.Sprintf("%s-%d-corridor", b.Building, floor), Name: "Corridor",
				X: 15, Y: 15, Floor: floor, Building: b.Building, Type: spatial.Corridor,
			})
			if floor < top {
				nodes = append(nodes, spatial.Node{
					ID: fmt.Sprintf("%s-%d-stairs", b.Building, floor), Name: "Stairs",
					X: 10, Y: 10, Floor: floor, Building: b.Building, Type: spatial.Stairs,
				})
			}
			nodes = append(nodes, spatial.Node{
				ID: fmt.Sprintf("%s-%d-elevator", b.Building, floor), Name: "Elevator",
				X: 5, Y: 5, Floor: floor, Building: b.Building, Type: spatial.Elevator,
			})
		}
	}

	if spec.Junctions {
		grid := JunctionGrid{Floors: spec.Floors, Buildings: spec.Buildings}
		nodes = append(nodes, grid.Expand()...)
	}
	return nodes
}
