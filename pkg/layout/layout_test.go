package layout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sanonone/wayfinder/pkg/engine"
	"github.com/sanonone/wayfinder/pkg/spatial"
)

func writeLayout(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("WAYFINDER_SITE", "north wing")
	path := writeLayout(t, `
description: ${WAYFINDER_SITE}
nodes:
  - {id: AB1-0-corridor, x: 15, y: 15, floor: 0, building: AB1, type: corridor}
rooms:
  - {id: AB1-001, name: "001", x: 20, y: 20, width: 8, height: 6}
  - {id: AB1-002, x: 26, y: 20, building: AB1, type: Lobby}
junctions:
  floors: [0]
  buildings:
    - {building: AB1}
  points:
    - {suffix: center, x: 4, y: 16}
`)

	l, err := Load(path, "north")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Name != "north" {
		t.Errorf("name = %q, want fallback", l.Name)
	}
	if l.Description != "north wing" {
		t.Errorf("description = %q, env var not expanded", l.Description)
	}

	want := spatial.Nodes{
		{ID: "AB1-0-corridor", X: 15, Y: 15, Building: "AB1", Type: spatial.Corridor},
		{ID: "AB1-001", Name: "001", X: 20, Y: 20, Building: DefaultBuilding, Type: spatial.Room},
		{ID: "AB1-002", X: 26, Y: 20, Building: "AB1", Type: spatial.Lobby},
		{ID: "AB1-0-junction-center", Name: "Junction", X: 4, Y: 16, Building: "AB1", Type: spatial.Junction},
	}
	if diff := cmp.Diff(want, l.Nodes); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefaultsBuilding(t *testing.T) {
	path := writeLayout(t, "nodes:\n  - {id: hall, x: 1, y: 2, type: corridor}\n")
	l, err := Load(path, "x")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := spatial.Nodes{{ID: "hall", X: 1, Y: 2, Building: DefaultBuilding, Type: spatial.Corridor}}
	if diff := cmp.Diff(want, l.Nodes); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("unknown field", func(t *testing.T) {
		path := writeLayout(t, "name: x\nnodez: []\n")
		if _, err := Load(path, ""); err == nil {
			t.Error("expected strict decoding to reject unknown field")
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		path := writeLayout(t, "nodes:\n  - {id: a, building: B, type: ladder}\n")
		if _, err := Load(path, "x"); !errors.Is(err, spatial.ErrUnknownType) {
			t.Errorf("expected ErrUnknownType, got %v", err)
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		path := writeLayout(t, "rooms:\n  - {id: a}\n  - {id: a}\n")
		if _, err := Load(path, "x"); !errors.Is(err, spatial.ErrDuplicateID) {
			t.Errorf("expected ErrDuplicateID, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "x"); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})
}

func TestJunctionGridExpand(t *testing.T) {
	grid := JunctionGrid{
		Floors: []int{0, 1},
		Buildings: []BuildingOffset{
			{Building: "AB1"},
			{Building: "AB2", OffsetX: 40},
		},
	}
	nodes := grid.Expand()
	if len(nodes) != 2*2*len(DefaultJunctionPoints()) {
		t.Fatalf("got %d junctions", len(nodes))
	}

	n, ok := nodes.Find("AB2-1-junction-center")
	if !ok {
		t.Fatal("AB2-1-junction-center not generated")
	}
	if n.X != 44 || n.Y != 16 || n.Floor != 1 || n.Type != spatial.Junction {
		t.Errorf("unexpected junction %+v", n)
	}
}

func TestGenerateCampus(t *testing.T) {
	nodes := GenerateCampus(DefaultCampus())

	counts := nodes.CountByType()
	want := map[spatial.NodeType]int{
		spatial.Room:     2 * 4 * 40,
		spatial.Corridor: 2 * 4,
		spatial.Stairs:   2 * 3,
		spatial.Elevator: 2 * 4,
		spatial.Junction: 2 * 4 * 7,
	}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("type counts (-want +got):\n%s", diff)
	}
	if err := spatial.Validate(nodes); err != nil {
		t.Errorf("generated campus is invalid: %v", err)
	}
	if _, ok := nodes.Find("AB1-3-stairs"); ok {
		t.Error("top floor should have no stairs")
	}

	room, ok := nodes.Find("AB2-215")
	if !ok {
		t.Fatal("AB2-215 missing")
	}
	if room.Name != "215" || room.X != 50 || room.Y != 26 || room.Floor != 2 {
		t.Errorf("unexpected room %+v", room)
	}
}

func TestCampusRoutes(t *testing.T) {
	l, err := File{Name: "campus", Campus: &CampusSpec{
		Buildings:     []BuildingOffset{{Building: "AB1"}},
		Floors:        []int{0, 1, 2},
		RoomsPerFloor: 10,
	}}.Build()
	if err != nil {
		t.Fatal(err)
	}

	res, err := engine.New(engine.DefaultOptions()).Route(l.Nodes, engine.RouteRequest{StartID: "AB1-003", DestID: "AB1-105"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Strategy != engine.StrategyCrossFloor || res.Transport == nil || res.Transport.ID != "AB1-0-stairs" {
		t.Errorf("unexpected plan %+v", res.Plan)
	}
	if len(res.Instructions) == 0 {
		t.Error("expected instructions")
	}
}

func TestSuggest(t *testing.T) {
	l, err := File{Name: "campus", Campus: &CampusSpec{
		Buildings:     []BuildingOffset{{Building: "AB1"}, {Building: "AB2"}},
		Floors:        []int{1, 2},
		RoomsPerFloor: 12,
	}}.Build()
	if err != nil {
		t.Fatal(err)
	}

	ids := func(ns spatial.Nodes) []string {
		out := []string{}
		for _, n := range ns {
			out = append(out, n.ID)
		}
		return out
	}

	tests := []struct {
		name     string
		building string
		prefix   string
		limit    int
		want     []string
	}{
		{"default limit", "AB1", "2", 0, []string{"AB1-201", "AB1-202", "AB1-203", "AB1-204", "AB1-205"}},
		{"narrow prefix", "AB2", "11", 10, []string{"AB2-110", "AB2-111", "AB2-112"}},
		{"exact", "AB1", "107", 5, []string{"AB1-107"}},
		{"no match", "AB1", "9", 5, []string{}},
		{"empty prefix", "AB1", "", 5, []string{}},
		{"unknown building", "ZZ", "1", 5, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(l.Suggest(tt.building, tt.prefix, tt.limit))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("suggestions (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSuggestCaseInsensitive(t *testing.T) {
	l, err := New("lab", "", spatial.Nodes{
		{ID: "L-a", Name: "Lab-A", Building: "L", Type: spatial.Room},
		{ID: "L-b", Name: "lab-b", Building: "L", Type: spatial.Room},
		{ID: "L-lobby", Name: "Lab lobby", Building: "L", Type: spatial.Lobby},
	})
	if err != nil {
		t.Fatal(err)
	}

	got := l.Suggest("L", " LAB-", 5)
	if len(got) != 2 || got[0].ID != "L-a" || got[1].ID != "L-b" {
		t.Errorf("unexpected suggestions %v", got)
	}
}

func TestRoomNumber(t *testing.T) {
	for _, tt := range []struct {
		node spatial.Node
		want string
	}{
		{spatial.Node{ID: "AB1-101", Name: "101", Building: "AB1"}, "101"},
		{spatial.Node{ID: "AB1-101", Building: "AB1"}, "101"},
		{spatial.Node{ID: "R2", Building: "AB1"}, "R2"},
	} {
		if got := RoomNumber(tt.node); got != tt.want {
			t.Errorf("RoomNumber(%+v) = %q, want %q", tt.node, got, tt.want)
		}
	}
}

func TestRegistry(t *testing.T) {
	a, _ := New("beta", "", spatial.Nodes{{ID: "x", Building: "B", Type: spatial.Room}})
	b, _ := New("alpha", "", spatial.Nodes{{ID: "y", Building: "B", Type: spatial.Room}})

	reg, err := NewRegistry(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"alpha", "beta"}, reg.Names()); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	if got, err := reg.Get("beta"); err != nil || got != a {
		t.Errorf("Get(beta) = %v, %v", got, err)
	}
	if _, err := reg.Get("gamma"); !errors.Is(err, ErrUnknownLayout) {
		t.Errorf("expected ErrUnknownLayout, got %v", err)
	}
	if err := reg.Add(a); err == nil {
		t.Error("expected duplicate name error")
	}
	if reg.Len() != 2 {
		t.Errorf("Len = %d", reg.Len())
	}

	var visited []string
	reg.Each(func(l *Layout) bool {
		visited = append(visited, l.Name)
		return false
	})
	if diff := cmp.Diff([]string{"alpha"}, visited); diff != "" {
		t.Errorf("Each should stop early (-want +got):\n%s", diff)
	}
}

func TestCheck(t *testing.T) {
	l, err := New("site", "", spatial.Nodes{
		{ID: "B2-J", X: 0, Y: 0, Building: "B2", Type: spatial.Junction},
		{ID: "B1-J", X: 0, Y: 0, Building: "B1", Type: spatial.Junction},
		{ID: "B1-R1", X: 50, Y: 0, Building: "B1", Type: spatial.Room},
		{ID: "B1-R2", X: 1000, Y: 0, Building: "B1", Type: spatial.Room},
		{ID: "B1-1-J", X: 0, Y: 0, Floor: 1, Building: "B1", Type: spatial.Junction},
		{ID: "B1-1-R", X: 10, Y: 0, Floor: 1, Building: "B1", Type: spatial.Room},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []FloorReport{
		{Building: "B1", Floor: 0, Nodes: 3, Edges: 1, Components: 2, Isolated: []string{"B1-R2"}, Stranded: []string{"B1-R2"}},
		{Building: "B1", Floor: 1, Nodes: 2, Edges: 1, Components: 1, Isolated: []string{}, Stranded: []string{}},
		{Building: "B2", Floor: 0, Nodes: 1, Edges: 0, Components: 1, Isolated: []string{"B2-J"}, Stranded: []string{}},
	}
	got := l.Check(engine.New(engine.DefaultOptions()))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("reports (-want +got):\n%s", diff)
	}
	if got[0].Healthy() || !got[1].Healthy() {
		t.Error("unexpected health flags")
	}
}

func TestCheckCampusIsHealthy(t *testing.T) {
	l, err := File{Name: "campus", Campus: func() *CampusSpec { c := DefaultCampus(); return &c }()}.Build()
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range l.Check(engine.New(engine.DefaultOptions())) {
		if !r.Healthy() || r.Components != 1 {
			t.Errorf("%s floor %d: %+v", r.Building, r.Floor, r)
		}
	}
}
