package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sanonone/wayfinder/pkg/spatial"
)

func TestBuildAdjacencyRules(t *testing.T) {
	tests := []struct {
		name string
		a, b spatial.Node
		want bool
	}{
		{
			name: "room to junction within 2T",
			a:    spatial.Node{ID: "r", Type: spatial.Room, Building: "B"},
			b:    spatial.Node{ID: "j", Type: spatial.Junction, Building: "B", X: 190},
			want: true,
		},
		{
			name: "room to junction beyond 2T",
			a:    spatial.Node{ID: "r", Type: spatial.Room, Building: "B"},
			b:    spatial.Node{ID: "j", Type: spatial.Junction, Building: "B", X: 201},
			want: false,
		},
		{
			name: "room to corridor within 1.5T",
			a:    spatial.Node{ID: "r", Type: spatial.Room, Building: "B"},
			b:    spatial.Node{ID: "c", Type: spatial.Corridor, Building: "B", Y: 150},
			want: true,
		},
		{
			name: "room to corridor beyond 1.5T",
			a:    spatial.Node{ID: "r", Type: spatial.Room, Building: "B"},
			b:    spatial.Node{ID: "c", Type: spatial.Corridor, Building: "B", Y: 160},
			want: false,
		},
		{
			name: "junction threshold wins over corridor",
			a:    spatial.Node{ID: "c", Type: spatial.Corridor, Building: "B"},
			b:    spatial.Node{ID: "j", Type: spatial.Junction, Building: "B", X: 180},
			want: true,
		},
		{
			name: "rooms never connect directly",
			a:    spatial.Node{ID: "r1", Type: spatial.Room, Building: "B"},
			b:    spatial.Node{ID: "r2", Type: spatial.Room, Building: "B", X: 1},
			want: false,
		},
		{
			name: "stairs reach any junction",
			a:    spatial.Node{ID: "s", Type: spatial.Stairs, Building: "B"},
			b:    spatial.Node{ID: "j", Type: spatial.Junction, Building: "B", X: 10000},
			want: true,
		},
		{
			name: "elevator reaches any corridor",
			a:    spatial.Node{ID: "c", Type: spatial.Corridor, Building: "B", Y: 5000},
			b:    spatial.Node{ID: "e", Type: spatial.Elevator, Building: "B"},
			want: true,
		},
		{
			name: "stairs do not reach rooms",
			a:    spatial.Node{ID: "s", Type: spatial.Stairs, Building: "B"},
			b:    spatial.Node{ID: "r", Type: spatial.Room, Building: "B", X: 1},
			want: false,
		},
		{
			name: "different buildings never connect",
			a:    spatial.Node{ID: "j1", Type: spatial.Junction, Building: "B"},
			b:    spatial.Node{ID: "j2", Type: spatial.Junction, Building: "C", X: 1},
			want: false,
		},
		{
			name: "stairs across buildings do not connect",
			a:    spatial.Node{ID: "s", Type: spatial.Stairs, Building: "B"},
			b:    spatial.Node{ID: "j", Type: spatial.Junction, Building: "C"},
			want: false,
		},
		{
			name: "lobby is isolated",
			a:    spatial.Node{ID: "l", Type: spatial.Lobby, Building: "B"},
			b:    spatial.Node{ID: "j", Type: spatial.Junction, Building: "B", X: 1},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := BuildAdjacency(spatial.Nodes{tt.a, tt.b}, 0)
			if got := g.Adjacent(tt.a.ID, tt.b.ID); got != tt.want {
				t.Errorf("Adjacent(%s, %s) = %v, want %v", tt.a.ID, tt.b.ID, got, tt.want)
			}
			if g.Adjacent(tt.a.ID, tt.b.ID) != g.Adjacent(tt.b.ID, tt.a.ID) {
				t.Error("adjacency must be symmetric")
			}
		})
	}
}

func TestBuildAdjacencyFloorScope(t *testing.T) {
	nodes := spatial.Nodes{
		{ID: "j0", Type: spatial.Junction, Building: "B", Floor: 0},
		{ID: "r0", Type: spatial.Room, Building: "B", Floor: 0, X: 10},
		{ID: "j1", Type: spatial.Junction, Building: "B", Floor: 1},
		{ID: "l0", Type: spatial.Lobby, Building: "B", Floor: 0, X: 5000},
	}

	g := BuildAdjacency(nodes, 0)
	if diff := cmp.Diff([]string{"j0", "r0", "l0"}, g.IDs()); diff != "" {
		t.Errorf("vertex order mismatch (-want +got):\n%s", diff)
	}
	if g.Has("j1") {
		t.Error("floor 1 node leaked into floor 0 graph")
	}
	if len(g.Neighbors("l0")) != 0 {
		t.Errorf("lobby should be isolated, got %v", g.Neighbors("l0"))
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
}

func TestCustomThreshold(t *testing.T) {
	nodes := spatial.Nodes{
		{ID: "r", Type: spatial.Room, Building: "B"},
		{ID: "j", Type: spatial.Junction, Building: "B", X: 30},
	}
	eng := New(Options{Threshold: 10})
	if eng.BuildAdjacency(nodes, 0).Adjacent("r", "j") {
		t.Error("30 units exceeds 2*10 and must not connect")
	}
	if New(Options{}).Threshold() != DefaultThreshold {
		t.Error("zero threshold should select the default")
	}
}
