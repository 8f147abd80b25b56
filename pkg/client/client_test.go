package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sanonone/wayfinder/internal/server"
	"github.com/sanonone/wayfinder/pkg/engine"
	"github.com/sanonone/wayfinder/pkg/layout"
	"github.com/sanonone/wayfinder/pkg/spatial"
)

func startServer(t *testing.T, token string) *httptest.Server {
	t.Helper()
	campus, err := layout.New("campus", "demo", layout.GenerateCampus(layout.CampusSpec{
		Buildings:     []layout.BuildingOffset{{Building: "AB1"}},
		Floors:        []int{0, 1, 2},
		RoomsPerFloor: 10,
		Junctions:     true,
	}))
	if err != nil {
		t.Fatal(err)
	}
	reg, err := layout.NewRegistry(campus)
	if err != nil {
		t.Fatal(err)
	}

	cfg := server.DefaultConfig()
	cfg.AuthToken = token
	s, err := server.NewServer(engine.New(engine.DefaultOptions()), reg, cfg)
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestClient(t *testing.T) {
	ts := startServer(t, "s3cret")
	c := New(ts.URL+"/", "s3cret")
	ctx := context.Background()

	t.Run("health", func(t *testing.T) {
		if err := c.Health(ctx); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("layouts", func(t *testing.T) {
		layouts, err := c.Layouts(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(layouts) != 1 || layouts[0].Name != "campus" || layouts[0].Types[spatial.Room] != 30 {
			t.Errorf("unexpected layouts %+v", layouts)
		}
	})

	t.Run("route", func(t *testing.T) {
		route, err := c.Route(ctx, "campus", engine.RouteRequest{StartID: "AB1-004", DestID: "AB1-208"})
		if err != nil {
			t.Fatal(err)
		}
		if route.Strategy != engine.StrategyCrossFloor || route.Transport == nil || route.Transport.Type != spatial.Elevator {
			t.Errorf("unexpected route %+v", route)
		}
		if diff := cmp.Diff([]string{"AB1-004", "AB1-208"}, route.Waypoints); diff != "" {
			t.Errorf("waypoints (-want +got):\n%s", diff)
		}
	})

	t.Run("batch", func(t *testing.T) {
		results, err := c.RouteBatch(ctx, "campus", []engine.RouteRequest{
			{StartID: "AB1-001", DestID: "AB1-002"},
			{StartID: "AB1-001", DestID: "ZZ-1"},
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != 2 || results[0].Route == nil || results[1].Error == "" {
			t.Errorf("unexpected results %+v", results)
		}
	})

	t.Run("nodes", func(t *testing.T) {
		floor := 1
		nodes, err := c.Nodes(ctx, "campus", NodeFilter{Floor: &floor, Type: spatial.Stairs})
		if err != nil {
			t.Fatal(err)
		}
		if len(nodes) != 1 || nodes[0].ID != "AB1-1-stairs" {
			t.Errorf("unexpected nodes %+v", nodes)
		}
	})

	t.Run("suggest", func(t *testing.T) {
		got, err := c.Suggest(ctx, "campus", "AB1", "20", 2)
		if err != nil {
			t.Fatal(err)
		}
		want := []Suggestion{{ID: "AB1-201", Number: "201", Floor: 2}, {ID: "AB1-202", Number: "202", Floor: 2}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("suggestions (-want +got):\n%s", diff)
		}
	})

	t.Run("check", func(t *testing.T) {
		report, err := c.Check(ctx, "campus")
		if err != nil {
			t.Fatal(err)
		}
		if !report.Healthy || len(report.Floors) != 3 {
			t.Errorf("unexpected report %+v", report)
		}
	})
}

func TestClientErrors(t *testing.T) {
	ts := startServer(t, "s3cret")
	ctx := context.Background()

	tests := []struct {
		name   string
		client *Client
		call   func(c *Client) error
		status int
	}{
		{"unauthorized", New(ts.URL, "wrong"), func(c *Client) error {
			_, err := c.Layouts(ctx)
			return err
		}, http.StatusUnauthorized},
		{"unknown node", New(ts.URL, "s3cret"), func(c *Client) error {
			_, err := c.Route(ctx, "campus", engine.RouteRequest{StartID: "AB1-001", DestID: "nope"})
			return err
		}, http.StatusNotFound},
		{"unknown layout", New(ts.URL, "s3cret"), func(c *Client) error {
			_, err := c.Check(ctx, "mars")
			return err
		}, http.StatusNotFound},
		{"missing dest", New(ts.URL, "s3cret"), func(c *Client) error {
			_, err := c.Route(ctx, "campus", engine.RouteRequest{StartID: "AB1-001"})
			return err
		}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call(tt.client)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.StatusCode != tt.status || apiErr.Message == "" {
				t.Errorf("got %+v, want status %d", apiErr, tt.status)
			}
		})
	}
}
