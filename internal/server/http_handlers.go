package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sanonone/wayfinder/pkg/engine"
	"github.com/sanonone/wayfinder/pkg/layout"
	"github.com/sanonone/wayfinder/pkg/metrics"
	"github.com/sanonone/wayfinder/pkg/spatial"
)

// maxBodyBytes bounds request bodies; a full batch stays well below it.
const maxBodyBytes = 1 << 20

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeHTTPResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Routing ---

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	l, err := s.Layouts.Get(req.Layout)
	if err != nil {
		s.writeRouteError(w, err)
		return
	}

	res, err := s.Engine.Route(l.Nodes, req.RouteRequest)
	if err != nil {
		s.writeRouteError(w, err)
		return
	}
	observeRoute(res)
	s.writeHTTPResponse(w, http.StatusOK, newRouteResponse(res))
}

func (s *Server) handleRouteBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRouteRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if len(req.Routes) > s.maxBatch {
		metrics.RouteErrorsTotal.WithLabelValues("invalid_request").Inc()
		s.writeHTTPError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("batch of %d routes exceeds the limit of %d", len(req.Routes), s.maxBatch))
		return
	}

	l, err := s.Layouts.Get(req.Layout)
	if err != nil {
		s.writeRouteError(w, err)
		return
	}

	items := s.Engine.RouteBatch(r.Context(), l.Nodes, req.Routes, 0)
	resp := BatchRouteResponse{Results: make([]BatchRouteItem, len(items))}
	for i, it := range items {
		resp.Results[i] = BatchRouteItem{StartID: it.Request.StartID, DestID: it.Request.DestID}
		if it.Err != nil {
			metrics.RouteErrorsTotal.WithLabelValues(errorReason(it.Err)).Inc()
			resp.Results[i].Error = it.Err.Error()
			continue
		}
		observeRoute(*it.Result)
		route := newRouteResponse(*it.Result)
		resp.Results[i].Route = &route
	}
	s.writeHTTPResponse(w, http.StatusOK, resp)
}

func observeRoute(res engine.RouteResult) {
	metrics.RoutesTotal.WithLabelValues(string(res.Strategy)).Inc()
	metrics.RoutePathLength.Observe(float64(len(res.Path)))
}

// --- Layouts ---

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	resp := LayoutsResponse{Layouts: []LayoutInfo{}}
	s.Layouts.Each(func(l *layout.Layout) bool {
		resp.Layouts = append(resp.Layouts, newLayoutInfo(l))
		return true
	})
	s.writeHTTPResponse(w, http.StatusOK, resp)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	l, ok := s.layoutFromPath(w, r)
	if !ok {
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, newLayoutInfo(l))
}

// handleLayoutNodes lists nodes, optionally filtered by floor, building and type.
func (s *Server) handleLayoutNodes(w http.ResponseWriter, r *http.Request) {
	l, ok := s.layoutFromPath(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	nodes := l.Nodes
	if v := q.Get("floor"); v != "" {
		floor, err := strconv.Atoi(v)
		if err != nil {
			s.writeHTTPError(w, http.StatusBadRequest, "floor must be an integer")
			return
		}
		nodes = nodes.OnFloor(floor)
	}
	var typ spatial.NodeType
	if v := q.Get("type"); v != "" {
		t, err := spatial.ParseNodeType(v)
		if err != nil {
			s.writeHTTPError(w, http.StatusBadRequest, err.Error())
			return
		}
		typ = t
	}
	building := q.Get("building")

	out := spatial.Nodes{}
	for _, n := range nodes {
		if building != "" && n.Building != building {
			continue
		}
		if typ != "" && n.Type != typ {
			continue
		}
		out = append(out, n)
	}
	s.writeHTTPResponse(w, http.StatusOK, NodesResponse{Layout: l.Name, Nodes: out})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	l, ok := s.layoutFromPath(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	if q.Get("building") == "" {
		s.writeHTTPError(w, http.StatusBadRequest, "building is required")
		return
	}
	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeHTTPError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	resp := SuggestResponse{Suggestions: []Suggestion{}}
	for _, n := range l.Suggest(q.Get("building"), q.Get("prefix"), limit) {
		resp.Suggestions = append(resp.Suggestions, Suggestion{ID: n.ID, Number: layout.RoomNumber(n), Floor: n.Floor})
	}
	s.writeHTTPResponse(w, http.StatusOK, resp)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	l, ok := s.layoutFromPath(w, r)
	if !ok {
		return
	}

	resp := CheckResponse{Layout: l.Name, Healthy: true, Floors: l.Check(s.Engine)}
	for _, f := range resp.Floors {
		if !f.Healthy() {
			resp.Healthy = false
			break
		}
	}
	s.writeHTTPResponse(w, http.StatusOK, resp)
}

func (s *Server) layoutFromPath(w http.ResponseWriter, r *http.Request) (*layout.Layout, bool) {
	l, err := s.Layouts.Get(r.PathValue("name"))
	if err != nil {
		s.writeHTTPError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return l, true
}

// --- Helpers for HTTP Responses ---

// decodeRequest parses and validates a JSON body. It writes the error response
// itself and reports whether the handler should continue.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, engine.ErrInvalidPreference) {
			metrics.RouteErrorsTotal.WithLabelValues("invalid_request").Inc()
			s.writeHTTPError(w, http.StatusUnprocessableEntity, err.Error())
			return false
		}
		metrics.RouteErrorsTotal.WithLabelValues("bad_json").Inc()
		s.writeHTTPError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	if err := validate.Struct(dst); err != nil {
		metrics.RouteErrorsTotal.WithLabelValues("invalid_request").Inc()
		s.writeHTTPError(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

func (s *Server) writeRouteError(w http.ResponseWriter, err error) {
	metrics.RouteErrorsTotal.WithLabelValues(errorReason(err)).Inc()
	switch {
	case errors.Is(err, engine.ErrNodeNotFound), errors.Is(err, layout.ErrUnknownLayout):
		s.writeHTTPError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrInvalidPreference):
		s.writeHTTPError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.writeHTTPError(w, http.StatusInternalServerError, err.Error())
	}
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, engine.ErrNodeNotFound):
		return "node_not_found"
	case errors.Is(err, layout.ErrUnknownLayout):
		return "unknown_layout"
	case errors.Is(err, engine.ErrInvalidPreference):
		return "invalid_request"
	default:
		return "internal"
	}
}

func (s *Server) writeHTTPResponse(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeHTTPError(w http.ResponseWriter, statusCode int, message string) {
	s.writeHTTPResponse(w, statusCode, map[string]string{"error": message})
}
