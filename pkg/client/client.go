// Package client provides a Go client for the Wayfinder HTTP API.
//
// It covers route planning (single and batch), layout introspection, room
// number suggestions and connectivity reports. The client handles JSON
// encoding and decoding, bearer authentication and standardized error
// handling: any status >= 400 is returned as an *APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sanonone/wayfinder/pkg/engine"
	"github.com/sanonone/wayfinder/pkg/layout"
	"github.com/sanonone/wayfinder/pkg/spatial"
)

// --- Custom Errors ---

// APIError represents an error returned by the Wayfinder API (status >= 400).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// --- JSON Response Structs ---

// Route is a planned route with its directions.
type Route struct {
	Path         []string        `json:"path"`
	Instructions []string        `json:"instructions"`
	Waypoints    []string        `json:"waypoints"`
	Strategy     engine.Strategy `json:"strategy"`
	Omitted      []string        `json:"omitted,omitempty"`
	Transport    *spatial.Node   `json:"transport,omitempty"`
}

// BatchResult is one entry of a batch response. Error is empty on success.
type BatchResult struct {
	StartID string `json:"start_id"`
	DestID  string `json:"dest_id"`
	Route   *Route `json:"route,omitempty"`
	Error   string `json:"error,omitempty"`
}

// LayoutInfo summarizes a layout registered on the server.
type LayoutInfo struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Nodes       int                      `json:"nodes"`
	Floors      []int                    `json:"floors"`
	Buildings   []string                 `json:"buildings"`
	Types       map[spatial.NodeType]int `json:"types"`
}

// Suggestion is a room matching a number prefix.
type Suggestion struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Floor  int    `json:"floor"`
}

// CheckReport is the connectivity report of a layout.
type CheckReport struct {
	Layout  string               `json:"layout"`
	Healthy bool                 `json:"healthy"`
	Floors  []layout.FloorReport `json:"floors"`
}

// NodeFilter narrows a node listing. Zero values do not filter.
type NodeFilter struct {
	Floor    *int
	Building string
	Type     spatial.NodeType
}

// --- Client ---

// Client is the Go client for interacting with Wayfinder.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for baseURL (e.g. "http://localhost:9191"). An empty
// token disables the Authorization header.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// jsonRequest executes a request against the API and decodes the response
// into out when out is non-nil.
func (c *Client) jsonRequest(ctx context.Context, method, endpoint string, payload, out any) error {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal JSON payload: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		if json.Unmarshal(respBody, &errResp) == nil && errResp["error"] != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp["error"]}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Health checks the unauthenticated liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.jsonRequest(ctx, http.MethodGet, "/healthz", nil, nil)
}

// Route plans one route in the named layout.
func (c *Client) Route(ctx context.Context, layoutName string, req engine.RouteRequest) (*Route, error) {
	payload := struct {
		Layout string `json:"layout"`
		engine.RouteRequest
	}{layoutName, req}

	var route Route
	if err := c.jsonRequest(ctx, http.MethodPost, "/route", payload, &route); err != nil {
		return nil, err
	}
	return &route, nil
}

// RouteBatch plans several routes in one call. Results keep the request order.
func (c *Client) RouteBatch(ctx context.Context, layoutName string, reqs []engine.RouteRequest) ([]BatchResult, error) {
	payload := map[string]any{"layout": layoutName, "routes": reqs}

	var resp struct {
		Results []BatchResult `json:"results"`
	}
	if err := c.jsonRequest(ctx, http.MethodPost, "/routes", payload, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Layouts lists the layouts registered on the server, ordered by name.
func (c *Client) Layouts(ctx context.Context) ([]LayoutInfo, error) {
	var resp struct {
		Layouts []LayoutInfo `json:"layouts"`
	}
	if err := c.jsonRequest(ctx, http.MethodGet, "/layouts", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Layouts, nil
}

// Nodes lists the nodes of a layout.
func (c *Client) Nodes(ctx context.Context, layoutName string, filter NodeFilter) (spatial.Nodes, error) {
	q := url.Values{}
	if filter.Floor != nil {
		q.Set("floor", strconv.Itoa(*filter.Floor))
	}
	if filter.Building != "" {
		q.Set("building", filter.Building)
	}
	if filter.Type != "" {
		q.Set("type", string(filter.Type))
	}

	endpoint := "/layouts/" + url.PathEscape(layoutName) + "/nodes"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var resp struct {
		Nodes spatial.Nodes `json:"nodes"`
	}
	if err := c.jsonRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Nodes, nil
}

// Suggest returns rooms of building whose number starts with prefix. A limit
// of zero uses the server default.
func (c *Client) Suggest(ctx context.Context, layoutName, building, prefix string, limit int) ([]Suggestion, error) {
	q := url.Values{}
	q.Set("building", building)
	q.Set("prefix", prefix)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var resp struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	endpoint := "/layouts/" + url.PathEscape(layoutName) + "/suggest?" + q.Encode()
	if err := c.jsonRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// Check fetches the connectivity report of a layout.
func (c *Client) Check(ctx context.Context, layoutName string) (*CheckReport, error) {
	var report CheckReport
	if err := c.jsonRequest(ctx, http.MethodGet, "/layouts/"+url.PathEscape(layoutName)+"/check", nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
