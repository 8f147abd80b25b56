package mcp

// --- Tool Arguments ---

type FindRouteArgs struct {
	Layout     string `json:"layout" jsonschema:"Name of the building layout to route in (see list_layouts)"`
	StartID    string `json:"start_id" jsonschema:"Node ID where the route starts (e.g. 'AB1-101')"`
	DestID     string `json:"dest_id" jsonschema:"Node ID of the destination (e.g. 'AB1-205')"`
	Preference string `json:"preference,omitempty" jsonschema:"Vertical transport preference: 'auto' (default), 'stairs' or 'elevator'"`
}

type FindRouteResult struct {
	Path         []string `json:"path"`
	Instructions []string `json:"instructions"`
	Waypoints    []string `json:"waypoints"`
	Strategy     string   `json:"strategy"`
	Omitted      []string `json:"omitted,omitempty"`
	// Summary is the instructions as numbered lines for the LLM.
	Summary string `json:"summary"`
}

type ListLayoutsArgs struct{}

type LayoutSummary struct {
	Name      string   `json:"name"`
	Nodes     int      `json:"nodes"`
	Floors    []int    `json:"floors"`
	Buildings []string `json:"buildings"`
}

type ListLayoutsResult struct {
	Layouts []LayoutSummary `json:"layouts"`
}

type SuggestRoomsArgs struct {
	Layout   string `json:"layout" jsonschema:"Name of the building layout"`
	Building string `json:"building" jsonschema:"Building identifier (e.g. 'AB1')"`
	Prefix   string `json:"prefix" jsonschema:"Beginning of the room number, case-insensitive (e.g. '20')"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Max number of suggestions (default 5)"`
}

type SuggestRoomsResult struct {
	Rooms []string `json:"rooms"` // Node IDs usable as start_id/dest_id
}

type CheckLayoutArgs struct {
	Layout string `json:"layout" jsonschema:"Name of the building layout"`
}

type CheckLayoutResult struct {
	Healthy bool   `json:"healthy"`
	Report  string `json:"report"` // One line per building floor
}
