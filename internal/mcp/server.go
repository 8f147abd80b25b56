package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sanonone/wayfinder/pkg/engine"
	"github.com/sanonone/wayfinder/pkg/layout"
)

// Version is reported to MCP clients.
const Version = "0.3.0"

func NewMCPServer(eng *engine.Engine, layouts *layout.Registry) *mcp.Server {
	service := NewService(eng, layouts)

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "Wayfinder",
		Version: Version,
	}, nil)

	// Input schemas are inferred from the argument structs.

	mcp.AddTool(s, &mcp.Tool{
		Name:        "find_route",
		Description: "Compute a walking route between two rooms of a building, possibly across floors, with turn-by-turn instructions.",
	}, service.FindRoute)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_layouts",
		Description: "List the building layouts available for routing, with their floors and buildings.",
	}, service.ListLayouts)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "suggest_rooms",
		Description: "Find room IDs in a building whose room number starts with a prefix. Use it to resolve a room number to a node ID.",
	}, service.SuggestRooms)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "check_layout",
		Description: "Report rooms that are not connected to any corridor or junction in a layout.",
	}, service.CheckLayout)

	return s
}
