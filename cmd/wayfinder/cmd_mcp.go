package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	wfmcp "github.com/sanonone/wayfinder/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the routing tools over MCP on stdio",
	Long: `Expose find_route, list_layouts, suggest_rooms and check_layout as Model
Context Protocol tools on stdin/stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		slog.Info("MCP server starting on stdio", "layouts", a.layouts.Names())
		return wfmcp.NewMCPServer(a.engine, a.layouts).Run(ctx, &mcp.StdioTransport{})
	},
}
