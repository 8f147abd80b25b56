package main

import (
	"encoding/json"
	"fmt"

	"github.com/sanonone/wayfinder/pkg/engine"
	"github.com/spf13/cobra"
)

var (
	routePreference string
	routeJSON       bool
)

var routeCmd = &cobra.Command{
	Use:   "route START DEST",
	Short: "Plan one route and print its directions",
	Long: `Plan a route between two node ids of a layout and print the path
followed by the numbered instructions.

Examples:
  wayfinder route AB1-101 AB1-205
  wayfinder route AB1-101 AB2-310 --preference stairs --site campus --json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pref, err := engine.ParsePreference(routePreference)
		if err != nil {
			return err
		}
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		l, err := a.site()
		if err != nil {
			return err
		}

		res, err := a.engine.Route(l.Nodes, engine.RouteRequest{StartID: args[0], DestID: args[1], Preference: pref})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if routeJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		fmt.Fprintf(out, "Route (%s): %v\n", res.Strategy, res.Path)
		if res.Incomplete() {
			fmt.Fprintf(out, "Warning: approximate route, missing %v\n", res.Omitted)
		}
		for i, step := range res.Instructions {
			fmt.Fprintf(out, "%2d. %s\n", i+1, step)
		}
		return nil
	},
}

func init() {
	routeCmd.Flags().StringVar(&routePreference, "preference", "auto",
		"Vertical transport preference: auto, stairs, elevator")
	routeCmd.Flags().BoolVar(&routeJSON, "json", false,
		"Output the full result as JSON")
}
