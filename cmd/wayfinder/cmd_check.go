package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report layout connectivity per building floor",
	Long: `Build the navigation graph of every floor and report nodes without
neighbors and rooms that cannot reach any corridor or junction. Routes to
such rooms use the junction fallback and may not be walkable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		l, err := a.site()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		healthy := true
		for _, r := range l.Check(a.engine) {
			status := "OK"
			if !r.Healthy() {
				healthy = false
				status = "WARN"
			}
			fmt.Fprintf(out, "%-4s %s floor %d: %d nodes, %d edges, %d components\n",
				status, r.Building, r.Floor, r.Nodes, r.Edges, r.Components)
			if len(r.Isolated) > 0 {
				fmt.Fprintf(out, "     isolated: %s\n", strings.Join(r.Isolated, ", "))
			}
			if len(r.Stranded) > 0 {
				fmt.Fprintf(out, "     unreachable rooms: %s\n", strings.Join(r.Stranded, ", "))
			}
		}

		if checkStrict && !healthy {
			return fmt.Errorf("layout %q has connectivity problems", l.Name)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false,
		"Exit with an error when any floor has connectivity problems")
}
