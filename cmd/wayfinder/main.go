// Command wayfinder serves and queries indoor routes over building layouts.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
