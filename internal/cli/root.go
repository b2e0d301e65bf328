// Package cli implements the wraithctl command tree: operator tooling
// for inspecting and controlling the telemetry client's environment.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wraithctl",
	Short: "Operator CLI for Wraith telemetry",
	Long: "Inspects and controls the Wraith telemetry client environment:\n" +
		"daemon liveness, consent state, and test event delivery.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
