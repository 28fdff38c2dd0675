// Package cli implements the mapai command-line interface using Cobra.
// Each subcommand maps to one daemon capability (serve, detect, regions,
// sessions).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mapai",
	Short: "mapai — DRC province map and chat daemon",
	Long: `mapai serves an interactive map of the DR Congo provinces backed by
a region-aware chat assistant. Free-text province mentions in chat are
resolved against the official 26-province list and drive the map focus.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
