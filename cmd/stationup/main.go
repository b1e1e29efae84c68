// Stationup brings a Wi-Fi station interface online and verifies the
// connection.
//
// It configures a network on wpa_supplicant, supervises the connection
// attempt with a bounded retry budget until an IP lease is acquired or
// the budget runs out, and then issues a raw-socket HTTP GET against a
// known target, printing the response.
//
// Usage:
//
//	stationup [command] [flags]
//
// Running without arguments runs the bring-up (the "up" command).
// See 'stationup --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/stationup/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stationup",
	Short: "Wi-Fi station bring-up utility",
	Long: `Stationup brings a Wi-Fi station interface online.

It drives wpa_supplicant through its control interface, retries failed
connection attempts up to a configurable budget, waits for an IP lease,
and verifies connectivity with an HTTP probe.

If no command is specified, the bring-up runs directly.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: bring the station up when no subcommand provided
		return runUp(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stationup %s (commit: %s)\n", version.Version, version.Commit)
	},
}
