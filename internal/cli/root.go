// Package cli implements the cubeengine command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	// Global flags
	configPath  string
	dbPath      string
	metricsAddr string
	logLevel    string
	verbose     bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubeengine",
	Short: "Layer-rotation engine for a 3x3x3 puzzle",
	Long: `cubeengine animates layer rotations of a 3x3x3 rotating-layer puzzle.

Play it from the keyboard, drive it from a GoCube over Bluetooth, or run
symbol sequences headless. Completed moves can be journaled to SQLite.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $CUBEENGINE_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Journal database path (default: ~/.cubeengine/journal.db)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
