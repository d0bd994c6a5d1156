package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hepworks/nllfit/internal/config"
	"github.com/hepworks/nllfit/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "nllfit",
	Short: "nllfit is an unbinned maximum-likelihood fitter",
	Long: `nllfit fits a bounded-support density to unbinned data and lets you
choose how evaluation errors near the support boundary are handled.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Scenario file (YAML); defaults to the built-in reference scenario")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// loadScenario resolves the scenario for a command invocation.
func loadScenario(cmd *cobra.Command) (*config.Scenario, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// newLogger builds the command logger from the verbosity flag.
func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return logging.New(level)
}
