// Uistate-sample demonstrates the UI state machines behind common mobile
// screens: a loaded list, a paginated list, an order with a cancel action,
// optimistic toggles and editors guarded by a discard prompt.
//
// Every screen talks to a mock backend with artificial latency whose
// operations can be switched to failing, so each error path can be seen.
//
// Usage:
//
//	uistate-sample [command] [flags]
//
// Running without arguments launches the interactive app.
// See 'uistate-sample --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/uistate/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "uistate-sample",
	Short: "UI state machine samples",
	Long: `Sample screens driven by small, testable state machines.

Each screen loads from a mock backend with artificial latency. Any backend
operation can be made to fail, from the config file, the --fail flag or
ctrl+f inside the app, to walk through the error and retry paths.

If no command is specified, the interactive app will launch automatically.`,
	Version: version.Version,
	Example: `  # Browse the samples
  uistate-sample

  # Open the paging sample directly with failing next pages
  uistate-sample tui paging --fail fetch_next_page

  # Run the settings sample headless, flipping two settings at once
  uistate-sample run settings --toggle 1=false --toggle 2=true

  # Write a config file to edit
  uistate-sample config init`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the app when no subcommand provided
		return runTUI(cmd, nil)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (default silent)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stdout")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the user config directory)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !versionYAML {
			fmt.Printf("uistate-sample %s\n", version.Full())
			return nil
		}
		out, err := yaml.Marshal(version.Get())
		if err != nil {
			return fmt.Errorf("failed to encode version: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionYAML, "yaml", false, "Print build details as YAML")
}
