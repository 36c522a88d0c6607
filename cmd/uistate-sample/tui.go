package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/uistate/internal/logging"
	"github.com/muurk/uistate/internal/tui"
	"github.com/muurk/uistate/internal/ui"
)

// tuiCmd implements the 'tui' command
var tuiCmd = &cobra.Command{
	Use:   "tui [screen]",
	Short: "Launch the interactive app",
	Long: `Launch the interactive app, optionally opening one screen directly.

Screens: ` + screenNames() + `

Inside the app, ctrl+f switches every backend operation between failing
and succeeding. Unsaved editor text is kept across runs unless drafts are
disabled.`,
	Example: `  # Open the menu
  uistate-sample tui

  # Open the inline nickname editor with a slow backend
  uistate-sample tui nickname2 --delay 3s

  # Log to a file while the app runs
  uistate-sample tui --log-level debug --log-file /tmp/uistate.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	addBackendFlags(tuiCmd)
	addBackendFlags(rootCmd)
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	start, err := parseScreen(args)
	if err != nil {
		return err
	}

	// Suppress usage on execution errors (we're past argument parsing)
	cmd.SilenceUsage = true

	s, err := loadSettings(cmd)
	if err != nil {
		ui.PrintFailure("Invalid configuration", err, []string{
			"Check the config file: uistate-sample config show",
			"Recreate it: uistate-sample config init --force",
		})
		return err
	}

	// Logs written to stdout would draw over the app
	level := logLevel
	if level == "" {
		level = s.registry.Preferences.LogLevel
	}
	if level == "" {
		level = os.Getenv(logging.LogLevelEnvVar)
	}
	if level != "" && logFile == "" && s.registry.Preferences.LogFile == "" {
		err := fmt.Errorf("logging needs a file while the app runs")
		ui.PrintFailure("Cannot start", err, []string{
			"Add --log-file /path/to/file",
			"Or set preferences.log_file in the config file",
		})
		return err
	}
	if err := initLogging(s); err != nil {
		return err
	}
	defer logging.Sync()

	mock, svc := newBackend(s)
	cfg := tui.Config{
		Service: svc,
		Mock:    mock,
		Drafts:  openDrafts(s),
		Logger:  logging.Named("tui"),
		OrderID: s.orderID,
		Start:   start,
	}

	logging.Info("app starting",
		zap.Stringer("screen", start),
		zap.Duration("delay", s.mockOpts.Delay),
		zap.Bool("drafts", s.drafts),
	)
	if err := tui.Run(context.Background(), cfg); err != nil {
		return fmt.Errorf("app failed: %w", err)
	}
	return nil
}
