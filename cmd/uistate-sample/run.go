package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/uistate/internal/logging"
	"github.com/muurk/uistate/internal/runner"
	"github.com/muurk/uistate/internal/screens"
	"github.com/muurk/uistate/internal/ui"
)

// runCmd implements the 'run' command
var runCmd = &cobra.Command{
	Use:   "run <screen>",
	Short: "Run one screen headless and print its transitions",
	Long: `Open one screen without the interactive app, perform its action and
print every state it passes through.

Screens: ` + screenNames() + `

Actions:
  items       load the list
  paging      load the first page, then --next further pages
  order       load the order, then cancel it
  settings    load the settings, then apply every --toggle at once
  note        submit --text, or the saved draft
  nickname    load, then submit --text (nickname2 keeps the draft inline)

Exits non-zero when any step fails.`,
	Example: `  # Load the list with a failing backend
  uistate-sample run items --fail fetch_items

  # Load three further pages with no latency
  uistate-sample run paging --next 3 --delay 0 --pages 5

  # Overlapping optimistic toggles where the backend rejects them
  uistate-sample run settings --toggle 1=false --toggle 2=true --fail update_setting

  # Save a nickname
  uistate-sample run nickname --text "Ada"`,
	Args: cobra.ExactArgs(1),
	RunE: runScreen,
}

func init() {
	addBackendFlags(runCmd)
	runCmd.Flags().StringArrayVar(&toggles, "toggle", nil, "Setting to change on the settings screen, id=true|false (repeatable)")
	runCmd.Flags().StringVar(&editText, "text", "", "Text typed into an editor before submitting")
	runCmd.Flags().IntVar(&nextPages, "next", 1, "Further pages to request on the paging screen")
	rootCmd.AddCommand(runCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	kind, err := parseScreen(args)
	if err != nil {
		return err
	}

	script := runner.Script{Screen: kind, Text: editText, Next: nextPages}
	for _, arg := range toggles {
		t, err := runner.ParseToggle(arg)
		if err != nil {
			return err
		}
		script.Toggles = append(script.Toggles, t)
	}
	if nextPages < 0 {
		return fmt.Errorf("--next must not be negative")
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
	if err := initLogging(s); err != nil {
		return err
	}
	defer logging.Sync()

	script.OrderID = s.orderID

	params := map[string]string{
		"Screen": kind.Title(),
		"Delay":  s.mockOpts.Delay.String(),
	}
	if failing := s.registry.Backend.FailingOps(); len(failing) > 0 {
		params["Failing"] = fmt.Sprint(failing)
	}
	switch kind {
	case screens.KindPaging:
		params["Next pages"] = strconv.Itoa(nextPages)
	case screens.KindOrder:
		params["Order"] = string(s.orderID)
	case screens.KindSettings:
		params["Toggles"] = fmt.Sprint(script.Toggles)
	}
	ui.PrintCommandHeader("Headless Run", "uistate-sample run "+kind.String(), params)

	drafts := openDrafts(s)
	if restored, ok := drafts.Load(string(kind)); ok {
		script.Restored = restored
		logging.Debug("restored draft", zap.Stringer("screen", kind), zap.Stringer("draft", restored))
	}

	out := ui.NewPrinter(os.Stdout)
	transcript := ui.NewTranscript(out)
	_, svc := newBackend(s)
	r := runner.New(svc, logging.Named("runner")).
		OnTransition(func(kind screens.Kind, status string) {
			transcript.Line(kind, status)
		})

	res, err := r.Run(context.Background(), script)
	if err != nil {
		ui.PrintFailure("Run failed", err, nil)
		return err
	}

	switch {
	case res.Finished:
		drafts.Delete(string(kind))
	case res.Draft != nil:
		drafts.Save(string(kind), res.Draft)
		transcript.Note("unsaved text kept for the next run")
	}
	if err := drafts.Flush(); err != nil {
		logging.Warn("failed to save drafts", zap.Error(err))
	}

	details := map[string]string{
		"Final state": res.Final,
		"Duration":    res.Duration.Round(time.Millisecond).String(),
	}
	for i, step := range res.Steps {
		details[fmt.Sprintf("Step %02d", i+1)] = fmt.Sprintf("%s: %s (%s)", step.Name, step.Status, step.Message)
	}

	if !res.Success {
		failed := res.Failed()
		err := fmt.Errorf("%s failed: %s", failed[0].Name, failed[0].Message)
		ui.PrintFailure(kind.Title()+" run failed", err, []string{
			"Retry without --fail, or check backend.fail in the config file",
			"Walk through the retry path interactively: uistate-sample tui " + kind.String(),
		})
		return err
	}

	ui.PrintSuccess(kind.Title()+" run complete", details)
	return nil
}
