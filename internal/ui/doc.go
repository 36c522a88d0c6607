// Package ui provides terminal output components for the uistate-sample CLI.
//
// This package uses Lipgloss (and Bubble Tea for RenderOnce) to render the
// headless "run" command's output. Unlike the interactive TUI, these
// components follow a "run once and exit" pattern: they render output but
// don't require user interaction.
//
// # Architecture
//
//   - Header: banner showing the screen being run and its parameters
//   - Transcript: one line per state transition, coloured by phase
//   - Result: success/failure boxes summarising the final state
//   - Confirm: a yes/no prompt for destructive CLI actions
//
// Example:
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader("Load a list", "uistate-sample run items", params)
//
//	tr := ui.NewTranscript(p)
//	screen.Watch(func() { tr.Line(screen.Kind(), screen.Status()) })
//
//	p.PrintSuccess("Screen settled", map[string]string{"State": screen.Status()})
//
// # Logging Integration
//
// This package expects logging to be controlled via the UISTATE_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, so the
// transcript is the only output.
package ui
