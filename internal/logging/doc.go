// Package logging provides structured logging for the uistate sample.
//
// This package wraps a global zap logger with convenience functions for the
// two things worth logging in this codebase: state transitions inside screen
// controllers, and calls across the backend service boundary.
//
// # Log Levels
//
//   - Debug: every state transition, task launch and stale-result drop
//   - Info: backend calls that succeeded
//   - Warn: backend calls that failed
//   - Error: configuration or persistence failures
//
// # Silent by Default
//
// The interactive TUI owns the terminal, so logging is silent unless the
// UISTATE_LOG_LEVEL environment variable (or --log-level) is set. Use
// --log-file to send output somewhere other than stdout while the TUI runs.
//
//	if err := logging.InitializeWithOutput("debug", "/tmp/uistate.log"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Component Loggers
//
// Controllers and the backend service take a *zap.Logger in their
// constructors. Pass logging.Named("screens.settings") to get a child of the
// global logger, or zap.NewNop() in tests.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
