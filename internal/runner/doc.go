// Package runner drives a sample screen without a terminal UI. It opens
// the screen, performs one scripted action, waits for the backend and
// reports each step the way the interactive app would have shown it.
//
// Completions run on the goroutine that called Run, so a Runner must not be
// shared between goroutines.
package runner
