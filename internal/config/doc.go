// Package config provides user configuration management for uistate-sample.
//
// This package manages a YAML-based configuration file that controls how the
// mock backend behaves (latency, page sizes, failing operations) and a few
// application preferences. The configuration follows OS-specific conventions
// for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/uistate/config.yaml or $HOME/.config/uistate/config.yaml
//   - macOS: $HOME/.config/uistate/config.yaml
//   - Windows: %LOCALAPPDATA%\uistate\config.yaml
//
// Saved drafts of editing screens live beside it (see package savedstate).
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Make every nickname save fail until switched back
//	registry.Backend.SetFailing(backend.OpUpdateNickname, true)
//
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
//	opts, err := registry.Backend.MockOptions()
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
