package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/muurk/uistate/internal/backend"
	"github.com/muurk/uistate/internal/logging"
)

// CurrentVersion is the config file format version.
const CurrentVersion = 1

// Registry represents the entire user configuration file.
type Registry struct {
	Version     int          `yaml:"version"`
	Backend     *Backend     `yaml:"backend,omitempty"`
	Preferences *Preferences `yaml:"preferences,omitempty"`
}

// Backend configures the mock backend.
type Backend struct {
	Delay        time.Duration   `yaml:"delay"`           // Latency of every call
	ListSize     int             `yaml:"list_size"`       // Items returned by the plain list
	PageSize     int             `yaml:"page_size"`       // Size of a page followed by more
	LastPageSize int             `yaml:"last_page_size"`  // Size of the final page
	Pages        int             `yaml:"pages,omitempty"` // Fixed page count, 0 for random
	Fail         map[string]bool `yaml:"fail,omitempty"`  // Operations that start out failing
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	LogLevel      string `yaml:"log_level,omitempty"` // debug, info, warn or error
	LogFile       string `yaml:"log_file,omitempty"`  // Log destination while the TUI runs
	RestoreDrafts bool   `yaml:"restore_drafts"`      // Reopen editing screens with their last draft
	OrderID       string `yaml:"order_id,omitempty"`  // Order shown on the order screen
}

// DefaultBackend returns the sample app's backend behaviour.
func DefaultBackend() *Backend {
	opts := backend.DefaultMockOptions()
	return &Backend{
		Delay:        opts.Delay,
		ListSize:     opts.ListSize,
		PageSize:     opts.PageSize,
		LastPageSize: opts.LastPageSize,
		Fail:         make(map[string]bool),
	}
}

// DefaultPreferences returns the default preferences.
func DefaultPreferences() *Preferences {
	return &Preferences{
		RestoreDrafts: true,
	}
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     CurrentVersion,
		Backend:     DefaultBackend(),
		Preferences: DefaultPreferences(),
	}
}

// fillDefaults initializes sections missing from a loaded file.
func (r *Registry) fillDefaults() {
	if r.Backend == nil {
		r.Backend = DefaultBackend()
	}
	if r.Backend.Fail == nil {
		r.Backend.Fail = make(map[string]bool)
	}
	if r.Preferences == nil {
		r.Preferences = DefaultPreferences()
	}
}

// Validate checks values that would otherwise fail later at startup.
func (r *Registry) Validate() error {
	if r.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", r.Version, CurrentVersion)
	}
	if r.Backend != nil {
		if r.Backend.Delay < 0 {
			return fmt.Errorf("backend.delay must not be negative: %s", r.Backend.Delay)
		}
		if r.Backend.Pages < 0 {
			return fmt.Errorf("backend.pages must not be negative: %d", r.Backend.Pages)
		}
		for name := range r.Backend.Fail {
			if _, err := backend.ParseOp(name); err != nil {
				return fmt.Errorf("backend.fail: %w", err)
			}
		}
	}
	if r.Preferences != nil && r.Preferences.LogLevel != "" {
		if _, err := logging.ParseLevel(r.Preferences.LogLevel); err != nil {
			return fmt.Errorf("preferences.log_level: %w", err)
		}
	}
	return nil
}

// SetFailing records whether op starts out failing.
func (b *Backend) SetFailing(op backend.Op, failing bool) {
	if b.Fail == nil {
		b.Fail = make(map[string]bool)
	}
	if failing {
		b.Fail[string(op)] = true
		return
	}
	delete(b.Fail, string(op))
}

// FailingOps returns the operations configured to fail, sorted.
func (b *Backend) FailingOps() []backend.Op {
	var ops []backend.Op
	for name, failing := range b.Fail {
		if failing {
			ops = append(ops, backend.Op(name))
		}
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

// MockOptions converts the section into options for backend.NewMock.
func (b *Backend) MockOptions() (backend.MockOptions, error) {
	opts := backend.DefaultMockOptions()
	if b == nil {
		return opts, nil
	}

	opts.Delay = b.Delay
	if b.ListSize > 0 {
		opts.ListSize = b.ListSize
	}
	if b.PageSize > 0 {
		opts.PageSize = b.PageSize
	}
	if b.LastPageSize > 0 {
		opts.LastPageSize = b.LastPageSize
	}
	opts.Pages = b.Pages

	opts.Fail = make(map[backend.Op]bool)
	for name, failing := range b.Fail {
		op, err := backend.ParseOp(name)
		if err != nil {
			return backend.MockOptions{}, err
		}
		opts.Fail[op] = failing
	}
	return opts, nil
}
