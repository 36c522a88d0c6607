package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/uistate/internal/backend"
	"github.com/muurk/uistate/internal/config"
	"github.com/muurk/uistate/internal/logging"
	"github.com/muurk/uistate/internal/savedstate"
	"github.com/muurk/uistate/internal/screens"
)

// Command flags
var (
	logLevel    string
	logFile     string
	configPath  string
	versionYAML bool

	// Backend overrides shared by tui and run
	failOps  []string
	delay    time.Duration
	pages    int
	orderID  string
	noDrafts bool

	// run only
	toggles   []string
	editText  string
	nextPages int
	forceInit bool
)

// addBackendFlags registers the flags that override the config file's
// backend section.
func addBackendFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&failOps, "fail", nil, "Operations that start out failing (repeatable), e.g. fetch_items")
	cmd.Flags().DurationVar(&delay, "delay", -1, "Latency of every backend call, e.g. 200ms (default from config)")
	cmd.Flags().IntVar(&pages, "pages", -1, "Number of pages on the paging screen, 0 for random (default from config)")
	cmd.Flags().StringVar(&orderID, "order-id", "", "Order shown on the order screen")
	cmd.Flags().BoolVar(&noDrafts, "no-drafts", false, "Do not restore or save editor drafts")
}

// settings are the effective options after flags are applied to the
// config file.
type settings struct {
	registry *config.Registry
	mockOpts backend.MockOptions
	orderID  backend.OrderID
	drafts   bool
}

// loadSettings reads the config file and applies command-line overrides.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	registry, err := loadRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("delay") {
		if delay < 0 {
			return nil, fmt.Errorf("--delay must not be negative")
		}
		registry.Backend.Delay = delay
	}
	if cmd.Flags().Changed("pages") {
		if pages < 0 {
			return nil, fmt.Errorf("--pages must not be negative")
		}
		registry.Backend.Pages = pages
	}
	for _, name := range failOps {
		op, err := backend.ParseOp(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("--fail: %w", err)
		}
		registry.Backend.SetFailing(op, true)
	}

	opts, err := registry.Backend.MockOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid backend config: %w", err)
	}

	s := &settings{
		registry: registry,
		mockOpts: opts,
		orderID:  screens.DefaultOrderID,
		drafts:   registry.Preferences.RestoreDrafts && !noDrafts,
	}
	if registry.Preferences.OrderID != "" {
		s.orderID = backend.OrderID(registry.Preferences.OrderID)
	}
	if orderID != "" {
		s.orderID = backend.OrderID(orderID)
	}
	return s, nil
}

// initLogging sets up the global logger from flags, falling back to the
// config file's preferences and then UISTATE_LOG_LEVEL.
func initLogging(s *settings) error {
	level, file := logLevel, logFile
	if level == "" {
		level = s.registry.Preferences.LogLevel
	}
	if file == "" {
		file = s.registry.Preferences.LogFile
	}
	return logging.InitializeWithOutput(level, file)
}

// newBackend builds the mock backend and the service wrapping it.
func newBackend(s *settings) (*backend.Mock, *backend.Service) {
	mock := backend.NewMock(s.mockOpts)
	return mock, backend.NewService(mock, logging.Named("backend"))
}

// openDrafts returns the draft store: the state file when drafts are
// enabled, otherwise an in-memory store that is dropped on exit.
func openDrafts(s *settings) savedstate.Store {
	if !s.drafts {
		return savedstate.NewMemoryStore()
	}
	store, err := savedstate.Open()
	if err != nil {
		logging.Warn("drafts disabled, state file unavailable", zap.Error(err))
		return savedstate.NewMemoryStore()
	}
	return store
}

// parseScreen validates an optional screen argument.
func parseScreen(args []string) (screens.Kind, error) {
	if len(args) == 0 {
		return "", nil
	}
	kind, err := screens.ParseKind(args[0])
	if err != nil {
		return "", fmt.Errorf("%w (valid: %s)", err, screenNames())
	}
	return kind, nil
}

func screenNames() string {
	kinds := screens.AllKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
