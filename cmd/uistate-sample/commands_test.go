package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/uistate/internal/backend"
	"github.com/muurk/uistate/internal/config"
	"github.com/muurk/uistate/internal/screens"
)

// newFlagCmd returns a command carrying the backend flags, with the
// package-level flag values reset.
func newFlagCmd(t *testing.T) *cobra.Command {
	t.Helper()
	t.Cleanup(func() {
		configPath, orderID = "", ""
		failOps = nil
		noDrafts = false
	})
	cmd := &cobra.Command{Use: "test"}
	addBackendFlags(cmd)
	return cmd
}

func writeConfig(t *testing.T, mutate func(*config.Registry)) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	r := config.NewRegistry()
	if mutate != nil {
		mutate(r)
	}
	if err := r.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	return path
}

func TestLoadSettings_FromFile(t *testing.T) {
	cmd := newFlagCmd(t)
	configPath = writeConfig(t, func(r *config.Registry) {
		r.Backend.Delay = 250 * time.Millisecond
		r.Backend.SetFailing(backend.OpFetchOrder, true)
		r.Preferences.OrderID = "order-42"
	})

	s, err := loadSettings(cmd)
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}
	if s.mockOpts.Delay != 250*time.Millisecond {
		t.Errorf("Delay = %s, want 250ms", s.mockOpts.Delay)
	}
	if !s.mockOpts.Fail[backend.OpFetchOrder] {
		t.Error("fetch_order not failing")
	}
	if s.orderID != "order-42" {
		t.Errorf("orderID = %q, want order-42", s.orderID)
	}
	if !s.drafts {
		t.Error("drafts = false, want the default true")
	}
}

func TestLoadSettings_FlagsOverrideFile(t *testing.T) {
	cmd := newFlagCmd(t)
	configPath = writeConfig(t, func(r *config.Registry) {
		r.Backend.Pages = 4
	})

	for name, value := range map[string]string{
		"delay":     "0s",
		"pages":     "2",
		"fail":      "add_note,update_setting",
		"order-id":  "order-9",
		"no-drafts": "true",
	} {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("Set(%s) error = %v", name, err)
		}
	}

	s, err := loadSettings(cmd)
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}
	if s.mockOpts.Delay != 0 {
		t.Errorf("Delay = %s, want 0", s.mockOpts.Delay)
	}
	if s.mockOpts.Pages != 2 {
		t.Errorf("Pages = %d, want 2", s.mockOpts.Pages)
	}
	if !s.mockOpts.Fail[backend.OpAddNote] || !s.mockOpts.Fail[backend.OpUpdateSetting] {
		t.Errorf("Fail = %v, want add_note and update_setting", s.mockOpts.Fail)
	}
	if s.orderID != "order-9" {
		t.Errorf("orderID = %q, want order-9", s.orderID)
	}
	if s.drafts {
		t.Error("drafts = true with --no-drafts")
	}
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		flag  string
		value string
	}{
		{name: "unknown operation", flag: "fail", value: "explode"},
		{name: "negative delay", flag: "delay", value: "-1s"},
		{name: "negative pages", flag: "pages", value: "-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newFlagCmd(t)
			configPath = writeConfig(t, nil)
			if err := cmd.Flags().Set(tt.flag, tt.value); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if _, err := loadSettings(cmd); err == nil {
				t.Error("loadSettings() error = nil")
			}
		})
	}
}

func TestParseScreen(t *testing.T) {
	if kind, err := parseScreen(nil); err != nil || kind != "" {
		t.Errorf("parseScreen(nil) = %q, %v", kind, err)
	}
	if kind, err := parseScreen([]string{"nickname2"}); err != nil || kind != screens.KindNickname2 {
		t.Errorf("parseScreen(nickname2) = %q, %v", kind, err)
	}
	if _, err := parseScreen([]string{"menu"}); err == nil {
		t.Error("parseScreen(menu) error = nil")
	}
}
