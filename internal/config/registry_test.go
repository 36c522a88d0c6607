package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/muurk/uistate/internal/backend"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if want := filepath.Join(dir, "uistate"); configDir != want {
		t.Errorf("GetConfigDir() = %v, want %v", configDir, want)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != CurrentVersion {
		t.Errorf("NewRegistry().Version = %v, want %v", reg.Version, CurrentVersion)
	}
	if reg.Backend == nil || reg.Preferences == nil {
		t.Fatal("NewRegistry() sections should not be nil")
	}
	if reg.Backend.Delay != backend.DefaultDelay {
		t.Errorf("Backend.Delay = %v, want %v", reg.Backend.Delay, backend.DefaultDelay)
	}
	if !reg.Preferences.RestoreDrafts {
		t.Error("Preferences.RestoreDrafts should be true by default")
	}
	if err := reg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestBackendSetFailing(t *testing.T) {
	b := &Backend{}
	b.SetFailing(backend.OpUpdateSetting, true)
	b.SetFailing(backend.OpAddNote, true)
	b.SetFailing(backend.OpAddNote, false)

	ops := b.FailingOps()
	if len(ops) != 1 || ops[0] != backend.OpUpdateSetting {
		t.Errorf("FailingOps() = %v, want [update_setting]", ops)
	}
}

func TestBackendMockOptions(t *testing.T) {
	b := &Backend{
		Delay:    250 * time.Millisecond,
		PageSize: 10,
		Pages:    3,
		Fail:     map[string]bool{"cancel_order": true},
	}

	opts, err := b.MockOptions()
	if err != nil {
		t.Fatalf("MockOptions() error = %v", err)
	}
	if opts.Delay != 250*time.Millisecond || opts.PageSize != 10 || opts.Pages != 3 {
		t.Errorf("MockOptions() = %+v", opts)
	}
	if opts.ListSize != backend.DefaultListSize || opts.LastPageSize != backend.DefaultLastPageSize {
		t.Errorf("zero sizes should fall back to defaults: %+v", opts)
	}
	if !opts.Fail[backend.OpCancelOrder] {
		t.Error("cancel_order should be failing")
	}

	b.Fail["launch_rockets"] = true
	if _, err := b.MockOptions(); err == nil {
		t.Error("MockOptions() with unknown op should fail")
	}

	var nilBackend *Backend
	if opts, err := nilBackend.MockOptions(); err != nil || opts.Delay != backend.DefaultDelay {
		t.Errorf("nil MockOptions() = %+v, %v", opts, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Registry)
		wantErr bool
	}{
		{"defaults", func(r *Registry) {}, false},
		{"bad version", func(r *Registry) { r.Version = 2 }, true},
		{"negative delay", func(r *Registry) { r.Backend.Delay = -time.Second }, true},
		{"negative pages", func(r *Registry) { r.Backend.Pages = -1 }, true},
		{"unknown op", func(r *Registry) { r.Backend.Fail["nope"] = true }, true},
		{"bad log level", func(r *Registry) { r.Preferences.LogLevel = "loud" }, true},
		{"good log level", func(r *Registry) { r.Preferences.LogLevel = "debug" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			tt.mutate(reg)
			if err := reg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegistrySaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	reg := NewRegistry()
	reg.Backend.Delay = 50 * time.Millisecond
	reg.Backend.Pages = 4
	reg.Backend.SetFailing(backend.OpFetchNickname, true)
	reg.Preferences.OrderID = "order-7"
	reg.Preferences.LogLevel = "info"

	if err := reg.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "# uistate-sample Configuration File") {
		t.Error("saved file is missing the header comment")
	}
	if !strings.Contains(string(data), "delay: 50ms") {
		t.Errorf("delay not written as a duration:\n%s", data)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded.Backend.Delay != 50*time.Millisecond || loaded.Backend.Pages != 4 {
		t.Errorf("loaded backend = %+v", loaded.Backend)
	}
	if !loaded.Backend.Fail["fetch_nickname"] {
		t.Error("fail switch lost")
	}
	if loaded.Preferences.OrderID != "order-7" || loaded.Preferences.LogLevel != "info" {
		t.Errorf("loaded preferences = %+v", loaded.Preferences)
	}
}

func TestLoadFile_MissingAndPartial(t *testing.T) {
	dir := t.TempDir()

	reg, err := LoadFile(filepath.Join(dir, "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFile(missing) error = %v", err)
	}
	if reg.Backend == nil || reg.Backend.Delay != backend.DefaultDelay {
		t.Errorf("missing file should give defaults, got %+v", reg.Backend)
	}

	partial := filepath.Join(dir, "partial.yaml")
	if err := os.WriteFile(partial, []byte("version: 1\n"), 0600); err != nil {
		t.Fatal(err)
	}
	reg, err = LoadFile(partial)
	if err != nil {
		t.Fatalf("LoadFile(partial) error = %v", err)
	}
	if reg.Backend == nil || reg.Backend.Fail == nil || reg.Preferences == nil {
		t.Error("partial file sections not defaulted")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("version: 9\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Error("LoadFile() with unsupported version should fail")
	}

	garbage := filepath.Join(dir, "garbage.yaml")
	if err := os.WriteFile(garbage, []byte("version: [\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(garbage); err == nil {
		t.Error("LoadFile() with invalid YAML should fail")
	}
}

func TestGlobalRegistry(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	reg, err := ReloadRegistry()
	if err != nil {
		t.Fatalf("ReloadRegistry() error = %v", err)
	}
	reg.Preferences.OrderID = "global"
	if err := SaveGlobal(); err != nil {
		t.Fatalf("SaveGlobal() error = %v", err)
	}

	again, err := ReloadRegistry()
	if err != nil {
		t.Fatalf("ReloadRegistry() error = %v", err)
	}
	if again.Preferences.OrderID != "global" {
		t.Errorf("OrderID = %q after reload, want global", again.Preferences.OrderID)
	}
}

func BenchmarkGetConfigDir(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GetConfigDir()
	}
}
