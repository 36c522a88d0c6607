package savedstate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/muurk/uistate/internal/uistate"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	if _, ok := s.Load("note"); ok {
		t.Fatal("Load() on empty store returned a snapshot")
	}

	snap := uistate.Snapshot{"note": "hello"}
	s.Save("note", snap)
	snap["note"] = "mutated"

	got, ok := s.Load("note")
	if !ok || got["note"] != "hello" {
		t.Fatalf("Load() = %v, %v; want stored copy", got, ok)
	}
	got["note"] = "mutated"
	if again, _ := s.Load("note"); again["note"] != "hello" {
		t.Error("Load() returned shared storage")
	}

	e, ok := s.Entry("note")
	if !ok || !e.SavedAt.Equal(fixed) {
		t.Errorf("Entry() = %+v, %v", e, ok)
	}

	s.Save("nickname", uistate.Snapshot{"nickname": "x"})
	if keys := s.Keys(); len(keys) != 2 || keys[0] != "nickname" || keys[1] != "note" {
		t.Errorf("Keys() = %v", keys)
	}

	s.Delete("note")
	if _, ok := s.Load("note"); ok {
		t.Error("Load() after Delete returned a snapshot")
	}
	if err := s.Flush(); err != nil {
		t.Errorf("Flush() = %v", err)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.yaml")

	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile(missing) error = %v", err)
	}
	s.Save("note", uistate.Snapshot{"note": "line one"})
	s.Save("nickname2", uistate.Snapshot{"nickname": "Gopher"})
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	if reopened.Path() != path {
		t.Errorf("Path() = %q", reopened.Path())
	}
	if got, _ := reopened.Load("note"); got["note"] != "line one" {
		t.Errorf("note = %v", got)
	}
	if got, _ := reopened.Load("nickname2"); got["nickname"] != "Gopher" {
		t.Errorf("nickname2 = %v", got)
	}

	reopened.Delete("note")
	if err := reopened.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	last, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	if _, ok := last.Load("note"); ok {
		t.Error("deleted draft came back")
	}
}

func TestFileStore_BadFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "drafts: [\n"},
		{"bad version", "version: 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := OpenFile(path); err == nil {
				t.Error("OpenFile() succeeded")
			}
		})
	}
}

func TestOpen_UsesConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("LOCALAPPDATA", dir)

	s, err := Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if filepath.Base(s.Path()) != "drafts.yaml" {
		t.Errorf("Path() = %q", s.Path())
	}
	if err := s.Flush(); err != nil {
		t.Errorf("Flush() error = %v", err)
	}
}

var _ Store = (*FileStore)(nil)
var _ Store = (*MemoryStore)(nil)
