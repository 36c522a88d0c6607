package savedstate

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/muurk/uistate/internal/config"
	"gopkg.in/yaml.v3"
)

const (
	draftsFile    = "drafts.yaml"
	draftsVersion = 1
)

// fileFormat is the on-disk layout of drafts.yaml.
type fileFormat struct {
	Version int              `yaml:"version"`
	Drafts  map[string]Entry `yaml:"drafts,omitempty"`
}

// FileStore is a MemoryStore that persists to a YAML file on Flush.
type FileStore struct {
	*MemoryStore
	path string

	fileMu sync.Mutex
}

// DefaultPath returns the drafts file location in the config directory.
func DefaultPath() (string, error) {
	dir, err := config.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, draftsFile), nil
}

// Open opens the drafts file in the config directory, creating the
// directory if needed.
func Open() (*FileStore, error) {
	if _, err := config.EnsureConfigDir(); err != nil {
		return nil, err
	}
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return OpenFile(path)
}

// OpenFile loads drafts from path. A missing file starts empty.
func OpenFile(path string) (*FileStore, error) {
	s := &FileStore{MemoryStore: NewMemoryStore(), path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read drafts file: %w", err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse drafts file: %w", err)
	}
	if f.Version != draftsVersion {
		return nil, fmt.Errorf("unsupported drafts version: %d (expected %d)", f.Version, draftsVersion)
	}
	for k, e := range f.Drafts {
		s.entries[k] = e
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *FileStore) Path() string {
	return s.path
}

// Flush writes every draft to disk atomically.
func (s *FileStore) Flush() error {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	s.mu.RLock()
	f := fileFormat{Version: draftsVersion, Drafts: make(map[string]Entry, len(s.entries))}
	for k, e := range s.entries {
		f.Drafts[k] = e
	}
	s.mu.RUnlock()

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal drafts: %w", err)
	}
	if err := config.WriteFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("failed to save drafts file: %w", err)
	}
	return nil
}
