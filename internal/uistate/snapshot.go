package uistate

import (
	"maps"
	"sort"
	"strings"
)

// Snapshot is the saved-state payload of an editing screen: a flat map of
// string values that survives the screen being torn down and rebuilt.
type Snapshot map[string]string

// Get returns the value stored under key.
func (s Snapshot) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s[key]
	return v, ok
}

// Clone returns an independent copy. A nil snapshot clones to nil.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	return maps.Clone(s)
}

func (s Snapshot) String() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+s[k])
	}
	return "{" + strings.Join(parts, " ") + "}"
}
