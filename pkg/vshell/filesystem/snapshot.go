// Package filesystem holds the immutable path-keyed snapshot that backs a
// vshell session, along with its seed, ordering and persistence codec.
package filesystem

import (
	"sort"
	"strings"

	"github.com/arthur-debert/vshell/pkg/vshell/core"
)

// Snapshot is an immutable mapping from canonical absolute path to entry.
// Every mutating method returns a new Snapshot and leaves the receiver as it
// was. The zero value and nil are both valid empty snapshots.
type Snapshot struct {
	entries map[string]core.Entry
}

// New builds a snapshot from entries. Later entries replace earlier ones
// with the same path.
func New(entries ...core.Entry) *Snapshot {
	m := make(map[string]core.Entry, len(entries))
	for _, e := range entries {
		m[e.Path] = normalize(e)
	}
	return &Snapshot{entries: m}
}

// Parent returns the derived parent of path: everything before the last
// slash. The parent of a top-level path such as "/home" is "".
func Parent(path string) string {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return ""
	}
	return path[:i]
}

// IsCanonical reports whether path is an absolute path with no empty
// segments and no trailing slash.
func IsCanonical(path string) bool {
	if path == "/" {
		return true
	}
	if !strings.HasPrefix(path, "/") || strings.HasSuffix(path, "/") {
		return false
	}
	return !strings.Contains(path, "//")
}

// Len returns the number of entries.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Get looks up a single entry.
func (s *Snapshot) Get(path string) (core.Entry, bool) {
	if s == nil {
		return core.Entry{}, false
	}
	e, ok := s.entries[path]
	return e, ok
}

// Paths returns every key in lexical order.
func (s *Snapshot) Paths() []string {
	if s == nil {
		return nil
	}
	paths := make([]string, 0, len(s.entries))
	for p := range s.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Entries returns every entry in lexical path order. A parent path is a
// prefix of its children's paths, so every directory comes before the
// entries nested beneath it.
func (s *Snapshot) Entries() []core.Entry {
	paths := s.Paths()
	out := make([]core.Entry, 0, len(paths))
	for _, p := range paths {
		out = append(out, s.entries[p])
	}
	return out
}

// Children returns the immediate children of dir in lexical path order.
// It does not recurse.
func (s *Snapshot) Children(dir string) []core.Entry {
	var out []core.Entry
	for _, e := range s.Entries() {
		if Parent(e.Path) == dir {
			out = append(out, e)
		}
	}
	return out
}

// Insert adds a new entry. It fails with core.ErrAlreadyExists when the path
// is taken. Parent existence is not checked here.
func (s *Snapshot) Insert(e core.Entry) (*Snapshot, error) {
	if _, exists := s.Get(e.Path); exists {
		return s, core.ErrAlreadyExists
	}
	return s.Put(e), nil
}

// Put adds or replaces an entry.
func (s *Snapshot) Put(e core.Entry) *Snapshot {
	m := s.clone(1)
	m[e.Path] = normalize(e)
	return &Snapshot{entries: m}
}

// Remove deletes path. Removing a directory also removes every entry nested
// beneath it. It fails with core.ErrNotFound when path is absent.
func (s *Snapshot) Remove(path string) (*Snapshot, error) {
	e, exists := s.Get(path)
	if !exists {
		return s, core.ErrNotFound
	}

	m := s.clone(0)
	delete(m, path)
	if e.IsDir() {
		prefix := path + "/"
		for p := range m {
			if strings.HasPrefix(p, prefix) {
				delete(m, p)
			}
		}
	}
	return &Snapshot{entries: m}, nil
}

func (s *Snapshot) clone(extra int) map[string]core.Entry {
	m := make(map[string]core.Entry, s.Len()+extra)
	if s != nil {
		for p, e := range s.entries {
			m[p] = e
		}
	}
	return m
}

// normalize enforces that directories carry no content.
func normalize(e core.Entry) core.Entry {
	if e.IsDir() {
		e.Content = ""
	}
	return e
}
