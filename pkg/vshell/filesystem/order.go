package filesystem

import "github.com/arthur-debert/vshell/pkg/vshell/core"

// Orphans returns the entries whose parent is neither the implicit root nor
// a directory in the snapshot, in lexical order.
func Orphans(s *Snapshot) []core.Entry {
	var out []core.Entry
	for _, e := range s.Entries() {
		parent := Parent(e.Path)
		if parent == "" {
			continue
		}
		if p, ok := s.Get(parent); !ok || !p.IsDir() {
			out = append(out, e)
		}
	}
	return out
}
