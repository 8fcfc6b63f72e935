// Package testutil holds helpers for driving vshell sessions in tests.
package testutil

import (
	"context"
	"testing"

	"github.com/arthur-debert/vshell/pkg/vshell"
	"github.com/arthur-debert/vshell/pkg/vshell/core"
	"github.com/arthur-debert/vshell/pkg/vshell/filesystem"
)

// NewTestSession creates a session without the banner, on the seed snapshot
// unless opts say otherwise.
func NewTestSession(t *testing.T, opts ...vshell.SessionOption) *vshell.Session {
	t.Helper()
	base := []vshell.SessionOption{vshell.WithBanner(false)}
	return vshell.NewSession(append(base, opts...)...)
}

// Run submits each line in order and returns the output of the last one.
func Run(t *testing.T, s *vshell.Session, lines ...string) []string {
	t.Helper()
	var out []string
	for _, line := range lines {
		out, _ = s.Submit(context.Background(), line)
	}
	return out
}

// RunOne submits a line and fails the test unless it produced exactly one
// output line, which it returns.
func RunOne(t *testing.T, s *vshell.Session, line string) string {
	t.Helper()
	out := Run(t, s, line)
	if len(out) != 1 {
		t.Fatalf("%q: expected 1 output line, got %d: %q", line, len(out), out)
	}
	return out[0]
}

// SnapshotOf builds a snapshot from directory paths ending in "/" and file
// paths. Files get empty content.
func SnapshotOf(paths ...string) *filesystem.Snapshot {
	entries := make([]core.Entry, 0, len(paths))
	for _, p := range paths {
		if len(p) > 1 && p[len(p)-1] == '/' {
			entries = append(entries, core.NewDirectory(p[:len(p)-1]))
			continue
		}
		entries = append(entries, core.NewFile(p, ""))
	}
	return filesystem.New(entries...)
}

// MemoryStore is a Store that keeps the last saved snapshot and can be told
// to fail.
type MemoryStore struct {
	Saved   *filesystem.Snapshot
	Saves   int
	LoadErr error
	SaveErr error
}

// Load returns the last saved snapshot.
func (m *MemoryStore) Load(ctx context.Context) (*filesystem.Snapshot, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Saved == nil {
		return nil, vshell.ErrNoSnapshot
	}
	return m.Saved, nil
}

// Save records s unless SaveErr is set.
func (m *MemoryStore) Save(ctx context.Context, s *filesystem.Snapshot) error {
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saved = s
	return nil
}
