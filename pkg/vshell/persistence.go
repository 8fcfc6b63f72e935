package vshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/vshell/pkg/vshell/core"
	"github.com/arthur-debert/vshell/pkg/vshell/filesystem"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
)

// ErrNoSnapshot is returned by Store.Load when nothing was saved yet.
var ErrNoSnapshot = errors.New("no persisted snapshot")

// Store loads and saves a session snapshot. Load may return a partial
// snapshot together with an error wrapping *filesystem.SkippedEntriesError.
type Store interface {
	Load(ctx context.Context) (*filesystem.Snapshot, error)
	Save(ctx context.Context, s *filesystem.Snapshot) error
}

// BillyStore keeps a snapshot in one file on a billy filesystem. The file
// extension selects JSON or YAML.
type BillyStore struct {
	fs     billy.Filesystem
	name   string
	format filesystem.Format
}

// NewBillyStore stores the snapshot as name inside fs.
func NewBillyStore(fs billy.Filesystem, name string) *BillyStore {
	return &BillyStore{
		fs:     fs,
		name:   name,
		format: filesystem.FormatFromPath(name),
	}
}

// NewFileStore stores the snapshot at a path on the local disk.
func NewFileStore(path string) *BillyStore {
	dir, name := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	return NewBillyStore(osfs.New(dir), name)
}

// Name returns the snapshot file name inside the store's filesystem.
func (b *BillyStore) Name() string { return b.name }

// Load reads and decodes the snapshot file.
func (b *BillyStore) Load(ctx context.Context) (*filesystem.Snapshot, error) {
	f, err := b.fs.Open(b.name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSnapshot
		}
		return nil, &core.StoreError{Op: "open", Path: b.name, Cause: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &core.StoreError{Op: "read", Path: b.name, Cause: err}
	}

	snap, err := filesystem.Unmarshal(data, b.format)
	if err != nil {
		return snap, &core.StoreError{Op: "decode", Path: b.name, Cause: err}
	}
	return snap, nil
}

// Save encodes and writes the snapshot file, replacing its previous content.
func (b *BillyStore) Save(ctx context.Context, s *filesystem.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := filesystem.Marshal(s, b.format)
	if err != nil {
		return &core.StoreError{Op: "encode", Path: b.name, Cause: err}
	}

	if dir := filepath.Dir(b.name); dir != "." {
		if err := b.fs.MkdirAll(dir, 0o755); err != nil {
			return &core.StoreError{Op: "mkdir", Path: dir, Cause: err}
		}
	}
	if err := util.WriteFile(b.fs, b.name, data, 0o644); err != nil {
		return &core.StoreError{Op: "write", Path: b.name, Cause: err}
	}
	return nil
}

// LoadOrDefault loads the persisted snapshot, falling back to the seed when
// nothing was saved or the saved data cannot be used. Entries that could not
// be decoded are logged and left out; the rest are kept.
func LoadOrDefault(ctx context.Context, store Store, log *zerolog.Logger) *filesystem.Snapshot {
	if log == nil {
		log = Logger()
	}

	snap, err := store.Load(ctx)
	var skipped *filesystem.SkippedEntriesError
	switch {
	case errors.As(err, &skipped) && snap.Len() > 0:
		for _, cause := range skipped.Skipped {
			log.Warn().Err(cause).Msg("persisted entry skipped")
		}
	case errors.Is(err, ErrNoSnapshot):
		log.Info().Msg("no persisted snapshot, using seed")
		return filesystem.Default()
	case err != nil:
		log.Warn().Err(err).Msg("persisted snapshot unusable, using seed")
		return filesystem.Default()
	}

	for _, e := range filesystem.Orphans(snap) {
		log.Warn().
			Str("path", e.Path).
			Str("kind", e.Kind.String()).
			Msg("entry has no parent directory")
	}
	log.Debug().Int("entries", snap.Len()).Msg("loaded persisted snapshot")
	return snap
}

// AttachStore saves every snapshot published on bus to store. Save failures
// are logged by the bus and never reach the command that caused them.
func AttachStore(bus core.EventBus, store Store) core.SubscriptionID {
	return bus.Subscribe(core.EventSnapshotReplaced, core.EventHandlerFunc(
		func(ctx context.Context, event core.Event) error {
			change, ok := event.Data().(SnapshotChange)
			if !ok {
				return fmt.Errorf("unexpected %s payload %T", event.Type(), event.Data())
			}
			return store.Save(ctx, change.Snapshot)
		}))
}
