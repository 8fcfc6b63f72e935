package filesystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/vshell/pkg/vshell/core"
	"gopkg.in/yaml.v3"
)

// Format selects the persisted encoding of a snapshot.
type Format int

const (
	// FormatJSON is an object keyed by path, the shape a browser front-end
	// keeps in local storage.
	FormatJSON Format = iota
	// FormatYAML is a mapping keyed by path with directories listed before
	// their contents.
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFromPath picks the format from a file extension. Anything that is
// not .yaml or .yml is JSON.
func FormatFromPath(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ErrEmptySnapshot is returned when persisted data holds no document.
var ErrEmptySnapshot = errors.New("empty snapshot document")

// entryRecord is the persisted shape of one entry. Content is kept only for
// files.
type entryRecord struct {
	Type    string  `json:"type" yaml:"type"`
	Content *string `json:"content,omitempty" yaml:"content,omitempty"`
}

func toRecord(e core.Entry) entryRecord {
	rec := entryRecord{Type: e.Kind.String()}
	if !e.IsDir() {
		content := e.Content
		rec.Content = &content
	}
	return rec
}

func fromRecord(p string, rec entryRecord) (core.Entry, error) {
	if !IsCanonical(p) {
		return core.Entry{}, fmt.Errorf("entry %q: path is not canonical", p)
	}
	kind, ok := core.ParseEntryKind(rec.Type)
	if !ok {
		return core.Entry{}, fmt.Errorf("entry %q: unknown type %q", p, rec.Type)
	}
	if kind == core.KindDirectory {
		return core.NewDirectory(p), nil
	}
	content := ""
	if rec.Content != nil {
		content = *rec.Content
	}
	return core.NewFile(p, content), nil
}

// Marshal encodes a snapshot.
func Marshal(s *Snapshot, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return marshalYAML(s)
	default:
		return marshalJSON(s)
	}
}

// SkippedEntriesError lists the persisted entries Unmarshal left out.
type SkippedEntriesError struct {
	Skipped []error
}

func (e *SkippedEntriesError) Error() string {
	return fmt.Sprintf("skipped %d persisted entries: %v", len(e.Skipped), errors.Join(e.Skipped...))
}

func (e *SkippedEntriesError) Unwrap() []error {
	return e.Skipped
}

// Unmarshal decodes a snapshot. A document that cannot be parsed fails as a
// whole. Entries with an unknown type or a non-canonical path are left out:
// the remaining entries are returned together with a *SkippedEntriesError.
func Unmarshal(data []byte, format Format) (*Snapshot, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptySnapshot
	}

	raw := make(map[string]entryRecord)
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to unmarshal yaml snapshot: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to unmarshal json snapshot: %w", err)
		}
	}

	paths := make([]string, 0, len(raw))
	for p := range raw {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	entries := make([]core.Entry, 0, len(raw))
	var skipped []error
	for _, p := range paths {
		e, err := fromRecord(p, raw[p])
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		entries = append(entries, e)
	}

	snap := New(entries...)
	if len(skipped) > 0 {
		return snap, &SkippedEntriesError{Skipped: skipped}
	}
	return snap, nil
}

func marshalJSON(s *Snapshot) ([]byte, error) {
	raw := make(map[string]entryRecord, s.Len())
	for _, e := range s.Entries() {
		raw[e.Path] = toRecord(e)
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json snapshot: %w", err)
	}
	return data, nil
}

func marshalYAML(s *Snapshot) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range s.Entries() {
		var val yaml.Node
		if err := val.Encode(toRecord(e)); err != nil {
			return nil, fmt.Errorf("failed to encode entry %q: %w", e.Path, err)
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Path}
		doc.Content = append(doc.Content, key, &val)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal yaml snapshot: %w", err)
	}
	return data, nil
}
