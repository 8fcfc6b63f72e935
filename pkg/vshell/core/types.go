package core

// EntryKind is the kind of a filesystem node.
type EntryKind int

const (
	// KindDirectory is a directory node. Directories carry no content.
	KindDirectory EntryKind = iota
	// KindFile is a file node with a text content.
	KindFile
)

// String returns the name used for the kind in persisted snapshots.
func (k EntryKind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// ParseEntryKind parses a persisted kind name.
func ParseEntryKind(s string) (EntryKind, bool) {
	switch s {
	case "directory":
		return KindDirectory, true
	case "file":
		return KindFile, true
	default:
		return 0, false
	}
}

// Entry is one filesystem node keyed by its canonical absolute path.
type Entry struct {
	Path    string
	Kind    EntryKind
	Content string
}

// NewDirectory returns a directory entry for path.
func NewDirectory(path string) Entry {
	return Entry{Path: path, Kind: KindDirectory}
}

// NewFile returns a file entry for path with the given content.
func NewFile(path, content string) Entry {
	return Entry{Path: path, Kind: KindFile, Content: content}
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == KindDirectory
}

// Name returns the last path segment.
func (e Entry) Name() string {
	for i := len(e.Path) - 1; i >= 0; i-- {
		if e.Path[i] == '/' {
			return e.Path[i+1:]
		}
	}
	return e.Path
}

// HomeDir is the initial working directory and the root of the seed tree.
const HomeDir = "/home"
