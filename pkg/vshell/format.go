package vshell

import (
	"sort"
	"strings"
)

const (
	dirOpen   = "<dir>"
	dirClose  = "</dir>"
	fileOpen  = "<file>"
	fileClose = "</file>"

	listingSeparator = "    "
)

// TagDirectory wraps a directory name for the renderer.
func TagDirectory(name string) string {
	return dirOpen + name + "/" + dirClose
}

// TagFile wraps a file name for the renderer.
func TagFile(name string) string {
	return fileOpen + name + fileClose
}

// IsDirectoryTag reports whether a formatted name carries a directory tag.
func IsDirectoryTag(s string) bool {
	return strings.Contains(s, dirClose)
}

// SortListing orders tagged names in place: directories first, then by the
// tagged string.
func SortListing(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		di, dj := IsDirectoryTag(names[i]), IsDirectoryTag(names[j])
		if di != dj {
			return di
		}
		return names[i] < names[j]
	})
}

// JoinListing joins tagged names into a single ls line.
func JoinListing(names []string) string {
	return strings.Join(names, listingSeparator)
}
