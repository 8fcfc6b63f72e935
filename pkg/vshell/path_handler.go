package vshell

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/vshell/pkg/vshell/filesystem"
)

var (
	validPathPattern = regexp.MustCompile(`^[A-Za-z0-9/_.-]+$`)
	slashRun         = regexp.MustCompile(`/+`)
)

// Resolve turns a single path token into an absolute path against cwd.
//
// An absolute token is returned as is. ".." drops the last segment of cwd,
// falling back to "/" when cwd is at most one level deep, and "." is cwd.
// Anything else is joined onto cwd with repeated slashes collapsed. Compound
// tokens such as "a/../b" are not interpreted.
func Resolve(token, cwd string) string {
	switch {
	case strings.HasPrefix(token, "/"):
		return token
	case token == "..":
		parts := strings.Split(cwd, "/")
		if len(parts) > 2 {
			return strings.Join(parts[:len(parts)-1], "/")
		}
		return "/"
	case token == ".":
		return cwd
	default:
		return slashRun.ReplaceAllString(cwd+"/"+token, "/")
	}
}

// ValidPath reports whether path only uses letters, digits, '/', '_', '.'
// and '-'.
func ValidPath(path string) bool {
	return validPathPattern.MatchString(path)
}

// Parent returns the derived parent directory of an absolute path.
func Parent(path string) string {
	return filesystem.Parent(path)
}

// Base returns the last segment of path.
func Base(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}
