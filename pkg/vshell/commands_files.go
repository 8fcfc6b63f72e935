package vshell

import (
	"strings"

	"github.com/arthur-debert/vshell/pkg/vshell/core"
	"github.com/arthur-debert/vshell/pkg/vshell/filesystem"
)

const redirectMarker = ">"

// checkParent fails when the parent of path is neither the implicit root nor
// an existing directory.
func checkParent(snap *filesystem.Snapshot, path string) error {
	parent := Parent(path)
	if parent == "" {
		return nil
	}
	e, ok := snap.Get(parent)
	if !ok {
		return core.ErrNotFound
	}
	if !e.IsDir() {
		return core.ErrNotADirectory
	}
	return nil
}

func describe(kind error) string {
	switch kind {
	case core.ErrNotADirectory:
		return "Not a directory"
	case core.ErrAlreadyExists:
		return "File exists"
	default:
		return "No such file or directory"
	}
}

// writable reports whether path may become a new key: only the allowed
// characters, and no empty segment or trailing slash.
func writable(path string) bool {
	return ValidPath(path) && filesystem.IsCanonical(path)
}

func exists(snap *filesystem.Snapshot, path string) bool {
	if path == "/" {
		return true
	}
	_, ok := snap.Get(path)
	return ok
}

func (in *Interpreter) mkdir(inv invocation) (Result, error) {
	return in.create(inv, CmdMkdir, "directory", core.NewDirectory, TagDirectory)
}

func (in *Interpreter) touch(inv invocation) (Result, error) {
	return in.create(inv, CmdTouch, "file", func(p string) core.Entry { return core.NewFile(p, "") }, TagFile)
}

func (in *Interpreter) create(inv invocation, cmd Command, noun string, build func(string) core.Entry, format func(string) string) (Result, error) {
	arg, ok := inv.arg(0)
	if !ok {
		return Result{}, commandError(core.ErrMissingOperand, "%s: missing operand", cmd)
	}

	path := inv.resolve(arg)
	if !writable(path) {
		return Result{}, commandError(core.ErrInvalidPath, "%s: invalid path", cmd)
	}
	if exists(inv.state.Snapshot, path) {
		return Result{}, commandError(core.ErrAlreadyExists, "%s: cannot create %s '%s': File exists", cmd, noun, arg)
	}
	if err := checkParent(inv.state.Snapshot, path); err != nil {
		return Result{}, commandError(err, "%s: cannot create %s '%s': %s", cmd, noun, arg, describe(err))
	}

	next, err := inv.state.Snapshot.Insert(build(path))
	if err != nil {
		return Result{}, commandError(err, "%s: cannot create %s '%s': %s", cmd, noun, arg, describe(err))
	}

	return Result{
		Lines:    []string{"Created " + noun + " " + format(arg)},
		Snapshot: next,
	}, nil
}

func (in *Interpreter) rm(inv invocation) (Result, error) {
	arg, ok := inv.arg(0)
	if !ok {
		return Result{}, commandError(core.ErrMissingOperand, "rm: missing operand")
	}

	next, err := inv.state.Snapshot.Remove(inv.resolve(arg))
	if err != nil {
		return Result{}, commandError(core.ErrNotFound, "rm: cannot remove '%s': No such file or directory", arg)
	}
	return Result{Snapshot: next}, nil
}

func (in *Interpreter) cat(inv invocation) (Result, error) {
	arg, ok := inv.arg(0)
	if !ok {
		return Result{}, commandError(core.ErrMissingOperand, "cat: missing operand")
	}

	e, found := inv.state.Snapshot.Get(inv.resolve(arg))
	if !found {
		return Result{}, commandError(core.ErrNotFound, "cat: %s: No such file", arg)
	}
	if e.IsDir() {
		return Result{}, commandError(core.ErrNotAFile, "cat: %s: No such file", arg)
	}
	return Result{Lines: strings.Split(e.Content, "\n")}, nil
}

func (in *Interpreter) echo(inv invocation) (Result, error) {
	redirect := -1
	for i, a := range inv.args {
		if a == redirectMarker {
			redirect = i
			break
		}
	}
	if redirect < 0 {
		return Result{Lines: []string{strings.Join(inv.args, " ")}}, nil
	}

	content := strings.Join(inv.args[:redirect], " ")
	name, ok := inv.arg(redirect + 1)
	if !ok {
		return Result{}, commandError(core.ErrMissingRedirectTarget, "echo: no file specified for redirection")
	}

	path := inv.resolve(name)
	if !writable(path) {
		return Result{}, commandError(core.ErrInvalidPath, "echo: invalid path")
	}
	if e, found := inv.state.Snapshot.Get(path); (found && e.IsDir()) || path == "/" {
		return Result{}, commandError(core.ErrNotAFile, "echo: cannot write '%s': Is a directory", name)
	}
	if err := checkParent(inv.state.Snapshot, path); err != nil {
		return Result{}, commandError(err, "echo: cannot write '%s': %s", name, describe(err))
	}

	return Result{
		Lines:    []string{"Created file " + TagFile(name) + " with content"},
		Snapshot: inv.state.Snapshot.Put(core.NewFile(path, content)),
	}, nil
}
