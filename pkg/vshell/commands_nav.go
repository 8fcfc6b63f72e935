package vshell

import (
	"sort"

	"github.com/arthur-debert/vshell/pkg/vshell/core"
	"github.com/arthur-debert/vshell/pkg/vshell/filesystem"
)

const (
	treeBranch     = "├── "
	treeLastBranch = "└── "
	treeIndent     = "│   "
	treeLastIndent = "    "
)

func tag(e core.Entry) string {
	if e.IsDir() {
		return TagDirectory(e.Name())
	}
	return TagFile(e.Name())
}

// sortedChildren returns the children of dir with directories first, then
// ordered by tagged name.
func sortedChildren(snap *filesystem.Snapshot, dir string) []core.Entry {
	children := snap.Children(dir)
	sort.SliceStable(children, func(i, j int) bool {
		if children[i].IsDir() != children[j].IsDir() {
			return children[i].IsDir()
		}
		return tag(children[i]) < tag(children[j])
	})
	return children
}

func (in *Interpreter) ls(inv invocation) (Result, error) {
	target := inv.state.Cwd
	if arg, ok := inv.arg(0); ok {
		target = inv.resolve(arg)
	}

	children := inv.state.Snapshot.Children(target)
	names := make([]string, 0, len(children))
	for _, e := range children {
		names = append(names, tag(e))
	}
	SortListing(names)

	return Result{Lines: []string{JoinListing(names)}}, nil
}

func (in *Interpreter) cd(inv invocation) (Result, error) {
	arg, ok := inv.arg(0)
	if !ok {
		return Result{Cwd: core.HomeDir}, nil
	}

	target := inv.resolve(arg)
	e, exists := inv.state.Snapshot.Get(target)
	if !exists {
		return Result{}, commandError(core.ErrNotFound, "cd: %s: No such directory", arg)
	}
	if !e.IsDir() {
		return Result{}, commandError(core.ErrNotADirectory, "cd: %s: No such directory", arg)
	}
	return Result{Cwd: target}, nil
}

func (in *Interpreter) tree(inv invocation) (Result, error) {
	lines := []string{"."}
	in.walkTree(inv.state.Snapshot, inv.state.Cwd, "", 0, &lines)
	return Result{Lines: lines}, nil
}

func (in *Interpreter) walkTree(snap *filesystem.Snapshot, dir, prefix string, depth int, lines *[]string) {
	if depth >= in.maxTreeDepth {
		return
	}

	children := sortedChildren(snap, dir)
	for i, e := range children {
		branch, indent := treeBranch, treeIndent
		if i == len(children)-1 {
			branch, indent = treeLastBranch, treeLastIndent
		}
		*lines = append(*lines, prefix+branch+tag(e))
		if e.IsDir() {
			in.walkTree(snap, e.Path, prefix+indent, depth+1, lines)
		}
	}
}
