package vshell_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/vshell/pkg/vshell"
	"github.com/arthur-debert/vshell/pkg/vshell/core"
	"github.com/arthur-debert/vshell/pkg/vshell/filesystem"
	"github.com/arthur-debert/vshell/pkg/vshell/testutil"
)

const seedListing = "<dir>documents/</dir>    <dir>downloads/</dir>    <file>readme.txt</file>"

func seedState() vshell.State {
	return vshell.State{Cwd: core.HomeDir, Snapshot: filesystem.Default()}
}

func TestExecuteDispatch(t *testing.T) {
	in := vshell.NewInterpreter()

	t.Run("empty line", func(t *testing.T) {
		res := in.Execute(seedState(), "   ")
		assert.Empty(t, res.Lines)
		assert.False(t, res.Known)
		assert.NoError(t, res.Err)
	})

	t.Run("unknown command", func(t *testing.T) {
		state := seedState()
		res := in.Execute(state, "foobar --flag")
		assert.Equal(t, []string{"foobar: command not found"}, res.Lines)
		assert.ErrorIs(t, res.Err, core.ErrUnknownCommand)
		assert.False(t, res.Mutated())
		assert.Empty(t, res.Cwd)
	})

	t.Run("does not touch the input state", func(t *testing.T) {
		state := seedState()
		res := in.Execute(state, "mkdir fresh")
		require.True(t, res.Mutated())
		_, inOld := state.Snapshot.Get("/home/fresh")
		_, inNew := res.Snapshot.Get("/home/fresh")
		assert.False(t, inOld)
		assert.True(t, inNew)
	})

	t.Run("errors classify", func(t *testing.T) {
		res := in.Execute(seedState(), "mkdir documents")
		var cmdErr *vshell.CommandError
		require.True(t, errors.As(res.Err, &cmdErr))
		assert.ErrorIs(t, res.Err, core.ErrAlreadyExists)
		assert.Equal(t, vshell.CmdMkdir, res.Command)
		assert.Equal(t, []string{cmdErr.Error()}, res.Lines)
	})
}

func TestParseCommand(t *testing.T) {
	for _, c := range vshell.Commands() {
		parsed, ok := vshell.ParseCommand(c.String())
		require.True(t, ok, c.String())
		assert.Equal(t, c, parsed)
	}
	_, ok := vshell.ParseCommand("LS")
	assert.False(t, ok)
	assert.Len(t, vshell.Commands(), 11)
	assert.True(t, vshell.CmdEcho.Mutating())
	assert.False(t, vshell.CmdCat.Mutating())
}

func TestHelp(t *testing.T) {
	s := testutil.NewTestSession(t)
	out := testutil.Run(t, s, "help")
	require.Len(t, out, 11)
	assert.Equal(t, "Available commands:", out[0])
	assert.Equal(t, "tree - Display directory structure", out[10])
}

func TestLs(t *testing.T) {
	t.Run("seed", func(t *testing.T) {
		s := testutil.NewTestSession(t)
		assert.Equal(t, seedListing, testutil.RunOne(t, s, "ls"))
	})

	t.Run("idempotent after mkdir", func(t *testing.T) {
		s := testutil.NewTestSession(t)
		testutil.Run(t, s, "mkdir x")
		first := testutil.RunOne(t, s, "ls")
		assert.Contains(t, first, "<dir>x/</dir>")
		assert.Equal(t, first, testutil.RunOne(t, s, "ls"))
	})

	t.Run("directories before files", func(t *testing.T) {
		s := testutil.NewTestSession(t, vshell.WithSnapshot(testutil.SnapshotOf("/home/", "/home/a", "/home/b/")))
		assert.Equal(t, "<dir>b/</dir>    <file>a</file>", testutil.RunOne(t, s, "ls"))
	})

	t.Run("argument", func(t *testing.T) {
		s := testutil.NewTestSession(t)
		testutil.Run(t, s, "touch documents/cv.txt")
		assert.Equal(t, "<file>cv.txt</file>", testutil.RunOne(t, s, "ls documents"))
		assert.Equal(t, "<file>cv.txt</file>", testutil.RunOne(t, s, "ls /home/documents"))
	})

	t.Run("empty is one empty line", func(t *testing.T) {
		s := testutil.NewTestSession(t)
		assert.Equal(t, "", testutil.RunOne(t, s, "ls downloads"))
		assert.Equal(t, "", testutil.RunOne(t, s, "ls nowhere"))
	})
}

func TestCdAndPwd(t *testing.T) {
	s := testutil.NewTestSession(t)

	assert.Equal(t, "/home", testutil.RunOne(t, s, "pwd"))

	out, cwd := s.Submit(context.Background(), "cd documents")
	assert.Empty(t, out)
	assert.Equal(t, "/home/documents", cwd)
	assert.Equal(t, "/home/documents", testutil.RunOne(t, s, "pwd"))

	testutil.Run(t, s, "cd ..")
	assert.Equal(t, "/home", s.Cwd())

	assert.Equal(t, "cd: ..: No such directory", testutil.RunOne(t, s, "cd .."))
	assert.Equal(t, "/home", s.Cwd())

	assert.Equal(t, "cd: readme.txt: No such directory", testutil.RunOne(t, s, "cd readme.txt"))
	assert.Equal(t, "cd: ghost: No such directory", testutil.RunOne(t, s, "cd ghost"))

	testutil.Run(t, s, "cd /home/downloads", "cd .")
	assert.Equal(t, "/home/downloads", s.Cwd())

	testutil.Run(t, s, "cd")
	assert.Equal(t, "/home", s.Cwd())
}

func TestMkdir(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"created", "mkdir x", "Created directory <dir>x/</dir>"},
		{"nested in existing", "mkdir documents/work", "Created directory <dir>documents/work/</dir>"},
		{"absolute", "mkdir /home/abs", "Created directory <dir>/home/abs/</dir>"},
		{"missing operand", "mkdir", "mkdir: missing operand"},
		{"invalid", "mkdir bad*name", "mkdir: invalid path"},
		{"trailing slash", "mkdir work/", "mkdir: invalid path"},
		{"empty segment", "mkdir /home//x", "mkdir: invalid path"},
		{"exists", "mkdir documents", "mkdir: cannot create directory 'documents': File exists"},
		{"exists as file", "mkdir readme.txt", "mkdir: cannot create directory 'readme.txt': File exists"},
		{"root", "mkdir /", "mkdir: cannot create directory '/': File exists"},
		{"missing parent", "mkdir a/b", "mkdir: cannot create directory 'a/b': No such file or directory"},
		{"parent is file", "mkdir readme.txt/sub", "mkdir: cannot create directory 'readme.txt/sub': Not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testutil.NewTestSession(t)
			before := s.Snapshot()
			assert.Equal(t, tt.want, testutil.RunOne(t, s, tt.line))
			if tt.want[:7] != "Created" {
				assert.Same(t, before, s.Snapshot(), "failure must not replace the snapshot")
			}
		})
	}

	t.Run("duplicate leaves one entry", func(t *testing.T) {
		s := testutil.NewTestSession(t)
		testutil.Run(t, s, "mkdir x")
		assert.Equal(t, "mkdir: cannot create directory 'x': File exists", testutil.RunOne(t, s, "mkdir x"))

		count := 0
		for _, p := range s.Snapshot().Paths() {
			if p == "/home/x" {
				count++
			}
		}
		assert.Equal(t, 1, count)
		assert.Equal(t, 5, s.Snapshot().Len())
	})

	t.Run("top level outside home", func(t *testing.T) {
		s := testutil.NewTestSession(t)
		assert.Equal(t, "Created directory <dir>/tmp/</dir>", testutil.RunOne(t, s, "mkdir /tmp"))
		e, ok := s.Snapshot().Get("/tmp")
		require.True(t, ok)
		assert.True(t, e.IsDir())
	})
}

func TestTouch(t *testing.T) {
	s := testutil.NewTestSession(t)

	assert.Equal(t, "Created file <file>new.txt</file>", testutil.RunOne(t, s, "touch new.txt"))
	e, ok := s.Snapshot().Get("/home/new.txt")
	require.True(t, ok)
	assert.Equal(t, core.KindFile, e.Kind)
	assert.Equal(t, "", e.Content)

	assert.Equal(t, "touch: missing operand", testutil.RunOne(t, s, "touch"))
	assert.Equal(t, "touch: invalid path", testutil.RunOne(t, s, "touch what?"))
	assert.Equal(t, "touch: invalid path", testutil.RunOne(t, s, "touch documents/"))
	assert.Equal(t, "touch: cannot create file 'new.txt': File exists", testutil.RunOne(t, s, "touch new.txt"))
	assert.Equal(t, "touch: cannot create file 'documents': File exists", testutil.RunOne(t, s, "touch documents"))
	assert.Equal(t, "touch: cannot create file 'no/f.txt': No such file or directory", testutil.RunOne(t, s, "touch no/f.txt"))
	assert.Equal(t, "touch: cannot create file 'new.txt/f': Not a directory", testutil.RunOne(t, s, "touch new.txt/f"))
}

func TestRm(t *testing.T) {
	t.Run("cascade", func(t *testing.T) {
		s := testutil.NewTestSession(t)
		testutil.Run(t, s, "mkdir a", "touch a/b.txt")
		require.Contains(t, s.Snapshot().Paths(), "/home/a/b.txt")

		out := testutil.Run(t, s, "rm a")
		assert.Empty(t, out)

		_, hasDir := s.Snapshot().Get("/home/a")
		_, hasFile := s.Snapshot().Get("/home/a/b.txt")
		assert.False(t, hasDir)
		assert.False(t, hasFile)
		assert.Equal(t, seedListing, testutil.RunOne(t, s, "ls"))
	})

	t.Run("file", func(t *testing.T) {
		s := testutil.NewTestSession(t)
		testutil.Run(t, s, "rm readme.txt")
		assert.Equal(t, "<dir>documents/</dir>    <dir>downloads/</dir>", testutil.RunOne(t, s, "ls"))
	})

	t.Run("failures", func(t *testing.T) {
		s := testutil.NewTestSession(t)
		assert.Equal(t, "rm: missing operand", testutil.RunOne(t, s, "rm"))
		assert.Equal(t, "rm: cannot remove 'ghost': No such file or directory", testutil.RunOne(t, s, "rm ghost"))
		assert.Equal(t, 4, s.Snapshot().Len())
	})
}

func TestCat(t *testing.T) {
	s := testutil.NewTestSession(t)

	assert.Equal(t, []string{"Welcome to WebTerminal!", "This is a simple text file."}, testutil.Run(t, s, "cat readme.txt"))
	assert.Equal(t, "cat: missing operand", testutil.RunOne(t, s, "cat"))
	assert.Equal(t, "cat: nope.txt: No such file", testutil.RunOne(t, s, "cat nope.txt"))
	assert.Equal(t, "cat: documents: No such file", testutil.RunOne(t, s, "cat documents"))

	testutil.Run(t, s, "touch empty.txt")
	assert.Equal(t, "", testutil.RunOne(t, s, "cat empty.txt"))
}

func TestEcho(t *testing.T) {
	t.Run("print", func(t *testing.T) {
		s := testutil.NewTestSession(t)
		assert.Equal(t, "hello world", testutil.RunOne(t, s, "echo hello   world"))
		assert.Equal(t, "", testutil.RunOne(t, s, "echo"))
	})

	t.Run("redirect overwrites", func(t *testing.T) {
		s := testutil.NewTestSession(t)
		assert.Equal(t, "Created file <file>f.txt</file> with content", testutil.RunOne(t, s, "echo hi > f.txt"))
		testutil.Run(t, s, "echo bye > f.txt")
		assert.Equal(t, "bye", testutil.RunOne(t, s, "cat f.txt"))
	})

	t.Run("only first marker redirects", func(t *testing.T) {
		s := testutil.NewTestSession(t)
		testutil.Run(t, s, "echo a b > out.txt > ignored.txt")
		assert.Equal(t, "a b", testutil.RunOne(t, s, "cat out.txt"))
		_, ok := s.Snapshot().Get("/home/ignored.txt")
		assert.False(t, ok)
	})

	t.Run("empty content", func(t *testing.T) {
		s := testutil.NewTestSession(t)
		testutil.Run(t, s, "echo > blank.txt")
		e, ok := s.Snapshot().Get("/home/blank.txt")
		require.True(t, ok)
		assert.Equal(t, "", e.Content)
	})

	t.Run("failures", func(t *testing.T) {
		s := testutil.NewTestSession(t)
		before := s.Snapshot()
		assert.Equal(t, "echo: no file specified for redirection", testutil.RunOne(t, s, "echo hi >"))
		assert.Equal(t, "echo: invalid path", testutil.RunOne(t, s, "echo hi > f*"))
		assert.Equal(t, "echo: invalid path", testutil.RunOne(t, s, "echo hi > documents/"))
		assert.Equal(t, "echo: cannot write 'documents': Is a directory", testutil.RunOne(t, s, "echo hi > documents"))
		assert.Equal(t, "echo: cannot write 'x/y.txt': No such file or directory", testutil.RunOne(t, s, "echo hi > x/y.txt"))
		assert.Same(t, before, s.Snapshot())
	})
}

func TestTree(t *testing.T) {
	t.Run("seed", func(t *testing.T) {
		s := testutil.NewTestSession(t)
		assert.Equal(t, []string{
			".",
			"├── <dir>documents/</dir>",
			"├── <dir>downloads/</dir>",
			"└── <file>readme.txt</file>",
		}, testutil.Run(t, s, "tree"))
	})

	t.Run("nested", func(t *testing.T) {
		s := testutil.NewTestSession(t)
		testutil.Run(t, s,
			"touch documents/b.txt",
			"mkdir documents/work",
			"touch documents/work/a.txt",
		)
		assert.Equal(t, []string{
			".",
			"├── <dir>documents/</dir>",
			"│   ├── <dir>work/</dir>",
			"│   │   └── <file>a.txt</file>",
			"│   └── <file>b.txt</file>",
			"├── <dir>downloads/</dir>",
			"└── <file>readme.txt</file>",
		}, testutil.Run(t, s, "tree"))
	})

	t.Run("same kind siblings sorted", func(t *testing.T) {
		snap := testutil.SnapshotOf("/home/", "/home/zz/", "/home/c.txt", "/home/aa/", "/home/b.txt")
		s := testutil.NewTestSession(t, vshell.WithSnapshot(snap))
		assert.Equal(t, []string{
			".",
			"├── <dir>aa/</dir>",
			"├── <dir>zz/</dir>",
			"├── <file>b.txt</file>",
			"└── <file>c.txt</file>",
		}, testutil.Run(t, s, "tree"))
	})

	t.Run("empty directory", func(t *testing.T) {
		s := testutil.NewTestSession(t, vshell.WithCwd("/home/downloads"))
		assert.Equal(t, []string{"."}, testutil.Run(t, s, "tree"))
	})

	t.Run("depth cap", func(t *testing.T) {
		snap := testutil.SnapshotOf("/home/", "/home/a/", "/home/a/b/", "/home/a/b/c.txt")
		s := testutil.NewTestSession(t,
			vshell.WithSnapshot(snap),
			vshell.WithInterpreter(vshell.NewInterpreter(vshell.WithMaxTreeDepth(2))),
		)
		assert.Equal(t, []string{
			".",
			"└── <dir>a/</dir>",
			"    └── <dir>b/</dir>",
		}, testutil.Run(t, s, "tree"))
	})
}
