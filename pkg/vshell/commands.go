package vshell

import (
	"github.com/arthur-debert/vshell/pkg/vshell/core"
)

// Command is one of the fixed set of shell commands.
type Command int

const (
	CmdHelp Command = iota
	CmdLs
	CmdCd
	CmdPwd
	CmdMkdir
	CmdTouch
	CmdRm
	CmdCat
	CmdEcho
	CmdClear
	CmdTree
)

var commandNames = [...]string{
	CmdHelp:  "help",
	CmdLs:    "ls",
	CmdCd:    "cd",
	CmdPwd:   "pwd",
	CmdMkdir: "mkdir",
	CmdTouch: "touch",
	CmdRm:    "rm",
	CmdCat:   "cat",
	CmdEcho:  "echo",
	CmdClear: "clear",
	CmdTree:  "tree",
}

var commandsByName = func() map[string]Command {
	m := make(map[string]Command, len(commandNames))
	for c, name := range commandNames {
		m[name] = Command(c)
	}
	return m
}()

// String returns the name typed to invoke the command.
func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// ParseCommand maps a typed name to its command.
func ParseCommand(name string) (Command, bool) {
	c, ok := commandsByName[name]
	return c, ok
}

// Commands returns every command in help order.
func Commands() []Command {
	out := make([]Command, len(commandNames))
	for i := range commandNames {
		out[i] = Command(i)
	}
	return out
}

// Mutating reports whether the command can replace the snapshot.
func (c Command) Mutating() bool {
	switch c {
	case CmdMkdir, CmdTouch, CmdRm, CmdEcho:
		return true
	default:
		return false
	}
}

var helpLines = []string{
	"Available commands:",
	"ls [dir] - List directory contents",
	"cd <dir> - Change directory",
	"pwd - Print working directory",
	"mkdir <dir> - Create directory",
	"touch <file> - Create file",
	"rm <path> - Remove file or directory",
	"cat <file> - Display file contents",
	"echo <text> [> file] - Display text or write to file",
	"clear - Clear terminal",
	"tree - Display directory structure",
}

// invocation is what a handler sees: the state before the command and the
// arguments after the command name.
type invocation struct {
	state State
	args  []string
}

func (inv invocation) arg(i int) (string, bool) {
	if i < len(inv.args) {
		return inv.args[i], true
	}
	return "", false
}

func (inv invocation) resolve(token string) string {
	return Resolve(token, inv.state.Cwd)
}

type handler func(in *Interpreter, inv invocation) (Result, error)

var handlers = [...]handler{
	CmdHelp:  (*Interpreter).help,
	CmdLs:    (*Interpreter).ls,
	CmdCd:    (*Interpreter).cd,
	CmdPwd:   (*Interpreter).pwd,
	CmdMkdir: (*Interpreter).mkdir,
	CmdTouch: (*Interpreter).touch,
	CmdRm:    (*Interpreter).rm,
	CmdCat:   (*Interpreter).cat,
	CmdEcho:  (*Interpreter).echo,
	CmdClear: (*Interpreter).clear,
	CmdTree:  (*Interpreter).tree,
}

func (in *Interpreter) help(inv invocation) (Result, error) {
	return Result{Lines: append([]string(nil), helpLines...)}, nil
}

func (in *Interpreter) clear(inv invocation) (Result, error) {
	return Result{Clear: true}, nil
}

func (in *Interpreter) pwd(inv invocation) (Result, error) {
	return Result{Lines: []string{inv.state.Cwd}}, nil
}

func unknownCommand(name string) *CommandError {
	return commandError(core.ErrUnknownCommand, "%s: command not found", name)
}
