package vshell

import (
	"errors"
	"strings"

	"github.com/arthur-debert/vshell/pkg/vshell/filesystem"
)

// DefaultMaxTreeDepth bounds how deep tree descends.
const DefaultMaxTreeDepth = 64

// State is what a command runs against.
type State struct {
	Cwd      string
	Snapshot *filesystem.Snapshot
}

// Result is the outcome of one command line.
type Result struct {
	// Command is the parsed command, valid when Known is true.
	Command Command
	Known   bool

	// Lines are appended to the session output.
	Lines []string
	// Snapshot is non-nil when the command committed a replacement.
	Snapshot *filesystem.Snapshot
	// Cwd is non-empty when the command changed directory.
	Cwd string
	// Clear resets the session output before Lines are appended.
	Clear bool
	// Err is the failure rendered into Lines, if any.
	Err error
}

// Mutated reports whether the command replaced the snapshot.
func (r Result) Mutated() bool {
	return r.Snapshot != nil
}

// Interpreter parses command lines and applies them to a State. It holds no
// filesystem state of its own.
type Interpreter struct {
	maxTreeDepth int
}

// InterpreterOption configures an Interpreter.
type InterpreterOption func(*Interpreter)

// WithMaxTreeDepth overrides DefaultMaxTreeDepth.
func WithMaxTreeDepth(depth int) InterpreterOption {
	return func(in *Interpreter) {
		if depth > 0 {
			in.maxTreeDepth = depth
		}
	}
}

// NewInterpreter creates an interpreter.
func NewInterpreter(opts ...InterpreterOption) *Interpreter {
	in := &Interpreter{maxTreeDepth: DefaultMaxTreeDepth}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Execute runs one command line. It never fails: errors are rendered as a
// single output line and leave both the directory and the snapshot as they
// were.
func (in *Interpreter) Execute(state State, line string) Result {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Result{}
	}

	name, args := fields[0], fields[1:]
	cmd, ok := ParseCommand(name)
	if !ok {
		err := unknownCommand(name)
		return Result{Lines: []string{err.Error()}, Err: err}
	}

	res, err := handlers[cmd](in, invocation{state: state, args: args})
	if err != nil {
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			cmdErr = &CommandError{Kind: err, Msg: cmd.String() + ": " + err.Error()}
		}
		return Result{Command: cmd, Known: true, Lines: []string{cmdErr.Error()}, Err: cmdErr}
	}

	res.Command, res.Known = cmd, true
	return res
}
