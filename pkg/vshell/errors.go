package vshell

import "fmt"

// CommandError is a failed command. Its message is the exact line shown to
// the user and it unwraps to one of the core error kinds.
type CommandError struct {
	Kind error
	Msg  string
}

func (e *CommandError) Error() string {
	return e.Msg
}

func (e *CommandError) Unwrap() error {
	return e.Kind
}

func commandError(kind error, format string, args ...interface{}) *CommandError {
	return &CommandError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
