package core

import "errors"

// Error kinds. Command failures wrap one of these so callers can classify
// them with errors.Is.
var (
	ErrInvalidPath           = errors.New("invalid path")
	ErrNotFound              = errors.New("no such file or directory")
	ErrNotADirectory         = errors.New("not a directory")
	ErrNotAFile              = errors.New("not a file")
	ErrAlreadyExists         = errors.New("file exists")
	ErrMissingOperand        = errors.New("missing operand")
	ErrUnknownCommand        = errors.New("command not found")
	ErrMissingRedirectTarget = errors.New("no file specified for redirection")
)

// StoreError reports a failed persistence operation on a snapshot file.
type StoreError struct {
	Op    string
	Path  string
	Cause error
}

func (e *StoreError) Error() string {
	return "store " + e.Op + " " + e.Path + ": " + e.Cause.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
