package gcode

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrInvalidCommand matches InvalidCommandError.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrUnsupportedCommand matches UnsupportedCommandError.
	ErrUnsupportedCommand = errors.New("unsupported command")

	// ErrIO matches IOError.
	ErrIO = errors.New("input/output error")
)

// InvalidCommandError reports a base command that is neither supported nor
// known-unsupported.
type InvalidCommandError struct {
	// Command is the base command, empty if unknown.
	Command string

	// Line is the 1-based line number, 0 if unknown.
	Line int
}

func (e *InvalidCommandError) Error() string {
	switch {
	case e.Line > 0 && e.Command != "":
		return fmt.Sprintf("line %d: invalid command %q", e.Line, e.Command)
	case e.Line > 0:
		return fmt.Sprintf("line %d: invalid command", e.Line)
	case e.Command != "":
		return fmt.Sprintf("invalid command %q", e.Command)
	default:
		return ErrInvalidCommand.Error()
	}
}

// Is reports whether target is ErrInvalidCommand.
func (e *InvalidCommandError) Is(target error) bool {
	return target == ErrInvalidCommand
}

// UnsupportedCommandError reports a recognized command that is not handled
// yet. It carries no line number.
type UnsupportedCommandError struct {
	Command string
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("unsupported command %q", e.Command)
}

// Is reports whether target is ErrUnsupportedCommand.
func (e *UnsupportedCommandError) Is(target error) bool {
	return target == ErrUnsupportedCommand
}

// IOError wraps a failure to open or read the input. It is always fatal.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", ErrIO, e.Err)
}

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}
