package exec

import (
	"errors"
	"fmt"
)

// ErrEmptyCommand indicates a spec with no program or an empty shell string.
var ErrEmptyCommand = errors.New("empty command")

// ErrNotWhitelisted indicates the program is not on the allow-list. Use
// errors.Is against this sentinel; the concrete error carries the program
// name.
var ErrNotWhitelisted = errors.New("command not in whitelist")

// ErrBusy indicates a spawn was requested while a previous command is still
// in flight. One foreground command at a time, by design.
var ErrBusy = errors.New("a command is already running")

// NotWhitelistedError reports which program failed allow-list validation.
type NotWhitelistedError struct {
	Program string
}

// Error implements the error interface.
func (e *NotWhitelistedError) Error() string {
	return fmt.Sprintf("command %q not in whitelist", e.Program)
}

// Unwrap makes errors.Is(err, ErrNotWhitelisted) work.
func (e *NotWhitelistedError) Unwrap() error {
	return ErrNotWhitelisted
}

// SpawnError indicates the OS refused to create the process (missing binary,
// permission denied). The command never ran; this is distinct from a command
// that ran and exited non-zero, which is a normal CommandResult.
type SpawnError struct {
	Command string
	Err     error
}

// Error implements the error interface.
func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %q: %v", e.Command, e.Err)
}

// Unwrap returns the underlying OS error.
func (e *SpawnError) Unwrap() error {
	return e.Err
}
