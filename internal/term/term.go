// Package term owns terminal handoff for interactive command execution.
// The execution engine never touches terminal modes; callers acquire a Guard
// before spawning an interactive process and restore it afterwards, on every
// exit path.
package term

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	xterm "golang.org/x/term"
)

// IsTerminal reports whether stdin and stdout are attached to a terminal,
// which interactive mode requires.
func IsTerminal() bool {
	return isattyFd(os.Stdin.Fd()) && isattyFd(os.Stdout.Fd())
}

func isattyFd(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Guard is a scoped snapshot of the terminal state. Acquire it before
// handing the terminal to a child process; Restore puts the terminal back
// regardless of how the child exited.
type Guard struct {
	fd    int
	state *xterm.State
}

// Acquire snapshots the current terminal state on stdin. It fails when no
// terminal is attached, which callers should treat as "interactive mode
// unavailable" rather than a fatal error.
func Acquire() (*Guard, error) {
	fd := int(os.Stdin.Fd())
	if !isattyFd(os.Stdin.Fd()) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}

	state, err := xterm.GetState(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to read terminal state: %w", err)
	}

	return &Guard{fd: fd, state: state}, nil
}

// Restore puts the terminal back into the state captured by Acquire. Safe to
// call multiple times; callers should defer it immediately after Acquire so
// a failing child process cannot leave the terminal wedged.
func (g *Guard) Restore() error {
	if g == nil || g.state == nil {
		return nil
	}
	if err := xterm.Restore(g.fd, g.state); err != nil {
		return fmt.Errorf("failed to restore terminal state: %w", err)
	}
	return nil
}
