package exec

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	osexec "os/exec"
	"time"
)

// Engine performs the actual process spawn for a validated CommandSpec.
// It dispatches on the spec's mode and applies working directory and
// environment overrides identically across all modes.
//
// The engine never touches terminal modes: for Interactive specs the caller
// must release the terminal first (see the term package) and reacquire it
// after the child exits.
type Engine struct{}

// NewEngine creates an execution engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Execute runs a spec in Captured mode: spawn, wait synchronously, collect
// stdout and stderr as text. A process that ran and exited non-zero is a
// normal result with Success false; only a spawn-time failure returns a
// *SpawnError.
func (e *Engine) Execute(spec *CommandSpec) (*CommandResult, error) {
	start := time.Now()

	cmd := e.build(spec)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	duration := time.Since(start)

	if err != nil {
		var exitErr *osexec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, &SpawnError{Command: spec.Display(), Err: err}
		}
	}

	// ExitCode is -1 when the process was killed by a signal.
	exitCode := cmd.ProcessState.ExitCode()

	return &CommandResult{
		Command:   spec.Display(),
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		ExitCode:  exitCode,
		Success:   exitCode == 0,
		StartedAt: start,
		Duration:  duration,
	}, nil
}

// ExecuteStatus runs a spec in StatusOnly mode: identical spawn and wait
// semantics but all output is discarded. Returns whether the command exited
// zero; the error is non-nil only when the process could not be spawned.
func (e *Engine) ExecuteStatus(spec *CommandSpec) (bool, error) {
	cmd := e.build(spec)

	err := cmd.Run()
	if err != nil {
		var exitErr *osexec.ExitError
		if !errors.As(err, &exitErr) {
			return false, &SpawnError{Command: spec.Display(), Err: err}
		}
		return false, nil
	}

	return true, nil
}

// ExecuteInteractive runs a spec with inherited standard streams, for
// editors and other commands that need the terminal. The caller owns the
// terminal handoff; the engine only spawns and waits.
func (e *Engine) ExecuteInteractive(spec *CommandSpec) error {
	cmd := e.build(spec)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *osexec.ExitError
		if !errors.As(err, &exitErr) {
			return &SpawnError{Command: spec.Display(), Err: err}
		}
		return fmt.Errorf("interactive command %q failed with exit code %d",
			spec.Display(), exitErr.ExitCode())
	}

	return nil
}

// build constructs the os/exec command with the spec's working directory and
// environment overrides applied.
func (e *Engine) build(spec *CommandSpec) *osexec.Cmd {
	cmd := osexec.Command(spec.program, spec.args...)

	if spec.workingDir != "" {
		cmd.Dir = spec.workingDir
	}

	if len(spec.env) > 0 {
		env := os.Environ()
		for key, value := range spec.env {
			env = append(env, key+"="+value)
		}
		cmd.Env = env
	}

	return cmd
}
