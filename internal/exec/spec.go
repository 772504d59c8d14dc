// Package exec is the command execution subsystem: it turns developer-authored
// command strings into spawned processes, captures their results, and
// reconciles asynchronous completion with a tick-driven caller through a
// supervisor and a minimum-visible-duration gate.
package exec

import (
	"strings"
	"time"
)

// Mode selects what the engine captures and whether the terminal is handed
// over to the child process.
type Mode int

const (
	// Captured spawns the process, waits, and collects stdout/stderr.
	Captured Mode = iota
	// StatusOnly spawns and waits but discards all output; used for
	// existence and health checks where only success matters.
	StatusOnly
	// Interactive spawns with inherited standard streams. The caller must
	// hold the terminal before invoking this mode.
	Interactive
)

// String returns the mode name for logs and errors.
func (m Mode) String() string {
	switch m {
	case Captured:
		return "captured"
	case StatusOnly:
		return "status-only"
	case Interactive:
		return "interactive"
	default:
		return "unknown"
	}
}

// CommandSpec is an immutable description of a command to run. Build one
// with NewCommand, Shell, or Git and the fluent chainers; nothing mutates it
// after validation.
type CommandSpec struct {
	program     string
	args        []string
	workingDir  string
	env         map[string]string
	mode        Mode
	logCategory string

	// Declared but not enforced by the engine. Kept as a forward-looking
	// parameter; see the package documentation for the cancellation gap.
	timeout time.Duration

	// Original invocation text, shown in logs and the UI. For shell
	// commands this is the raw command string rather than "sh -c ...".
	display string
}

// NewCommand creates a spec that executes a binary directly, without shell
// indirection. The program name must pass the validator's allow-list.
func NewCommand(program string) *CommandSpec {
	return &CommandSpec{
		program: program,
		display: program,
	}
}

// Shell creates a spec that passes the command text to "sh -c". Shell
// metacharacters are permitted under the trusted-config-source policy; see
// Validator.
func Shell(command string) *CommandSpec {
	return &CommandSpec{
		program: "sh",
		args:    []string{"-c", command},
		display: command,
	}
}

// Git creates a spec for a git subcommand.
func Git(subcommand string) *CommandSpec {
	return NewCommand("git").Arg(subcommand)
}

// Arg appends a single argument.
func (c *CommandSpec) Arg(arg string) *CommandSpec {
	c.args = append(c.args, arg)
	c.display = c.display + " " + arg
	return c
}

// Args appends several arguments.
func (c *CommandSpec) Args(args ...string) *CommandSpec {
	for _, a := range args {
		c.Arg(a)
	}
	return c
}

// WorkingDir sets the directory the process runs in.
func (c *CommandSpec) WorkingDir(dir string) *CommandSpec {
	c.workingDir = dir
	return c
}

// Env sets an environment override for the child process.
func (c *CommandSpec) Env(key, value string) *CommandSpec {
	if c.env == nil {
		c.env = make(map[string]string)
	}
	c.env[key] = value
	return c
}

// WithMode sets the execution mode. The default is Captured.
func (c *CommandSpec) WithMode(mode Mode) *CommandSpec {
	c.mode = mode
	return c
}

// Timeout records an execution timeout. The engine does not currently
// enforce it; the field exists so callers can declare intent ahead of
// timeout support landing.
func (c *CommandSpec) Timeout(d time.Duration) *CommandSpec {
	c.timeout = d
	return c
}

// LogAs sets an explicit log category, overriding keyword categorization.
func (c *CommandSpec) LogAs(category string) *CommandSpec {
	c.logCategory = category
	return c
}

// Program returns the program name that will be executed.
func (c *CommandSpec) Program() string { return c.program }

// Mode returns the execution mode.
func (c *CommandSpec) Mode() Mode { return c.mode }

// GetWorkingDir returns the configured working directory, or "" for the
// current directory.
func (c *CommandSpec) GetWorkingDir() string { return c.workingDir }

// LogCategory returns the explicit log category, or "" when the categorizer
// should decide.
func (c *CommandSpec) LogCategory() string { return c.logCategory }

// Display returns the original invocation text for logs and the UI.
func (c *CommandSpec) Display() string { return c.display }

// ShellText returns the command text passed to the shell, or "" when the
// spec executes a binary directly.
func (c *CommandSpec) ShellText() string {
	if !c.isShell() || len(c.args) < 2 {
		return ""
	}
	return c.args[1]
}

func (c *CommandSpec) isShell() bool {
	return (c.program == "sh" || c.program == "bash") &&
		len(c.args) >= 1 && c.args[0] == "-c"
}

// CommandResult is the captured outcome of one execution. It is created
// exactly once per execution by the engine (or synthesized by the supervisor
// for spawn failures) and handed to the caller through the gate.
type CommandResult struct {
	Command   string // original invocation text
	Stdout    string
	Stderr    string
	ExitCode  int
	Success   bool // derived solely from ExitCode == 0
	StartedAt time.Time
	Duration  time.Duration
}

// Summary returns a short single-line description for status displays.
func (r *CommandResult) Summary() string {
	status := "ok"
	if !r.Success {
		status = "failed"
	}
	return strings.TrimSpace(r.Command) + ": " + status
}
