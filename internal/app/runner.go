// Package app coordinates the command lifecycle the UI drives: validate,
// categorize, spawn, poll through the animation gate, then write logs and
// persist the settled outcome.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/marcus/devdeck/internal/buildstate"
	"github.com/marcus/devdeck/internal/category"
	"github.com/marcus/devdeck/internal/cmdlog"
	"github.com/marcus/devdeck/internal/config"
	"github.com/marcus/devdeck/internal/exec"
	"github.com/marcus/devdeck/internal/history"
	"github.com/marcus/devdeck/internal/logger"
	"github.com/marcus/devdeck/internal/term"
)

// Outcome is a settled command: the released result plus where it was filed.
type Outcome struct {
	Result   *exec.CommandResult
	Category category.Category
	LogPath  string
}

// activeCommand tracks the one in-flight command and the context it needs at
// settle time.
type activeCommand struct {
	pending     *exec.PendingExecution
	projectRoot string
	projectName string
	category    category.Category
}

// Runner owns the single optional in-flight command. Start rejects with
// ErrBusy while one is outstanding, including the window where the process
// has exited but the gate is still withholding the result.
type Runner struct {
	cfg        *config.Config
	log        logger.Logger
	validator  *exec.Validator
	engine     *exec.Engine
	supervisor *exec.Supervisor
	gate       *exec.Gate
	store      *history.Store

	active *activeCommand
}

// NewRunner builds a runner from the global config. The history store is
// opened when enabled; a store that fails to open degrades to no history
// rather than failing the runner.
func NewRunner(cfg *config.Config, log logger.Logger) *Runner {
	r := &Runner{
		cfg:       cfg,
		log:       log,
		validator: exec.NewValidator(),
		engine:    exec.NewEngine(),
		gate:      exec.NewGate(cfg.UI.MinVisibleDuration),
	}
	r.supervisor = exec.NewSupervisor(r.engine)

	if cfg.History.Enabled {
		store, err := history.NewStore(historyPath(cfg))
		if err != nil {
			log.Warnf("history disabled: %v", err)
		} else {
			r.store = store
			if deleted, err := store.Prune(context.Background(), cfg.History.KeepDays); err != nil {
				log.Warnf("history prune failed: %v", err)
			} else if deleted > 0 {
				log.Debugf("history: pruned %d old executions", deleted)
			}
		}
	}

	return r
}

// historyPath resolves the history database location.
func historyPath(cfg *config.Config) string {
	if cfg.History.DBPath != "" {
		return config.ExpandTilde(cfg.History.DBPath)
	}
	home, err := config.DevdeckHome()
	if err != nil {
		return ":memory:"
	}
	return filepath.Join(home, "history.db")
}

// Close releases the history store.
func (r *Runner) Close() error {
	if r.store != nil {
		return r.store.Close()
	}
	return nil
}

// Busy reports whether a command is in flight or withheld by the gate.
func (r *Runner) Busy() bool {
	return r.active != nil
}

// Elapsed returns how long the current command has appeared to run.
func (r *Runner) Elapsed() time.Duration {
	return r.gate.Elapsed()
}

// Start validates and spawns one project command. The text comes from the
// project's devdeck.yaml, so shell idioms are allowed; the validator still
// checks the first executed program against the allow-list.
func (r *Runner) Start(projectRoot, projectName, commandText string) error {
	if r.active != nil {
		return exec.ErrBusy
	}

	spec := exec.Shell(commandText).WorkingDir(projectRoot)
	if err := r.validator.Validate(spec); err != nil {
		return fmt.Errorf("command rejected: %w", err)
	}

	cat := category.Categorize(commandText)
	if cat == category.Build {
		if err := buildstate.MarkRunning(projectRoot, commandText); err != nil {
			r.log.Warnf("failed to record running build state: %v", err)
		}
	}

	pending, err := r.supervisor.Spawn(spec)
	if err != nil {
		return err
	}

	r.gate.Begin(pending.StartedAt)
	r.active = &activeCommand{
		pending:     pending,
		projectRoot: projectRoot,
		projectName: projectName,
		category:    cat,
	}
	r.log.Infof("started [%s] %s (%s)", cat, commandText, pending.ID)
	return nil
}

// Poll advances the in-flight command by one tick. It returns nil until the
// result is both delivered and past the minimum visible duration, then
// settles the command exactly once: command log, build state, history.
func (r *Runner) Poll() *Outcome {
	if r.active == nil {
		return nil
	}

	if result := r.supervisor.TryTake(r.active.pending); result != nil {
		r.gate.Offer(result)
	}

	result := r.gate.Poll()
	if result == nil {
		return nil
	}

	outcome := r.settle(result)
	r.gate.Reset()
	r.active = nil
	return outcome
}

// settle files a released result: command log, build state for builds, and
// the history database. Persistence failures are logged and never turn a
// completed command into an error.
func (r *Runner) settle(result *exec.CommandResult) *Outcome {
	active := r.active

	writer := cmdlog.NewWriterWithKeepCount(active.projectRoot, r.cfg.Logging.Retention)
	logPath, err := writer.Write(active.category, result)
	if err != nil {
		r.log.Warnf("failed to write command log: %v", err)
		logPath = ""
	}

	if active.category == category.Build {
		if err := buildstate.MarkSettled(active.projectRoot, result.Command, result.Success); err != nil {
			r.log.Warnf("failed to record build state: %v", err)
		}
	}

	if r.store != nil {
		record := &history.Execution{
			ID:         active.pending.ID,
			Command:    result.Command,
			Category:   active.category.LogDir(),
			Project:    active.projectName,
			WorkingDir: active.projectRoot,
			ExitCode:   result.ExitCode,
			Success:    result.Success,
			Duration:   result.Duration,
			StartedAt:  result.StartedAt,
		}
		if err := r.store.Record(context.Background(), record); err != nil {
			r.log.Warnf("failed to record history: %v", err)
		}
	}

	r.log.Infof("settled [%s] %s", active.category, result.Summary())
	return &Outcome{Result: result, Category: active.category, LogPath: logPath}
}

// Run is the blocking convenience form: Start, then poll at the UI refresh
// cadence until the outcome is released. The context stops the wait, not the
// process; an abandoned command finishes in the background unrecorded.
func (r *Runner) Run(ctx context.Context, projectRoot, projectName, commandText string) (*Outcome, error) {
	if err := r.Start(projectRoot, projectName, commandText); err != nil {
		return nil, err
	}

	ticker := time.NewTicker(r.cfg.UI.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Abandon()
			return nil, ctx.Err()
		case <-ticker.C:
			if outcome := r.Poll(); outcome != nil {
				return outcome, nil
			}
		}
	}
}

// Abandon drops the in-flight command without waiting for it. The process
// finishes naturally; its result is discarded and nothing is logged.
func (r *Runner) Abandon() {
	if r.active == nil {
		return
	}
	r.supervisor.Abandon(r.active.pending)
	r.gate.Reset()
	r.active = nil
}

// Interactive runs a spec with inherited stdio, blocking until it exits.
// Used for editors and other full-terminal programs; nothing is captured or
// logged. The terminal state is snapshotted and restored so a misbehaving
// child cannot leave the terminal wedged.
func (r *Runner) Interactive(spec *exec.CommandSpec) error {
	if r.active != nil {
		return exec.ErrBusy
	}
	if err := r.validator.Validate(spec); err != nil {
		return fmt.Errorf("command rejected: %w", err)
	}

	guard, err := term.Acquire()
	if err != nil {
		return fmt.Errorf("interactive mode unavailable: %w", err)
	}
	defer func() {
		if err := guard.Restore(); err != nil {
			r.log.Warnf("%v", err)
		}
	}()

	return r.engine.ExecuteInteractive(spec)
}

// EditFile opens the configured editor on a file inside the project.
func (r *Runner) EditFile(projectRoot, file string) error {
	editor := exec.DefaultEditor(r.engine)
	spec := exec.NewCommand(editor).
		Arg(file).
		WorkingDir(projectRoot).
		WithMode(exec.Interactive)
	return r.Interactive(spec)
}
