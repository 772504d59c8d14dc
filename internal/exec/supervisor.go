package exec

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// PendingExecution is the supervisor-held handle for one in-flight command:
// the receiving end of a one-shot channel, the start timestamp, and the spec
// that produced it. It exists from spawn until the caller consumes the
// result or abandons the execution.
type PendingExecution struct {
	ID        uuid.UUID
	Spec      *CommandSpec
	StartedAt time.Time

	// Buffered so the worker can always deliver and exit, even when the
	// execution was abandoned and nobody will ever read the result.
	resultCh chan *CommandResult
}

// Supervisor runs the engine off the caller's thread and enforces the
// one-command-in-flight invariant: at most one PendingExecution exists at a
// time, and a second Spawn while one is outstanding returns ErrBusy rather
// than queueing.
type Supervisor struct {
	engine *Engine

	mu      sync.Mutex
	pending *PendingExecution
}

// NewSupervisor creates a supervisor around the given engine.
func NewSupervisor(engine *Engine) *Supervisor {
	return &Supervisor{engine: engine}
}

// Spawn starts a validated spec on a worker goroutine and returns
// immediately. Exactly one CommandResult is delivered through the pending
// handle's channel: the captured result, or a synthesized failed result when
// the OS refused to spawn the process. Failed commands are normal,
// fully-reported outcomes; nothing is retried.
//
// Returns ErrBusy if a previous execution has not been consumed or
// abandoned.
func (s *Supervisor) Spawn(spec *CommandSpec) (*PendingExecution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		return nil, ErrBusy
	}

	pending := &PendingExecution{
		ID:        uuid.New(),
		Spec:      spec,
		StartedAt: time.Now(),
		resultCh:  make(chan *CommandResult, 1),
	}
	s.pending = pending

	go s.run(pending)

	return pending, nil
}

// run executes the spec and delivers exactly one result, then exits.
func (s *Supervisor) run(pending *PendingExecution) {
	spec := pending.Spec

	var result *CommandResult
	switch spec.Mode() {
	case StatusOnly:
		ok, err := s.engine.ExecuteStatus(spec)
		if err != nil {
			result = spawnFailureResult(spec, pending.StartedAt, err)
		} else {
			result = statusResult(spec, pending.StartedAt, ok)
		}
	default:
		var err error
		result, err = s.engine.Execute(spec)
		if err != nil {
			result = spawnFailureResult(spec, pending.StartedAt, err)
		}
	}

	pending.resultCh <- result
}

// TryTake polls the pending execution without blocking. It returns nil until
// the worker has delivered; once the result is returned the pending slot is
// cleared and a subsequent Spawn succeeds.
func (s *Supervisor) TryTake(pending *PendingExecution) *CommandResult {
	select {
	case result := <-pending.resultCh:
		s.mu.Lock()
		if s.pending == pending {
			s.pending = nil
		}
		s.mu.Unlock()
		return result
	default:
		return nil
	}
}

// Abandon releases the pending slot without waiting for the worker. The
// worker finishes naturally (there is no cancellation) and its result is
// discarded. Used when the caller is torn down mid-execution.
func (s *Supervisor) Abandon(pending *PendingExecution) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == pending {
		s.pending = nil
	}
}

// Busy reports whether a command is currently in flight.
func (s *Supervisor) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// spawnFailureResult converts a spawn-time error into the same failed-result
// shape the caller renders for any other outcome.
func spawnFailureResult(spec *CommandSpec, start time.Time, err error) *CommandResult {
	return &CommandResult{
		Command:   spec.Display(),
		Stderr:    err.Error(),
		ExitCode:  -1,
		Success:   false,
		StartedAt: start,
		Duration:  time.Since(start),
	}
}

// statusResult synthesizes a result for StatusOnly executions, which carry
// no output by contract.
func statusResult(spec *CommandSpec, start time.Time, ok bool) *CommandResult {
	exitCode := 0
	if !ok {
		exitCode = 1
	}
	return &CommandResult{
		Command:   spec.Display(),
		ExitCode:  exitCode,
		Success:   ok,
		StartedAt: start,
		Duration:  time.Since(start),
	}
}
