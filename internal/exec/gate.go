package exec

import "time"

// MinVisibleDuration is how long a command must appear to run before its
// result is released. Sub-millisecond commands would otherwise produce an
// imperceptible flash of running state, which looks broken and defeats the
// point of progress feedback.
const MinVisibleDuration = 500 * time.Millisecond

// GateState is the animation gate's position for the current command.
type GateState int

const (
	// GateIdle means no command is in flight.
	GateIdle GateState = iota
	// GateRunning means a command has been spawned and no result has
	// arrived yet.
	GateRunning
	// GateResultBuffered means the result arrived but the minimum visible
	// duration has not elapsed; the result is withheld.
	GateResultBuffered
	// GateSettled means the result has been released to the caller.
	GateSettled
)

// String returns the state name.
func (s GateState) String() string {
	switch s {
	case GateIdle:
		return "idle"
	case GateRunning:
		return "running"
	case GateResultBuffered:
		return "result-buffered"
	case GateSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Gate is the minimum-duration state machine that withholds a completed
// CommandResult until a visible minimum elapsed time has passed. One gate
// instance tracks one in-flight command; Reset it before reuse.
type Gate struct {
	minVisible time.Duration
	state      GateState
	startedAt  time.Time
	buffered   *CommandResult

	// now is replaceable in tests.
	now func() time.Time
}

// NewGate creates a gate with the given minimum visible duration. Pass
// MinVisibleDuration unless a caller has a reason to differ.
func NewGate(minVisible time.Duration) *Gate {
	return &Gate{
		minVisible: minVisible,
		state:      GateIdle,
		now:        time.Now,
	}
}

// State returns the gate's current position.
func (g *Gate) State() GateState {
	return g.state
}

// Begin moves Idle -> Running, recording the command's start time.
func (g *Gate) Begin(startedAt time.Time) {
	g.state = GateRunning
	g.startedAt = startedAt
	g.buffered = nil
}

// Offer hands the gate a completed result. The result is buffered, not yet
// exposed; Poll releases it once the minimum duration has elapsed.
// Offer is a no-op unless the gate is Running.
func (g *Gate) Offer(result *CommandResult) {
	if g.state != GateRunning || result == nil {
		return
	}
	g.buffered = result
	g.state = GateResultBuffered
}

// Poll returns the buffered result once both conditions hold: the process
// finished and the minimum visible duration has elapsed since Begin. It
// returns nil otherwise. The result is released exactly once; afterwards the
// gate is Settled.
func (g *Gate) Poll() *CommandResult {
	if g.state != GateResultBuffered {
		return nil
	}
	if g.now().Sub(g.startedAt) < g.minVisible {
		return nil
	}

	result := g.buffered
	g.buffered = nil
	g.state = GateSettled
	return result
}

// Elapsed returns how long the current command has appeared to run.
func (g *Gate) Elapsed() time.Duration {
	if g.state == GateIdle {
		return 0
	}
	return g.now().Sub(g.startedAt)
}

// Reset discards any buffered result and returns the gate to Idle. Safe to
// call in any state, including teardown while Running: the worker finishes
// naturally and its result is simply dropped.
func (g *Gate) Reset() {
	g.state = GateIdle
	g.buffered = nil
	g.startedAt = time.Time{}
}
