package exec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForResult polls TryTake until the worker delivers or the deadline
// passes, mirroring the caller's tick loop.
func waitForResult(t *testing.T, sup *Supervisor, pending *PendingExecution) *CommandResult {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if result := sup.TryTake(pending); result != nil {
			return result
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatal("timed out waiting for command result")
	return nil
}

func TestSpawnDeliversExactlyOneResult(t *testing.T) {
	sup := NewSupervisor(NewEngine())

	pending, err := sup.Spawn(Shell("echo done"))
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.NotEqual(t, "", pending.ID.String())

	result := waitForResult(t, sup, pending)
	assert.True(t, result.Success)
	assert.Equal(t, "done\n", result.Stdout)

	// The channel is drained; further polls yield nothing.
	assert.Nil(t, sup.TryTake(pending))
}

func TestSpawnRejectsSecondCommandWhileBusy(t *testing.T) {
	sup := NewSupervisor(NewEngine())

	pending, err := sup.Spawn(Shell("sleep 0.2"))
	require.NoError(t, err)
	assert.True(t, sup.Busy())

	_, err = sup.Spawn(Shell("echo nope"))
	assert.ErrorIs(t, err, ErrBusy)

	// After the pending result is consumed, a new spawn succeeds.
	waitForResult(t, sup, pending)
	assert.False(t, sup.Busy())

	next, err := sup.Spawn(Shell("echo again"))
	require.NoError(t, err)
	waitForResult(t, sup, next)
}

func TestSpawnFailureArrivesAsFailedResult(t *testing.T) {
	sup := NewSupervisor(NewEngine())

	pending, err := sup.Spawn(NewCommand("devdeck-no-such-binary"))
	require.NoError(t, err)

	result := waitForResult(t, sup, pending)
	assert.False(t, result.Success)
	assert.Equal(t, -1, result.ExitCode)
	assert.Contains(t, result.Stderr, "devdeck-no-such-binary")
}

func TestSpawnStatusOnlyMode(t *testing.T) {
	sup := NewSupervisor(NewEngine())

	pending, err := sup.Spawn(Shell("echo hidden").WithMode(StatusOnly))
	require.NoError(t, err)

	result := waitForResult(t, sup, pending)
	assert.True(t, result.Success)
	assert.Empty(t, result.Stdout)
	assert.Empty(t, result.Stderr)
}

func TestSpawnStatusOnlyFailure(t *testing.T) {
	sup := NewSupervisor(NewEngine())

	pending, err := sup.Spawn(Shell("exit 5").WithMode(StatusOnly))
	require.NoError(t, err)

	result := waitForResult(t, sup, pending)
	assert.False(t, result.Success)
	assert.Equal(t, 1, result.ExitCode)
}

func TestAbandonFreesTheSlot(t *testing.T) {
	sup := NewSupervisor(NewEngine())

	pending, err := sup.Spawn(Shell("sleep 0.2"))
	require.NoError(t, err)

	// Abandoning lets the worker finish on its own; the slot is free
	// immediately and the eventual result is discarded.
	sup.Abandon(pending)
	assert.False(t, sup.Busy())

	next, err := sup.Spawn(Shell("echo fresh"))
	require.NoError(t, err)
	result := waitForResult(t, sup, next)
	assert.Equal(t, "fresh\n", result.Stdout)
}

func TestRuntimeFailureIsFullyReported(t *testing.T) {
	sup := NewSupervisor(NewEngine())

	pending, err := sup.Spawn(Shell("echo broke >&2; exit 1"))
	require.NoError(t, err)

	result := waitForResult(t, sup, pending)
	assert.False(t, result.Success)
	assert.Equal(t, 1, result.ExitCode)
	assert.Equal(t, "broke\n", result.Stderr)
}
