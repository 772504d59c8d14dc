package exec

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteCapturesOutput(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Execute(Shell("echo hello; echo oops >&2"))
	require.NoError(t, err)

	assert.Equal(t, "hello\n", result.Stdout)
	assert.Equal(t, "oops\n", result.Stderr)
	assert.Equal(t, 0, result.ExitCode)
	assert.True(t, result.Success)
	assert.False(t, result.StartedAt.IsZero())
}

func TestExecuteNonZeroExitIsNormalResult(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Execute(Shell("exit 1"))
	require.NoError(t, err)

	assert.Equal(t, 1, result.ExitCode)
	assert.False(t, result.Success)
}

func TestExecuteSpawnFailure(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Execute(NewCommand("devdeck-no-such-binary"))
	require.Error(t, err)

	var spawnErr *SpawnError
	require.ErrorAs(t, err, &spawnErr)
	assert.Contains(t, spawnErr.Error(), "devdeck-no-such-binary")
}

func TestExecuteAppliesWorkingDir(t *testing.T) {
	engine := NewEngine()
	dir := t.TempDir()

	result, err := engine.Execute(Shell("pwd").WorkingDir(dir))
	require.NoError(t, err)

	// macOS tempdirs resolve through /private, so compare resolved paths.
	got := strings.TrimSpace(result.Stdout)
	want, _ := filepath.EvalSymlinks(dir)
	gotResolved, _ := filepath.EvalSymlinks(got)
	assert.Equal(t, want, gotResolved)
}

func TestExecuteAppliesEnvOverrides(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Execute(Shell("echo $DEVDECK_TEST_VAR").Env("DEVDECK_TEST_VAR", "42"))
	require.NoError(t, err)

	assert.Equal(t, "42", strings.TrimSpace(result.Stdout))
}

func TestExecuteStatusDiscardsOutput(t *testing.T) {
	engine := NewEngine()

	ok, err := engine.ExecuteStatus(Shell("echo ignored").WithMode(StatusOnly))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = engine.ExecuteStatus(Shell("exit 3").WithMode(StatusOnly))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExecuteStatusSpawnFailure(t *testing.T) {
	engine := NewEngine()

	_, err := engine.ExecuteStatus(NewCommand("devdeck-no-such-binary"))
	var spawnErr *SpawnError
	require.ErrorAs(t, err, &spawnErr)
}

func TestExecuteInteractiveFailureReportsExitCode(t *testing.T) {
	engine := NewEngine()

	err := engine.ExecuteInteractive(Shell("exit 7"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit code 7")
}

func TestDefaultEditorPrefersEnvironment(t *testing.T) {
	t.Setenv("EDITOR", "myeditor")
	assert.Equal(t, "myeditor", DefaultEditor(NewEngine()))

	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "othereditor")
	assert.Equal(t, "othereditor", DefaultEditor(NewEngine()))
}

func TestDefaultEditorFallsBack(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	editor := DefaultEditor(NewEngine())
	assert.NotEmpty(t, editor)

	// Whatever was probed must be a known terminal editor.
	known := append([]string{}, commonEditors...)
	assert.Contains(t, known, editor)
}
