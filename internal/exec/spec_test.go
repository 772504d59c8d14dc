package exec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuilderDirectCommand(t *testing.T) {
	spec := NewCommand("go").Arg("build").Arg("./...").WorkingDir("/tmp/proj")

	assert.Equal(t, "go", spec.Program())
	assert.Equal(t, "go build ./...", spec.Display())
	assert.Equal(t, "/tmp/proj", spec.GetWorkingDir())
	assert.Equal(t, Captured, spec.Mode())
}

func TestBuilderShellCommand(t *testing.T) {
	spec := Shell("npm run build && npm test")

	assert.Equal(t, "sh", spec.Program())
	assert.Equal(t, "npm run build && npm test", spec.ShellText())
	// Display shows the developer's command, not the sh -c wrapper.
	assert.Equal(t, "npm run build && npm test", spec.Display())
}

func TestBuilderGitHelper(t *testing.T) {
	spec := Git("status")

	assert.Equal(t, "git", spec.Program())
	assert.Equal(t, "git status", spec.Display())
}

func TestBuilderEnvAndMode(t *testing.T) {
	spec := NewCommand("npm").Args("run", "dev").
		Env("NODE_ENV", "development").
		WithMode(StatusOnly).
		Timeout(30 * time.Second).
		LogAs("build")

	assert.Equal(t, StatusOnly, spec.Mode())
	assert.Equal(t, "build", spec.LogCategory())
	assert.Equal(t, "npm run dev", spec.Display())
}

func TestShellTextEmptyForDirectCommand(t *testing.T) {
	assert.Empty(t, NewCommand("git").Arg("status").ShellText())
}

func TestResultSummary(t *testing.T) {
	ok := &CommandResult{Command: "go build", Success: true}
	failed := &CommandResult{Command: "go vet", Success: false}

	assert.Equal(t, "go build: ok", ok.Summary())
	assert.Equal(t, "go vet: failed", failed.Summary())
}
