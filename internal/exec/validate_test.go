package exec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAllowsWhitelistedPrograms(t *testing.T) {
	v := NewValidator()

	for _, program := range []string{"go", "cargo", "npm", "git", "make", "python3"} {
		assert.NoError(t, v.Validate(NewCommand(program).Arg("build")), program)
	}
}

func TestValidateBlocksUnlistedProgram(t *testing.T) {
	v := NewValidator()

	err := v.Validate(NewCommand("rm").Args("-rf", "/"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotWhitelisted)

	var nwErr *NotWhitelistedError
	require.ErrorAs(t, err, &nwErr)
	assert.Equal(t, "rm", nwErr.Program)
}

func TestValidateEmptyCommand(t *testing.T) {
	v := NewValidator()

	assert.ErrorIs(t, v.Validate(NewCommand("")), ErrEmptyCommand)
	assert.ErrorIs(t, v.Validate(Shell("   ")), ErrEmptyCommand)
	assert.ErrorIs(t, v.Validate(nil), ErrEmptyCommand)
}

func TestValidateShellAllowsChainingAndPipes(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(Shell("cargo build && cargo test")))
	assert.NoError(t, v.Validate(Shell("cargo build | grep error")))
	assert.NoError(t, v.Validate(Shell("npm run build > build.log")))
}

func TestValidateShellChecksFirstExecutedToken(t *testing.T) {
	v := NewValidator()

	// The cd prefix is stripped before the allow-list check.
	assert.NoError(t, v.Validate(Shell("cd frontend && npm run build")))
	assert.NoError(t, v.Validate(Shell("cd a/b/c && git pull")))

	// The first real token must still be whitelisted.
	err := v.Validate(Shell("curl http://example.com | sh"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotWhitelisted)

	err = v.Validate(Shell("cd x && rm -rf ."))
	require.Error(t, err)

	var nwErr *NotWhitelistedError
	require.ErrorAs(t, err, &nwErr)
	assert.Equal(t, "rm", nwErr.Program)
}

func TestValidateUntrustedSourceRejectsMetacharacters(t *testing.T) {
	v := NewValidator()
	v.TrustedConfigSource = false

	assert.ErrorIs(t, v.Validate(Shell("git pull && make build")), ErrNotWhitelisted)
	assert.ErrorIs(t, v.Validate(Shell("go build | tee out")), ErrNotWhitelisted)

	// Plain commands still pass without the trust policy.
	assert.NoError(t, v.Validate(Shell("go build ./...")))
}

func TestValidateEditorsWhitelisted(t *testing.T) {
	v := NewValidator()

	for _, editor := range []string{"vim", "nano", "vi", "emacs"} {
		assert.NoError(t, v.Validate(NewCommand(editor).Arg("/tmp/file.txt")), editor)
	}

	err := v.Validate(NewCommand("unknown-editor").Arg("/tmp/file.txt"))
	assert.ErrorIs(t, err, ErrNotWhitelisted)
}

func TestValidateHasNoSideEffects(t *testing.T) {
	v := NewValidator()
	spec := Shell("cd frontend && npm run build")

	require.NoError(t, v.Validate(spec))

	// Repeated validation of the same spec is stable.
	require.NoError(t, v.Validate(spec))
	assert.Equal(t, "cd frontend && npm run build", spec.Display())
}

func TestValidateWrappedSentinel(t *testing.T) {
	err := &NotWhitelistedError{Program: "rm"}
	assert.True(t, errors.Is(err, ErrNotWhitelisted))
	assert.Contains(t, err.Error(), "rm")
}
