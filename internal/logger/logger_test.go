package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLevel(t *testing.T) {
	assert.Equal(t, "debug", normalizeLevel("DEBUG"))
	assert.Equal(t, "warn", normalizeLevel("  warn "))
	assert.Equal(t, "info", normalizeLevel(""))
	assert.Equal(t, "info", normalizeLevel("loud"))
}

func TestConsoleLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "warn")

	cl.Debugf("hidden %d", 1)
	cl.Infof("hidden %d", 2)
	cl.Warnf("shown %d", 3)
	cl.Errorf("shown %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 3")
	assert.Contains(t, out, "[ERROR] shown 4")
}

func TestConsoleLoggerNilWriter(t *testing.T) {
	cl := NewConsoleLogger(nil, "info")
	// Must not panic.
	cl.Infof("nowhere")
}

func TestConsoleLoggerNoColorForPlainWriter(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")
	cl.Errorf("boom")

	// No ANSI escapes when the writer is not a TTY.
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestFileLoggerWritesAndLinks(t *testing.T) {
	dir := t.TempDir()

	fl, err := NewFileLogger(dir, "debug")
	require.NoError(t, err)

	fl.Infof("started project %s", "webapp")
	fl.Debugf("detail")
	require.NoError(t, fl.Close())

	data, err := os.ReadFile(fl.RunFile())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "=== devdeck run log ===")
	assert.Contains(t, content, "[INFO] started project webapp")
	assert.Contains(t, content, "[DEBUG] detail")

	// latest.log points at the current run file.
	target, err := os.Readlink(filepath.Join(dir, "latest.log"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(fl.RunFile()), target)
}

func TestFileLoggerLevelFilter(t *testing.T) {
	dir := t.TempDir()

	fl, err := NewFileLogger(dir, "error")
	require.NoError(t, err)
	fl.Infof("quiet")
	fl.Errorf("loud")
	require.NoError(t, fl.Close())

	data, err := os.ReadFile(fl.RunFile())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.True(t, strings.Contains(string(data), "loud"))
}

func TestFileLoggerCloseTwice(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "info")
	require.NoError(t, err)
	require.NoError(t, fl.Close())
	assert.NoError(t, fl.Close())
}
