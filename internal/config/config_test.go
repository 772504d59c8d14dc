package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "~/projects", cfg.Workspace.Path)
	assert.Equal(t, 16*time.Millisecond, cfg.UI.RefreshInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.UI.MinVisibleDuration)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 20, cfg.Logging.Retention)
	assert.True(t, cfg.History.Enabled)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
workspace:
  path: ~/code
  registered:
    - ~/work/extra
ui:
  min_visible_duration: 250ms
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "~/code", cfg.Workspace.Path)
	assert.Equal(t, []string{"~/work/extra"}, cfg.Workspace.Registered)
	// auto_scan omitted from the file keeps its default.
	assert.True(t, cfg.Workspace.AutoScan)
	assert.Equal(t, 250*time.Millisecond, cfg.UI.MinVisibleDuration)
	// Untouched values keep their defaults.
	assert.Equal(t, 16*time.Millisecond, cfg.UI.RefreshInterval)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 20, cfg.Logging.Retention)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workspace: [not a map"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadInvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  refresh_interval: often\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()
	content := `
project:
  name: webapp
  ecosystem: node
  type: web
commands:
  build: npm run build
  test: npm test
  deploy-check: cd infra && make check
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectMarker), []byte(content), 0644))

	cfg, err := LoadProject(dir)
	require.NoError(t, err)

	assert.Equal(t, "webapp", cfg.Project.Name)
	assert.Equal(t, "npm run build", cfg.Commands["build"])
	assert.Equal(t, []string{"build", "deploy-check", "test"}, cfg.CommandNames())
}

func TestLoadProjectDefaultsNameToDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectMarker), []byte("commands:\n  build: make\n"), 0644))

	cfg, err := LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), cfg.Project.Name)
}

func TestLoadProjectMissingMarker(t *testing.T) {
	_, err := LoadProject(t.TempDir())
	assert.Error(t, err)
}

func TestDevdeckHomeRespectsEnvOverride(t *testing.T) {
	home := filepath.Join(t.TempDir(), "customhome")
	t.Setenv("DEVDECK_HOME", home)

	got, err := DevdeckHome()
	require.NoError(t, err)
	assert.Equal(t, home, got)
	assert.DirExists(t, got)
}

func TestExpandTilde(t *testing.T) {
	userHome, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(userHome, "projects"), ExpandTilde("~/projects"))
	assert.Equal(t, userHome, ExpandTilde("~"))
	assert.Equal(t, "/absolute/path", ExpandTilde("/absolute/path"))
	assert.Equal(t, "relative/path", ExpandTilde("relative/path"))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Workspace.Path = "~/src"
	cfg.UI.MinVisibleDuration = 750 * time.Millisecond
	cfg.Logging.Retention = 5
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "~/src", loaded.Workspace.Path)
	assert.Equal(t, 750*time.Millisecond, loaded.UI.MinVisibleDuration)
	assert.Equal(t, 5, loaded.Logging.Retention)
}
