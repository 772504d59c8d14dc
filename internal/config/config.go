// Package config loads and persists devdeck configuration: the global
// workspace settings in ~/.devdeck/config.yaml and per-project devdeck.yaml
// files declaring named commands.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/marcus/devdeck/internal/filelock"
)

// WorkspaceConfig describes where projects are discovered.
type WorkspaceConfig struct {
	// Path is the primary workspace directory scanned for projects.
	Path string `yaml:"path"`

	// AutoScan enables scanning the primary workspace on startup.
	AutoScan bool `yaml:"auto_scan"`

	// Registered lists extra directories to scan in addition to the
	// workspace.
	Registered []string `yaml:"registered"`
}

// UIConfig holds timing knobs for the rendering loop.
type UIConfig struct {
	// RefreshInterval is the tick cadence of the rendering loop.
	RefreshInterval time.Duration `yaml:"refresh_interval"`

	// MinVisibleDuration is how long a command must appear to run before
	// its result is shown.
	MinVisibleDuration time.Duration `yaml:"min_visible_duration"`
}

// MarshalYAML writes durations in "500ms" form so saved configs read back
// through the same string parsing Load uses.
func (u UIConfig) MarshalYAML() (interface{}, error) {
	return map[string]string{
		"refresh_interval":     u.RefreshInterval.String(),
		"min_visible_duration": u.MinVisibleDuration.String(),
	}, nil
}

// LoggingConfig controls diagnostics and command log output.
type LoggingConfig struct {
	// Level sets diagnostics verbosity (trace, debug, info, warn, error).
	Level string `yaml:"level"`

	// Retention is how many command log files are kept per category.
	Retention int `yaml:"retention"`
}

// HistoryConfig controls the command history database.
type HistoryConfig struct {
	// Enabled turns history recording on.
	Enabled bool `yaml:"enabled"`

	// DBPath is the SQLite database location. Empty means
	// ~/.devdeck/history.db.
	DBPath string `yaml:"db_path"`

	// KeepDays is how long history records are retained before pruning.
	KeepDays int `yaml:"keep_days"`
}

// Config is the global devdeck configuration.
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace"`
	UI        UIConfig        `yaml:"ui"`
	Logging   LoggingConfig   `yaml:"logging"`
	History   HistoryConfig   `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			Path:       "~/projects",
			AutoScan:   true,
			Registered: []string{},
		},
		UI: UIConfig{
			RefreshInterval:    16 * time.Millisecond,
			MinVisibleDuration: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Retention: 20,
		},
		History: HistoryConfig{
			Enabled:  true,
			KeepDays: 90,
		},
	}
}

// Load reads the global config from the given path. A missing file returns
// defaults without error; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations arrive as strings ("500ms"), so parse through an
	// intermediate shape before merging over defaults.
	type yamlUI struct {
		RefreshInterval    string `yaml:"refresh_interval"`
		MinVisibleDuration string `yaml:"min_visible_duration"`
	}
	type yamlWorkspace struct {
		Path       string   `yaml:"path"`
		AutoScan   *bool    `yaml:"auto_scan"`
		Registered []string `yaml:"registered"`
	}
	type yamlHistory struct {
		Enabled  *bool  `yaml:"enabled"`
		DBPath   string `yaml:"db_path"`
		KeepDays int    `yaml:"keep_days"`
	}
	type yamlConfig struct {
		Workspace *yamlWorkspace `yaml:"workspace"`
		UI        *yamlUI        `yaml:"ui"`
		Logging   *LoggingConfig `yaml:"logging"`
		History   *yamlHistory   `yaml:"history"`
	}

	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if raw.Workspace != nil {
		if raw.Workspace.Path != "" {
			cfg.Workspace.Path = raw.Workspace.Path
		}
		if raw.Workspace.AutoScan != nil {
			cfg.Workspace.AutoScan = *raw.Workspace.AutoScan
		}
		if raw.Workspace.Registered != nil {
			cfg.Workspace.Registered = raw.Workspace.Registered
		}
	}

	if raw.UI != nil {
		if raw.UI.RefreshInterval != "" {
			d, err := time.ParseDuration(raw.UI.RefreshInterval)
			if err != nil {
				return nil, fmt.Errorf("invalid refresh_interval %q: %w", raw.UI.RefreshInterval, err)
			}
			cfg.UI.RefreshInterval = d
		}
		if raw.UI.MinVisibleDuration != "" {
			d, err := time.ParseDuration(raw.UI.MinVisibleDuration)
			if err != nil {
				return nil, fmt.Errorf("invalid min_visible_duration %q: %w", raw.UI.MinVisibleDuration, err)
			}
			cfg.UI.MinVisibleDuration = d
		}
	}

	if raw.Logging != nil {
		if raw.Logging.Level != "" {
			cfg.Logging.Level = raw.Logging.Level
		}
		if raw.Logging.Retention > 0 {
			cfg.Logging.Retention = raw.Logging.Retention
		}
	}

	if raw.History != nil {
		if raw.History.Enabled != nil {
			cfg.History.Enabled = *raw.History.Enabled
		}
		if raw.History.DBPath != "" {
			cfg.History.DBPath = raw.History.DBPath
		}
		if raw.History.KeepDays > 0 {
			cfg.History.KeepDays = raw.History.KeepDays
		}
	}

	return cfg, nil
}

// Save writes the config atomically so a crash mid-write never truncates it.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := filelock.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
