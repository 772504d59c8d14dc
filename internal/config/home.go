package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DevdeckHome returns the global devdeck directory, creating it if needed.
// Priority order:
//  1. DEVDECK_HOME environment variable (if set)
//  2. ~/.devdeck
func DevdeckHome() (string, error) {
	home := os.Getenv("DEVDECK_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate home directory: %w", err)
		}
		home = filepath.Join(userHome, ".devdeck")
	}

	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("failed to create devdeck home: %w", err)
	}
	return home, nil
}

// GlobalConfigPath returns the global config file location.
func GlobalConfigPath() (string, error) {
	home, err := DevdeckHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yaml"), nil
}

// ExpandTilde expands a leading ~/ in a path to the user's home directory.
// Paths without a tilde are returned unchanged.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return userHome
		}
		return filepath.Join(userHome, path[2:])
	}
	return path
}
