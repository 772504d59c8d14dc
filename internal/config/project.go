package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// ProjectMarker is the filename that identifies a directory as a devdeck
// project and carries its command declarations.
const ProjectMarker = "devdeck.yaml"

// ProjectMeta describes the project itself.
type ProjectMeta struct {
	Name        string `yaml:"name"`
	Ecosystem   string `yaml:"ecosystem"`
	Type        string `yaml:"type"`
	Description string `yaml:"description,omitempty"`
}

// ProjectConfig is the per-project devdeck.yaml: project metadata plus named
// command strings. The command text is trusted developer-authored
// configuration; shell idioms like && and | are expected and allowed.
type ProjectConfig struct {
	Project  ProjectMeta       `yaml:"project"`
	Commands map[string]string `yaml:"commands"`
}

// LoadProject reads the devdeck.yaml in the given project directory.
func LoadProject(projectDir string) (*ProjectConfig, error) {
	path := filepath.Join(projectDir, ProjectMarker)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.Project.Name == "" {
		cfg.Project.Name = filepath.Base(projectDir)
	}

	return &cfg, nil
}

// CommandNames returns the declared command names in stable sorted order,
// for deterministic listings.
func (c *ProjectConfig) CommandNames() []string {
	names := make([]string, 0, len(c.Commands))
	for name := range c.Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
