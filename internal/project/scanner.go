// Package project discovers devdeck projects on the local filesystem and
// reports their git and build state for the browser.
package project

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/marcus/devdeck/internal/buildstate"
	"github.com/marcus/devdeck/internal/config"
	"github.com/marcus/devdeck/internal/logger"
)

// scanMaxDepth bounds the workspace walk; projects nested deeper than this
// are not discovered.
const scanMaxDepth = 3

// skipDirs are directory names never descended into during discovery.
var skipDirs = map[string]bool{
	"node_modules": true,
	"target":       true,
	"vendor":       true,
	"dist":         true,
}

// Project is a discovered project: its directory and its devdeck.yaml.
type Project struct {
	Path   string
	Config *config.ProjectConfig
}

// Name returns the project's display name.
func (p *Project) Name() string {
	return p.Config.Project.Name
}

// BuildState loads the project's last recorded build outcome, or nil when no
// build has run.
func (p *Project) BuildState() *buildstate.Record {
	record, err := buildstate.Load(p.Path)
	if err != nil {
		return nil
	}
	return record
}

// Command is one invocable entry in a project's command list.
type Command struct {
	Name        string
	Description string
	Text        string
}

// Commands returns the project's declared commands plus the built-in git
// commands, sorted by name with the built-ins last.
func (p *Project) Commands() []Command {
	var commands []Command
	for _, name := range p.Config.CommandNames() {
		commands = append(commands, Command{
			Name:        name,
			Description: "Run: " + name,
			Text:        p.Config.Commands[name],
		})
	}

	commands = append(commands,
		Command{Name: "git status", Description: "Show git status", Text: "git status"},
		Command{Name: "git diff", Description: "Show uncommitted changes", Text: "git diff"},
		Command{Name: "git pull", Description: "Pull from remote", Text: "git pull"},
	)
	return commands
}

// Discover scans the workspace and every registered directory for projects,
// identified by a devdeck.yaml marker file. Unreadable directories and
// broken project configs are logged and skipped, never fatal.
func Discover(cfg *config.Config, log logger.Logger) []Project {
	var projects []Project

	if cfg.Workspace.AutoScan {
		root := config.ExpandTilde(cfg.Workspace.Path)
		found := scanDirectory(root, log)
		log.Infof("discovery: %d projects in workspace %s", len(found), root)
		projects = append(projects, found...)
	}

	for _, registered := range cfg.Workspace.Registered {
		root := config.ExpandTilde(registered)
		found := scanDirectory(root, log)
		log.Infof("discovery: %d projects in registered path %s", len(found), root)
		projects = append(projects, found...)
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Name() < projects[j].Name()
	})
	return projects
}

// scanDirectory walks one root looking for devdeck.yaml markers.
func scanDirectory(root string, log logger.Logger) []Project {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		log.Warnf("discovery: skipping %s: not a readable directory", root)
		return nil
	}

	var projects []Project

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entry, keep walking
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if skipDirs[name] || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			// A directory at exactly scanMaxDepth is still visited so a
			// marker file inside it is found; only deeper dirs are pruned.
			if depth(root, path) > scanMaxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Name() != config.ProjectMarker {
			return nil
		}

		projectDir := filepath.Dir(path)
		projectCfg, err := config.LoadProject(projectDir)
		if err != nil {
			log.Warnf("discovery: failed to load %s: %v", path, err)
			return nil
		}

		projects = append(projects, Project{Path: projectDir, Config: projectCfg})
		// No nested projects below a project root.
		return filepath.SkipDir
	})

	return projects
}

// depth counts path segments below root.
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return len(strings.Split(rel, string(filepath.Separator)))
}
