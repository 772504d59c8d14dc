package project

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/marcus/devdeck/internal/exec"
)

// GitStatus summarizes a working tree, parsed from porcelain git output.
type GitStatus struct {
	IsRepo    bool
	Branch    string
	Ahead     int
	Behind    int
	Staged    int
	Modified  int
	Untracked int
}

// Clean reports whether the working tree has no pending changes.
func (s GitStatus) Clean() bool {
	return s.Staged == 0 && s.Modified == 0 && s.Untracked == 0
}

// Summary renders the status for a single list row, e.g. "main +2 ~1 ?3".
func (s GitStatus) Summary() string {
	if !s.IsRepo {
		return "not a git repo"
	}

	parts := []string{s.Branch}
	if s.Ahead > 0 {
		parts = append(parts, "↑"+strconv.Itoa(s.Ahead))
	}
	if s.Behind > 0 {
		parts = append(parts, "↓"+strconv.Itoa(s.Behind))
	}
	if s.Staged > 0 {
		parts = append(parts, "+"+strconv.Itoa(s.Staged))
	}
	if s.Modified > 0 {
		parts = append(parts, "~"+strconv.Itoa(s.Modified))
	}
	if s.Untracked > 0 {
		parts = append(parts, "?"+strconv.Itoa(s.Untracked))
	}
	if s.Clean() {
		parts = append(parts, "clean")
	}
	return strings.Join(parts, " ")
}

// ReadGitStatus runs git in the given directory and parses the result. A
// directory that is not a repository, or any git failure, yields a zero
// status with IsRepo false rather than an error.
func ReadGitStatus(engine *exec.Engine, dir string) GitStatus {
	// Cheap check first so non-repos never spawn a process.
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return GitStatus{}
	}

	spec := exec.Git("status").Args("--porcelain", "--branch").WorkingDir(dir)
	result, err := engine.Execute(spec)
	if err != nil || !result.Success {
		return GitStatus{}
	}
	return parsePorcelain(result.Stdout)
}

// parsePorcelain reads `git status --porcelain --branch` output. The first
// line carries the branch header, the rest are one file each with a
// two-character XY state prefix.
func parsePorcelain(out string) GitStatus {
	status := GitStatus{IsRepo: true, Branch: "unknown"}

	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "## ") {
			parseBranchHeader(line[3:], &status)
			continue
		}
		if len(line) < 2 {
			continue
		}

		x, y := line[0], line[1]
		switch {
		case x == '?' && y == '?':
			status.Untracked++
		default:
			if x != ' ' {
				status.Staged++
			}
			if y != ' ' {
				status.Modified++
			}
		}
	}
	return status
}

// parseBranchHeader handles forms like "main...origin/main [ahead 1, behind 2]",
// "main" and "No commits yet on main".
func parseBranchHeader(header string, status *GitStatus) {
	if rest, ok := strings.CutPrefix(header, "No commits yet on "); ok {
		status.Branch = rest
		return
	}

	name := header
	if idx := strings.Index(name, "..."); idx >= 0 {
		name = name[:idx]
	}
	if idx := strings.Index(name, " "); idx >= 0 {
		name = name[:idx]
	}
	status.Branch = name

	open := strings.Index(header, "[")
	end := strings.Index(header, "]")
	if open < 0 || end < open {
		return
	}
	for _, part := range strings.Split(header[open+1:end], ",") {
		part = strings.TrimSpace(part)
		if n, ok := strings.CutPrefix(part, "ahead "); ok {
			status.Ahead, _ = strconv.Atoi(n)
		}
		if n, ok := strings.CutPrefix(part, "behind "); ok {
			status.Behind, _ = strconv.Atoi(n)
		}
	}
}
