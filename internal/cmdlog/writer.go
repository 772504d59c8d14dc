// Package cmdlog persists command execution results to rotating per-category
// log files under a project's .devdeck/logs/commands/ directory.
package cmdlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/marcus/devdeck/internal/category"
	"github.com/marcus/devdeck/internal/exec"
)

// DefaultKeepCount is how many log files are retained per category after
// each write. Oldest files are evicted first, ordered by modification time
// with the timestamped filename as a tie-break.
const DefaultKeepCount = 20

// Writer writes one log file per command invocation and enforces the
// per-category retention limit. It is invoked synchronously after gate
// settlement, so there is never a concurrent writer for a given project.
type Writer struct {
	projectRoot string
	keepCount   int
}

// NewWriter creates a writer rooted at the project directory.
func NewWriter(projectRoot string) *Writer {
	return &Writer{
		projectRoot: projectRoot,
		keepCount:   DefaultKeepCount,
	}
}

// NewWriterWithKeepCount creates a writer with a custom retention limit.
func NewWriterWithKeepCount(projectRoot string, keepCount int) *Writer {
	return &Writer{
		projectRoot: projectRoot,
		keepCount:   keepCount,
	}
}

// CommandsDir returns the root of the per-category log tree.
func (w *Writer) CommandsDir() string {
	return filepath.Join(w.projectRoot, ".devdeck", "logs", "commands")
}

// Write persists a command result under the given category and returns the
// log file path. The file records the command text, timestamp, exit code and
// duration; captured stdout/stderr blocks are included only when the command
// failed, since success output is rarely worth the disk.
// After the write, files beyond the retention limit are deleted.
func (w *Writer) Write(cat category.Category, result *exec.CommandResult) (string, error) {
	logDir := filepath.Join(w.CommandsDir(), cat.LogDir())
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := result.StartedAt
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	name := fmt.Sprintf("%s-%s.log", timestamp.Format("2006-01-02-150405"), slug(result.Command))
	logPath := uniquePath(filepath.Join(logDir, name))

	var sb strings.Builder
	fmt.Fprintf(&sb, "Command: %s\n", result.Command)
	fmt.Fprintf(&sb, "Timestamp: %s\n", timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Exit Code: %d\n", result.ExitCode)
	fmt.Fprintf(&sb, "Duration: %s\n", result.Duration.Round(time.Millisecond))

	if !result.Success {
		sb.WriteString("\n--- STDOUT ---\n")
		sb.WriteString(result.Stdout)
		sb.WriteString("\n--- STDERR ---\n")
		sb.WriteString(result.Stderr)
	}

	if err := os.WriteFile(logPath, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write command log: %w", err)
	}

	if err := w.cleanup(logDir); err != nil {
		return logPath, fmt.Errorf("log written but cleanup failed: %w", err)
	}

	return logPath, nil
}

// cleanup deletes the oldest files beyond the keep count.
func (w *Writer) cleanup(logDir string) error {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return err
	}

	type logFile struct {
		name    string
		path    string
		modTime time.Time
	}

	var files []logFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{
			name:    entry.Name(),
			path:    filepath.Join(logDir, entry.Name()),
			modTime: info.ModTime(),
		})
	}

	// Newest first. Filesystems with coarse timestamps can hand several files
	// the same mtime, so ties fall back to the name: the timestamp prefix in
	// each filename makes lexically larger mean newer.
	sort.Slice(files, func(i, j int) bool {
		if !files[i].modTime.Equal(files[j].modTime) {
			return files[i].modTime.After(files[j].modTime)
		}
		return files[i].name > files[j].name
	})

	for _, f := range files[min(w.keepCount, len(files)):] {
		os.Remove(f.path)
	}

	return nil
}

// slug extracts a short filename-safe fragment from command text. For
// "cargo build" it returns "build"; for "git status" it returns "status".
func slug(command string) string {
	parts := strings.Fields(command)

	var source string
	switch {
	case len(parts) >= 2:
		source = parts[1]
	case len(parts) == 1:
		source = parts[0]
	default:
		return "cmd"
	}

	var sb strings.Builder
	for _, r := range source {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			sb.WriteRune(r)
		}
	}

	if sb.Len() == 0 {
		return "cmd"
	}
	return sb.String()
}

// uniquePath appends a numeric suffix when several commands land in the same
// second with the same slug, so no invocation overwrites another's log.
func uniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
