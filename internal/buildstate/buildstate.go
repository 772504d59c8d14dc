// Package buildstate persists a small per-project record of the most recent
// build command, so the project browser can show build health without
// rerunning anything.
package buildstate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/marcus/devdeck/internal/filelock"
)

// Status is the outcome of the last build command.
type Status string

const (
	// StatusSuccess means the last build command exited zero.
	StatusSuccess Status = "Success"
	// StatusFailed means the last build command exited non-zero.
	StatusFailed Status = "Failed"
	// StatusRunning means a build command has been spawned and has not
	// settled yet.
	StatusRunning Status = "Running"
)

// Record is the persisted build state: when it happened, how it went, and
// which task ran. Written atomically so a crash mid-write never leaves a
// truncated file.
type Record struct {
	Timestamp int64  `json:"timestamp"`
	Status    Status `json:"status"`
	Task      string `json:"task"`
}

// statePath returns the build state file location for a project.
func statePath(projectRoot string) string {
	return filepath.Join(projectRoot, ".devdeck", "state", "build.json")
}

// Load reads the build state for a project. A missing or unreadable file
// returns (nil, nil): no build has happened, which is not an error.
func Load(projectRoot string) (*Record, error) {
	data, err := os.ReadFile(statePath(projectRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read build state: %w", err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse build state: %w", err)
	}
	return &record, nil
}

// Save writes the build state using a temp-file-then-rename sequence guarded
// by a file lock, so a second devdeck process cannot interleave writes.
func Save(projectRoot string, record Record) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode build state: %w", err)
	}

	if err := filelock.LockAndWrite(statePath(projectRoot), data); err != nil {
		return fmt.Errorf("failed to save build state: %w", err)
	}
	return nil
}

// MarkRunning records that a build task has been spawned.
func MarkRunning(projectRoot, task string) error {
	return Save(projectRoot, Record{
		Timestamp: time.Now().Unix(),
		Status:    StatusRunning,
		Task:      task,
	})
}

// MarkSettled records the final outcome of a build task.
func MarkSettled(projectRoot, task string, success bool) error {
	status := StatusFailed
	if success {
		status = StatusSuccess
	}
	return Save(projectRoot, Record{
		Timestamp: time.Now().Unix(),
		Status:    status,
		Task:      task,
	})
}
