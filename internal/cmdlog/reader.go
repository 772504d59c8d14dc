package cmdlog

import (
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Entry describes one command log file on disk.
type Entry struct {
	Path     string
	Category string
	Filename string
	ModTime  time.Time
}

// Recent lists the newest command logs for a project across all categories,
// sorted newest first and truncated to limit. A project with no log tree
// yields an empty slice, not an error.
func Recent(projectRoot string, limit int) []Entry {
	commandsDir := filepath.Join(projectRoot, ".devdeck", "logs", "commands")

	categories, err := os.ReadDir(commandsDir)
	if err != nil {
		return nil
	}

	var entries []Entry
	for _, catEntry := range categories {
		if !catEntry.IsDir() {
			continue
		}

		catDir := filepath.Join(commandsDir, catEntry.Name())
		files, err := os.ReadDir(catDir)
		if err != nil {
			continue
		}

		for _, file := range files {
			if file.IsDir() || filepath.Ext(file.Name()) != ".log" {
				continue
			}
			info, err := file.Info()
			if err != nil {
				continue
			}
			entries = append(entries, Entry{
				Path:     filepath.Join(catDir, file.Name()),
				Category: catEntry.Name(),
				Filename: file.Name(),
				ModTime:  info.ModTime(),
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModTime.After(entries[j].ModTime)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
