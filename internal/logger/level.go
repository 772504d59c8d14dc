// Package logger provides runtime diagnostics logging for devdeck.
//
// Two sinks are offered: a console logger with color support for interactive
// use, and a file logger writing to .devdeck/logs/ for post-mortem
// debugging. Both are thread-safe and filter by level.
package logger

import "strings"

// Log level ordering used for filtering.
const (
	levelTrace = 0
	levelDebug = 1
	levelInfo  = 2
	levelWarn  = 3
	levelError = 4
)

// Logger is the leveled diagnostics interface consumed by the app and CLI.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// normalizeLevel lowercases and validates a level name, defaulting to info.
func normalizeLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// levelToInt maps a level name to its ordering value.
func levelToInt(level string) int {
	switch normalizeLevel(level) {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}
