package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ConsoleLogger writes leveled diagnostics to a writer with [HH:MM:SS]
// timestamps. Color is enabled automatically when the writer is a TTY and
// NO_COLOR is unset.
type ConsoleLogger struct {
	writer   io.Writer
	logLevel string
	useColor bool
	mu       sync.Mutex
}

// NewConsoleLogger creates a console logger. A nil writer silently discards
// all messages. An empty or invalid level defaults to info.
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:   writer,
		logLevel: normalizeLevel(logLevel),
		useColor: isTerminalWriter(writer),
	}
}

// isTerminalWriter reports whether the writer is a TTY-backed stdout/stderr.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if f != os.Stdout && f != os.Stderr {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var (
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
	debugColor = color.New(color.FgCyan)
)

// Debugf logs a debug-level message.
func (cl *ConsoleLogger) Debugf(format string, args ...interface{}) {
	cl.logf("debug", "DEBUG", debugColor, format, args...)
}

// Infof logs an info-level message.
func (cl *ConsoleLogger) Infof(format string, args ...interface{}) {
	cl.logf("info", "INFO", nil, format, args...)
}

// Warnf logs a warning-level message.
func (cl *ConsoleLogger) Warnf(format string, args ...interface{}) {
	cl.logf("warn", "WARN", warnColor, format, args...)
}

// Errorf logs an error-level message.
func (cl *ConsoleLogger) Errorf(format string, args ...interface{}) {
	cl.logf("error", "ERROR", errorColor, format, args...)
}

func (cl *ConsoleLogger) logf(level, tag string, c *color.Color, format string, args ...interface{}) {
	if cl.writer == nil {
		return
	}
	if levelToInt(level) < levelToInt(cl.logLevel) {
		return
	}

	message := fmt.Sprintf(format, args...)
	if cl.useColor && c != nil {
		tag = c.Sprint(tag)
	}

	cl.mu.Lock()
	defer cl.mu.Unlock()
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", time.Now().Format("15:04:05"), tag, message)
}
