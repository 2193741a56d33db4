// Package logging provides file-based logging for brutal.
// The terminal UI owns stdout/stderr, so diagnostics and swallowed errors
// go to a single append-only log file instead.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/runoshun/brutal/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes formatted entries to a log file.
// Fields are ordered to minimize memory padding.
type Logger struct {
	out   io.Writer
	file  *os.File
	now   func() time.Time
	path  string
	mu    sync.Mutex
	level slog.Level
}

// New creates a Logger that appends to path.
// If path is empty, logging is disabled (returns a no-op logger).
// The file is opened lazily on the first entry.
func New(path string, level slog.Level) *Logger {
	return &Logger{
		path:  path,
		level: level,
		now:   time.Now,
	}
}

// NewWriter creates a Logger that writes to w.
func NewWriter(w io.Writer, level slog.Level) *Logger {
	return &Logger{
		out:   w,
		level: level,
		now:   time.Now,
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Path returns the log file path ("" when writing to a writer or disabled).
func (l *Logger) Path() string {
	return l.path
}

// writer opens or returns the output. Caller must hold l.mu.
func (l *Logger) writer() (io.Writer, error) {
	if l.out != nil {
		return l.out, nil
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	// G302: Log file is append-only and readable by the owner's group
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.file = f
	l.out = f
	return f, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.out = nil
	return err
}

// formatLog formats a log entry in the specified format.
// Format: [2025-12-30 09:32:51] [INFO] [todo-1] [category] message
func formatLog(t time.Time, level slog.Level, todoID int, category, msg string) string {
	scope := "global"
	if todoID > 0 {
		scope = fmt.Sprintf("todo-%d", todoID)
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l *Logger) log(level slog.Level, todoID int, category, msg string) {
	if l.path == "" && l.out == nil {
		return // Logging disabled
	}

	if level < l.level {
		return
	}

	entry := formatLog(l.now(), level, todoID, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()
	if w, err := l.writer(); err == nil {
		_, _ = io.WriteString(w, entry)
	}
}

// Info logs an info message.
func (l *Logger) Info(todoID int, category, msg string) {
	l.log(slog.LevelInfo, todoID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(todoID int, category, msg string) {
	l.log(slog.LevelDebug, todoID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(todoID int, category, msg string) {
	l.log(slog.LevelWarn, todoID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(todoID int, category, msg string) {
	l.log(slog.LevelError, todoID, category, msg)
}
