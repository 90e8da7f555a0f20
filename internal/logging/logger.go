// Package logging provides the opt-in JSON debug log for the CLI layer.
// The engine itself never reads logging state; trace output is a concern
// of the caller, not of the algorithms.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog with the file handle it owns.
type Logger struct {
	*slog.Logger
	file *os.File
}

// New creates a Logger writing JSON records to the given file path,
// truncating any previous run. An empty path returns a no-op logger.
func New(path string) (*Logger, error) {
	if path == "" {
		return Nop(), nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &Logger{Logger: slog.New(handler), file: f}, nil
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync debug log: %w", err)
	}
	return l.file.Close()
}
