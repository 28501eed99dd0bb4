// Package logging wires the CLI's structured logging, following the
// slog.SetDefault(logging.Logger(...)) convention in
// jpfielding-dicos.go/cmd/ctl/cmd/root.go and adding rotation via
// gopkg.in/natefinch/lumberjack.v2 for the --log-file flag.
package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a text-handler slog.Logger writing to w at the given level.
func New(w io.Writer, addSource bool, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: addSource,
		Level:     level,
	}))
}

// NewRotating returns an io.Writer backed by a size/age/backup-bounded
// rotating log file, suitable for passing to New as the output sink.
func NewRotating(path string, maxSizeMB, maxBackups, maxAgeDays int) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
}
