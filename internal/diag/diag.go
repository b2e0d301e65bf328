// Package diag provides the client's internal diagnostic channel. Dropped
// events and transport failures are interesting to whoever debugs the
// telemetry pipeline, but must never reach the host application's stdout
// or stderr. Diagnostics go to a rolling file under ~/.infraiq/logs, and
// only when explicitly enabled; the default logger discards everything.
package diag

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// EnvVar enables diagnostics when set to a truthy value.
const EnvVar = "INFRAIQ_DEBUG"

func envDebug() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvVar))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// New returns the diagnostic logger. Unless debugging is requested via
// the settings file or INFRAIQ_DEBUG, or no log path is available, it
// returns a discard logger.
func New(logPath string, debug bool) *slog.Logger {
	if (!debug && !envDebug()) || logPath == "" {
		return Discard()
	}
	w := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
		MaxAge:     14, // days
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h).With(slog.String("component", "wraith-client"))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
