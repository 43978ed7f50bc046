// Package logging builds the process logger: a slog text handler writing to
// stderr and, optionally, to a log file, tagged with a per-run id.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Options selects the level and destinations of a logger.
type Options struct {
	Level string
	// File, when set, receives a copy of every record. It is appended to.
	File string
	// Out defaults to os.Stderr.
	Out io.Writer
}

// ParseLevel converts a level name to a slog.Level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger carrying a fresh run_id and a close func for the log
// file, if any.
func New(opt Options) (*slog.Logger, func() error, error) {
	out := opt.Out
	if out == nil {
		out = os.Stderr
	}
	closeFn := func() error { return nil }
	if opt.File != "" {
		f, err := openLogFile(opt.File)
		if err != nil {
			return nil, nil, err
		}
		out = io.MultiWriter(out, f)
		closeFn = f.Close
	}
	h := slog.NewTextHandler(out, &slog.HandlerOptions{Level: ParseLevel(opt.Level)})
	return slog.New(h).With(slog.String("run_id", uuid.NewString())), closeFn, nil
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
