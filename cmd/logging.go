package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

var logLevel = new(slog.LevelVar)

// setupLogging installs a text handler on stderr. SCOOPY_LOG_LEVEL sets the
// level; --verbose forces debug.
func setupLogging(verbose bool) error {
	level, err := parseLevel(os.Getenv("SCOOPY_LOG_LEVEL"))
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}
	logLevel.Set(level)
	slog.SetDefault(newLogger(os.Stderr))
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid SCOOPY_LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

// logToFile sends logs to path while the terminal belongs to the TUI.
// The returned function restores stderr logging.
func logToFile(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	prev := slog.Default()
	slog.SetDefault(newLogger(f))
	return func() {
		slog.SetDefault(prev)
		f.Close()
	}, nil
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}
