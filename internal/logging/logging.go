package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/KaramelBytes/catalogdash/internal/utils"
)

// Config selects where and how much to log.
type Config struct {
	File  string // empty logs text to Stderr
	Level string
	Debug bool // forces DEBUG
}

// Setup builds the process logger: JSON lines to File when set, otherwise text to stderr.
// The returned closer releases the log file and is never nil.
func Setup(cfg Config, stderr io.Writer) (*slog.Logger, func() error, error) {
	level := ParseLevel(cfg.Level)
	if cfg.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.File == "" {
		if stderr == nil {
			stderr = os.Stderr
		}
		return slog.New(slog.NewTextHandler(stderr, opts)), func() error { return nil }, nil
	}

	logPath, err := utils.ExpandHome(cfg.File)
	if err != nil {
		return nil, nil, err
	}
	if err := utils.EnsureDir(logPath); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(logFile, opts)), logFile.Close, nil
}

// ParseLevel converts a string log level to slog.Level. Unknown values mean WARN.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// KnownLevel reports whether level names one of the supported levels.
func KnownLevel(level string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
		return ParseLevel(level), true
	}
	return slog.LevelWarn, false
}

// NullLogger returns a logger that discards all output.
func NullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
