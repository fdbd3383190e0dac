package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the process logger: JSON to stdout, debug level in dev.
// When LogDir is set, output is also written to a rotating file.
// The returned closer must be closed on shutdown (it is a no-op without a file).
func NewLogger(cfg *Config) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if cfg.IsDev() {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}

	if cfg.LogDir != "" {
		rotator, err := SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			return nil, nil, err
		}
		out = io.MultiWriter(os.Stdout, rotator)
		closer = rotator
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
	return logger, closer, nil
}

// SetupLogFile creates a rotating log file writer in dir that keeps at most
// maxFiles rotated backups.
func SetupLogFile(dir string, maxFiles int) (*lumberjack.Logger, error) {
	// Ensure directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	if maxFiles <= 0 {
		maxFiles = 10
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, "server.log"),
		MaxSize:    50, // megabytes
		MaxBackups: maxFiles,
		LocalTime:  true,
	}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
