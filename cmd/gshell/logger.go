package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/zlovtnik/gshell/internal/config"
)

// newLogger builds a structured logger writing to w at the configured level.
func newLogger(cfg config.LogConfig, w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "gshell",
	})
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// newFileLogger logs into a rotating file. The terminal belongs to the TUI
// while it runs.
func newFileLogger(cfg config.LogConfig) (*log.Logger, func(), error) {
	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	out := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB, // megabytes
		MaxBackups: cfg.MaxBackups,
		MaxAge:     28, // days
		Compress:   true,
	}
	return newLogger(cfg, out), func() { _ = out.Close() }, nil
}

// newStderrLogger is used by the SSH server, which has no TUI of its own.
func newStderrLogger(cfg config.LogConfig) *log.Logger {
	return newLogger(cfg, os.Stderr)
}
