// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides structured diagnostic logging for the console.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
)

// Logger is the structured logging interface.
type Logger interface {
	// Debug logs a debug message.
	Debug(msg string, args ...any)
	// Info logs an informational message.
	Info(msg string, args ...any)
	// Warn logs a warning message.
	Warn(msg string, args ...any)
	// Error logs an error message.
	Error(msg string, args ...any)
	// With returns a new logger with additional key-value pairs.
	With(args ...any) Logger
}

// Config holds logging configuration.
type Config struct {
	// Enabled determines whether logging is active.
	Enabled bool
	// Level is the minimum log level to record.
	Level string
	// Path is the log file. Empty means DefaultPath.
	Path string
}

// DefaultPath returns the log file used when Config.Path is empty. Logs
// never go to the terminal, which the full-screen console owns.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "cmdconsole", "console.log")
}

// logger is the charmbracelet/log based implementation.
type logger struct {
	clogger *clog.Logger
}

// New creates a Logger from cfg. The returned closer releases the log file
// and is never nil.
func New(cfg Config) (Logger, io.Closer, error) {
	if !cfg.Enabled {
		return Nop(), nopCloser{}, nil
	}

	path := cfg.Path
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return NewWriter(f, cfg.Level), f, nil
}

// NewWriter creates a JSON Logger writing to w at the given level.
func NewWriter(w io.Writer, level string) Logger {
	clogger := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           ParseLevel(level),
	})
	clogger.SetFormatter(clog.JSONFormatter)
	clogger = clogger.With("pid", os.Getpid())
	return &logger{clogger: clogger}
}

// ParseLevel converts a string level to clog.Level. Unknown levels map to info.
func ParseLevel(level string) clog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return clog.DebugLevel
	case "info":
		return clog.InfoLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

// ValidLevel reports whether level is a recognized level name.
func ValidLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

func (l *logger) Debug(msg string, args ...any) { l.clogger.Debug(msg, args...) }
func (l *logger) Info(msg string, args ...any)  { l.clogger.Info(msg, args...) }
func (l *logger) Warn(msg string, args ...any)  { l.clogger.Warn(msg, args...) }
func (l *logger) Error(msg string, args ...any) { l.clogger.Error(msg, args...) }

func (l *logger) With(args ...any) Logger {
	return &logger{clogger: l.clogger.With(args...)}
}

// =============================================================================
// NO-OP LOGGER
// =============================================================================

// Nop returns a logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (n nopLogger) With(...any) Logger { return n }

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
