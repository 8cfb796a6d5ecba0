// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package logger provides logging functionality for the ssm-ensure tool.
//
// It wraps the standard library's log/slog package to provide consistent logging
// across the application with configurable log levels and output formats. The
// package supports debug, info, warn, and error levels, defaulting to info if
// an invalid level is specified, and text or JSON output, defaulting to text.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps a level name to a slog.Level. The name is
// case-insensitive; unknown names map to info.
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

// InitLogger initializes and returns a new slog.Logger writing to w with the
// specified log level and format. It also sets this logger as the default
// global logger.
//
// The format is "text" or "json"; anything else selects text.
//
// Example usage:
//
//	logger := InitLogger("debug", "text", os.Stderr)
//	logger.Debug("Detailed information", "key", "value")
//	logger.Warn("Warning message")
//	logger.Error("Error condition", "error", err)
func InitLogger(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}
