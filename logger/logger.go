// Package logger provides structured logging for the interview core.
//
// This package wraps Go's standard log/slog with convenience functions for:
//   - Turn lifecycle logging (triggers, sequenced actions, role handoffs)
//   - Utterance generation logging (requests, completions, errors)
//   - Level-based verbosity control
//
// All exported functions use the global DefaultLogger which can be configured
// for different output formats and log levels.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

var (
	// DefaultLogger is the global structured logger instance.
	// It is safe for concurrent use and initialized with slog.LevelInfo by default.
	DefaultLogger *slog.Logger
)

func init() {
	// Check LOG_LEVEL environment variable
	level := slog.LevelInfo
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		switch strings.ToLower(envLevel) {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn", "warning":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	// Initialize with text handler writing to stderr
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	DefaultLogger = slog.New(handler)
}

// SetLevel changes the logging level for all subsequent log operations.
// This is safe for concurrent use as it replaces the entire logger instance.
func SetLevel(level slog.Level) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	DefaultLogger = slog.New(handler)
}

// SetVerbose enables debug-level logging when verbose is true, otherwise sets info-level.
// This is a convenience wrapper around SetLevel for command-line verbose flags.
func SetVerbose(verbose bool) {
	if verbose {
		SetLevel(slog.LevelDebug)
	} else {
		SetLevel(slog.LevelInfo)
	}
}

// Info logs an informational message with structured key-value attributes.
// Args should be provided in key-value pairs: key1, value1, key2, value2, ...
func Info(msg string, args ...any) {
	DefaultLogger.Info(msg, args...)
}

// InfoContext logs an informational message with context and structured attributes.
func InfoContext(ctx context.Context, msg string, args ...any) {
	DefaultLogger.InfoContext(ctx, msg, args...)
}

// Debug logs a debug-level message with structured attributes.
// Debug messages are only output when the log level is set to LevelDebug or lower.
func Debug(msg string, args ...any) {
	DefaultLogger.Debug(msg, args...)
}

// Warn logs a warning message with structured attributes.
// Use for recoverable errors or unexpected but non-critical situations.
func Warn(msg string, args ...any) {
	DefaultLogger.Warn(msg, args...)
}

// Error logs an error message with structured attributes.
// Use for errors that affect operation but don't cause complete failure.
func Error(msg string, args ...any) {
	DefaultLogger.Error(msg, args...)
}

// Turn logs one sequenced turn with structured fields for observability.
// Additional attributes can be passed as key-value pairs after the required parameters.
func Turn(sessionID, trigger, action string, attrs ...any) {
	allAttrs := make([]any, 0, 6+len(attrs))
	allAttrs = append(allAttrs,
		"session", sessionID,
		"trigger", trigger,
		"action", action,
	)
	allAttrs = append(allAttrs, attrs...)
	Info("interview turn", allAttrs...)
}

// Generation logs an utterance-generation completion with latency and size.
func Generation(sessionID, provider string, latencyMs int64, chars int, attrs ...any) {
	allAttrs := make([]any, 0, 8+len(attrs))
	allAttrs = append(allAttrs,
		"session", sessionID,
		"provider", provider,
		"latency_ms", latencyMs,
		"chars", chars,
	)
	allAttrs = append(allAttrs, attrs...)
	Debug("utterance generated", allAttrs...)
}

// GenerationError logs a failed utterance generation for debugging and monitoring.
func GenerationError(sessionID, provider string, err error, attrs ...any) {
	allAttrs := make([]any, 0, 6+len(attrs))
	allAttrs = append(allAttrs,
		"session", sessionID,
		"provider", provider,
		"error", err,
	)
	allAttrs = append(allAttrs, attrs...)
	Error("utterance generation failed", allAttrs...)
}
