// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-based logger built on the slog package.
// The process-wide log level is held in a single LevelVar so that repeated
// reconfiguration (e.g. from a root command hook that runs once per
// invocation) adjusts the level in place and never stacks handlers.
package ctxlog

import (
	"context"
	"log/slog"
	"os"
)

type loggerKey struct{}

// LevelVar is the shared level for DefaultLogger. Configure sets it.
var LevelVar = &slog.LevelVar{}

// DefaultLogger writes styled, human-friendly records to stderr.
var DefaultLogger = slog.New(NewPrettyHandler(&slog.HandlerOptions{
	Level: LevelVar,
},
	WithAutoColor(),
	WithWriter(os.Stderr),
))

// Configure sets the process-wide log level and installs DefaultLogger as
// the slog default. It is idempotent: calling it again only moves the
// level, it does not create additional handlers.
func Configure(level slog.Level) {
	LevelVar.Set(level)
	slog.SetDefault(DefaultLogger)
}

// EffectiveLevel computes the log level from a base level and the counts of
// repeatable verbose/quiet flags. Each repetition moves the level one slog
// step (4). The result saturates at LevelDebug and LevelError.
func EffectiveLevel(base slog.Level, verbose, quiet int) slog.Level {
	level := base + slog.Level(4*(quiet-verbose))
	if level < slog.LevelDebug {
		level = slog.LevelDebug
	}

	if level > slog.LevelError {
		level = slog.LevelError
	}

	return level
}

// New creates a new context carrying the given logger.
// If logger is nil, DefaultLogger is used.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger from the context, or DefaultLogger if not found.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// Info logs an info message with the given context.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Info(msg, args...)
}

// Debug logs a debug message with the given context.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Debug(msg, args...)
}

// Warn logs a warning message with the given context.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Warn(msg, args...)
}

// Error logs an error message with the given context.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Error(msg, args...)
}
