// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerRoundTrip(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))

	ctx := New(context.Background(), custom)
	assert.Same(t, custom, Logger(ctx))
}

func TestLoggerDefaults(t *testing.T) {
	assert.Same(t, DefaultLogger, Logger(context.Background()))

	ctx := New(context.Background(), nil)
	assert.Same(t, DefaultLogger, Logger(ctx))
}

func TestConfigureSetsLevelIdempotently(t *testing.T) {
	prev := LevelVar.Level()
	defer LevelVar.Set(prev)

	Configure(slog.LevelDebug)
	assert.Equal(t, slog.LevelDebug, LevelVar.Level())

	// Reconfiguring moves the shared level without stacking handlers: the
	// default logger is the same instance every time.
	Configure(slog.LevelWarn)
	assert.Equal(t, slog.LevelWarn, LevelVar.Level())
	assert.Same(t, DefaultLogger, slog.Default())
}

func TestEffectiveLevel(t *testing.T) {
	tests := []struct {
		name    string
		base    slog.Level
		verbose int
		quiet   int
		want    slog.Level
	}{
		{
			name: "no flags keeps base",
			base: slog.LevelInfo,
			want: slog.LevelInfo,
		},
		{
			name:    "one verbose steps down",
			base:    slog.LevelInfo,
			verbose: 1,
			want:    slog.LevelDebug,
		},
		{
			name:  "one quiet steps up",
			base:  slog.LevelInfo,
			quiet: 1,
			want:  slog.LevelWarn,
		},
		{
			name:    "verbose and quiet cancel out",
			base:    slog.LevelInfo,
			verbose: 2,
			quiet:   2,
			want:    slog.LevelInfo,
		},
		{
			name:    "verbose saturates at debug",
			base:    slog.LevelInfo,
			verbose: 5,
			want:    slog.LevelDebug,
		},
		{
			name:  "quiet saturates at error",
			base:  slog.LevelInfo,
			quiet: 5,
			want:  slog.LevelError,
		},
		{
			name:    "saturation from non-default base",
			base:    slog.LevelError,
			verbose: 10,
			want:    slog.LevelDebug,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveLevel(tt.base, tt.verbose, tt.quiet))
		})
	}
}

func TestEffectiveLevelMonotonic(t *testing.T) {
	// More net verbosity never yields less output.
	last := slog.LevelError + 1
	for verbose := -5; verbose <= 5; verbose++ {
		var level slog.Level
		if verbose >= 0 {
			level = EffectiveLevel(slog.LevelInfo, verbose, 0)
		} else {
			level = EffectiveLevel(slog.LevelInfo, 0, -verbose)
		}

		require.LessOrEqual(t, level, last, "verbose=%d", verbose)
		last = level
	}
}
