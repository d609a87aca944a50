// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker listens for OS termination signals on behalf of an
// interactive session. By default it listens for os.Interrupt,
// syscall.SIGINT, syscall.SIGTERM, and syscall.SIGQUIT.
//
// Watch treats SIGINT specially: while a shell is running, the line editor
// owns Ctrl-C (it aborts the current prompt), so the first SIGINT is a
// no-op and only a repeat cancels the context. Other termination signals
// cancel immediately.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/clish/internal/ctxlog"
)

var termSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// New creates a signal channel subscribed to the given signals, defaulting
// to the termination set.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "signalbroker", "detail", "subscribing", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}
