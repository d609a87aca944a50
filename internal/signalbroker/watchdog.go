// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/clish/internal/ctxlog"
)

// Watch monitors the signal channel and cancels the context when the
// session should end. The first SIGINT is left to the line editor; a
// second SIGINT, or any other termination signal, cancels.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	interrupted := false

	for sig := range sigCh {
		if isInterrupt(sig) && !interrupted {
			interrupted = true

			ctxlog.Debug(ctx, "watchdog", "detail", "interrupt left to prompt", "signal", sig.String())

			continue
		}

		ctxlog.Logger(ctx).Info("watchdog", "detail", "terminating", "signal", sig.String())
		// Unregister before closing: a signal delivered to a closed
		// channel would panic the notify goroutine.
		signal.Stop(sigCh)
		close(sigCh)
		cancel()

		return
	}
}

func isInterrupt(sig os.Signal) bool {
	return sig == os.Interrupt || sig == syscall.SIGINT
}
