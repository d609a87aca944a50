// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/matt-FFFFFF/clish/internal/ctxlog"
)

func TestWatch_FirstInterruptNoCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	sigCh := make(chan os.Signal, 1)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		Watch(ctx, sigCh, cancel)
	}()
	sigCh <- os.Interrupt

	time.Sleep(50 * time.Millisecond)
	select {
	case <-ctx.Done():
		t.Fatal("context should not be cancelled after the first interrupt")
	default:
		// ok
	}
	close(sigCh)
	wg.Wait()
}

func TestWatch_SecondInterruptCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	sigCh := make(chan os.Signal, 2)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		Watch(ctx, sigCh, cancel)
	}()
	sigCh <- os.Interrupt
	sigCh <- syscall.SIGINT

	time.Sleep(50 * time.Millisecond)
	select {
	case <-ctx.Done():
		// ok
	default:
		t.Fatal("context should be cancelled after the second interrupt")
	}
	// Channel should be closed by Watch
	_, ok := <-sigCh
	if ok {
		t.Fatal("signal channel should be closed after the second interrupt")
	}

	wg.Wait()
}

func TestWatch_TerminationSignalCancelsImmediately(t *testing.T) {
	for _, sig := range []os.Signal{syscall.SIGTERM, syscall.SIGQUIT} {
		t.Run(sig.String(), func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
			sigCh := make(chan os.Signal, 1)

			var wg sync.WaitGroup

			wg.Add(1)

			go func() {
				defer wg.Done()
				Watch(ctx, sigCh, cancel)
			}()
			sigCh <- sig

			time.Sleep(50 * time.Millisecond)
			select {
			case <-ctx.Done():
				// ok
			default:
				t.Fatal("context should be cancelled without a prior interrupt")
			}
			wg.Wait()
		})
	}
}

func TestWatch_ReturnsWhenChannelCloses(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	sigCh := make(chan os.Signal, 1)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		Watch(ctx, sigCh, cancel)
	}()
	close(sigCh)
	wg.Wait()

	if ctx.Err() != nil {
		t.Fatal("closing the channel alone should not cancel the context")
	}
}

func TestWatch_UnregistersBeforeClosing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	// A second subscriber keeps the runtime catching SIGUSR1 after Watch
	// unregisters, and observing both deliveries on it proves the late
	// signal was processed without reaching the closed channel.
	guard := make(chan os.Signal, 2)
	signal.Notify(guard, syscall.SIGUSR1)

	defer signal.Stop(guard)

	sigCh := New(ctx, syscall.SIGUSR1)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		Watch(ctx, sigCh, cancel)
	}()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("failed to raise signal: %v", err)
	}

	wg.Wait()

	select {
	case <-ctx.Done():
		// ok
	default:
		t.Fatal("context should be cancelled")
	}

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("failed to raise signal: %v", err)
	}

	for i := 0; i < 2; i++ {
		select {
		case <-guard:
			// ok
		case <-time.After(time.Second):
			t.Fatal("expected the signal to reach the remaining subscriber")
		}
	}
}

func TestNew_SubscribesSignals(t *testing.T) {
	ch := New(context.Background())
	defer signal.Stop(ch)

	if ch == nil {
		t.Fatal("expected a signal channel")
	}

	if cap(ch) != 1 {
		t.Fatalf("expected a buffered channel of capacity 1, got %d", cap(ch))
	}
}
