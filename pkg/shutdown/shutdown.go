package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// ErrSignal is the cancellation cause recorded when a signal arrives.
var ErrSignal = errors.New("received shutdown signal")

// WithSignals returns a context cancelled on the first of sigs (SIGINT and
// SIGTERM when none are given). context.Cause reports which signal it was.
func WithSignals(parent context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	if len(sigs) == 0 {
		sigs = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}

	ctx, cancel := context.WithCancelCause(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	go func() {
		defer signal.Stop(ch)
		select {
		case <-ctx.Done():
			return
		case sig := <-ch:
			cancel(fmt.Errorf("%w: %s", ErrSignal, sig))
		}
	}()

	return ctx, func() { cancel(context.Canceled) }
}
