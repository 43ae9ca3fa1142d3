// Package signals turns interrupt and termination signals into context
// cancellation. Leaf package: stdlib only, no internal imports, no logging.
package signals

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// ErrInterrupted is the cancellation cause when a watched signal arrives.
var ErrInterrupted = errors.New("interrupted")

// SignalError records which signal cancelled the context.
type SignalError struct {
	Signal os.Signal
}

func (e *SignalError) Error() string { return fmt.Sprintf("interrupted by %s", e.Signal) }
func (e *SignalError) Unwrap() error { return ErrInterrupted }

// SetupSignalContext creates a context that's canceled on SIGINT/SIGTERM.
// The cancellation cause is a *SignalError; see Interrupted.
func SetupSignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return notify(parent, syscall.SIGINT, syscall.SIGTERM)
}

func notify(parent context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, sigs...)

	go func() {
		select {
		case sig := <-sigChan:
			cancel(&SignalError{Signal: sig})
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, func() { cancel(context.Canceled) }
}

// Interrupted reports whether ctx was cancelled by a watched signal.
func Interrupted(ctx context.Context) bool {
	return errors.Is(context.Cause(ctx), ErrInterrupted)
}
