// Package hook models the sync/async body variant used by every spec node
// (test bodies, before/after hooks): a body is either a plain function or
// one that returns once an asynchronous operation completes.
package hook

import "context"

// Body is a hook or test body. It always receives a context so async
// bodies can honour cancellation; synchronous bodies are free to ignore it.
type Body func(ctx context.Context) error

// Async wraps a function that performs work in the background and signals
// completion through the returned channel, unifying it with the plain
// Body shape so the executor never needs to special-case it.
//
// fn is expected to send a single error (nil on success) and then either
// close the channel or simply stop sending; Async reads at most one value.
func Async(fn func(ctx context.Context, done chan<- error)) Body {
	return func(ctx context.Context) error {
		done := make(chan error, 1)
		go fn(ctx, done)

		select {
		case err := <-done:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Noop is a Body that does nothing and never fails; useful as a zero value
// for hook slots that were never registered.
func Noop(context.Context) error { return nil }
