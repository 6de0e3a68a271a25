package stripe

import (
	"context"
)

// Future is the result of an operation started with Go. It lets callers
// start several calls and collect them later, or select on completion
// alongside other channels.
type Future[T any] struct {
	done chan struct{}
	val  *T
	err  error
}

// Go runs fn on a new goroutine and returns its pending result. The
// goroutine exits when fn returns; cancel ctx to make it return early.
func Go[T any](ctx context.Context, fn func(context.Context) (*T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn(ctx)
	}()
	return f
}

// Done is closed when the result is ready.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Wait blocks until the result is ready or ctx is done. Abandoning a future
// through ctx does not stop the underlying call; cancel the context the
// future was started with for that.
func (f *Future[T]) Wait(ctx context.Context) (*T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		return nil, &Error{Kind: KindTransport, Cause: ctx.Err()}
	}
}

// Result blocks until the result is ready.
func (f *Future[T]) Result() (*T, error) {
	<-f.done
	return f.val, f.err
}
