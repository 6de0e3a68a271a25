package stripe

import (
	"context"
	"time"
)

// EventKind identifies a point in a request's life.
type EventKind string

const (
	EventStart    EventKind = "start"
	EventRetry    EventKind = "retry"
	EventComplete EventKind = "complete"
)

// Event describes one observation point of a dispatch.
type Event struct {
	Kind   EventKind
	Method string
	// Path is the unresolved template, e.g. "/v1/accounts/{account}", so it
	// is safe to use as a metric label.
	Path string

	// Attempt is the attempt that just failed (retry) or the last attempt
	// made (complete).
	Attempt int
	// Delay is the sleep before the next attempt. Set for retry only.
	Delay time.Duration
	// Status is the HTTP status of the last response, or 0 if none arrived.
	Status    int
	RequestID string
	// Elapsed is the time since start. Set for retry and complete.
	Elapsed time.Duration
	// Err is the failure that caused a retry, or the final error.
	Err error
}

// Hook observes dispatches. It is called synchronously on the dispatching
// goroutine, so it must not block.
//
//	func hook(ctx context.Context, ev stripe.Event) {
//	    if ev.Kind == stripe.EventRetry {
//	        log.Printf("%s %s retrying in %v: %v", ev.Method, ev.Path, ev.Delay, ev.Err)
//	    }
//	}
type Hook func(ctx context.Context, ev Event)

// chainHooks combines hooks into one. The first hook runs first.
func chainHooks(hooks []Hook) Hook {
	switch len(hooks) {
	case 0:
		return func(context.Context, Event) {}
	case 1:
		return hooks[0]
	}
	return func(ctx context.Context, ev Event) {
		for _, h := range hooks {
			h(ctx, ev)
		}
	}
}
