package stripe

import (
	"context"
)

type contextKey struct {
	name string
}

var (
	requestKey = &contextKey{"request"}
	attemptKey = &contextKey{"attempt"}
)

// RequestFromContext returns the request being dispatched. It is available
// to hooks and, through http.Request.Context, to the transport.
func RequestFromContext(ctx context.Context) *Request {
	if r, ok := ctx.Value(requestKey).(*Request); ok {
		return r
	}
	return nil
}

// AttemptFromContext returns the 1-based number of the current HTTP attempt.
func AttemptFromContext(ctx context.Context) (int, bool) {
	n, ok := ctx.Value(attemptKey).(int)
	return n, ok
}

func withRequest(ctx context.Context, r *Request) context.Context {
	return context.WithValue(ctx, requestKey, r)
}

func withAttempt(ctx context.Context, n int) context.Context {
	return context.WithValue(ctx, attemptKey, n)
}
