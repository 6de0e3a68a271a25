// Package middleware adapts client hooks to logging and metrics backends.
package middleware

import (
	"context"
	"log/slog"

	"github.com/broady/stripe"
)

// LoggingHook creates a hook that logs dispatches using slog.
// It logs the start and end of each call, every retry, and the error of a
// failed call.
func LoggingHook(logger *slog.Logger) stripe.Hook {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, ev stripe.Event) {
		endpoint := slog.String("endpoint", ev.Method+" "+ev.Path)

		switch ev.Kind {
		case stripe.EventStart:
			logger.InfoContext(ctx, "request started", endpoint)

		case stripe.EventRetry:
			logger.WarnContext(ctx, "request retrying",
				endpoint,
				slog.Int("attempt", ev.Attempt),
				slog.Int("status", ev.Status),
				slog.Duration("delay", ev.Delay),
				slog.Any("error", ev.Err),
			)

		case stripe.EventComplete:
			if ev.Err != nil {
				logger.ErrorContext(ctx, "request failed",
					endpoint,
					slog.Int("attempts", ev.Attempt),
					slog.Int("status", ev.Status),
					slog.String("request_id", ev.RequestID),
					slog.Duration("duration", ev.Elapsed),
					slog.Any("error", ev.Err),
				)
				return
			}
			logger.InfoContext(ctx, "request completed",
				endpoint,
				slog.Int("attempts", ev.Attempt),
				slog.Int("status", ev.Status),
				slog.String("request_id", ev.RequestID),
				slog.Duration("duration", ev.Elapsed),
			)
		}
	}
}
