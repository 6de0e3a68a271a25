package stripe

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"
)

// RetryPolicy bounds how the dispatcher resends failed requests.
type RetryPolicy struct {
	// MaxAttempts is the total number of HTTP attempts, first one included.
	MaxAttempts int
	// BaseBackoff is the delay after the first failed attempt. It doubles on
	// each subsequent failure up to MaxBackoff.
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
	// Jitter is the fraction of each computed delay, between 0 and 1, that is
	// randomly subtracted from it. Unlike the other fields it is used as
	// given, so zero means no jitter.
	Jitter float64
	// MaxRetryAfter is the longest Retry-After hint the dispatcher will sleep
	// for. A longer hint ends the retry loop.
	MaxRetryAfter time.Duration
}

// DefaultRetryPolicy returns the policy used by NewClient.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:   3,
		BaseBackoff:   500 * time.Millisecond,
		MaxBackoff:    5 * time.Second,
		Jitter:        0.5,
		MaxRetryAfter: 60 * time.Second,
	}
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	d := DefaultRetryPolicy()
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = d.MaxAttempts
	}
	if p.BaseBackoff <= 0 {
		p.BaseBackoff = d.BaseBackoff
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = d.MaxBackoff
	}
	if p.MaxBackoff < p.BaseBackoff {
		p.MaxBackoff = p.BaseBackoff
	}
	p.Jitter = min(max(p.Jitter, 0), 1)
	if p.MaxRetryAfter <= 0 {
		p.MaxRetryAfter = d.MaxRetryAfter
	}
	return p
}

// Backoff returns the delay after the given failed attempt (1-based).
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	d := p.BaseBackoff
	for i := 1; i < attempt && d < p.MaxBackoff; i++ {
		d *= 2
	}
	d = min(d, p.MaxBackoff)
	if p.Jitter > 0 {
		d -= time.Duration(rand.Float64() * p.Jitter * float64(d))
	}
	return d
}

// delay picks the sleep before the next attempt. A server hint replaces the
// computed backoff; ok is false when the hint is longer than MaxRetryAfter.
func (p RetryPolicy) delay(attempt int, hint time.Duration, hasHint bool) (d time.Duration, ok bool) {
	if !hasHint {
		return p.Backoff(attempt), true
	}
	if hint > p.MaxRetryAfter {
		return 0, false
	}
	return hint, true
}

// parseRetryAfter reads a Retry-After header given as delay-seconds or as an
// HTTP date. Hints too large for a Duration saturate to the maximum.
func parseRetryAfter(h string, now time.Time) (time.Duration, bool) {
	if h == "" {
		return 0, false
	}
	secs, err := strconv.ParseInt(h, 10, 64)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		if secs < 0 {
			return 0, false
		}
		if secs > int64(math.MaxInt64/time.Second) {
			return math.MaxInt64, true
		}
		return time.Duration(secs) * time.Second, true
	}
	t, err := http.ParseTime(h)
	if err != nil {
		return 0, false
	}
	return max(t.Sub(now), 0), true
}

// sleep waits for d or until ctx is done. The timer is always released.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
