package stripe

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/broady/stripe/decode"
	"github.com/google/uuid"
)

// Response headers read by the dispatcher.
const (
	headerRequestID   = "Request-Id"
	headerRetryAfter  = "Retry-After"
	headerShouldRetry = "Stripe-Should-Retry"
)

// Do sends req and decodes a successful response body with v. A nil v
// discards the body.
//
// Transport failures, 409, 429 and 5xx responses are retried according to
// the client's RetryPolicy. POST and DELETE requests are only resent when
// they carry an Idempotency-Key. Every failure is returned as *Error.
func (c *Client) Do(ctx context.Context, req *Request, v decode.Visitor) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if req.Method != http.MethodGet && req.IdempotencyKey == "" && c.autoIdempotency {
		req = req.Clone()
		req.IdempotencyKey = uuid.NewString()
	}
	ctx = withRequest(ctx, req)

	hook := chainHooks(c.hooks)
	ev := Event{Method: req.Method, Path: req.Path}
	start := time.Now()

	ev.Kind = EventStart
	hook(ctx, ev)

	last, err := c.dispatch(ctx, req, v, func(res attemptResult, delay time.Duration) {
		retry := ev
		retry.Kind = EventRetry
		retry.Attempt = res.attempt
		retry.Delay = delay
		retry.Status = res.status
		retry.RequestID = res.requestID
		retry.Elapsed = time.Since(start)
		retry.Err = res.err
		hook(ctx, retry)
	})

	ev.Kind = EventComplete
	ev.Attempt = last.attempt
	ev.Status = last.status
	ev.RequestID = last.requestID
	ev.Elapsed = time.Since(start)
	ev.Err = err
	hook(ctx, ev)
	return err
}

// Call dispatches req and decodes the response into a new T.
func Call[T any](ctx context.Context, c *Client, req *Request, build func(*T) decode.Visitor) (*T, error) {
	out := new(T)
	if err := c.Do(ctx, req, build(out)); err != nil {
		return nil, err
	}
	return out, nil
}

type attemptResult struct {
	attempt   int
	status    int
	requestID string
	err       *Error

	retryAfter    time.Duration
	hasRetryAfter bool
	// shouldRetry holds the server's Stripe-Should-Retry verdict, if any.
	shouldRetry *bool
	// final marks failures that must not be retried whatever their kind.
	final bool
}

func (c *Client) dispatch(ctx context.Context, req *Request, v decode.Visitor, onRetry func(attemptResult, time.Duration)) (attemptResult, error) {
	url, err := req.URL(c.baseURL)
	if err != nil {
		return attemptResult{}, &Error{Kind: KindInvalidRequest, Message: err.Error(), Cause: err}
	}
	body := req.Body()

	for attempt := 1; ; attempt++ {
		res := c.attempt(ctx, req, url, body, v, attempt)
		if res.err == nil {
			return res, nil
		}
		res.err.Attempts = attempt

		if !c.shouldRetry(req, res) {
			return res, res.err
		}
		// A retryable failure after cancellation is reported as the
		// cancellation, never as the response that preceded it.
		if err := ctx.Err(); err != nil {
			if res.err.Kind == KindTransport {
				return res, res.err
			}
			return res, &Error{Kind: KindTransport, Attempts: attempt, RequestID: res.requestID, Cause: err}
		}
		delay, ok := c.retry.delay(attempt, res.retryAfter, res.hasRetryAfter)
		if !ok {
			return res, res.err
		}
		onRetry(res, delay)

		if err := sleep(ctx, delay); err != nil {
			return res, &Error{Kind: KindTransport, Attempts: attempt, Cause: err}
		}
	}
}

func (c *Client) shouldRetry(req *Request, res attemptResult) bool {
	switch {
	case res.final:
		return false
	case res.attempt >= c.retry.MaxAttempts:
		return false
	case req.Method != http.MethodGet && req.IdempotencyKey == "":
		return false
	case res.err.Kind == KindDecode || res.err.Kind == KindInvalidRequest:
		return false
	case res.shouldRetry != nil:
		return *res.shouldRetry
	}
	return res.err.Retryable()
}

func (c *Client) attempt(ctx context.Context, req *Request, url string, body []byte, v decode.Visitor, n int) attemptResult {
	res := attemptResult{attempt: n}

	ctx = withAttempt(ctx, n)
	if c.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.attemptTimeout)
		defer cancel()
	}

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	hr, err := http.NewRequestWithContext(ctx, req.Method, url, rd)
	if err != nil {
		res.err = &Error{Kind: KindInvalidRequest, Message: err.Error(), Cause: err}
		res.final = true
		return res
	}
	c.setHeaders(hr, req, body != nil)

	resp, err := c.transport.Do(hr)
	if err != nil {
		res.err = transportError(err)
		return res
	}
	defer resp.Body.Close()

	res.status = resp.StatusCode
	res.requestID = resp.Header.Get(headerRequestID)
	if sr, err := strconv.ParseBool(resp.Header.Get(headerShouldRetry)); err == nil {
		res.shouldRetry = &sr
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if v == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return res
		}
		if err := decode.Stream(resp.Body, v); err != nil {
			res.err = classifyBodyError(resp.StatusCode, err)
			res.err.RequestID = res.requestID
			// The target may already be partially filled.
			res.final = true
		}
		return res
	}

	res.retryAfter, res.hasRetryAfter = parseRetryAfter(resp.Header.Get(headerRetryAfter), time.Now())

	apiErr := &Error{
		Kind:       kindForStatus(resp.StatusCode),
		HTTPStatus: resp.StatusCode,
		RequestID:  res.requestID,
	}
	env := &errorEnvelope{err: apiErr}
	if err := decode.Stream(resp.Body, env.Visitor()); err != nil {
		var de *decode.Error
		if !errors.As(err, &de) {
			res.err = transportError(err)
			res.err.HTTPStatus = resp.StatusCode
			res.err.RequestID = res.requestID
			return res
		}
		// Proxies and load balancers answer with HTML; keep the status.
		apiErr.Message = http.StatusText(resp.StatusCode)
		apiErr.Cause = err
	}
	res.err = apiErr
	return res
}

// classifyBodyError separates schema failures from read failures.
func classifyBodyError(status int, err error) *Error {
	var de *decode.Error
	if errors.As(err, &de) {
		return decodeError(status, err)
	}
	e := transportError(err)
	e.HTTPStatus = status
	return e
}

func (c *Client) setHeaders(hr *http.Request, req *Request, hasBody bool) {
	hr.Header.Set("Authorization", "Bearer "+c.apiKey)
	hr.Header.Set("Stripe-Version", c.apiVersion)
	hr.Header.Set("User-Agent", c.userAgent())
	hr.Header.Set("Accept", "application/json")
	if hasBody {
		hr.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if req.IdempotencyKey != "" {
		hr.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}
	account := req.StripeAccount
	if account == "" {
		account = c.stripeAccount
	}
	if account != "" {
		hr.Header.Set("Stripe-Account", account)
	}
}
