package stripe

import (
	"net/http"
	"time"
)

// Client is the handle every operation is dispatched through.
//
// A Client is immutable: each With method returns a modified copy, so a
// configured client can be shared by any number of goroutines and derived
// clients (say, one per connected account) can be made cheaply.
type Client struct {
	apiKey          string
	apiVersion      string
	baseURL         string
	stripeAccount   string
	transport       Doer
	retry           RetryPolicy
	attemptTimeout  time.Duration
	timeout         time.Duration
	userAgentSuffix string
	autoIdempotency bool
	hooks           []Hook
}

// NewClient returns a client authenticating with apiKey. It talks to
// DefaultBaseURL through http.DefaultClient with DefaultRetryPolicy.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		apiVersion: APIVersion,
		baseURL:    DefaultBaseURL,
		transport:  http.DefaultClient,
		retry:      DefaultRetryPolicy(),
	}
}

func (c *Client) clone() *Client {
	cc := *c
	cc.hooks = append([]Hook(nil), c.hooks...)
	return &cc
}

// WithAPIVersion overrides the pinned Stripe-Version header.
func (c *Client) WithAPIVersion(version string) *Client {
	cc := c.clone()
	cc.apiVersion = version
	return cc
}

// WithBaseURL points the client at another host, typically a test double.
func (c *Client) WithBaseURL(baseURL string) *Client {
	cc := c.clone()
	cc.baseURL = baseURL
	return cc
}

// WithStripeAccount sets the default connected account. A request's own
// StripeAccount option takes precedence.
func (c *Client) WithStripeAccount(account string) *Client {
	cc := c.clone()
	cc.stripeAccount = account
	return cc
}

// WithTransport replaces the HTTP transport. A nil transport restores
// http.DefaultClient.
func (c *Client) WithTransport(t Doer) *Client {
	cc := c.clone()
	if t == nil {
		t = http.DefaultClient
	}
	cc.transport = t
	return cc
}

// WithRetryPolicy sets the retry policy. Zero fields take their defaults; set
// MaxAttempts to 1 to disable retries.
func (c *Client) WithRetryPolicy(p RetryPolicy) *Client {
	cc := c.clone()
	cc.retry = p.withDefaults()
	return cc
}

// WithAttemptTimeout bounds each HTTP attempt, including reading the body.
// Zero means no per-attempt deadline.
func (c *Client) WithAttemptTimeout(d time.Duration) *Client {
	cc := c.clone()
	cc.attemptTimeout = d
	return cc
}

// WithTimeout bounds a whole operation across all attempts and backoff
// sleeps. Zero means no deadline beyond the caller's context.
func (c *Client) WithTimeout(d time.Duration) *Client {
	cc := c.clone()
	cc.timeout = d
	return cc
}

// WithUserAgentSuffix appends s to the User-Agent header, e.g. "myapp/1.2".
func (c *Client) WithUserAgentSuffix(s string) *Client {
	cc := c.clone()
	cc.userAgentSuffix = s
	return cc
}

// WithAutoIdempotencyKeys makes the client attach a fresh random
// Idempotency-Key to every POST and DELETE that lacks one. The same key is
// reused across that call's retries, which makes those calls retryable.
func (c *Client) WithAutoIdempotencyKeys() *Client {
	cc := c.clone()
	cc.autoIdempotency = true
	return cc
}

// WithHook adds an observability hook. Hooks run in the order added, on the
// dispatching goroutine.
func (c *Client) WithHook(h Hook) *Client {
	cc := c.clone()
	cc.hooks = append(cc.hooks, h)
	return cc
}

// RetryPolicy returns the effective retry policy.
func (c *Client) RetryPolicy() RetryPolicy { return c.retry }

// BaseURL returns the host requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) userAgent() string {
	ua := "stripe-go-typed/" + Version
	if c.userAgentSuffix != "" {
		ua += " " + c.userAgentSuffix
	}
	return ua
}
