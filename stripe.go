// Package stripe is the runtime behind a strongly typed client for the
// Stripe HTTP API.
//
// Generated resource packages (account, customer, charge, taxid, ...) expose
// one builder per operation. A builder serializes into a Request, and the
// Client dispatches it:
//
//	c := stripe.NewClient(os.Getenv("STRIPE_SECRET_KEY")).
//		WithRetryPolicy(stripe.RetryPolicy{MaxAttempts: 4})
//
//	acct, err := account.NewCreate().
//		Type(account.TypeStandard).
//		Country("US").
//		Email("jenny@example.com").
//		Do(ctx, c)
//
// Requests are form encoded using the bracketed-key convention (see package
// form) and responses are decoded by the streaming visitor decoder (see
// package decode). List operations return an Iter that fetches pages lazily.
//
// The Client never logs. Use WithHook to observe request start, retries and
// completion; package middleware has slog and Prometheus adapters.
package stripe

import "net/http"

const (
	// APIVersion is the API version the resource packages were generated
	// against. It is sent as the Stripe-Version header unless overridden.
	APIVersion = "2024-06-20"

	// DefaultBaseURL is the API host.
	DefaultBaseURL = "https://api.stripe.com"

	// Version is the version of this library.
	Version = "0.4.0"
)

// Doer executes a single HTTP exchange. *http.Client satisfies it. The
// implementation owns connection pooling and must be safe for concurrent use.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to Doer.
type DoerFunc func(*http.Request) (*http.Response, error)

func (f DoerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }
