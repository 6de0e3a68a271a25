package stripe

import (
	"testing"
	"time"

	"github.com/broady/stripe/decode"
	"github.com/broady/stripe/stripetest"
)

// widget is a minimal resource used to exercise dispatch and pagination.
type widget struct {
	ID   string
	Name string
}

func (w *widget) GetID() string { return w.ID }

func (w *widget) Visitor() decode.Visitor {
	return decode.Object(func(key string) decode.Visitor {
		switch key {
		case "id":
			return decode.String(&w.ID)
		case "name":
			return decode.String(&w.Name)
		}
		return nil
	}, "id")
}

type widgetParams struct {
	Name  *string `form:"name,omitempty"`
	Count *int64  `form:"count,omitempty" validate:"omitempty,min=1"`
}

// fastRetries keeps retry tests quick and deterministic.
var fastRetries = RetryPolicy{
	MaxAttempts: 3,
	BaseBackoff: time.Millisecond,
	MaxBackoff:  2 * time.Millisecond,
}

func newTestClient(tr *stripetest.Transport) *Client {
	return NewClient("sk_test_123").
		WithTransport(tr).
		WithBaseURL("https://api.test").
		WithRetryPolicy(fastRetries)
}

func mustRequest(t *testing.T, method, path string, params any, opts RequestOptions, pathParams ...PathParam) *Request {
	t.Helper()
	req, err := NewRequest(method, path, params, opts, pathParams...)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	return req
}

func ptr[T any](v T) *T { return &v }

func asError(t *testing.T, err error) *Error {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	e, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	return e
}
