// Package stripetest provides test doubles for code that calls the Stripe
// API: a scripted Transport that replays canned responses and records what
// was sent, and an in-memory Server.
//
// This package does not import the client runtime, so it can be used from
// any package's tests.
package stripetest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// ErrExhausted is returned by Transport.Do when the script has no responses
// left.
var ErrExhausted = errors.New("stripetest: no scripted responses left")

// Response is one scripted reply.
type Response struct {
	Status int
	Header http.Header
	Body   string
	// Err, when set, is returned from Do instead of a response.
	Err error
}

// JSON returns a response with a JSON body.
func JSON(status int, body string) Response {
	return Response{
		Status: status,
		Header: http.Header{"Content-Type": []string{"application/json"}},
		Body:   body,
	}
}

// APIError returns a response carrying the API's error envelope.
func APIError(status int, typ, code, message string) Response {
	return JSON(status, fmt.Sprintf(`{"error":{"type":%q,"code":%q,"message":%q}}`, typ, code, message))
}

// Fail returns a response that makes Do fail with err.
func Fail(err error) Response {
	return Response{Err: err}
}

// WithHeader returns a copy of r with an extra header.
func (r Response) WithHeader(key, value string) Response {
	h := r.Header.Clone()
	if h == nil {
		h = http.Header{}
	}
	h.Set(key, value)
	r.Header = h
	return r
}

// Request is a recorded outgoing request.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     string
}

// Query parses the query string.
func (r Request) Query() url.Values {
	q, _ := url.ParseQuery(r.RawQuery)
	return q
}

// Form parses the form body.
func (r Request) Form() url.Values {
	f, _ := url.ParseQuery(r.Body)
	return f
}

// Transport replays scripted responses in order and records every request it
// receives. It is safe for concurrent use. It satisfies the client's Doer
// interface.
type Transport struct {
	mu        sync.Mutex
	responses []Response
	requests  []Request
}

// NewTransport returns a transport that will answer with responses in order.
func NewTransport(responses ...Response) *Transport {
	return &Transport{responses: responses}
}

// Push appends responses to the script.
func (t *Transport) Push(responses ...Response) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responses = append(t.responses, responses...)
	return t
}

// Do records r and returns the next scripted response. A request whose
// context is already done fails without consuming a response.
func (t *Transport) Do(r *http.Request) (*http.Response, error) {
	if err := r.Context().Err(); err != nil {
		return nil, err
	}

	var body []byte
	if r.Body != nil {
		var err error
		if body, err = io.ReadAll(r.Body); err != nil {
			return nil, err
		}
		r.Body.Close()
	}

	t.mu.Lock()
	t.requests = append(t.requests, Request{
		Method:   r.Method,
		Path:     r.URL.EscapedPath(),
		RawQuery: r.URL.RawQuery,
		Header:   r.Header.Clone(),
		Body:     string(body),
	})
	if len(t.responses) == 0 {
		t.mu.Unlock()
		return nil, ErrExhausted
	}
	next := t.responses[0]
	t.responses = t.responses[1:]
	t.mu.Unlock()

	if next.Err != nil {
		return nil, next.Err
	}
	status := next.Status
	if status == 0 {
		status = http.StatusOK
	}
	header := next.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader([]byte(next.Body))),
		ContentLength: int64(len(next.Body)),
		Request:       r,
	}, nil
}

// Requests returns the recorded requests in the order they were received.
func (t *Transport) Requests() []Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Request(nil), t.requests...)
}

// Calls returns the number of requests received.
func (t *Transport) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.requests)
}

// Remaining returns the number of unused scripted responses.
func (t *Transport) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.responses)
}

// AssertCalls checks the number of requests received.
func AssertCalls(t testing.TB, tr *Transport, expected int) {
	t.Helper()
	if got := tr.Calls(); got != expected {
		t.Errorf("expected %d requests, got %d", expected, got)
	}
}

// AssertHeader checks that a recorded request header has the expected value.
func AssertHeader(t testing.TB, r Request, key, expected string) {
	t.Helper()
	if actual := r.Header.Get(key); actual != expected {
		t.Errorf("expected header %s=%q, got %q", key, expected, actual)
	}
}

// AssertBody checks the raw form body byte for byte.
func AssertBody(t testing.TB, r Request, expected string) {
	t.Helper()
	if r.Body != expected {
		t.Errorf("expected body %q, got %q", expected, r.Body)
	}
}

// AssertQuery checks the raw query string after unescaping brackets, so
// expectations can be written as created[gte]=1.
func AssertQuery(t testing.TB, r Request, expected string) {
	t.Helper()
	actual := strings.NewReplacer("%5B", "[", "%5D", "]").Replace(r.RawQuery)
	if actual != expected {
		t.Errorf("expected query %q, got %q", expected, actual)
	}
}
