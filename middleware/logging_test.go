package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/broady/stripe"
	"github.com/broady/stripe/stripetest"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func newClient(tr *stripetest.Transport, hooks ...stripe.Hook) *stripe.Client {
	c := stripe.NewClient("sk_test_123").
		WithTransport(tr).
		WithRetryPolicy(stripe.RetryPolicy{MaxAttempts: 3, BaseBackoff: time.Millisecond, MaxBackoff: time.Millisecond})
	for _, h := range hooks {
		c = c.WithHook(h)
	}
	return c
}

func get(t *testing.T, c *stripe.Client, path string, pathParams ...stripe.PathParam) error {
	t.Helper()
	req, err := stripe.NewRequest(http.MethodGet, path, nil, stripe.RequestOptions{}, pathParams...)
	if err != nil {
		t.Fatal(err)
	}
	return c.Do(context.Background(), req, nil)
}

// records decodes the JSON lines written by a slog JSON handler.
func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("bad log line %q: %v", line, err)
		}
		out = append(out, rec)
	}
	return out
}

func TestLoggingHook_Success(t *testing.T) {
	var buf bytes.Buffer
	tr := stripetest.NewTransport(stripetest.JSON(200, `{}`).WithHeader("Request-Id", "req_1"))

	if err := get(t, newClient(tr, LoggingHook(newLogger(&buf))), "/v1/balance"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recs := records(t, &buf)
	if len(recs) != 2 {
		t.Fatalf("expected 2 log records, got %d", len(recs))
	}
	if recs[0]["msg"] != "request started" || recs[1]["msg"] != "request completed" {
		t.Errorf("unexpected messages %v, %v", recs[0]["msg"], recs[1]["msg"])
	}
	if recs[1]["endpoint"] != "GET /v1/balance" {
		t.Errorf("expected endpoint GET /v1/balance, got %v", recs[1]["endpoint"])
	}
	if recs[1]["request_id"] != "req_1" {
		t.Errorf("expected request_id req_1, got %v", recs[1]["request_id"])
	}
	if _, ok := recs[1]["duration"]; !ok {
		t.Error("expected 'duration' in log output")
	}
}

func TestLoggingHook_RetryThenFailure(t *testing.T) {
	var buf bytes.Buffer
	tr := stripetest.NewTransport(
		stripetest.APIError(503, "api_error", "", "unavailable"),
		stripetest.APIError(503, "api_error", "", "unavailable"),
		stripetest.APIError(503, "api_error", "", "still unavailable"),
	)

	err := get(t, newClient(tr, LoggingHook(newLogger(&buf))), "/v1/accounts/{account}", stripe.Path("account", "acct_1"))
	if !stripe.IsKind(err, stripe.KindAPI) {
		t.Fatalf("expected api error, got %v", err)
	}

	recs := records(t, &buf)
	levels := make([]string, len(recs))
	for i, r := range recs {
		levels[i] = r["level"].(string)
	}
	expected := []string{"INFO", "WARN", "WARN", "ERROR"}
	if strings.Join(levels, ",") != strings.Join(expected, ",") {
		t.Errorf("expected levels %v, got %v", expected, levels)
	}
	last := recs[len(recs)-1]
	if !strings.Contains(last["error"].(string), "still unavailable") {
		t.Errorf("expected error message in log output, got %v", last["error"])
	}
	if last["attempts"] != float64(3) {
		t.Errorf("expected attempts 3, got %v", last["attempts"])
	}
}

func TestLoggingHook_NilLogger(t *testing.T) {
	// Should not panic with nil logger, should use default
	tr := stripetest.NewTransport(stripetest.JSON(200, `{}`))
	if err := get(t, newClient(tr, LoggingHook(nil)), "/v1/balance"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoggingHook_PropagatesContext(t *testing.T) {
	type ctxKey string
	key := ctxKey("test-key")

	var seen []any
	h := slog.New(&capturingHandler{key: key, seen: &seen})

	tr := stripetest.NewTransport(stripetest.JSON(200, `{}`))
	req, _ := stripe.NewRequest(http.MethodGet, "/v1/balance", nil, stripe.RequestOptions{})
	ctx := context.WithValue(context.Background(), key, "test-value")
	if err := newClient(tr, LoggingHook(h)).Do(ctx, req, nil); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 || seen[0] != "test-value" {
		t.Errorf("expected context value in every record, got %v", seen)
	}
}

type capturingHandler struct {
	key  any
	seen *[]any
}

func (h *capturingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capturingHandler) Handle(ctx context.Context, _ slog.Record) error {
	*h.seen = append(*h.seen, ctx.Value(h.key))
	return nil
}

func (h *capturingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *capturingHandler) WithGroup(string) slog.Handler { return h }
