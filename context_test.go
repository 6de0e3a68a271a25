package stripe

import (
	"context"
	"net/http"
	"testing"
)

func TestRequestFromContext(t *testing.T) {
	if r := RequestFromContext(context.Background()); r != nil {
		t.Errorf("expected nil, got %v", r)
	}
	req := &Request{Method: http.MethodGet, Path: "/v1/widgets"}
	ctx := withRequest(context.Background(), req)
	if got := RequestFromContext(ctx); got != req {
		t.Errorf("expected %v, got %v", req, got)
	}
}

func TestAttemptFromContext(t *testing.T) {
	if _, ok := AttemptFromContext(context.Background()); ok {
		t.Error("expected no attempt in a bare context")
	}
	n, ok := AttemptFromContext(withAttempt(context.Background(), 2))
	if !ok || n != 2 {
		t.Errorf("expected attempt 2, got %d %v", n, ok)
	}
}
