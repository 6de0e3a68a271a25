package stripetest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func do(t *testing.T, s *Server, method, path string, form url.Values, header map[string]string) (int, http.Header, map[string]any) {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, s.URL()+path, body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer sk_test_123")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := s.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp.StatusCode, resp.Header, out
}

func TestServer_Unauthorized(t *testing.T) {
	s := NewServer(t)
	resp, err := s.Client().Get(s.URL() + "/v1/customers")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestServer_IdempotentReplay(t *testing.T) {
	s := NewServer(t)
	form := url.Values{"email": {"a@b.co"}, "metadata[plan]": {"pro"}}
	key := map[string]string{"Idempotency-Key": "k1"}

	status, _, first := do(t, s, "POST", "/v1/customers", form, key)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	status, header, second := do(t, s, "POST", "/v1/customers", form, key)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if header.Get("Idempotent-Replayed") != "true" {
		t.Error("expected replayed response")
	}
	if first["id"] != second["id"] {
		t.Errorf("expected same customer, got %v and %v", first["id"], second["id"])
	}
	if n := s.Customers(""); n != 1 {
		t.Errorf("expected 1 customer, got %d", n)
	}

	status, _, body := do(t, s, "POST", "/v1/customers", url.Values{"email": {"other@b.co"}}, key)
	if status != http.StatusConflict {
		t.Errorf("expected 409 on reused key, got %d", status)
	}
	if errObj, _ := body["error"].(map[string]any); errObj["type"] != "idempotency_error" {
		t.Errorf("expected idempotency_error, got %v", body)
	}
}

func TestServer_FailAfterCommit(t *testing.T) {
	s := NewServer(t)
	s.FailAfterCommit(1)
	key := map[string]string{"Idempotency-Key": "k2"}
	form := url.Values{"name": {"Jenny"}}

	if status, _, _ := do(t, s, "POST", "/v1/customers", form, key); status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	status, _, body := do(t, s, "POST", "/v1/customers", form, key)
	if status != http.StatusOK || body["name"] != "Jenny" {
		t.Errorf("expected committed customer, got %d %v", status, body)
	}
	if n := s.Customers(""); n != 1 {
		t.Errorf("expected 1 customer, got %d", n)
	}
}

func TestServer_MetadataRules(t *testing.T) {
	s := NewServer(t)
	_, _, created := do(t, s, "POST", "/v1/customers", url.Values{"metadata[a]": {"1"}, "metadata[b]": {"2"}}, nil)
	id := created["id"].(string)

	_, _, updated := do(t, s, "POST", "/v1/customers/"+id, url.Values{"metadata[a]": {""}}, nil)
	md := updated["metadata"].(map[string]any)
	if _, ok := md["a"]; ok || md["b"] != "2" {
		t.Errorf("expected only b to remain, got %v", md)
	}

	_, _, cleared := do(t, s, "POST", "/v1/customers/"+id, url.Values{"metadata": {""}}, nil)
	if md := cleared["metadata"].(map[string]any); len(md) != 0 {
		t.Errorf("expected metadata cleared, got %v", md)
	}
}

func TestServer_ListPaging(t *testing.T) {
	s := NewServer(t)
	var ids []string
	for range 5 {
		_, _, c := do(t, s, "POST", "/v1/customers", url.Values{}, nil)
		ids = append(ids, c["id"].(string))
	}
	// Newest first: ids[4], ids[3], ...
	_, _, page := do(t, s, "GET", "/v1/customers?limit=2&starting_after="+ids[3], nil, nil)
	data := page["data"].([]any)
	if len(data) != 2 || data[0].(map[string]any)["id"] != ids[2] || page["has_more"] != true {
		t.Errorf("unexpected forward page %v", page)
	}

	_, _, page = do(t, s, "GET", "/v1/customers?limit=2&ending_before="+ids[1], nil, nil)
	data = page["data"].([]any)
	if len(data) != 2 || data[0].(map[string]any)["id"] != ids[3] || page["has_more"] != true {
		t.Errorf("unexpected backward page %v", page)
	}

	status, _, _ := do(t, s, "GET", "/v1/customers?limit=101", nil, nil)
	if status != http.StatusBadRequest {
		t.Errorf("expected 400 for limit=101, got %d", status)
	}
}

func TestServer_ConnectedAccountIsolation(t *testing.T) {
	s := NewServer(t)
	_, _, c := do(t, s, "POST", "/v1/customers", url.Values{}, map[string]string{"Stripe-Account": "acct_1"})
	status, _, body := do(t, s, "GET", "/v1/customers/"+c["id"].(string), nil, nil)
	if status != http.StatusNotFound {
		t.Errorf("expected 404 from the platform, got %d", status)
	}
	if errObj, _ := body["error"].(map[string]any); errObj["code"] != "resource_missing" {
		t.Errorf("expected resource_missing, got %v", body)
	}
}
