package stripetest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/schema"
)

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag("form")
	d.IgnoreUnknownKeys(true)
	return d
}

// Server is an in-memory fake of the customers API served over HTTP. It
// implements enough of the real API's behavior to exercise a client end to
// end: bearer authentication, idempotent replay, connected-account
// isolation, cursor pagination and error envelopes.
//
// Each Stripe-Account header value sees its own data.
type Server struct {
	srv *httptest.Server

	mu           sync.Mutex
	seq          int
	accounts     map[string]*store
	idempotent   map[string]*stored
	failCommits  int
	requestCount int
}

type store struct {
	// customers in creation order; lists return them newest first.
	customers []*customerRecord
}

type stored struct {
	fingerprint string
	status      int
	body        []byte
}

type customerRecord struct {
	ID          string            `json:"id"`
	Object      string            `json:"object"`
	Email       string            `json:"email,omitempty"`
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Balance     int64             `json:"balance"`
	Created     int64             `json:"created"`
	Livemode    bool              `json:"livemode"`
	Metadata    map[string]string `json:"metadata"`
}

type customerForm struct {
	Email       *string `form:"email"`
	Name        *string `form:"name"`
	Description *string `form:"description"`
	Phone       *string `form:"phone"`
	Balance     *int64  `form:"balance"`
}

type listForm struct {
	Limit         int    `form:"limit"`
	StartingAfter string `form:"starting_after"`
	EndingBefore  string `form:"ending_before"`
	Email         string `form:"email"`
}

// NewServer starts a server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	s := &Server{
		accounts:   map[string]*store{},
		idempotent: map[string]*stored{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/customers", s.createCustomer)
	mux.HandleFunc("GET /v1/customers", s.listCustomers)
	mux.HandleFunc("GET /v1/customers/{id}", s.retrieveCustomer)
	mux.HandleFunc("POST /v1/customers/{id}", s.updateCustomer)
	mux.HandleFunc("DELETE /v1/customers/{id}", s.deleteCustomer)
	s.srv = httptest.NewServer(s.middleware(mux))
	t.Cleanup(s.srv.Close)
	return s
}

// URL is the base URL to configure the client with.
func (s *Server) URL() string { return s.srv.URL }

// Client returns an HTTP client for the server.
func (s *Server) Client() *http.Client { return s.srv.Client() }

// FailAfterCommit makes the next n mutating requests take effect and then
// answer 500, as if the response was lost. A retry carrying the same
// idempotency key gets the committed result.
func (s *Server) FailAfterCommit(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCommits = n
}

// Requests returns the number of requests served.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestCount
}

// Customers returns the number of live customers visible to account ("" for
// the platform).
func (s *Server) Customers(account string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.store(account).customers)
}

type recorder struct {
	http.ResponseWriter
	status int
	body   []byte
}

func (r *recorder) WriteHeader(status int) { r.status = status }

func (r *recorder) Write(b []byte) (int, error) {
	r.body = append(r.body, b...)
	return len(b), nil
}

func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requestCount++
		s.mu.Unlock()

		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer sk_") {
			writeError(w, http.StatusUnauthorized, "invalid_request_error", "", "Invalid API Key provided.")
			return
		}
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_error", "parameter_invalid", err.Error())
			return
		}
		w.Header().Set("Request-Id", fmt.Sprintf("req_%d", time.Now().UnixNano()))

		key := r.Header.Get("Idempotency-Key")
		if r.Method == http.MethodGet || key == "" {
			s.commit(w, r, next)
			return
		}

		scope := r.Header.Get("Stripe-Account") + "\x00" + key
		fingerprint := r.Method + " " + r.URL.Path + "?" + r.PostForm.Encode()
		s.mu.Lock()
		prev, ok := s.idempotent[scope]
		s.mu.Unlock()
		if ok {
			if prev.fingerprint != fingerprint {
				writeError(w, http.StatusConflict, "idempotency_error", "",
					"Keys for idempotent requests can only be used with the same parameters they were first used with.")
				return
			}
			w.Header().Set("Idempotent-Replayed", "true")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(prev.status)
			w.Write(prev.body)
			return
		}

		rec := &recorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.mu.Lock()
		s.idempotent[scope] = &stored{fingerprint: fingerprint, status: rec.status, body: rec.body}
		s.mu.Unlock()
		s.respond(w, rec)
	})
}

// commit runs a request without idempotency bookkeeping.
func (s *Server) commit(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if r.Method == http.MethodGet {
		next.ServeHTTP(w, r)
		return
	}
	rec := &recorder{ResponseWriter: w, status: http.StatusOK}
	next.ServeHTTP(rec, r)
	s.respond(w, rec)
}

// respond sends a committed result, unless a lost response was requested.
func (s *Server) respond(w http.ResponseWriter, rec *recorder) {
	s.mu.Lock()
	lose := s.failCommits > 0
	if lose {
		s.failCommits--
	}
	s.mu.Unlock()
	if lose {
		writeError(w, http.StatusInternalServerError, "api_error", "", "An unknown error occurred.")
		return
	}
	w.WriteHeader(rec.status)
	w.Write(rec.body)
}

func (s *Server) store(account string) *store {
	st, ok := s.accounts[account]
	if !ok {
		st = &store{}
		s.accounts[account] = st
	}
	return st
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	var f customerForm
	if err := formDecoder.Decode(&f, r.PostForm); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_error", "parameter_invalid", err.Error())
		return
	}

	s.mu.Lock()
	s.seq++
	c := &customerRecord{
		ID:       fmt.Sprintf("cus_%06d", s.seq),
		Object:   "customer",
		Created:  time.Now().Unix(),
		Metadata: map[string]string{},
	}
	apply(c, &f, r.PostForm)
	st := s.store(r.Header.Get("Stripe-Account"))
	st.customers = append(st.customers, c)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, c)
}

func (s *Server) retrieveCustomer(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	c := s.find(r)
	var out customerRecord
	if c != nil {
		out = *c
	}
	s.mu.Unlock()
	if c == nil {
		writeMissing(w, "customer", r.PathValue("id"))
		return
	}
	writeJSON(w, http.StatusOK, &out)
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var f customerForm
	if err := formDecoder.Decode(&f, r.PostForm); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_error", "parameter_invalid", err.Error())
		return
	}
	s.mu.Lock()
	c := s.find(r)
	var out customerRecord
	if c != nil {
		apply(c, &f, r.PostForm)
		out = *c
	}
	s.mu.Unlock()
	if c == nil {
		writeMissing(w, "customer", r.PathValue("id"))
		return
	}
	writeJSON(w, http.StatusOK, &out)
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	st := s.store(r.Header.Get("Stripe-Account"))
	i := slices.IndexFunc(st.customers, func(c *customerRecord) bool { return c.ID == id })
	if i >= 0 {
		st.customers = slices.Delete(st.customers, i, i+1)
	}
	s.mu.Unlock()
	if i < 0 {
		writeMissing(w, "customer", id)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "object": "customer", "deleted": true})
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	var f listForm
	if err := formDecoder.Decode(&f, r.URL.Query()); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_error", "parameter_invalid", err.Error())
		return
	}
	if f.Limit == 0 {
		f.Limit = 10
	}
	if f.Limit < 1 || f.Limit > 100 {
		writeParamError(w, "limit", "Limit must be between 1 and 100.")
		return
	}
	if f.StartingAfter != "" && f.EndingBefore != "" {
		writeParamError(w, "ending_before", "You may only specify one of these parameters: starting_after, ending_before.")
		return
	}

	s.mu.Lock()
	// Newest first.
	var all []customerRecord
	st := s.store(r.Header.Get("Stripe-Account"))
	for i := len(st.customers) - 1; i >= 0; i-- {
		if f.Email == "" || st.customers[i].Email == f.Email {
			all = append(all, *st.customers[i])
		}
	}
	s.mu.Unlock()

	index := func(id string) int {
		return slices.IndexFunc(all, func(c customerRecord) bool { return c.ID == id })
	}
	var page []customerRecord
	var hasMore bool
	switch {
	case f.EndingBefore != "":
		end := index(f.EndingBefore)
		if end < 0 {
			writeMissing(w, "customer", f.EndingBefore)
			return
		}
		start := max(0, end-f.Limit)
		page, hasMore = all[start:end], start > 0
	default:
		start := 0
		if f.StartingAfter != "" {
			i := index(f.StartingAfter)
			if i < 0 {
				writeMissing(w, "customer", f.StartingAfter)
				return
			}
			start = i + 1
		}
		end := min(len(all), start+f.Limit)
		page, hasMore = all[start:end], end < len(all)
	}
	if page == nil {
		page = []customerRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"object":   "list",
		"url":      "/v1/customers",
		"has_more": hasMore,
		"data":     page,
	})
}

// find must be called with s.mu held.
func (s *Server) find(r *http.Request) *customerRecord {
	id := r.PathValue("id")
	for _, c := range s.store(r.Header.Get("Stripe-Account")).customers {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// apply copies the set fields of f onto c. Metadata follows the API's rules:
// "metadata=" clears every key and "metadata[k]=" deletes k.
func apply(c *customerRecord, f *customerForm, form url.Values) {
	if f.Email != nil {
		c.Email = *f.Email
	}
	if f.Name != nil {
		c.Name = *f.Name
	}
	if f.Description != nil {
		c.Description = *f.Description
	}
	if f.Phone != nil {
		c.Phone = *f.Phone
	}
	if f.Balance != nil {
		c.Balance = *f.Balance
	}
	if _, ok := form["metadata"]; ok {
		clear(c.Metadata)
	}
	for k, vs := range form {
		name, ok := strings.CutPrefix(k, "metadata[")
		if !ok || !strings.HasSuffix(name, "]") {
			continue
		}
		name = strings.TrimSuffix(name, "]")
		if v := vs[len(vs)-1]; v == "" {
			delete(c.Metadata, name)
		} else {
			c.Metadata[name] = v
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, typ, code, message string) {
	writeJSON(w, status, map[string]any{"error": map[string]string{
		"type":    typ,
		"code":    code,
		"message": message,
	}})
}

func writeParamError(w http.ResponseWriter, param, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"error": map[string]string{
		"type":    "invalid_request_error",
		"code":    "parameter_invalid",
		"param":   param,
		"message": message,
	}})
}

func writeMissing(w http.ResponseWriter, object, id string) {
	writeJSON(w, http.StatusNotFound, map[string]any{"error": map[string]string{
		"type":    "invalid_request_error",
		"code":    "resource_missing",
		"param":   "id",
		"message": fmt.Sprintf("No such %s: '%s'", object, id),
	}})
}
