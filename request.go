package stripe

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/broady/stripe/form"
)

// Disposition says where a request's params travel.
type Disposition string

const (
	DispositionQuery Disposition = "query" // GET
	DispositionForm  Disposition = "form"  // POST, DELETE
)

// PathParam fills one {name} hole of a path template.
type PathParam struct {
	Name  string
	Value string
}

// Path is shorthand for a PathParam.
func Path(name, value string) PathParam {
	return PathParam{Name: name, Value: value}
}

// RequestOptions carries the per-call settings every builder exposes. They
// live outside the params body.
type RequestOptions struct {
	// Expand lists dotted paths of fields to inline in the response.
	// Duplicates are allowed.
	Expand []string
	// IdempotencyKey makes a mutating request safe to retry.
	IdempotencyKey string
	// StripeAccount executes the call on behalf of a connected account.
	StripeAccount string
}

// AddExpand appends a dotted path to the expansion list.
func (o *RequestOptions) AddExpand(path string) {
	o.Expand = append(o.Expand, path)
}

// Request describes one API operation. It is built once by a builder's
// terminal method, consumed by dispatch and not retained.
type Request struct {
	Method     string
	Path       string // template, e.g. "/v1/accounts/{account}"
	PathParams []PathParam
	// Params is the serialized body payload. It goes on the query string for
	// GET and in the form body otherwise.
	Params *form.Values
	RequestOptions
}

// NewRequest validates params, serializes them and returns the description.
// Validation failures are returned as KindInvalidRequest errors.
func NewRequest(method, path string, params any, opts RequestOptions, pathParams ...PathParam) (*Request, error) {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodDelete:
	default:
		return nil, &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf("unsupported method %s", method)}
	}
	for _, p := range pathParams {
		if p.Value == "" {
			return nil, &Error{Kind: KindInvalidRequest, Param: p.Name, Message: p.Name + ": required"}
		}
	}
	if err := ValidateParams(params); err != nil {
		return nil, err
	}
	return &Request{
		Method:         method,
		Path:           path,
		PathParams:     pathParams,
		Params:         form.Encode(params),
		RequestOptions: opts,
	}, nil
}

// Disposition returns where Params are sent.
func (r *Request) Disposition() Disposition {
	if r.Method == http.MethodGet {
		return DispositionQuery
	}
	return DispositionForm
}

// Clone returns a copy whose Params may be modified independently.
func (r *Request) Clone() *Request {
	c := *r
	c.Params = r.Params.Clone()
	c.PathParams = append([]PathParam(nil), r.PathParams...)
	c.Expand = append([]string(nil), r.Expand...)
	return &c
}

// ResolvedPath substitutes every {name} hole with its escaped value.
func (r *Request) ResolvedPath() (string, error) {
	path := r.Path
	for _, p := range r.PathParams {
		hole := "{" + p.Name + "}"
		if !strings.Contains(path, hole) {
			return "", fmt.Errorf("path %s has no hole %s", r.Path, hole)
		}
		path = strings.ReplaceAll(path, hole, url.PathEscape(p.Value))
	}
	if i := strings.IndexByte(path, '{'); i >= 0 {
		return "", fmt.Errorf("path %s has an unfilled hole at offset %d", r.Path, i)
	}
	return path, nil
}

// Query returns the query string pairs: the params for GET, then the
// expansion list for every method.
func (r *Request) Query() *form.Values {
	q := &form.Values{}
	if r.Disposition() == DispositionQuery {
		q.Merge(r.Params)
	}
	for i, e := range r.Expand {
		q.Add(form.Index("expand", i), e)
	}
	return q
}

// Body returns the form body, or nil for GET.
func (r *Request) Body() []byte {
	if r.Disposition() == DispositionQuery || r.Params.Empty() {
		return nil
	}
	return []byte(r.Params.Encode())
}

// URL joins base with the resolved path and query string.
func (r *Request) URL(base string) (string, error) {
	path, err := r.ResolvedPath()
	if err != nil {
		return "", err
	}
	u := strings.TrimRight(base, "/") + path
	if q := r.Query().Encode(); q != "" {
		u += "?" + q
	}
	return u, nil
}
