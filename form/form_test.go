package form

import (
	"testing"
)

type addressParams struct {
	Line1 *string `form:"line1"`
	City  *string `form:"city"`
}

type itemParams struct {
	Price    *string `form:"price"`
	Quantity *uint64 `form:"quantity"`
}

type pageParams struct {
	Limit         *int64  `form:"limit"`
	StartingAfter *string `form:"starting_after"`
}

type testParams struct {
	pageParams
	Name     *string           `form:"name"`
	Enabled  *bool             `form:"enabled"`
	Rate     *float64          `form:"rate"`
	Address  *addressParams    `form:"address"`
	Items    []*itemParams     `form:"items"`
	Tags     []string          `form:"tags"`
	Metadata map[string]string `form:"metadata"`
	Note     string            `form:"note,omitempty"`
	Internal string            `form:"-"`
	ignored  string
}

type rangeParam struct {
	gte, lt int64
}

func (r rangeParam) AppendTo(v *Values, key string) {
	v.Add(Key(key, "gte"), "x")
	v.Add(Key(key, "lt"), "y")
}

func ptr[T any](v T) *T { return &v }

func TestEncode_Empty(t *testing.T) {
	if got := Encode(&testParams{}).Encode(); got != "" {
		t.Errorf("expected empty output for unset params, got %q", got)
	}
	if got := Encode(nil).Encode(); got != "" {
		t.Errorf("expected empty output for nil params, got %q", got)
	}
}

func TestEncode_Sparse(t *testing.T) {
	// A builder that never set a field and one that set then discarded it
	// must produce the same bytes.
	fresh := Encode(&testParams{Name: ptr("a")}).Encode()
	touched := &testParams{Name: ptr("a"), Enabled: ptr(true)}
	touched = &testParams{Name: touched.Name}
	if got := Encode(touched).Encode(); got != fresh {
		t.Errorf("expected %q, got %q", fresh, got)
	}
}

func TestEncode_Nesting(t *testing.T) {
	tests := []struct {
		name   string
		params *testParams
		want   string
	}{
		{
			name:   "scalars",
			params: &testParams{Name: ptr("Jenny Rosen"), Enabled: ptr(false), Rate: ptr(12.5)},
			want:   "name=Jenny+Rosen&enabled=false&rate=12.5",
		},
		{
			name:   "nested struct",
			params: &testParams{Address: &addressParams{City: ptr("Berlin")}},
			want:   "address[city]=Berlin",
		},
		{
			name: "array of objects",
			params: &testParams{Items: []*itemParams{
				{Price: ptr("price_1"), Quantity: ptr(uint64(2))},
				{Price: ptr("price_2")},
			}},
			want: "items[0][price]=price_1&items[0][quantity]=2&items[1][price]=price_2",
		},
		{
			name:   "array of scalars",
			params: &testParams{Tags: []string{"a", "b"}},
			want:   "tags[0]=a&tags[1]=b",
		},
		{
			name:   "empty array clears",
			params: &testParams{Tags: []string{}},
			want:   "tags=",
		},
		{
			name:   "metadata sorted",
			params: &testParams{Metadata: map[string]string{"z": "1", "a": ""}},
			want:   "metadata[a]=&metadata[z]=1",
		},
		{
			name:   "empty metadata clears all",
			params: &testParams{Metadata: map[string]string{}},
			want:   "metadata=",
		},
		{
			name:   "embedded struct flattens in declaration order",
			params: &testParams{pageParams: pageParams{Limit: ptr(int64(3))}, Name: ptr("x")},
			want:   "limit=3&name=x",
		},
		{
			name:   "omitempty and skipped fields",
			params: &testParams{Note: "hi", Internal: "secret", ignored: "nope"},
			want:   "note=hi",
		},
		{
			name:   "escaping",
			params: &testParams{Name: ptr("a@b.co&x=1")},
			want:   "name=a%40b.co%26x%3D1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.params).Encode()
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEncode_Appender(t *testing.T) {
	type params struct {
		Created *rangeParam `form:"created"`
	}
	got := Encode(&params{Created: &rangeParam{}}).Encode()
	if want := "created[gte]=x&created[lt]=y"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got := Encode(&params{}).Encode(); got != "" {
		t.Errorf("expected nil appender to be skipped, got %q", got)
	}
}

func TestEncode_Float(t *testing.T) {
	type params struct {
		Rate *float64 `form:"rate"`
	}
	for _, f := range []float64{0.1, 1e21, 3.0000000000000004, 100} {
		got := Encode(&params{Rate: &f}).Get("rate")
		if got != FormatFloat(f) {
			t.Errorf("expected %q, got %q", FormatFloat(f), got)
		}
	}
	if got := FormatFloat(1e21); got != "1000000000000000000000" {
		t.Errorf("expected no exponent, got %q", got)
	}
}

func TestEncode_Prefix(t *testing.T) {
	v := &Values{}
	AppendToPrefix(v, &addressParams{Line1: ptr("1 Main St")}, "shipping[address]")
	if got, want := v.Encode(), "shipping[address][line1]=1+Main+St"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestValues_SetGetDel(t *testing.T) {
	v := &Values{}
	v.Add("limit", "2")
	v.Add("starting_after", "a")
	v.Add("starting_after", "b")

	v.Set("starting_after", "c")
	if got, want := v.Encode(), "limit=2&starting_after=c"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	v.Set("ending_before", "d")
	if got := v.Get("ending_before"); got != "d" {
		t.Errorf("expected d, got %q", got)
	}

	v.Del("limit")
	if v.Has("limit") {
		t.Error("expected limit to be removed")
	}
	if v.Len() != 2 {
		t.Errorf("expected 2 pairs, got %d", v.Len())
	}
}

func TestValues_CloneIsIndependent(t *testing.T) {
	v := &Values{}
	v.Add("a", "1")
	c := v.Clone()
	c.Set("a", "2")
	if v.Get("a") != "1" {
		t.Errorf("expected original to be untouched, got %q", v.Get("a"))
	}
}

func TestValues_URLValues(t *testing.T) {
	v := &Values{}
	v.Add("expand[0]", "customer")
	v.Add("expand[1]", "invoice")
	u := v.URLValues()
	if u.Get("expand[1]") != "invoice" {
		t.Errorf("expected invoice, got %q", u.Get("expand[1]"))
	}
}
