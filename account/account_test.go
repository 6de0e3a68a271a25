package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/broady/stripe"
	"github.com/broady/stripe/decode"
	"github.com/broady/stripe/enum"
	"github.com/broady/stripe/form"
	"github.com/broady/stripe/stripetest"
	"github.com/google/go-cmp/cmp"
)

func newClient(tr *stripetest.Transport) *stripe.Client {
	return stripe.NewClient("sk_test_123").
		WithTransport(tr).
		WithRetryPolicy(stripe.RetryPolicy{MaxAttempts: 1})
}

func TestCreate_Minimal(t *testing.T) {
	tr := stripetest.NewTransport(stripetest.JSON(200,
		`{"id":"acct_1","object":"account","type":"standard","country":"US"}`))

	acct, err := NewCreate().
		Type(TypeStandard).
		Country("US").
		Email("a@b.co").
		Do(context.Background(), newClient(tr))
	if err != nil {
		t.Fatal(err)
	}

	r := tr.Requests()[0]
	if r.Method != http.MethodPost || r.Path != "/v1/accounts" {
		t.Errorf("expected POST /v1/accounts, got %s %s", r.Method, r.Path)
	}
	stripetest.AssertBody(t, r, "type=standard&country=US&email=a%40b.co")

	if acct.ID != "acct_1" {
		t.Errorf("expected acct_1, got %s", acct.ID)
	}
	if !acct.Type.Is(TypeStandard) {
		t.Errorf("expected type standard, got %s", acct.Type)
	}
	if acct.Country != "US" {
		t.Errorf("expected country US, got %s", acct.Country)
	}
}

func TestCreate_SparseAndStable(t *testing.T) {
	body := func(b *Create) string {
		req, err := b.Request()
		if err != nil {
			t.Fatal(err)
		}
		return string(req.Body())
	}
	if got := body(NewCreate()); got != "" {
		t.Errorf("expected empty body, got %q", got)
	}
	a := body(NewCreate().Type(TypeCustom).Country("DE"))
	b := body(NewCreate().Country("DE").Type(TypeCustom))
	if a != b {
		t.Errorf("expected setter order not to matter, got %q and %q", a, b)
	}
}

func TestCreate_Nested(t *testing.T) {
	name := "Acme"
	structure := CompanyStructureLLC
	interval := PayoutIntervalWeekly
	anchor := WeekdayFriday
	req, err := NewCreate().
		Type(TypeCustom).
		Company(&CompanyParams{Name: &name, Structure: &structure}).
		PayoutSchedule(&PayoutScheduleParams{Interval: &interval, WeeklyAnchor: &anchor}).
		Metadata("order", "6735").
		Expand("settings").
		Request()
	if err != nil {
		t.Fatal(err)
	}
	expected := "type=custom&company[name]=Acme&company[structure]=llc" +
		"&settings[payouts][schedule][interval]=weekly&settings[payouts][schedule][weekly_anchor]=friday" +
		"&metadata[order]=6735"
	if got := string(req.Body()); got != expected {
		t.Errorf("expected %s\n got %s", expected, got)
	}
	if diff := cmp.Diff([]string{"settings"}, req.Expand); diff != "" {
		t.Errorf("expand mismatch (-want +got):\n%s", diff)
	}
}

func TestCreate_ValidationPreventsNetworkCall(t *testing.T) {
	tests := []struct {
		name  string
		build *Create
		param string
	}{
		{"bad email", NewCreate().Email("not-an-email"), "email"},
		{"bad country", NewCreate().Country("USA"), "country"},
		{"bad currency", NewCreate().DefaultCurrency("USD"), "default_currency"},
		{"unknown closed enum", NewCreate().PayoutSchedule(&PayoutScheduleParams{WeeklyAnchor: ptr(Weekday("someday"))}), "weekly_anchor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := stripetest.NewTransport()
			_, err := tt.build.Do(context.Background(), newClient(tr))
			var e *stripe.Error
			if !errors.As(err, &e) || e.Kind != stripe.KindInvalidRequest {
				t.Fatalf("expected invalid_request, got %v", err)
			}
			if e.Param != tt.param {
				t.Errorf("expected param %s, got %s", tt.param, e.Param)
			}
			stripetest.AssertCalls(t, tr, 0)
		})
	}
}

func TestList_RangeQuery(t *testing.T) {
	req, err := NewList().
		Limit(2).
		Created(stripe.Between(1700000000, 1700003600)).
		Request()
	if err != nil {
		t.Fatal(err)
	}
	expected := "limit=2&created[gte]=1700000000&created[lt]=1700003600"
	if got := req.Query().Encode(); got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
	if req.Body() != nil {
		t.Errorf("expected no body for GET, got %q", req.Body())
	}
}

func TestList_LimitOutOfRange(t *testing.T) {
	if _, err := NewList().Limit(500).Request(); !stripe.IsKind(err, stripe.KindInvalidRequest) {
		t.Errorf("expected invalid_request, got %v", err)
	}
	items, err := NewList().Limit(0).Iter(newClient(stripetest.NewTransport())).Collect(context.Background())
	if !stripe.IsKind(err, stripe.KindInvalidRequest) || len(items) != 0 {
		t.Errorf("expected a failed iterator, got %v %v", items, err)
	}
}

func TestList_Iter(t *testing.T) {
	tr := stripetest.NewTransport(
		stripetest.JSON(200, `{"object":"list","has_more":true,"data":[{"id":"acct_a"},{"id":"acct_b"}]}`),
		stripetest.JSON(200, `{"object":"list","has_more":false,"data":[{"id":"acct_c"}]}`),
	)
	var got []string
	for acct, err := range NewList().Limit(2).Iter(newClient(tr)).All(context.Background()) {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, acct.ID)
	}
	if diff := cmp.Diff([]string{"acct_a", "acct_b", "acct_c"}, got); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	stripetest.AssertQuery(t, tr.Requests()[1], "limit=2&starting_after=acct_b")
}

func TestDecode_UnknownOpenEnum(t *testing.T) {
	var acct Account
	err := json.Unmarshal([]byte(`{
		"id": "acct_1",
		"type": "platform_v9",
		"company": {"name": "Co-op", "structure": "cooperative_society"}
	}`), &acct)
	if err != nil {
		t.Fatal(err)
	}
	tok, ok := acct.Company.Structure.Unknown()
	if !ok || tok != "cooperative_society" {
		t.Errorf("expected Unknown(cooperative_society), got %s", acct.Company.Structure)
	}
	if !acct.Type.IsUnknown() {
		t.Errorf("expected unknown type, got %s", acct.Type)
	}

	v := &form.Values{}
	acct.Company.Structure.AppendTo(v, "structure")
	if got := v.Encode(); got != "structure=cooperative_society" {
		t.Errorf("expected original token echoed, got %s", got)
	}
}

func TestDecode_UnknownClosedEnumFails(t *testing.T) {
	var acct Account
	err := json.Unmarshal([]byte(`{
		"id": "acct_1",
		"settings": {"payouts": {"schedule": {"interval": "hourly"}}}
	}`), &acct)
	var de *decode.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *decode.Error, got %v", err)
	}
	if de.Pointer != "/settings/payouts/schedule/interval" {
		t.Errorf("unexpected pointer %s", de.Pointer)
	}
	if de.Token != "hourly" {
		t.Errorf("expected token hourly, got %s", de.Token)
	}
}

func TestDecode_Full(t *testing.T) {
	var acct Account
	err := json.Unmarshal([]byte(`{
		"id": "acct_1",
		"object": "account",
		"type": "custom",
		"business_type": "company",
		"charges_enabled": true,
		"payouts_enabled": false,
		"default_currency": "eur",
		"created": 1700000000,
		"metadata": {"k": "v"},
		"future_field": {"nested": [1, 2, 3]},
		"company": {"name": "Acme", "address": {"city": "Berlin", "country": "DE"}, "tax_id_provided": true},
		"settings": {"payouts": {"statement_descriptor": "ACME", "schedule": {"interval": "weekly", "weekly_anchor": "monday", "delay_days": 2}}}
	}`), &acct)
	if err != nil {
		t.Fatal(err)
	}
	want := Account{
		ID:              "acct_1",
		Object:          "account",
		Type:            enum.Known(TypeCustom),
		BusinessType:    enum.Known(BusinessTypeCompany),
		ChargesEnabled:  true,
		DefaultCurrency: stripe.CurrencyEUR,
		Created:         1700000000,
		Metadata:        stripe.Metadata{"k": "v"},
		Company: &Company{
			Name:          "Acme",
			TaxIDProvided: true,
			Address:       &stripe.Address{City: "Berlin", Country: "DE"},
		},
		Settings: &Settings{Payouts: &PayoutSettings{
			StatementDescriptor: "ACME",
			Schedule:            PayoutSchedule{Interval: PayoutIntervalWeekly, WeeklyAnchor: WeekdayMonday, DelayDays: 2},
		}},
	}
	if diff := cmp.Diff(want, acct, cmp.Comparer(func(a, b enum.Open[Type]) bool { return a.Token() == b.Token() }),
		cmp.Comparer(func(a, b enum.Open[BusinessType]) bool { return a.Token() == b.Token() }),
		cmp.Comparer(func(a, b enum.Open[CompanyStructure]) bool { return a.Token() == b.Token() })); diff != "" {
		t.Errorf("account mismatch (-want +got):\n%s", diff)
	}
}

func TestRetrieveUpdateDeleteReject(t *testing.T) {
	tr := stripetest.NewTransport(
		stripetest.JSON(200, `{"id":"acct_1"}`),
		stripetest.JSON(200, `{"id":"acct_1","email":"new@b.co"}`),
		stripetest.JSON(200, `{"id":"acct_1","object":"account","deleted":true}`),
		stripetest.JSON(200, `{"id":"acct_2"}`),
	)
	c := newClient(tr)
	ctx := context.Background()

	if _, err := NewRetrieve("acct_1").Expand("company").Do(ctx, c); err != nil {
		t.Fatal(err)
	}
	up, err := NewUpdate("acct_1").Email("new@b.co").ClearMetadata().IdempotencyKey("up-1").Do(ctx, c)
	if err != nil {
		t.Fatal(err)
	}
	if up.Email != "new@b.co" {
		t.Errorf("expected updated email, got %s", up.Email)
	}
	del, err := NewDelete("acct_1").Do(ctx, c)
	if err != nil {
		t.Fatal(err)
	}
	if !del.Deleted {
		t.Error("expected deleted=true")
	}
	if _, err := NewReject("acct_2", RejectReasonFraud).StripeAccount("acct_platform").Go(ctx, c).Result(); err != nil {
		t.Fatal(err)
	}

	reqs := tr.Requests()
	expected := []struct{ method, path, query, body string }{
		{http.MethodGet, "/v1/accounts/acct_1", "expand[0]=company", ""},
		{http.MethodPost, "/v1/accounts/acct_1", "", "email=new%40b.co&metadata="},
		{http.MethodDelete, "/v1/accounts/acct_1", "", ""},
		{http.MethodPost, "/v1/accounts/acct_2/reject", "", "reason=fraud"},
	}
	for i, want := range expected {
		r := reqs[i]
		if r.Method != want.method || r.Path != want.path {
			t.Errorf("request %d: expected %s %s, got %s %s", i, want.method, want.path, r.Method, r.Path)
		}
		stripetest.AssertQuery(t, r, want.query)
		stripetest.AssertBody(t, r, want.body)
	}
	stripetest.AssertHeader(t, reqs[1], "Idempotency-Key", "up-1")
	stripetest.AssertHeader(t, reqs[3], "Stripe-Account", "acct_platform")
}

func TestRetrieve_EmptyID(t *testing.T) {
	if _, err := NewRetrieve("").Request(); !stripe.IsKind(err, stripe.KindInvalidRequest) {
		t.Errorf("expected invalid_request, got %v", err)
	}
}

func TestEnums_RoundTrip(t *testing.T) {
	for _, v := range WeekdayValues() {
		got, err := enum.Parse[Weekday](string(v))
		if err != nil || got != v {
			t.Errorf("Parse(%s): got %s, %v", v, got, err)
		}
	}
	for _, v := range PayoutIntervalValues() {
		if got, err := enum.Parse[PayoutInterval](string(v)); err != nil || got != v {
			t.Errorf("Parse(%s): got %s, %v", v, got, err)
		}
	}
	if _, err := enum.Parse[Weekday]("someday"); err == nil {
		t.Error("expected unknown weekday to fail")
	}
	for _, v := range CompanyStructureValues() {
		o := enum.Of[CompanyStructure](string(v))
		if k, ok := o.Known(); !ok || k != v {
			t.Errorf("Of(%s): got %s", v, o)
		}
	}
	for _, v := range TypeValues() {
		if !enum.Of[Type](string(v)).Is(v) {
			t.Errorf("Of(%s) did not round trip", v)
		}
	}
}

func ptr[T any](v T) *T { return &v }

