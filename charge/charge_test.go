package charge

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/broady/stripe"
	"github.com/broady/stripe/stripetest"
)

func newClient(tr *stripetest.Transport) *stripe.Client {
	return stripe.NewClient("sk_test_123").
		WithTransport(tr).
		WithRetryPolicy(stripe.RetryPolicy{MaxAttempts: 3, BaseBackoff: 1, MaxBackoff: 1})
}

func TestCreate(t *testing.T) {
	tr := stripetest.NewTransport(stripetest.JSON(200,
		`{"id":"ch_1","object":"charge","amount":2000,"currency":"usd","status":"succeeded","customer":"cus_1","paid":true}`))

	ch, err := NewCreate(2000, stripe.CurrencyUSD).
		Customer("cus_1").
		Capture(false).
		Description("Order #6735").
		IdempotencyKey("order-6735").
		Do(context.Background(), newClient(tr))
	if err != nil {
		t.Fatal(err)
	}

	stripetest.AssertBody(t, tr.Requests()[0],
		"amount=2000&currency=usd&customer=cus_1&description=Order+%236735&capture=false")
	if m := ch.Money(); m.Amount != 2000 || m.Currency != stripe.CurrencyUSD {
		t.Errorf("unexpected money %+v", m)
	}
	if !ch.Status.Is(StatusSucceeded) {
		t.Errorf("expected succeeded, got %s", ch.Status)
	}
	if ch.Customer.Expanded() || ch.Customer.ID != "cus_1" {
		t.Errorf("expected bare customer id, got %+v", ch.Customer)
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		b     *Create
		param string
	}{
		{"zero amount", NewCreate(0, stripe.CurrencyUSD), "amount"},
		{"missing currency", NewCreate(100, ""), "currency"},
		{"uppercase currency", NewCreate(100, "USD"), "currency"},
		{"long descriptor", NewCreate(100, stripe.CurrencyEUR).StatementDescriptor("THIS DESCRIPTOR IS FAR TOO LONG"), "statement_descriptor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.b.Request()
			var e *stripe.Error
			if !asError(err, &e) || e.Kind != stripe.KindInvalidRequest || e.Param != tt.param {
				t.Errorf("expected invalid_request on %s, got %v", tt.param, err)
			}
		})
	}
}

func asError(err error, target **stripe.Error) bool {
	e, ok := err.(*stripe.Error)
	if ok {
		*target = e
	}
	return ok
}

func TestRetrieve_ExpandedCustomer(t *testing.T) {
	tr := stripetest.NewTransport(stripetest.JSON(200, `{
		"id": "ch_1",
		"amount": 500,
		"currency": "eur",
		"customer": {"id": "cus_9", "object": "customer", "email": "x@y.z"}
	}`))
	ch, err := NewRetrieve("ch_1").Expand("customer").Do(context.Background(), newClient(tr))
	if err != nil {
		t.Fatal(err)
	}
	if !ch.Customer.Expanded() {
		t.Fatal("expected expanded customer")
	}
	if ch.Customer.ID != "cus_9" || ch.Customer.Object.Email != "x@y.z" {
		t.Errorf("unexpected customer %+v", ch.Customer.Object)
	}
	stripetest.AssertQuery(t, tr.Requests()[0], "expand[0]=customer")
}

func TestCapture_RetriedWithKey(t *testing.T) {
	tr := stripetest.NewTransport(
		stripetest.APIError(500, "api_error", "", "try again"),
		stripetest.JSON(200, `{"id":"ch_1","amount":1500,"amount_captured":1000,"currency":"usd","captured":true}`),
	)
	ch, err := NewCapture("ch_1").Amount(1000).IdempotencyKey("cap-1").Do(context.Background(), newClient(tr))
	if err != nil {
		t.Fatal(err)
	}
	if !ch.Captured || ch.AmountCaptured != 1000 {
		t.Errorf("unexpected charge %+v", ch)
	}
	reqs := tr.Requests()
	if len(reqs) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(reqs))
	}
	for _, r := range reqs {
		if r.Path != "/v1/charges/ch_1/capture" {
			t.Errorf("unexpected path %s", r.Path)
		}
		stripetest.AssertBody(t, r, "amount=1000")
		stripetest.AssertHeader(t, r, "Idempotency-Key", "cap-1")
	}
}

func TestCapture_NotRetriedWithoutKey(t *testing.T) {
	tr := stripetest.NewTransport(
		stripetest.APIError(500, "api_error", "", "try again"),
		stripetest.JSON(200, `{"id":"ch_1","amount":1500,"currency":"usd"}`),
	)
	if _, err := NewCapture("ch_1").Do(context.Background(), newClient(tr)); !stripe.IsKind(err, stripe.KindAPI) {
		t.Errorf("expected api error, got %v", err)
	}
	stripetest.AssertCalls(t, tr, 1)
}

func TestList_FilterAndIter(t *testing.T) {
	tr := stripetest.NewTransport(
		stripetest.JSON(200, `{"object":"list","has_more":true,"data":[{"id":"ch_1","amount":1,"currency":"usd"}]}`),
		stripetest.JSON(200, `{"object":"list","has_more":false,"data":[{"id":"ch_2","amount":2,"currency":"usd"}]}`),
	)
	charges, err := NewList().Customer("cus_1").Created(stripe.Equal(1700000000)).Iter(newClient(tr)).Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(charges) != 2 || charges[1].Amount != 2 {
		t.Errorf("unexpected charges %v", charges)
	}
	reqs := tr.Requests()
	stripetest.AssertQuery(t, reqs[0], "customer=cus_1&created=1700000000")
	stripetest.AssertQuery(t, reqs[1], "customer=cus_1&created=1700000000&starting_after=ch_1")
}

func TestDecode_MissingRequired(t *testing.T) {
	var ch Charge
	if err := json.Unmarshal([]byte(`{"id":"ch_1","currency":"usd"}`), &ch); err == nil {
		t.Error("expected missing amount to fail")
	}
}

func TestStatus_Unknown(t *testing.T) {
	var ch Charge
	if err := json.Unmarshal([]byte(`{"id":"ch_1","amount":1,"currency":"usd","status":"disputed_pending"}`), &ch); err != nil {
		t.Fatal(err)
	}
	if !ch.Status.IsUnknown() || ch.Status.Token() != "disputed_pending" {
		t.Errorf("expected unknown status, got %s", ch.Status)
	}
}
