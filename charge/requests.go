package charge

import (
	"context"
	"net/http"

	"github.com/broady/stripe"
	"github.com/broady/stripe/decode"
)

const (
	pathCharges = "/v1/charges"
	pathCharge  = "/v1/charges/{charge}"
	pathCapture = "/v1/charges/{charge}/capture"
)

// CreateParams is the body of a create request.
type CreateParams struct {
	Amount              int64           `form:"amount" validate:"gt=0"`
	Currency            stripe.Currency `form:"currency" validate:"required,currency"`
	Customer            *string         `form:"customer,omitempty"`
	Source              *string         `form:"source,omitempty"`
	Description         *string         `form:"description,omitempty"`
	Capture             *bool           `form:"capture,omitempty"`
	ReceiptEmail        *string         `form:"receipt_email,omitempty" validate:"omitempty,email"`
	StatementDescriptor *string         `form:"statement_descriptor,omitempty" validate:"omitempty,max=22"`
	Metadata            stripe.Metadata `form:"metadata"`
}

// Create charges a payment source.
type Create struct {
	params CreateParams
	opts   stripe.RequestOptions
}

// NewCreate starts a charge of amount in the smallest unit of currency.
func NewCreate(amount int64, currency stripe.Currency) *Create {
	return &Create{params: CreateParams{Amount: amount, Currency: currency}}
}

func (b *Create) Customer(id string) *Create { b.params.Customer = &id; return b }

func (b *Create) Source(id string) *Create { b.params.Source = &id; return b }

func (b *Create) Description(s string) *Create { b.params.Description = &s; return b }

// Capture set to false only authorizes the charge; capture it later with
// NewCapture.
func (b *Create) Capture(capture bool) *Create { b.params.Capture = &capture; return b }

func (b *Create) ReceiptEmail(email string) *Create { b.params.ReceiptEmail = &email; return b }

func (b *Create) StatementDescriptor(s string) *Create { b.params.StatementDescriptor = &s; return b }

func (b *Create) Metadata(key, value string) *Create {
	if b.params.Metadata == nil {
		b.params.Metadata = stripe.Metadata{}
	}
	b.params.Metadata[key] = value
	return b
}

// Expand asks the server to inline the object at a dotted field path.
func (b *Create) Expand(path string) *Create { b.opts.AddExpand(path); return b }

// IdempotencyKey lets the request be retried without repeating its effect.
func (b *Create) IdempotencyKey(key string) *Create { b.opts.IdempotencyKey = key; return b }

// StripeAccount sends the request on behalf of a connected account.
func (b *Create) StripeAccount(id string) *Create { b.opts.StripeAccount = id; return b }

// Request builds the request without sending it.
func (b *Create) Request() (*stripe.Request, error) {
	return stripe.NewRequest(http.MethodPost, pathCharges, &b.params, b.opts)
}

// Do sends the request and decodes the response.
func (b *Create) Do(ctx context.Context, c *stripe.Client) (*Charge, error) {
	req, err := b.Request()
	if err != nil {
		return nil, err
	}
	return stripe.Call(ctx, c, req, (*Charge).Visitor)
}

// Go runs Do in the background.
func (b *Create) Go(ctx context.Context, c *stripe.Client) *stripe.Future[Charge] {
	return stripe.Go(ctx, func(ctx context.Context) (*Charge, error) { return b.Do(ctx, c) })
}

// Retrieve fetches one charge.
type Retrieve struct {
	id   string
	opts stripe.RequestOptions
}

// NewRetrieve returns a builder that fetches one charge.
func NewRetrieve(id string) *Retrieve { return &Retrieve{id: id} }

// Expand asks the server to inline the object at a dotted field path.
func (b *Retrieve) Expand(path string) *Retrieve { b.opts.AddExpand(path); return b }

// StripeAccount sends the request on behalf of a connected account.
func (b *Retrieve) StripeAccount(id string) *Retrieve { b.opts.StripeAccount = id; return b }

// Request builds the request without sending it.
func (b *Retrieve) Request() (*stripe.Request, error) {
	return stripe.NewRequest(http.MethodGet, pathCharge, nil, b.opts, stripe.Path("charge", b.id))
}

// Do sends the request and decodes the response.
func (b *Retrieve) Do(ctx context.Context, c *stripe.Client) (*Charge, error) {
	req, err := b.Request()
	if err != nil {
		return nil, err
	}
	return stripe.Call(ctx, c, req, (*Charge).Visitor)
}

// Go runs Do in the background.
func (b *Retrieve) Go(ctx context.Context, c *stripe.Client) *stripe.Future[Charge] {
	return stripe.Go(ctx, func(ctx context.Context) (*Charge, error) { return b.Do(ctx, c) })
}

// UpdateParams is the body of an update request.
type UpdateParams struct {
	Description  *string         `form:"description,omitempty"`
	ReceiptEmail *string         `form:"receipt_email,omitempty" validate:"omitempty,email"`
	Metadata     stripe.Metadata `form:"metadata"`
}

// Update changes the descriptive fields of a charge.
type Update struct {
	id     string
	params UpdateParams
	opts   stripe.RequestOptions
}

// NewUpdate returns a builder that changes the descriptive fields of a charge.
func NewUpdate(id string) *Update { return &Update{id: id} }

func (b *Update) Description(s string) *Update { b.params.Description = &s; return b }

func (b *Update) ReceiptEmail(email string) *Update { b.params.ReceiptEmail = &email; return b }

func (b *Update) Metadata(key, value string) *Update {
	if b.params.Metadata == nil {
		b.params.Metadata = stripe.Metadata{}
	}
	b.params.Metadata[key] = value
	return b
}

// Expand asks the server to inline the object at a dotted field path.
func (b *Update) Expand(path string) *Update { b.opts.AddExpand(path); return b }

// IdempotencyKey lets the request be retried without repeating its effect.
func (b *Update) IdempotencyKey(key string) *Update { b.opts.IdempotencyKey = key; return b }

// StripeAccount sends the request on behalf of a connected account.
func (b *Update) StripeAccount(id string) *Update { b.opts.StripeAccount = id; return b }

// Request builds the request without sending it.
func (b *Update) Request() (*stripe.Request, error) {
	return stripe.NewRequest(http.MethodPost, pathCharge, &b.params, b.opts, stripe.Path("charge", b.id))
}

// Do sends the request and decodes the response.
func (b *Update) Do(ctx context.Context, c *stripe.Client) (*Charge, error) {
	req, err := b.Request()
	if err != nil {
		return nil, err
	}
	return stripe.Call(ctx, c, req, (*Charge).Visitor)
}

// Go runs Do in the background.
func (b *Update) Go(ctx context.Context, c *stripe.Client) *stripe.Future[Charge] {
	return stripe.Go(ctx, func(ctx context.Context) (*Charge, error) { return b.Do(ctx, c) })
}

// CaptureParams is the body of a capture request.
type CaptureParams struct {
	Amount       *int64  `form:"amount,omitempty" validate:"omitempty,gt=0"`
	ReceiptEmail *string `form:"receipt_email,omitempty" validate:"omitempty,email"`
}

// Capture captures an authorized charge.
type Capture struct {
	id     string
	params CaptureParams
	opts   stripe.RequestOptions
}

// NewCapture returns a builder that captures an authorized charge.
func NewCapture(id string) *Capture { return &Capture{id: id} }

// Amount captures less than the authorized amount. The rest is refunded.
func (b *Capture) Amount(amount int64) *Capture { b.params.Amount = &amount; return b }

func (b *Capture) ReceiptEmail(email string) *Capture { b.params.ReceiptEmail = &email; return b }

// Expand asks the server to inline the object at a dotted field path.
func (b *Capture) Expand(path string) *Capture { b.opts.AddExpand(path); return b }

// IdempotencyKey lets the request be retried without repeating its effect.
func (b *Capture) IdempotencyKey(key string) *Capture { b.opts.IdempotencyKey = key; return b }

// StripeAccount sends the request on behalf of a connected account.
func (b *Capture) StripeAccount(id string) *Capture { b.opts.StripeAccount = id; return b }

// Request builds the request without sending it.
func (b *Capture) Request() (*stripe.Request, error) {
	return stripe.NewRequest(http.MethodPost, pathCapture, &b.params, b.opts, stripe.Path("charge", b.id))
}

// Do sends the request and decodes the response.
func (b *Capture) Do(ctx context.Context, c *stripe.Client) (*Charge, error) {
	req, err := b.Request()
	if err != nil {
		return nil, err
	}
	return stripe.Call(ctx, c, req, (*Charge).Visitor)
}

// Go runs Do in the background.
func (b *Capture) Go(ctx context.Context, c *stripe.Client) *stripe.Future[Charge] {
	return stripe.Go(ctx, func(ctx context.Context) (*Charge, error) { return b.Do(ctx, c) })
}

// ListParams filters a list request.
type ListParams struct {
	stripe.ListParams
	Customer *string            `form:"customer,omitempty"`
	Created  *stripe.RangeQuery `form:"created,omitempty"`
}

// List lists charges, newest first.
type List struct {
	params ListParams
	opts   stripe.RequestOptions
}

// NewList returns a builder that lists charges, newest first.
func NewList() *List { return &List{} }

func (b *List) Limit(n int64) *List { b.params.Limit = &n; return b }

func (b *List) StartingAfter(id string) *List { b.params.StartingAfter = &id; return b }

func (b *List) EndingBefore(id string) *List { b.params.EndingBefore = &id; return b }

func (b *List) Customer(id string) *List { b.params.Customer = &id; return b }

func (b *List) Created(q *stripe.RangeQuery) *List { b.params.Created = q; return b }

// Expand asks the server to inline the object at a dotted field path.
func (b *List) Expand(path string) *List { b.opts.AddExpand(path); return b }

// StripeAccount sends the request on behalf of a connected account.
func (b *List) StripeAccount(id string) *List { b.opts.StripeAccount = id; return b }

// Request builds the request without sending it.
func (b *List) Request() (*stripe.Request, error) {
	return stripe.NewRequest(http.MethodGet, pathCharges, &b.params, b.opts)
}

// Do sends the request and decodes the response.
func (b *List) Do(ctx context.Context, c *stripe.Client) (*stripe.List[Charge], error) {
	req, err := b.Request()
	if err != nil {
		return nil, err
	}
	return stripe.Call(ctx, c, req, func(l *stripe.List[Charge]) decode.Visitor {
		return stripe.ListVisitor(l, (*Charge).Visitor)
	})
}

// Go runs Do in the background.
func (b *List) Go(ctx context.Context, c *stripe.Client) *stripe.Future[stripe.List[Charge]] {
	return stripe.Go(ctx, func(ctx context.Context) (*stripe.List[Charge], error) { return b.Do(ctx, c) })
}

func (b *List) Iter(c *stripe.Client) *stripe.Iter[Charge] {
	req, err := b.Request()
	if err != nil {
		return stripe.Failed[Charge](err)
	}
	return stripe.NewIter(c, req, (*Charge).Visitor, (*Charge).GetID)
}
