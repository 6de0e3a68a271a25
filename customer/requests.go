package customer

import (
	"context"
	"net/http"

	"github.com/broady/stripe"
	"github.com/broady/stripe/decode"
)

const (
	pathCustomers = "/v1/customers"
	pathCustomer  = "/v1/customers/{customer}"
)

// Params is the body of create and update requests.
type Params struct {
	Email       *string               `form:"email,omitempty" validate:"omitempty,email"`
	Name        *string               `form:"name,omitempty"`
	Description *string               `form:"description,omitempty"`
	Phone       *string               `form:"phone,omitempty"`
	Address     *stripe.AddressParams `form:"address,omitempty"`
	Balance     *int64                `form:"balance,omitempty"`
	TaxExempt   *TaxExempt            `form:"tax_exempt,omitempty"`
	Metadata    stripe.Metadata       `form:"metadata"`
}

type params struct {
	p Params
}

func (s *params) email(v string) { s.p.Email = &v }
func (s *params) name(v string) { s.p.Name = &v }
func (s *params) description(v string) { s.p.Description = &v }
func (s *params) phone(v string) { s.p.Phone = &v }
func (s *params) address(a *stripe.AddressParams) { s.p.Address = a }
func (s *params) balance(v int64) { s.p.Balance = &v }
func (s *params) taxExempt(v TaxExempt) { s.p.TaxExempt = &v }

func (s *params) metadata(key, value string) {
	if s.p.Metadata == nil {
		s.p.Metadata = stripe.Metadata{}
	}
	s.p.Metadata[key] = value
}

// Create creates a customer. Every field is optional.
type Create struct {
	params
	opts stripe.RequestOptions
}

// NewCreate returns a builder that creates a customer. Every field is optional.
func NewCreate() *Create { return &Create{} }

func (b *Create) Email(v string) *Create { b.email(v); return b }
func (b *Create) Name(v string) *Create { b.name(v); return b }
func (b *Create) Description(v string) *Create { b.description(v); return b }
func (b *Create) Phone(v string) *Create { b.phone(v); return b }
func (b *Create) Address(a *stripe.AddressParams) *Create { b.address(a); return b }
func (b *Create) Balance(v int64) *Create { b.balance(v); return b }
func (b *Create) TaxExempt(v TaxExempt) *Create { b.taxExempt(v); return b }
func (b *Create) Metadata(key, value string) *Create { b.metadata(key, value); return b }

// Expand asks the server to inline the object at a dotted field path.
func (b *Create) Expand(path string) *Create { b.opts.AddExpand(path); return b }

// IdempotencyKey lets the request be retried without repeating its effect.
func (b *Create) IdempotencyKey(key string) *Create { b.opts.IdempotencyKey = key; return b }

// StripeAccount sends the request on behalf of a connected account.
func (b *Create) StripeAccount(id string) *Create { b.opts.StripeAccount = id; return b }

// Request builds the request without sending it.
func (b *Create) Request() (*stripe.Request, error) {
	return stripe.NewRequest(http.MethodPost, pathCustomers, &b.p, b.opts)
}

// Do sends the request and decodes the response.
func (b *Create) Do(ctx context.Context, c *stripe.Client) (*Customer, error) {
	req, err := b.Request()
	if err != nil {
		return nil, err
	}
	return stripe.Call(ctx, c, req, (*Customer).Visitor)
}

// Go runs Do in the background.
func (b *Create) Go(ctx context.Context, c *stripe.Client) *stripe.Future[Customer] {
	return stripe.Go(ctx, func(ctx context.Context) (*Customer, error) { return b.Do(ctx, c) })
}

// Retrieve fetches one customer.
type Retrieve struct {
	id   string
	opts stripe.RequestOptions
}

// NewRetrieve returns a builder that fetches one customer.
func NewRetrieve(id string) *Retrieve { return &Retrieve{id: id} }

// Expand asks the server to inline the object at a dotted field path.
func (b *Retrieve) Expand(path string) *Retrieve { b.opts.AddExpand(path); return b }

// StripeAccount sends the request on behalf of a connected account.
func (b *Retrieve) StripeAccount(id string) *Retrieve { b.opts.StripeAccount = id; return b }

// Request builds the request without sending it.
func (b *Retrieve) Request() (*stripe.Request, error) {
	return stripe.NewRequest(http.MethodGet, pathCustomer, nil, b.opts, stripe.Path("customer", b.id))
}

// Do sends the request and decodes the response.
func (b *Retrieve) Do(ctx context.Context, c *stripe.Client) (*Customer, error) {
	req, err := b.Request()
	if err != nil {
		return nil, err
	}
	return stripe.Call(ctx, c, req, (*Customer).Visitor)
}

// Go runs Do in the background.
func (b *Retrieve) Go(ctx context.Context, c *stripe.Client) *stripe.Future[Customer] {
	return stripe.Go(ctx, func(ctx context.Context) (*Customer, error) { return b.Do(ctx, c) })
}

// Update changes a customer. Unset fields are left unchanged.
type Update struct {
	id string
	params
	opts stripe.RequestOptions
}

// NewUpdate returns a builder that changes a customer. Unset fields are left unchanged.
func NewUpdate(id string) *Update { return &Update{id: id} }

func (b *Update) Email(v string) *Update { b.email(v); return b }
func (b *Update) Name(v string) *Update { b.name(v); return b }
func (b *Update) Description(v string) *Update { b.description(v); return b }
func (b *Update) Phone(v string) *Update { b.phone(v); return b }
func (b *Update) Address(a *stripe.AddressParams) *Update { b.address(a); return b }
func (b *Update) Balance(v int64) *Update { b.balance(v); return b }
func (b *Update) TaxExempt(v TaxExempt) *Update { b.taxExempt(v); return b }
func (b *Update) Metadata(key, value string) *Update { b.metadata(key, value); return b }

// Expand asks the server to inline the object at a dotted field path.
func (b *Update) Expand(path string) *Update { b.opts.AddExpand(path); return b }

// IdempotencyKey lets the request be retried without repeating its effect.
func (b *Update) IdempotencyKey(key string) *Update { b.opts.IdempotencyKey = key; return b }

// StripeAccount sends the request on behalf of a connected account.
func (b *Update) StripeAccount(id string) *Update { b.opts.StripeAccount = id; return b }

// Request builds the request without sending it.
func (b *Update) Request() (*stripe.Request, error) {
	return stripe.NewRequest(http.MethodPost, pathCustomer, &b.p, b.opts, stripe.Path("customer", b.id))
}

// Do sends the request and decodes the response.
func (b *Update) Do(ctx context.Context, c *stripe.Client) (*Customer, error) {
	req, err := b.Request()
	if err != nil {
		return nil, err
	}
	return stripe.Call(ctx, c, req, (*Customer).Visitor)
}

// Go runs Do in the background.
func (b *Update) Go(ctx context.Context, c *stripe.Client) *stripe.Future[Customer] {
	return stripe.Go(ctx, func(ctx context.Context) (*Customer, error) { return b.Do(ctx, c) })
}

// Delete permanently deletes a customer.
type Delete struct {
	id   string
	opts stripe.RequestOptions
}

// NewDelete returns a builder that permanently deletes a customer.
func NewDelete(id string) *Delete { return &Delete{id: id} }

// IdempotencyKey lets the request be retried without repeating its effect.
func (b *Delete) IdempotencyKey(key string) *Delete { b.opts.IdempotencyKey = key; return b }

// StripeAccount sends the request on behalf of a connected account.
func (b *Delete) StripeAccount(id string) *Delete { b.opts.StripeAccount = id; return b }

// Request builds the request without sending it.
func (b *Delete) Request() (*stripe.Request, error) {
	return stripe.NewRequest(http.MethodDelete, pathCustomer, nil, b.opts, stripe.Path("customer", b.id))
}

// Do sends the request and decodes the response.
func (b *Delete) Do(ctx context.Context, c *stripe.Client) (*stripe.Deleted, error) {
	req, err := b.Request()
	if err != nil {
		return nil, err
	}
	return stripe.Call(ctx, c, req, (*stripe.Deleted).Visitor)
}

// Go runs Do in the background.
func (b *Delete) Go(ctx context.Context, c *stripe.Client) *stripe.Future[stripe.Deleted] {
	return stripe.Go(ctx, func(ctx context.Context) (*stripe.Deleted, error) { return b.Do(ctx, c) })
}

// ListParams filters a list request.
type ListParams struct {
	stripe.ListParams
	Email   *string            `form:"email,omitempty" validate:"omitempty,max=512"`
	Created *stripe.RangeQuery `form:"created,omitempty"`
}

// List lists customers, newest first.
type List struct {
	params ListParams
	opts   stripe.RequestOptions
}

// NewList returns a builder that lists customers, newest first.
func NewList() *List { return &List{} }

func (b *List) Limit(n int64) *List { b.params.Limit = &n; return b }
func (b *List) StartingAfter(id string) *List { b.params.StartingAfter = &id; return b }
func (b *List) EndingBefore(id string) *List { b.params.EndingBefore = &id; return b }
func (b *List) Email(email string) *List { b.params.Email = &email; return b }
func (b *List) Created(q *stripe.RangeQuery) *List { b.params.Created = q; return b }

// Expand asks the server to inline the object at a dotted field path.
func (b *List) Expand(path string) *List { b.opts.AddExpand(path); return b }

// StripeAccount sends the request on behalf of a connected account.
func (b *List) StripeAccount(id string) *List { b.opts.StripeAccount = id; return b }

// Request builds the request without sending it.
func (b *List) Request() (*stripe.Request, error) {
	return stripe.NewRequest(http.MethodGet, pathCustomers, &b.params, b.opts)
}

// Do fetches the first page only.
func (b *List) Do(ctx context.Context, c *stripe.Client) (*stripe.List[Customer], error) {
	req, err := b.Request()
	if err != nil {
		return nil, err
	}
	return stripe.Call(ctx, c, req, func(l *stripe.List[Customer]) decode.Visitor {
		return stripe.ListVisitor(l, (*Customer).Visitor)
	})
}

// Go runs Do in the background.
func (b *List) Go(ctx context.Context, c *stripe.Client) *stripe.Future[stripe.List[Customer]] {
	return stripe.Go(ctx, func(ctx context.Context) (*stripe.List[Customer], error) { return b.Do(ctx, c) })
}

func (b *List) Iter(c *stripe.Client) *stripe.Iter[Customer] {
	req, err := b.Request()
	if err != nil {
		return stripe.Failed[Customer](err)
	}
	return stripe.NewIter(c, req, (*Customer).Visitor, (*Customer).GetID)
}
