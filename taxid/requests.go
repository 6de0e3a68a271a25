package taxid

import (
	"context"
	"net/http"

	"github.com/broady/stripe"
	"github.com/broady/stripe/decode"
)

const (
	pathTaxIDs = "/v1/tax_ids"
	pathTaxID  = "/v1/tax_ids/{id}"
)

// OwnerParams selects the owner of a tax ID. Build it with one of the Owner
// constructors.
type OwnerParams struct {
	Type     OwnerType `form:"type" validate:"required,known"`
	Account  *string   `form:"account,omitempty" validate:"required_if=Type account"`
	Customer *string   `form:"customer,omitempty" validate:"required_if=Type customer"`
}

// OwnerAccount selects a connected account.
func OwnerAccount(id string) *OwnerParams {
	return &OwnerParams{Type: OwnerTypeAccount, Account: &id}
}

// OwnerCustomer selects a customer.
func OwnerCustomer(id string) *OwnerParams {
	return &OwnerParams{Type: OwnerTypeCustomer, Customer: &id}
}

func OwnerApplication() *OwnerParams { return &OwnerParams{Type: OwnerTypeApplication} }

func OwnerSelf() *OwnerParams { return &OwnerParams{Type: OwnerTypeSelf} }

// CreateParams is the body of a create request.
type CreateParams struct {
	Type  Type         `form:"type" validate:"required,known"`
	Value string       `form:"value" validate:"required,max=64"`
	Owner *OwnerParams `form:"owner,omitempty"`
}

// Create attaches a new tax ID.
type Create struct {
	params CreateParams
	opts   stripe.RequestOptions
}

// NewCreate returns a builder that attaches a new tax ID.
func NewCreate(typ Type, value string) *Create {
	return &Create{params: CreateParams{Type: typ, Value: value}}
}

// Owner defaults to the requesting account when unset.
func (b *Create) Owner(o *OwnerParams) *Create { b.params.Owner = o; return b }

// Expand asks the server to inline the object at a dotted field path.
func (b *Create) Expand(path string) *Create { b.opts.AddExpand(path); return b }

// IdempotencyKey lets the request be retried without repeating its effect.
func (b *Create) IdempotencyKey(key string) *Create { b.opts.IdempotencyKey = key; return b }

// StripeAccount sends the request on behalf of a connected account.
func (b *Create) StripeAccount(id string) *Create { b.opts.StripeAccount = id; return b }

// Request builds the request without sending it.
func (b *Create) Request() (*stripe.Request, error) {
	return stripe.NewRequest(http.MethodPost, pathTaxIDs, &b.params, b.opts)
}

// Do sends the request and decodes the response.
func (b *Create) Do(ctx context.Context, c *stripe.Client) (*TaxID, error) {
	req, err := b.Request()
	if err != nil {
		return nil, err
	}
	return stripe.Call(ctx, c, req, (*TaxID).Visitor)
}

// Go runs Do in the background.
func (b *Create) Go(ctx context.Context, c *stripe.Client) *stripe.Future[TaxID] {
	return stripe.Go(ctx, func(ctx context.Context) (*TaxID, error) { return b.Do(ctx, c) })
}

// Retrieve fetches one tax ID.
type Retrieve struct {
	id   string
	opts stripe.RequestOptions
}

// NewRetrieve returns a builder that fetches one tax ID.
func NewRetrieve(id string) *Retrieve { return &Retrieve{id: id} }

// Expand asks the server to inline the object at a dotted field path.
func (b *Retrieve) Expand(path string) *Retrieve { b.opts.AddExpand(path); return b }

// StripeAccount sends the request on behalf of a connected account.
func (b *Retrieve) StripeAccount(id string) *Retrieve { b.opts.StripeAccount = id; return b }

// Request builds the request without sending it.
func (b *Retrieve) Request() (*stripe.Request, error) {
	return stripe.NewRequest(http.MethodGet, pathTaxID, nil, b.opts, stripe.Path("id", b.id))
}

// Do sends the request and decodes the response.
func (b *Retrieve) Do(ctx context.Context, c *stripe.Client) (*TaxID, error) {
	req, err := b.Request()
	if err != nil {
		return nil, err
	}
	return stripe.Call(ctx, c, req, (*TaxID).Visitor)
}

// Go runs Do in the background.
func (b *Retrieve) Go(ctx context.Context, c *stripe.Client) *stripe.Future[TaxID] {
	return stripe.Go(ctx, func(ctx context.Context) (*TaxID, error) { return b.Do(ctx, c) })
}

// Delete removes a tax ID from its owner.
type Delete struct {
	id   string
	opts stripe.RequestOptions
}

// NewDelete returns a builder that removes a tax ID from its owner.
func NewDelete(id string) *Delete { return &Delete{id: id} }

// IdempotencyKey lets the request be retried without repeating its effect.
func (b *Delete) IdempotencyKey(key string) *Delete { b.opts.IdempotencyKey = key; return b }

// StripeAccount sends the request on behalf of a connected account.
func (b *Delete) StripeAccount(id string) *Delete { b.opts.StripeAccount = id; return b }

// Request builds the request without sending it.
func (b *Delete) Request() (*stripe.Request, error) {
	return stripe.NewRequest(http.MethodDelete, pathTaxID, nil, b.opts, stripe.Path("id", b.id))
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
	Owner *OwnerParams `form:"owner,omitempty"`
}

// List lists tax IDs of an owner.
type List struct {
	params ListParams
	opts   stripe.RequestOptions
}

// NewList returns a builder that lists tax IDs of an owner.
func NewList() *List { return &List{} }

func (b *List) Limit(n int64) *List { b.params.Limit = &n; return b }

func (b *List) StartingAfter(id string) *List { b.params.StartingAfter = &id; return b }

func (b *List) EndingBefore(id string) *List { b.params.EndingBefore = &id; return b }

func (b *List) Owner(o *OwnerParams) *List { b.params.Owner = o; return b }

// Expand asks the server to inline the object at a dotted field path.
func (b *List) Expand(path string) *List { b.opts.AddExpand(path); return b }

// StripeAccount sends the request on behalf of a connected account.
func (b *List) StripeAccount(id string) *List { b.opts.StripeAccount = id; return b }

// Request builds the request without sending it.
func (b *List) Request() (*stripe.Request, error) {
	return stripe.NewRequest(http.MethodGet, pathTaxIDs, &b.params, b.opts)
}

// Do sends the request and decodes the response.
func (b *List) Do(ctx context.Context, c *stripe.Client) (*stripe.List[TaxID], error) {
	req, err := b.Request()
	if err != nil {
		return nil, err
	}
	return stripe.Call(ctx, c, req, func(l *stripe.List[TaxID]) decode.Visitor {
		return stripe.ListVisitor(l, (*TaxID).Visitor)
	})
}

// Go runs Do in the background.
func (b *List) Go(ctx context.Context, c *stripe.Client) *stripe.Future[stripe.List[TaxID]] {
	return stripe.Go(ctx, func(ctx context.Context) (*stripe.List[TaxID], error) { return b.Do(ctx, c) })
}

func (b *List) Iter(c *stripe.Client) *stripe.Iter[TaxID] {
	req, err := b.Request()
	if err != nil {
		return stripe.Failed[TaxID](err)
	}
	return stripe.NewIter(c, req, (*TaxID).Visitor, (*TaxID).GetID)
}
