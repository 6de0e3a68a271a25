package account

import (
	"context"
	"net/http"

	"github.com/broady/stripe"
)

const (
	pathAccounts = "/v1/accounts"
	pathAccount  = "/v1/accounts/{account}"
	pathReject   = "/v1/accounts/{account}/reject"
)

// CompanyParams describes a company account holder.
type CompanyParams struct {
	Name      *string               `form:"name,omitempty"`
	Phone     *string               `form:"phone,omitempty"`
	TaxID     *string               `form:"tax_id,omitempty"`
	Structure *CompanyStructure     `form:"structure,omitempty"`
	Address   *stripe.AddressParams `form:"address,omitempty"`
}

type SettingsParams struct {
	Payouts *PayoutSettingsParams `form:"payouts,omitempty"`
}

type PayoutSettingsParams struct {
	StatementDescriptor *string               `form:"statement_descriptor,omitempty" validate:"omitempty,max=22"`
	Schedule            *PayoutScheduleParams `form:"schedule,omitempty"`
}

type PayoutScheduleParams struct {
	Interval      *PayoutInterval `form:"interval,omitempty" validate:"omitempty,known"`
	DelayDays     *int64          `form:"delay_days,omitempty" validate:"omitempty,min=0"`
	WeeklyAnchor  *Weekday        `form:"weekly_anchor,omitempty" validate:"omitempty,known"`
	MonthlyAnchor *int64          `form:"monthly_anchor,omitempty" validate:"omitempty,min=1,max=31"`
}

// CreateParams is the body of a create request.
type CreateParams struct {
	Type            *Type            `form:"type,omitempty"`
	Country         *stripe.Country  `form:"country,omitempty" validate:"omitempty,iso3166_1_alpha2"`
	Email           *string          `form:"email,omitempty" validate:"omitempty,email"`
	BusinessType    *BusinessType    `form:"business_type,omitempty"`
	Company         *CompanyParams   `form:"company,omitempty"`
	DefaultCurrency *stripe.Currency `form:"default_currency,omitempty" validate:"omitempty,currency"`
	Settings        *SettingsParams  `form:"settings,omitempty"`
	Metadata        stripe.Metadata  `form:"metadata"`
}

// Create creates an account.
type Create struct {
	params CreateParams
	opts   stripe.RequestOptions
}

// NewCreate returns a builder that creates an account.
func NewCreate() *Create { return &Create{} }

func (b *Create) Type(t Type) *Create { b.params.Type = &t; return b }

func (b *Create) Country(c stripe.Country) *Create { b.params.Country = &c; return b }

func (b *Create) Email(email string) *Create { b.params.Email = &email; return b }

func (b *Create) BusinessType(t BusinessType) *Create { b.params.BusinessType = &t; return b }

func (b *Create) Company(c *CompanyParams) *Create { b.params.Company = c; return b }

func (b *Create) DefaultCurrency(c stripe.Currency) *Create { b.params.DefaultCurrency = &c; return b }

func (b *Create) PayoutSchedule(s *PayoutScheduleParams) *Create {
	b.params.Settings = &SettingsParams{Payouts: &PayoutSettingsParams{Schedule: s}}
	return b
}

// Metadata sets one metadata key. An empty value unsets the key.
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
	return stripe.NewRequest(http.MethodPost, pathAccounts, &b.params, b.opts)
}

// Do sends the request and decodes the response.
func (b *Create) Do(ctx context.Context, c *stripe.Client) (*Account, error) {
	req, err := b.Request()
	if err != nil {
		return nil, err
	}
	return stripe.Call(ctx, c, req, (*Account).Visitor)
}

// Go runs Do in the background.
func (b *Create) Go(ctx context.Context, c *stripe.Client) *stripe.Future[Account] {
	return stripe.Go(ctx, func(ctx context.Context) (*Account, error) { return b.Do(ctx, c) })
}

// Retrieve fetches one account.
type Retrieve struct {
	id   string
	opts stripe.RequestOptions
}

// NewRetrieve returns a builder that fetches one account.
func NewRetrieve(id string) *Retrieve { return &Retrieve{id: id} }

// Expand asks the server to inline the object at a dotted field path.
func (b *Retrieve) Expand(path string) *Retrieve { b.opts.AddExpand(path); return b }

// StripeAccount sends the request on behalf of a connected account.
func (b *Retrieve) StripeAccount(id string) *Retrieve { b.opts.StripeAccount = id; return b }

// Request builds the request without sending it.
func (b *Retrieve) Request() (*stripe.Request, error) {
	return stripe.NewRequest(http.MethodGet, pathAccount, nil, b.opts, stripe.Path("account", b.id))
}

// Do sends the request and decodes the response.
func (b *Retrieve) Do(ctx context.Context, c *stripe.Client) (*Account, error) {
	req, err := b.Request()
	if err != nil {
		return nil, err
	}
	return stripe.Call(ctx, c, req, (*Account).Visitor)
}

// Go runs Do in the background.
func (b *Retrieve) Go(ctx context.Context, c *stripe.Client) *stripe.Future[Account] {
	return stripe.Go(ctx, func(ctx context.Context) (*Account, error) { return b.Do(ctx, c) })
}

// UpdateParams is the body of an update request.
type UpdateParams struct {
	Email           *string          `form:"email,omitempty" validate:"omitempty,email"`
	BusinessType    *BusinessType    `form:"business_type,omitempty"`
	Company         *CompanyParams   `form:"company,omitempty"`
	DefaultCurrency *stripe.Currency `form:"default_currency,omitempty" validate:"omitempty,currency"`
	Settings        *SettingsParams  `form:"settings,omitempty"`
	Metadata        stripe.Metadata  `form:"metadata"`
}

// Update changes an account. Unset fields are left unchanged.
type Update struct {
	id     string
	params UpdateParams
	opts   stripe.RequestOptions
}

// NewUpdate returns a builder that changes an account. Unset fields are left unchanged.
func NewUpdate(id string) *Update { return &Update{id: id} }

func (b *Update) Email(email string) *Update { b.params.Email = &email; return b }

func (b *Update) BusinessType(t BusinessType) *Update { b.params.BusinessType = &t; return b }

func (b *Update) Company(c *CompanyParams) *Update { b.params.Company = c; return b }

func (b *Update) DefaultCurrency(c stripe.Currency) *Update { b.params.DefaultCurrency = &c; return b }

func (b *Update) PayoutSchedule(s *PayoutScheduleParams) *Update {
	b.params.Settings = &SettingsParams{Payouts: &PayoutSettingsParams{Schedule: s}}
	return b
}

func (b *Update) Metadata(key, value string) *Update {
	if b.params.Metadata == nil {
		b.params.Metadata = stripe.Metadata{}
	}
	b.params.Metadata[key] = value
	return b
}

// ClearMetadata removes every metadata key.
func (b *Update) ClearMetadata() *Update {
	b.params.Metadata = stripe.Metadata{}
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
	return stripe.NewRequest(http.MethodPost, pathAccount, &b.params, b.opts, stripe.Path("account", b.id))
}

// Do sends the request and decodes the response.
func (b *Update) Do(ctx context.Context, c *stripe.Client) (*Account, error) {
	req, err := b.Request()
	if err != nil {
		return nil, err
	}
	return stripe.Call(ctx, c, req, (*Account).Visitor)
}

// Go runs Do in the background.
func (b *Update) Go(ctx context.Context, c *stripe.Client) *stripe.Future[Account] {
	return stripe.Go(ctx, func(ctx context.Context) (*Account, error) { return b.Do(ctx, c) })
}

// Delete deletes a connected account.
type Delete struct {
	id   string
	opts stripe.RequestOptions
}

// NewDelete returns a builder that deletes a connected account.
func NewDelete(id string) *Delete { return &Delete{id: id} }

// IdempotencyKey lets the request be retried without repeating its effect.
func (b *Delete) IdempotencyKey(key string) *Delete { b.opts.IdempotencyKey = key; return b }

// StripeAccount sends the request on behalf of a connected account.
func (b *Delete) StripeAccount(id string) *Delete { b.opts.StripeAccount = id; return b }

// Request builds the request without sending it.
func (b *Delete) Request() (*stripe.Request, error) {
	return stripe.NewRequest(http.MethodDelete, pathAccount, nil, b.opts, stripe.Path("account", b.id))
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

// RejectParams is the body of a reject request.
type RejectParams struct {
	Reason RejectReason `form:"reason" validate:"required,known"`
}

// Reject rejects a connected account for fraud or policy reasons.
type Reject struct {
	id     string
	params RejectParams
	opts   stripe.RequestOptions
}

// NewReject returns a builder that rejects a connected account for fraud or policy reasons.
func NewReject(id string, reason RejectReason) *Reject {
	return &Reject{id: id, params: RejectParams{Reason: reason}}
}

// Expand asks the server to inline the object at a dotted field path.
func (b *Reject) Expand(path string) *Reject { b.opts.AddExpand(path); return b }

// IdempotencyKey lets the request be retried without repeating its effect.
func (b *Reject) IdempotencyKey(key string) *Reject { b.opts.IdempotencyKey = key; return b }

// StripeAccount sends the request on behalf of a connected account.
func (b *Reject) StripeAccount(id string) *Reject { b.opts.StripeAccount = id; return b }

// Request builds the request without sending it.
func (b *Reject) Request() (*stripe.Request, error) {
	return stripe.NewRequest(http.MethodPost, pathReject, &b.params, b.opts, stripe.Path("account", b.id))
}

// Do sends the request and decodes the response.
func (b *Reject) Do(ctx context.Context, c *stripe.Client) (*Account, error) {
	req, err := b.Request()
	if err != nil {
		return nil, err
	}
	return stripe.Call(ctx, c, req, (*Account).Visitor)
}

// Go runs Do in the background.
func (b *Reject) Go(ctx context.Context, c *stripe.Client) *stripe.Future[Account] {
	return stripe.Go(ctx, func(ctx context.Context) (*Account, error) { return b.Do(ctx, c) })
}

// ListParams filters a list request.
type ListParams struct {
	stripe.ListParams
	Created *stripe.RangeQuery `form:"created,omitempty"`
}

// List lists connected accounts, newest first.
type List struct {
	params ListParams
	opts   stripe.RequestOptions
}

// NewList returns a builder that lists connected accounts, newest first.
func NewList() *List { return &List{} }

func (b *List) Limit(n int64) *List { b.params.Limit = &n; return b }

func (b *List) StartingAfter(id string) *List { b.params.StartingAfter = &id; return b }

func (b *List) EndingBefore(id string) *List { b.params.EndingBefore = &id; return b }

func (b *List) Created(q *stripe.RangeQuery) *List { b.params.Created = q; return b }

// Expand asks the server to inline the object at a dotted field path.
func (b *List) Expand(path string) *List { b.opts.AddExpand(path); return b }

// StripeAccount sends the request on behalf of a connected account.
func (b *List) StripeAccount(id string) *List { b.opts.StripeAccount = id; return b }

// Request builds the request without sending it.
func (b *List) Request() (*stripe.Request, error) {
	return stripe.NewRequest(http.MethodGet, pathAccounts, &b.params, b.opts)
}

// Do fetches the first page only. Use Iter to walk every page.
func (b *List) Do(ctx context.Context, c *stripe.Client) (*stripe.List[Account], error) {
	req, err := b.Request()
	if err != nil {
		return nil, err
	}
	return stripe.Call(ctx, c, req, listVisitor)
}

// Go runs Do in the background.
func (b *List) Go(ctx context.Context, c *stripe.Client) *stripe.Future[stripe.List[Account]] {
	return stripe.Go(ctx, func(ctx context.Context) (*stripe.List[Account], error) { return b.Do(ctx, c) })
}

// Iter returns a lazy iterator over every matching account.
func (b *List) Iter(c *stripe.Client) *stripe.Iter[Account] {
	req, err := b.Request()
	if err != nil {
		return stripe.Failed[Account](err)
	}
	return stripe.NewIter(c, req, (*Account).Visitor, (*Account).GetID)
}
