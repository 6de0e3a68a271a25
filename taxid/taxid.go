// Package taxid is the Tax IDs resource.
//
// The owner of a tax ID is a discriminated union keyed by "type":
//
//	{"type": "account", "account": "acct_1"}
//	{"type": "customer", "customer": {"id": "cus_1", ...}}
//	{"type": "self"}
//
// Owner types the server adds later decode into the unknown variant with the
// raw object preserved.
package taxid

import (
	"github.com/broady/stripe"
	"github.com/broady/stripe/account"
	"github.com/broady/stripe/customer"
	"github.com/broady/stripe/decode"
	"github.com/broady/stripe/enum"
)

// TaxID is a tax identifier attached to a customer or account.
type TaxID struct {
	ID           string
	Object       string
	Country      stripe.Country
	Type         enum.Open[Type]
	Value        string
	Owner        *Owner
	Customer     *stripe.Expandable[customer.Customer]
	Verification *Verification
	Created      int64
	Livemode     bool
}

func (t *TaxID) GetID() string { return t.ID }

func (t *TaxID) Visitor() decode.Visitor {
	return decode.Object(func(key string) decode.Visitor {
		switch key {
		case "id":
			return decode.String(&t.ID)
		case "object":
			return decode.String(&t.Object)
		case "country":
			return decode.String((*string)(&t.Country))
		case "type":
			return t.Type.Visitor()
		case "value":
			return decode.String(&t.Value)
		case "owner":
			return decode.Ptr(&t.Owner, (*Owner).Visitor)
		case "customer":
			return decode.Ptr(&t.Customer, func(e *stripe.Expandable[customer.Customer]) decode.Visitor {
				return stripe.ExpandableVisitor(e, (*customer.Customer).Visitor)
			})
		case "verification":
			return decode.Ptr(&t.Verification, (*Verification).Visitor)
		case "created":
			return decode.Int64(&t.Created)
		case "livemode":
			return decode.Bool(&t.Livemode)
		}
		return nil
	}, "id", "type", "value")
}

func (t *TaxID) UnmarshalJSON(data []byte) error {
	return decode.Unmarshal(data, t.Visitor())
}

// Owner is who the tax ID belongs to. Exactly one of the variant fields is
// set, matching Type; Raw is set instead when Type is unknown.
type Owner struct {
	Type        enum.Open[OwnerType]
	Account     *stripe.Expandable[account.Account]
	Application string
	Customer    *stripe.Expandable[customer.Customer]
	Raw         map[string]any
}

func (o *Owner) Visitor() decode.Visitor {
	return decode.Union("type", func(tag string) decode.Visitor {
		o.Type = enum.Of[OwnerType](tag)
		switch OwnerType(tag) {
		case OwnerTypeAccount:
			o.Account = &stripe.Expandable[account.Account]{}
			return variant("account", stripe.ExpandableVisitor(o.Account, (*account.Account).Visitor))
		case OwnerTypeApplication:
			return variant("application", decode.String(&o.Application))
		case OwnerTypeCustomer:
			o.Customer = &stripe.Expandable[customer.Customer]{}
			return variant("customer", stripe.ExpandableVisitor(o.Customer, (*customer.Customer).Visitor))
		case OwnerTypeSelf:
			return decode.Skip
		}
		return nil
	}, func(tag string, raw map[string]any) error {
		o.Type = enum.Of[OwnerType](tag)
		o.Raw = raw
		return nil
	})
}

// variant decodes the payload member named like the tag.
func variant(name string, v decode.Visitor) decode.Visitor {
	return decode.Object(func(key string) decode.Visitor {
		if key == name {
			return v
		}
		return nil
	}, name)
}

// Verification is the result of checking the value with the issuing
// authority.
type Verification struct {
	Status          enum.Open[VerificationStatus]
	VerifiedName    string
	VerifiedAddress string
}

func (v *Verification) Visitor() decode.Visitor {
	return decode.Object(func(key string) decode.Visitor {
		switch key {
		case "status":
			return v.Status.Visitor()
		case "verified_name":
			return decode.String(&v.VerifiedName)
		case "verified_address":
			return decode.String(&v.VerifiedAddress)
		}
		return nil
	})
}
