// Package customer is the Customers resource.
package customer

import (
	"github.com/broady/stripe"
	"github.com/broady/stripe/decode"
	"github.com/broady/stripe/enum"
)

// TaxExempt is the customer's tax exemption status. Open in responses.
type TaxExempt string

const (
	TaxExemptExempt  TaxExempt = "exempt"
	TaxExemptNone    TaxExempt = "none"
	TaxExemptReverse TaxExempt = "reverse"
)

var taxExemptValues = enum.NewSet(TaxExemptExempt, TaxExemptNone, TaxExemptReverse)

func (t TaxExempt) IsKnown() bool { return taxExemptValues.Contains(t) }

func TaxExemptValues() []TaxExempt { return taxExemptValues.Values() }

// Customer is a customer of the account.
type Customer struct {
	ID          string
	Object      string
	Email       string
	Name        string
	Description string
	Phone       string
	Address     *stripe.Address
	// Balance is in the smallest unit of Currency. Negative is a credit.
	Balance    int64
	Currency   stripe.Currency
	Delinquent bool
	TaxExempt  enum.Open[TaxExempt]
	Created    int64
	Livemode   bool
	Metadata   stripe.Metadata
}

func (c *Customer) GetID() string { return c.ID }

func (c *Customer) Visitor() decode.Visitor {
	return decode.Object(func(key string) decode.Visitor {
		switch key {
		case "id":
			return decode.String(&c.ID)
		case "object":
			return decode.String(&c.Object)
		case "email":
			return decode.String(&c.Email)
		case "name":
			return decode.String(&c.Name)
		case "description":
			return decode.String(&c.Description)
		case "phone":
			return decode.String(&c.Phone)
		case "address":
			return decode.Ptr(&c.Address, (*stripe.Address).Visitor)
		case "balance":
			return decode.Int64(&c.Balance)
		case "currency":
			return decode.String((*string)(&c.Currency))
		case "delinquent":
			return decode.Bool(&c.Delinquent)
		case "tax_exempt":
			return c.TaxExempt.Visitor()
		case "created":
			return decode.Int64(&c.Created)
		case "livemode":
			return decode.Bool(&c.Livemode)
		case "metadata":
			return c.Metadata.Visitor()
		}
		return nil
	}, "id")
}

func (c *Customer) UnmarshalJSON(data []byte) error {
	return decode.Unmarshal(data, c.Visitor())
}

// BalanceMoney returns the customer's balance as Money.
func (c *Customer) BalanceMoney() stripe.Money {
	return stripe.Money{Amount: c.Balance, Currency: c.Currency}
}
