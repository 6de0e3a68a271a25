// Package charge is the Charges resource.
package charge

import (
	"github.com/broady/stripe"
	"github.com/broady/stripe/customer"
	"github.com/broady/stripe/decode"
	"github.com/broady/stripe/enum"
)

// Status is the charge status. Open in responses.
type Status string

const (
	StatusFailed    Status = "failed"
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
)

var statusValues = enum.NewSet(StatusFailed, StatusPending, StatusSucceeded)

func (s Status) IsKnown() bool { return statusValues.Contains(s) }

func StatusValues() []Status { return statusValues.Values() }

// Charge is an attempt to move money into the account.
type Charge struct {
	ID     string
	Object string
	// Amount is in the smallest unit of Currency.
	Amount         int64
	AmountCaptured int64
	AmountRefunded int64
	Currency       stripe.Currency
	// Customer is a bare ID unless the request expanded "customer".
	Customer            stripe.Expandable[customer.Customer]
	Description         string
	StatementDescriptor string
	ReceiptEmail        string
	Status              enum.Open[Status]
	Paid                bool
	Captured            bool
	Refunded            bool
	FailureCode         string
	FailureMessage      string
	Outcome             *Outcome
	Created             int64
	Livemode            bool
	Metadata            stripe.Metadata
}

func (c *Charge) GetID() string { return c.ID }

// Money returns the charged amount.
func (c *Charge) Money() stripe.Money {
	return stripe.Money{Amount: c.Amount, Currency: c.Currency}
}

func (c *Charge) Visitor() decode.Visitor {
	return decode.Object(func(key string) decode.Visitor {
		switch key {
		case "id":
			return decode.String(&c.ID)
		case "object":
			return decode.String(&c.Object)
		case "amount":
			return decode.Int64(&c.Amount)
		case "amount_captured":
			return decode.Int64(&c.AmountCaptured)
		case "amount_refunded":
			return decode.Int64(&c.AmountRefunded)
		case "currency":
			return decode.String((*string)(&c.Currency))
		case "customer":
			return stripe.ExpandableVisitor(&c.Customer, (*customer.Customer).Visitor)
		case "description":
			return decode.String(&c.Description)
		case "statement_descriptor":
			return decode.String(&c.StatementDescriptor)
		case "receipt_email":
			return decode.String(&c.ReceiptEmail)
		case "status":
			return c.Status.Visitor()
		case "paid":
			return decode.Bool(&c.Paid)
		case "captured":
			return decode.Bool(&c.Captured)
		case "refunded":
			return decode.Bool(&c.Refunded)
		case "failure_code":
			return decode.String(&c.FailureCode)
		case "failure_message":
			return decode.String(&c.FailureMessage)
		case "outcome":
			return decode.Ptr(&c.Outcome, (*Outcome).Visitor)
		case "created":
			return decode.Int64(&c.Created)
		case "livemode":
			return decode.Bool(&c.Livemode)
		case "metadata":
			return c.Metadata.Visitor()
		}
		return nil
	}, "id", "amount", "currency")
}

func (c *Charge) UnmarshalJSON(data []byte) error {
	return decode.Unmarshal(data, c.Visitor())
}

// Outcome is the result of the payment's risk evaluation.
type Outcome struct {
	NetworkStatus string
	Reason        string
	RiskLevel     string
	SellerMessage string
	Type          string
}

func (o *Outcome) Visitor() decode.Visitor {
	return decode.Object(func(key string) decode.Visitor {
		switch key {
		case "network_status":
			return decode.String(&o.NetworkStatus)
		case "reason":
			return decode.String(&o.Reason)
		case "risk_level":
			return decode.String(&o.RiskLevel)
		case "seller_message":
			return decode.String(&o.SellerMessage)
		case "type":
			return decode.String(&o.Type)
		}
		return nil
	})
}
