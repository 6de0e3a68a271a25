// Package account is the Accounts resource: connected accounts of a
// platform, and the platform's own account.
package account

import (
	"github.com/broady/stripe"
	"github.com/broady/stripe/decode"
	"github.com/broady/stripe/enum"
)

// Account is a Stripe account.
type Account struct {
	ID               string
	Object           string
	Type             enum.Open[Type]
	Country          stripe.Country
	Email            string
	BusinessType     enum.Open[BusinessType]
	Company          *Company
	ChargesEnabled   bool
	PayoutsEnabled   bool
	DetailsSubmitted bool
	DefaultCurrency  stripe.Currency
	Created          int64
	Metadata         stripe.Metadata
	Settings         *Settings
}

func (a *Account) GetID() string { return a.ID }

func (a *Account) Visitor() decode.Visitor {
	return decode.Object(func(key string) decode.Visitor {
		switch key {
		case "id":
			return decode.String(&a.ID)
		case "object":
			return decode.String(&a.Object)
		case "type":
			return a.Type.Visitor()
		case "country":
			return decode.String((*string)(&a.Country))
		case "email":
			return decode.String(&a.Email)
		case "business_type":
			return a.BusinessType.Visitor()
		case "company":
			return decode.Ptr(&a.Company, (*Company).Visitor)
		case "charges_enabled":
			return decode.Bool(&a.ChargesEnabled)
		case "payouts_enabled":
			return decode.Bool(&a.PayoutsEnabled)
		case "details_submitted":
			return decode.Bool(&a.DetailsSubmitted)
		case "default_currency":
			return decode.String((*string)(&a.DefaultCurrency))
		case "created":
			return decode.Int64(&a.Created)
		case "metadata":
			return a.Metadata.Visitor()
		case "settings":
			return decode.Ptr(&a.Settings, (*Settings).Visitor)
		}
		return nil
	}, "id")
}

func (a *Account) UnmarshalJSON(data []byte) error {
	return decode.Unmarshal(data, a.Visitor())
}

// Company holds the details of a company account holder.
type Company struct {
	Name          string
	Structure     enum.Open[CompanyStructure]
	TaxIDProvided bool
	Phone         string
	Address       *stripe.Address
}

func (c *Company) Visitor() decode.Visitor {
	return decode.Object(func(key string) decode.Visitor {
		switch key {
		case "name":
			return decode.String(&c.Name)
		case "structure":
			return c.Structure.Visitor()
		case "tax_id_provided":
			return decode.Bool(&c.TaxIDProvided)
		case "phone":
			return decode.String(&c.Phone)
		case "address":
			return decode.Ptr(&c.Address, (*stripe.Address).Visitor)
		}
		return nil
	})
}

// Settings holds account-wide options. Only payouts are modelled.
type Settings struct {
	Payouts *PayoutSettings
}

func (s *Settings) Visitor() decode.Visitor {
	return decode.Object(func(key string) decode.Visitor {
		if key == "payouts" {
			return decode.Ptr(&s.Payouts, (*PayoutSettings).Visitor)
		}
		return nil
	})
}

type PayoutSettings struct {
	StatementDescriptor string
	Schedule            PayoutSchedule
}

func (s *PayoutSettings) Visitor() decode.Visitor {
	return decode.Object(func(key string) decode.Visitor {
		switch key {
		case "statement_descriptor":
			return decode.String(&s.StatementDescriptor)
		case "schedule":
			return s.Schedule.Visitor()
		}
		return nil
	})
}

// PayoutSchedule uses closed enums: a token this library does not know fails
// decoding rather than being guessed at.
type PayoutSchedule struct {
	Interval      PayoutInterval
	DelayDays     int64
	WeeklyAnchor  Weekday
	MonthlyAnchor int64
}

func (s *PayoutSchedule) Visitor() decode.Visitor {
	return decode.Object(func(key string) decode.Visitor {
		switch key {
		case "interval":
			return decode.Closed(&s.Interval)
		case "delay_days":
			return decode.Int64(&s.DelayDays)
		case "weekly_anchor":
			return decode.Closed(&s.WeeklyAnchor)
		case "monthly_anchor":
			return decode.Int64(&s.MonthlyAnchor)
		}
		return nil
	}, "interval")
}

func listVisitor(l *stripe.List[Account]) decode.Visitor {
	return stripe.ListVisitor(l, (*Account).Visitor)
}
