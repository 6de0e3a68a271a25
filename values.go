package stripe

import (
	"strconv"

	"github.com/broady/stripe/decode"
	"github.com/broady/stripe/form"
)

// Currency is a lowercase ISO 4217 currency code.
type Currency string

const (
	CurrencyAUD Currency = "aud"
	CurrencyCAD Currency = "cad"
	CurrencyCHF Currency = "chf"
	CurrencyEUR Currency = "eur"
	CurrencyGBP Currency = "gbp"
	CurrencyJPY Currency = "jpy"
	CurrencyUSD Currency = "usd"
)

// Country is an ISO 3166-1 alpha-2 country code, e.g. "US".
type Country string

// Money is an amount in the currency's smallest unit (cents for usd, yen for
// jpy). There is no floating point representation of money in this library.
type Money struct {
	Amount   int64
	Currency Currency
}

// Metadata is a set of caller-defined key/value pairs.
//
// In requests, an empty value unsets that key, and an empty non-nil map
// unsets every key. Keys are written in sorted order.
type Metadata map[string]string

// Visitor decodes a metadata object.
func (m *Metadata) Visitor() decode.Visitor {
	return decode.StringMap((*map[string]string)(m))
}

// RangeQuery filters a numeric or timestamp field. Set Value for an equality
// match, or any of the bounds for an inequality range.
//
//	created=1700000000
//	created[gte]=1700000000&created[lt]=1700003600
type RangeQuery struct {
	Value *int64
	GT    *int64
	GTE   *int64
	LT    *int64
	LTE   *int64
}

// Equal returns an equality filter.
func Equal(v int64) *RangeQuery {
	return &RangeQuery{Value: &v}
}

// Between returns the half-open range [gte, lt).
func Between(gte, lt int64) *RangeQuery {
	return &RangeQuery{GTE: &gte, LT: &lt}
}

// AppendTo implements form.Appender. Only set bounds are written.
func (r *RangeQuery) AppendTo(v *form.Values, key string) {
	if r.Value != nil {
		v.Add(key, strconv.FormatInt(*r.Value, 10))
		return
	}
	bounds := []struct {
		name string
		val  *int64
	}{{"gt", r.GT}, {"gte", r.GTE}, {"lt", r.LT}, {"lte", r.LTE}}
	for _, b := range bounds {
		if b.val != nil {
			v.Add(form.Key(key, b.name), strconv.FormatInt(*b.val, 10))
		}
	}
}

// Expandable is a field the server returns either as a bare identifier or,
// when the request asked for it to be expanded, as the full object.
type Expandable[T any] struct {
	ID     string
	Object *T
}

// Expanded reports whether the full object is present.
func (e Expandable[T]) Expanded() bool {
	return e.Object != nil
}

// AppendTo writes the identifier, for echoing a reference back in a request.
func (e Expandable[T]) AppendTo(v *form.Values, key string) {
	v.Add(key, e.ID)
}

type identified interface {
	GetID() string
}

// ExpandableVisitor decodes e from either shape. An object is decoded with
// build; a string is taken as the identifier. When T has a GetID method, the
// identifier is also filled in from the expanded object.
func ExpandableVisitor[T any](e *Expandable[T], build func(*T) decode.Visitor) decode.Visitor {
	return &expandableVisitor[T]{Base: decode.Base{Expected: "string or object"}, e: e, build: build}
}

type expandableVisitor[T any] struct {
	decode.Base
	e     *Expandable[T]
	build func(*T) decode.Visitor
}

func (v *expandableVisitor[T]) Object() (decode.ObjectVisitor, error) {
	v.e.Object = new(T)
	ov, err := v.build(v.e.Object).Object()
	if err != nil {
		return nil, err
	}
	return &expandedObject[T]{ObjectVisitor: ov, e: v.e}, nil
}

func (v *expandableVisitor[T]) String(s string) error {
	v.e.ID = s
	v.e.Object = nil
	return nil
}

type expandedObject[T any] struct {
	decode.ObjectVisitor
	e *Expandable[T]
}

func (o *expandedObject[T]) Finish() error {
	if err := o.ObjectVisitor.Finish(); err != nil {
		return err
	}
	if id, ok := any(o.e.Object).(identified); ok {
		o.e.ID = id.GetID()
	}
	return nil
}

// Deleted is the response of every delete operation.
type Deleted struct {
	ID      string
	Object  string
	Deleted bool
}

func (d *Deleted) Visitor() decode.Visitor {
	return decode.Object(func(key string) decode.Visitor {
		switch key {
		case "id":
			return decode.String(&d.ID)
		case "object":
			return decode.String(&d.Object)
		case "deleted":
			return decode.Bool(&d.Deleted)
		}
		return nil
	}, "id", "deleted")
}

func (d *Deleted) UnmarshalJSON(data []byte) error {
	return decode.Unmarshal(data, d.Visitor())
}

// List is one page of a list operation. Data preserves server order.
type List[T any] struct {
	Object  string
	Data    []*T
	HasMore bool
	URL     string
}

// ListVisitor decodes a list envelope, building each element with elem.
func ListVisitor[T any](l *List[T], elem func(*T) decode.Visitor) decode.Visitor {
	return decode.Object(func(key string) decode.Visitor {
		switch key {
		case "object":
			return decode.String(&l.Object)
		case "data":
			return decode.PtrSlice(&l.Data, elem)
		case "has_more":
			return decode.Bool(&l.HasMore)
		case "url":
			return decode.String(&l.URL)
		}
		return nil
	}, "data", "has_more")
}

// Address is a postal address.
type Address struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    Country
}

func (a *Address) Visitor() decode.Visitor {
	return decode.Object(func(key string) decode.Visitor {
		switch key {
		case "line1":
			return decode.String(&a.Line1)
		case "line2":
			return decode.String(&a.Line2)
		case "city":
			return decode.String(&a.City)
		case "state":
			return decode.String(&a.State)
		case "postal_code":
			return decode.String(&a.PostalCode)
		case "country":
			return decode.String((*string)(&a.Country))
		}
		return nil
	})
}

// AddressParams sets a postal address in a request.
type AddressParams struct {
	Line1      *string  `form:"line1,omitempty"`
	Line2      *string  `form:"line2,omitempty"`
	City       *string  `form:"city,omitempty"`
	State      *string  `form:"state,omitempty"`
	PostalCode *string  `form:"postal_code,omitempty"`
	Country    *Country `form:"country,omitempty" validate:"omitempty,iso3166_1_alpha2"`
}
