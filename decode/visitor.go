// Package decode is an event-driven JSON deserializer.
//
// A driver reads JSON events and hands them to a Visitor. Generated types
// expose a Visitor that routes each object key to a child visitor writing
// directly into a struct field, so no intermediate map[string]any tree is
// built on the hot path:
//
//	func (a *Account) Visitor() decode.Visitor {
//		return decode.Object(func(key string) decode.Visitor {
//			switch key {
//			case "id":
//				return decode.String(&a.ID)
//			case "email":
//				return decode.String(&a.Email)
//			}
//			return nil
//		}, "id", "object")
//	}
//
// Two drivers produce the same events: Stream reads from an io.Reader and
// Walk traverses an already materialized value (as produced by
// json.Unmarshal into any). Both must agree on every recognized input.
package decode

import "encoding/json"

// Visitor receives the events for one JSON value.
// Exactly one method is called per value.
type Visitor interface {
	Object() (ObjectVisitor, error)
	Array() (ArrayVisitor, error)
	String(s string) error
	Number(n json.Number) error
	Bool(b bool) error
	Null() error
}

// ObjectVisitor receives the members of a JSON object.
type ObjectVisitor interface {
	// Key selects the visitor for the member's value. A nil return discards
	// the value.
	Key(name string) Visitor
	// Finish is called after the closing brace.
	Finish() error
}

// ArrayVisitor receives the elements of a JSON array.
type ArrayVisitor interface {
	// Elem returns the visitor for the next element. A nil return discards it.
	Elem() Visitor
	Finish() error
}

// Decodable is implemented by generated response types.
type Decodable interface {
	Visitor() Visitor
}

// Base rejects every event with a type mismatch. Embed it in a visitor and
// override the events the visitor accepts.
type Base struct {
	// Expected names the accepted JSON kind in error messages.
	Expected string
}

func (b Base) Object() (ObjectVisitor, error) { return nil, b.mismatch("object", "{") }
func (b Base) Array() (ArrayVisitor, error)   { return nil, b.mismatch("array", "[") }
func (b Base) String(s string) error          { return b.mismatch("string", s) }
func (b Base) Number(n json.Number) error     { return b.mismatch("number", n.String()) }
func (b Base) Bool(v bool) error {
	if v {
		return b.mismatch("boolean", "true")
	}
	return b.mismatch("boolean", "false")
}

// Null is accepted by default: absent and null are the same to a sparse
// response model.
func (b Base) Null() error { return nil }

func (b Base) mismatch(got, token string) error {
	return &Error{Expected: b.Expected, Got: got, Token: token}
}

// Skip accepts and discards any value.
var Skip Visitor = skip{}

type skip struct{}

func (skip) Object() (ObjectVisitor, error) { return skipObject{}, nil }
func (skip) Array() (ArrayVisitor, error)   { return skipArray{}, nil }
func (skip) String(string) error            { return nil }
func (skip) Number(json.Number) error       { return nil }
func (skip) Bool(bool) error                { return nil }
func (skip) Null() error                    { return nil }

type skipObject struct{}

func (skipObject) Key(string) Visitor { return Skip }
func (skipObject) Finish() error      { return nil }

type skipArray struct{}

func (skipArray) Elem() Visitor { return Skip }
func (skipArray) Finish() error { return nil }
