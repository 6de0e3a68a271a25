// Package enum is the runtime for generated enum types.
//
// A generated enum is a string type with one constant per token and an
// IsKnown method backed by a Set:
//
//	type Weekday string
//
//	const (
//		WeekdayMonday Weekday = "monday"
//		...
//	)
//
//	var weekdayValues = enum.NewSet(WeekdayMonday, ...)
//
//	func (w Weekday) IsKnown() bool { return weekdayValues.Contains(w) }
//
// The same type serves both closed and open use. A closed field holds the
// type directly and rejects unknown tokens via Parse. An open field holds
// Open[T], which never rejects a token: anything outside the known set is
// kept verbatim as the unknown variant.
package enum

import (
	"encoding/json"
	"fmt"

	"github.com/broady/stripe/decode"
	"github.com/broady/stripe/form"
)

// Token is the constraint satisfied by generated enum types.
type Token = decode.Token

// Set is the known token set of an enum type, in declaration order.
type Set[T ~string] struct {
	values []T
	index  map[T]struct{}
}

// NewSet builds a set. Duplicate values panic since they indicate a
// generator bug.
func NewSet[T ~string](values ...T) Set[T] {
	index := make(map[T]struct{}, len(values))
	for _, v := range values {
		if _, dup := index[v]; dup {
			panic(fmt.Sprintf("enum: duplicate token %q", string(v)))
		}
		index[v] = struct{}{}
	}
	return Set[T]{values: values, index: index}
}

// Contains reports whether v is a known token.
func (s Set[T]) Contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Values returns a copy of the known tokens.
func (s Set[T]) Values() []T {
	out := make([]T, len(s.values))
	copy(out, s.values)
	return out
}

// UnknownTokenError is returned by Parse for a token outside the known set.
type UnknownTokenError struct {
	Enum  string
	Token string
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("enum %s: unknown token %q", e.Enum, e.Token)
}

// Parse converts a token to a closed enum value.
func Parse[T Token](tok string) (T, error) {
	v := T(tok)
	if !v.IsKnown() {
		var zero T
		return zero, &UnknownTokenError{Enum: fmt.Sprintf("%T", zero), Token: tok}
	}
	return v, nil
}

// Open is an enum value that may carry a token unknown to this version of
// the library. The zero value is the unknown empty token.
//
// Unknown tokens are what the server sent; echoing them back as request
// parameters is allowed but usually wrong.
type Open[T Token] struct {
	value T
}

// Of converts a token to an Open value. It never fails: every token outside
// the known set becomes the unknown variant. This totality is what lets open
// fields decode any string.
func Of[T Token](tok string) Open[T] {
	return Open[T]{value: T(tok)}
}

// Known wraps a known value.
func Known[T Token](v T) Open[T] {
	return Open[T]{value: v}
}

// Known returns the value and true when the token is in the known set.
func (o Open[T]) Known() (T, bool) {
	if o.value.IsKnown() {
		return o.value, true
	}
	var zero T
	return zero, false
}

// Unknown returns the raw token and true when it is outside the known set.
func (o Open[T]) Unknown() (string, bool) {
	if o.value.IsKnown() {
		return "", false
	}
	return string(o.value), true
}

// IsUnknown reports whether the token is outside the known set.
func (o Open[T]) IsUnknown() bool {
	return !o.value.IsKnown()
}

// Is reports whether o holds the known value v.
func (o Open[T]) Is(v T) bool {
	return o.value == v && v.IsKnown()
}

// Token returns the token as sent by the server.
func (o Open[T]) Token() string {
	return string(o.value)
}

func (o Open[T]) String() string {
	if o.IsUnknown() {
		return fmt.Sprintf("Unknown(%s)", string(o.value))
	}
	return string(o.value)
}

// AppendTo writes the raw token.
func (o Open[T]) AppendTo(v *form.Values, key string) {
	v.Add(key, string(o.value))
}

func (o Open[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(o.value))
}

func (o *Open[T]) UnmarshalJSON(data []byte) error {
	return decode.Unmarshal(data, o.Visitor())
}

// Visitor decodes a JSON string into o. Any string is accepted.
func (o *Open[T]) Visitor() decode.Visitor {
	return &openVisitor[T]{Base: decode.Base{Expected: "string"}, o: o}
}

type openVisitor[T Token] struct {
	decode.Base
	o *Open[T]
}

func (v *openVisitor[T]) String(s string) error {
	*v.o = Of[T](s)
	return nil
}
