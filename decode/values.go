package decode

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Token is the constraint satisfied by generated enum types.
type Token interface {
	~string
	IsKnown() bool
}

// String decodes a JSON string into *p.
func String(p *string) Visitor { return &stringVisitor{Base{"string"}, p} }

type stringVisitor struct {
	Base
	p *string
}

func (v *stringVisitor) String(s string) error { *v.p = s; return nil }

// StringPtr decodes a nullable JSON string. Null leaves *p nil.
func StringPtr(p **string) Visitor {
	return Ptr(p, String)
}

// Int64 decodes a JSON integer into *p.
func Int64(p *int64) Visitor { return &int64Visitor{Base{"integer"}, p} }

type int64Visitor struct {
	Base
	p *int64
}

func (v *int64Visitor) Number(n json.Number) error {
	i, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return &Error{Expected: "integer", Token: n.String()}
	}
	*v.p = i
	return nil
}

// Int64Ptr decodes a nullable JSON integer. Null leaves *p nil.
func Int64Ptr(p **int64) Visitor {
	return Ptr(p, Int64)
}

// Uint64 decodes a non-negative JSON integer into *p.
func Uint64(p *uint64) Visitor { return &uint64Visitor{Base{"unsigned integer"}, p} }

type uint64Visitor struct {
	Base
	p *uint64
}

func (v *uint64Visitor) Number(n json.Number) error {
	i, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return &Error{Expected: "unsigned integer", Token: n.String()}
	}
	*v.p = i
	return nil
}

// Float64 decodes any JSON number into *p.
func Float64(p *float64) Visitor { return &float64Visitor{Base{"number"}, p} }

type float64Visitor struct {
	Base
	p *float64
}

func (v *float64Visitor) Number(n json.Number) error {
	f, err := n.Float64()
	if err != nil {
		return &Error{Expected: "number", Token: n.String()}
	}
	*v.p = f
	return nil
}

// Float64Ptr decodes a nullable JSON number. Null leaves *p nil.
func Float64Ptr(p **float64) Visitor {
	return Ptr(p, Float64)
}

// Bool decodes a JSON boolean into *p.
func Bool(p *bool) Visitor { return &boolVisitor{Base{"boolean"}, p} }

type boolVisitor struct {
	Base
	p *bool
}

func (v *boolVisitor) Bool(b bool) error { *v.p = b; return nil }

// BoolPtr decodes a nullable JSON boolean. Null leaves *p nil.
func BoolPtr(p **bool) Visitor {
	return Ptr(p, Bool)
}

// Closed decodes a closed enum. A token outside the known set fails the field.
func Closed[T Token](p *T) Visitor {
	var zero T
	return &closedVisitor[T]{Base{fmt.Sprintf("enum %T", zero)}, p}
}

type closedVisitor[T Token] struct {
	Base
	p *T
}

func (v *closedVisitor[T]) String(s string) error {
	t := T(s)
	if !t.IsKnown() {
		return &Error{Expected: v.Expected, Token: s}
	}
	*v.p = t
	return nil
}

// Ptr decodes into a lazily allocated *T. Null leaves *p untouched.
func Ptr[T any](p **T, build func(*T) Visitor) Visitor {
	return &ptrVisitor[T]{p: p, build: build}
}

type ptrVisitor[T any] struct {
	p     **T
	build func(*T) Visitor
}

func (v *ptrVisitor[T]) target() Visitor {
	if *v.p == nil {
		*v.p = new(T)
	}
	return v.build(*v.p)
}

func (v *ptrVisitor[T]) Object() (ObjectVisitor, error) { return v.target().Object() }
func (v *ptrVisitor[T]) Array() (ArrayVisitor, error)   { return v.target().Array() }
func (v *ptrVisitor[T]) String(s string) error          { return v.target().String(s) }
func (v *ptrVisitor[T]) Number(n json.Number) error     { return v.target().Number(n) }
func (v *ptrVisitor[T]) Bool(b bool) error              { return v.target().Bool(b) }
func (v *ptrVisitor[T]) Null() error                    { return nil }

// Slice decodes a JSON array, building each element with elem.
// Each element is fully visited before the next one is appended.
func Slice[T any](p *[]T, elem func(*T) Visitor) Visitor {
	return &sliceVisitor[T]{Base{"array"}, p, elem}
}

// PtrSlice decodes a JSON array of objects into a slice of pointers.
func PtrSlice[T any](p *[]*T, build func(*T) Visitor) Visitor {
	return Slice(p, func(pp **T) Visitor { return Ptr(pp, build) })
}

// Strings decodes a JSON array of strings.
func Strings(p *[]string) Visitor {
	return Slice(p, String)
}

type sliceVisitor[T any] struct {
	Base
	p    *[]T
	elem func(*T) Visitor
}

func (v *sliceVisitor[T]) Array() (ArrayVisitor, error) {
	*v.p = make([]T, 0)
	return &sliceElems[T]{p: v.p, elem: v.elem}, nil
}

type sliceElems[T any] struct {
	p    *[]T
	elem func(*T) Visitor
}

func (s *sliceElems[T]) Elem() Visitor {
	var zero T
	*s.p = append(*s.p, zero)
	return s.elem(&(*s.p)[len(*s.p)-1])
}

func (s *sliceElems[T]) Finish() error { return nil }

// StringMap decodes a JSON object of strings, such as metadata.
// Null members are dropped.
func StringMap(p *map[string]string) Visitor {
	return &stringMapVisitor{Base{"object"}, p}
}

type stringMapVisitor struct {
	Base
	p *map[string]string
}

func (v *stringMapVisitor) Object() (ObjectVisitor, error) {
	*v.p = map[string]string{}
	return v, nil
}

func (v *stringMapVisitor) Key(name string) Visitor {
	return &mapEntry{Base{"string"}, *v.p, name}
}

func (v *stringMapVisitor) Finish() error { return nil }

type mapEntry struct {
	Base
	m   map[string]string
	key string
}

func (e *mapEntry) String(s string) error { e.m[e.key] = s; return nil }
