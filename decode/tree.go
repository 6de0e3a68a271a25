package decode

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Walk feeds an already materialized JSON value into v. It accepts the shapes
// produced by json.Unmarshal into any: map[string]any, []any, string,
// json.Number, float64, bool and nil.
//
// Object members are visited in sorted key order so errors are reported
// deterministically.
func Walk(value any, v Visitor) error {
	return walk(value, v, "")
}

// floatNumber renders integral values without an exponent so integer
// visitors accept them.
func floatNumber(f float64) json.Number {
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return json.Number(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return json.Number(strconv.FormatFloat(f, 'g', -1, 64))
}

// WalkJSON unmarshals data into a generic tree and walks it. It exists for
// payloads embedded in other documents, where the streaming driver cannot be
// positioned.
func WalkJSON(data []byte, v Visitor) error {
	tree, err := Tree(data)
	if err != nil {
		return err
	}
	return Walk(tree, v)
}

// Tree unmarshals data into a generic value, keeping numbers as json.Number.
func Tree(data []byte) (any, error) {
	var tree any
	if err := Unmarshal(data, Capture(&tree)); err != nil {
		return nil, err
	}
	return tree, nil
}

func walk(value any, v Visitor, ptr string) error {
	if v == nil {
		v = Skip
	}
	switch t := value.(type) {
	case map[string]any:
		ov, err := v.Object()
		if err != nil {
			return withPointer(ptr, err)
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := walk(t[k], ov.Key(k), ptr+"/"+escapePointer(k)); err != nil {
				return err
			}
		}
		return withPointer(ptr, ov.Finish())
	case []any:
		av, err := v.Array()
		if err != nil {
			return withPointer(ptr, err)
		}
		for i, elem := range t {
			if err := walk(elem, av.Elem(), ptr+"/"+strconv.Itoa(i)); err != nil {
				return err
			}
		}
		return withPointer(ptr, av.Finish())
	case string:
		return withPointer(ptr, v.String(t))
	case json.Number:
		return withPointer(ptr, v.Number(t))
	case float64:
		return withPointer(ptr, v.Number(floatNumber(t)))
	case bool:
		return withPointer(ptr, v.Bool(t))
	case nil:
		return withPointer(ptr, v.Null())
	}
	return &Error{Pointer: ptr, Expected: "JSON value", Got: fmt.Sprintf("%T", value)}
}

// Capture returns a visitor that materializes whatever it receives into *dst
// using the same shapes Walk accepts.
func Capture(dst *any) Visitor {
	return &capture{set: func(v any) { *dst = v }}
}

type capture struct {
	set func(any)
}

func (c *capture) Object() (ObjectVisitor, error) {
	m := map[string]any{}
	c.set(m)
	return &captureObject{m: m}, nil
}

func (c *capture) Array() (ArrayVisitor, error) {
	return &captureArray{set: c.set, elems: []any{}}, nil
}

func (c *capture) String(s string) error      { c.set(s); return nil }
func (c *capture) Number(n json.Number) error { c.set(n); return nil }
func (c *capture) Bool(b bool) error          { c.set(b); return nil }
func (c *capture) Null() error                { c.set(nil); return nil }

type captureObject struct {
	m map[string]any
}

func (o *captureObject) Key(name string) Visitor {
	return &capture{set: func(v any) { o.m[name] = v }}
}

func (o *captureObject) Finish() error { return nil }

type captureArray struct {
	set   func(any)
	elems []any
}

func (a *captureArray) Elem() Visitor {
	i := len(a.elems)
	a.elems = append(a.elems, nil)
	return &capture{set: func(v any) { a.elems[i] = v }}
}

func (a *captureArray) Finish() error {
	a.set(a.elems)
	return nil
}
