package form

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Appender is implemented by values that know how to write themselves under a
// key. Range queries, metadata, open enums and unions implement it.
type Appender interface {
	AppendTo(v *Values, key string)
}

// TagName is the struct tag read by the encoder.
//
//	Limit  *int64   `form:"limit"`
//	Expand []string `form:"-"`
//	Name   string   `form:"name,omitempty"`
//
// Untagged exported fields are skipped, except embedded structs which are
// flattened into the parent.
const TagName = "form"

type encoderFunc func(v *Values, key string, rv reflect.Value)

var appenderType = reflect.TypeFor[Appender]()

// Encoders are built once per type. The cache is bounded because generated
// code has thousands of param types but a process only touches a few.
var encoderCache, _ = lru.New[reflect.Type, encoderFunc](1024)

// Encode walks params and returns the pairs it produces. A nil params yields
// empty Values.
func Encode(params any) *Values {
	v := &Values{}
	AppendTo(v, params)
	return v
}

// AppendTo walks params and appends its pairs to v.
// Nil pointers, nil slices and nil maps produce nothing.
func AppendTo(v *Values, params any) {
	AppendToPrefix(v, params, "")
}

// AppendToPrefix is like AppendTo but nests every produced key under prefix.
func AppendToPrefix(v *Values, params any, prefix string) {
	if params == nil {
		return
	}
	rv := reflect.ValueOf(params)
	encoderFor(rv.Type())(v, prefix, rv)
}

// Key joins a parent key and a child name using the bracket convention.
func Key(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "[" + child + "]"
}

// Index returns the key of the i-th element under parent.
func Index(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}

// FormatFloat renders a float with the fewest digits that round-trip.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func encoderFor(t reflect.Type) encoderFunc {
	if enc, ok := encoderCache.Get(t); ok {
		return enc
	}
	enc := newEncoder(t)
	encoderCache.Add(t, enc)
	return enc
}

func newEncoder(t reflect.Type) encoderFunc {
	if t.Implements(appenderType) {
		return appenderEncoder
	}

	switch t.Kind() {
	case reflect.Pointer:
		return pointerEncoder
	case reflect.Interface:
		return interfaceEncoder
	case reflect.Bool:
		return func(v *Values, key string, rv reflect.Value) {
			v.Add(key, strconv.FormatBool(rv.Bool()))
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(v *Values, key string, rv reflect.Value) {
			v.Add(key, strconv.FormatInt(rv.Int(), 10))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(v *Values, key string, rv reflect.Value) {
			v.Add(key, strconv.FormatUint(rv.Uint(), 10))
		}
	case reflect.Float32:
		return func(v *Values, key string, rv reflect.Value) {
			v.Add(key, strconv.FormatFloat(rv.Float(), 'f', -1, 32))
		}
	case reflect.Float64:
		return func(v *Values, key string, rv reflect.Value) {
			v.Add(key, FormatFloat(rv.Float()))
		}
	case reflect.String:
		return func(v *Values, key string, rv reflect.Value) {
			v.Add(key, rv.String())
		}
	case reflect.Slice:
		return sliceEncoder
	case reflect.Array:
		return arrayEncoder
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			panic(fmt.Sprintf("form: unsupported map key type %s", t.Key()))
		}
		return mapEncoder
	case reflect.Struct:
		return newStructEncoder(t)
	default:
		panic(fmt.Sprintf("form: unsupported type %s", t))
	}
}

func appenderEncoder(v *Values, key string, rv reflect.Value) {
	if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return
	}
	rv.Interface().(Appender).AppendTo(v, key)
}

func pointerEncoder(v *Values, key string, rv reflect.Value) {
	if rv.IsNil() {
		return
	}
	elem := rv.Elem()
	encoderFor(elem.Type())(v, key, elem)
}

func interfaceEncoder(v *Values, key string, rv reflect.Value) {
	if rv.IsNil() {
		return
	}
	elem := rv.Elem()
	encoderFor(elem.Type())(v, key, elem)
}

// An empty but non-nil slice is written as "key=" which the API reads as
// "clear this list".
func sliceEncoder(v *Values, key string, rv reflect.Value) {
	if rv.IsNil() {
		return
	}
	if rv.Len() == 0 {
		v.Add(key, "")
		return
	}
	arrayEncoder(v, key, rv)
}

func arrayEncoder(v *Values, key string, rv reflect.Value) {
	enc := encoderFor(rv.Type().Elem())
	for i := 0; i < rv.Len(); i++ {
		enc(v, Index(key, i), rv.Index(i))
	}
}

// Map keys are sorted so output is stable for a given input.
func mapEncoder(v *Values, key string, rv reflect.Value) {
	if rv.IsNil() {
		return
	}
	if rv.Len() == 0 {
		v.Add(key, "")
		return
	}
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	enc := encoderFor(rv.Type().Elem())
	for _, k := range keys {
		enc(v, Key(key, k.String()), rv.MapIndex(k))
	}
}

type fieldEncoder struct {
	index     int
	name      string
	flatten   bool
	omitEmpty bool
	typ       reflect.Type
}

func newStructEncoder(t reflect.Type) encoderFunc {
	var fields []fieldEncoder
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, hasTag := sf.Tag.Lookup(TagName)
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if !hasTag || name == "" {
			if sf.Anonymous && indirect(sf.Type).Kind() == reflect.Struct {
				fields = append(fields, fieldEncoder{index: i, flatten: true, typ: sf.Type})
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}
		fields = append(fields, fieldEncoder{
			index:     i,
			name:      name,
			omitEmpty: opts == "omitempty",
			typ:       sf.Type,
		})
	}

	return func(v *Values, key string, rv reflect.Value) {
		for _, f := range fields {
			fv := rv.Field(f.index)
			if f.omitEmpty && fv.IsZero() {
				continue
			}
			// Resolved lazily so self-referential params do not recurse here.
			enc := encoderFor(f.typ)
			if f.flatten {
				enc(v, key, fv)
				continue
			}
			enc(v, Key(key, f.name), fv)
		}
	}
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
