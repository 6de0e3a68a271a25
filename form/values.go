// Package form encodes request parameters using the bracketed-key convention
// shared by many payment APIs:
//
//	parent[child]=v
//	items[0][price]=price_123
//	metadata[order_id]=6735
//
// The convention is not part of any URL standard and generic form encoders
// disagree on how arrays are written, so it is implemented here directly.
// Arrays are always written with explicit indices (items[0], items[1], ...).
package form

import (
	"net/url"
	"strings"
)

// Values is an ordered list of key/value pairs.
// Unlike url.Values, insertion order is preserved so that the same params
// always produce byte-identical output, which keeps retried request bodies
// deterministic.
type Values struct {
	pairs []pair
}

type pair struct {
	key   string
	value string
}

// Add appends a pair. Existing pairs with the same key are kept.
func (v *Values) Add(key, value string) {
	v.pairs = append(v.pairs, pair{key: key, value: value})
}

// Set replaces the value of the first pair with the given key and removes any
// later duplicates. If the key is absent, the pair is appended.
func (v *Values) Set(key, value string) {
	found := false
	out := v.pairs[:0]
	for _, p := range v.pairs {
		if p.key == key {
			if found {
				continue
			}
			found = true
			p.value = value
		}
		out = append(out, p)
	}
	v.pairs = out
	if !found {
		v.Add(key, value)
	}
}

// Get returns the first value for key, or "" if the key is absent.
func (v *Values) Get(key string) string {
	if v == nil {
		return ""
	}
	for _, p := range v.pairs {
		if p.key == key {
			return p.value
		}
	}
	return ""
}

// Has reports whether key is present.
func (v *Values) Has(key string) bool {
	if v == nil {
		return false
	}
	for _, p := range v.pairs {
		if p.key == key {
			return true
		}
	}
	return false
}

// Del removes every pair with the given key.
func (v *Values) Del(key string) {
	out := v.pairs[:0]
	for _, p := range v.pairs {
		if p.key != key {
			out = append(out, p)
		}
	}
	v.pairs = out
}

// Len returns the number of pairs.
func (v *Values) Len() int {
	if v == nil {
		return 0
	}
	return len(v.pairs)
}

// Empty reports whether there are no pairs.
func (v *Values) Empty() bool {
	return v.Len() == 0
}

// Keys returns the keys in insertion order, including duplicates.
func (v *Values) Keys() []string {
	if v == nil {
		return nil
	}
	keys := make([]string, len(v.pairs))
	for i, p := range v.pairs {
		keys[i] = p.key
	}
	return keys
}

// Clone returns an independent copy.
func (v *Values) Clone() *Values {
	if v == nil {
		return &Values{}
	}
	pairs := make([]pair, len(v.pairs))
	copy(pairs, v.pairs)
	return &Values{pairs: pairs}
}

// Merge appends every pair of other, in order.
func (v *Values) Merge(other *Values) {
	if other == nil {
		return
	}
	v.pairs = append(v.pairs, other.pairs...)
}

// URLValues converts to url.Values. Ordering is lost.
func (v *Values) URLValues() url.Values {
	out := make(url.Values, v.Len())
	if v == nil {
		return out
	}
	for _, p := range v.pairs {
		out.Add(p.key, p.value)
	}
	return out
}

// Encode renders the pairs as an application/x-www-form-urlencoded string.
// Square brackets in keys are left unescaped; everything else is escaped as
// by url.QueryEscape.
func (v *Values) Encode() string {
	if v.Empty() {
		return ""
	}
	var b strings.Builder
	for i, p := range v.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escapeKey(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

func (v *Values) String() string {
	return v.Encode()
}

var bracketUnescaper = strings.NewReplacer("%5B", "[", "%5D", "]")

func escapeKey(key string) string {
	return bracketUnescaper.Replace(url.QueryEscape(key))
}
