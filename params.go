package tweetstream

import (
	"fmt"
	"reflect"
	"strings"
)

// Params is an insertion-ordered set of request parameters. Order matters:
// the encoded query or body preserves the order keys were first set in.
type Params struct {
	keys []string
	vals map[string]any
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{vals: make(map[string]any)}
}

// Set stores value under key and returns the set for chaining. Re-setting a
// key overwrites its value but keeps the key's original position.
func (p *Params) Set(key string, value any) *Params {
	if p.vals == nil {
		p.vals = make(map[string]any)
	}
	if _, ok := p.vals[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.vals[key] = value
	return p
}

// Get returns the value stored under key.
func (p *Params) Get(key string) (any, bool) {
	if p == nil || p.vals == nil {
		return nil, false
	}
	v, ok := p.vals[key]
	return v, ok
}

// Len reports the number of keys in the set.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.keys...)
}

// Clone returns an independent copy. A nil receiver clones to an empty set.
func (p *Params) Clone() *Params {
	out := NewParams()
	if p == nil {
		return out
	}
	for _, k := range p.keys {
		out.Set(k, p.vals[k])
	}
	return out
}

// The three list-valued filter keys that get canonicalized to their comma
// joined wire form.
var filterKeys = []string{"follow", "track", "locations"}

// Normalize returns a copy of p with each filter key's value canonicalized:
// sequences (at any nesting depth) are flattened, stringified, and joined
// with commas; scalars are stringified; absent keys are left untouched.
// Non-filter keys pass through unchanged.
func (p *Params) Normalize() *Params {
	out := p.Clone()
	for _, key := range filterKeys {
		v, ok := out.vals[key]
		if !ok || v == nil {
			continue
		}
		out.vals[key] = flattenJoin(v)
	}
	return out
}

// flattenJoin renders v as its comma-joined wire form, recursing through
// slices and arrays of any element type.
func flattenJoin(v any) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts = append(parts, flattenJoin(rv.Index(i).Interface()))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}
