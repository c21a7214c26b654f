package properties

import (
	"maps"
	"slices"
)

// Properties is a key-unique mapping of string keys to string values.
// A key that is not present is absent; an empty string is a present value.
type Properties map[string]string

// Source describes an origin of properties that can be loaded on demand.
type Source interface {
	Load() (Properties, error)
}

// Lookup returns the value stored for key and whether it is present.
func (p Properties) Lookup(key string) (string, bool) {
	v, ok := p[key]
	return v, ok
}

// Set stores value under key.
func (p Properties) Set(key, value string) {
	p[key] = value
}

// Keys returns the keys in ascending order.
func (p Properties) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}

// Clone returns an independent copy. The clone of a nil mapping is empty, not nil.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	maps.Copy(out, p)
	return out
}
