package config

import (
	"maps"
	"strings"

	"github.com/spf13/cast"
)

// Mapping holds configuration values keyed by setting name.
type Mapping map[string]any

// Merge returns a new Mapping built from the given layers in order.
// Keys of a later layer replace keys of an earlier one. Nil layers are skipped
// and none of the inputs is modified.
func Merge(layers ...Mapping) Mapping {
	out := Mapping{}

	for _, layer := range layers {
		maps.Copy(out, layer)
	}

	return out
}

// Clone returns a shallow copy. Cloning a nil Mapping returns nil.
func (m Mapping) Clone() Mapping {
	if m == nil {
		return nil
	}

	return maps.Clone(m)
}

// Has reports whether key is set.
func (m Mapping) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// String returns the value of key as string or fallback if it is unset or not convertible.
func (m Mapping) String(key, fallback string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return fallback
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return fallback
	}

	return s
}

// Bool returns the value of key as bool or fallback if it is unset or not convertible.
func (m Mapping) Bool(key string, fallback bool) bool {
	v, ok := m[key]
	if !ok || v == nil {
		return fallback
	}

	b, err := cast.ToBoolE(v)
	if err != nil {
		return fallback
	}

	return b
}

// upperKeys returns a copy of m with every top level key upper-cased.
func upperKeys(m map[string]any) Mapping {
	out := make(Mapping, len(m))
	for k, v := range m {
		out[strings.ToUpper(k)] = v
	}

	return out
}
