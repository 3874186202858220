package srcinfo

import "encoding/json"

// Value holds one field of a package record. It is either a single scalar
// or an ordered multi-value collection. Fields listed in listFields start
// out as collections even with a single value; any other field is promoted
// to a collection the moment it receives a second value.
//
// Downstream consumers rely on the scalar/collection distinction, so a
// Value never silently changes shape except through promotion.
type Value struct {
	scalar string
	list   []string
	multi  bool
}

// String creates a scalar Value.
func String(s string) Value {
	return Value{scalar: s}
}

// List creates a multi-value Value. Duplicates are collapsed, first
// occurrence wins the position.
func List(vals ...string) Value {
	v := Value{multi: true}
	for _, s := range vals {
		v.list = appendUnique(v.list, s)
	}
	return v
}

// Multi reports whether the value is a collection.
func (v Value) Multi() bool { return v.multi }

// Str returns the scalar value. For collections it returns the first
// element, or "" when empty.
func (v Value) Str() string {
	if v.multi {
		if len(v.list) == 0 {
			return ""
		}
		return v.list[0]
	}
	return v.scalar
}

// Strings materializes the value as a slice. Scalars yield a one-element
// slice. Callers must not rely on the element order of promoted values.
func (v Value) Strings() []string {
	if v.multi {
		return v.list
	}
	return []string{v.scalar}
}

// Add returns the value extended with s. A scalar is promoted to a
// collection first; duplicates collapse. Add is pure: the receiver is not
// modified and promotion is idempotent.
func (v Value) Add(s string) Value {
	return v.Merge(String(s))
}

// Merge returns the union of two values as a collection, preserving first
// occurrence order and collapsing duplicates.
func (v Value) Merge(other Value) Value {
	out := Value{multi: true}
	out.list = append(out.list, v.Strings()...)
	for _, s := range other.Strings() {
		out.list = appendUnique(out.list, s)
	}
	return out
}

// MarshalJSON encodes scalars as JSON strings and collections as arrays.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.multi {
		return json.Marshal(v.list)
	}
	return json.Marshal(v.scalar)
}

// UnmarshalJSON restores the scalar/collection shape from the wire form.
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = String(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*v = List(list...)
	return nil
}

func appendUnique(list []string, s string) []string {
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}

// Record is the flat metadata of one sub-package: field name to value.
type Record map[string]Value

// Has reports whether the field is present.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Str returns the field's scalar value, or "" when absent.
func (r Record) Str(key string) string {
	return r[key].Str()
}

// Strings returns the field materialized as a slice, or nil when absent.
func (r Record) Strings(key string) []string {
	v, ok := r[key]
	if !ok {
		return nil
	}
	return v.Strings()
}

// add folds one raw pair into the record, applying the always-multi rule
// for the first value and promotion for every subsequent one.
func (r Record) add(key, val string) {
	cur, ok := r[key]
	if !ok {
		if listFields[key] {
			r[key] = List(val)
		} else {
			r[key] = String(val)
		}
		return
	}
	r[key] = cur.Add(val)
}
