package commands

import "encoding/json"

// Patch is an optional field of a partial update. Set is true when the field
// was provided, even if its value is the zero value or JSON null.
type Patch[T any] struct {
	Set   bool
	Value T
}

// Some returns a set patch holding v.
func Some[T any](v T) Patch[T] {
	return Patch[T]{Set: true, Value: v}
}

// UnmarshalJSON marks the patch as set. It only runs for keys present in the
// document, which is what distinguishes "absent" from "null".
func (p *Patch[T]) UnmarshalJSON(b []byte) error {
	p.Set = true
	return json.Unmarshal(b, &p.Value)
}

func (p Patch[T]) apply(dst *T) {
	if p.Set {
		*dst = p.Value
	}
}
