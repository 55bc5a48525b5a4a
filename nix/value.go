package nix

import "fmt"

// ValueKind discriminates the scalar type held by a Value.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueInt
	ValueFloat
	ValueBool
)

// Value is a tagged scalar stored in a metadata Property. Arbitrary Go
// values are narrowed to one of four kinds; anything unrecognized is
// rendered as a string.
type Value struct {
	kind ValueKind
	s    string
	i    int64
	f    float64
	b    bool
}

// NewValue wraps a scalar in a Value.
func NewValue(v any) Value {
	switch x := v.(type) {
	case string:
		return Value{kind: ValueString, s: x}
	case bool:
		return Value{kind: ValueBool, b: x}
	case int:
		return Value{kind: ValueInt, i: int64(x)}
	case int32:
		return Value{kind: ValueInt, i: int64(x)}
	case int64:
		return Value{kind: ValueInt, i: x}
	case uint:
		return Value{kind: ValueInt, i: int64(x)}
	case float32:
		return Value{kind: ValueFloat, f: float64(x)}
	case float64:
		return Value{kind: ValueFloat, f: x}
	default:
		return Value{kind: ValueString, s: fmt.Sprint(v)}
	}
}

// Kind returns the scalar kind of the value.
func (v Value) Kind() ValueKind { return v.kind }

// Any returns the wrapped scalar as its natural Go type: string, int64,
// float64 or bool.
func (v Value) Any() any {
	switch v.kind {
	case ValueInt:
		return v.i
	case ValueFloat:
		return v.f
	case ValueBool:
		return v.b
	default:
		return v.s
	}
}

// String renders the value for diagnostics.
func (v Value) String() string {
	return fmt.Sprint(v.Any())
}
