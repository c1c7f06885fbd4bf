package wireformat

import (
	"fmt"
	"math"

	"fortio.org/safecast"
)

// MaxSafeInteger is the largest integer a JavaScript number holds exactly.
const MaxSafeInteger = 1<<53 - 1

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSeq
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSeq:
		return "seq"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is an immutable structural value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	// items holds sequence elements, or record values for KindMap.
	items []Value
	keys  []string
}

// Field is a single key/value pair of a record.
type Field struct {
	Key   string
	Value Value
}

// Marshaler is implemented by types that know how to describe themselves as a Value.
type Marshaler interface {
	MarshalValue() (Value, error)
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int returns an integer value, or a *RangeError when n lies outside ±MaxSafeInteger.
func Int[T safecast.Integer](n T) (Value, error) {
	i, err := safecast.Conv[int64](n)
	if err != nil {
		return Value{}, &RangeError{Kind: "integer", Value: fmt.Sprint(n), Err: err}
	}
	if i > MaxSafeInteger || i < -MaxSafeInteger {
		return Value{}, &RangeError{Kind: "integer", Value: fmt.Sprint(n), Err: safecast.ErrOutOfRange}
	}
	return Value{kind: KindInt, i: i}, nil
}

// Float returns a float value, or a *RangeError for NaN and infinities.
func Float[T safecast.Float](f T) (Value, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}, &RangeError{Kind: "float", Value: fmt.Sprint(v), Err: ErrNotFinite}
	}
	return Value{kind: KindFloat, f: v}, nil
}

// Seq returns a sequence holding items in order.
func Seq(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindSeq, items: cp}
}

// Object returns a record. Keys keep the given order; a repeated key
// replaces the earlier value in place.
func Object(fields ...Field) Value {
	v := Value{kind: KindMap, keys: make([]string, 0, len(fields)), items: make([]Value, 0, len(fields))}
	for _, f := range fields {
		if idx := v.indexOf(f.Key); idx >= 0 {
			v.items[idx] = f.Value
			continue
		}
		v.keys = append(v.keys, f.Key)
		v.items = append(v.items, f.Value)
	}
	return v
}

// F is shorthand for a Field literal.
func F(key string, v Value) Field { return Field{Key: key, Value: v} }

// SeqOf converts each element with fn and collects the results in a sequence.
// The first conversion error aborts the whole sequence.
func SeqOf[T any](items []T, fn func(T) (Value, error)) (Value, error) {
	out := make([]Value, 0, len(items))
	for i, item := range items {
		v, err := fn(item)
		if err != nil {
			return Value{}, &PathError{Index: i, Err: err}
		}
		out = append(out, v)
	}
	return Value{kind: KindSeq, items: out}, nil
}

// MarshalSeq is SeqOf for element types implementing Marshaler.
func MarshalSeq[T Marshaler](items []T) (Value, error) {
	return SeqOf(items, func(item T) (Value, error) { return item.MarshalValue() })
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v; false for other kinds.
func (v Value) AsBool() bool { return v.kind == KindBool && v.b }

// AsInt returns the integer held by v.
func (v Value) AsInt() int64 { return v.i }

// AsFloat returns the number held by v as a float64.
func (v Value) AsFloat() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// AsString returns the string held by v.
func (v Value) AsString() string { return v.s }

// Len returns the number of elements of a sequence or record.
func (v Value) Len() int { return len(v.items) }

// Index returns element i of a sequence or the i-th value of a record.
func (v Value) Index(i int) Value { return v.items[i] }

// Items returns a copy of the sequence elements.
func (v Value) Items() []Value {
	cp := make([]Value, len(v.items))
	copy(cp, v.items)
	return cp
}

// Keys returns a copy of the record keys in order.
func (v Value) Keys() []string {
	cp := make([]string, len(v.keys))
	copy(cp, v.keys)
	return cp
}

// Get looks up a record field.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	if idx := v.indexOf(key); idx >= 0 {
		return v.items[idx], true
	}
	return Value{}, false
}

func (v Value) indexOf(key string) int {
	for i, k := range v.keys {
		if k == key {
			return i
		}
	}
	return -1
}

// Interface converts v into plain Go values: nil, bool, int64, float64,
// string, []any and map[string]any. Record key order is lost.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindSeq:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.keys))
		for i, k := range v.keys {
			out[k] = v.items[i].Interface()
		}
		return out
	default:
		return nil
	}
}

// Equal reports whether a and b hold the same structure. Record fields are
// compared by key, independent of order.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return a.f == b.f
	case KindString:
		return a.s == b.s
	case KindSeq:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.keys) != len(b.keys) {
			return false
		}
		for i, k := range a.keys {
			other, ok := b.Get(k)
			if !ok || !Equal(a.items[i], other) {
				return false
			}
		}
		return true
	}
	return false
}
