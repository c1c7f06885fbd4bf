package wireformat

import (
	"fmt"
	"sort"
)

// From converts plain Go data into a Value without reflection. Supported
// inputs are nil, Value, Marshaler, bool, string, every integer and float
// type, []Value, []any, []string and map[string]any. Map keys are sorted so
// the result is deterministic.
func From(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case Marshaler:
		return x.MarshalValue()
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case int:
		return Int(x)
	case int8:
		return Int(x)
	case int16:
		return Int(x)
	case int32:
		return Int(x)
	case int64:
		return Int(x)
	case uint:
		return Int(x)
	case uint8:
		return Int(x)
	case uint16:
		return Int(x)
	case uint32:
		return Int(x)
	case uint64:
		return Int(x)
	case float32:
		return Float(x)
	case float64:
		return Float(x)
	case []Value:
		return Seq(x...), nil
	case []string:
		return SeqOf(x, func(s string) (Value, error) { return String(s), nil })
	case []any:
		return SeqOf(x, From)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, 0, len(keys))
		for _, k := range keys {
			fv, err := From(x[k])
			if err != nil {
				return Value{}, &PathError{Key: k, Err: err}
			}
			fields = append(fields, F(k, fv))
		}
		return Object(fields...), nil
	default:
		return Value{}, &UnsupportedTypeError{Type: fmt.Sprintf("%T", v)}
	}
}
