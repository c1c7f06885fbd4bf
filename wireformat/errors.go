package wireformat

import (
	"errors"
	"fmt"
)

// ErrNotFinite is wrapped by a RangeError for NaN and infinite floats.
var ErrNotFinite = errors.New("not a finite number")

// RangeError reports a number the host cannot represent exactly.
type RangeError struct {
	Err   error
	Kind  string // "integer" or "float"
	Value string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %s is not representable by the host: %v", e.Kind, e.Value, e.Err)
}

func (e *RangeError) Unwrap() error {
	return e.Err
}

// UnsupportedTypeError is returned by From for values outside the structural model.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type %s", e.Type)
}

// PathError locates a conversion failure inside a sequence or record.
type PathError struct {
	Err   error
	Key   string
	Index int
}

func (e *PathError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("field %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("index %d: %v", e.Index, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}
