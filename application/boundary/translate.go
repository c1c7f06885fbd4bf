package boundary

import (
	"github.com/motoko-tools/ttlex/domain/errors"
	"github.com/motoko-tools/ttlex/wireformat"
)

// translate maps any error onto one of the two boundary kinds. Errors that
// are already boundary errors pass through; anything else is a fault of
// the boundary and becomes KindInternal with its text preserved.
func translate(err error) *errors.BoundaryError {
	if err == nil {
		return nil
	}
	return errors.AsBoundary(err)
}

// serialize converts a lexer result, reporting failures as serialization errors.
func serialize(m wireformat.Marshaler) (wireformat.Value, error) {
	v, err := m.MarshalValue()
	if err != nil {
		return wireformat.Value{}, errors.SerializationFailed(err)
	}
	return v, nil
}
