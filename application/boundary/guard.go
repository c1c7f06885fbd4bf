package boundary

import (
	"runtime/debug"

	"github.com/motoko-tools/ttlex/domain/errors"
	"github.com/motoko-tools/ttlex/internal/panichook"
	"github.com/motoko-tools/ttlex/wireformat"
)

// Guard runs op and converts a panic into a KindInternal BoundaryError.
// The panic is also forwarded to the installed panic hook. Errors returned
// by op are translated, so the result is always nil or a *BoundaryError.
func Guard(op func() (wireformat.Value, error)) (v wireformat.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			panichook.Report(r, stack)

			be := errors.PanicRecovered(r)
			if pe, ok := be.Err.(*errors.PanicError); ok {
				pe.Stack = stack
			}
			v, err = wireformat.Value{}, be
		}
	}()

	v, err = op()
	if err != nil {
		return wireformat.Value{}, translate(err)
	}
	return v, nil
}
