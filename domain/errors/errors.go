// Package errors provides the boundary error type and its translation to the
// wire. All error types support unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/motoko-tools/ttlex/domain/entities"
)

// MsgInputRejected is the fixed message reported when the lexer rejects its input.
const MsgInputRejected = "Unable to parse input string"

// Kind is one of the two failure kinds that reach the host.
type Kind uint8

const (
	// KindInputRejected means the lexer could not build a token tree.
	// The lexer's own detail is kept for Go callers but never sent to the host.
	KindInputRejected Kind = iota + 1
	// KindInternal covers faults of the boundary itself: a result that could
	// not be serialized, or a panic contained during the call.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInputRejected:
		return "input_rejected"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// BoundaryError is the single error type that crosses the boundary.
type BoundaryError struct {
	Err     error
	Message string
	Kind    Kind
}

func (e *BoundaryError) Error() string {
	return e.Message
}

func (e *BoundaryError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *BoundaryError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail(e.Message)
}

// InputRejected wraps a lexer failure. The message is always MsgInputRejected.
func InputRejected(cause error) *BoundaryError {
	return &BoundaryError{Kind: KindInputRejected, Message: MsgInputRejected, Err: cause}
}

// SerializationFailed wraps an encoding failure, keeping its description.
func SerializationFailed(cause error) *BoundaryError {
	return &BoundaryError{
		Kind:    KindInternal,
		Message: fmt.Sprintf("Serialization error (%v)", cause),
		Err:     cause,
	}
}

// PanicRecovered converts a recovered panic value.
func PanicRecovered(r any) *BoundaryError {
	var cause error
	switch v := r.(type) {
	case error:
		cause = v
	default:
		cause = fmt.Errorf("%v", v)
	}
	return &BoundaryError{
		Kind:    KindInternal,
		Message: fmt.Sprintf("Unexpected panic (%v)", cause),
		Err:     &PanicError{Value: r},
	}
}

// PanicError keeps the raw value of a contained panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// DetailedError is implemented by errors that convert themselves to the wire form.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts any error into the wire ErrorDetail. Errors that are
// neither an ErrorDetail nor a DetailedError are treated as internal faults,
// so their text is preserved.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var be *BoundaryError
	if stdErrors.As(err, &be) {
		return be.ToErrorDetail()
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return entities.NewErrorDetail(err.Error())
}

// AsBoundary returns err as a *BoundaryError, translating foreign errors to
// KindInternal.
func AsBoundary(err error) *BoundaryError {
	if err == nil {
		return nil
	}
	var be *BoundaryError
	if stdErrors.As(err, &be) {
		return be
	}
	return &BoundaryError{Kind: KindInternal, Message: err.Error(), Err: err}
}

// IsInputRejected reports whether err is a lexer rejection.
func IsInputRejected(err error) bool {
	var be *BoundaryError
	return stdErrors.As(err, &be) && be.Kind == KindInputRejected
}
