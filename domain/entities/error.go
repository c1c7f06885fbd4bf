package entities

import "github.com/motoko-tools/ttlex/wireformat"

// ErrorDetail is the only error shape the host ever sees. Callers may rely
// on the message text and on its presence, nothing else.
type ErrorDetail struct {
	// Message is a human-readable error description.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ErrorDetail) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// NewErrorDetail creates an ErrorDetail with the given message.
func NewErrorDetail(message string) *ErrorDetail {
	return &ErrorDetail{Message: message}
}

// MarshalValue implements wireformat.Marshaler.
func (e *ErrorDetail) MarshalValue() (wireformat.Value, error) {
	return wireformat.Object(wireformat.F("message", wireformat.String(e.Message))), nil
}

// Response is the envelope returned by WASI exports: exactly one of Value
// and Error is set.
type Response struct {
	Value *wireformat.Value `json:"value,omitempty"`
	Error *ErrorDetail      `json:"error,omitempty"`
}

// Success wraps a result value.
func Success(v wireformat.Value) Response {
	return Response{Value: &v}
}

// Failure wraps an error detail.
func Failure(detail *ErrorDetail) Response {
	return Response{Error: detail}
}

// MarshalValue implements wireformat.Marshaler.
func (r Response) MarshalValue() (wireformat.Value, error) {
	if r.Error != nil {
		detail, err := r.Error.MarshalValue()
		if err != nil {
			return wireformat.Value{}, err
		}
		return wireformat.Object(wireformat.F("error", detail)), nil
	}
	v := wireformat.Null()
	if r.Value != nil {
		v = *r.Value
	}
	return wireformat.Object(wireformat.F("value", v)), nil
}
