package entities

import "github.com/motoko-tools/ttlex/wireformat"

// CommentSpan is the half-open byte range [Start, End) of one comment.
// On the wire it is a plain two-element array.
type CommentSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// MarshalValue encodes the span as [start, end].
func (c CommentSpan) MarshalValue() (wireformat.Value, error) {
	return spanValue(c.Start, c.End)
}

// Classification is the lexer's answer to "is this identifier reserved".
type Classification bool

// MarshalValue implements wireformat.Marshaler.
func (c Classification) MarshalValue() (wireformat.Value, error) {
	return wireformat.Bool(bool(c)), nil
}
