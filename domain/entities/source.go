package entities

import "github.com/motoko-tools/ttlex/wireformat"

// Source locates a token in the input text. Line is 1-based, Col is the
// 0-based byte column, and Span is the half-open byte range [Start, End).
type Source struct {
	Line  int `json:"line"`
	Col   int `json:"col"`
	Start int `json:"-"`
	End   int `json:"-"`
}

// MarshalValue encodes the location as {"line", "col", "span": [start, end]}.
func (s Source) MarshalValue() (wireformat.Value, error) {
	line, err := wireformat.Int(s.Line)
	if err != nil {
		return wireformat.Value{}, err
	}
	col, err := wireformat.Int(s.Col)
	if err != nil {
		return wireformat.Value{}, err
	}
	span, err := spanValue(s.Start, s.End)
	if err != nil {
		return wireformat.Value{}, err
	}
	return wireformat.Object(
		wireformat.F("line", line),
		wireformat.F("col", col),
		wireformat.F("span", span),
	), nil
}

// Loc pairs a token with its location; it is encoded as [token, source].
type Loc struct {
	Token  Token
	Source Source
}

// MarshalValue implements wireformat.Marshaler.
func (l Loc) MarshalValue() (wireformat.Value, error) {
	tok, err := l.Token.MarshalValue()
	if err != nil {
		return wireformat.Value{}, err
	}
	src, err := l.Source.MarshalValue()
	if err != nil {
		return wireformat.Value{}, err
	}
	return wireformat.Seq(tok, src), nil
}

func spanValue(start, end int) (wireformat.Value, error) {
	s, err := wireformat.Int(start)
	if err != nil {
		return wireformat.Value{}, err
	}
	e, err := wireformat.Int(end)
	if err != nil {
		return wireformat.Value{}, err
	}
	return wireformat.Seq(s, e), nil
}
