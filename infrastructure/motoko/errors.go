package motoko

import "fmt"

// LexError reports why a source text has no token tree.
type LexError struct {
	Reason string
	Offset int
	Line   int
	Col    int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Reason)
}

func errorAt(m mark, format string, args ...any) *LexError {
	return &LexError{
		Reason: fmt.Sprintf(format, args...),
		Offset: int(m.off),
		Line:   m.line,
		Col:    m.col,
	}
}
