package motoko

import (
	"github.com/motoko-tools/ttlex/domain/entities"
)

// findComments returns the spans of line comments and outermost block
// comments in source order. The scanner runs leniently, so the result is
// defined for every input: an unterminated block comment extends to the
// end of the source.
func findComments(s *scanner) []entities.CommentSpan {
	var (
		spans      []entities.CommentSpan
		blockStart = -1
	)
	for {
		loc, ok, err := s.next()
		if err != nil || !ok {
			break
		}
		tok := loc.Token
		switch {
		case tok.Type == entities.TokenLineComment:
			spans = append(spans, entities.CommentSpan{Start: loc.Source.Start, End: loc.Source.End})
		case tok.Type == entities.TokenOpen && tok.Group == entities.GroupBlockComment && blockStart < 0:
			blockStart = loc.Source.Start
		case tok.Type == entities.TokenClose && tok.Group == entities.GroupBlockComment && s.depth == 0:
			spans = append(spans, entities.CommentSpan{Start: blockStart, End: loc.Source.End})
			blockStart = -1
		}
	}
	if blockStart >= 0 {
		spans = append(spans, entities.CommentSpan{Start: blockStart, End: s.cur.offset()})
	}
	return spans
}
