package motoko

import (
	"strings"
	"unicode/utf8"

	"github.com/motoko-tools/ttlex/domain/entities"
)

// scanner produces the flat token stream. Block comment bodies are scanned
// in comment mode, where only nesting markers and line structure matter.
type scanner struct {
	cur *cursor
	// depth is the current block comment nesting level.
	depth int
	// lenient turns lexical errors into best-effort tokens. The comment
	// finder uses it so that it stays total over all inputs.
	lenient bool
}

// next returns the next token. ok is false at EOF.
func (s *scanner) next() (loc entities.Loc, ok bool, err error) {
	c := s.cur
	if c.eof() {
		return entities.Loc{}, false, nil
	}
	start := c.mark()

	var tok entities.Token
	if s.depth > 0 {
		tok = s.scanCommentBody()
	} else {
		tok, err = s.scanToken(start)
		if err != nil {
			return entities.Loc{}, false, err
		}
	}

	return entities.Loc{
		Token: tok,
		Source: entities.Source{
			Line:  start.line,
			Col:   start.col,
			Start: int(start.off),
			End:   c.offset(),
		},
	}, true, nil
}

func (s *scanner) scanToken(start mark) (entities.Token, error) {
	c := s.cur
	b := c.peek()

	switch {
	case b == ' ' || b == '\t':
		return s.scanSpace(start), nil
	case isNewlineStart(c):
		return s.scanNewlines(start), nil
	case c.startsWith("//"):
		return s.scanLineComment(start), nil
	case c.startsWith("/*"):
		c.eatString("/*")
		s.depth++
		return entities.Token{Type: entities.TokenOpen, Text: "/*", Group: entities.GroupBlockComment}, nil
	case c.startsWith("*/"):
		if !s.lenient {
			return entities.Token{}, errorAt(start, "unexpected %q outside of a block comment", "*/")
		}
		return s.scanOperator(start), nil
	case isIdentStart(b):
		return s.scanIdent(start), nil
	case isDigit(b):
		return s.scanNumber(start), nil
	case b == '"':
		return s.scanQuoted(start, '"', entities.LiteralText, "text")
	case b == '\'':
		return s.scanQuoted(start, '\'', entities.LiteralChar, "character")
	case b == ',':
		c.bump()
		return entities.Token{Type: entities.TokenDelim, Text: ",", Delim: entities.DelimComma}, nil
	case b == ';':
		c.bump()
		return entities.Token{Type: entities.TokenDelim, Text: ";", Delim: entities.DelimSemi}, nil
	case b == '(' || b == '{' || b == '[':
		c.bump()
		return entities.Token{Type: entities.TokenOpen, Text: string(b), Group: groupOf(b)}, nil
	case b == ')' || b == '}' || b == ']':
		c.bump()
		return entities.Token{Type: entities.TokenClose, Text: string(b), Group: groupOf(b)}, nil
	case b == '.':
		c.bump()
		return entities.Token{Type: entities.TokenDot, Text: "."}, nil
	case b == ':':
		if c.eatString(":=") {
			return entities.Token{Type: entities.TokenAssign, Text: ":="}, nil
		}
		c.bump()
		return entities.Token{Type: entities.TokenColon, Text: ":"}, nil
	case isOperatorByte(b):
		return s.scanOperator(start), nil
	default:
		_, size := utf8.DecodeRuneInString(c.src[c.off:])
		for range size {
			c.bump()
		}
		return entities.Token{Type: entities.TokenUnknown, Text: c.text(start)}, nil
	}
}

func (s *scanner) scanSpace(start mark) entities.Token {
	c := s.cur
	for b := c.peek(); b == ' ' || b == '\t'; b = c.peek() {
		c.bump()
	}
	return entities.Token{Type: entities.TokenSpace, Text: c.text(start)}
}

// scanNewlines consumes one line break, plus any following blank lines.
// Two or more breaks make a MultiLine token.
func (s *scanner) scanNewlines(start mark) entities.Token {
	c := s.cur
	eatNewline(c)
	count := 1
	for {
		save := c.mark()
		for b := c.peek(); b == ' ' || b == '\t'; b = c.peek() {
			c.bump()
		}
		if !isNewlineStart(c) {
			c.reset(save)
			break
		}
		eatNewline(c)
		count++
	}
	if count > 1 {
		return entities.Token{Type: entities.TokenMultiLine, Text: c.text(start)}
	}
	return entities.Token{Type: entities.TokenLine, Text: c.text(start)}
}

func (s *scanner) scanLineComment(start mark) entities.Token {
	c := s.cur
	for !c.eof() && !isNewlineStart(c) {
		c.bump()
	}
	return entities.Token{Type: entities.TokenLineComment, Text: c.text(start)}
}

// scanCommentBody scans inside a block comment: nested markers, line
// breaks, and runs of plain comment text.
func (s *scanner) scanCommentBody() entities.Token {
	c := s.cur
	start := c.mark()
	switch {
	case c.eatString("/*"):
		s.depth++
		return entities.Token{Type: entities.TokenOpen, Text: "/*", Group: entities.GroupBlockComment}
	case c.eatString("*/"):
		s.depth--
		return entities.Token{Type: entities.TokenClose, Text: "*/", Group: entities.GroupBlockComment}
	case isNewlineStart(c):
		return s.scanNewlines(start)
	}
	for !c.eof() && !isNewlineStart(c) && !c.startsWith("/*") && !c.startsWith("*/") {
		c.bump()
	}
	return entities.Token{Type: entities.TokenUnknown, Text: c.text(start)}
}

func (s *scanner) scanIdent(start mark) entities.Token {
	c := s.cur
	for isIdentContinue(c.peek()) {
		c.bump()
	}
	text := c.text(start)
	switch text {
	case "_":
		return entities.Token{Type: entities.TokenWild, Text: text}
	case "null":
		return entities.Token{Type: entities.TokenLiteral, Text: text, Literal: entities.LiteralNull}
	case "true", "false":
		return entities.Token{Type: entities.TokenLiteral, Text: text, Literal: entities.LiteralBool}
	}
	return entities.Token{Type: entities.TokenIdent, Text: text}
}

// scanNumber accepts decimal and hexadecimal naturals with '_' separators,
// and decimal floats with an optional fraction and exponent.
func (s *scanner) scanNumber(start mark) entities.Token {
	c := s.cur
	if c.peek() == '0' && (c.peekAt(1) == 'x' || c.peekAt(1) == 'X') && isHexDigit(c.peekAt(2)) {
		c.bump()
		c.bump()
		for isHexDigit(c.peek()) || c.peek() == '_' {
			c.bump()
		}
		return entities.Token{Type: entities.TokenLiteral, Text: c.text(start), Literal: entities.LiteralNat}
	}

	kind := entities.LiteralNat
	eatDigits(c)
	if c.peek() == '.' && isDigit(c.peekAt(1)) {
		c.bump()
		eatDigits(c)
		kind = entities.LiteralFloat
	}
	if b := c.peek(); b == 'e' || b == 'E' {
		sign := c.peekAt(1)
		switch {
		case isDigit(sign):
			c.bump()
			eatDigits(c)
			kind = entities.LiteralFloat
		case (sign == '+' || sign == '-') && isDigit(c.peekAt(2)):
			c.bump()
			c.bump()
			eatDigits(c)
			kind = entities.LiteralFloat
		}
	}
	return entities.Token{Type: entities.TokenLiteral, Text: c.text(start), Literal: kind}
}

// scanQuoted scans a text or character literal including its quotes.
func (s *scanner) scanQuoted(start mark, quote byte, kind entities.LiteralKind, what string) (entities.Token, error) {
	c := s.cur
	c.bump()
	for !c.eof() {
		b := c.bump()
		if b == '\\' {
			c.bump()
			continue
		}
		if b == quote {
			return entities.Token{Type: entities.TokenLiteral, Text: c.text(start), Literal: kind}, nil
		}
	}
	if s.lenient {
		return entities.Token{Type: entities.TokenLiteral, Text: c.text(start), Literal: kind}, nil
	}
	return entities.Token{}, errorAt(start, "unterminated %s literal", what)
}

// scanOperator munches operator bytes, stopping before a comment opener.
// A lone '=' is an assignment.
func (s *scanner) scanOperator(start mark) entities.Token {
	c := s.cur
	c.bump()
	for isOperatorByte(c.peek()) && !c.startsWith("//") && !c.startsWith("/*") {
		c.bump()
	}
	text := c.text(start)
	if text == "=" {
		return entities.Token{Type: entities.TokenAssign, Text: text}
	}
	return entities.Token{Type: entities.TokenOperator, Text: text}
}

func groupOf(b byte) entities.GroupType {
	switch b {
	case '(', ')':
		return entities.GroupParen
	case '{', '}':
		return entities.GroupCurly
	default:
		return entities.GroupSquare
	}
}

func eatDigits(c *cursor) {
	for isDigit(c.peek()) || c.peek() == '_' {
		c.bump()
	}
}

func isNewlineStart(c *cursor) bool {
	return c.peek() == '\n' || (c.peek() == '\r' && c.peekAt(1) == '\n')
}

func eatNewline(c *cursor) {
	c.eat('\r')
	c.eat('\n')
}

func isIdentStart(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

const operatorBytes = "+-*/%^&|<>=!~?@#$"

func isOperatorByte(b byte) bool {
	return b != 0 && strings.IndexByte(operatorBytes, b) >= 0
}
