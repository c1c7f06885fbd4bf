package entities

import (
	"fmt"

	"github.com/motoko-tools/ttlex/wireformat"
)

// TokenType tags a Token on the wire ("token_type").
type TokenType string

const (
	TokenOpen        TokenType = "Open"
	TokenClose       TokenType = "Close"
	TokenDelim       TokenType = "Delim"
	TokenLiteral     TokenType = "Literal"
	TokenLineComment TokenType = "LineComment"
	TokenDot         TokenType = "Dot"
	TokenColon       TokenType = "Colon"
	TokenAssign      TokenType = "Assign"
	TokenOperator    TokenType = "Operator"
	TokenIdent       TokenType = "Ident"
	TokenWild        TokenType = "Wild"
	TokenSpace       TokenType = "Space"
	TokenLine        TokenType = "Line"
	TokenMultiLine   TokenType = "MultiLine"
	TokenUnknown     TokenType = "Unknown"
)

// GroupType names the bracket pair that encloses a group.
type GroupType string

const (
	GroupUnenclosed   GroupType = "Unenclosed"
	GroupParen        GroupType = "Paren"
	GroupCurly        GroupType = "Curly"
	GroupSquare       GroupType = "Square"
	GroupAngle        GroupType = "Angle"
	GroupBlockComment GroupType = "BlockComment"
)

// DelimKind distinguishes the two separator tokens.
type DelimKind string

const (
	DelimComma DelimKind = "Comma"
	DelimSemi  DelimKind = "Semi"
)

// LiteralKind classifies a literal token.
type LiteralKind string

const (
	LiteralNull      LiteralKind = "Null"
	LiteralUnit      LiteralKind = "Unit"
	LiteralBool      LiteralKind = "Bool"
	LiteralNat       LiteralKind = "Nat"
	LiteralNat8      LiteralKind = "Nat8"
	LiteralNat16     LiteralKind = "Nat16"
	LiteralNat32     LiteralKind = "Nat32"
	LiteralNat64     LiteralKind = "Nat64"
	LiteralInt       LiteralKind = "Int"
	LiteralInt8      LiteralKind = "Int8"
	LiteralInt16     LiteralKind = "Int16"
	LiteralInt32     LiteralKind = "Int32"
	LiteralInt64     LiteralKind = "Int64"
	LiteralFloat     LiteralKind = "Float"
	LiteralText      LiteralKind = "Text"
	LiteralChar      LiteralKind = "Char"
	LiteralPrincipal LiteralKind = "Principal"
)

// Token is a single lexeme. Which of Group, Delim and Literal is meaningful
// depends on Type.
type Token struct {
	Type    TokenType
	Text    string
	Group   GroupType
	Delim   DelimKind
	Literal LiteralKind
}

// MarshalValue encodes the token as {"token_type": Type, "data": ...}.
func (t Token) MarshalValue() (wireformat.Value, error) {
	var data wireformat.Value
	switch t.Type {
	case TokenOpen, TokenClose:
		data = wireformat.Seq(wireformat.String(t.Text), wireformat.String(string(t.Group)))
	case TokenDelim:
		data = wireformat.Seq(wireformat.String(t.Text), wireformat.String(string(t.Delim)))
	case TokenLiteral:
		data = wireformat.Seq(wireformat.String(t.Text), wireformat.String(string(t.Literal)))
	case "":
		return wireformat.Value{}, fmt.Errorf("token %q has no type", t.Text)
	default:
		data = wireformat.String(t.Text)
	}
	return wireformat.Object(
		wireformat.F("token_type", wireformat.String(string(t.Type))),
		wireformat.F("data", data),
	), nil
}

// IsWhitespace reports whether the token is a run of spaces or line breaks.
func (t Token) IsWhitespace() bool {
	switch t.Type {
	case TokenSpace, TokenLine, TokenMultiLine:
		return true
	}
	return false
}
