package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loc(tok Token, line, col, start, end int) Loc {
	return Loc{Token: tok, Source: Source{Line: line, Col: col, Start: start, End: end}}
}

func TestToken_MarshalValue(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		want string
	}{
		{
			name: "open",
			tok:  Token{Type: TokenOpen, Text: "{", Group: GroupCurly},
			want: `{"token_type":"Open","data":["{","Curly"]}`,
		},
		{
			name: "delim",
			tok:  Token{Type: TokenDelim, Text: ";", Delim: DelimSemi},
			want: `{"token_type":"Delim","data":[";","Semi"]}`,
		},
		{
			name: "literal",
			tok:  Token{Type: TokenLiteral, Text: "42", Literal: LiteralNat},
			want: `{"token_type":"Literal","data":["42","Nat"]}`,
		},
		{
			name: "ident",
			tok:  Token{Type: TokenIdent, Text: "foo"},
			want: `{"token_type":"Ident","data":"foo"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.tok.MarshalValue()
			require.NoError(t, err)
			data, err := json.Marshal(v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestToken_MissingType(t *testing.T) {
	_, err := Token{Text: "x"}.MarshalValue()
	assert.Error(t, err)
}

func TestToken_IsWhitespace(t *testing.T) {
	for _, typ := range []TokenType{TokenSpace, TokenLine, TokenMultiLine} {
		assert.True(t, Token{Type: typ}.IsWhitespace(), typ)
	}
	for _, typ := range []TokenType{TokenLineComment, TokenIdent, TokenDelim, TokenUnknown, ""} {
		assert.False(t, Token{Type: typ}.IsWhitespace(), typ)
	}
}

func TestTokenTree_MarshalValue(t *testing.T) {
	open := loc(Token{Type: TokenOpen, Text: "(", Group: GroupParen}, 1, 0, 0, 1)
	ident := loc(Token{Type: TokenIdent, Text: "x"}, 1, 1, 1, 2)
	closing := loc(Token{Type: TokenClose, Text: ")", Group: GroupParen}, 1, 2, 2, 3)

	tree := NewGroup(GroupUnenclosed, []TokenTree{
		NewGroup(GroupParen, []TokenTree{NewLeaf(ident)}, &[2]Loc{open, closing}),
	}, nil)

	v, err := tree.MarshalValue()
	require.NoError(t, err)
	data, err := json.Marshal(v)
	require.NoError(t, err)

	want := `{"token_tree_type":"Group","data":[[` +
		`{"token_tree_type":"Group","data":[[` +
		`{"token_tree_type":"Token","data":[{"token_type":"Ident","data":"x"},{"line":1,"col":1,"span":[1,2]}]}` +
		`],"Paren",[` +
		`[{"token_type":"Open","data":["(","Paren"]},{"line":1,"col":0,"span":[0,1]}],` +
		`[{"token_type":"Close","data":[")","Paren"]},{"line":1,"col":2,"span":[2,3]}]` +
		`]]}` +
		`],"Unenclosed",null]}`
	assert.Equal(t, want, string(data))

	start, end := tree.Span()
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
}

func TestTokenTree_Walk(t *testing.T) {
	open := loc(Token{Type: TokenOpen, Text: "[", Group: GroupSquare}, 1, 0, 0, 1)
	a := loc(Token{Type: TokenIdent, Text: "a"}, 1, 1, 1, 2)
	closing := loc(Token{Type: TokenClose, Text: "]", Group: GroupSquare}, 1, 2, 2, 3)
	tree := NewGroup(GroupUnenclosed, []TokenTree{
		NewGroup(GroupSquare, []TokenTree{NewLeaf(a)}, &[2]Loc{open, closing}),
	}, nil)

	var texts []string
	tree.Walk(func(l Loc) { texts = append(texts, l.Token.Text) })
	assert.Equal(t, []string{"[", "a", "]"}, texts)
}

func TestEmptyTree_Span(t *testing.T) {
	start, end := NewGroup(GroupUnenclosed, nil, nil).Span()
	assert.Zero(t, start)
	assert.Zero(t, end)
}

func TestResponse_JSON(t *testing.T) {
	v, err := CommentSpan{Start: 4, End: 12}.MarshalValue()
	require.NoError(t, err)

	data, err := json.Marshal(Success(v))
	require.NoError(t, err)
	assert.Equal(t, `{"value":[4,12]}`, string(data))

	data, err = json.Marshal(Failure(NewErrorDetail("Unable to parse input string")))
	require.NoError(t, err)
	assert.Equal(t, `{"error":{"message":"Unable to parse input string"}}`, string(data))

	kw, err := Classification(false).MarshalValue()
	require.NoError(t, err)
	data, err = json.Marshal(Success(kw))
	require.NoError(t, err)
	assert.Equal(t, `{"value":false}`, string(data))
}
