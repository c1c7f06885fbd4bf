package motoko

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motoko-tools/ttlex/domain/entities"
)

type lexeme struct {
	Type entities.TokenType
	Text string
}

func leaves(tree entities.TokenTree) []lexeme {
	var out []lexeme
	tree.Walk(func(loc entities.Loc) {
		out = append(out, lexeme{Type: loc.Token.Type, Text: loc.Token.Text})
	})
	return out
}

func TestCreateTokenTree_FlatStatement(t *testing.T) {
	tree, err := New().CreateTokenTree("let x = 1;")
	require.NoError(t, err)

	assert.Equal(t, entities.TreeGroup, tree.Kind)
	assert.Equal(t, entities.GroupUnenclosed, tree.Group)
	assert.Nil(t, tree.Pair)

	want := []lexeme{
		{entities.TokenIdent, "let"},
		{entities.TokenSpace, " "},
		{entities.TokenIdent, "x"},
		{entities.TokenSpace, " "},
		{entities.TokenAssign, "="},
		{entities.TokenSpace, " "},
		{entities.TokenLiteral, "1"},
		{entities.TokenDelim, ";"},
	}
	if diff := cmp.Diff(want, leaves(tree)); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}

	semi := tree.Trees[len(tree.Trees)-1].Leaf
	assert.Equal(t, entities.DelimSemi, semi.Token.Delim)
	assert.Equal(t, entities.LiteralNat, tree.Trees[6].Leaf.Token.Literal)
}

func TestCreateTokenTree_Groups(t *testing.T) {
	tree, err := New().CreateTokenTree("f(a, [b]) { c }")
	require.NoError(t, err)
	require.Len(t, tree.Trees, 4)

	paren := tree.Trees[1]
	require.Equal(t, entities.TreeGroup, paren.Kind)
	assert.Equal(t, entities.GroupParen, paren.Group)
	require.NotNil(t, paren.Pair)
	assert.Equal(t, "(", paren.Pair[0].Token.Text)
	assert.Equal(t, ")", paren.Pair[1].Token.Text)
	assert.Equal(t, 1, paren.Pair[0].Source.Start)
	assert.Equal(t, 9, paren.Pair[1].Source.End)

	square := paren.Trees[3]
	assert.Equal(t, entities.GroupSquare, square.Group)
	assert.Equal(t, []lexeme{{entities.TokenIdent, "b"}}, leaves(entities.NewGroup(entities.GroupUnenclosed, square.Trees, nil)))

	curly := tree.Trees[3]
	assert.Equal(t, entities.GroupCurly, curly.Group)
	start, end := curly.Span()
	assert.Equal(t, 10, start)
	assert.Equal(t, 15, end)
}

func TestCreateTokenTree_NestedBlockComment(t *testing.T) {
	tree, err := New().CreateTokenTree("/* a /* b */ c */")
	require.NoError(t, err)
	require.Len(t, tree.Trees, 1)

	outer := tree.Trees[0]
	assert.Equal(t, entities.GroupBlockComment, outer.Group)
	require.Len(t, outer.Trees, 3)
	assert.Equal(t, " a ", outer.Trees[0].Leaf.Token.Text)
	assert.Equal(t, entities.GroupBlockComment, outer.Trees[1].Group)
	assert.Equal(t, " c ", outer.Trees[2].Leaf.Token.Text)
}

func TestCreateTokenTree_Lines(t *testing.T) {
	tree, err := New().CreateTokenTree("a\nb\n\n  \nc")
	require.NoError(t, err)

	want := []lexeme{
		{entities.TokenIdent, "a"},
		{entities.TokenLine, "\n"},
		{entities.TokenIdent, "b"},
		{entities.TokenMultiLine, "\n\n  \n"},
		{entities.TokenIdent, "c"},
	}
	if diff := cmp.Diff(want, leaves(tree)); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}

	c := tree.Trees[4].Leaf.Source
	assert.Equal(t, 5, c.Line)
	assert.Equal(t, 0, c.Col)
	assert.Equal(t, 8, c.Start)
}

func TestCreateTokenTree_TokenClasses(t *testing.T) {
	tests := []struct {
		src  string
		want []lexeme
	}{
		{"x := y", []lexeme{{entities.TokenIdent, "x"}, {entities.TokenSpace, " "}, {entities.TokenAssign, ":="}, {entities.TokenSpace, " "}, {entities.TokenIdent, "y"}}},
		{"a==b", []lexeme{{entities.TokenIdent, "a"}, {entities.TokenOperator, "=="}, {entities.TokenIdent, "b"}}},
		{"a+=b", []lexeme{{entities.TokenIdent, "a"}, {entities.TokenOperator, "+="}, {entities.TokenIdent, "b"}}},
		{"x : T", []lexeme{{entities.TokenIdent, "x"}, {entities.TokenSpace, " "}, {entities.TokenColon, ":"}, {entities.TokenSpace, " "}, {entities.TokenIdent, "T"}}},
		{"a.b", []lexeme{{entities.TokenIdent, "a"}, {entities.TokenDot, "."}, {entities.TokenIdent, "b"}}},
		{"_", []lexeme{{entities.TokenWild, "_"}}},
		{"_x", []lexeme{{entities.TokenIdent, "_x"}}},
		{"a//c", []lexeme{{entities.TokenIdent, "a"}, {entities.TokenLineComment, "//c"}}},
		{"€", []lexeme{{entities.TokenUnknown, "€"}}},
		{`"a\"b"`, []lexeme{{entities.TokenLiteral, `"a\"b"`}}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tree, err := New().CreateTokenTree(tt.src)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, leaves(tree)); diff != "" {
				t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCreateTokenTree_Literals(t *testing.T) {
	tests := []struct {
		src  string
		want entities.LiteralKind
	}{
		{"42", entities.LiteralNat},
		{"1_000_000", entities.LiteralNat},
		{"0xFF", entities.LiteralNat},
		{"3.14", entities.LiteralFloat},
		{"1e10", entities.LiteralFloat},
		{"2.5E-3", entities.LiteralFloat},
		{`"hi"`, entities.LiteralText},
		{`'c'`, entities.LiteralChar},
		{"null", entities.LiteralNull},
		{"true", entities.LiteralBool},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tree, err := New().CreateTokenTree(tt.src)
			require.NoError(t, err)
			require.Len(t, tree.Trees, 1)
			tok := tree.Trees[0].Leaf.Token
			assert.Equal(t, entities.TokenLiteral, tok.Type)
			assert.Equal(t, tt.src, tok.Text)
			assert.Equal(t, tt.want, tok.Literal)
		})
	}
}

func TestCreateTokenTree_Errors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		reason string
		offset int
	}{
		{"unclosed group", "f(a", `unclosed "("`, 1},
		{"unmatched close", "a)", `unmatched closing ")"`, 1},
		{"mismatched close", "(a]", `closing "]" does not match opening "(" at 1:0`, 2},
		{"unterminated text", `x = "abc`, "unterminated text literal", 4},
		{"unterminated char", `'a`, "unterminated character literal", 0},
		{"unterminated block comment", "a /* b /* c */", "unterminated block comment", 2},
		{"stray comment end", "a */", `unexpected "*/" outside of a block comment`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().CreateTokenTree(tt.src)
			require.Error(t, err)

			var lexErr *LexError
			require.True(t, errors.As(err, &lexErr))
			assert.Equal(t, tt.reason, lexErr.Reason)
			assert.Equal(t, tt.offset, lexErr.Offset)
		})
	}
}

func TestCreateTokenTree_ReproducesSource(t *testing.T) {
	sources := []string{
		"",
		"actor {\n  public func greet(name : Text) : async Text {\n    return \"Hello, \" # name # \"!\";\n  };\n};\n",
		"/* doc /* nested */\n   more */\nlet a = [1, 2.5, 0x1F];\r\n// trailing",
		"switch (x) { case (#a) 1; case _ 0 }",
	}

	for _, src := range sources {
		tree, err := New().CreateTokenTree(src)
		require.NoError(t, err, "source %q", src)

		var b strings.Builder
		tree.Walk(func(loc entities.Loc) {
			assert.Equal(t, loc.Token.Text, src[loc.Source.Start:loc.Source.End])
			b.WriteString(loc.Token.Text)
		})
		assert.Equal(t, src, b.String())
	}
}

func TestFindCommentSpans(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []entities.CommentSpan
	}{
		{"none", "let x = 1;", nil},
		{"empty", "", nil},
		{"line and nested block", "x // hi\ny /* a /* b */ */ \"// no\"", []entities.CommentSpan{{Start: 2, End: 7}, {Start: 10, End: 25}}},
		{"marker inside text", `"/* not */" // yes`, []entities.CommentSpan{{Start: 12, End: 18}}},
		{"unterminated block runs to end", "a /* b", []entities.CommentSpan{{Start: 2, End: 6}}},
		{"line comment before CRLF", "// a\r\nb", []entities.CommentSpan{{Start: 0, End: 4}}},
		{"unbalanced brackets are irrelevant", "(( // c", []entities.CommentSpan{{Start: 3, End: 7}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New().FindCommentSpans(tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("spans mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIsKeyword(t *testing.T) {
	l := New()
	for _, kw := range []string{"actor", "func", "let", "switch", "await*"} {
		assert.True(t, bool(l.IsKeyword(kw)), kw)
	}
	for _, word := range []string{"", "Actor", "foo", "let ", "lets"} {
		assert.False(t, bool(l.IsKeyword(word)), word)
	}
}
