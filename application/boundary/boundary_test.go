package boundary

import (
	"bytes"
	stdErrors "errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motoko-tools/ttlex/domain/entities"
	"github.com/motoko-tools/ttlex/domain/errors"
	"github.com/motoko-tools/ttlex/infrastructure/codec"
	"github.com/motoko-tools/ttlex/infrastructure/motoko"
	"github.com/motoko-tools/ttlex/internal/lexertest"
	"github.com/motoko-tools/ttlex/wireformat"
)

func TestFindComments_HashScenario(t *testing.T) {
	src := "a = 1 # note"
	b := New(&lexertest.Stub{})

	v, err := b.FindComments(src)
	require.NoError(t, err)
	require.Equal(t, 1, v.Len())

	pair := v.Index(0)
	require.Equal(t, 2, pair.Len())
	start, end := int(pair.Index(0).AsInt()), int(pair.Index(1).AsInt())
	assert.Equal(t, "# note", src[start:end])

	lexertest.AssertValue(t, b.Invoke(OpFindComments, []byte(src)), `[[6, 12]]`)
}

func TestFindComments_OrderedAndWellFormed(t *testing.T) {
	b := New(motoko.New())
	inputs := []string{
		"",
		"// a\n/* b /* c */ */ x // d",
		"/* open",
		`"// not" /* yes */ '/'`,
		"*/ // stray close",
	}
	for _, src := range inputs {
		v, err := b.FindComments(src)
		require.NoError(t, err, src)

		prev := int64(-1)
		for _, pair := range v.Items() {
			start, end := pair.Index(0).AsInt(), pair.Index(1).AsInt()
			assert.LessOrEqual(t, prev, start, src)
			assert.LessOrEqual(t, start, end, src)
			prev = start
		}
	}
}

func TestFindComments_OrderFromLexer(t *testing.T) {
	stub := &lexertest.Stub{Comments: func(string) []entities.CommentSpan {
		return []entities.CommentSpan{{Start: 5, End: 9}, {Start: 1, End: 2}}
	}}
	lexertest.AssertValue(t, New(stub).Invoke(OpFindComments, []byte("x")), `[[5, 9], [1, 2]]`)
}

func TestFindComments_UnrepresentableOffset(t *testing.T) {
	stub := &lexertest.Stub{Comments: func(string) []entities.CommentSpan {
		return []entities.CommentSpan{{Start: 0, End: math.MaxInt64}}
	}}

	_, err := New(stub).FindComments("x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Serialization error (")
	assert.Contains(t, err.Error(), "index 0")

	var rangeErr *wireformat.RangeError
	assert.True(t, stdErrors.As(err, &rangeErr))
}

func TestIsKeyword(t *testing.T) {
	b := New(motoko.New())

	lexertest.AssertValue(t, b.Invoke(OpIsKeyword, []byte("if")), `true`)
	lexertest.AssertValue(t, b.Invoke(OpIsKeyword, []byte("my_var")), `false`)

	for _, word := range []string{"if", "my_var", "", "\x00", "🙂"} {
		first := b.Invoke(OpIsKeyword, []byte(word))
		second := b.Invoke(OpIsKeyword, []byte(word))
		assert.Equal(t, first, second, word)
	}
}

func TestParseTokenTree_Empty(t *testing.T) {
	b := New(motoko.New())
	lexertest.AssertValue(t, b.Invoke(OpParseTokenTree, nil),
		`{"token_tree_type":"Group","data":[[],"Unenclosed",null]}`)
}

func TestParseTokenTree_Rejected(t *testing.T) {
	b := New(motoko.New())
	for _, src := range []string{"(]", `"abc`, "f(x", "/* open", "a)"} {
		t.Run(src, func(t *testing.T) {
			_, err := b.ParseTokenTree(src)
			require.Error(t, err)
			assert.Equal(t, "Unable to parse input string", err.Error())
			assert.True(t, errors.IsInputRejected(err))

			var lexErr *motoko.LexError
			assert.True(t, stdErrors.As(err, &lexErr), "lexer detail stays in the unwrap chain")

			lexertest.AssertError(t, b.Invoke(OpParseTokenTree, []byte(src)), "Unable to parse input string")
		})
	}
}

func TestParseTokenTree_Idempotent(t *testing.T) {
	src := "actor A {\n  public func f(x : Nat) : Nat { x + 1 }; // inc\n}\n"
	for _, name := range codec.Names() {
		t.Run(name, func(t *testing.T) {
			c, err := codec.ByName(name)
			require.NoError(t, err)
			b := New(motoko.New(), WithCodec(c))

			first := b.Invoke(OpParseTokenTree, []byte(src))
			second := b.Invoke(OpParseTokenTree, []byte(src))
			assert.True(t, bytes.Equal(first, second))

			v, err := Decode(c, first)
			require.NoError(t, err)
			assert.Equal(t, wireformat.KindMap, v.Kind())
		})
	}
}

func TestParseTokenTree_RoundTripShape(t *testing.T) {
	b := New(motoko.New())
	want, err := b.ParseTokenTree("let x = [1, 2];")
	require.NoError(t, err)

	got, err := Decode(b.Codec(), b.Invoke(OpParseTokenTree, []byte("let x = [1, 2];")))
	require.NoError(t, err)
	assert.True(t, wireformat.Equal(want, got))
	assert.Equal(t, []string{"token_tree_type", "data"}, got.Keys())
}

func TestInvoke_InvalidUTF8(t *testing.T) {
	b := New(motoko.New())
	lexertest.AssertError(t, b.Invoke(OpParseTokenTree, []byte{'a', 0xff}), errors.MsgInputRejected)
}

func TestInvoke_UnknownOperation(t *testing.T) {
	b := New(motoko.New())
	lexertest.AssertError(t, b.Invoke("tokenize", []byte("x")), `unknown operation "tokenize"`)
}

func TestGuard_ContainsPanic(t *testing.T) {
	stub := &lexertest.Stub{Tree: func(string) (entities.TokenTree, error) {
		panic("lexer exploded")
	}}
	b := New(stub)

	_, err := b.ParseTokenTree("x")
	require.Error(t, err)
	assert.Equal(t, "Unexpected panic (lexer exploded)", err.Error())

	var pe *errors.PanicError
	require.True(t, stdErrors.As(err, &pe))
	assert.NotEmpty(t, pe.Stack)

	lexertest.AssertError(t, b.Invoke(OpParseTokenTree, []byte("x")), "Unexpected panic (lexer exploded)")
}

func TestGuard_TranslatesForeignErrors(t *testing.T) {
	_, err := Guard(func() (wireformat.Value, error) {
		return wireformat.Value{}, stdErrors.New("disk on fire")
	})
	var be *errors.BoundaryError
	require.True(t, stdErrors.As(err, &be))
	assert.Equal(t, errors.KindInternal, be.Kind)
}

func TestEncode_SerializationFailure(t *testing.T) {
	stub := &lexertest.Stub{Tree: func(string) (entities.TokenTree, error) {
		return entities.NewLeaf(entities.Loc{Token: entities.Token{Text: "untyped"}}), nil
	}}
	data := New(stub).Invoke(OpParseTokenTree, []byte("x"))

	env := lexertest.DecodeEnvelope(t, data)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, "Serialization error (")
	assert.Contains(t, env.Error.Message, "untyped")
}

type failingCodec struct{ codec.JSON }

func (failingCodec) Encode(v wireformat.Value) ([]byte, error) {
	if _, ok := v.Get("value"); ok {
		return nil, stdErrors.New("buffer full")
	}
	return codec.JSON{}.Encode(v)
}

func TestEncode_CodecFailure(t *testing.T) {
	b := New(motoko.New(), WithCodec(failingCodec{}))
	lexertest.AssertError(t, b.Invoke(OpIsKeyword, []byte("if")), "Serialization error (buffer full)")
}

func TestBoundary_ConcurrentCalls(t *testing.T) {
	b := New(motoko.New())
	src := []byte("module { public let x = 1 }")
	want := b.Invoke(OpParseTokenTree, src)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, b.Invoke(OpParseTokenTree, src))
		}()
	}
	wg.Wait()
}

func TestNew_NilLexerPanics(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}
