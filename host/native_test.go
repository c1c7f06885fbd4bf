package host

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motoko-tools/ttlex/application/boundary"
	"github.com/motoko-tools/ttlex/domain/entities"
	"github.com/motoko-tools/ttlex/domain/errors"
	"github.com/motoko-tools/ttlex/infrastructure/codec"
)

func TestNative_ParseTokenTree(t *testing.T) {
	n := NewNative()
	defer n.Close(context.Background())

	raw, err := n.ParseTokenTree(context.Background(), "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"token_tree_type":"Group","data":[[],"Unenclosed",null]}`, string(raw))

	raw, err = n.ParseTokenTree(context.Background(), "let x = (1, 2);")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"token_tree_type":"Group"`)
	assert.Contains(t, string(raw), `"Paren"`)
}

func TestNative_ParseTokenTree_Rejected(t *testing.T) {
	n := NewNative()

	_, err := n.ParseTokenTree(context.Background(), "f(x")
	require.Error(t, err)
	assert.True(t, errors.IsInputRejected(err))
	assert.Equal(t, errors.MsgInputRejected, err.Error())
}

func TestNative_FindComments(t *testing.T) {
	n := NewNative()

	spans, err := n.FindComments(context.Background(), "x // hi\ny /* a /* b */ */ \"// no\"")
	require.NoError(t, err)
	want := []entities.CommentSpan{{Start: 2, End: 7}, {Start: 10, End: 25}}
	if diff := cmp.Diff(want, spans); diff != "" {
		t.Errorf("FindComments() mismatch (-want +got):\n%s", diff)
	}

	spans, err = n.FindComments(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestNative_IsKeyword(t *testing.T) {
	n := NewNative()
	ctx := context.Background()

	for word, want := range map[string]bool{"if": true, "actor": true, "my_var": false, "": false} {
		got, err := n.IsKeyword(ctx, word)
		require.NoError(t, err)
		assert.Equal(t, want, got, "IsKeyword(%q)", word)
	}
}

func TestNative_Codecs(t *testing.T) {
	cbor, err := codec.NewCBOR()
	require.NoError(t, err)

	for _, c := range []boundary.Option{
		boundary.WithCodec(codec.JSON{}),
		boundary.WithCodec(codec.MsgPack{}),
		boundary.WithCodec(cbor),
	} {
		n := NewNative(c)
		spans, err := n.FindComments(context.Background(), "a // b")
		require.NoError(t, err)
		assert.Equal(t, []entities.CommentSpan{{Start: 2, End: 6}}, spans)

		_, err = n.ParseTokenTree(context.Background(), ")")
		assert.True(t, errors.IsInputRejected(err))
	}
}
