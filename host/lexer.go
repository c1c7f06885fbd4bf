package host

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/motoko-tools/ttlex/application/boundary"
	"github.com/motoko-tools/ttlex/domain/entities"
	"github.com/motoko-tools/ttlex/infrastructure/motoko"
	"github.com/motoko-tools/ttlex/wireformat"
)

// Lexer is the host's view of the three boundary operations.
type Lexer interface {
	Invoke(ctx context.Context, op boundary.Operation, src string) (wireformat.Value, error)
	ParseTokenTree(ctx context.Context, src string) (json.RawMessage, error)
	FindComments(ctx context.Context, src string) ([]entities.CommentSpan, error)
	IsKeyword(ctx context.Context, word string) (bool, error)
	Close(ctx context.Context) error
}

var _ Lexer = (*Native)(nil)

// Native runs the boundary in process. Calls still go through the encoded
// envelope, so results match the guest byte for byte. It is safe for
// concurrent use.
type Native struct {
	b *boundary.Boundary
}

// NewNative creates a Native backed by the Motoko lexer.
func NewNative(opts ...boundary.Option) *Native {
	return &Native{b: boundary.New(motoko.New(), opts...)}
}

// Invoke runs op and decodes the envelope.
func (n *Native) Invoke(_ context.Context, op boundary.Operation, src string) (wireformat.Value, error) {
	return boundary.Decode(n.b.Codec(), n.b.Invoke(op, []byte(src)))
}

func (n *Native) ParseTokenTree(ctx context.Context, src string) (json.RawMessage, error) {
	v, err := n.Invoke(ctx, boundary.OpParseTokenTree, src)
	if err != nil {
		return nil, err
	}
	return v.MarshalJSON()
}

func (n *Native) FindComments(ctx context.Context, src string) ([]entities.CommentSpan, error) {
	v, err := n.Invoke(ctx, boundary.OpFindComments, src)
	if err != nil {
		return nil, err
	}
	return commentSpans(v)
}

func (n *Native) IsKeyword(ctx context.Context, word string) (bool, error) {
	v, err := n.Invoke(ctx, boundary.OpIsKeyword, word)
	if err != nil {
		return false, err
	}
	return keyword(v)
}

func (n *Native) Close(context.Context) error { return nil }

func commentSpans(v wireformat.Value) ([]entities.CommentSpan, error) {
	if v.Kind() != wireformat.KindSeq {
		return nil, fmt.Errorf("find_comments: expected a sequence, got %s", v.Kind())
	}
	spans := make([]entities.CommentSpan, 0, v.Len())
	for idx, pair := range v.Items() {
		if pair.Kind() != wireformat.KindSeq || pair.Len() != 2 ||
			pair.Index(0).Kind() != wireformat.KindInt || pair.Index(1).Kind() != wireformat.KindInt {
			return nil, fmt.Errorf("find_comments: span %d is not an integer pair", idx)
		}
		spans = append(spans, entities.CommentSpan{
			Start: int(pair.Index(0).AsInt()),
			End:   int(pair.Index(1).AsInt()),
		})
	}
	return spans, nil
}

func keyword(v wireformat.Value) (bool, error) {
	if v.Kind() != wireformat.KindBool {
		return false, fmt.Errorf("is_keyword: expected a boolean, got %s", v.Kind())
	}
	return v.AsBool(), nil
}
