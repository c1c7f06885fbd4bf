package host

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tetratelabs/wazero/api"

	"github.com/motoko-tools/ttlex/application/boundary"
	"github.com/motoko-tools/ttlex/domain/entities"
	"github.com/motoko-tools/ttlex/domain/ports"
	"github.com/motoko-tools/ttlex/hostfuncs"
	ttlexwazero "github.com/motoko-tools/ttlex/infrastructure/wazero"
	"github.com/motoko-tools/ttlex/wireformat"
)

var _ Lexer = (*Instance)(nil)

// Instance is one guest instantiation. It is not safe for concurrent use.
type Instance struct {
	module   api.Module
	codec    ports.Codec
	maxInput int
}

// Invoke calls a guest export and decodes its response envelope. Guest
// failures are returned as *errors.BoundaryError carrying the guest's message.
func (i *Instance) Invoke(ctx context.Context, op boundary.Operation, src string) (wireformat.Value, error) {
	if len(src) > i.maxInput {
		return wireformat.Value{}, fmt.Errorf("%s: %w", op, &hostfuncs.SizeError{Limit: i.maxInput})
	}
	data, err := ttlexwazero.CallPacked(ctx, i.module, string(op), []byte(src))
	if err != nil {
		return wireformat.Value{}, err
	}
	return boundary.Decode(i.codec, data)
}

func (i *Instance) ParseTokenTree(ctx context.Context, src string) (json.RawMessage, error) {
	v, err := i.Invoke(ctx, boundary.OpParseTokenTree, src)
	if err != nil {
		return nil, err
	}
	return v.MarshalJSON()
}

func (i *Instance) FindComments(ctx context.Context, src string) ([]entities.CommentSpan, error) {
	v, err := i.Invoke(ctx, boundary.OpFindComments, src)
	if err != nil {
		return nil, err
	}
	return commentSpans(v)
}

func (i *Instance) IsKeyword(ctx context.Context, word string) (bool, error) {
	v, err := i.Invoke(ctx, boundary.OpIsKeyword, word)
	if err != nil {
		return false, err
	}
	return keyword(v)
}

// Close releases the guest instance.
func (i *Instance) Close(ctx context.Context) error {
	return i.module.Close(ctx)
}
