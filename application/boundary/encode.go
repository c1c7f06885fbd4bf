package boundary

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"unicode/utf8"

	"github.com/motoko-tools/ttlex/domain/entities"
	"github.com/motoko-tools/ttlex/domain/errors"
	"github.com/motoko-tools/ttlex/domain/ports"
	"github.com/motoko-tools/ttlex/wireformat"
)

// Operation names an exported boundary operation.
type Operation string

const (
	OpParseTokenTree Operation = "parse_token_tree"
	OpFindComments   Operation = "find_comments"
	OpIsKeyword      Operation = "is_keyword"
)

// Operations lists every exported operation.
var Operations = []Operation{OpParseTokenTree, OpFindComments, OpIsKeyword}

// ErrInvalidUTF8 is the cause recorded when a transport hands over bytes
// that are not valid text.
var ErrInvalidUTF8 = stdErrors.New("input is not valid UTF-8")

// Call runs the named operation on input.
func (b *Boundary) Call(op Operation, input string) (wireformat.Value, error) {
	switch op {
	case OpParseTokenTree:
		return b.ParseTokenTree(input)
	case OpFindComments:
		return b.FindComments(input)
	case OpIsKeyword:
		return b.IsKeyword(input)
	default:
		return wireformat.Value{}, errors.AsBoundary(fmt.Errorf("unknown operation %q", op))
	}
}

// Invoke is the byte-level entry point used by transports: input is the
// host's UTF-8 text and the result is the encoded response envelope.
func (b *Boundary) Invoke(op Operation, input []byte) []byte {
	return b.Encode(func() (wireformat.Value, error) {
		if !utf8.Valid(input) {
			return wireformat.Value{}, errors.InputRejected(ErrInvalidUTF8)
		}
		return b.Call(op, string(input))
	})
}

// Encode runs op under Guard and encodes {"value": ...} or
// {"error": {"message": ...}} with the configured codec. When the success
// envelope cannot be encoded, the codec failure is reported in its place.
func (b *Boundary) Encode(op func() (wireformat.Value, error)) []byte {
	v, err := Guard(op)
	if err != nil {
		return b.encodeFailure(errors.ToErrorDetail(err))
	}

	data, encErr := b.encodeResponse(entities.Success(v))
	if encErr != nil {
		return b.encodeFailure(errors.SerializationFailed(encErr).ToErrorDetail())
	}
	return data
}

func (b *Boundary) encodeResponse(resp entities.Response) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("codec %s panicked: %v", b.codec.Name(), r)
		}
	}()
	v, err := resp.MarshalValue()
	if err != nil {
		return nil, err
	}
	return b.codec.Encode(v)
}

func (b *Boundary) encodeFailure(detail *entities.ErrorDetail) []byte {
	data, err := b.encodeResponse(entities.Failure(detail))
	if err == nil {
		return data
	}
	b.logger.Error("boundary: cannot encode error response", "codec", b.codec.Name(), "error", err)
	// Last resort: a JSON envelope the host can still read.
	msg, _ := json.Marshal(detail.Message)
	return []byte(`{"error":{"message":` + string(msg) + `}}`)
}

// Decode splits an encoded envelope back into its value or error. Hosts
// written in Go use it to read Invoke results.
func Decode(c ports.Codec, data []byte) (wireformat.Value, error) {
	env, err := c.Decode(data)
	if err != nil {
		return wireformat.Value{}, errors.SerializationFailed(err)
	}
	if e, ok := env.Get("error"); ok {
		msg, _ := e.Get("message")
		return wireformat.Value{}, decodedError(msg.AsString())
	}
	v, ok := env.Get("value")
	if !ok {
		return wireformat.Value{}, errors.SerializationFailed(stdErrors.New("envelope has neither value nor error"))
	}
	return v, nil
}

// decodedError rebuilds the boundary error a guest reported. Only the
// message crosses the boundary, so the kind is inferred from it.
func decodedError(msg string) *errors.BoundaryError {
	kind := errors.KindInternal
	if msg == errors.MsgInputRejected {
		kind = errors.KindInputRejected
	}
	return &errors.BoundaryError{Kind: kind, Message: msg, Err: entities.NewErrorDetail(msg)}
}
