package boundary

import (
	"fmt"
	"log/slog"

	"github.com/motoko-tools/ttlex/domain/entities"
	"github.com/motoko-tools/ttlex/domain/errors"
	"github.com/motoko-tools/ttlex/domain/ports"
	"github.com/motoko-tools/ttlex/infrastructure/codec"
	"github.com/motoko-tools/ttlex/wireformat"
)

// Boundary exposes the three lexer operations to a host.
type Boundary struct {
	lexer  ports.Lexer
	codec  ports.Codec
	logger *slog.Logger
}

// Option configures a Boundary.
type Option func(*Boundary)

// WithCodec sets the codec used by Encode and Invoke. Defaults to JSON.
func WithCodec(c ports.Codec) Option {
	return func(b *Boundary) {
		if c != nil {
			b.codec = c
		}
	}
}

// WithLogger sets the logger for rejected inputs and contained panics.
func WithLogger(l *slog.Logger) Option {
	return func(b *Boundary) {
		if l != nil {
			b.logger = l
		}
	}
}

// New creates a Boundary around lexer.
func New(lexer ports.Lexer, opts ...Option) *Boundary {
	if lexer == nil {
		panic("boundary: nil lexer")
	}
	b := &Boundary{
		lexer:  lexer,
		codec:  codec.JSON{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Codec returns the codec responses are encoded with.
func (b *Boundary) Codec() ports.Codec {
	return b.codec
}

// ParseTokenTree returns the serialized token tree of input. Any lexer
// failure is reported as errors.MsgInputRejected.
func (b *Boundary) ParseTokenTree(input string) (wireformat.Value, error) {
	return Guard(func() (wireformat.Value, error) {
		tree, err := b.lexer.CreateTokenTree(input)
		if err != nil {
			b.logger.Debug("boundary: input rejected", "error", err, "size", len(input))
			return wireformat.Value{}, errors.InputRejected(err)
		}
		return serialize(tree)
	})
}

// FindComments returns the comment spans of input as [start, end] pairs,
// in the order the lexer reports them.
func (b *Boundary) FindComments(input string) (wireformat.Value, error) {
	return Guard(func() (wireformat.Value, error) {
		spans := b.lexer.FindCommentSpans(input)
		v, err := wireformat.SeqOf(spans, spanPair)
		if err != nil {
			return wireformat.Value{}, errors.SerializationFailed(err)
		}
		return v, nil
	})
}

// IsKeyword returns the lexer's classification of identifier.
func (b *Boundary) IsKeyword(identifier string) (wireformat.Value, error) {
	return Guard(func() (wireformat.Value, error) {
		return serialize(b.lexer.IsKeyword(identifier))
	})
}

// spanPair keeps only the two offsets of a span.
func spanPair(s entities.CommentSpan) (wireformat.Value, error) {
	start, err := wireformat.Int(s.Start)
	if err != nil {
		return wireformat.Value{}, fmt.Errorf("start: %w", err)
	}
	end, err := wireformat.Int(s.End)
	if err != nil {
		return wireformat.Value{}, fmt.Errorf("end: %w", err)
	}
	return wireformat.Seq(start, end), nil
}
