package hostfuncs

import (
	"bytes"
	"fmt"
	"io"
)

// DefaultMaxRequestSize limits a single guest payload and a single source
// text handed to the guest (16MB).
const DefaultMaxRequestSize = 16 * 1024 * 1024

// BoundedBuffer is an io.Writer that keeps at most limit bytes and
// silently drops the rest, recording that it did so.
type BoundedBuffer struct {
	buffer    bytes.Buffer
	limit     int
	Truncated bool
}

// NewBoundedBuffer creates a BoundedBuffer with the specified limit.
func NewBoundedBuffer(limit int) *BoundedBuffer {
	return &BoundedBuffer{limit: limit}
}

// Write always reports len(p) so that io.Copy keeps going.
func (b *BoundedBuffer) Write(p []byte) (int, error) {
	remaining := b.limit - b.buffer.Len()
	if remaining <= 0 {
		if len(p) > 0 {
			b.Truncated = true
		}
		return len(p), nil
	}
	if len(p) > remaining {
		b.Truncated = true
		b.buffer.Write(p[:remaining])
		return len(p), nil
	}
	return b.buffer.Write(p)
}

func (b *BoundedBuffer) Bytes() []byte { return b.buffer.Bytes() }

func (b *BoundedBuffer) Len() int { return b.buffer.Len() }

// SizeError reports a payload over the configured limit.
type SizeError struct {
	Limit int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("payload exceeds the %d byte limit", e.Limit)
}

// ReadAllLimited reads r to EOF, failing with *SizeError when it holds
// more than limit bytes.
func ReadAllLimited(r io.Reader, limit int) ([]byte, error) {
	buf := NewBoundedBuffer(limit)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, err
	}
	if buf.Truncated {
		return nil, &SizeError{Limit: limit}
	}
	return buf.Bytes(), nil
}
