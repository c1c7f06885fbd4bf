package motoko

import (
	"fmt"

	"fortio.org/safecast"
)

// cursor walks the source byte by byte and tracks line/column.
type cursor struct {
	src   string
	off   uint32
	limit uint32
	line  int
	// lineStart is the offset of the first byte of the current line.
	lineStart uint32
}

// mark captures a position to build token locations from.
type mark struct {
	off  uint32
	line int
	col  int
}

func newCursor(src string) (*cursor, error) {
	limit, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return nil, fmt.Errorf("source of %d bytes is too large: %w", len(src), err)
	}
	return &cursor{src: src, limit: limit, line: 1}, nil
}

func (c *cursor) eof() bool {
	return c.off >= c.limit
}

// peek returns the current byte or 0 at EOF.
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.off]
}

// peekAt returns the byte n positions ahead or 0 past EOF.
func (c *cursor) peekAt(n uint32) byte {
	if c.off+n >= c.limit {
		return 0
	}
	return c.src[c.off+n]
}

// bump consumes one byte and returns it.
func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	if b == '\n' {
		c.line++
		c.lineStart = c.off
	}
	return b
}

// eat consumes b if it is the next byte.
func (c *cursor) eat(b byte) bool {
	if c.peek() == b {
		c.bump()
		return true
	}
	return false
}

// eatString consumes s if the input continues with it.
func (c *cursor) eatString(s string) bool {
	if !c.startsWith(s) {
		return false
	}
	for range len(s) {
		c.bump()
	}
	return true
}

func (c *cursor) startsWith(s string) bool {
	end := int(c.off) + len(s)
	return end <= int(c.limit) && c.src[c.off:end] == s
}

func (c *cursor) mark() mark {
	return mark{off: c.off, line: c.line, col: int(c.off - c.lineStart)}
}

// reset moves the cursor back to m.
func (c *cursor) reset(m mark) {
	c.off = m.off
	c.line = m.line
	c.lineStart = m.off - uint32(m.col) //nolint:gosec // col never exceeds off
}

// text returns the source consumed since m.
func (c *cursor) text(m mark) string {
	return c.src[m.off:c.off]
}

// offset returns the current position as an int.
func (c *cursor) offset() int {
	return int(c.off)
}
