// Package entities provides the domain types that cross the lexer boundary:
// the token tree and its tokens, comment spans, keyword classifications and
// the wire envelope. Each type describes itself as a wireformat.Value so
// codecs never need per-type encoders.
package entities
