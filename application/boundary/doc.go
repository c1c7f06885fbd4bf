// Package boundary is the marshalling adapter between a host runtime and
// the lexer.
//
// Each operation takes host text, makes exactly one lexer call, and returns
// either a wireformat.Value the host can represent or a
// *errors.BoundaryError. Every call runs under Guard, so a panic in the
// lexer or in serialization becomes an error value instead of a crash.
// Transports (the WASI exports, the JavaScript bindings, the in-process
// host) use Invoke, which also produces the encoded response envelope.
//
// A Boundary holds no mutable state; it is safe for concurrent use when
// its lexer is.
package boundary
