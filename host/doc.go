// Package host runs the ttlex guest from Go.
//
// An Executor owns a wazero runtime with WASI and the ttlex_host import
// module. Each Instance is one instantiation of the guest; instances are
// not safe for concurrent use, so concurrent callers load one per worker.
// Native implements the same Lexer interface in process, without WASM.
package host
