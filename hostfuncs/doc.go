// Package hostfuncs implements the functions a host exposes to the ttlex
// guest in the ttlex_host import module. The implementations are pure Go
// with no WASM runtime dependency; infrastructure/wazero binds them to a
// runtime.
package hostfuncs
