// Package guest wires the boundary into the WebAssembly transports.
//
// Under wasip1 the operations are exported as parse_token_tree,
// find_comments and is_keyword taking (ptr, len) and returning a packed
// pointer to the encoded envelope. Under js/wasm they are registered on a
// global ttlex object. Both share the boundary built by Setup.
package guest

import (
	"log/slog"
	"sync"

	"github.com/motoko-tools/ttlex/application/boundary"
	"github.com/motoko-tools/ttlex/infrastructure/motoko"
	"github.com/motoko-tools/ttlex/internal/panichook"
	ttlexlog "github.com/motoko-tools/ttlex/log"
)

// GlobalName is the JS global the operations are registered on.
const GlobalName = "ttlex"

var (
	setupOnce sync.Once
	shared    *boundary.Boundary
)

// Setup installs the panic hook and the guest log handler, then returns the
// boundary every export calls. Repeated calls return the same boundary.
func Setup(opts ...ttlexlog.HandlerOption) *boundary.Boundary {
	setupOnce.Do(func() {
		logger := ttlexlog.Install(opts...)
		panichook.Install(nil)
		shared = boundary.New(motoko.New(), boundary.WithLogger(logger))
		logger.Debug("guest ready", slog.Int("operations", len(boundary.Operations)))
	})
	return shared
}

// Handle runs op on the host's input bytes and returns the encoded envelope.
func Handle(op boundary.Operation, input []byte) []byte {
	return Setup().Invoke(op, input)
}
