//go:build wasip1

package guest

import (
	"log/slog"

	"github.com/motoko-tools/ttlex/application/boundary"
	"github.com/motoko-tools/ttlex/domain/errors"
	"github.com/motoko-tools/ttlex/internal/abi"
	"github.com/motoko-tools/ttlex/wireformat"
)

func init() {
	Setup()
}

// Main does nothing for the reactor build; the host drives the exports.
func Main() {}

//go:wasmexport parse_token_tree
func parseTokenTree(ptr, length uint32) uint64 {
	return handleExportedCall(boundary.OpParseTokenTree, ptr, length)
}

//go:wasmexport find_comments
func findComments(ptr, length uint32) uint64 {
	return handleExportedCall(boundary.OpFindComments, ptr, length)
}

//go:wasmexport is_keyword
func isKeyword(ptr, length uint32) uint64 {
	return handleExportedCall(boundary.OpIsKeyword, ptr, length)
}

// handleExportedCall copies the input out of guest memory, runs op and
// returns the envelope in pinned memory the host releases with deallocate.
// A fault outside the boundary's own guard releases every tracked buffer
// and still answers with an error envelope.
func handleExportedCall(op boundary.Operation, ptr, length uint32) (packed uint64) {
	defer func() {
		if r := recover(); r != nil {
			abi.FreeAllTracked()
			slog.Error("export fault", slog.String("operation", string(op)), slog.Any("panic", r))
			packed = abi.PtrFromBytes(faultEnvelope(r))
		}
	}()

	var input []byte
	if length > 0 {
		input = abi.BytesFromPtr(abi.PackPtrLen(ptr, length))
	}
	return abi.PtrFromBytes(Handle(op, input))
}

func faultEnvelope(r any) []byte {
	return Setup().Encode(func() (wireformat.Value, error) {
		return wireformat.Value{}, errors.PanicRecovered(r)
	})
}
