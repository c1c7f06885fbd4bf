package wazero

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"
)

// Guest memory exports.
const (
	ExportAllocate   = "allocate"
	ExportDeallocate = "deallocate"
)

// PackPtrLen packs a pointer and length into a single i64.
// Upper 32 bits: pointer, lower 32 bits: length.
func PackPtrLen(ptr, length uint32) uint64 {
	return (uint64(ptr) << 32) | uint64(length)
}

// UnpackPtrLen unpacks a pointer and length from a packed i64.
func UnpackPtrLen(packed uint64) (ptr, length uint32) {
	ptr = uint32(packed >> 32)           //nolint:gosec // G115: Packed format stores 32-bit values
	length = uint32(packed & 0xFFFFFFFF) //nolint:gosec // G115: Packed format stores 32-bit values
	return ptr, length
}

// CallPacked calls a guest export with the (ptr, len) -> packed
// convention. input is copied into guest memory, the result is copied out,
// and both guest buffers are released.
func CallPacked(ctx context.Context, mod api.Module, export string, input []byte) ([]byte, error) {
	fn := mod.ExportedFunction(export)
	if fn == nil {
		return nil, fmt.Errorf("guest does not export %q", export)
	}

	var inPtr uint32
	if len(input) > 0 {
		ptr, err := writeGuest(ctx, mod, input)
		if err != nil {
			return nil, err
		}
		inPtr = ptr
		defer deallocate(ctx, mod, inPtr, uint32(len(input))) //nolint:gosec // G115: bounded by caller
	}

	results, err := fn.Call(ctx, uint64(inPtr), uint64(len(input)))
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", export, err)
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("call %s: expected 1 result, got %d", export, len(results))
	}

	outPtr, outLen := UnpackPtrLen(results[0])
	if outLen == 0 {
		return nil, fmt.Errorf("call %s: empty result", export)
	}
	defer deallocate(ctx, mod, outPtr, outLen)

	view, ok := mod.Memory().Read(outPtr, outLen)
	if !ok {
		return nil, fmt.Errorf("call %s: result [%d, %d) is outside guest memory", export, outPtr, outPtr+outLen)
	}
	return append([]byte(nil), view...), nil
}

// writeGuest copies data into memory returned by the guest's allocate export.
func writeGuest(ctx context.Context, mod api.Module, data []byte) (uint32, error) {
	allocate := mod.ExportedFunction(ExportAllocate)
	if allocate == nil {
		return 0, fmt.Errorf("guest does not export %q", ExportAllocate)
	}
	results, err := allocate.Call(ctx, uint64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("allocate %d bytes: %w", len(data), err)
	}
	ptr := uint32(results[0]) //nolint:gosec // G115: WASM32 pointers are always 32-bit
	if !mod.Memory().Write(ptr, data) {
		return 0, fmt.Errorf("write %d bytes at %d: outside guest memory", len(data), ptr)
	}
	return ptr, nil
}

func deallocate(ctx context.Context, mod api.Module, ptr, length uint32) {
	if fn := mod.ExportedFunction(ExportDeallocate); fn != nil {
		_, _ = fn.Call(ctx, uint64(ptr), uint64(length))
	}
}
