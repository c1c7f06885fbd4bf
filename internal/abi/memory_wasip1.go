//go:build wasip1

package abi

import (
	"unsafe"
)

var memory = NewArena(func(buf []byte) uint32 {
	//nolint:gosec // G103: linear memory addresses fit in 32 bits on wasm
	return uint32(uintptr(unsafe.Pointer(&buf[0])))
})

// allocate reserves memory the host writes call input into.
// Exceeding the arena limit traps the call.
//
//go:wasmexport allocate
func allocate(size uint32) uint32 {
	ptr, err := memory.Alloc(size)
	if err != nil {
		panic(err)
	}
	return ptr
}

// deallocate releases memory the host has finished reading.
//
//go:wasmexport deallocate
func deallocate(ptr uint32, _ uint32) {
	memory.Free(ptr)
}

// FreeAllTracked releases every pinned buffer.
func FreeAllTracked() {
	memory.FreeAll()
}

// Stats reports the guest's pinned allocations.
func Stats() (count, bytes int) {
	return memory.Stats()
}

// PtrFromBytes copies data into pinned memory and returns it packed.
// The host frees it with deallocate.
func PtrFromBytes(data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}
	size := uint32(len(data)) //nolint:gosec // bounded by the arena limit
	ptr := allocate(size)
	copyToMemory(ptr, data)
	return PackPtrLen(ptr, size)
}

// BytesFromPtr copies the packed region out of linear memory.
func BytesFromPtr(packed uint64) []byte {
	ptr, length := UnpackPtrLen(packed)
	if ptr == 0 || length == 0 {
		return nil
	}
	return readFromMemory(ptr, length)
}

// DeallocatePacked frees a packed region allocated by this guest.
func DeallocatePacked(packed uint64) {
	ptr, length := UnpackPtrLen(packed)
	if ptr != 0 && length > 0 {
		deallocate(ptr, length)
	}
}

func copyToMemory(ptr uint32, data []byte) {
	//nolint:gosec // G103: Valid unsafe.Pointer use for WASM linear memory access
	dest := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), len(data))
	copy(dest, data)
}

func readFromMemory(ptr uint32, length uint32) []byte {
	//nolint:gosec // G103: Valid unsafe.Pointer use for WASM linear memory access
	src := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), length)
	data := make([]byte, length)
	copy(data, src)
	return data
}
