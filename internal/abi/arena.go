package abi

import (
	"fmt"
	"sync"
)

// DefaultMaxTotalAllocations caps the guest memory pinned for the host at
// any one time.
const DefaultMaxTotalAllocations = 100 * 1024 * 1024 // 100 MB

// LimitError is returned when an allocation would exceed the arena limit.
type LimitError struct {
	Requested int
	Current   int
	Limit     int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("abi: memory allocation limit exceeded (requested: %d bytes, current: %d bytes, limit: %d bytes)",
		e.Requested, e.Current, e.Limit)
}

// Arena pins buffers handed to the host so the Go GC keeps them alive
// until the host calls deallocate. It is safe for concurrent use.
type Arena struct {
	mu     sync.Mutex
	pinned map[uint32][]byte // ptr -> slice reference
	total  int
	limit  int
	addr   func([]byte) uint32
}

// ArenaOption configures an Arena.
type ArenaOption func(*Arena)

// WithMaxTotalAllocations sets the arena limit. Non-positive values are ignored.
func WithMaxTotalAllocations(n int) ArenaOption {
	return func(a *Arena) {
		if n > 0 {
			a.limit = n
		}
	}
}

// NewArena creates an arena. addr maps a buffer to its linear-memory
// address; on wasip1 this is the buffer's real pointer.
func NewArena(addr func([]byte) uint32, opts ...ArenaOption) *Arena {
	a := &Arena{
		pinned: make(map[uint32][]byte),
		limit:  DefaultMaxTotalAllocations,
		addr:   addr,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Alloc reserves size bytes and pins them. Alloc(0) returns 0.
func (a *Arena) Alloc(size uint32) (uint32, error) {
	if size == 0 {
		return 0, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.total+int(size) > a.limit {
		return 0, &LimitError{Requested: int(size), Current: a.total, Limit: a.limit}
	}

	buf := make([]byte, size)
	ptr := a.addr(buf)
	a.pinned[ptr] = buf
	a.total += int(size)
	return ptr, nil
}

// Free unpins ptr. Accounting uses the stored length, not the caller's
// size, and unknown pointers are ignored.
func (a *Arena) Free(ptr uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	buf, ok := a.pinned[ptr]
	if !ok {
		return
	}
	delete(a.pinned, ptr)
	a.total -= len(buf)
}

// FreeAll unpins everything. Called after a contained panic.
func (a *Arena) FreeAll() {
	a.mu.Lock()
	defer a.mu.Unlock()

	clear(a.pinned)
	a.total = 0
}

// Buffer returns the pinned buffer at ptr.
func (a *Arena) Buffer(ptr uint32) ([]byte, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	buf, ok := a.pinned[ptr]
	return buf, ok
}

// Stats reports the number of pinned buffers and their total size.
func (a *Arena) Stats() (count, bytes int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.pinned), a.total
}
