package boundary

import (
	"encoding/binary"
	"fmt"
	"sync"
)

// testHeap is an in-memory Heap[uint32] that records every call.
type testHeap struct {
	mu      sync.Mutex
	blocks  map[uint32][]byte
	next    uint32
	allocs  int
	frees   []uint32
	invalid []uint32
	fail    bool
}

func newTestHeap() *testHeap {
	return &testHeap{blocks: make(map[uint32][]byte), next: 16}
}

func (h *testHeap) Alloc(size uint32) (uint32, []byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.fail {
		return 0, nil, fmt.Errorf("heap exhausted")
	}
	ptr := h.next
	h.next += (size + 7) &^ 7
	if size == 0 {
		h.next += 8
	}
	data := make([]byte, size)
	h.blocks[ptr] = data
	h.allocs++
	return ptr, data, nil
}

func (h *testHeap) Free(ptr uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.blocks[ptr]; !ok {
		h.invalid = append(h.invalid, ptr)
		return
	}
	delete(h.blocks, ptr)
	h.frees = append(h.frees, ptr)
}

func (h *testHeap) ByteOrder() binary.ByteOrder {
	return binary.LittleEndian
}

func (h *testHeap) live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.blocks)
}
