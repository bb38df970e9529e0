//go:build cgo

package cabi

/*
#include <stdlib.h>
*/
import "C"

import (
	"encoding/binary"
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/ffi-primitives/boundary"
	"github.com/wippyai/ffi-primitives/errors"
	"github.com/wippyai/ffi-primitives/internal/config"
)

// cHeap allocates with the C allocator so callers can hold results after
// the Go side has returned.
type cHeap struct{}

func (cHeap) Alloc(size uint32) (unsafe.Pointer, []byte, error) {
	if size == 0 {
		size = 1
	}
	p := C.malloc(C.size_t(size))
	if p == nil {
		return nil, nil, errors.AllocationFailed(errors.PhaseAllocate, size)
	}
	return p, unsafe.Slice((*byte)(p), size), nil
}

func (cHeap) Free(p unsafe.Pointer) {
	C.free(p)
}

func (cHeap) ByteOrder() binary.ByteOrder {
	return binary.NativeEndian
}

var (
	heapMu sync.RWMutex
	heap   boundary.Heap[unsafe.Pointer] = cHeap{}
	ledger *boundary.Ledger[unsafe.Pointer]
)

func currentHeap() boundary.Heap[unsafe.Pointer] {
	heapMu.RLock()
	defer heapMu.RUnlock()
	return heap
}

// Configure applies cfg to the library. It must run before any buffer is
// handed out: switching strict mode on afterwards makes earlier buffers
// look unknown.
func Configure(cfg config.Config) {
	heapMu.Lock()
	defer heapMu.Unlock()

	if !cfg.Strict {
		heap = cHeap{}
		ledger = nil
		return
	}
	ledger = boundary.NewLedger[unsafe.Pointer]()
	heap = boundary.Guard[unsafe.Pointer](cHeap{}, ledger, func(err error) {
		Logger().Warn("ownership violation ignored", zap.Error(err))
	})
}

// Outstanding returns the number of owned buffers handed out and not yet
// released. It is always 0 outside strict mode.
func Outstanding() int {
	heapMu.RLock()
	defer heapMu.RUnlock()
	if ledger == nil {
		return 0
	}
	return ledger.Outstanding()
}
