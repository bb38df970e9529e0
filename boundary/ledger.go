package boundary

import (
	"encoding/binary"
	"sync"

	"github.com/wippyai/ffi-primitives/errors"
)

// Ledger records the owned blocks that are currently live on a heap.
// It is safe for concurrent use.
type Ledger[P comparable] struct {
	mu   sync.Mutex
	live map[P]uint32
}

// NewLedger creates an empty ledger.
func NewLedger[P comparable]() *Ledger[P] {
	return &Ledger[P]{live: make(map[P]uint32)}
}

func (l *Ledger[P]) track(ptr P, size uint32) {
	l.mu.Lock()
	l.live[ptr] = size
	l.mu.Unlock()
}

func (l *Ledger[P]) untrack(ptr P) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.live[ptr]; !ok {
		return false
	}
	delete(l.live, ptr)
	return true
}

// Live reports whether ptr is an outstanding block.
func (l *Ledger[P]) Live(ptr P) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.live[ptr]
	return ok
}

// Outstanding returns the number of blocks allocated and not yet released.
func (l *Ledger[P]) Outstanding() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.live)
}

// OutstandingBytes returns the total size of live blocks.
func (l *Ledger[P]) OutstandingBytes() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var total uint64
	for _, size := range l.live {
		total += uint64(size)
	}
	return total
}

type guarded[P comparable] struct {
	heap        Heap[P]
	ledger      *Ledger[P]
	onViolation func(error)
}

// Guard wraps h so every allocation is recorded in l. Freeing a pointer
// that l does not hold (never allocated here, or already freed) is reported
// to onViolation and never reaches h.
func Guard[P comparable](h Heap[P], l *Ledger[P], onViolation func(error)) Heap[P] {
	return &guarded[P]{heap: h, ledger: l, onViolation: onViolation}
}

func (g *guarded[P]) Alloc(size uint32) (P, []byte, error) {
	ptr, data, err := g.heap.Alloc(size)
	var zero P
	if err == nil && ptr != zero {
		g.ledger.track(ptr, size)
	}
	return ptr, data, err
}

func (g *guarded[P]) Free(ptr P) {
	if !g.ledger.untrack(ptr) {
		if g.onViolation != nil {
			g.onViolation(errors.UnknownBuffer("free", ptr))
		}
		return
	}
	g.heap.Free(ptr)
}

func (g *guarded[P]) ByteOrder() binary.ByteOrder {
	return g.heap.ByteOrder()
}
