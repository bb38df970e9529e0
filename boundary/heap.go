package boundary

import "encoding/binary"

// Heap allocates and frees memory in one memory domain.
//
// Alloc returns the block's address together with a writable view of its
// size bytes. Free must only be called with an address returned by Alloc on
// the same Heap.
type Heap[P comparable] interface {
	Alloc(size uint32) (P, []byte, error)
	Free(ptr P)
	ByteOrder() binary.ByteOrder
}

// Borrowed is a read-only view of caller-owned memory. The zero value is
// the null buffer.
type Borrowed[T byte | int32] struct {
	view    []T
	present bool
}

// Borrow wraps a non-null view. An empty view is valid and distinct from null.
func Borrow[T byte | int32](view []T) Borrowed[T] {
	return Borrowed[T]{view: view, present: true}
}

// IsNull reports whether the buffer came from a null pointer.
func (b Borrowed[T]) IsNull() bool {
	return !b.present
}

// View returns the underlying memory. It must not be retained past the call.
func (b Borrowed[T]) View() []T {
	return b.view
}

// Len returns the number of elements in the view.
func (b Borrowed[T]) Len() int {
	return len(b.view)
}
