// Package boundary implements the buffer ownership protocol shared by every
// façade that exposes the core primitives to another memory domain.
//
// The protocol has three kinds of memory:
//
//	Borrowed[T]  read-only view of caller memory, valid for one call only
//	Owned[P]     block allocated on a Heap[P] and released exactly once
//	Heap[P]      the allocator of one memory domain (C heap, wasm guest)
//
// P is the domain's pointer representation (unsafe.Pointer for the C heap,
// uint32 for wasm linear memory). The zero value of P is the null pointer.
//
// Rules enforced here:
//
//  1. Callees never free, mutate or retain a Borrowed buffer.
//  2. A null or undecodable Borrowed buffer produces the operation's sentinel.
//  3. New text is copied into an Owned buffer on the returning side's heap,
//     and released by that same heap.
//  4. Release tolerates null and is idempotent on the Go side. Across the
//     boundary, after Detach, double release is undefined unless the heap is
//     wrapped with Guard.
//  5. Sequences are (pointer, count); null or non-positive counts sum to 0.
//
// Errors stay Go errors inside this package. Façades turn them into
// sentinels at the foreign edge with the helpers in sentinel.go.
package boundary
