package boundary

import (
	"math"

	"github.com/wippyai/ffi-primitives/errors"
)

// Owned is a single-owner handle to a block allocated on the far side of a
// boundary. The handle guarantees at most one release: Release is
// idempotent, and Detach hands the raw pointer to foreign code, after which
// the handle no longer releases anything.
//
// Owned is not safe for concurrent use. A nil *Owned behaves as a released
// null buffer.
type Owned[P comparable] struct {
	ptr  P
	data []byte
	free func(P)
	live bool
}

// Adopt takes ownership of ptr, which must be released with free.
// Adopting the null pointer returns a handle that is already dead.
func Adopt[P comparable](ptr P, data []byte, free func(P)) *Owned[P] {
	var zero P
	return &Owned[P]{
		ptr:  ptr,
		data: data,
		free: free,
		live: ptr != zero,
	}
}

// Ptr returns the block address, or the null pointer once the handle is dead.
func (o *Owned[P]) Ptr() P {
	var zero P
	if o == nil || !o.live {
		return zero
	}
	return o.ptr
}

// Bytes returns a view of the block. The view dies with the handle.
func (o *Owned[P]) Bytes() []byte {
	if o == nil || !o.live {
		return nil
	}
	return o.data
}

// Live reports whether the handle still owns its block.
func (o *Owned[P]) Live() bool {
	return o != nil && o.live
}

// Release frees the block. Calls after the first, and calls on a detached
// or nil handle, do nothing.
func (o *Owned[P]) Release() {
	if o == nil || !o.live {
		return
	}
	o.live = false
	o.data = nil
	if o.free != nil {
		o.free(o.ptr)
	}
}

// Detach transfers ownership out of Go and returns the raw pointer. The
// receiver becomes responsible for calling the paired release function.
func (o *Owned[P]) Detach() P {
	var zero P
	if o == nil || !o.live {
		return zero
	}
	o.live = false
	o.data = nil
	return o.ptr
}

func allocate[P comparable](h Heap[P], size uint32) (*Owned[P], error) {
	ptr, data, err := h.Alloc(size)
	if err != nil {
		return nil, err
	}
	var zero P
	if ptr == zero {
		return nil, errors.AllocationFailed(errors.PhaseAllocate, size)
	}
	if uint32(len(data)) < size {
		h.Free(ptr)
		return nil, errors.New(errors.PhaseAllocate, errors.KindOutOfBounds).
			Detail("heap returned a %d byte view for a %d byte block", len(data), size).
			Build()
	}
	return Adopt(ptr, data[:size:size], h.Free), nil
}

// NewText copies s into a NUL-terminated block on h. Text containing a NUL
// byte has no NUL-terminated representation and is rejected.
func NewText[P comparable](h Heap[P], s string) (*Owned[P], error) {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return nil, errors.New(errors.PhaseAllocate, errors.KindUnencodable).
				Detail("text contains a NUL byte at offset %d", i).
				Value(i).
				Build()
		}
	}
	if uint64(len(s)) >= math.MaxUint32 {
		return nil, errors.AllocationFailed(errors.PhaseAllocate, math.MaxUint32)
	}

	o, err := allocate(h, uint32(len(s)+1))
	if err != nil {
		return nil, err
	}
	n := copy(o.data, s)
	o.data[n] = 0
	return o, nil
}

// NewInt32s copies xs into a contiguous block on h using the heap's byte
// order. An empty slice needs no memory and yields a nil handle.
func NewInt32s[P comparable](h Heap[P], xs []int32) (*Owned[P], error) {
	if len(xs) == 0 {
		return nil, nil
	}
	if uint64(len(xs))*4 > math.MaxUint32 {
		return nil, errors.AllocationFailed(errors.PhaseAllocate, math.MaxUint32)
	}

	o, err := allocate(h, uint32(len(xs)*4))
	if err != nil {
		return nil, err
	}
	order := h.ByteOrder()
	for i, x := range xs {
		order.PutUint32(o.data[i*4:], uint32(x))
	}
	return o, nil
}
