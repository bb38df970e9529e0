package wasmhost

import (
	"bytes"
	"encoding/binary"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/ffi-primitives/boundary"
	"github.com/wippyai/ffi-primitives/errors"
)

// readText borrows the NUL-terminated text at ptr. The null pointer yields
// a null buffer. Text that is not terminated before the end of memory is
// out of bounds.
func readText(mem api.Memory, op string, ptr uint32) (boundary.Borrowed[byte], error) {
	if ptr == 0 {
		return boundary.Borrowed[byte]{}, nil
	}
	if mem == nil {
		return boundary.Borrowed[byte]{}, errors.OutOfBounds(errors.PhaseBorrow, op, uint64(ptr), 1, 0)
	}

	size := mem.Size()
	if ptr >= size {
		return boundary.Borrowed[byte]{}, errors.OutOfBounds(errors.PhaseBorrow, op, uint64(ptr), 1, uint64(size))
	}
	view, ok := mem.Read(ptr, size-ptr)
	if !ok {
		return boundary.Borrowed[byte]{}, errors.OutOfBounds(errors.PhaseBorrow, op, uint64(ptr), uint64(size-ptr), uint64(size))
	}

	n := bytes.IndexByte(view, 0)
	if n < 0 {
		return boundary.Borrowed[byte]{}, errors.New(errors.PhaseBorrow, errors.KindOutOfBounds).
			Op(op).
			Value(ptr).
			Detail("text at %d is not terminated before end of memory (%d bytes)", ptr, size).
			Build()
	}
	return boundary.Borrow(view[:n]), nil
}

// readInt32s copies count little-endian int32 values starting at ptr.
// Guest arrays need not be aligned, so they are decoded rather than
// reinterpreted in place.
func readInt32s(mem api.Memory, op string, ptr uint32, count int) ([]int32, error) {
	length := uint64(count) * 4
	var size uint64
	if mem != nil {
		size = uint64(mem.Size())
	}
	if uint64(ptr)+length > size {
		return nil, errors.OutOfBounds(errors.PhaseBorrow, op, uint64(ptr), length, size)
	}

	view, ok := mem.Read(ptr, uint32(length))
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseBorrow, op, uint64(ptr), length, size)
	}
	xs := make([]int32, count)
	for i := range xs {
		xs[i] = int32(binary.LittleEndian.Uint32(view[i*4:]))
	}
	return xs, nil
}
