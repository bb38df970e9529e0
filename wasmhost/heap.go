package wasmhost

import (
	"context"
	"encoding/binary"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/ffi-primitives/errors"
)

// guestHeap implements boundary.Heap[uint32] with a guest's exported
// allocator. Views returned by Alloc alias guest memory and are only valid
// until the guest next grows its memory.
type guestHeap struct {
	ctx        context.Context
	mod        api.Module
	mallocName string
	freeName   string
}

func newGuestHeap(ctx context.Context, mod api.Module, cfg Config) guestHeap {
	if ctx == nil {
		ctx = context.Background()
	}
	return guestHeap{
		ctx:        ctx,
		mod:        mod,
		mallocName: cfg.MallocExport,
		freeName:   cfg.FreeExport,
	}
}

func (h guestHeap) Alloc(size uint32) (uint32, []byte, error) {
	fn := h.mod.ExportedFunction(h.mallocName)
	if fn == nil {
		return 0, nil, errors.NewMissingExportsError(h.mod.Name(), []string{h.mallocName})
	}

	var stack [1]uint64
	stack[0] = uint64(size)
	if err := fn.CallWithStack(h.ctx, stack[:]); err != nil {
		return 0, nil, errors.New(errors.PhaseAllocate, errors.KindAllocation).
			Op(h.mallocName).
			Value(size).
			Cause(err).
			Build()
	}
	ptr := uint32(stack[0])
	if ptr == 0 {
		return 0, nil, nil
	}

	mem := h.mod.Memory()
	if mem == nil {
		return ptr, nil, nil
	}
	view, ok := mem.Read(ptr, size)
	if !ok {
		return ptr, nil, nil
	}
	return ptr, view, nil
}

func (h guestHeap) Free(ptr uint32) {
	if ptr == 0 {
		return
	}
	fn := h.mod.ExportedFunction(h.freeName)
	if fn == nil {
		Logger().Warn("Free: guest has no free export, leaking buffer",
			zap.String("module", h.mod.Name()),
			zap.String("export", h.freeName),
			zap.Uint32("ptr", ptr))
		return
	}

	var stack [1]uint64
	stack[0] = uint64(ptr)
	if err := fn.CallWithStack(h.ctx, stack[:]); err != nil {
		Logger().Warn("Free: failed to call guest free",
			zap.String("module", h.mod.Name()),
			zap.Uint32("ptr", ptr),
			zap.Error(err))
	}
}

func (guestHeap) ByteOrder() binary.ByteOrder {
	return binary.LittleEndian
}
