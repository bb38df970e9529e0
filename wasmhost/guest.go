package wasmhost

import (
	"context"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/ffi-primitives"
	"github.com/wippyai/ffi-primitives/boundary"
	"github.com/wippyai/ffi-primitives/errors"
	"github.com/wippyai/ffi-primitives/internal/guest"
)

// Guest calls the primitives through a guest module's exported
// trampolines, marshaling arguments into guest memory the way compiled
// guest code would. Guest is not safe for concurrent use.
type Guest struct {
	mod api.Module
	cfg Config
	fns map[string]api.Function
}

// NewGuest wraps mod, which must export a memory, the allocator named in
// cfg, and one function per catalogue operation.
func NewGuest(mod api.Module, cfg *Config) (*Guest, error) {
	g := &Guest{
		mod: mod,
		cfg: cfg.withDefaults(),
		fns: make(map[string]api.Function),
	}

	var missing []string
	if mod.Memory() == nil {
		missing = append(missing, guest.ExportMemory)
	}
	for _, name := range []string{g.cfg.MallocExport, g.cfg.FreeExport} {
		if mod.ExportedFunction(name) == nil {
			missing = append(missing, name)
		}
	}
	for _, sig := range primitives.Catalog() {
		fn := mod.ExportedFunction(sig.Name)
		if fn == nil {
			missing = append(missing, sig.Name)
			continue
		}
		g.fns[sig.Name] = fn
	}
	if len(missing) > 0 {
		return nil, errors.NewMissingExportsError(mod.Name(), missing)
	}
	return g, nil
}

// Module returns the wrapped guest.
func (g *Guest) Module() api.Module {
	return g.mod
}

// Heap returns the guest's own allocator.
func (g *Guest) Heap(ctx context.Context) boundary.Heap[uint32] {
	return newGuestHeap(ctx, g.mod, g.cfg)
}

// Call invokes a trampoline with raw core values.
func (g *Guest) Call(ctx context.Context, name string, args ...uint64) ([]uint64, error) {
	fn, ok := g.fns[name]
	if !ok {
		return nil, errors.NewMissingExportsError(g.mod.Name(), []string{name})
	}
	return fn.Call(ctx, args...)
}

func (g *Guest) callI32(ctx context.Context, name string, args ...uint64) (int32, error) {
	results, err := g.Call(ctx, name, args...)
	if err != nil {
		return 0, err
	}
	return api.DecodeI32(results[0]), nil
}

func (g *Guest) AddNumbers(ctx context.Context, a, b int32) (int32, error) {
	return g.callI32(ctx, "add_numbers", api.EncodeI32(a), api.EncodeI32(b))
}

func (g *Guest) MultiplyDoubles(ctx context.Context, a, b float64) (float64, error) {
	results, err := g.Call(ctx, "multiply_doubles", api.EncodeF64(a), api.EncodeF64(b))
	if err != nil {
		return 0, err
	}
	return api.DecodeF64(results[0]), nil
}

// Factorial returns -1 for negative n.
func (g *Guest) Factorial(ctx context.Context, n int32) (int32, error) {
	return g.callI32(ctx, "factorial", api.EncodeI32(n))
}

func (g *Guest) IsPrime(ctx context.Context, n int32) (bool, error) {
	v, err := g.callI32(ctx, "is_prime", api.EncodeI32(n))
	return v != 0, err
}

// Fibonacci returns -1 for negative n.
func (g *Guest) Fibonacci(ctx context.Context, n int32) (int32, error) {
	return g.callI32(ctx, "fibonacci", api.EncodeI32(n))
}

// StringLength copies s into guest memory for the duration of the call.
func (g *Guest) StringLength(ctx context.Context, s string) (int32, error) {
	in, err := boundary.NewText(g.Heap(ctx), s)
	if err != nil {
		return 0, err
	}
	defer in.Release()
	return g.callI32(ctx, "string_length", api.EncodeU32(in.Ptr()))
}

// ReverseString returns ok=false when the host returned the null pointer.
// A non-null result is copied out and released exactly once through
// free_string.
func (g *Guest) ReverseString(ctx context.Context, s string) (reversed string, ok bool, err error) {
	in, err := boundary.NewText(g.Heap(ctx), s)
	if err != nil {
		return "", false, err
	}
	defer in.Release()

	results, err := g.Call(ctx, "reverse_string", api.EncodeU32(in.Ptr()))
	if err != nil {
		return "", false, err
	}
	ptr := api.DecodeU32(results[0])
	if ptr == 0 {
		return "", false, nil
	}

	out := boundary.Adopt(ptr, nil, func(p uint32) {
		if _, err := g.Call(ctx, "free_string", api.EncodeU32(p)); err != nil {
			Logger().Warn("free_string failed", zap.Uint32("ptr", p), zap.Error(err))
		}
	})
	defer out.Release()

	text, err := readText(g.mod.Memory(), "reverse_string", ptr)
	if err != nil {
		return "", false, err
	}
	return string(text.View()), true, nil
}

// SumArray copies xs into guest memory for the duration of the call.
// An empty slice is passed as a null pointer with count 0.
func (g *Guest) SumArray(ctx context.Context, xs []int32) (int32, error) {
	in, err := boundary.NewInt32s(g.Heap(ctx), xs)
	if err != nil {
		return 0, err
	}
	defer in.Release()
	return g.callI32(ctx, "sum_array", api.EncodeU32(in.Ptr()), api.EncodeI32(int32(len(xs))))
}

// Allocations reports the guest allocator's malloc and free counts. It
// requires a guest built by BuildGuest.
func (g *Guest) Allocations(ctx context.Context) (mallocs, frees uint32, err error) {
	read := func(name string) (uint32, error) {
		fn := g.mod.ExportedFunction(name)
		if fn == nil {
			return 0, errors.NewMissingExportsError(g.mod.Name(), []string{name})
		}
		results, err := fn.Call(ctx)
		if err != nil {
			return 0, err
		}
		return api.DecodeU32(results[0]), nil
	}
	if mallocs, err = read(guest.ExportMallocCount); err != nil {
		return 0, 0, err
	}
	if frees, err = read(guest.ExportFreeCount); err != nil {
		return 0, 0, err
	}
	return mallocs, frees, nil
}
