package wasmhost

import (
	"context"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/ffi-primitives"
	"github.com/wippyai/ffi-primitives/boundary"
	"github.com/wippyai/ffi-primitives/core"
	"github.com/wippyai/ffi-primitives/errors"
)

// Host is an instantiated primitives host module.
// It is safe for concurrent use by multiple guests.
type Host struct {
	cfg    Config
	module api.Module

	mu      sync.Mutex
	ledgers map[api.Module]*boundary.Ledger[uint32]
}

// Register instantiates the host module in r. Guests instantiated in r
// afterwards can import it. A nil cfg uses defaults.
func Register(ctx context.Context, r wazero.Runtime, cfg *Config) (*Host, error) {
	h := &Host{
		cfg:     cfg.withDefaults(),
		ledgers: make(map[api.Module]*boundary.Ledger[uint32]),
	}

	builder := r.NewHostModuleBuilder(h.cfg.ModuleName)
	for _, sig := range primitives.Catalog() {
		params, results, ok := CoreTypes(sig)
		if !ok {
			return nil, errors.Registration(h.cfg.ModuleName, sig.Name,
				fmt.Errorf("no core lowering for %s", sig.WIT()))
		}
		fn := h.function(sig.Name)
		if fn == nil {
			return nil, errors.Registration(h.cfg.ModuleName, sig.Name,
				fmt.Errorf("no implementation"))
		}
		builder = builder.NewFunctionBuilder().
			WithGoModuleFunction(fn, params, results).
			WithParameterNames(ParamNames(sig)...).
			Export(sig.Name)
	}

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Registration(h.cfg.ModuleName, "*", err)
	}
	h.module = mod

	Logger().Debug("registered host module",
		zap.String("module", h.cfg.ModuleName),
		zap.Bool("strict", h.cfg.Strict))
	return h, nil
}

// Name returns the module name guests import from.
func (h *Host) Name() string {
	return h.cfg.ModuleName
}

// Outstanding returns the number of owned buffers handed to guest and not
// yet released. It is always 0 unless the host is strict.
func (h *Host) Outstanding(guest api.Module) int {
	h.mu.Lock()
	l := h.ledgers[guest]
	h.mu.Unlock()
	if l == nil {
		return 0
	}
	return l.Outstanding()
}

// Forget drops the ownership records for guest. Call it when the guest
// is closed; its buffers died with its memory.
func (h *Host) Forget(guest api.Module) {
	h.mu.Lock()
	delete(h.ledgers, guest)
	h.mu.Unlock()
}

// Close closes the host module.
func (h *Host) Close(ctx context.Context) error {
	h.mu.Lock()
	h.ledgers = make(map[api.Module]*boundary.Ledger[uint32])
	h.mu.Unlock()
	if h.module == nil {
		return nil
	}
	err := h.module.Close(ctx)
	h.module = nil
	return err
}

func (h *Host) ledger(guest api.Module) *boundary.Ledger[uint32] {
	h.mu.Lock()
	defer h.mu.Unlock()
	l, ok := h.ledgers[guest]
	if !ok {
		l = boundary.NewLedger[uint32]()
		h.ledgers[guest] = l
	}
	return l
}

// heap returns the allocator owned buffers for guest come from.
func (h *Host) heap(ctx context.Context, guest api.Module) boundary.Heap[uint32] {
	base := newGuestHeap(ctx, guest, h.cfg)
	if !h.cfg.Strict {
		return base
	}
	name := guest.Name()
	return boundary.Guard[uint32](base, h.ledger(guest), func(err error) {
		Logger().Warn("ownership violation ignored",
			zap.String("module", name),
			zap.Error(err))
	})
}

func sentinel(guest api.Module, op string, err error) {
	Logger().Debug("returning sentinel",
		zap.String("op", op),
		zap.String("module", guest.Name()),
		zap.Error(err))
}

func (h *Host) function(name string) api.GoModuleFunc {
	switch name {
	case "add_numbers":
		return func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = api.EncodeI32(core.Add(api.DecodeI32(stack[0]), api.DecodeI32(stack[1])))
		}
	case "multiply_doubles":
		return func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = api.EncodeF64(core.Multiply(api.DecodeF64(stack[0]), api.DecodeF64(stack[1])))
		}
	case "factorial":
		return func(_ context.Context, mod api.Module, stack []uint64) {
			v, err := boundary.Factorial(api.DecodeI32(stack[0]))
			if err != nil {
				sentinel(mod, "factorial", err)
			}
			stack[0] = api.EncodeI32(v)
		}
	case "is_prime":
		return func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = api.EncodeI32(boundary.Bool(core.IsPrime(api.DecodeI32(stack[0]))))
		}
	case "fibonacci":
		return func(_ context.Context, mod api.Module, stack []uint64) {
			v, err := boundary.Fibonacci(api.DecodeI32(stack[0]))
			if err != nil {
				sentinel(mod, "fibonacci", err)
			}
			stack[0] = api.EncodeI32(v)
		}
	case "string_length":
		return func(_ context.Context, mod api.Module, stack []uint64) {
			n, err := stringLength(mod, api.DecodeU32(stack[0]))
			if err != nil {
				sentinel(mod, "string_length", err)
			}
			stack[0] = api.EncodeI32(n)
		}
	case "reverse_string":
		return func(ctx context.Context, mod api.Module, stack []uint64) {
			ptr, err := h.reverseString(ctx, mod, api.DecodeU32(stack[0]))
			if err != nil {
				sentinel(mod, "reverse_string", err)
			}
			stack[0] = api.EncodeU32(ptr)
		}
	case "free_string":
		return func(ctx context.Context, mod api.Module, stack []uint64) {
			boundary.Release(h.heap(ctx, mod), api.DecodeU32(stack[0]))
		}
	case "sum_array":
		return func(_ context.Context, mod api.Module, stack []uint64) {
			sum, err := sumArray(mod, api.DecodeU32(stack[0]), api.DecodeI32(stack[1]))
			if err != nil {
				sentinel(mod, "sum_array", err)
			}
			stack[0] = api.EncodeI32(sum)
		}
	}
	return nil
}

func stringLength(mod api.Module, ptr uint32) (int32, error) {
	text, err := readText(mod.Memory(), "string_length", ptr)
	if err != nil {
		return boundary.SentinelLength, err
	}
	return boundary.StringLength("string_length", text)
}

// reverseString decodes the argument before calling the guest's malloc,
// which may grow memory and invalidate the borrowed view.
func (h *Host) reverseString(ctx context.Context, mod api.Module, ptr uint32) (uint32, error) {
	text, err := readText(mod.Memory(), "reverse_string", ptr)
	if err != nil {
		return 0, err
	}
	out, err := boundary.ReverseString("reverse_string", h.heap(ctx, mod), text)
	if err != nil {
		return 0, err
	}
	return out.Detach(), nil
}

func sumArray(mod api.Module, ptr uint32, count int32) (int32, error) {
	n, err := boundary.CheckSequence("sum_array", ptr == 0, int64(count))
	if err != nil || n == 0 {
		return 0, err
	}
	xs, err := readInt32s(mod.Memory(), "sum_array", ptr, n)
	if err != nil {
		return 0, err
	}
	return boundary.SumArray(boundary.Borrow(xs)), nil
}
