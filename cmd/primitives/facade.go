package main

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/ffi-primitives/boundary"
	"github.com/wippyai/ffi-primitives/core"
	"github.com/wippyai/ffi-primitives/internal/config"
	"github.com/wippyai/ffi-primitives/wasmhost"
)

// facade is one way of reaching the primitives. Integer operations return
// whatever the boundary returns, sentinels included.
type facade interface {
	Name() string
	AddNumbers(ctx context.Context, a, b int32) (int32, error)
	MultiplyDoubles(ctx context.Context, a, b float64) (float64, error)
	Factorial(ctx context.Context, n int32) (int32, error)
	IsPrime(ctx context.Context, n int32) (bool, error)
	Fibonacci(ctx context.Context, n int32) (int32, error)
	StringLength(ctx context.Context, s string) (int32, error)
	// ReverseString reports ok=false for a null result.
	ReverseString(ctx context.Context, s string) (string, bool, error)
	SumArray(ctx context.Context, xs []int32) (int32, error)
	// Outstanding is the number of owned buffers not yet released, when
	// strict mode tracks them.
	Outstanding() int
	Close(ctx context.Context) error
}

type facadeFactory func(ctx context.Context, cfg config.Config) (facade, error)

var facades = map[string]facadeFactory{
	"core": newCoreFacade,
	"wasm": newWasmFacade,
}

func facadeNames() []string {
	var names []string
	for name := range facades {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func openFacade(ctx context.Context, name string, cfg config.Config) (facade, error) {
	factory, ok := facades[name]
	if !ok {
		return nil, fmt.Errorf("unknown facade %q (available: %v)", name, facadeNames())
	}
	return factory(ctx, cfg)
}

// coreFacade calls the computation core directly, applying the same edge
// policy as the foreign façades.
type coreFacade struct{}

func newCoreFacade(context.Context, config.Config) (facade, error) {
	return coreFacade{}, nil
}

func (coreFacade) Name() string { return "core" }

func (coreFacade) AddNumbers(_ context.Context, a, b int32) (int32, error) {
	return core.Add(a, b), nil
}

func (coreFacade) MultiplyDoubles(_ context.Context, a, b float64) (float64, error) {
	return core.Multiply(a, b), nil
}

func (coreFacade) Factorial(_ context.Context, n int32) (int32, error) {
	v, _ := boundary.Factorial(n)
	return v, nil
}

func (coreFacade) IsPrime(_ context.Context, n int32) (bool, error) {
	return core.IsPrime(n), nil
}

func (coreFacade) Fibonacci(_ context.Context, n int32) (int32, error) {
	v, _ := boundary.Fibonacci(n)
	return v, nil
}

func (coreFacade) StringLength(_ context.Context, s string) (int32, error) {
	return core.StringLength(s), nil
}

func (coreFacade) ReverseString(_ context.Context, s string) (string, bool, error) {
	return core.ReverseString(s), true, nil
}

func (coreFacade) SumArray(_ context.Context, xs []int32) (int32, error) {
	return core.SumArray(xs), nil
}

func (coreFacade) Outstanding() int { return 0 }

func (coreFacade) Close(context.Context) error { return nil }

// wasmFacade runs a synthesised guest against the host module in a
// private wazero runtime. Guests are single-threaded, so calls are
// serialised.
type wasmFacade struct {
	mu    sync.Mutex
	rt    wazero.Runtime
	host  *wasmhost.Host
	guest *wasmhost.Guest
}

const guestPages = 16

func newWasmFacade(ctx context.Context, cfg config.Config) (facade, error) {
	rt := wazero.NewRuntime(ctx)

	host, err := wasmhost.Register(ctx, rt, &wasmhost.Config{Strict: cfg.Strict})
	if err != nil {
		rt.Close(ctx)
		return nil, err
	}

	mod, err := rt.InstantiateWithConfig(ctx, wasmhost.BuildGuest(nil, guestPages),
		wazero.NewModuleConfig().WithName("demo-guest"))
	if err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("instantiate guest: %w", err)
	}

	guest, err := wasmhost.NewGuest(mod, nil)
	if err != nil {
		rt.Close(ctx)
		return nil, err
	}
	return &wasmFacade{rt: rt, host: host, guest: guest}, nil
}

func (f *wasmFacade) Name() string { return "wasm" }

func (f *wasmFacade) AddNumbers(ctx context.Context, a, b int32) (int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.guest.AddNumbers(ctx, a, b)
}

func (f *wasmFacade) MultiplyDoubles(ctx context.Context, a, b float64) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.guest.MultiplyDoubles(ctx, a, b)
}

func (f *wasmFacade) Factorial(ctx context.Context, n int32) (int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.guest.Factorial(ctx, n)
}

func (f *wasmFacade) IsPrime(ctx context.Context, n int32) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.guest.IsPrime(ctx, n)
}

func (f *wasmFacade) Fibonacci(ctx context.Context, n int32) (int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.guest.Fibonacci(ctx, n)
}

func (f *wasmFacade) StringLength(ctx context.Context, s string) (int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.guest.StringLength(ctx, s)
}

func (f *wasmFacade) ReverseString(ctx context.Context, s string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.guest.ReverseString(ctx, s)
}

func (f *wasmFacade) SumArray(ctx context.Context, xs []int32) (int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.guest.SumArray(ctx, xs)
}

func (f *wasmFacade) Outstanding() int {
	return f.host.Outstanding(f.guest.Module())
}

func (f *wasmFacade) Close(ctx context.Context) error {
	f.host.Forget(f.guest.Module())
	return f.rt.Close(ctx)
}
