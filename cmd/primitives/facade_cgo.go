//go:build cgo

package main

import (
	"context"
	"unsafe"

	"github.com/wippyai/ffi-primitives/boundary"
	"github.com/wippyai/ffi-primitives/cabi"
	"github.com/wippyai/ffi-primitives/internal/config"
)

func init() {
	facades["c"] = newCFacade
}

// cFacade calls the exported C functions with buffers on the C heap.
type cFacade struct {
	native cabi.Facade
}

func newCFacade(_ context.Context, cfg config.Config) (facade, error) {
	cabi.Configure(cfg)
	return cFacade{native: cabi.Native()}, nil
}

func (cFacade) Name() string { return "c" }

func (f cFacade) AddNumbers(_ context.Context, a, b int32) (int32, error) {
	return f.native.AddNumbers(a, b), nil
}

func (f cFacade) MultiplyDoubles(_ context.Context, a, b float64) (float64, error) {
	return f.native.MultiplyDoubles(a, b), nil
}

func (f cFacade) Factorial(_ context.Context, n int32) (int32, error) {
	return f.native.Factorial(n), nil
}

func (f cFacade) IsPrime(_ context.Context, n int32) (bool, error) {
	return f.native.IsPrime(n) != 0, nil
}

func (f cFacade) Fibonacci(_ context.Context, n int32) (int32, error) {
	return f.native.Fibonacci(n), nil
}

func (f cFacade) StringLength(_ context.Context, s string) (int32, error) {
	in, err := boundary.NewText(f.native.Scratch(), s)
	if err != nil {
		return 0, err
	}
	defer in.Release()
	return f.native.StringLength(in.Ptr()), nil
}

func (f cFacade) ReverseString(_ context.Context, s string) (string, bool, error) {
	in, err := boundary.NewText(f.native.Scratch(), s)
	if err != nil {
		return "", false, err
	}
	defer in.Release()

	ptr := f.native.ReverseString(in.Ptr())
	if ptr == nil {
		return "", false, nil
	}
	out := boundary.Adopt[unsafe.Pointer](ptr, nil, f.native.FreeString)
	defer out.Release()
	return f.native.Text(ptr), true, nil
}

func (f cFacade) SumArray(_ context.Context, xs []int32) (int32, error) {
	buf, err := boundary.NewInt32s(f.native.Scratch(), xs)
	if err != nil {
		return 0, err
	}
	defer buf.Release()
	return f.native.SumArray(buf.Ptr(), int32(len(xs))), nil
}

func (cFacade) Outstanding() int { return cabi.Outstanding() }

func (cFacade) Close(context.Context) error { return nil }
