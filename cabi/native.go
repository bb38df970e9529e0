//go:build cgo

package cabi

/*
#include <stdint.h>
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/ffi-primitives/boundary"
)

// Facade calls the exported C functions from Go with raw pointers. It is
// what the JVM bridge sits on, and what tests use to reach the exports.
type Facade struct{}

// Native returns the Go view of the C façade.
func Native() Facade {
	return Facade{}
}

// Scratch returns the heap the façade releases into. Buffers passed to
// the façade as arguments are allocated here by the caller.
func (Facade) Scratch() boundary.Heap[unsafe.Pointer] {
	return currentHeap()
}

func (Facade) AddNumbers(a, b int32) int32 {
	return int32(add_numbers(C.int32_t(a), C.int32_t(b)))
}

func (Facade) MultiplyDoubles(a, b float64) float64 {
	return float64(multiply_doubles(C.double(a), C.double(b)))
}

func (Facade) Factorial(n int32) int32 {
	return int32(factorial(C.int32_t(n)))
}

func (Facade) IsPrime(n int32) int32 {
	return int32(is_prime(C.int32_t(n)))
}

func (Facade) Fibonacci(n int32) int32 {
	return int32(fibonacci(C.int32_t(n)))
}

func (Facade) StringLength(s unsafe.Pointer) int32 {
	return int32(string_length((*C.char)(s)))
}

// ReverseString returns an owned buffer, or nil. The caller must pass a
// non-nil result to FreeString exactly once.
func (Facade) ReverseString(s unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(reverse_string((*C.char)(s)))
}

func (Facade) FreeString(s unsafe.Pointer) {
	free_string((*C.char)(s))
}

// Text copies a NUL-terminated buffer into a Go string.
func (Facade) Text(s unsafe.Pointer) string {
	if s == nil {
		return ""
	}
	return C.GoString((*C.char)(s))
}

func (Facade) SumArray(arr unsafe.Pointer, n int32) int32 {
	return int32(sum_array((*C.int32_t)(arr), C.int32_t(n)))
}
