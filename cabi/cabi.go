//go:build cgo

package cabi

/*
#include <stdint.h>
#include <string.h>
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/ffi-primitives/boundary"
	"github.com/wippyai/ffi-primitives/core"
)

//export add_numbers
func add_numbers(a, b C.int32_t) C.int32_t {
	return C.int32_t(core.Add(int32(a), int32(b)))
}

//export multiply_doubles
func multiply_doubles(a, b C.double) C.double {
	return C.double(core.Multiply(float64(a), float64(b)))
}

//export factorial
func factorial(n C.int32_t) C.int32_t {
	v, err := boundary.Factorial(int32(n))
	if err != nil {
		sentinel("factorial", err)
	}
	return C.int32_t(v)
}

//export is_prime
func is_prime(n C.int32_t) C.int32_t {
	return C.int32_t(boundary.Bool(core.IsPrime(int32(n))))
}

//export fibonacci
func fibonacci(n C.int32_t) C.int32_t {
	v, err := boundary.Fibonacci(int32(n))
	if err != nil {
		sentinel("fibonacci", err)
	}
	return C.int32_t(v)
}

//export string_length
func string_length(s *C.char) C.int32_t {
	n, err := boundary.StringLength("string_length", borrowText(s))
	if err != nil {
		sentinel("string_length", err)
	}
	return C.int32_t(n)
}

//export reverse_string
func reverse_string(s *C.char) *C.char {
	out, err := boundary.ReverseString("reverse_string", currentHeap(), borrowText(s))
	if err != nil {
		sentinel("reverse_string", err)
		return nil
	}
	return (*C.char)(out.Detach())
}

//export free_string
func free_string(s *C.char) {
	boundary.Release(currentHeap(), unsafe.Pointer(s))
}

//export sum_array
func sum_array(arr *C.int32_t, n C.int32_t) C.int32_t {
	count, err := boundary.CheckSequence("sum_array", arr == nil, int64(n))
	if err != nil {
		sentinel("sum_array", err)
		return 0
	}
	if count == 0 {
		return 0
	}
	view := unsafe.Slice((*int32)(unsafe.Pointer(arr)), count)
	return C.int32_t(boundary.SumArray(boundary.Borrow(view)))
}

func borrowText(s *C.char) boundary.Borrowed[byte] {
	if s == nil {
		return boundary.Borrowed[byte]{}
	}
	return boundary.Borrow(unsafe.Slice((*byte)(unsafe.Pointer(s)), C.strlen(s)))
}
