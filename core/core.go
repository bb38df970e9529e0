package core

import (
	"math"
	"slices"

	"github.com/wippyai/ffi-primitives/errors"
)

// Add returns a+b with int32 wraparound.
func Add(a, b int32) int32 {
	return a + b
}

// Multiply returns the float64 product of a and b.
func Multiply(a, b float64) float64 {
	return a * b
}

// Factorial returns n! with int32 wraparound. 0! and 1! are 1.
func Factorial(n int32) (int32, error) {
	if n < 0 {
		return 0, errors.NegativeInput("factorial", n)
	}
	result := int32(1)
	for i := int32(2); i <= n; i++ {
		result *= i
	}
	return result, nil
}

// IsPrime reports whether n is prime using trial division by odd
// candidates up to floor(sqrt(n)).
func IsPrime(n int32) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	limit := int32(math.Sqrt(float64(n)))
	for i := int32(3); i <= limit; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// Fibonacci returns F(n) computed iteratively, with F(0)=0 and F(1)=1.
func Fibonacci(n int32) (int32, error) {
	if n < 0 {
		return 0, errors.NegativeInput("fibonacci", n)
	}
	if n <= 1 {
		return n, nil
	}
	var a, b int32 = 0, 1
	for i := int32(2); i <= n; i++ {
		a, b = b, a+b
	}
	return b, nil
}

// StringLength returns the length of s in bytes, not code points.
func StringLength(s string) int32 {
	return int32(len(s))
}

// ReverseString reverses s by code point so multi-byte sequences stay
// intact. s is expected to be valid UTF-8.
func ReverseString(s string) string {
	runes := []rune(s)
	slices.Reverse(runes)
	return string(runes)
}

// SumArray returns the int32 sum of xs with wraparound. An empty or nil
// slice sums to 0.
func SumArray(xs []int32) int32 {
	var sum int32
	for _, x := range xs {
		sum += x
	}
	return sum
}
