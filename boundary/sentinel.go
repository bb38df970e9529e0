package boundary

import "github.com/wippyai/ffi-primitives/core"

// SentinelLength is returned in place of a length when the input buffer is
// null or not valid UTF-8.
const SentinelLength int32 = -1

// SentinelNegative is returned by factorial and fibonacci at the foreign
// edge for negative input. Valid results are never -1: n! is 1 or even,
// and F(n) for 0 <= n <= 46 is non-negative.
const SentinelNegative int32 = -1

// Bool encodes b as 0 or 1, since the boundary has no boolean type.
func Bool(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// Factorial applies the edge policy for negative input.
func Factorial(n int32) (int32, error) {
	v, err := core.Factorial(n)
	if err != nil {
		return SentinelNegative, err
	}
	return v, nil
}

// Fibonacci applies the edge policy for negative input.
func Fibonacci(n int32) (int32, error) {
	v, err := core.Fibonacci(n)
	if err != nil {
		return SentinelNegative, err
	}
	return v, nil
}
