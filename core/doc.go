// Package core holds the computational primitives behind every boundary.
//
// Functions here operate on native Go values only. They never allocate
// memory that crosses a boundary and they have no side effects, so they are
// safe for concurrent use without synchronization.
//
// Integer arithmetic follows int32 wrapping semantics. Callers that need
// exact results must bound their inputs: Factorial overflows for n > 12 and
// Fibonacci for n > 46.
//
// Factorial and Fibonacci are undefined for negative n and report an
// errors.KindNegativeInput error instead of guessing a value.
package core
