// Package errors provides structured error types for the boundary layers.
//
// Errors are categorized by Phase (where the failure happened relative to the
// boundary) and Kind (what went wrong). The Error type carries the operation
// name, the offending value, a human-readable detail and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseBorrow, errors.KindInvalidUTF8).
//		Op("string_length").
//		Detail("byte %d is not a valid sequence start", 3).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NullBuffer(errors.PhaseBorrow, "reverse_string")
//	err := errors.NegativeInput("factorial", n)
//
// None of these values ever cross a boundary. Façades translate them into
// sentinel results at the foreign edge, and the managed-runtime bridge
// translates them into exceptions.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
