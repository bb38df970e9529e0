// Package cabi exports the primitives through the C ABI.
//
// Build a shared library from cmd/libprimitives with -buildmode=c-shared
// and include primitives.h. All exported functions are reentrant.
//
// Text arguments are NUL-terminated UTF-8 and borrowed for the duration of
// the call. reverse_string returns a buffer from the C heap that the caller
// must pass to free_string exactly once. Invalid input produces a sentinel,
// never a crash: string_length returns -1, reverse_string returns NULL,
// sum_array returns 0, and factorial or fibonacci of a negative number
// return -1. Passing free_string a pointer it did not produce, or the same
// pointer twice, is undefined unless strict mode is enabled, in which case
// the call is logged and ignored.
package cabi
