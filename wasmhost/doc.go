// Package wasmhost serves the primitives to WebAssembly guests as a wazero
// host module.
//
// Register instantiates a host module (named "primitives" by default)
// whose functions use core WebAssembly types: text is an i32 pointer to
// NUL-terminated UTF-8 in the caller's linear memory, an int array is an
// i32 pointer and an i32 count, and booleans are i32 0 or 1.
//
// reverse_string allocates its result inside the calling guest by calling
// the guest's exported malloc, and free_string hands it back through the
// guest's exported free. Owned buffers therefore never leave the guest
// allocator that produced them. Guest pointers are bounds-checked: text
// that runs past the end of memory is treated like invalid input and
// yields the operation's sentinel.
//
// Guest drives a guest module from Go the way a compiled guest would.
// It is mostly useful in tests and in the demo.
package wasmhost
