// Package primitives exposes a small set of deterministic computational
// primitives across foreign-function boundaries and catalogues their
// signatures.
//
// Most of the code is the protocol around the arithmetic: how values,
// borrowed buffers and owned buffers cross from one runtime to another,
// and who releases what.
//
// # Architecture Overview
//
//	primitives/          Signature catalogue (WIT typed) and symbol naming
//	├── core/            Computation core: pure Go functions
//	├── boundary/        Buffer protocol: Heap, Borrowed, Owned, Ledger
//	├── errors/          Structured error types
//	├── cabi/            C ABI façade (cgo exports, C heap)
//	├── wasmhost/        WebAssembly façade (wazero host module, guest heap)
//	├── bridge/          JVM bridge over a façade, plus JNI entry points
//	└── cmd/             Shared-library entry points and the demo CLI
//
// # Ownership
//
// Text and array arguments are borrowed: the callee reads them during the
// call and never frees, mutates or retains them. The only operation that
// returns new memory is reverse_string. Its result is owned by the caller,
// who must release it exactly once with free_string; free_string(NULL) is
// a no-op.
//
// Errors never cross a boundary. Invalid input becomes a sentinel: -1 for
// lengths, NULL for text, 0 for sums, and -1 for factorial or fibonacci of
// a negative number. Only the JVM bridge turns failures into exceptions.
//
// # Quick Start
//
// From C, after building cmd/libprimitives with -buildmode=c-shared:
//
//	char *r = reverse_string("héllo");
//	if (r != NULL) {
//	    puts(r);
//	    free_string(r);
//	}
//
// From a WebAssembly guest, import the host module:
//
//	host, err := wasmhost.Register(ctx, rt, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer host.Close(ctx)
//
// # Thread Safety
//
// Every operation is stateless and reentrant. Owned buffers are not
// synchronised; a buffer belongs to one caller at a time.
package primitives
