// Package bridge exposes the primitives to a managed runtime such as the
// JVM.
//
// The bridge converts managed strings and int arrays into native buffers,
// calls a native façade, and converts the results back. Scalar operations
// go straight to the computation core. Every native buffer the bridge
// allocates is released before the call returns, and every owned result
// is copied into a managed value and then released exactly once.
//
// Failures surface as managed exceptions:
//
//	null reference                    java/lang/NullPointerException
//	unpaired surrogate, NUL, n < 0    java/lang/IllegalArgumentException
//	native allocation failure         java/lang/OutOfMemoryError
//
// Runtime abstracts the managed environment so the bridge can be tested
// without a JVM. The JNI entry points in jni.go are only built with the
// jni build tag.
package bridge
