//go:build cgo && jni

package bridge

/*
#include <jni.h>
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/ffi-primitives/cabi"
)

var jniBridge = New[unsafe.Pointer](cabi.Native())

//export Java_com_example_primitives_Primitives_addNumbers
func Java_com_example_primitives_Primitives_addNumbers(env *C.JNIEnv, cls C.jclass, a, b C.jint) C.jint {
	return C.jint(jniBridge.AddNumbers(int32(a), int32(b)))
}

//export Java_com_example_primitives_Primitives_multiplyDoubles
func Java_com_example_primitives_Primitives_multiplyDoubles(env *C.JNIEnv, cls C.jclass, a, b C.jdouble) C.jdouble {
	return C.jdouble(jniBridge.MultiplyDoubles(float64(a), float64(b)))
}

//export Java_com_example_primitives_Primitives_factorial
func Java_com_example_primitives_Primitives_factorial(env *C.JNIEnv, cls C.jclass, n C.jint) C.jint {
	return C.jint(jniBridge.Factorial(jniRuntime{env}, int32(n)))
}

//export Java_com_example_primitives_Primitives_isPrime
func Java_com_example_primitives_Primitives_isPrime(env *C.JNIEnv, cls C.jclass, n C.jint) C.jboolean {
	if jniBridge.IsPrime(int32(n)) {
		return 1
	}
	return 0
}

//export Java_com_example_primitives_Primitives_fibonacci
func Java_com_example_primitives_Primitives_fibonacci(env *C.JNIEnv, cls C.jclass, n C.jint) C.jint {
	return C.jint(jniBridge.Fibonacci(jniRuntime{env}, int32(n)))
}

//export Java_com_example_primitives_Primitives_stringLength
func Java_com_example_primitives_Primitives_stringLength(env *C.JNIEnv, cls C.jclass, s C.jstring) C.jint {
	return C.jint(jniBridge.StringLength(jniRuntime{env}, ref(s)))
}

//export Java_com_example_primitives_Primitives_reverseString
func Java_com_example_primitives_Primitives_reverseString(env *C.JNIEnv, cls C.jclass, s C.jstring) C.jstring {
	js, _ := jniBridge.ReverseString(jniRuntime{env}, ref(s)).(C.jstring)
	return js
}

//export Java_com_example_primitives_Primitives_sumArray
func Java_com_example_primitives_Primitives_sumArray(env *C.JNIEnv, cls C.jclass, arr C.jintArray) C.jint {
	var r Ref
	if arr != nil {
		r = arr
	}
	return C.jint(jniBridge.SumArray(jniRuntime{env}, r))
}

// ref keeps a null jstring a nil Ref.
func ref(s C.jstring) Ref {
	if s == nil {
		return nil
	}
	return s
}
