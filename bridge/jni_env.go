//go:build cgo && jni

package bridge

/*
#include <jni.h>
#include <stdlib.h>

static jsize jstr_length(JNIEnv *env, jstring s) {
	return (*env)->GetStringLength(env, s);
}

static void jstr_region(JNIEnv *env, jstring s, jsize n, jchar *buf) {
	(*env)->GetStringRegion(env, s, 0, n, buf);
}

static jstring jstr_new(JNIEnv *env, const jchar *chars, jsize n) {
	return (*env)->NewString(env, chars, n);
}

static jsize array_length(JNIEnv *env, jintArray a) {
	return (*env)->GetArrayLength(env, a);
}

static void int_region(JNIEnv *env, jintArray a, jsize n, jint *buf) {
	(*env)->GetIntArrayRegion(env, a, 0, n, buf);
}

static void throw_new(JNIEnv *env, const char *cls, const char *msg) {
	jclass c = (*env)->FindClass(env, cls);
	if (c != NULL) {
		(*env)->ThrowNew(env, c, msg);
	}
}
*/
import "C"

import "unsafe"

// jniRuntime implements Runtime over the JNIEnv of one native call.
type jniRuntime struct {
	env *C.JNIEnv
}

func (r jniRuntime) StringChars(s Ref) ([]uint16, bool) {
	js, _ := s.(C.jstring)
	if js == nil {
		return nil, false
	}
	n := C.jstr_length(r.env, js)
	chars := make([]uint16, int(n))
	if n > 0 {
		C.jstr_region(r.env, js, n, (*C.jchar)(unsafe.Pointer(&chars[0])))
	}
	return chars, true
}

func (r jniRuntime) NewString(chars []uint16) Ref {
	var p *C.jchar
	if len(chars) > 0 {
		p = (*C.jchar)(unsafe.Pointer(&chars[0]))
	}
	js := C.jstr_new(r.env, p, C.jsize(len(chars)))
	if js == nil {
		return nil
	}
	return js
}

func (r jniRuntime) IntArray(a Ref) ([]int32, bool) {
	ja, _ := a.(C.jintArray)
	if ja == nil {
		return nil, false
	}
	n := C.array_length(r.env, ja)
	xs := make([]int32, int(n))
	if n > 0 {
		C.int_region(r.env, ja, n, (*C.jint)(unsafe.Pointer(&xs[0])))
	}
	return xs, true
}

func (r jniRuntime) Throw(class, msg string) {
	cls := C.CString(class)
	defer C.free(unsafe.Pointer(cls))
	cmsg := C.CString(msg)
	defer C.free(unsafe.Pointer(cmsg))
	C.throw_new(r.env, cls, cmsg)
}
