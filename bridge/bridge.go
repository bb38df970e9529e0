package bridge

import (
	"go.uber.org/zap"

	"github.com/wippyai/ffi-primitives/boundary"
	"github.com/wippyai/ffi-primitives/core"
	"github.com/wippyai/ffi-primitives/errors"
)

// Exception classes thrown by the bridge.
const (
	NullPointerException     = "java/lang/NullPointerException"
	IllegalArgumentException = "java/lang/IllegalArgumentException"
	OutOfMemoryError         = "java/lang/OutOfMemoryError"
)

// Ref is an opaque managed reference. The nil Ref is the null reference.
type Ref = any

// Runtime is the managed environment of the current call.
type Runtime interface {
	// StringChars returns the UTF-16 code units of s. ok is false for the
	// null reference.
	StringChars(s Ref) (chars []uint16, ok bool)
	// NewString creates a managed string. It returns nil if the runtime
	// could not allocate it, in which case an exception is pending.
	NewString(chars []uint16) Ref
	// IntArray returns a copy of the elements of a. ok is false for the
	// null reference.
	IntArray(a Ref) (xs []int32, ok bool)
	// Throw raises an exception of the given class. The bridge returns
	// immediately afterwards.
	Throw(class, msg string)
}

// Native is the foreign-function façade the bridge calls for operations
// that take or return buffers. Pointers of type P are native addresses;
// the zero P is the null pointer.
type Native[P comparable] interface {
	// Scratch is the heap the bridge allocates argument buffers on.
	Scratch() boundary.Heap[P]
	StringLength(s P) int32
	ReverseString(s P) P
	FreeString(s P)
	// Text copies a NUL-terminated native string.
	Text(s P) string
	SumArray(arr P, n int32) int32
}

// Bridge adapts a Native façade to a managed Runtime.
type Bridge[P comparable] struct {
	native Native[P]
}

// New creates a bridge over native.
func New[P comparable](native Native[P]) *Bridge[P] {
	return &Bridge[P]{native: native}
}

// Throw raises the managed exception matching err.
func Throw(rt Runtime, err error) {
	class := IllegalArgumentException
	switch {
	case errors.HasKind(err, errors.KindNullBuffer):
		class = NullPointerException
	case errors.HasKind(err, errors.KindAllocation):
		class = OutOfMemoryError
	}
	Logger().Debug("throwing", zap.String("class", class), zap.Error(err))
	rt.Throw(class, err.Error())
}

func (b *Bridge[P]) AddNumbers(x, y int32) int32 {
	return core.Add(x, y)
}

func (b *Bridge[P]) MultiplyDoubles(x, y float64) float64 {
	return core.Multiply(x, y)
}

// Factorial throws IllegalArgumentException for negative n.
func (b *Bridge[P]) Factorial(rt Runtime, n int32) int32 {
	v, err := core.Factorial(n)
	if err != nil {
		Throw(rt, err)
		return 0
	}
	return v
}

func (b *Bridge[P]) IsPrime(n int32) bool {
	return core.IsPrime(n)
}

// Fibonacci throws IllegalArgumentException for negative n.
func (b *Bridge[P]) Fibonacci(rt Runtime, n int32) int32 {
	v, err := core.Fibonacci(n)
	if err != nil {
		Throw(rt, err)
		return 0
	}
	return v
}

// text copies a managed string into a bridge-owned NUL-terminated buffer.
func (b *Bridge[P]) text(rt Runtime, op string, s Ref) (*boundary.Owned[P], bool) {
	chars, ok := rt.StringChars(s)
	if !ok {
		Throw(rt, errors.NullBuffer(errors.PhaseConvert, op))
		return nil, false
	}
	str, err := EncodeText(op, chars)
	if err != nil {
		Throw(rt, err)
		return nil, false
	}
	in, err := boundary.NewText(b.native.Scratch(), str)
	if err != nil {
		Throw(rt, err)
		return nil, false
	}
	return in, true
}

func (b *Bridge[P]) StringLength(rt Runtime, s Ref) int32 {
	in, ok := b.text(rt, "stringLength", s)
	if !ok {
		return 0
	}
	defer in.Release()
	return b.native.StringLength(in.Ptr())
}

// ReverseString returns nil when an exception was thrown.
func (b *Bridge[P]) ReverseString(rt Runtime, s Ref) Ref {
	in, ok := b.text(rt, "reverseString", s)
	if !ok {
		return nil
	}
	defer in.Release()

	var null P
	ptr := b.native.ReverseString(in.Ptr())
	if ptr == null {
		Throw(rt, errors.New(errors.PhaseAllocate, errors.KindAllocation).
			Op("reverseString").
			Detail("native reverse_string returned null").
			Build())
		return nil
	}

	out := boundary.Adopt(ptr, nil, b.native.FreeString)
	defer out.Release()
	return rt.NewString(DecodeText(b.native.Text(ptr)))
}

func (b *Bridge[P]) SumArray(rt Runtime, arr Ref) int32 {
	xs, ok := rt.IntArray(arr)
	if !ok {
		Throw(rt, errors.NullBuffer(errors.PhaseConvert, "sumArray"))
		return 0
	}
	buf, err := boundary.NewInt32s(b.native.Scratch(), xs)
	if err != nil {
		Throw(rt, err)
		return 0
	}
	defer buf.Release()
	return b.native.SumArray(buf.Ptr(), int32(len(xs)))
}
