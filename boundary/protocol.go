package boundary

import (
	"unicode/utf8"

	"github.com/wippyai/ffi-primitives/core"
	"github.com/wippyai/ffi-primitives/errors"
)

// DecodeText validates a borrowed text buffer and copies it into a Go
// string. The copy means nothing derived from the result aliases caller
// memory.
func DecodeText(op string, b Borrowed[byte]) (string, error) {
	if b.IsNull() {
		return "", errors.NullBuffer(errors.PhaseBorrow, op)
	}
	if !utf8.Valid(b.view) {
		return "", errors.InvalidUTF8(errors.PhaseBorrow, op, b.view)
	}
	return string(b.view), nil
}

// StringLength is the protocol form of core.StringLength. On failure it
// returns SentinelLength alongside the error.
func StringLength(op string, b Borrowed[byte]) (int32, error) {
	if b.IsNull() {
		return SentinelLength, errors.NullBuffer(errors.PhaseBorrow, op)
	}
	if !utf8.Valid(b.view) {
		return SentinelLength, errors.InvalidUTF8(errors.PhaseBorrow, op, b.view)
	}
	return core.StringLength(string(b.view)), nil
}

// ReverseString is the protocol form of core.ReverseString: the reversed
// text is returned as an Owned NUL-terminated block on h.
func ReverseString[P comparable](op string, h Heap[P], b Borrowed[byte]) (*Owned[P], error) {
	s, err := DecodeText(op, b)
	if err != nil {
		return nil, err
	}
	out, err := NewText(h, core.ReverseString(s))
	if err != nil {
		if e, ok := err.(*errors.Error); ok && e.Op == "" {
			e.Op = op
		}
		return nil, err
	}
	return out, nil
}

// CheckSequence validates a (pointer, count) pair and returns the element
// count to read. A zero count is a valid empty sequence.
func CheckSequence(op string, null bool, count int64) (int, error) {
	if null {
		return 0, errors.NullBuffer(errors.PhaseBorrow, op)
	}
	if count < 0 {
		return 0, errors.InvalidLength(errors.PhaseBorrow, op, count)
	}
	return int(count), nil
}

// SumArray is the protocol form of core.SumArray. A null buffer sums to 0.
func SumArray(b Borrowed[int32]) int32 {
	if b.IsNull() {
		return 0
	}
	return core.SumArray(b.view)
}

// Release frees ptr on h. The null pointer is ignored.
func Release[P comparable](h Heap[P], ptr P) {
	var zero P
	if ptr == zero {
		return
	}
	h.Free(ptr)
}
