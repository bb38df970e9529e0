package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseBorrow,
				Kind:   KindInvalidUTF8,
				Op:     "string_length",
				Detail: "bad byte",
			},
			contains: []string{"[borrow]", "invalid_utf8", "in string_length", "bad byte"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseRelease,
				Kind:  KindUnknownBuffer,
			},
			contains: []string{"[release]", "unknown_buffer"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseAllocate,
				Kind:   KindAllocation,
				Detail: "guest heap exhausted",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[allocate]", "allocation", "guest heap exhausted", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseConvert,
		Kind:  KindUnencodable,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseBorrow,
		Kind:  KindNullBuffer,
		Op:    "reverse_string",
	}

	if !err.Is(&Error{Phase: PhaseBorrow, Kind: KindNullBuffer}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseConvert, Kind: KindNullBuffer}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseBorrow, Kind: KindInvalidUTF8}) {
		t.Error("Is should not match different kind")
	}
	if !err.Is(&Error{Kind: KindNullBuffer}) {
		t.Error("Is should match any phase when target phase is empty")
	}

	wrapped := fmt.Errorf("call failed: %w", err)
	if !errors.Is(wrapped, &Error{Phase: PhaseBorrow, Kind: KindNullBuffer}) {
		t.Error("errors.Is should match through fmt wrapping")
	}
}

func TestHasKind(t *testing.T) {
	inner := NegativeInput("fibonacci", -3)
	outer := Wrap(PhaseConvert, KindUnencodable, inner, "bridge call")

	if !HasKind(outer, KindUnencodable) {
		t.Error("HasKind should match the outer kind")
	}
	if !HasKind(outer, KindNegativeInput) {
		t.Error("HasKind should match a wrapped kind")
	}
	if HasKind(outer, KindAllocation) {
		t.Error("HasKind should not match an absent kind")
	}
	if HasKind(nil, KindAllocation) {
		t.Error("HasKind(nil) should be false")
	}
	if HasKind(errors.New("plain"), KindAllocation) {
		t.Error("HasKind should be false for foreign errors")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseBorrow, KindOutOfBounds).
		Op("sum_array").
		Value(4096).
		Cause(cause).
		Detail("expected %d elements, memory holds %d", 10, 2).
		Build()

	if err.Phase != PhaseBorrow {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseBorrow)
	}
	if err.Kind != KindOutOfBounds {
		t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
	}
	if err.Op != "sum_array" {
		t.Errorf("Op = %v, want sum_array", err.Op)
	}
	if err.Value != 4096 {
		t.Errorf("Value = %v, want 4096", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected 10 elements, memory holds 2" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("NullBuffer", func(t *testing.T) {
		err := NullBuffer(PhaseBorrow, "string_length")
		if err.Kind != KindNullBuffer || err.Op != "string_length" {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		data := make([]byte, 40)
		data[0] = 0xff
		err := InvalidUTF8(PhaseBorrow, "reverse_string", data)
		if err.Kind != KindInvalidUTF8 {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidUTF8)
		}
		if !strings.HasPrefix(err.Detail, "invalid UTF-8 sequence: ff") {
			t.Errorf("Detail = %q", err.Detail)
		}
		if len(err.Detail) > len("invalid UTF-8 sequence: ")+64 {
			t.Errorf("Detail preview not truncated: %q", err.Detail)
		}
	})

	t.Run("InvalidLength", func(t *testing.T) {
		err := InvalidLength(PhaseBorrow, "sum_array", -2)
		if err.Kind != KindInvalidLength || err.Value != int64(-2) {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseBorrow, "string_length", 65530, 10, 65536)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if !strings.Contains(err.Detail, "65540") {
			t.Errorf("Detail = %q, should contain end offset", err.Detail)
		}
	})

	t.Run("AllocationFailed", func(t *testing.T) {
		err := AllocationFailed(PhaseAllocate, 1024)
		if err.Kind != KindAllocation {
			t.Errorf("Kind = %v, want %v", err.Kind, KindAllocation)
		}
		if !strings.Contains(err.Detail, "1024") {
			t.Errorf("Detail = %v, should contain size", err.Detail)
		}
	})

	t.Run("NegativeInput", func(t *testing.T) {
		err := NegativeInput("factorial", -1)
		if err.Phase != PhaseCompute || err.Kind != KindNegativeInput {
			t.Errorf("got %+v", err)
		}
		if err.Value != int32(-1) {
			t.Errorf("Value = %v, want -1", err.Value)
		}
	})

	t.Run("Unencodable", func(t *testing.T) {
		err := Unencodable(PhaseConvert, "reverseString", "embedded NUL")
		if err.Kind != KindUnencodable || err.Detail != "embedded NUL" {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("UnknownBuffer", func(t *testing.T) {
		err := UnknownBuffer("free_string", uint32(2048))
		if err.Phase != PhaseRelease || err.Kind != KindUnknownBuffer {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("Registration", func(t *testing.T) {
		cause := errors.New("duplicate")
		err := Registration("primitives", "add_numbers", cause)
		if err.Kind != KindRegistration || !errors.Is(err, cause) {
			t.Errorf("got %+v", err)
		}
		if !strings.Contains(err.Error(), "primitives#add_numbers") {
			t.Errorf("Error() = %q", err.Error())
		}
	})
}

func TestMissingExportsError(t *testing.T) {
	t.Run("lists exports", func(t *testing.T) {
		err := NewMissingExportsError("guest", []string{"memory", "malloc"})
		msg := err.Error()
		for _, want := range []string{`"guest"`, "2 export(s)", "- memory", "- malloc"} {
			if !strings.Contains(msg, want) {
				t.Errorf("error %q should contain %q", msg, want)
			}
		}
	})

	t.Run("empty", func(t *testing.T) {
		err := NewMissingExportsError("guest", nil)
		if !strings.Contains(err.Error(), "no exports specified") {
			t.Errorf("unexpected message: %q", err.Error())
		}
	})

	t.Run("errors.Is", func(t *testing.T) {
		var err error = NewMissingExportsError("guest", []string{"free"})
		if !errors.Is(err, &MissingExportsError{}) {
			t.Error("should match *MissingExportsError")
		}
		if !errors.Is(err, &Error{Kind: KindMissingExport}) {
			t.Error("should match KindMissingExport")
		}
		if errors.Is(err, &Error{Kind: KindAllocation}) {
			t.Error("should not match other kinds")
		}
	})
}
