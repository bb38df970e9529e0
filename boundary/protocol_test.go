package boundary

import (
	"testing"

	"github.com/wippyai/ffi-primitives/errors"
)

func TestDecodeText(t *testing.T) {
	s, err := DecodeText("op", Borrow([]byte("hello")))
	if err != nil || s != "hello" {
		t.Errorf("DecodeText = %q, %v", s, err)
	}

	if _, err := DecodeText("op", Borrowed[byte]{}); !errors.HasKind(err, errors.KindNullBuffer) {
		t.Errorf("null err = %v", err)
	}
	if _, err := DecodeText("op", Borrow([]byte{0xc3, 0x28})); !errors.HasKind(err, errors.KindInvalidUTF8) {
		t.Errorf("invalid err = %v", err)
	}

	empty, err := DecodeText("op", Borrow([]byte{}))
	if err != nil || empty != "" {
		t.Errorf("empty = %q, %v", empty, err)
	}
}

func TestDecodeText_DoesNotAlias(t *testing.T) {
	buf := []byte("abc")
	s, err := DecodeText("op", Borrow(buf))
	if err != nil {
		t.Fatal(err)
	}
	buf[0] = 'z'
	if s != "abc" {
		t.Errorf("decoded text changed with caller memory: %q", s)
	}
}

func TestStringLength(t *testing.T) {
	tests := []struct {
		name    string
		in      Borrowed[byte]
		want    int32
		wantErr errors.Kind
	}{
		{"hello", Borrow([]byte("hello")), 5, ""},
		{"multibyte", Borrow([]byte("日本")), 6, ""},
		{"empty", Borrow([]byte{}), 0, ""},
		{"null", Borrowed[byte]{}, SentinelLength, errors.KindNullBuffer},
		{"invalid", Borrow([]byte{0xff}), SentinelLength, errors.KindInvalidUTF8},
		{"surrogate", Borrow([]byte{0xed, 0xa0, 0x80}), SentinelLength, errors.KindInvalidUTF8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StringLength("string_length", tt.in)
			if got != tt.want {
				t.Errorf("StringLength = %d, want %d", got, tt.want)
			}
			if tt.wantErr == "" && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != "" && !errors.HasKind(err, tt.wantErr) {
				t.Errorf("err = %v, want %s", err, tt.wantErr)
			}
		})
	}
}

func TestReverseString(t *testing.T) {
	h := newTestHeap()

	out, err := ReverseString("reverse_string", h, Borrow([]byte("a🦀b")))
	if err != nil {
		t.Fatalf("ReverseString: %v", err)
	}
	if got := string(out.Bytes()); got != "b🦀a\x00" {
		t.Errorf("reversed = %q", got)
	}
	out.Release()

	if _, err := ReverseString("reverse_string", h, Borrowed[byte]{}); !errors.HasKind(err, errors.KindNullBuffer) {
		t.Errorf("null err = %v", err)
	}
	if _, err := ReverseString("reverse_string", h, Borrow([]byte{0x80})); !errors.HasKind(err, errors.KindInvalidUTF8) {
		t.Errorf("invalid err = %v", err)
	}

	h.fail = true
	if _, err := ReverseString("reverse_string", h, Borrow([]byte("x"))); err == nil {
		t.Error("allocation failure should surface")
	}

	if h.allocs != 1 || len(h.frees) != 1 || h.live() != 0 {
		t.Errorf("allocs=%d frees=%d live=%d", h.allocs, len(h.frees), h.live())
	}
}

func TestReverseString_RoundTrip(t *testing.T) {
	h := newTestHeap()
	inputs := []string{"", "hello", "Hello, World!", "héllo wörld", "日本語テキスト", "🦀🐹🐍"}
	for _, s := range inputs {
		once, err := ReverseString("reverse_string", h, Borrow([]byte(s)))
		if err != nil {
			t.Fatalf("reverse %q: %v", s, err)
		}
		view := once.Bytes()
		twice, err := ReverseString("reverse_string", h, Borrow(view[:len(view)-1]))
		if err != nil {
			t.Fatalf("reverse twice %q: %v", s, err)
		}
		back := twice.Bytes()
		if got := string(back[:len(back)-1]); got != s {
			t.Errorf("round trip of %q = %q", s, got)
		}
		once.Release()
		twice.Release()
	}
	if h.live() != 0 {
		t.Errorf("%d blocks leaked", h.live())
	}
}

func TestCheckSequence(t *testing.T) {
	if n, err := CheckSequence("sum_array", false, 5); n != 5 || err != nil {
		t.Errorf("valid = %d, %v", n, err)
	}
	if n, err := CheckSequence("sum_array", false, 0); n != 0 || err != nil {
		t.Errorf("empty = %d, %v", n, err)
	}
	if _, err := CheckSequence("sum_array", true, 3); !errors.HasKind(err, errors.KindNullBuffer) {
		t.Errorf("null err = %v", err)
	}
	if _, err := CheckSequence("sum_array", false, -1); !errors.HasKind(err, errors.KindInvalidLength) {
		t.Errorf("negative err = %v", err)
	}
}

func TestSumArray(t *testing.T) {
	if got := SumArray(Borrow([]int32{1, 2, 3, 4, 5})); got != 15 {
		t.Errorf("SumArray = %d, want 15", got)
	}
	if got := SumArray(Borrowed[int32]{}); got != 0 {
		t.Errorf("null SumArray = %d, want 0", got)
	}
	if got := SumArray(Borrow([]int32{})); got != 0 {
		t.Errorf("empty SumArray = %d, want 0", got)
	}
}

func TestRelease_Null(t *testing.T) {
	h := newTestHeap()
	Release(h, 0)
	if len(h.frees) != 0 || len(h.invalid) != 0 {
		t.Error("releasing null should not reach the heap")
	}
}

func TestEdgePolicies(t *testing.T) {
	if Bool(true) != 1 || Bool(false) != 0 {
		t.Error("Bool encoding")
	}
	if v, err := Factorial(5); v != 120 || err != nil {
		t.Errorf("Factorial(5) = %d, %v", v, err)
	}
	if v, err := Factorial(-3); v != SentinelNegative || !errors.HasKind(err, errors.KindNegativeInput) {
		t.Errorf("Factorial(-3) = %d, %v", v, err)
	}
	if v, err := Fibonacci(10); v != 55 || err != nil {
		t.Errorf("Fibonacci(10) = %d, %v", v, err)
	}
	if v, err := Fibonacci(-1); v != SentinelNegative || err == nil {
		t.Errorf("Fibonacci(-1) = %d, %v", v, err)
	}
}
