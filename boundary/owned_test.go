package boundary

import (
	"encoding/binary"
	"testing"

	"github.com/wippyai/ffi-primitives/errors"
)

func TestOwned_ReleaseIsIdempotent(t *testing.T) {
	h := newTestHeap()
	o, err := NewText(h, "hello")
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	ptr := o.Ptr()
	if ptr == 0 || !o.Live() {
		t.Fatalf("new handle should be live with a non-null pointer")
	}

	o.Release()
	o.Release()
	o.Release()

	if len(h.frees) != 1 || h.frees[0] != ptr {
		t.Errorf("frees = %v, want exactly [%d]", h.frees, ptr)
	}
	if len(h.invalid) != 0 {
		t.Errorf("invalid frees = %v", h.invalid)
	}
	if o.Live() || o.Ptr() != 0 || o.Bytes() != nil {
		t.Error("released handle should be dead")
	}
}

func TestOwned_Detach(t *testing.T) {
	h := newTestHeap()
	o, err := NewText(h, "abc")
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}

	ptr := o.Detach()
	if ptr == 0 {
		t.Fatal("Detach returned null")
	}
	o.Release()
	if len(h.frees) != 0 {
		t.Errorf("Release after Detach freed %v", h.frees)
	}
	if again := o.Detach(); again != 0 {
		t.Errorf("second Detach = %d, want 0", again)
	}

	Release(h, ptr)
	if h.live() != 0 {
		t.Errorf("live blocks = %d after paired release", h.live())
	}
}

func TestOwned_Nil(t *testing.T) {
	var o *Owned[uint32]
	o.Release()
	if o.Live() || o.Ptr() != 0 || o.Detach() != 0 || o.Bytes() != nil {
		t.Error("nil handle should behave as released null")
	}
}

func TestAdopt_Null(t *testing.T) {
	calls := 0
	o := Adopt[uint32](0, nil, func(uint32) { calls++ })
	o.Release()
	if o.Live() || calls != 0 {
		t.Errorf("adopting null should give a dead handle, release calls = %d", calls)
	}
}

func TestNewText(t *testing.T) {
	h := newTestHeap()
	o, err := NewText(h, "héllo")
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	defer o.Release()

	data := o.Bytes()
	if len(data) != 7 {
		t.Fatalf("len = %d, want 7 (6 bytes + NUL)", len(data))
	}
	if string(data[:6]) != "héllo" || data[6] != 0 {
		t.Errorf("data = %q", data)
	}
}

func TestNewText_Empty(t *testing.T) {
	h := newTestHeap()
	o, err := NewText(h, "")
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	if got := o.Bytes(); len(got) != 1 || got[0] != 0 {
		t.Errorf("empty text = %v, want [0]", got)
	}
	o.Release()
	if h.live() != 0 {
		t.Error("empty text block leaked")
	}
}

func TestNewText_EmbeddedNUL(t *testing.T) {
	h := newTestHeap()
	_, err := NewText(h, "a\x00b")
	if !errors.HasKind(err, errors.KindUnencodable) {
		t.Fatalf("err = %v, want unencodable", err)
	}
	if h.allocs != 0 {
		t.Error("rejected text should not allocate")
	}
}

func TestNewText_AllocationFailure(t *testing.T) {
	h := newTestHeap()
	h.fail = true
	o, err := NewText(h, "x")
	if err == nil || o != nil {
		t.Fatalf("NewText on exhausted heap = %v, %v", o, err)
	}
}

type nullHeap struct{ testHeap }

func (h *nullHeap) Alloc(uint32) (uint32, []byte, error) { return 0, nil, nil }

func TestNewText_NullFromHeap(t *testing.T) {
	_, err := NewText(&nullHeap{}, "x")
	if !errors.HasKind(err, errors.KindAllocation) {
		t.Fatalf("err = %v, want allocation", err)
	}
}

func TestNewInt32s(t *testing.T) {
	h := newTestHeap()
	o, err := NewInt32s(h, []int32{1, -2, 3})
	if err != nil {
		t.Fatalf("NewInt32s: %v", err)
	}
	defer o.Release()

	data := o.Bytes()
	if len(data) != 12 {
		t.Fatalf("len = %d, want 12", len(data))
	}
	want := []int32{1, -2, 3}
	for i, w := range want {
		if got := int32(binary.LittleEndian.Uint32(data[i*4:])); got != w {
			t.Errorf("element %d = %d, want %d", i, got, w)
		}
	}
}

func TestNewInt32s_Empty(t *testing.T) {
	h := newTestHeap()
	o, err := NewInt32s(h, nil)
	if err != nil || o != nil {
		t.Fatalf("NewInt32s(nil) = %v, %v", o, err)
	}
	o.Release()
	if h.allocs != 0 {
		t.Error("empty sequence should not allocate")
	}
}
