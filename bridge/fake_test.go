package bridge

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/wippyai/ffi-primitives/boundary"
)

// managed string and array references
type jstring struct{ chars []uint16 }
type jarray struct{ xs []int32 }

type thrown struct {
	class, msg string
}

type fakeRuntime struct {
	thrown   []thrown
	failNew  bool
	newCalls int
}

func (r *fakeRuntime) StringChars(s Ref) ([]uint16, bool) {
	js, _ := s.(*jstring)
	if js == nil {
		return nil, false
	}
	return js.chars, true
}

func (r *fakeRuntime) NewString(chars []uint16) Ref {
	r.newCalls++
	if r.failNew {
		r.Throw(OutOfMemoryError, "managed heap exhausted")
		return nil
	}
	return &jstring{chars: append([]uint16(nil), chars...)}
}

func (r *fakeRuntime) IntArray(a Ref) ([]int32, bool) {
	ja, _ := a.(*jarray)
	if ja == nil {
		return nil, false
	}
	return append([]int32(nil), ja.xs...), true
}

func (r *fakeRuntime) Throw(class, msg string) {
	r.thrown = append(r.thrown, thrown{class, msg})
}

func str(s string) *jstring {
	return &jstring{chars: DecodeText(s)}
}

func goString(r Ref) string {
	js, _ := r.(*jstring)
	if js == nil {
		return "<nil>"
	}
	s, err := EncodeText("test", js.chars)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return s
}

// fakeHeap addresses are small positive ints; 0 is null.
type fakeHeap struct {
	blocks map[int][]byte
	next   int
	frees  []int
	bad    []int
	fail   bool
}

func newFakeHeap() *fakeHeap {
	return &fakeHeap{blocks: make(map[int][]byte), next: 1}
}

func (h *fakeHeap) Alloc(size uint32) (int, []byte, error) {
	if h.fail {
		return 0, nil, nil
	}
	p := h.next
	h.next++
	h.blocks[p] = make([]byte, size)
	return p, h.blocks[p], nil
}

func (h *fakeHeap) Free(p int) {
	if _, ok := h.blocks[p]; !ok {
		h.bad = append(h.bad, p)
		return
	}
	delete(h.blocks, p)
	h.frees = append(h.frees, p)
}

func (h *fakeHeap) ByteOrder() binary.ByteOrder { return binary.LittleEndian }

// fakeNative is a façade over fakeHeap built on the same protocol code
// as the real ones.
type fakeNative struct {
	heap        *fakeHeap
	nullReverse bool
}

func newFakeNative() *fakeNative {
	return &fakeNative{heap: newFakeHeap()}
}

func (n *fakeNative) Scratch() boundary.Heap[int] { return n.heap }

func (n *fakeNative) borrow(p int) boundary.Borrowed[byte] {
	data, ok := n.heap.blocks[p]
	if !ok {
		return boundary.Borrowed[byte]{}
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return boundary.Borrow(data)
}

func (n *fakeNative) StringLength(p int) int32 {
	v, _ := boundary.StringLength("string_length", n.borrow(p))
	return v
}

func (n *fakeNative) ReverseString(p int) int {
	if n.nullReverse {
		return 0
	}
	out, err := boundary.ReverseString("reverse_string", boundary.Heap[int](n.heap), n.borrow(p))
	if err != nil {
		return 0
	}
	return out.Detach()
}

func (n *fakeNative) FreeString(p int) {
	boundary.Release(boundary.Heap[int](n.heap), p)
}

func (n *fakeNative) Text(p int) string {
	return string(n.borrow(p).View())
}

func (n *fakeNative) SumArray(p int, count int32) int32 {
	if p == 0 || count <= 0 {
		return 0
	}
	data := n.heap.blocks[p]
	xs := make([]int32, count)
	for i := range xs {
		xs[i] = int32(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return boundary.SumArray(boundary.Borrow(xs))
}

func (n *fakeNative) String() string {
	return fmt.Sprintf("live=%d frees=%v bad=%v", len(n.heap.blocks), n.heap.frees, n.heap.bad)
}
