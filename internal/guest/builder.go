// Package guest synthesises small WebAssembly guest modules that call a
// host module.
//
// A guest has one linear memory, a bump allocator exported as malloc and
// free, and one exported trampoline per host import with the same name and
// signature. Calling a trampoline calls the host with the guest as caller,
// which is what a real guest compiled from C or Rust does.
//
// The allocator never reuses memory. free only counts releases, so tests
// can check how many owned buffers were handed back.
package guest

import (
	"github.com/tetratelabs/wazero/api"
)

// Export names of the allocator.
const (
	ExportMemory      = "memory"
	ExportMalloc      = "malloc"
	ExportFree        = "free"
	ExportMallocCount = "malloc_count"
	ExportFreeCount   = "free_count"
)

// DefaultHeapBase is the first address malloc hands out. Memory below it
// is left for the caller's static data.
const DefaultHeapBase = 1024

// Builder builds guest module binaries.
type Builder struct {
	hostModuleName string
	funcs          []hostFunc
	pages          uint32
	heapBase       uint32
	allocator      bool
	mallocName     string
	freeName       string
}

type hostFunc struct {
	name    string
	params  []api.ValueType
	results []api.ValueType
}

// NewBuilder creates a builder for a guest importing from hostModuleName.
func NewBuilder(hostModuleName string) *Builder {
	return &Builder{
		hostModuleName: hostModuleName,
		pages:          1,
		heapBase:       DefaultHeapBase,
		allocator:      true,
		mallocName:     ExportMalloc,
		freeName:       ExportFree,
	}
}

// AddFunc imports name from the host module and exports a trampoline of
// the same name.
func (b *Builder) AddFunc(name string, params, results []api.ValueType) {
	b.funcs = append(b.funcs, hostFunc{name: name, params: params, results: results})
}

// SetPages sets the size of linear memory in 64KiB pages. Memory never
// grows, so this bounds what malloc can hand out.
func (b *Builder) SetPages(n uint32) {
	b.pages = n
}

// SetHeapBase sets the first address returned by malloc. It is rounded
// up to a multiple of 8 and must not be 0.
func (b *Builder) SetHeapBase(addr uint32) {
	b.heapBase = (addr + 7) &^ 7
}

// SetAllocatorNames exports malloc and free under other names.
func (b *Builder) SetAllocatorNames(malloc, free string) {
	b.mallocName = malloc
	b.freeName = free
}

// WithoutAllocator omits malloc, free and the counters, producing a guest
// the host cannot return owned buffers to.
func (b *Builder) WithoutAllocator() {
	b.allocator = false
}

// Build generates the module bytes.
func (b *Builder) Build() []byte {
	n := uint32(len(b.funcs))

	var wasm []byte
	wasm = append(wasm, 0x00, 0x61, 0x73, 0x6d)
	wasm = append(wasm, 0x01, 0x00, 0x00, 0x00)

	wasm = append(wasm, section(0x01, b.buildTypeSection())...)
	if n > 0 {
		wasm = append(wasm, section(0x02, b.buildImportSection())...)
	}
	wasm = append(wasm, section(0x03, b.buildFuncSection())...)
	wasm = append(wasm, section(0x05, b.buildMemorySection())...)
	if b.allocator {
		wasm = append(wasm, section(0x06, b.buildGlobalSection())...)
	}
	wasm = append(wasm, section(0x07, b.buildExportSection())...)
	wasm = append(wasm, section(0x0a, b.buildCodeSection())...)

	return wasm
}

// Type indices after the host function types.
func (b *Builder) mallocType() uint32  { return uint32(len(b.funcs)) }
func (b *Builder) freeType() uint32    { return uint32(len(b.funcs)) + 1 }
func (b *Builder) counterType() uint32 { return uint32(len(b.funcs)) + 2 }

// Function indices: imports, then trampolines, then the allocator.
func (b *Builder) trampolineIndex(i int) uint32 { return uint32(len(b.funcs) + i) }
func (b *Builder) mallocIndex() uint32          { return uint32(2 * len(b.funcs)) }

func (b *Builder) buildTypeSection() []byte {
	count := uint32(len(b.funcs))
	if b.allocator {
		count += 3
	}

	var s []byte
	s = append(s, encodeULEB128(count)...)
	for _, f := range b.funcs {
		s = append(s, funcType(f.params, f.results)...)
	}
	if b.allocator {
		i32 := []api.ValueType{api.ValueTypeI32}
		s = append(s, funcType(i32, i32)...)
		s = append(s, funcType(i32, nil)...)
		s = append(s, funcType(nil, i32)...)
	}
	return s
}

func funcType(params, results []api.ValueType) []byte {
	s := []byte{0x60}
	s = append(s, encodeULEB128(uint32(len(params)))...)
	for _, t := range params {
		s = append(s, valType(t))
	}
	s = append(s, encodeULEB128(uint32(len(results)))...)
	for _, t := range results {
		s = append(s, valType(t))
	}
	return s
}

func (b *Builder) buildImportSection() []byte {
	var s []byte
	s = append(s, encodeULEB128(uint32(len(b.funcs)))...)
	for i, f := range b.funcs {
		s = append(s, encodeName(b.hostModuleName)...)
		s = append(s, encodeName(f.name)...)
		s = append(s, 0x00)
		s = append(s, encodeULEB128(uint32(i))...)
	}
	return s
}

func (b *Builder) buildFuncSection() []byte {
	var types []uint32
	for i := range b.funcs {
		types = append(types, uint32(i))
	}
	if b.allocator {
		types = append(types, b.mallocType(), b.freeType(), b.counterType(), b.counterType())
	}

	var s []byte
	s = append(s, encodeULEB128(uint32(len(types)))...)
	for _, t := range types {
		s = append(s, encodeULEB128(t)...)
	}
	return s
}

func (b *Builder) buildMemorySection() []byte {
	s := []byte{0x01, 0x00}
	return append(s, encodeULEB128(b.pages)...)
}

// Globals: 0 is the bump pointer, 1 counts mallocs, 2 counts frees.
func (b *Builder) buildGlobalSection() []byte {
	var s []byte
	s = append(s, 0x03)
	for _, init := range []int32{int32(b.heapBase), 0, 0} {
		s = append(s, 0x7f, 0x01, 0x41)
		s = append(s, encodeSLEB128(init)...)
		s = append(s, 0x0b)
	}
	return s
}

func (b *Builder) buildExportSection() []byte {
	type export struct {
		name  string
		kind  byte
		index uint32
	}
	exports := []export{{ExportMemory, 0x02, 0}}
	for i, f := range b.funcs {
		exports = append(exports, export{f.name, 0x00, b.trampolineIndex(i)})
	}
	if b.allocator {
		base := b.mallocIndex()
		exports = append(exports,
			export{b.mallocName, 0x00, base},
			export{b.freeName, 0x00, base + 1},
			export{ExportMallocCount, 0x00, base + 2},
			export{ExportFreeCount, 0x00, base + 3},
		)
	}

	var s []byte
	s = append(s, encodeULEB128(uint32(len(exports)))...)
	for _, e := range exports {
		s = append(s, encodeName(e.name)...)
		s = append(s, e.kind)
		s = append(s, encodeULEB128(e.index)...)
	}
	return s
}

func (b *Builder) buildCodeSection() []byte {
	var bodies [][]byte
	for i, f := range b.funcs {
		bodies = append(bodies, trampolineBody(uint32(i), len(f.params)))
	}
	if b.allocator {
		bodies = append(bodies, mallocBody(), freeBody(), counterBody(1), counterBody(2))
	}

	var s []byte
	s = append(s, encodeULEB128(uint32(len(bodies)))...)
	for _, body := range bodies {
		s = append(s, encodeULEB128(uint32(len(body)))...)
		s = append(s, body...)
	}
	return s
}

func trampolineBody(importIdx uint32, params int) []byte {
	body := []byte{0x00}
	for i := 0; i < params; i++ {
		body = append(body, 0x20)
		body = append(body, encodeULEB128(uint32(i))...)
	}
	body = append(body, 0x10)
	body = append(body, encodeULEB128(importIdx)...)
	return append(body, 0x0b)
}

// mallocBody rounds size up to 8 and bumps the heap pointer, returning 0
// when the block would not fit in memory.
//
//	(local $top i32)
//	global.get $heap
//	local.get $size
//	i32.const 7
//	i32.add
//	i32.const -8
//	i32.and
//	i32.add
//	local.tee $top
//	memory.size
//	i32.const 16
//	i32.shl
//	i32.gt_u
//	local.get $top
//	global.get $heap
//	i32.lt_u
//	i32.or
//	if (result i32)
//	  i32.const 0
//	else
//	  global.get $mallocs
//	  i32.const 1
//	  i32.add
//	  global.set $mallocs
//	  global.get $heap
//	  local.get $top
//	  global.set $heap
//	end
func mallocBody() []byte {
	return []byte{
		0x01, 0x01, 0x7f,
		0x23, 0x00,
		0x20, 0x00,
		0x41, 0x07,
		0x6a,
		0x41, 0x78,
		0x71,
		0x6a,
		0x22, 0x01,
		0x3f, 0x00,
		0x41, 0x10,
		0x74,
		0x4b,
		0x20, 0x01,
		0x23, 0x00,
		0x49,
		0x72,
		0x04, 0x7f,
		0x41, 0x00,
		0x05,
		0x23, 0x01,
		0x41, 0x01,
		0x6a,
		0x24, 0x01,
		0x23, 0x00,
		0x20, 0x01,
		0x24, 0x00,
		0x0b,
		0x0b,
	}
}

// freeBody counts non-null releases.
//
//	local.get $ptr
//	if
//	  global.get $frees
//	  i32.const 1
//	  i32.add
//	  global.set $frees
//	end
func freeBody() []byte {
	return []byte{
		0x00,
		0x20, 0x00,
		0x04, 0x40,
		0x23, 0x02,
		0x41, 0x01,
		0x6a,
		0x24, 0x02,
		0x0b,
		0x0b,
	}
}

func counterBody(global byte) []byte {
	return []byte{0x00, 0x23, global, 0x0b}
}
