package wasmhost

import (
	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/ffi-primitives"
	"github.com/wippyai/ffi-primitives/internal/guest"
)

// CoreTypes lowers a catalogue signature to core WebAssembly types.
// ok is false if the signature uses a type with no core lowering.
func CoreTypes(sig primitives.Signature) (params, results []api.ValueType, ok bool) {
	for _, p := range sig.Params {
		flat, ok := lower(p.Type)
		if !ok {
			return nil, nil, false
		}
		params = append(params, flat...)
	}
	if sig.Result != nil {
		flat, ok := lower(sig.Result)
		if !ok {
			return nil, nil, false
		}
		results = flat
	}
	return params, results, true
}

// ParamNames returns the names of the lowered parameters.
func ParamNames(sig primitives.Signature) []string {
	var names []string
	for _, p := range sig.Params {
		names = append(names, p.Name)
		if primitives.IsList(p.Type) {
			names = append(names, "len")
		}
	}
	return names
}

func lower(t wit.Type) ([]api.ValueType, bool) {
	switch t.(type) {
	case wit.S32, wit.Bool, wit.String:
		return []api.ValueType{api.ValueTypeI32}, true
	case wit.F64:
		return []api.ValueType{api.ValueTypeF64}, true
	}
	if primitives.IsList(t) {
		return []api.ValueType{api.ValueTypeI32, api.ValueTypeI32}, true
	}
	return nil, false
}

// BuildGuest synthesises a guest module that imports every operation from
// the host module named in cfg and re-exports it, along with a memory and
// a bump allocator under the names cfg expects. pages bounds the guest's
// memory; 0 means one page.
func BuildGuest(cfg *Config, pages uint32) []byte {
	c := cfg.withDefaults()
	b := guest.NewBuilder(c.ModuleName)
	if pages > 0 {
		b.SetPages(pages)
	}
	if c.MallocExport != DefaultMallocExport || c.FreeExport != DefaultFreeExport {
		b.SetAllocatorNames(c.MallocExport, c.FreeExport)
	}
	for _, sig := range primitives.Catalog() {
		params, results, ok := CoreTypes(sig)
		if !ok {
			continue
		}
		b.AddFunc(sig.Name, params, results)
	}
	return b.Build()
}
