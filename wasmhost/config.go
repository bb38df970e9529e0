package wasmhost

// Default names.
const (
	DefaultModuleName   = "primitives"
	DefaultMallocExport = "malloc"
	DefaultFreeExport   = "free"
)

// Config holds configuration for the host module
type Config struct {
	// ModuleName is the module name guests import from.
	// Empty means DefaultModuleName.
	ModuleName string

	// MallocExport and FreeExport name the guest's allocator exports:
	// malloc(size i32) -> i32 and free(ptr i32).
	// Empty means DefaultMallocExport and DefaultFreeExport.
	MallocExport string
	FreeExport   string

	// Strict records every owned buffer handed to a guest. Releasing an
	// unknown or already released pointer is logged and ignored instead
	// of reaching the guest's free.
	Strict bool
}

func (c *Config) withDefaults() Config {
	var out Config
	if c != nil {
		out = *c
	}
	if out.ModuleName == "" {
		out.ModuleName = DefaultModuleName
	}
	if out.MallocExport == "" {
		out.MallocExport = DefaultMallocExport
	}
	if out.FreeExport == "" {
		out.FreeExport = DefaultFreeExport
	}
	return out
}
