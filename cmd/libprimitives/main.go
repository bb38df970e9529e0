//go:build cgo

// Command libprimitives builds the C boundary as a shared library:
//
//	go build -buildmode=c-shared -o libprimitives.so ./cmd/libprimitives
//
// Callers include cabi/primitives.h. Logging and strict ownership checks
// are read from PRIMITIVES_LOG_LEVEL, PRIMITIVES_LOG_FORMAT and
// PRIMITIVES_STRICT when the library loads.
package main

import "C"

import (
	"fmt"
	"os"

	"github.com/wippyai/ffi-primitives/cabi"
	"github.com/wippyai/ffi-primitives/internal/config"
)

func init() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "libprimitives: %v\n", err)
		cfg = config.Default()
	}
	if logger, err := cfg.Logger(); err == nil {
		cabi.SetLogger(logger)
	}
	cabi.Configure(cfg)
}

func main() {}
