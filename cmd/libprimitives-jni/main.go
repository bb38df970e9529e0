//go:build cgo && jni

// Command libprimitives-jni builds the JVM bridge as a shared library
// loadable with System.loadLibrary("primitives"):
//
//	CGO_CFLAGS="-I$JAVA_HOME/include -I$JAVA_HOME/include/linux" \
//	    go build -tags jni -buildmode=c-shared -o libprimitives.so ./cmd/libprimitives-jni
//
// The library exports the native methods of com.example.primitives.Primitives
// alongside the plain C symbols.
package main

import "C"

import (
	"fmt"
	"os"

	"github.com/wippyai/ffi-primitives/bridge"
	"github.com/wippyai/ffi-primitives/cabi"
	"github.com/wippyai/ffi-primitives/internal/config"
)

func init() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "libprimitives-jni: %v\n", err)
		cfg = config.Default()
	}
	if logger, err := cfg.Logger(); err == nil {
		cabi.SetLogger(logger)
		bridge.SetLogger(logger.Named("jni"))
	}
	cabi.Configure(cfg)
}

func main() {}
