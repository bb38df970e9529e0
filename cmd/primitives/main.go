package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/wippyai/ffi-primitives"
	"github.com/wippyai/ffi-primitives/bridge"
	"github.com/wippyai/ffi-primitives/cabi"
	"github.com/wippyai/ffi-primitives/internal/config"
	"github.com/wippyai/ffi-primitives/wasmhost"
)

func main() {
	var (
		facadeName  = flag.String("facade", "core", "Facade to call through ("+strings.Join(facadeNames(), "|")+")")
		list        = flag.Bool("list", false, "List boundary signatures and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		parallel    = flag.Bool("parallel", false, "Run every facade concurrently and compare results")
	)
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := setupLogging(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *list {
		listSignatures()
		return
	}

	ctx := context.Background()

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(ctx, *facadeName, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *parallel {
		err = runParallel(ctx, cfg, os.Stdout)
	} else {
		err = runReport(ctx, *facadeName, cfg, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(cfg config.Config) error {
	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	wasmhost.SetLogger(logger)
	bridge.SetLogger(logger)
	cabi.SetLogger(logger)
	return nil
}

func listSignatures() {
	fmt.Println("Boundary operations:")
	for _, sig := range primitives.Catalog() {
		fmt.Printf("\n  %s\n", sig.WIT())
		fmt.Printf("    C:    %s\n", sig.CDecl())
		if sym := sig.JNISymbol(); sym != "" {
			fmt.Printf("    JNI:  %s %s\n", sym, sig.JNIDescriptor())
		}
		if sig.Release != "" {
			fmt.Printf("    owns: result released with %s\n", sig.Release)
		}
		fmt.Printf("    %s\n", sig.Doc)
	}
}
