package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/wippyai/ffi-primitives/internal/config"
)

const demoText = "Hello, World!"

var demoArray = []int32{1, 2, 3, 4, 5}

// report writes the demo report for f: every primitive called once with
// the classic inputs.
func report(ctx context.Context, f facade, w io.Writer) error {
	fmt.Fprintln(w, "--- Basic Arithmetic ---")
	sum, err := f.AddNumbers(ctx, 5, 3)
	if err != nil {
		return fmt.Errorf("add_numbers: %w", err)
	}
	fmt.Fprintf(w, "add_numbers(5, 3) = %d\n", sum)

	product, err := f.MultiplyDoubles(ctx, 2.5, 4.0)
	if err != nil {
		return fmt.Errorf("multiply_doubles: %w", err)
	}
	fmt.Fprintf(w, "multiply_doubles(2.5, 4.0) = %.2f\n", product)

	fmt.Fprintln(w, "\n--- Mathematical Functions ---")
	fact, err := f.Factorial(ctx, 5)
	if err != nil {
		return fmt.Errorf("factorial: %w", err)
	}
	fmt.Fprintf(w, "factorial(5) = %d\n", fact)

	for _, n := range []int32{17, 16} {
		prime, err := f.IsPrime(ctx, n)
		if err != nil {
			return fmt.Errorf("is_prime: %w", err)
		}
		fmt.Fprintf(w, "is_prime(%d) = %t\n", n, prime)
	}

	fib, err := f.Fibonacci(ctx, 10)
	if err != nil {
		return fmt.Errorf("fibonacci: %w", err)
	}
	fmt.Fprintf(w, "fibonacci(10) = %d\n", fib)

	fmt.Fprintln(w, "\n--- String Functions ---")
	length, err := f.StringLength(ctx, demoText)
	if err != nil {
		return fmt.Errorf("string_length: %w", err)
	}
	fmt.Fprintf(w, "string_length(%q) = %d\n", demoText, length)

	reversed, ok, err := f.ReverseString(ctx, demoText)
	if err != nil {
		return fmt.Errorf("reverse_string: %w", err)
	}
	if ok {
		fmt.Fprintf(w, "reverse_string(%q) = %q\n", demoText, reversed)
	} else {
		fmt.Fprintf(w, "reverse_string(%q) = NULL\n", demoText)
	}

	fmt.Fprintln(w, "\n--- Array Functions ---")
	total, err := f.SumArray(ctx, demoArray)
	if err != nil {
		return fmt.Errorf("sum_array: %w", err)
	}
	fmt.Fprintf(w, "sum_array(%s) = %d\n", formatInts(demoArray), total)
	return nil
}

func formatInts(xs []int32) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func runReport(ctx context.Context, name string, cfg config.Config, w io.Writer) error {
	f, err := openFacade(ctx, name, cfg)
	if err != nil {
		return err
	}
	defer f.Close(ctx)

	fmt.Fprintf(w, "=== Primitives called through the %s facade ===\n\n", f.Name())
	if err := report(ctx, f, w); err != nil {
		return err
	}
	if n := f.Outstanding(); n > 0 {
		return fmt.Errorf("%s facade leaked %d owned buffer(s)", f.Name(), n)
	}
	fmt.Fprintln(w, "\n=== All tests completed successfully! ===")
	return nil
}

// runParallel runs the report through every available facade at once and
// checks that they agree line for line.
func runParallel(ctx context.Context, cfg config.Config, w io.Writer) error {
	names := facadeNames()
	outputs := make([]bytes.Buffer, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			f, err := openFacade(gctx, name, cfg)
			if err != nil {
				return err
			}
			defer f.Close(gctx)
			if err := report(gctx, f, &outputs[i]); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			if n := f.Outstanding(); n > 0 {
				return fmt.Errorf("%s facade leaked %d owned buffer(s)", name, n)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(w, "=== Primitives called through %s ===\n\n", strings.Join(names, ", "))
	w.Write(outputs[0].Bytes())
	for i := 1; i < len(names); i++ {
		if !bytes.Equal(outputs[0].Bytes(), outputs[i].Bytes()) {
			return fmt.Errorf("%s and %s facades disagree:\n%s\n%s",
				names[0], names[i], outputs[0].String(), outputs[i].String())
		}
	}
	fmt.Fprintf(w, "\n=== All %d facades agree ===\n", len(names))
	return nil
}
