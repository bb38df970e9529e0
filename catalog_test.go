package primitives

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCatalog_Names(t *testing.T) {
	var names []string
	for _, s := range Catalog() {
		names = append(names, s.Name)
	}
	want := []string{
		"add_numbers", "multiply_doubles", "factorial", "is_prime", "fibonacci",
		"string_length", "reverse_string", "free_string", "sum_array",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("catalogue mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_IsCopy(t *testing.T) {
	c := Catalog()
	c[0].Name = "changed"
	if s, ok := Lookup("add_numbers"); !ok || s.Name != "add_numbers" {
		t.Error("mutating Catalog result changed the catalogue")
	}
}

func TestLookup(t *testing.T) {
	s, ok := Lookup("reverseString")
	if !ok || s.Name != "reverse_string" {
		t.Fatalf("Lookup(reverseString) = %+v, %v", s, ok)
	}
	if s.Release != "free_string" {
		t.Errorf("Release = %q", s.Release)
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) should fail")
	}
	if _, ok := Lookup(""); ok {
		t.Error("empty name must not match operations without a method")
	}
}

func TestOnlyReverseStringReturnsOwnedMemory(t *testing.T) {
	for _, s := range Catalog() {
		owned := TypeName(s.Result) == "string"
		if owned != (s.Name == "reverse_string") {
			t.Errorf("%s returns %s", s.Name, TypeName(s.Result))
		}
		if owned && s.Release == "" {
			t.Errorf("%s returns owned text without a release function", s.Name)
		}
	}
}

func TestRendering(t *testing.T) {
	tests := []struct {
		name       string
		wit        string
		cdecl      string
		symbol     string
		descriptor string
	}{
		{
			name:       "add_numbers",
			wit:        "add-numbers: func(a: s32, b: s32) -> s32",
			cdecl:      "int32_t add_numbers(int32_t a, int32_t b)",
			symbol:     "Java_com_example_primitives_Primitives_addNumbers",
			descriptor: "(II)I",
		},
		{
			name:       "is_prime",
			wit:        "is-prime: func(n: s32) -> bool",
			cdecl:      "int32_t is_prime(int32_t n)",
			symbol:     "Java_com_example_primitives_Primitives_isPrime",
			descriptor: "(I)Z",
		},
		{
			name:       "reverse_string",
			wit:        "reverse-string: func(s: string) -> string",
			cdecl:      "char *reverse_string(const char *s)",
			symbol:     "Java_com_example_primitives_Primitives_reverseString",
			descriptor: "(Ljava/lang/String;)Ljava/lang/String;",
		},
		{
			name:  "free_string",
			wit:   "free-string: func(s: string)",
			cdecl: "void free_string(char *s)",
		},
		{
			name:       "sum_array",
			wit:        "sum-array: func(arr: list<s32>) -> s32",
			cdecl:      "int32_t sum_array(const int32_t *arr, int32_t len)",
			symbol:     "Java_com_example_primitives_Primitives_sumArray",
			descriptor: "([I)I",
		},
		{
			name:       "multiply_doubles",
			wit:        "multiply-doubles: func(a: f64, b: f64) -> f64",
			cdecl:      "double multiply_doubles(double a, double b)",
			symbol:     "Java_com_example_primitives_Primitives_multiplyDoubles",
			descriptor: "(DD)D",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := Lookup(tt.name)
			if !ok {
				t.Fatalf("Lookup(%s) failed", tt.name)
			}
			if got := s.WIT(); got != tt.wit {
				t.Errorf("WIT() = %q, want %q", got, tt.wit)
			}
			if got := s.CDecl(); got != tt.cdecl {
				t.Errorf("CDecl() = %q, want %q", got, tt.cdecl)
			}
			if got := s.JNISymbol(); got != tt.symbol {
				t.Errorf("JNISymbol() = %q, want %q", got, tt.symbol)
			}
			if got := s.JNIDescriptor(); got != tt.descriptor {
				t.Errorf("JNIDescriptor() = %q, want %q", got, tt.descriptor)
			}
		})
	}
}
