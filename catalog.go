package primitives

import (
	"fmt"
	"strings"

	"go.bytecodealliance.org/wit"
)

// JNIClass is the Java class whose native methods the JNI build binds.
const JNIClass = "com.example.primitives.Primitives"

// Param is a named parameter of a boundary operation.
type Param struct {
	Name string
	Type wit.Type
}

// Signature describes one boundary operation.
type Signature struct {
	// Name is the C and wasm symbol.
	Name string
	// Method is the Java method name; empty when the JVM never calls the
	// operation directly.
	Method string
	Params []Param
	// Result is nil for operations without a result.
	Result wit.Type
	// Release names the operation that releases the result, if the result
	// is an owned buffer.
	Release string
	// Releases is set on release operations: their string parameter is an
	// owned buffer being returned, not a borrowed one.
	Releases bool
	Doc      string
}

var (
	s32     = wit.S32{}
	f64     = wit.F64{}
	boolean = wit.Bool{}
	text    = wit.String{}
	s32List = &wit.TypeDef{Kind: &wit.List{Type: wit.S32{}}}
)

var catalog = []Signature{
	{
		Name: "add_numbers", Method: "addNumbers",
		Params: []Param{{"a", s32}, {"b", s32}}, Result: s32,
		Doc: "wrapping 32-bit addition",
	},
	{
		Name: "multiply_doubles", Method: "multiplyDoubles",
		Params: []Param{{"a", f64}, {"b", f64}}, Result: f64,
		Doc: "IEEE-754 double multiplication",
	},
	{
		Name: "factorial", Method: "factorial",
		Params: []Param{{"n", s32}}, Result: s32,
		Doc: "n! with wraparound; -1 for negative n",
	},
	{
		Name: "is_prime", Method: "isPrime",
		Params: []Param{{"n", s32}}, Result: boolean,
		Doc: "trial division primality test",
	},
	{
		Name: "fibonacci", Method: "fibonacci",
		Params: []Param{{"n", s32}}, Result: s32,
		Doc: "F(n) with wraparound; -1 for negative n",
	},
	{
		Name: "string_length", Method: "stringLength",
		Params: []Param{{"s", text}}, Result: s32,
		Doc: "UTF-8 byte length; -1 for null or invalid text",
	},
	{
		Name: "reverse_string", Method: "reverseString",
		Params: []Param{{"s", text}}, Result: text,
		Release: "free_string",
		Doc:     "reverse by code point; null for null, invalid text or allocation failure",
	},
	{
		Name:     "free_string",
		Params:   []Param{{"s", text}},
		Releases: true,
		Doc:      "release a string returned by reverse_string; null is a no-op",
	},
	{
		Name: "sum_array", Method: "sumArray",
		Params: []Param{{"arr", s32List}}, Result: s32,
		Doc: "wrapping 32-bit sum; 0 for null or empty input",
	},
}

// Catalog returns every boundary operation in declaration order.
func Catalog() []Signature {
	out := make([]Signature, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds an operation by its C symbol or Java method name.
func Lookup(name string) (Signature, bool) {
	for _, s := range catalog {
		if s.Name == name || (s.Method != "" && s.Method == name) {
			return s, true
		}
	}
	return Signature{}, false
}

// IsList reports whether t is list<s32>, the only sequence type crossing
// the boundary.
func IsList(t wit.Type) bool {
	td, ok := t.(*wit.TypeDef)
	if !ok {
		return false
	}
	l, ok := td.Kind.(*wit.List)
	if !ok {
		return false
	}
	_, ok = l.Type.(wit.S32)
	return ok
}

// TypeName renders t in WIT syntax.
func TypeName(t wit.Type) string {
	switch v := t.(type) {
	case nil:
		return "()"
	case wit.Bool:
		return "bool"
	case wit.S32:
		return "s32"
	case wit.F64:
		return "f64"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if l, ok := v.Kind.(*wit.List); ok {
			return "list<" + TypeName(l.Type) + ">"
		}
		if v.Name != nil {
			return *v.Name
		}
		return "typedef"
	default:
		return fmt.Sprintf("%T", t)
	}
}

// WIT renders the signature as a WIT function declaration.
func (s Signature) WIT() string {
	var b strings.Builder
	b.WriteString(strings.ReplaceAll(s.Name, "_", "-"))
	b.WriteString(": func(")
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(TypeName(p.Type))
	}
	b.WriteByte(')')
	if s.Result != nil {
		b.WriteString(" -> ")
		b.WriteString(TypeName(s.Result))
	}
	return b.String()
}

// CDecl renders the C prototype, matching primitives.h.
func (s Signature) CDecl() string {
	var params []string
	for _, p := range s.Params {
		switch {
		case IsList(p.Type):
			params = append(params, "const int32_t *"+p.Name, "int32_t len")
		case s.Releases:
			params = append(params, cType(p.Type, false)+p.Name)
		default:
			params = append(params, cType(p.Type, true)+p.Name)
		}
	}
	result := "void "
	if s.Result != nil {
		result = cType(s.Result, false)
	}
	return fmt.Sprintf("%s%s(%s)", result, s.Name, strings.Join(params, ", "))
}

func cType(t wit.Type, borrowed bool) string {
	switch t.(type) {
	case wit.S32, wit.Bool:
		return "int32_t "
	case wit.F64:
		return "double "
	case wit.String:
		if borrowed {
			return "const char *"
		}
		return "char *"
	}
	return "void *"
}

// JNISymbol returns the exported C symbol for the Java native method, or
// "" if the operation has no Java binding.
func (s Signature) JNISymbol() string {
	if s.Method == "" {
		return ""
	}
	return "Java_" + strings.ReplaceAll(JNIClass, ".", "_") + "_" + s.Method
}

// JNIDescriptor returns the JVM method descriptor, e.g. "(II)I".
func (s Signature) JNIDescriptor() string {
	if s.Method == "" {
		return ""
	}
	var b strings.Builder
	b.WriteByte('(')
	for _, p := range s.Params {
		b.WriteString(jvmType(p.Type))
	}
	b.WriteByte(')')
	if s.Result == nil {
		b.WriteByte('V')
	} else {
		b.WriteString(jvmType(s.Result))
	}
	return b.String()
}

func jvmType(t wit.Type) string {
	switch t.(type) {
	case wit.S32:
		return "I"
	case wit.F64:
		return "D"
	case wit.Bool:
		return "Z"
	case wit.String:
		return "Ljava/lang/String;"
	}
	if IsList(t) {
		return "[I"
	}
	return "?"
}
