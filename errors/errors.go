package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where relative to the boundary the error occurred
type Phase string

const (
	PhaseBorrow   Phase = "borrow"   // reading caller-owned input
	PhaseCompute  Phase = "compute"  // core contract checks
	PhaseAllocate Phase = "allocate" // creating an owned buffer
	PhaseRelease  Phase = "release"  // releasing an owned buffer
	PhaseConvert  Phase = "convert"  // managed <-> native conversion
	PhaseHost     Phase = "host"     // host module setup
)

// Kind categorizes the error
type Kind string

const (
	KindNullBuffer    Kind = "null_buffer"
	KindInvalidUTF8   Kind = "invalid_utf8"
	KindInvalidLength Kind = "invalid_length"
	KindOutOfBounds   Kind = "out_of_bounds"
	KindAllocation    Kind = "allocation"
	KindNegativeInput Kind = "negative_input"
	KindUnencodable   Kind = "unencodable"
	KindUnknownBuffer Kind = "unknown_buffer"
	KindMissingExport Kind = "missing_export"
	KindRegistration  Kind = "registration"
)

// Error is the structured error type used by every layer
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Phase matches any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// HasKind reports whether err is, or wraps, an *Error of the given kind.
func HasKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the boundary operation name
func (b *Builder) Op(name string) *Builder {
	b.err.Op = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NullBuffer creates a null borrowed-buffer error
func NullBuffer(phase Phase, op string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNullBuffer,
		Op:     op,
		Detail: "null pointer",
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, op string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Op:     op,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// InvalidLength creates an invalid sequence length error
func InvalidLength(phase Phase, op string, count int64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidLength,
		Op:     op,
		Detail: fmt.Sprintf("element count %d is not positive", count),
		Value:  count,
	}
}

// OutOfBounds creates an out of bounds error for a foreign memory range
func OutOfBounds(phase Phase, op string, offset, length, size uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Op:     op,
		Detail: fmt.Sprintf("range [%d, %d) exceeds memory size %d", offset, offset+length, size),
		Value:  offset,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
		Value:  size,
	}
}

// NegativeInput creates an error for operations undefined on negative input
func NegativeInput(op string, n int32) *Error {
	return &Error{
		Phase:  PhaseCompute,
		Kind:   KindNegativeInput,
		Op:     op,
		Detail: fmt.Sprintf("%s is undefined for n = %d", op, n),
		Value:  n,
	}
}

// Unencodable creates an error for text that has no native representation
func Unencodable(phase Phase, op, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnencodable,
		Op:     op,
		Detail: detail,
	}
}

// UnknownBuffer creates an error for a release of a pointer that is not a live owned buffer
func UnknownBuffer(op string, ptr any) *Error {
	return &Error{
		Phase:  PhaseRelease,
		Kind:   KindUnknownBuffer,
		Op:     op,
		Detail: fmt.Sprintf("%v is not a live owned buffer", ptr),
		Value:  ptr,
	}
}

// Registration creates a host registration error
func Registration(namespace, name string, cause error) *Error {
	return &Error{
		Phase:  PhaseHost,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s#%s", namespace, name),
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// MissingExportsError is returned when a guest module lacks exports the
// boundary protocol needs (memory, allocator, or call trampolines).
type MissingExportsError struct {
	Module  string
	Exports []string
}

// NewMissingExportsError creates an error listing the absent exports
func NewMissingExportsError(module string, exports []string) *MissingExportsError {
	return &MissingExportsError{
		Module:  module,
		Exports: append([]string(nil), exports...),
	}
}

func (e *MissingExportsError) Error() string {
	if len(e.Exports) == 0 {
		return "[host] missing_export: no exports specified"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "module %q is missing %d export(s):", e.Module, len(e.Exports))
	for _, name := range e.Exports {
		b.WriteString("\n  - ")
		b.WriteString(name)
	}
	return b.String()
}

// Is reports whether target matches this error type
func (e *MissingExportsError) Is(target error) bool {
	if _, ok := target.(*MissingExportsError); ok {
		return true
	}
	if t, ok := target.(*Error); ok {
		return t.Kind == KindMissingExport && (t.Phase == "" || t.Phase == PhaseHost)
	}
	return false
}
