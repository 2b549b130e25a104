package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in generation the error occurred
type Phase string

const (
	PhaseCleanup  Phase = "cleanup"  // cleanup synthesis
	PhaseConvert  Phase = "convert"  // conversion synthesis
	PhaseEncode   Phase = "encode"   // abi encoding synthesis
	PhaseShift    Phase = "shift"    // shift helpers
	PhaseLayout   Phase = "layout"   // head/tail layout
	PhaseRegistry Phase = "registry" // function registry
	PhaseEval     Phase = "eval"     // evaluating generated code
	PhaseParse    Phase = "parse"    // type strings
	PhaseConfig   Phase = "config"   // manifest loading
	PhaseBuild    Phase = "build"    // build driver
)

// Kind categorizes the error
type Kind string

const (
	KindUnimplemented Kind = "unimplemented"
	KindInternal      Kind = "internal"
	KindInvalidInput  Kind = "invalid_input"
	KindTypeMismatch  Kind = "type_mismatch"
	KindRevert        Kind = "revert"
	KindInvalidOpcode Kind = "invalid_opcode"
	KindOutOfBounds   Kind = "out_of_bounds"
	KindNotFound      Kind = "not_found"
	KindOverflow      Kind = "overflow"
)

// Error is the structured error type used throughout the generator
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	From     string // source type identifier
	To       string // target type identifier
	Function string // generated procedure name
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Function != "" {
		b.WriteString(" in ")
		b.WriteString(e.Function)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	hasTypes := e.From != "" || e.To != ""
	if hasTypes {
		b.WriteString(": ")
		switch {
		case e.From != "" && e.To != "":
			b.WriteString(e.From)
			b.WriteString(" -> ")
			b.WriteString(e.To)
		case e.From != "":
			b.WriteString(e.From)
		default:
			b.WriteString("-> ")
			b.WriteString(e.To)
		}
	}

	if e.Detail != "" {
		if hasTypes {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
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

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
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

// Path sets the value path (tuple index, manifest unit, ...)
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// From sets the source type identifier
func (b *Builder) From(id string) *Builder {
	b.err.From = id
	return b
}

// To sets the target type identifier
func (b *Builder) To(id string) *Builder {
	b.err.To = id
	return b
}

// Function sets the generated procedure name
func (b *Builder) Function(name string) *Builder {
	b.err.Function = name
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

// Unimplemented reports a combination that is valid in principle but not
// supported by the generator. types are the offending identifiers, source first.
func Unimplemented(phase Phase, detail string, types ...string) *Error {
	e := &Error{
		Phase:  phase,
		Kind:   KindUnimplemented,
		Detail: detail,
	}
	if len(types) > 0 {
		e.From = types[0]
	}
	if len(types) > 1 {
		e.To = types[1]
	}
	return e
}

// Internal reports an input combination the type checker should have ruled out.
func Internal(phase Phase, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInternal,
		Detail: detail,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, from, to string) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindTypeMismatch,
		From:  from,
		To:    to,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, value any, target string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("value %v overflows %s", value, target),
		Value:  value,
	}
}

// Revert reports a revert executed by generated code
func Revert(function string) *Error {
	return &Error{
		Phase:    PhaseEval,
		Kind:     KindRevert,
		Function: function,
		Detail:   "execution reverted",
	}
}

// InvalidOpcode reports an invalid() trap executed by generated code
func InvalidOpcode(function string) *Error {
	return &Error{
		Phase:    PhaseEval,
		Kind:     KindInvalidOpcode,
		Function: function,
		Detail:   "invalid opcode",
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidInput,
		Detail: fmt.Sprintf("parse %s", what),
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

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsUnimplemented reports whether err is an unimplemented-feature failure
func IsUnimplemented(err error) bool {
	return KindOf(err) == KindUnimplemented
}

// IsInternal reports whether err is an internal-consistency violation
func IsInternal(err error) bool {
	return KindOf(err) == KindInternal
}

// IsAbort reports whether err is a VM-level abort raised by generated code
func IsAbort(err error) bool {
	k := KindOf(err)
	return k == KindRevert || k == KindInvalidOpcode
}
