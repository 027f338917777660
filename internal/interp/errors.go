package interp

import (
	"fmt"
	"strings"

	"lox/internal/source"
)

// ErrorCode identifies the class of a runtime error.
type ErrorCode int

// Stable runtime error codes - do not change values.
const (
	ErrUndefinedVariable     ErrorCode = 1001 // RT1001: undefined variable
	ErrTypeMismatch          ErrorCode = 1002 // RT1002: operand type mismatch
	ErrNotCallable           ErrorCode = 1003 // RT1003: callee is not callable
	ErrArityMismatch         ErrorCode = 1004 // RT1004: wrong number of arguments
	ErrInvalidPropertyAccess ErrorCode = 1005 // RT1005: property access on a non-instance
	ErrNotAClass             ErrorCode = 1006 // RT1006: superclass is not a class
	ErrUndefinedProperty     ErrorCode = 1007 // RT1007: undefined property
	ErrStackOverflow         ErrorCode = 1008 // RT1008: call depth limit exceeded
	ErrDivisionByZero        ErrorCode = 1009 // RT1009: division by zero
	ErrNative                ErrorCode = 1099 // RT1099: native function failed
)

// String returns the code as "RT1001" format.
func (c ErrorCode) String() string {
	return fmt.Sprintf("RT%d", int(c))
}

var errorTitles = map[ErrorCode]string{
	ErrUndefinedVariable:     "undefined variable",
	ErrTypeMismatch:          "type mismatch",
	ErrNotCallable:           "not callable",
	ErrArityMismatch:         "arity mismatch",
	ErrInvalidPropertyAccess: "invalid property access",
	ErrNotAClass:             "superclass is not a class",
	ErrUndefinedProperty:     "undefined property",
	ErrStackOverflow:         "stack overflow",
	ErrDivisionByZero:        "division by zero",
	ErrNative:                "native function error",
}

func (c ErrorCode) Title() string {
	if t, ok := errorTitles[c]; ok {
		return t
	}
	return "runtime error"
}

// BacktraceFrame represents one frame in the error backtrace.
type BacktraceFrame struct {
	FuncName string
	Span     source.Span
}

// RuntimeError aborts the statement chain of the current Execute call.
type RuntimeError struct {
	Code      ErrorCode
	Message   string
	Span      source.Span      // where the error was raised
	Backtrace []BacktraceFrame // frames from top to bottom
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error %s: %s", e.Code, e.Message)
}

// Line returns the 1-based line of the error, 0 when files cannot resolve it.
func (e *RuntimeError) Line(files *source.FileSet) uint32 {
	if files == nil || files.Get(e.Span.File) == nil {
		return 0
	}
	return files.Line(e.Span)
}

// Classic formats the error the way reference Lox implementations do:
//
//	Undefined variable 'x'.
//	[line 3]
func (e *RuntimeError) Classic(files *source.FileSet) string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Line(files))
}

// FormatWithFiles formats the error with resolved file:line:col information.
func (e *RuntimeError) FormatWithFiles(files *source.FileSet) string {
	var sb strings.Builder

	// Header: runtime error RT1002: <message>
	fmt.Fprintf(&sb, "runtime error %s: %s\n", e.Code, e.Message)

	sb.WriteString("at ")
	sb.WriteString(formatSpan(e.Span, files))
	sb.WriteString("\n")

	if len(e.Backtrace) > 0 {
		sb.WriteString("backtrace:\n")
		for i, frame := range e.Backtrace {
			fmt.Fprintf(&sb, "  %d: %s at %s\n", i, frame.FuncName, formatSpan(frame.Span, files))
		}
	}

	return sb.String()
}

// formatSpan formats a span as "file:line:col" or "<no-span>" if unknown.
func formatSpan(span source.Span, files *source.FileSet) string {
	if files == nil {
		return "<no-span>"
	}
	file := files.Get(span.File)
	if file == nil {
		return "<no-span>"
	}
	start, _ := files.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", file.Path, start.Line, start.Col)
}

// errorBuilder constructs RuntimeError values with a backtrace taken from
// the interpreter's call stack.
type errorBuilder struct {
	in *Interpreter
}

func (eb *errorBuilder) makeError(code ErrorCode, span source.Span, msg string) *RuntimeError {
	e := &RuntimeError{
		Code:    code,
		Message: msg,
		Span:    span,
	}

	// Top frame reports the failing span; every caller reports its call site.
	frames := eb.in.frames
	e.Backtrace = make([]BacktraceFrame, 0, len(frames)+1)
	at := span
	for i := len(frames) - 1; i >= 0; i-- {
		e.Backtrace = append(e.Backtrace, BacktraceFrame{FuncName: frames[i].fn.String(), Span: at})
		at = frames[i].site
	}
	e.Backtrace = append(e.Backtrace, BacktraceFrame{FuncName: scriptFrameName, Span: at})

	return e
}

func (eb *errorBuilder) undefinedVariable(span source.Span, name string) *RuntimeError {
	return eb.makeError(ErrUndefinedVariable, span, fmt.Sprintf("Undefined variable '%s'.", name))
}

func (eb *errorBuilder) operandNumber(span source.Span) *RuntimeError {
	return eb.makeError(ErrTypeMismatch, span, "Operand must be a number.")
}

func (eb *errorBuilder) operandsNumbers(span source.Span) *RuntimeError {
	return eb.makeError(ErrTypeMismatch, span, "Operands must be numbers.")
}

func (eb *errorBuilder) operandsAdd(span source.Span) *RuntimeError {
	return eb.makeError(ErrTypeMismatch, span, "Operands must be two numbers or two strings.")
}

func (eb *errorBuilder) divisionByZero(span source.Span) *RuntimeError {
	return eb.makeError(ErrDivisionByZero, span, "Division by zero.")
}

func (eb *errorBuilder) notCallable(span source.Span) *RuntimeError {
	return eb.makeError(ErrNotCallable, span, "Can only call functions and classes.")
}

func (eb *errorBuilder) arityMismatch(span source.Span, want, got int) *RuntimeError {
	return eb.makeError(ErrArityMismatch, span, fmt.Sprintf("Expected %d arguments but got %d.", want, got))
}

func (eb *errorBuilder) onlyInstancesHaveProperties(span source.Span) *RuntimeError {
	return eb.makeError(ErrInvalidPropertyAccess, span, "Only instances have properties.")
}

func (eb *errorBuilder) onlyInstancesHaveFields(span source.Span) *RuntimeError {
	return eb.makeError(ErrInvalidPropertyAccess, span, "Only instances have fields.")
}

func (eb *errorBuilder) undefinedProperty(span source.Span, name string) *RuntimeError {
	return eb.makeError(ErrUndefinedProperty, span, fmt.Sprintf("Undefined property '%s'.", name))
}

func (eb *errorBuilder) notAClass(span source.Span) *RuntimeError {
	return eb.makeError(ErrNotAClass, span, "Superclass must be a class.")
}

func (eb *errorBuilder) stackOverflow(span source.Span) *RuntimeError {
	return eb.makeError(ErrStackOverflow, span, "Stack overflow.")
}

func (eb *errorBuilder) native(span source.Span, name string, err error) *RuntimeError {
	return eb.makeError(ErrNative, span, fmt.Sprintf("%s: %v", name, err))
}
