package interp

import (
	"fmt"
	"io"

	"lox/internal/ast"
	"lox/internal/source"
)

// Tracer outputs execution traces for debugging.
type Tracer struct {
	w     io.Writer
	files *source.FileSet
}

// NewTracer creates a new tracer that writes to w.
func NewTracer(w io.Writer, files *source.FileSet) *Tracer {
	return &Tracer{w: w, files: files}
}

// TraceStmt traces execution of a statement.
// Format: [depth=N] <kind> @ <file>:<line>:<col>
func (t *Tracer) TraceStmt(depth int, stmt *ast.Stmt) {
	if t == nil || t.w == nil || stmt == nil {
		return
	}
	fmt.Fprintf(t.w, "[depth=%d] %s @ %s\n", depth, stmt.Kind, formatSpan(stmt.Span, t.files))
}

// TraceCall traces entry into a function, method or class.
// Format: [depth=N] call <callee>/<argc> @ <file>:<line>:<col>
func (t *Tracer) TraceCall(depth int, callee Value, argc int, site source.Span) {
	if t == nil || t.w == nil {
		return
	}
	fmt.Fprintf(t.w, "[depth=%d] call %s/%d @ %s\n", depth, callee, argc, formatSpan(site, t.files))
}

// TraceReturn traces the value a call produced.
func (t *Tracer) TraceReturn(depth int, v Value) {
	if t == nil || t.w == nil {
		return
	}
	fmt.Fprintf(t.w, "[depth=%d] return %s\n", depth, t.formatValue(v))
}

func (t *Tracer) formatValue(v Value) string {
	if v.Kind == VKString {
		return fmt.Sprintf("%q", v.Str)
	}
	return v.String()
}
