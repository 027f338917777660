package driver

import (
	"context"
	"errors"
	"fmt"
	"io"

	"lox/internal/ast"
	"lox/internal/diag"
	"lox/internal/interp"
	"lox/internal/source"
)

// SessionOptions configures an interactive session.
type SessionOptions struct {
	Stdout         io.Writer
	MaxCallDepth   int
	MaxDiagnostics int
	Runtime        interp.Runtime
	ExecTrace      io.Writer
}

// Session keeps the state a REPL needs between inputs: one FileSet, one AST
// builder and one interpreter whose globals persist.
type Session struct {
	fs      *source.FileSet
	builder *ast.Builder
	interp  *interp.Interpreter
	opts    SessionOptions
	inputs  int
}

// EvalResult describes the outcome of one Eval call.
type EvalResult struct {
	FileID source.FileID
	Bag    *diag.Bag
	// Incomplete means the input ended in the middle of a construct; the
	// caller should read more lines and evaluate the concatenation.
	Incomplete bool
	RuntimeErr *interp.RuntimeError
}

// OK reports whether the input ran to completion.
func (r EvalResult) OK() bool {
	return !r.Incomplete && r.RuntimeErr == nil && (r.Bag == nil || !r.Bag.HasErrors())
}

func NewSession(opts SessionOptions) *Session {
	s := &Session{
		fs:      source.NewFileSet(),
		builder: ast.NewBuilder(ast.Hints{}, nil),
		opts:    opts,
	}
	var tracer *interp.Tracer
	if opts.ExecTrace != nil {
		tracer = interp.NewTracer(opts.ExecTrace, s.fs)
	}
	s.interp = interp.New(s.builder, interp.Options{
		Stdout:       opts.Stdout,
		MaxCallDepth: opts.MaxCallDepth,
		Runtime:      opts.Runtime,
		Tracer:       tracer,
		Files:        s.fs,
	})
	return s
}

func (s *Session) FileSet() *source.FileSet { return s.fs }

// Interpreter exposes the session interpreter, e.g. to install natives.
func (s *Session) Interpreter() *interp.Interpreter { return s.interp }

// Eval checks and runs src against the session globals. Static errors and
// incomplete input leave the globals untouched.
func (s *Session) Eval(ctx context.Context, src string) (EvalResult, error) {
	s.inputs++
	fileID := s.fs.AddVirtual(fmt.Sprintf("<repl:%d>", s.inputs), []byte(src))
	res := EvalResult{FileID: fileID, Bag: diag.NewBag(s.opts.MaxDiagnostics)}

	ph := newPhases(ctx, false, nil)
	out, err := checkFile(ph, s.fs, s.fs.Get(fileID), s.builder, res.Bag, s.opts.MaxDiagnostics)
	if err != nil {
		return res, err
	}
	if res.Bag.HasErrors() {
		res.Incomplete = out.incomplete
		return res, nil
	}

	err = s.interp.Execute(ctx, out.file, out.locals)
	var rtErr *interp.RuntimeError
	switch {
	case err == nil:
	case errors.As(err, &rtErr):
		res.RuntimeErr = rtErr
	default:
		return res, err
	}
	return res, nil
}
