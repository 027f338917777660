package interp

import (
	"context"
	"fmt"
	"io"

	"lox/internal/ast"
	"lox/internal/resolve"
	"lox/internal/source"
	"lox/internal/trace"
)

// DefaultMaxCallDepth bounds nested calls when Options.MaxCallDepth is 0.
const DefaultMaxCallDepth = 1024

const scriptFrameName = "<script>"

// Options configures an Interpreter.
type Options struct {
	Stdout       io.Writer // print sink; io.Discard when nil
	MaxCallDepth int       // 0 selects DefaultMaxCallDepth
	Runtime      Runtime   // nil selects DefaultRuntime
	Tracer       *Tracer   // statement/call tracing, optional
	Files        *source.FileSet
}

type frame struct {
	fn   *Function
	site source.Span // call site in the caller
}

// completion is the result of executing a statement. A `return` travels up
// as a completion and is consumed at the call boundary.
type completion struct {
	returning bool
	value     Value
}

// Interpreter executes resolved files against a persistent global scope.
type Interpreter struct {
	builder  *ast.Builder
	globals  *Environment
	env      *Environment
	locals   resolve.Locals
	out      io.Writer
	rt       Runtime
	tracer   *Tracer
	files    *source.FileSet
	maxDepth int
	frames   []frame
	eb       *errorBuilder
	names    wellKnownNames

	// valid only while Execute runs
	ctx        context.Context
	tr         trace.Tracer
	traceCalls bool
}

type wellKnownNames struct {
	this, super, init source.StringID
}

// New creates an interpreter over the arenas of builder. Every file later
// passed to Execute must have been built by the same builder.
func New(builder *ast.Builder, opts Options) *Interpreter {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.MaxCallDepth <= 0 {
		opts.MaxCallDepth = DefaultMaxCallDepth
	}
	if opts.Runtime == nil {
		opts.Runtime = NewDefaultRuntime()
	}
	in := &Interpreter{
		builder:  builder,
		globals:  NewEnvironment(nil),
		locals:   make(resolve.Locals),
		out:      opts.Stdout,
		rt:       opts.Runtime,
		tracer:   opts.Tracer,
		files:    opts.Files,
		maxDepth: opts.MaxCallDepth,
		names: wellKnownNames{
			this:  builder.Strings.Intern("this"),
			super: builder.Strings.Intern("super"),
			init:  builder.Strings.Intern("init"),
		},
	}
	in.env = in.globals
	in.eb = &errorBuilder{in: in}
	in.defineBuiltins()
	return in
}

// Globals returns the root scope of the session.
func (in *Interpreter) Globals() *Environment { return in.globals }

// DefineNative binds a host function in the global scope.
func (in *Interpreter) DefineNative(name string, arity int, fn NativeFunc) {
	in.globals.Define(in.builder.Strings.Intern(name), MakeNative(&Native{Name: name, Arity: arity, Fn: fn}))
}

// Execute runs the top-level statements of fileID. locals must come from
// resolving that file; they are kept for the rest of the session because
// closures created now may run during later calls.
//
// The result is nil, a *RuntimeError, or a wrapped context error.
func (in *Interpreter) Execute(ctx context.Context, fileID ast.FileID, locals resolve.Locals) error {
	file := in.builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("interp: unknown file %d", fileID)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	in.locals.Merge(locals)

	in.ctx = ctx
	in.tr = trace.FromContext(ctx)
	in.traceCalls = in.tr.Enabled() && in.tr.Level().ShouldEmit(trace.ScopeNode)
	defer func() {
		in.ctx = nil
		in.tr = nil
		in.traceCalls = false
		in.env = in.globals
		in.frames = in.frames[:0]
	}()

	in.env = in.globals
	for _, id := range file.Stmts {
		if _, err := in.execStmt(id); err != nil {
			return err
		}
	}
	return nil
}

// Depth reports the current number of active calls.
func (in *Interpreter) Depth() int { return len(in.frames) }

func (in *Interpreter) checkContext() error {
	if err := in.ctx.Err(); err != nil {
		return fmt.Errorf("interp: %w", err)
	}
	return nil
}

func (in *Interpreter) newFunction(decl *ast.Fn, closure *Environment, isInit bool) *Function {
	return &Function{
		Decl:    decl,
		Closure: closure,
		IsInit:  isInit,
		Name:    in.builder.Name(decl.Name),
	}
}
