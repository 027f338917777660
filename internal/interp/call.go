package interp

import (
	"errors"

	"lox/internal/ast"
	"lox/internal/source"
	"lox/internal/trace"
)

func (in *Interpreter) evalCall(data *ast.ExprCallData) (Value, error) {
	callee, err := in.eval(data.Callee)
	if err != nil {
		return Nil(), err
	}
	args := make([]Value, 0, len(data.Args))
	for _, arg := range data.Args {
		v, err := in.eval(arg)
		if err != nil {
			return Nil(), err
		}
		args = append(args, v)
	}
	return in.call(callee, args, data.Paren)
}

// call dispatches on the callee kind. Arity is checked before any scope is
// created or any instance allocated.
func (in *Interpreter) call(callee Value, args []Value, site source.Span) (Value, error) {
	switch callee.Kind {
	case VKNative:
		return in.callNative(callee.Native, args, site)
	case VKFunction:
		if len(args) != callee.Fn.Arity() {
			return Nil(), in.eb.arityMismatch(site, callee.Fn.Arity(), len(args))
		}
		return in.callFunction(callee.Fn, args, site)
	case VKClass:
		return in.instantiate(callee.Class, args, site)
	default:
		return Nil(), in.eb.notCallable(site)
	}
}

func (in *Interpreter) callNative(n *Native, args []Value, site source.Span) (Value, error) {
	if len(args) != n.Arity {
		return Nil(), in.eb.arityMismatch(site, n.Arity, len(args))
	}
	in.tracer.TraceCall(len(in.frames), MakeNative(n), len(args), site)
	v, err := n.Fn(args)
	if err != nil {
		var rtErr *RuntimeError
		if errors.As(err, &rtErr) {
			return Nil(), rtErr
		}
		return Nil(), in.eb.native(site, n.Name, err)
	}
	return v, nil
}

func (in *Interpreter) callFunction(fn *Function, args []Value, site source.Span) (Value, error) {
	if err := in.enter(fn, site); err != nil {
		return Nil(), err
	}
	defer in.leave()

	in.tracer.TraceCall(len(in.frames), MakeFunction(fn), len(args), site)
	span := in.beginCall(fn)

	env := NewEnvironment(fn.Closure)
	for i, param := range fn.Decl.Params {
		env.Define(param.Name, args[i])
	}
	c, err := in.execBlock(fn.Decl.Body, env)
	if err != nil {
		span.End("error")
		return Nil(), err
	}
	span.End("")

	result := Nil()
	switch {
	case fn.IsInit:
		// init always yields the instance, even after a bare `return`.
		result = fn.Closure.GetAt(0, in.names.this)
	case c.returning:
		result = c.value
	}
	in.tracer.TraceReturn(len(in.frames), result)
	return result, nil
}

func (in *Interpreter) instantiate(class *Class, args []Value, site source.Span) (Value, error) {
	init := class.FindMethod(in.names.init)
	arity := 0
	if init != nil {
		arity = init.Arity()
	}
	if len(args) != arity {
		return Nil(), in.eb.arityMismatch(site, arity, len(args))
	}

	inst := NewInstance(class)
	if init != nil {
		if _, err := in.callFunction(init.Bind(in.names.this, inst), args, site); err != nil {
			return Nil(), err
		}
	}
	return MakeInstance(inst), nil
}

// enter pushes a call frame; the depth limit turns runaway recursion into an
// ordinary runtime error instead of exhausting the Go stack.
func (in *Interpreter) enter(fn *Function, site source.Span) error {
	if err := in.checkContext(); err != nil {
		return err
	}
	if len(in.frames) >= in.maxDepth {
		return in.eb.stackOverflow(site)
	}
	in.frames = append(in.frames, frame{fn: fn, site: site})
	return nil
}

func (in *Interpreter) leave() {
	in.frames = in.frames[:len(in.frames)-1]
}

// beginCall opens a ScopeNode span for fn. The span name is only built when
// the tracer records calls; otherwise a nil span is returned (End is a no-op).
func (in *Interpreter) beginCall(fn *Function) *trace.Span {
	if !in.traceCalls {
		return nil
	}
	return trace.Begin(in.tr, trace.ScopeNode, "call "+fn.String(), 0)
}
