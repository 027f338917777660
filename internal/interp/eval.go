package interp

import (
	"fmt"

	"lox/internal/ast"
	"lox/internal/source"
)

func (in *Interpreter) eval(id ast.ExprID) (Value, error) {
	expr := in.builder.Exprs.Get(id)
	if expr == nil {
		panic(fmt.Errorf("interp: unknown expression %d", id))
	}
	exprs := in.builder.Exprs

	switch expr.Kind {
	case ast.ExprLit:
		lit, _ := exprs.Literal(id)
		return in.evalLiteral(lit), nil

	case ast.ExprGroup:
		group, _ := exprs.Group(id)
		return in.eval(group.Inner)

	case ast.ExprVariable:
		data, _ := exprs.Variable(id)
		return in.lookupVariable(id, data.Name, expr.Span)

	case ast.ExprThis:
		return in.lookupVariable(id, in.names.this, expr.Span)

	case ast.ExprAssign:
		data, _ := exprs.Assign(id)
		v, err := in.eval(data.Value)
		if err != nil {
			return Nil(), err
		}
		if hops, ok := in.locals.Depth(id); ok {
			in.env.AssignAt(hops, data.Name, v)
			return v, nil
		}
		if !in.env.AssignGlobal(data.Name, v) {
			return Nil(), in.eb.undefinedVariable(data.NameSpan, in.builder.Name(data.Name))
		}
		return v, nil

	case ast.ExprUnary:
		data, _ := exprs.Unary(id)
		return in.evalUnary(expr.Span, data)

	case ast.ExprBinary:
		data, _ := exprs.Binary(id)
		return in.evalBinary(expr.Span, data)

	case ast.ExprLogical:
		data, _ := exprs.Logical(id)
		left, err := in.eval(data.Left)
		if err != nil {
			return Nil(), err
		}
		// The deciding operand is the result, not a coerced bool.
		if data.Op == ast.ExprLogicalOr {
			if left.Truthy() {
				return left, nil
			}
		} else if !left.Truthy() {
			return left, nil
		}
		return in.eval(data.Right)

	case ast.ExprCall:
		data, _ := exprs.Call(id)
		return in.evalCall(data)

	case ast.ExprGet:
		data, _ := exprs.PropGet(id)
		object, err := in.eval(data.Object)
		if err != nil {
			return Nil(), err
		}
		if object.Kind != VKInstance {
			return Nil(), in.eb.onlyInstancesHaveProperties(data.NameSpan)
		}
		v, ok := object.Inst.Get(data.Name, in.names.this)
		if !ok {
			return Nil(), in.eb.undefinedProperty(data.NameSpan, in.builder.Name(data.Name))
		}
		return v, nil

	case ast.ExprSet:
		data, _ := exprs.PropSet(id)
		object, err := in.eval(data.Object)
		if err != nil {
			return Nil(), err
		}
		if object.Kind != VKInstance {
			return Nil(), in.eb.onlyInstancesHaveFields(data.NameSpan)
		}
		v, err := in.eval(data.Value)
		if err != nil {
			return Nil(), err
		}
		object.Inst.Set(data.Name, v)
		return v, nil

	case ast.ExprSuper:
		data, _ := exprs.Super(id)
		return in.evalSuper(id, data)

	case ast.ExprFunction:
		data, _ := exprs.Function(id)
		return MakeFunction(in.newFunction(in.builder.Fns.Get(data.Fn), in.env, false)), nil
	}
	panic(fmt.Errorf("interp: unexpected expression kind %s", expr.Kind))
}

func (in *Interpreter) evalLiteral(lit *ast.ExprLiteralData) Value {
	switch lit.Kind {
	case ast.ExprLitTrue:
		return MakeBool(true)
	case ast.ExprLitFalse:
		return MakeBool(false)
	case ast.ExprLitNumber:
		return MakeNumber(lit.Number)
	case ast.ExprLitString:
		return MakeString(in.builder.Name(lit.Str))
	default:
		return Nil()
	}
}

// lookupVariable reads a resolved local through its hop count and falls back
// to the global scope for everything the resolver left unannotated.
func (in *Interpreter) lookupVariable(id ast.ExprID, name source.StringID, span source.Span) (Value, error) {
	if hops, ok := in.locals.Depth(id); ok {
		return in.env.GetAt(hops, name), nil
	}
	if v, ok := in.env.GetGlobal(name); ok {
		return v, nil
	}
	return Nil(), in.eb.undefinedVariable(span, in.builder.Name(name))
}

func (in *Interpreter) evalUnary(span source.Span, data *ast.ExprUnaryData) (Value, error) {
	operand, err := in.eval(data.Operand)
	if err != nil {
		return Nil(), err
	}
	switch data.Op {
	case ast.ExprUnaryNot:
		return MakeBool(!operand.Truthy()), nil
	default:
		if operand.Kind != VKNumber {
			return Nil(), in.eb.operandNumber(span)
		}
		return MakeNumber(-operand.Num), nil
	}
}

// evalBinary evaluates both operands left to right before checking types.
func (in *Interpreter) evalBinary(span source.Span, data *ast.ExprBinaryData) (Value, error) {
	left, err := in.eval(data.Left)
	if err != nil {
		return Nil(), err
	}
	right, err := in.eval(data.Right)
	if err != nil {
		return Nil(), err
	}

	switch data.Op {
	case ast.ExprBinaryEq:
		return MakeBool(left.Equal(right)), nil
	case ast.ExprBinaryNotEq:
		return MakeBool(!left.Equal(right)), nil
	case ast.ExprBinaryAdd:
		switch {
		case left.Kind == VKNumber && right.Kind == VKNumber:
			return MakeNumber(left.Num + right.Num), nil
		case left.Kind == VKString && right.Kind == VKString:
			return MakeString(left.Str + right.Str), nil
		}
		return Nil(), in.eb.operandsAdd(span)
	}

	if left.Kind != VKNumber || right.Kind != VKNumber {
		return Nil(), in.eb.operandsNumbers(span)
	}
	a, b := left.Num, right.Num
	switch data.Op {
	case ast.ExprBinarySub:
		return MakeNumber(a - b), nil
	case ast.ExprBinaryMul:
		return MakeNumber(a * b), nil
	case ast.ExprBinaryDiv:
		if b == 0 {
			return Nil(), in.eb.divisionByZero(span)
		}
		return MakeNumber(a / b), nil
	case ast.ExprBinaryLess:
		return MakeBool(a < b), nil
	case ast.ExprBinaryLessEq:
		return MakeBool(a <= b), nil
	case ast.ExprBinaryGreater:
		return MakeBool(a > b), nil
	case ast.ExprBinaryGreaterEq:
		return MakeBool(a >= b), nil
	}
	panic(fmt.Errorf("interp: unexpected binary operator %s", data.Op))
}

// evalSuper finds the method on the class stored one scope outside the
// `this` scope of the current method and binds it to the current instance.
func (in *Interpreter) evalSuper(id ast.ExprID, data *ast.ExprSuperData) (Value, error) {
	hops, ok := in.locals.Depth(id)
	if !ok {
		panic(hopMiscount(-1, in.names.super))
	}
	superclass := in.env.GetAt(hops, in.names.super).Class
	object := in.env.GetAt(hops-1, in.names.this).Inst

	method := superclass.FindMethod(data.Method)
	if method == nil {
		return Nil(), in.eb.undefinedProperty(data.MethodSpan, in.builder.Name(data.Method))
	}
	return MakeFunction(method.Bind(in.names.this, object)), nil
}
