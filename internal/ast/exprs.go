package ast

import (
	"lox/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Literals  *Arena[ExprLiteralData]
	Variables *Arena[ExprVariableData]
	Assigns   *Arena[ExprAssignData]
	Unaries   *Arena[ExprUnaryData]
	Binaries  *Arena[ExprBinaryData]
	Logicals  *Arena[ExprLogicalData]
	Calls     *Arena[ExprCallData]
	Gets      *Arena[ExprGetData]
	Sets      *Arena[ExprSetData]
	Supers    *Arena[ExprSuperData]
	Groups    *Arena[ExprGroupData]
	Functions *Arena[ExprFunctionData]
}

// NewExprs creates per-kind arenas preallocated with capHint slots (1<<8 when zero).
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Literals:  NewArena[ExprLiteralData](capHint),
		Variables: NewArena[ExprVariableData](capHint),
		Assigns:   NewArena[ExprAssignData](capHint),
		Unaries:   NewArena[ExprUnaryData](capHint),
		Binaries:  NewArena[ExprBinaryData](capHint),
		Logicals:  NewArena[ExprLogicalData](capHint),
		Calls:     NewArena[ExprCallData](capHint),
		Gets:      NewArena[ExprGetData](capHint),
		Sets:      NewArena[ExprSetData](capHint),
		Supers:    NewArena[ExprSuperData](capHint),
		Groups:    NewArena[ExprGroupData](capHint),
		Functions: NewArena[ExprFunctionData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}
// NewLiteral creates a literal; number and str are read according to kind.
func (e *Exprs) NewLiteral(span source.Span, kind ExprLitKind, number float64, str source.StringID) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Kind: kind, Number: number, Str: str})
	return e.new(ExprLit, span, PayloadID(payload))
}

func (e *Exprs) NewVariable(span source.Span, name source.StringID) ExprID {
	payload := e.Variables.Allocate(ExprVariableData{Name: name})
	return e.new(ExprVariable, span, PayloadID(payload))
}

func (e *Exprs) NewAssign(span source.Span, name source.StringID, nameSpan source.Span, value ExprID) ExprID {
	payload := e.Assigns.Allocate(ExprAssignData{Name: name, NameSpan: nameSpan, Value: value})
	return e.new(ExprAssign, span, PayloadID(payload))
}

func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

func (e *Exprs) NewLogical(span source.Span, op ExprLogicalOp, left, right ExprID) ExprID {
	payload := e.Logicals.Allocate(ExprLogicalData{Op: op, Left: left, Right: right})
	return e.new(ExprLogical, span, PayloadID(payload))
}

func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID, paren source.Span) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Callee: callee,
		Args:   append([]ExprID(nil), args...),
		Paren:  paren,
	})
	return e.new(ExprCall, span, PayloadID(payload))
}

func (e *Exprs) NewGet(span source.Span, object ExprID, name source.StringID, nameSpan source.Span) ExprID {
	payload := e.Gets.Allocate(ExprGetData{Object: object, Name: name, NameSpan: nameSpan})
	return e.new(ExprGet, span, PayloadID(payload))
}

func (e *Exprs) NewSet(span source.Span, object ExprID, name source.StringID, nameSpan source.Span, value ExprID) ExprID {
	payload := e.Sets.Allocate(ExprSetData{Object: object, Name: name, NameSpan: nameSpan, Value: value})
	return e.new(ExprSet, span, PayloadID(payload))
}

func (e *Exprs) NewThis(span source.Span) ExprID {
	return e.new(ExprThis, span, NoPayloadID)
}

func (e *Exprs) NewSuper(span source.Span, method source.StringID, methodSpan source.Span) ExprID {
	payload := e.Supers.Allocate(ExprSuperData{Method: method, MethodSpan: methodSpan})
	return e.new(ExprSuper, span, PayloadID(payload))
}

func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	payload := e.Groups.Allocate(ExprGroupData{Inner: inner})
	return e.new(ExprGroup, span, PayloadID(payload))
}

func (e *Exprs) NewFunction(span source.Span, fn FnID) ExprID {
	payload := e.Functions.Allocate(ExprFunctionData{Fn: fn})
	return e.new(ExprFunction, span, PayloadID(payload))
}

// Literal returns the payload of a ExprLit expression.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

// Variable returns the payload of a ExprVariable expression.
func (e *Exprs) Variable(id ExprID) (*ExprVariableData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprVariable {
		return nil, false
	}
	return e.Variables.Get(uint32(expr.Payload)), true
}

// Assign returns the payload of an ExprAssign expression.
func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAssign {
		return nil, false
	}
	return e.Assigns.Get(uint32(expr.Payload)), true
}

// Unary returns the payload of a ExprUnary expression.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

// Binary returns the payload of a ExprBinary expression.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

// Logical returns the payload of a ExprLogical expression.
func (e *Exprs) Logical(id ExprID) (*ExprLogicalData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLogical {
		return nil, false
	}
	return e.Logicals.Get(uint32(expr.Payload)), true
}

// Call returns the payload of a ExprCall expression.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

// PropGet returns the payload of an ExprGet expression.
func (e *Exprs) PropGet(id ExprID) (*ExprGetData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprGet {
		return nil, false
	}
	return e.Gets.Get(uint32(expr.Payload)), true
}

// PropSet returns the payload of an ExprSet expression.
func (e *Exprs) PropSet(id ExprID) (*ExprSetData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSet {
		return nil, false
	}
	return e.Sets.Get(uint32(expr.Payload)), true
}

// Super returns the payload of a ExprSuper expression.
func (e *Exprs) Super(id ExprID) (*ExprSuperData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSuper {
		return nil, false
	}
	return e.Supers.Get(uint32(expr.Payload)), true
}

// Group returns the payload of a ExprGroup expression.
func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprGroup {
		return nil, false
	}
	return e.Groups.Get(uint32(expr.Payload)), true
}

// Function returns the payload of a ExprFunction expression.
func (e *Exprs) Function(id ExprID) (*ExprFunctionData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprFunction {
		return nil, false
	}
	return e.Functions.Get(uint32(expr.Payload)), true
}
