package ast

import (
	"lox/internal/source"
)

type ExprKind uint8

const (
	ExprLit ExprKind = iota
	ExprVariable
	ExprAssign
	ExprUnary
	ExprBinary
	ExprLogical
	ExprCall
	ExprGet
	ExprSet
	ExprThis
	ExprSuper
	ExprGroup
	ExprFunction
)

func (k ExprKind) String() string {
	switch k {
	case ExprLit:
		return "Literal"
	case ExprVariable:
		return "Variable"
	case ExprAssign:
		return "Assign"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprLogical:
		return "Logical"
	case ExprCall:
		return "Call"
	case ExprGet:
		return "Get"
	case ExprSet:
		return "Set"
	case ExprThis:
		return "This"
	case ExprSuper:
		return "Super"
	case ExprGroup:
		return "Group"
	case ExprFunction:
		return "Function"
	}
	return "Expr?"
}

// Expr is a node header; Payload indexes the arena chosen by Kind.
// ExprThis carries no payload.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprLitKind uint8

const (
	// ExprLitNil represents the nil literal.
	ExprLitNil ExprLitKind = iota
	// ExprLitTrue represents a true boolean literal.
	ExprLitTrue
	// ExprLitFalse represents a false boolean literal.
	ExprLitFalse
	// ExprLitNumber represents a number literal.
	ExprLitNumber
	// ExprLitString represents a string literal.
	ExprLitString
)

type ExprLiteralData struct {
	Kind   ExprLitKind
	Number float64
	Str    source.StringID
}

type ExprVariableData struct {
	Name source.StringID
}

type ExprAssignData struct {
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID
}

type ExprUnaryOp uint8

const (
	ExprUnaryNeg ExprUnaryOp = iota // -x
	ExprUnaryNot                    // !x
)

func (op ExprUnaryOp) String() string {
	if op == ExprUnaryNot {
		return "!"
	}
	return "-"
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq
)

var binaryOpText = [...]string{
	ExprBinaryAdd:       "+",
	ExprBinarySub:       "-",
	ExprBinaryMul:       "*",
	ExprBinaryDiv:       "/",
	ExprBinaryEq:        "==",
	ExprBinaryNotEq:     "!=",
	ExprBinaryLess:      "<",
	ExprBinaryLessEq:    "<=",
	ExprBinaryGreater:   ">",
	ExprBinaryGreaterEq: ">=",
}

func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprLogicalOp uint8

const (
	ExprLogicalAnd ExprLogicalOp = iota
	ExprLogicalOr
)

func (op ExprLogicalOp) String() string {
	if op == ExprLogicalOr {
		return "or"
	}
	return "and"
}

type ExprLogicalData struct {
	Op    ExprLogicalOp
	Left  ExprID
	Right ExprID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
	// Paren is the closing ')' and locates runtime errors of the call.
	Paren source.Span
}

type ExprGetData struct {
	Object   ExprID
	Name     source.StringID
	NameSpan source.Span
}

type ExprSetData struct {
	Object   ExprID
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID
}

type ExprSuperData struct {
	Method     source.StringID
	MethodSpan source.Span
}

type ExprGroupData struct {
	Inner ExprID
}

type ExprFunctionData struct {
	Fn FnID
}
