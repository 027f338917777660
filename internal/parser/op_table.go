package parser

import (
	"lox/internal/ast"
	"lox/internal/token"
)

// Таблица приоритетов бинарных операторов, все левоассоциативны.
// Присваивание разбирается отдельно (parseAssignment).
const (
	precNone       = 0
	precOr         = 1 // or
	precAnd        = 2 // and
	precEquality   = 3 // == !=
	precComparison = 4 // < <= > >=
	precTerm       = 5 // + -
	precFactor     = 6 // * /
)

func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.KwOr:
		return precOr
	case token.KwAnd:
		return precAnd
	case token.EqEq, token.BangEq:
		return precEquality
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison
	case token.Plus, token.Minus:
		return precTerm
	case token.Star, token.Slash:
		return precFactor
	default:
		return precNone
	}
}

func tokenToBinaryOp(kind token.Kind) ast.ExprBinaryOp {
	switch kind {
	case token.Plus:
		return ast.ExprBinaryAdd
	case token.Minus:
		return ast.ExprBinarySub
	case token.Star:
		return ast.ExprBinaryMul
	case token.Slash:
		return ast.ExprBinaryDiv
	case token.EqEq:
		return ast.ExprBinaryEq
	case token.BangEq:
		return ast.ExprBinaryNotEq
	case token.Lt:
		return ast.ExprBinaryLess
	case token.LtEq:
		return ast.ExprBinaryLessEq
	case token.Gt:
		return ast.ExprBinaryGreater
	case token.GtEq:
		return ast.ExprBinaryGreaterEq
	}
	panic("parser: not a binary operator: " + kind.String())
}
