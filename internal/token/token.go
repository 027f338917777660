package token

import (
	"lox/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, KwTrue, KwFalse, KwNil:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAnd && t.Kind <= KwWhile
}

// IsPunctOrOp reports whether the token is punctuation or an operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= LParen && t.Kind <= LtEq
}

func (t Token) IsIdent() bool { return t.Kind == Ident }

// StringValue returns the contents of a string literal without its quotes.
func (t Token) StringValue() string {
	if t.Kind != StringLit || len(t.Text) < 2 {
		return ""
	}
	return t.Text[1 : len(t.Text)-1]
}
