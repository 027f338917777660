package lexer

import (
	"lox/internal/diag"
	"lox/internal/token"
)

// Жадность: сначала двухсимвольные сравнения, затем односимвольные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{
			Kind: k,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		}
	}

	switch {
	case lx.cursor.Match("!="):
		return emit(token.BangEq)
	case lx.cursor.Match("=="):
		return emit(token.EqEq)
	case lx.cursor.Match("<="):
		return emit(token.LtEq)
	case lx.cursor.Match(">="):
		return emit(token.GtEq)
	}

	switch lx.cursor.Peek() {
	case '(':
		lx.cursor.Bump()
		return emit(token.LParen)
	case ')':
		lx.cursor.Bump()
		return emit(token.RParen)
	case '{':
		lx.cursor.Bump()
		return emit(token.LBrace)
	case '}':
		lx.cursor.Bump()
		return emit(token.RBrace)
	case ',':
		lx.cursor.Bump()
		return emit(token.Comma)
	case '.':
		lx.cursor.Bump()
		return emit(token.Dot)
	case '-':
		lx.cursor.Bump()
		return emit(token.Minus)
	case '+':
		lx.cursor.Bump()
		return emit(token.Plus)
	case ';':
		lx.cursor.Bump()
		return emit(token.Semicolon)
	case '/':
		lx.cursor.Bump()
		return emit(token.Slash)
	case '*':
		lx.cursor.Bump()
		return emit(token.Star)
	case '!':
		lx.cursor.Bump()
		return emit(token.Bang)
	case '=':
		lx.cursor.Bump()
		return emit(token.Assign)
	case '<':
		lx.cursor.Bump()
		return emit(token.Lt)
	case '>':
		lx.cursor.Bump()
		return emit(token.Gt)
	}

	// неизвестный символ: съедаем целую руну, чтобы не резать UTF-8
	lx.cursor.BumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "Unexpected character.")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
