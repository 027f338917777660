package lexer

import (
	"errors"
	"strconv"

	"lox/internal/diag"
	"lox/internal/token"
)

// Число: [0-9]+ ( '.' [0-9]+ )?
// Ни ведущей, ни висячей точки: "1." это NumberLit и Dot, ".5" это Dot и NumberLit.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if _, err := strconv.ParseFloat(text, 64); err != nil && errors.Is(err, strconv.ErrRange) {
		lx.errLex(diag.LexBadNumber, sp, "Number literal is too large.")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.NumberLit, Span: sp, Text: text}
}
