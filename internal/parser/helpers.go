package parser

import (
	"lox/internal/diag"
	"lox/internal/fix"
	"lox/internal/source"
	"lox/internal/token"
)

// peek возвращает следующий значимый токен. Invalid-токены уже зарепорчены
// лексером, парсер их молча пропускает.
func (p *Parser) peek() token.Token {
	for {
		tok := p.lx.Peek()
		if tok.Kind != token.Invalid {
			return tok
		}
		p.lx.Next()
	}
}

// peekSecond смотрит на токен после peek(), пропуская Invalid.
func (p *Parser) peekSecond() token.Token {
	p.peek()
	for i := 1; ; i++ {
		tok := p.lx.PeekAt(i)
		if tok.Kind != token.Invalid {
			return tok
		}
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	p.peek()
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
		p.lastKind = tok.Kind
	}
	return tok
}

// eat съедает токен вида k, если он следующий.
func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (invalid,false).
// decorate может дополнить диагностику заметками и исправлениями.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string, decorate ...func(*diag.ReportBuilder)) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.peek().Span
	b := p.reportBuilder(code, sp, msg)
	for _, fn := range decorate {
		fn(b)
	}
	b.Emit()
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// expectSemicolon требует ';' и предлагает вставить его после последнего токена.
func (p *Parser) expectSemicolon(msg string) (token.Token, bool) {
	return p.expect(token.Semicolon, diag.SynExpectSemicolon, msg, func(b *diag.ReportBuilder) {
		if b == nil {
			return
		}
		ins := fix.InsertAfter("insert ';'", p.lastSpan, ";")
		b.WithFix(ins.Title, ins.Edits...)
	})
}

// репортует ошибку на текущем токене
func (p *Parser) err(code diag.Code, msg string) {
	p.reportAt(code, p.peek().Span, msg)
}

func (p *Parser) reportAt(code diag.Code, sp source.Span, msg string) {
	p.reportBuilder(code, sp, msg).Emit()
}

// reportBuilder считает ошибку и возвращает builder, либо nil когда
// репортить некуда или лимит исчерпан (методы builder'а nil-safe).
func (p *Parser) reportBuilder(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	if p.opts.CurrentErrors == 0 && p.at(token.EOF) {
		p.incomplete = true
	}
	p.opts.CurrentErrors++
	if p.opts.Reporter == nil || (p.opts.MaxErrors != 0 && p.opts.CurrentErrors > p.opts.MaxErrors) {
		return nil
	}
	return diag.ReportError(p.opts.Reporter, code, sp, msg)
}

// spanFrom покрывает всё от start до последнего съеденного токена.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

func (p *Parser) intern(tok token.Token) source.StringID {
	return p.arenas.Strings.Intern(tok.Text)
}
