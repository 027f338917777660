package parser

import (
	"lox/internal/ast"
	"lox/internal/diag"
	"lox/internal/source"
	"lox/internal/token"
)

func (p *Parser) parseFunDecl() (ast.StmtID, bool) {
	funTok := p.advance()
	fn, ok := p.parseNamedFn("function")
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFun(p.spanFrom(funTok.Span), fn), true
}

// parseNamedFn: IDENT "(" params? ")" block. kind is "function" or "method".
func (p *Parser) parseNamedFn(kind string) (ast.FnID, bool) {
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "Expect "+kind+" name.")
	if !ok {
		return ast.NoFnID, false
	}
	return p.parseFnRest(nameTok.Span, p.intern(nameTok), nameTok.Span, kind)
}

// parseFnRest разбирает параметры и тело. name == NoStringID для `fun` выражений.
func (p *Parser) parseFnRest(start source.Span, name source.StringID, nameSpan source.Span, kind string) (ast.FnID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "Expect '(' after "+kind+" name."); !ok {
		return ast.NoFnID, false
	}
	params := make([]ast.Param, 0, 4)
	if !p.at(token.RParen) {
		for {
			if len(params) >= maxArgs {
				p.err(diag.SynTooManyParameters, "Can't have more than 255 parameters.")
			}
			paramTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "Expect parameter name.")
			if !ok {
				return ast.NoFnID, false
			}
			params = append(params, ast.Param{Name: p.intern(paramTok), Span: paramTok.Span})
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "Expect ')' after parameters."); !ok {
		return ast.NoFnID, false
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "Expect '{' before "+kind+" body.")
		return ast.NoFnID, false
	}
	body, ok := p.parseBlockBody()
	if !ok {
		return ast.NoFnID, false
	}
	return p.arenas.Fns.New(name, nameSpan, params, body, p.spanFrom(start)), true
}

// parseClassDecl: "class" IDENT ( "<" IDENT )? "{" method* "}"
func (p *Parser) parseClassDecl() (ast.StmtID, bool) {
	classTok := p.advance()
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "Expect class name.")
	if !ok {
		return ast.NoStmtID, false
	}

	superclass := ast.NoExprID
	if _, ok := p.eat(token.Lt); ok {
		superTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "Expect superclass name.")
		if !ok {
			return ast.NoStmtID, false
		}
		superclass = p.arenas.Exprs.NewVariable(superTok.Span, p.intern(superTok))
	}

	openTok, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "Expect '{' before class body.")
	if !ok {
		return ast.NoStmtID, false
	}
	methods := make([]ast.FnID, 0, 4)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fn, ok := p.parseNamedFn("method")
		if !ok {
			return ast.NoStmtID, false
		}
		methods = append(methods, fn)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "Expect '}' after class body.", func(b *diag.ReportBuilder) {
		b.WithNote(openTok.Span, "class body opened here")
	}); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewClass(p.spanFrom(classTok.Span), p.intern(nameTok), nameTok.Span, superclass, methods), true
}
