package parser

import (
	"lox/internal/ast"
	"lox/internal/diag"
	"lox/internal/source"
	"lox/internal/token"
)

// parseDeclaration: classDecl | funDecl | varDecl | statement.
// `fun` без имени начинает выражение, а не объявление.
func (p *Parser) parseDeclaration() (ast.StmtID, bool) {
	switch p.peek().Kind {
	case token.KwClass:
		return p.parseClassDecl()
	case token.KwFun:
		if p.peekSecond().Kind == token.Ident {
			return p.parseFunDecl()
		}
	case token.KwVar:
		return p.parseVarDecl()
	}
	return p.parseStmt()
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.peek().Kind {
	case token.KwPrint:
		return p.parsePrintStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.LBrace:
		start := p.peek().Span
		stmts, ok := p.parseBlockBody()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewBlock(p.spanFrom(start), stmts), true
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseVarDecl() (ast.StmtID, bool) {
	varTok := p.advance()
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "Expect variable name.")
	if !ok {
		return ast.NoStmtID, false
	}

	init := ast.NoExprID
	if _, ok := p.eat(token.Assign); ok {
		if init, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expectSemicolon("Expect ';' after variable declaration."); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewVar(p.spanFrom(varTok.Span), p.intern(nameTok), nameTok.Span, init), true
}

func (p *Parser) parsePrintStmt() (ast.StmtID, bool) {
	printTok := p.advance()
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expectSemicolon("Expect ';' after value."); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewPrint(p.spanFrom(printTok.Span), value), true
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	start := p.peek().Span
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expectSemicolon("Expect ';' after expression."); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(p.spanFrom(start), value), true
}

func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	retTok := p.advance()
	value := ast.NoExprID
	if !p.at(token.Semicolon) {
		var ok bool
		if value, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expectSemicolon("Expect ';' after return value."); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(p.spanFrom(retTok.Span), retTok.Span, value), true
}

// parseBlockBody разбирает `{ declaration* }`. Ошибки внутри блока
// восстанавливаются на месте, блок продолжает разбираться.
func (p *Parser) parseBlockBody() ([]ast.StmtID, bool) {
	openTok, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "Expect '{'.")
	if !ok {
		return nil, false
	}
	stmts := make([]ast.StmtID, 0, 4)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmtID, ok := p.parseDeclaration()
		if !ok {
			p.resync()
			continue
		}
		stmts = append(stmts, stmtID)
	}
	_, ok = p.expect(token.RBrace, diag.SynUnclosedBrace, "Expect '}' after block.", func(b *diag.ReportBuilder) {
		b.WithNote(openTok.Span, "block opened here")
	})
	return stmts, ok
}

func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	ifTok := p.advance()
	cond, ok := p.parseParenCond("Expect '(' after 'if'.", "Expect ')' after if condition.")
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	els := ast.NoStmtID
	if _, ok := p.eat(token.KwElse); ok {
		if els, ok = p.parseStmt(); !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewIf(p.spanFrom(ifTok.Span), cond, then, els), true
}

func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	whileTok := p.advance()
	cond, ok := p.parseParenCond("Expect '(' after 'while'.", "Expect ')' after condition.")
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(p.spanFrom(whileTok.Span), cond, body), true
}

func (p *Parser) parseParenCond(openMsg, closeMsg string) (ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, openMsg); !ok {
		return ast.NoExprID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, closeMsg); !ok {
		return ast.NoExprID, false
	}
	return cond, true
}

// parseForStmt разворачивает for в while:
//
//	{ init; while (cond) { body; incr; } }
//
// Без условия цикл бесконечный; блок-обёртка появляется только при init.
func (p *Parser) parseForStmt() (ast.StmtID, bool) {
	forTok := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "Expect '(' after 'for'."); !ok {
		return ast.NoStmtID, false
	}

	init := ast.NoStmtID
	switch p.peek().Kind {
	case token.Semicolon:
		p.advance()
	case token.KwVar:
		var ok bool
		if init, ok = p.parseVarDecl(); !ok {
			return ast.NoStmtID, false
		}
	default:
		var ok bool
		if init, ok = p.parseExprStmt(); !ok {
			return ast.NoStmtID, false
		}
	}

	cond := ast.NoExprID
	if !p.at(token.Semicolon) {
		var ok bool
		if cond, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expectSemicolon("Expect ';' after loop condition."); !ok {
		return ast.NoStmtID, false
	}

	incr := ast.NoExprID
	if !p.at(token.RParen) {
		var ok bool
		if incr, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "Expect ')' after for clauses."); !ok {
		return ast.NoStmtID, false
	}

	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	span := p.spanFrom(forTok.Span)
	stmts := p.arenas.Stmts

	if incr.IsValid() {
		incrSpan := p.arenas.Exprs.Get(incr).Span
		body = stmts.NewBlock(stmts.Get(body).Span.Cover(incrSpan), []ast.StmtID{body, stmts.NewExpr(incrSpan, incr)})
	}
	if !cond.IsValid() {
		cond = p.arenas.Exprs.NewLiteral(source.Span{File: forTok.Span.File, Start: forTok.Span.End, End: forTok.Span.End}, ast.ExprLitTrue, 0, source.NoStringID)
	}
	loop := stmts.NewWhile(span, cond, body)
	if init.IsValid() {
		loop = stmts.NewBlock(span, []ast.StmtID{init, loop})
	}
	return loop, true
}
