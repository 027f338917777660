package parser

import (
	"strconv"

	"lox/internal/ast"
	"lox/internal/diag"
	"lox/internal/fix"
	"lox/internal/source"
	"lox/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseAssignment()
}

// parseAssignment: (call ".")? IDENT "=" assignment | logic_or.
// Цель проверяется после разбора левой части; неверная цель репортится,
// но разбор продолжается без синхронизации.
func (p *Parser) parseAssignment() (ast.ExprID, bool) {
	target, ok := p.parseBinaryExpr(precOr)
	if !ok {
		return ast.NoExprID, false
	}
	eqTok, isAssign := p.eat(token.Assign)
	if !isAssign {
		return target, true
	}
	value, ok := p.parseAssignment()
	if !ok {
		return ast.NoExprID, false
	}

	exprs := p.arenas.Exprs
	targetSpan := exprs.Get(target).Span
	span := targetSpan.Cover(exprs.Get(value).Span)
	if v, ok := exprs.Variable(target); ok {
		return exprs.NewAssign(span, v.Name, targetSpan, value), true
	}
	if g, ok := exprs.PropGet(target); ok {
		return exprs.NewSet(span, g.Object, g.Name, g.NameSpan, value), true
	}
	p.reportAt(diag.SynInvalidAssignTarget, eqTok.Span, "Invalid assignment target.")
	return target, true
}

// parseBinaryExpr — precedence climbing по op_table; and/or дают Logical.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		opKind := p.peek().Kind
		prec := binaryPrec(opKind)
		if prec == precNone || prec < minPrec {
			return left, true
		}
		p.advance()

		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}

		exprs := p.arenas.Exprs
		span := exprs.Get(left).Span.Cover(exprs.Get(right).Span)
		switch opKind {
		case token.KwAnd:
			left = exprs.NewLogical(span, ast.ExprLogicalAnd, left, right)
		case token.KwOr:
			left = exprs.NewLogical(span, ast.ExprLogicalOr, left, right)
		default:
			left = exprs.NewBinary(span, tokenToBinaryOp(opKind), left, right)
		}
	}
}

// parseUnaryExpr: ("!" | "-") unary | call
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	var op ast.ExprUnaryOp
	switch p.peek().Kind {
	case token.Bang:
		op = ast.ExprUnaryNot
	case token.Minus:
		op = ast.ExprUnaryNeg
	default:
		return p.parseCallExpr()
	}
	opTok := p.advance()
	operand, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	span := opTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
	return p.arenas.Exprs.NewUnary(span, op, operand), true
}

// parseCallExpr: primary ( "(" arguments? ")" | "." IDENT )*
func (p *Parser) parseCallExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		switch p.peek().Kind {
		case token.LParen:
			if expr, ok = p.finishCall(expr); !ok {
				return ast.NoExprID, false
			}
		case token.Dot:
			p.advance()
			nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "Expect property name after '.'.")
			if !ok {
				return ast.NoExprID, false
			}
			span := p.arenas.Exprs.Get(expr).Span.Cover(nameTok.Span)
			expr = p.arenas.Exprs.NewGet(span, expr, p.intern(nameTok), nameTok.Span)
		default:
			return expr, true
		}
	}
}

func (p *Parser) finishCall(callee ast.ExprID) (ast.ExprID, bool) {
	openTok := p.advance()
	args := make([]ast.ExprID, 0, 4)
	if !p.at(token.RParen) {
		for {
			if len(args) >= maxArgs {
				p.err(diag.SynTooManyArguments, "Can't have more than 255 arguments.")
			}
			arg, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			args = append(args, arg)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "Expect ')' after arguments.", func(b *diag.ReportBuilder) {
		ins := fix.InsertAfter("insert ')'", p.lastSpan, ")")
		b.WithNote(openTok.Span, "call opened here").WithFix(ins.Title, ins.Edits...)
	})
	if !ok {
		return ast.NoExprID, false
	}
	span := p.arenas.Exprs.Get(callee).Span.Cover(closeTok.Span)
	return p.arenas.Exprs.NewCall(span, callee, args, closeTok.Span), true
}

// parsePrimary: literals, IDENT, this, super "." IDENT, "(" expr ")", fun-выражение.
func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	exprs := p.arenas.Exprs
	tok := p.peek()
	switch tok.Kind {
	case token.KwTrue:
		p.advance()
		return exprs.NewLiteral(tok.Span, ast.ExprLitTrue, 0, source.NoStringID), true
	case token.KwFalse:
		p.advance()
		return exprs.NewLiteral(tok.Span, ast.ExprLitFalse, 0, source.NoStringID), true
	case token.KwNil:
		p.advance()
		return exprs.NewLiteral(tok.Span, ast.ExprLitNil, 0, source.NoStringID), true
	case token.NumberLit:
		p.advance()
		// лексер уже проверил диапазон
		n, _ := strconv.ParseFloat(tok.Text, 64)
		return exprs.NewLiteral(tok.Span, ast.ExprLitNumber, n, source.NoStringID), true
	case token.StringLit:
		p.advance()
		str := p.arenas.Strings.Intern(tok.StringValue())
		return exprs.NewLiteral(tok.Span, ast.ExprLitString, 0, str), true
	case token.Ident:
		p.advance()
		return exprs.NewVariable(tok.Span, p.intern(tok)), true
	case token.KwThis:
		p.advance()
		return exprs.NewThis(tok.Span), true
	case token.KwSuper:
		p.advance()
		if _, ok := p.expect(token.Dot, diag.SynUnexpectedToken, "Expect '.' after 'super'."); !ok {
			return ast.NoExprID, false
		}
		methodTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "Expect superclass method name.")
		if !ok {
			return ast.NoExprID, false
		}
		return exprs.NewSuper(tok.Span.Cover(methodTok.Span), p.intern(methodTok), methodTok.Span), true
	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "Expect ')' after expression.", func(b *diag.ReportBuilder) {
			ins := fix.InsertAfter("insert ')'", p.lastSpan, ")")
			b.WithNote(tok.Span, "opened here").WithFix(ins.Title, ins.Edits...)
		}); !ok {
			return ast.NoExprID, false
		}
		return exprs.NewGroup(p.spanFrom(tok.Span), inner), true
	case token.KwFun:
		p.advance()
		fn, ok := p.parseFnRest(tok.Span, source.NoStringID, tok.Span, "function")
		if !ok {
			return ast.NoExprID, false
		}
		return exprs.NewFunction(p.spanFrom(tok.Span), fn), true
	}
	p.err(diag.SynExpectExpression, "Expect expression.")
	return ast.NoExprID, false
}
