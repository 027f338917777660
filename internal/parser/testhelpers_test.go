package parser

import (
	"fmt"
	"strings"
	"testing"

	"lox/internal/ast"
	"lox/internal/diag"
	"lox/internal/lexer"
	"lox/internal/source"
	"lox/internal/testkit"
)

type parsed struct {
	builder *ast.Builder
	file    ast.FileID
	bag     *diag.Bag
	result  Result
	src     *source.File
}

func parseSource(t *testing.T, input string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.lox", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseFile(fs, lx, builder, Options{Reporter: reporter})
	return parsed{builder: builder, file: res.File, bag: bag, result: res, src: file}
}

// parseOK разбирает вход и требует отсутствия диагностик и целых спанов.
func parseOK(t *testing.T, input string) parsed {
	t.Helper()
	p := parseSource(t, input)
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", input, diagnosticsSummary(p.bag))
	}
	if err := testkit.CheckSpanInvariants(p.builder, p.file, p.src); err != nil {
		t.Fatalf("span invariants violated for %q: %v", input, err)
	}
	return p
}

func (p parsed) stmts() []ast.StmtID {
	return p.builder.Files.Get(p.file).Stmts
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// sexpr — компактная запись выражения для сравнения в тестах.
func sexpr(b *ast.Builder, id ast.ExprID) string {
	e := b.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprLit:
		lit, _ := b.Exprs.Literal(id)
		switch lit.Kind {
		case ast.ExprLitNumber:
			return fmt.Sprint(lit.Number)
		case ast.ExprLitString:
			return fmt.Sprintf("%q", b.Name(lit.Str))
		case ast.ExprLitTrue:
			return "true"
		case ast.ExprLitFalse:
			return "false"
		}
		return "nil"
	case ast.ExprVariable:
		v, _ := b.Exprs.Variable(id)
		return b.Name(v.Name)
	case ast.ExprAssign:
		a, _ := b.Exprs.Assign(id)
		return fmt.Sprintf("(= %s %s)", b.Name(a.Name), sexpr(b, a.Value))
	case ast.ExprUnary:
		u, _ := b.Exprs.Unary(id)
		return fmt.Sprintf("(%s %s)", u.Op, sexpr(b, u.Operand))
	case ast.ExprBinary:
		bin, _ := b.Exprs.Binary(id)
		return fmt.Sprintf("(%s %s %s)", bin.Op, sexpr(b, bin.Left), sexpr(b, bin.Right))
	case ast.ExprLogical:
		l, _ := b.Exprs.Logical(id)
		return fmt.Sprintf("(%s %s %s)", l.Op, sexpr(b, l.Left), sexpr(b, l.Right))
	case ast.ExprCall:
		c, _ := b.Exprs.Call(id)
		parts := []string{"call", sexpr(b, c.Callee)}
		for _, a := range c.Args {
			parts = append(parts, sexpr(b, a))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.ExprGet:
		g, _ := b.Exprs.PropGet(id)
		return fmt.Sprintf("(. %s %s)", sexpr(b, g.Object), b.Name(g.Name))
	case ast.ExprSet:
		s, _ := b.Exprs.PropSet(id)
		return fmt.Sprintf("(.= %s %s %s)", sexpr(b, s.Object), b.Name(s.Name), sexpr(b, s.Value))
	case ast.ExprThis:
		return "this"
	case ast.ExprSuper:
		s, _ := b.Exprs.Super(id)
		return "(super " + b.Name(s.Method) + ")"
	case ast.ExprGroup:
		g, _ := b.Exprs.Group(id)
		return "(group " + sexpr(b, g.Inner) + ")"
	case ast.ExprFunction:
		f, _ := b.Exprs.Function(id)
		return fmt.Sprintf("(fun/%d)", b.Fns.Get(f.Fn).Arity())
	}
	return "?"
}

// exprOf достаёт выражение единственной expression/print инструкции.
func exprOf(t *testing.T, p parsed) ast.ExprID {
	t.Helper()
	stmts := p.stmts()
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	data, ok := p.builder.Stmts.Expr(stmts[0])
	if !ok {
		t.Fatalf("expected expression statement, got %s", p.builder.Stmts.Get(stmts[0]).Kind)
	}
	return data.Expr
}
