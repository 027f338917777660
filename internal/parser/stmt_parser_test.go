package parser

import (
	"testing"

	"lox/internal/ast"
	"lox/internal/diag"
)

func TestStatementKinds(t *testing.T) {
	p := parseOK(t, `
var a = 1;
var b;
print a;
{ a = 2; }
if (a) print 1; else print 2;
while (false) a;
fun f(x) { return x; }
class C < B { init() { this.x = 1; } m() { return; } }
`)
	want := []ast.StmtKind{ast.StmtVar, ast.StmtVar, ast.StmtPrint, ast.StmtBlock, ast.StmtIf, ast.StmtWhile, ast.StmtFun, ast.StmtClass}
	stmts := p.stmts()
	if len(stmts) != len(want) {
		t.Fatalf("expected %d statements, got %d", len(want), len(stmts))
	}
	for i, id := range stmts {
		if got := p.builder.Stmts.Get(id).Kind; got != want[i] {
			t.Errorf("stmt %d: got %s, want %s", i, got, want[i])
		}
	}

	b := p.builder
	if v, _ := b.Stmts.Var(stmts[1]); v.Init.IsValid() {
		t.Errorf("var without initializer must have no init expr")
	}
	if data, _ := b.Stmts.If(stmts[4]); !data.Else.IsValid() {
		t.Errorf("if must keep its else branch")
	}
	cls, _ := b.Stmts.Class(stmts[7])
	if b.Name(cls.Name) != "C" || len(cls.Methods) != 2 {
		t.Fatalf("class decl mismatch: %s with %d methods", b.Name(cls.Name), len(cls.Methods))
	}
	if sup, ok := b.Exprs.Variable(cls.Superclass); !ok || b.Name(sup.Name) != "B" {
		t.Fatalf("superclass must be a variable B")
	}
	if b.Name(b.Fns.Get(cls.Methods[0]).Name) != "init" {
		t.Fatalf("first method must be init")
	}
	fn, _ := b.Stmts.Fun(stmts[6])
	if f := b.Fns.Get(fn.Fn); b.Name(f.Name) != "f" || f.Arity() != 1 || len(f.Body) != 1 {
		t.Fatalf("function decl mismatch")
	}
}

func TestForDesugaring(t *testing.T) {
	p := parseOK(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	b := p.builder
	outer, ok := b.Stmts.Block(p.stmts()[0])
	if !ok || len(outer.Stmts) != 2 {
		t.Fatalf("for with initializer must become a two-statement block")
	}
	if b.Stmts.Get(outer.Stmts[0]).Kind != ast.StmtVar {
		t.Fatalf("first statement must be the initializer")
	}
	loop, ok := b.Stmts.While(outer.Stmts[1])
	if !ok {
		t.Fatalf("second statement must be while")
	}
	if got := sexpr(b, loop.Cond); got != "(< i 3)" {
		t.Fatalf("cond = %s", got)
	}
	body, ok := b.Stmts.Block(loop.Body)
	if !ok || len(body.Stmts) != 2 {
		t.Fatalf("body must be {print; increment}")
	}
	incr, _ := b.Stmts.Expr(body.Stmts[1])
	if got := sexpr(b, incr.Expr); got != "(= i (+ i 1))" {
		t.Fatalf("increment = %s", got)
	}
}

func TestForWithoutClauses(t *testing.T) {
	p := parseOK(t, "for (;;) print 1;")
	loop, ok := p.builder.Stmts.While(p.stmts()[0])
	if !ok {
		t.Fatalf("for without initializer must be a bare while")
	}
	if got := sexpr(p.builder, loop.Cond); got != "true" {
		t.Fatalf("missing condition must be true, got %s", got)
	}
	if p.builder.Stmts.Get(loop.Body).Kind != ast.StmtPrint {
		t.Fatalf("body without increment stays as is")
	}
}

func TestResyncCollectsAllErrors(t *testing.T) {
	p := parseSource(t, "var = 1;\nprint 2;\nvar x = ;\nclass { }\nprint 3;")
	got := diagnosticsSummary(p.bag)
	want := "[SYN2003] Expect variable name.; [SYN2004] Expect expression.; [SYN2003] Expect class name."
	if got != want {
		t.Fatalf("diagnostics:\n got %s\nwant %s", got, want)
	}
	// print 2; и print 3; пережили восстановление
	if n := len(p.stmts()); n != 2 {
		t.Fatalf("expected 2 surviving statements, got %d", n)
	}
}

func TestBlockRecoversInside(t *testing.T) {
	p := parseSource(t, "{ print ; print 1; }")
	if p.bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %s", diagnosticsSummary(p.bag))
	}
	block, ok := p.builder.Stmts.Block(p.stmts()[0])
	if !ok || len(block.Stmts) != 1 {
		t.Fatalf("block must keep the valid statement")
	}
}

func TestMissingSemicolonHasFix(t *testing.T) {
	p := parseSource(t, "print 1\nprint 2;")
	items := p.bag.Items()
	if len(items) != 1 || items[0].Code != diag.SynExpectSemicolon || items[0].Message != "Expect ';' after value." {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	fixes := items[0].Fixes
	if len(fixes) != 1 || fixes[0].Edits[0].NewText != ";" || fixes[0].Edits[0].Span.Start != 7 {
		t.Fatalf("expected insert-';' fix after the literal, got %+v", fixes)
	}
}

func TestIncompleteInput(t *testing.T) {
	cases := []struct {
		input      string
		incomplete bool
	}{
		{"print 1", true},
		{"fun f() {", true},
		{"if (x) {\n print x;", true},
		{"print (1 + ", true},
		{"print \"never closed", true},
		{"print 1;", false},
		{"print );", false},
		{"print ); print", false},
	}
	for _, tc := range cases {
		p := parseSource(t, tc.input)
		if p.result.Incomplete != tc.incomplete {
			t.Errorf("%q: Incomplete = %v, want %v (%s)", tc.input, p.result.Incomplete, tc.incomplete, diagnosticsSummary(p.bag))
		}
	}
}

func TestMaxErrors(t *testing.T) {
	p := parseSource(t, "var; var; var; var;")
	if p.bag.Len() != 4 {
		t.Fatalf("expected 4 diagnostics without a limit, got %d", p.bag.Len())
	}
}

func TestEmptyAndCommentOnly(t *testing.T) {
	for _, src := range []string{"", "// nothing\n/* here */"} {
		p := parseSource(t, src)
		if p.bag.Len() != 0 || len(p.stmts()) != 0 {
			t.Fatalf("%q must parse to an empty program", src)
		}
	}
}
