package ast

import (
	"testing"

	"lox/internal/source"
)

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatalf("empty arena must return nil")
	}
	id := a.Allocate(42)
	if id != 1 {
		t.Fatalf("first id = %d, want 1", id)
	}
	if got := *a.Get(id); got != 42 {
		t.Fatalf("Get = %d", got)
	}
	if a.Len() != 1 || len(a.Slice()) != 1 {
		t.Fatalf("Len mismatch")
	}
}

func TestBuilderPayloadAccessors(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	name := b.Strings.Intern("x")
	sp := source.Span{Start: 0, End: 1}

	v := b.Exprs.NewVariable(sp, name)
	lit := b.Exprs.NewLiteral(sp, ExprLitNumber, 1, source.NoStringID)
	asg := b.Exprs.NewAssign(sp, name, sp, lit)
	this := b.Exprs.NewThis(sp)

	if data, ok := b.Exprs.Variable(v); !ok || data.Name != name {
		t.Fatalf("Variable accessor failed")
	}
	if _, ok := b.Exprs.Variable(lit); ok {
		t.Fatalf("Variable accessor must reject literals")
	}
	if data, ok := b.Exprs.Assign(asg); !ok || data.Value != lit {
		t.Fatalf("Assign accessor failed")
	}
	if b.Exprs.Get(this).Kind != ExprThis {
		t.Fatalf("This kind mismatch")
	}
	if v == lit || lit == asg || asg == this {
		t.Fatalf("expression ids must be distinct")
	}

	file := b.NewFile(sp)
	stmt := b.Stmts.NewPrint(sp, v)
	b.PushStmt(file, stmt)
	if got := b.Files.Get(file).Stmts; len(got) != 1 || got[0] != stmt {
		t.Fatalf("PushStmt mismatch: %v", got)
	}
	if data, ok := b.Stmts.Expr(stmt); !ok || data.Expr != v {
		t.Fatalf("print payload mismatch")
	}
	if _, ok := b.Stmts.Var(stmt); ok {
		t.Fatalf("Var accessor must reject print")
	}
	if b.Name(name) != "x" || b.Name(source.NoStringID) != "" {
		t.Fatalf("Name lookup mismatch")
	}
}

func TestOpStrings(t *testing.T) {
	if ExprBinaryGreaterEq.String() != ">=" || ExprUnaryNot.String() != "!" || ExprLogicalOr.String() != "or" {
		t.Fatalf("operator spelling mismatch")
	}
	if StmtClass.String() != "Class" || ExprSuper.String() != "Super" {
		t.Fatalf("kind names mismatch")
	}
}
