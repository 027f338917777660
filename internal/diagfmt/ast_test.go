package diagfmt

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatASTSexpr(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"print -123 * (45.67);", "(print (* (- 123) (group 45.67)))"},
		{"1 + 2 == 3;", "(expr (== (+ 1 2) 3))"},
		{"print \"hi\";", "(print hi)"},
		{"var x;", "(var x)"},
		{"var y = nil;", "(var y nil)"},
		{"print a and b or !c;", "(print (or (and a b) (! c)))"},
		{"a.b = c.d;", "(expr (= (. a b) (. c d)))"},
		{"x = f(1, true)(false);", "(expr (= x (call (call f 1 true) false)))"},
		{"if (a) print 1; else { print 2; }", "(if a (print 1) (block (print 2)))"},
		{"while (a) a = a - 1;", "(while a (expr (= a (- a 1))))"},
		{"fun add(a, b) { return a + b; }", "(fun add (a b) (return (+ a b)))"},
		{"var f = fun (a) { return; };", "(var f (fun (a) (return)))"},
		{"class A {} class B < A { m() { return super.m(this); } }", "(class A)\n(class B < A (method m () (return (call (super m) this))))"},
	}

	for _, tt := range tests {
		p := parseSource(t, "ast.lox", tt.src)
		if p.bag.HasErrors() {
			t.Fatalf("%q: unexpected diagnostics", tt.src)
		}
		var buf bytes.Buffer
		if err := FormatASTSexpr(&buf, p.builder, p.file); err != nil {
			t.Fatalf("FormatASTSexpr: %v", err)
		}
		if got := strings.TrimSuffix(buf.String(), "\n"); got != tt.want {
			t.Errorf("%q:\n got %s\nwant %s", tt.src, got, tt.want)
		}
	}
}

func TestFormatASTTree(t *testing.T) {
	p := parseSource(t, "tree.lox", "var a = 1;\nprint -a * 2;\n")
	var buf bytes.Buffer
	if err := FormatASTTree(&buf, p.builder, p.file, p.fs); err != nil {
		t.Fatalf("FormatASTTree: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if !strings.HasPrefix(lines[0], "tree.lox (span: ") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	want := []string{
		"├─ Stmt[0]: Var (span: 1:1-1:11)",
		"│  ├─ Name: a",
		"│  └─ Init: Literal 1",
		"└─ Stmt[1]: Print (span: 2:1-2:14)",
		"   └─ Binary *",
		"      ├─ Unary -",
		"      │  └─ Variable a",
		"      └─ Literal 2",
	}
	if got := lines[1:]; strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("tree mismatch:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}
