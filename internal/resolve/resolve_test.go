package resolve

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"testing"

	"lox/internal/ast"
	"lox/internal/diag"
	"lox/internal/lexer"
	"lox/internal/parser"
	"lox/internal/source"
)

func parseSnippet(t *testing.T, src string) (*ast.Builder, ast.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.lox", []byte(src))
	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(fs, lx, builder, parser.Options{Reporter: reporter})
	if bag.Len() != 0 {
		t.Fatalf("unexpected parse diagnostics: %d (%s)", bag.Len(), bag.Items()[0].Message)
	}
	return builder, res.File
}

func resolveSnippet(t *testing.T, src string) (*ast.Builder, Result, *diag.Bag) {
	t.Helper()
	builder, fileID := parseSnippet(t, src)
	bag := diag.NewBag(100)
	res := ResolveFile(builder, fileID, Options{Reporter: diag.BagReporter{Bag: bag}})
	return builder, res, bag
}

func messages(bag *diag.Bag) string {
	out := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Message)
	}
	return strings.Join(out, " | ")
}

// depthsByName собирает "имя@hops" для всех разрешённых Variable/Assign.
func depthsByName(b *ast.Builder, locals Locals) map[string][]int {
	out := make(map[string][]int)
	for id := range locals {
		var name string
		switch e := b.Exprs.Get(id); e.Kind {
		case ast.ExprVariable:
			v, _ := b.Exprs.Variable(id)
			name = b.Name(v.Name)
		case ast.ExprAssign:
			a, _ := b.Exprs.Assign(id)
			name = "=" + b.Name(a.Name)
		case ast.ExprThis:
			name = "this"
		case ast.ExprSuper:
			name = "super"
		}
		out[name] = append(out[name], locals[id])
	}
	return out
}

func TestGlobalsAreNotRecorded(t *testing.T) {
	_, res, bag := resolveSnippet(t, "var a = 1; print a; a = 2;")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", messages(bag))
	}
	if len(res.Locals) != 0 {
		t.Fatalf("globals must not be in Locals, got %v", res.Locals)
	}
}

func TestHopCounts(t *testing.T) {
	src := `
var g = 0;
fun outer(p) {
  var a = p;
  {
    var b = a;
    fun inner() { return a + b + p + g; }
    b = 2;
  }
}
`
	b, res, bag := resolveSnippet(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", messages(bag))
	}
	got := depthsByName(b, res.Locals)
	for _, list := range got {
		// порядок map не детерминирован
		slices.Sort(list)
	}
	want := map[string][]int{
		"p":  {0, 2}, // var a = p (0); inner: p через inner->block->outer (2)
		"a":  {1, 2}, // var b = a (1); inner: a (2)
		"b":  {1},    // inner: b через inner->block (1)
		"=b": {0},
	}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("depths:\n got %v\nwant %v", got, want)
	}
}

func TestShadowingResolvesToGlobal(t *testing.T) {
	src := `
var a = "global";
{
  fun showA() { print a; }
  showA();
  var a = "block";
  showA();
}
`
	b, res, bag := resolveSnippet(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", messages(bag))
	}
	got := depthsByName(b, res.Locals)
	if _, ok := got["a"]; ok {
		t.Fatalf("a inside showA must resolve to the global, got %v", got["a"])
	}
	if fmt.Sprint(got["showA"]) != "[0 0]" {
		t.Fatalf("showA calls must be local at depth 0, got %v", got["showA"])
	}
}

func TestThisAndSuperDepths(t *testing.T) {
	src := `
class A { m() { return 1; } }
class B < A {
  m() { return super.m() + this.x; }
}
`
	b, res, bag := resolveSnippet(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", messages(bag))
	}
	got := depthsByName(b, res.Locals)
	if fmt.Sprint(got["this"]) != "[1]" || fmt.Sprint(got["super"]) != "[2]" {
		t.Fatalf("this/super depths: %v", got)
	}
}

func TestStaticErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
		msg  string
	}{
		{"{ var a = a; }", diag.SemaSelfReferentialInitializer, "Can't read local variable in its own initializer."},
		{"return 1;", diag.SemaReturnOutsideFunction, "Can't return from top-level code."},
		{"class A { init() { return 1; } }", diag.SemaReturnValueFromInitializer, "Can't return a value from an initializer."},
		{"print this;", diag.SemaThisOutsideClass, "Can't use 'this' outside of a class."},
		{"fun f() { return this; }", diag.SemaThisOutsideClass, "Can't use 'this' outside of a class."},
		{"print super.x;", diag.SemaSuperOutsideSubclass, "Can't use 'super' outside of a class."},
		{"class A { m() { super.m(); } }", diag.SemaSuperOutsideSubclass, "Can't use 'super' in a class with no superclass."},
		{"fun f() { var x; var x; }", diag.SemaDuplicateLocal, "Already a variable with this name in this scope."},
		{"fun f(a, a) {}", diag.SemaDuplicateLocal, "Already a variable with this name in this scope."},
		{"class A < A {}", diag.SemaClassInheritsItself, "A class can't inherit from itself."},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, res, bag := resolveSnippet(t, tt.src)
			if bag.Len() != 1 || res.OK() {
				t.Fatalf("expected exactly one error, got %q", messages(bag))
			}
			d := bag.Items()[0]
			if d.Code != tt.code || d.Message != tt.msg {
				t.Fatalf("got [%s] %q, want [%s] %q", d.Code, d.Message, tt.code, tt.msg)
			}
		})
	}
}

func TestGlobalSelfReferenceAllowed(t *testing.T) {
	// на глобальном уровне `var a = a;` читает глобал динамически
	_, res, bag := resolveSnippet(t, "var a = a;")
	if bag.Len() != 0 || !res.OK() {
		t.Fatalf("global self reference must pass the resolver: %s", messages(bag))
	}
}

func TestBareReturnInInitializerAllowed(t *testing.T) {
	_, res, bag := resolveSnippet(t, "class A { init() { return; } }")
	if !res.OK() {
		t.Fatalf("bare return in init must be allowed: %s", messages(bag))
	}
}

func TestAllErrorsCollected(t *testing.T) {
	_, res, bag := resolveSnippet(t, "return; print this; { var a = a; }")
	if res.Errors != 3 || bag.Len() != 3 {
		t.Fatalf("expected 3 errors, got %d: %s", res.Errors, messages(bag))
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	src := `
fun makeCounter() { var i = 0; fun count() { i = i + 1; print i; } return count; }
var counter = makeCounter();
counter();
`
	b, fileID := parseSnippet(t, src)
	first := ResolveFile(b, fileID, Options{})
	second := ResolveFile(b, fileID, Options{})
	if !maps.Equal(first.Locals, second.Locals) {
		t.Fatalf("resolve must be deterministic:\n%v\n%v", first.Locals, second.Locals)
	}
	if len(first.Locals) == 0 {
		t.Fatalf("expected local entries")
	}
}

func TestLocalsMergeIntoProvidedMap(t *testing.T) {
	b, fileID := parseSnippet(t, "{ var x = 1; print x; }")
	shared := Locals{ast.ExprID(9999): 7}
	res := ResolveFile(b, fileID, Options{Locals: shared})
	if len(shared) != 2 {
		t.Fatalf("expected existing entry plus one new, got %v", shared)
	}
	if hops, ok := res.Locals.Depth(ast.ExprID(9999)); !ok || hops != 7 {
		t.Fatalf("existing entry lost")
	}
}
