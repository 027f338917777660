package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"lox/internal/interp"
	"lox/internal/source"
)

func TestClassicStaticErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"at token", "print 1 +;", "[line 1] Error at ';': Expect expression."},
		{"at end", "print 1", "[line 1] Error at end: Expect ';' after value."},
		{"lexical", "print 1;\n\"abc", "[line 2] Error: Unterminated string."},
		{"resolver", "{\n  var a = a;\n}", "[line 2] Error at 'a': Can't read local variable in its own initializer."},
		{"top-level return", "return 1;", "[line 1] Error at 'return': Can't return from top-level code."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseSource(t, "classic.lox", tt.src)
			if p.bag.Len() == 0 {
				t.Fatal("expected diagnostics")
			}
			var buf bytes.Buffer
			Classic(&buf, p.bag, p.fs)
			first := strings.SplitN(buf.String(), "\n", 2)[0]
			if first != tt.want {
				t.Errorf("got %q, want %q", first, tt.want)
			}
		})
	}
}

func TestClassicRuntime(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("rt.lox", []byte("var a = 1;\nprint a + nil;\n"))
	rerr := &interp.RuntimeError{
		Code:    interp.ErrTypeMismatch,
		Message: "Operands must be two numbers or two strings.",
		Span:    source.Span{File: id, Start: 17, End: 24},
	}

	var buf bytes.Buffer
	ClassicRuntime(&buf, rerr, fs)
	if want := "Operands must be two numbers or two strings.\n[line 2]\n"; buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestFormatRuntimeError(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("rt.lox", []byte("fun f() {\n  return 1 / 0;\n}\nf();\n"))
	rerr := &interp.RuntimeError{
		Code:    interp.ErrDivisionByZero,
		Message: "Division by zero.",
		Span:    source.Span{File: id, Start: 19, End: 24},
		Backtrace: []interp.BacktraceFrame{
			{FuncName: "<fn f>", Span: source.Span{File: id, Start: 19, End: 24}},
			{FuncName: "<script>", Span: source.Span{File: id, Start: 28, End: 31}},
		},
	}

	var buf bytes.Buffer
	FormatRuntimeError(&buf, rerr, fs, PrettyOpts{})
	output := buf.String()
	for _, want := range []string{
		"rt.lox:2:10: runtime error RT1009: Division by zero.",
		"2 |   return 1 / 0;",
		"^~~~~",
		"backtrace:",
		"  0: <fn f> at rt.lox:2:10",
		"  1: <script> at rt.lox:4:1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}
