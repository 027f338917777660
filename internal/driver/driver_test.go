package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"lox/internal/diag"
	"lox/internal/interp"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func codes(bag *diag.Bag) []string {
	out := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code.ID())
	}
	return out
}

func TestTokenizeCollectsEOF(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.lox", "var a = 1;")
	res, err := Tokenize(path, 10)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if n := len(res.Tokens); n != 6 {
		t.Fatalf("expected 6 tokens including EOF, got %d", n)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codes(res.Bag))
	}
}

func TestCheckReportsResolveErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.lox", "{\n  var a = a;\n}\nreturn 1;\n")
	res, err := Check(context.Background(), path, CheckOptions{MaxDiagnostics: 10})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.OK() {
		t.Fatal("expected static errors")
	}
	if got := strings.Join(codes(res.Bag), ","); got != "SEM3001,SEM3002" {
		t.Fatalf("codes = %s", got)
	}
}

func TestCheckSkipsResolveAfterSyntaxErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.lox", "print ;\nreturn 1;\n")
	res, err := Check(context.Background(), path, CheckOptions{MaxDiagnostics: 10})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if got := strings.Join(codes(res.Bag), ","); got != "SYN2004" {
		t.Fatalf("codes = %s", got)
	}
	if res.Locals != nil {
		t.Fatal("locals must stay nil when parsing failed")
	}
}

func TestCheckMissingFile(t *testing.T) {
	if _, err := Check(context.Background(), filepath.Join(t.TempDir(), "nope.lox"), CheckOptions{}); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestCheckTimingsAndObserver(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ok.lox", "print 1;")
	var seen []string
	res, err := Check(context.Background(), path, CheckOptions{
		EnableTimings: true,
		Observer: func(ev PhaseEvent) {
			if ev.Status == PhaseEnd {
				seen = append(seen, ev.Name)
			}
		},
	})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if got := strings.Join(seen, ","); got != "load,parse,resolve" {
		t.Fatalf("phases = %s", got)
	}
	if n := len(res.Timer.Report().Phases); n != 3 {
		t.Fatalf("timer phases = %d", n)
	}
}

func TestRunPrintsAndReportsRuntimeError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.lox", "print \"hi\";\nprint 1 + nil;\nprint \"unreached\";\n")
	var out bytes.Buffer
	res, err := Run(context.Background(), path, RunOptions{Stdout: &out})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "hi\n" {
		t.Fatalf("stdout = %q", out.String())
	}
	if res.RuntimeErr == nil || res.RuntimeErr.Code != interp.ErrTypeMismatch {
		t.Fatalf("expected type mismatch, got %v", res.RuntimeErr)
	}
	if line := res.RuntimeErr.Line(res.Check.FileSet); line != 2 {
		t.Fatalf("line = %d", line)
	}
}

func TestRunDoesNotExecuteOnStaticErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.lox", "print \"side effect\";\nvar a = 1;\n{ var b = b; }\n")
	var out bytes.Buffer
	res, err := Run(context.Background(), path, RunOptions{Stdout: &out})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Executed || out.Len() != 0 {
		t.Fatalf("program must not run: executed=%v out=%q", res.Executed, out.String())
	}
}

func TestRunExecTrace(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.lox", "print 1;")
	var out, tr bytes.Buffer
	if _, err := Run(context.Background(), path, RunOptions{Stdout: &out, ExecTrace: &tr}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasPrefix(tr.String(), "[depth=0] Print @ ") {
		t.Fatalf("trace = %q", tr.String())
	}
}

func TestSessionPersistsGlobals(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(SessionOptions{Stdout: &out, Runtime: interp.NewTestRuntime(time.Unix(0, 0), 0)})
	ctx := context.Background()

	mustEval := func(src string) EvalResult {
		t.Helper()
		res, err := s.Eval(ctx, src)
		if err != nil {
			t.Fatalf("Eval(%q): %v", src, err)
		}
		return res
	}

	if res := mustEval("var greeting = \"hello\";"); !res.OK() {
		t.Fatalf("unexpected failure: %+v", res)
	}
	mustEval("fun greet(name) { return greeting + \" \" + name; }")
	res := mustEval("print missing;")
	if res.RuntimeErr == nil || res.RuntimeErr.Code != interp.ErrUndefinedVariable {
		t.Fatalf("expected undefined variable, got %+v", res)
	}
	res = mustEval("{ var x = x; }")
	if !res.Bag.HasErrors() || res.Incomplete {
		t.Fatalf("expected a static error, got %+v", res)
	}
	mustEval("print greet(\"lox\");")
	if out.String() != "hello lox\n" {
		t.Fatalf("stdout = %q", out.String())
	}
}

func TestSessionDetectsIncompleteInput(t *testing.T) {
	s := NewSession(SessionOptions{})
	tests := []struct {
		src        string
		incomplete bool
	}{
		{"fun f() {", true},
		{"print \"abc", true},
		{"/* open comment", true},
		{"print (1 +", true},
		{"print 1 +;", false},
		{"var = 1;", false},
		{"print 1;", false},
	}
	for _, tt := range tests {
		res, err := s.Eval(context.Background(), tt.src)
		if err != nil {
			t.Fatalf("Eval(%q): %v", tt.src, err)
		}
		if res.Incomplete != tt.incomplete {
			t.Errorf("Eval(%q).Incomplete = %v, want %v", tt.src, res.Incomplete, tt.incomplete)
		}
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) final() map[string]Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Status)
	for _, ev := range s.events {
		out[filepath.Base(ev.File)] = ev.Status
	}
	return out
}

func TestCheckFilesParallelWithCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.lox", "print 1;")
	writeFile(t, dir, "nested/b.lox", "fun f() { return this; }")
	writeFile(t, dir, "c.lox", "var x = ;")
	writeFile(t, dir, "notes.txt", "ignored")

	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}

	run := func() ([]CheckFileResult, *recordingSink) {
		t.Helper()
		sink := &recordingSink{}
		_, results, err := CheckFiles(context.Background(), []string{dir}, CheckFilesOptions{
			MaxDiagnostics: 10,
			Jobs:           2,
			Cache:          cache,
			Progress:       sink,
		})
		if err != nil {
			t.Fatalf("CheckFiles: %v", err)
		}
		return results, sink
	}

	first, sink := run()
	if len(first) != 3 {
		t.Fatalf("expected 3 files, got %d", len(first))
	}
	want := map[string]string{"a.lox": "", "b.lox": "SEM3004", "c.lox": "SYN2004"}
	for _, r := range first {
		if r.Cached {
			t.Fatalf("%s unexpectedly cached", r.Path)
		}
		if got := strings.Join(codes(r.Bag), ","); got != want[filepath.Base(r.Path)] {
			t.Errorf("%s: codes = %q, want %q", r.Path, got, want[filepath.Base(r.Path)])
		}
	}
	if st := sink.final(); st["a.lox"] != StatusDone || st["b.lox"] != StatusError {
		t.Fatalf("final statuses = %v", st)
	}

	second, sink := run()
	for i, r := range second {
		if !r.Cached {
			t.Fatalf("%s not served from cache", r.Path)
		}
		if got, prev := codes(r.Bag), codes(first[i].Bag); strings.Join(got, ",") != strings.Join(prev, ",") {
			t.Fatalf("%s: cached codes %v differ from %v", r.Path, got, prev)
		}
	}
	if st := sink.final(); st["c.lox"] != StatusCached {
		t.Fatalf("final statuses = %v", st)
	}
}

func TestCheckFilesReportsLoadErrors(t *testing.T) {
	if _, _, err := CheckFiles(context.Background(), []string{filepath.Join(t.TempDir(), "missing")}, CheckFilesOptions{}); err == nil {
		t.Fatal("expected error for a missing root")
	}
}
