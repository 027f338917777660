package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"lox/internal/diagfmt"
)

// newTestRoot builds a fresh command tree so flag state does not leak
// between tests.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{Use: "lox", SilenceErrors: true, SilenceUsage: true}
	registerPersistentFlags(root)

	run := &cobra.Command{Use: runCmd.Use, Args: runCmd.Args, RunE: runCmd.RunE}
	addRunFlags(run)
	check := &cobra.Command{Use: checkCmd.Use, RunE: runCheck}
	addCheckFlags(check)
	tokenize := &cobra.Command{Use: tokenizeCmd.Use, Args: tokenizeCmd.Args, RunE: runTokenize}
	tokenize.Flags().String("format", "pretty", "")
	parse := &cobra.Command{Use: parseCmd.Use, Args: parseCmd.Args, RunE: runParse}
	parse.Flags().String("format", "tree", "")

	fixer := &cobra.Command{Use: fixCmd.Use, Args: fixCmd.Args, RunE: runFix}
	addFixFlags(fixer)

	root.AddCommand(run, check, tokenize, parse, fixer)
	return root
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newTestRoot()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--color=off"}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunPrintsOutput(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "main.lox", "var a = 1;\nprint a + 2;\nprint \"done\";\n")

	stdout, stderr, err := execute(t, "run", path)
	if err != nil {
		t.Fatalf("run: %v (stderr %q)", err, stderr)
	}
	if stdout != "3\ndone\n" {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestRunStaticErrorExitCode(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "bad.lox", "print ;\n")

	stdout, stderr, err := execute(t, "--error-format=classic", "run", path)
	if code := exitCode(err); code != exitDataErr {
		t.Fatalf("exit code = %d, want %d (err %v)", code, exitDataErr, err)
	}
	if stdout != "" {
		t.Fatalf("nothing must run, got %q", stdout)
	}
	if !strings.Contains(stderr, "[line 1] Error at ';': Expect expression.") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestRunRuntimeErrorExitCode(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "rt.lox", "print 1;\nprint \"a\" - 1;\nprint 2;\n")

	stdout, stderr, err := execute(t, "--error-format=classic", "run", path)
	if code := exitCode(err); code != exitSoftware {
		t.Fatalf("exit code = %d, want %d (err %v)", code, exitSoftware, err)
	}
	if stdout != "1\n" {
		t.Fatalf("stdout = %q", stdout)
	}
	if stderr != "Operands must be numbers.\n[line 2]\n" {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestRunPrettyRuntimeError(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "rt.lox", "print undefined;\n")

	_, stderr, err := execute(t, "run", path)
	if code := exitCode(err); code != exitSoftware {
		t.Fatalf("exit code = %d, want %d", code, exitSoftware)
	}
	if !strings.Contains(stderr, "Undefined variable 'undefined'.") || !strings.Contains(stderr, "print undefined;") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestRunMissingFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, _, err := execute(t, "run", filepath.Join(dir, "nope.lox"))
	if code := exitCode(err); code != exitNoInput {
		t.Fatalf("exit code = %d, want %d (err %v)", code, exitNoInput, err)
	}
}

func TestRunWithoutScriptOrManifest(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := execute(t, "run")
	if code := exitCode(err); code != exitUsage {
		t.Fatalf("exit code = %d, want %d (err %v)", code, exitUsage, err)
	}
}

func TestRunUsesManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, manifestName, "[package]\nname = \"demo\"\n\n[run]\nmain = \"src/main.lox\"\nmax-call-depth = 8\n")
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "src"), "main.lox", "fun f(n) { return f(n + 1); }\nprint \"start\";\nf(0);\n")
	t.Chdir(filepath.Join(dir, "src"))

	stdout, stderr, err := execute(t, "--error-format=classic", "run")
	if code := exitCode(err); code != exitSoftware {
		t.Fatalf("exit code = %d, want %d (err %v)", code, exitSoftware, err)
	}
	if stdout != "start\n" {
		t.Fatalf("stdout = %q", stdout)
	}
	if !strings.HasPrefix(stderr, "Stack overflow.\n[line 1]") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestRunExecTrace(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "main.lox", "print 1;\n")
	tracePath := filepath.Join(dir, "exec.trace")

	if _, _, err := execute(t, "run", "--exec-trace", tracePath, path); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	if !strings.HasPrefix(string(data), "[depth=0] ") {
		t.Fatalf("exec trace = %q", data)
	}
}

func TestCheckJSON(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "good.lox", "print 1;\n")
	writeFile(t, dir, "bad.lox", "{ var a = a; }\n")
	writeFile(t, dir, "notes.txt", "ignored")

	stdout, _, err := execute(t, "check", "--format=json", "--ui=off", dir)
	if code := exitCode(err); code != exitDataErr {
		t.Fatalf("exit code = %d, want %d (err %v)", code, exitDataErr, err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics: %+v", out.Count, out.Diagnostics)
	}
	d := out.Diagnostics[0]
	if d.Phase != "resolve" || !strings.HasSuffix(d.Location.File, "bad.lox") {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Message != "Can't read local variable in its own initializer." {
		t.Fatalf("message = %q", d.Message)
	}
}

func TestCheckCleanTree(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "a.lox", "print 1;\n")
	writeFile(t, dir, "b.lox", "fun f() { return 2; }\nprint f();\n")

	_, stderr, err := execute(t, "check", "--ui=off", dir)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(stderr, "checked 2 file(s): 0 with errors") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestCheckRejectsUnknownFormat(t *testing.T) {
	t.Chdir(t.TempDir())
	_, _, err := execute(t, "check", "--format=xml")
	if code := exitCode(err); code != exitUsage {
		t.Fatalf("exit code = %d, want %d", code, exitUsage)
	}
}

func TestParseSexpr(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "expr.lox", "print 1 + 2 * 3;\n")

	stdout, _, err := execute(t, "parse", "--format=sexpr", path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if stdout != "(print (+ 1 (* 2 3)))\n" {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestTokenizeJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tok.lox", "var x = \"s\";\n")

	stdout, _, err := execute(t, "tokenize", "--format=json", path)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if !json.Valid([]byte(stdout)) {
		t.Fatalf("invalid JSON: %q", stdout)
	}
}

func TestTokenizeLexError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tok.lox", "print \"open;\n")

	_, stderr, err := execute(t, "tokenize", path)
	if code := exitCode(err); code != exitDataErr {
		t.Fatalf("exit code = %d, want %d", code, exitDataErr)
	}
	if !strings.Contains(stderr, "Unterminated string.") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestFixInsertsSemicolon(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fix.lox", "print 1\n")

	stdout, _, err := execute(t, "fix", path)
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if !strings.Contains(stdout, "Applied 1 fix(es):") || !strings.Contains(stdout, "insert ';'") {
		t.Fatalf("stdout = %q", stdout)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "print 1;\n" {
		t.Fatalf("file = %q", got)
	}
}

func TestFixDryRunLeavesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fix.lox", "print (1\n")

	stdout, _, err := execute(t, "fix", "--dry-run", path)
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if !strings.Contains(stdout, "print (1)\n") {
		t.Fatalf("stdout = %q", stdout)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "print (1\n" {
		t.Fatalf("file changed: %q", got)
	}
}

func TestFixNothingToDo(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ok.lox", "print 1;\n")

	stdout, _, err := execute(t, "fix", path)
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if stdout != "No applicable fixes found.\n" {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestFixFlagConflicts(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ok.lox", "print 1;\n")

	_, _, err := execute(t, "fix", "--all", "--once", path)
	if code := exitCode(err); code != exitUsage {
		t.Fatalf("exit code = %d, want %d", code, exitUsage)
	}
	_, _, err = execute(t, "fix", "--id", "x", dir)
	if code := exitCode(err); code != exitUsage {
		t.Fatalf("exit code = %d, want %d", code, exitUsage)
	}
}
