package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// TestRunGolden runs every testdata/golden/*.lox script and compares stdout
// with .out, stderr with .err and the exit status with .code (0 when absent).
func TestRunGolden(t *testing.T) {
	goldenDir, err := filepath.Abs(filepath.Join("..", "..", "testdata", "golden"))
	if err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(goldenDir)
	if err != nil {
		t.Fatalf("read golden dir: %v", err)
	}
	t.Chdir(t.TempDir())

	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".lox") {
			continue
		}
		name := strings.TrimSuffix(ent.Name(), ".lox")
		t.Run(name, func(t *testing.T) {
			base := filepath.Join(goldenDir, name)
			wantOut := readGolden(t, base+".out")
			wantErr := readGolden(t, base+".err")
			wantCode := 0
			if b, err := os.ReadFile(base + ".code"); err == nil {
				n, err := strconv.Atoi(strings.TrimSpace(string(b)))
				if err != nil {
					t.Fatalf("parse %s.code: %v", name, err)
				}
				wantCode = n
			}

			stdout, stderr, err := execute(t, "--error-format=classic", "run", base+".lox")
			if code := exitCode(err); code != wantCode {
				t.Fatalf("exit code: want %d, got %d (%v)\nstderr:\n%s", wantCode, code, err, stderr)
			}
			if stdout != wantOut {
				t.Fatalf("stdout mismatch:\nwant:\n%s\ngot:\n%s", wantOut, stdout)
			}
			if stderr != wantErr {
				t.Fatalf("stderr mismatch:\nwant:\n%s\ngot:\n%s", wantErr, stderr)
			}
		})
	}
}

func readGolden(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ""
	}
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}
