package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB

var builtinSeeds = []string{
	"",
	"print 1 + 2 * 3;",
	"var a = \"x\"; { var a = a; }",
	"fun f(n) { if (n < 2) return n; return f(n - 1) + f(n - 2); } print f(10);",
	"fun make() { var i = 0; fun c() { i = i + 1; return i; } return c; } var c = make(); c(); print c();",
	"class A { init(x) { this.x = x; } get() { return this.x; } } class B < A { get() { return super.get() * 2; } } print B(2).get();",
	"for (var i = 0; i < 3; i = i + 1) { print i; }",
	"while (true) {",
	"print \"unterminated",
	"/* nested /* comment */ */ print nil;",
	"return 1;",
	"class C < C {}",
	"var f = fun (a, b) { return a or b; }; print f(nil, 2);",
	"print this;",
	"a.b.c = d;",
	"1 = 2;",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".lox" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
