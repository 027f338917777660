package diagfmt

import (
	"testing"

	"lox/internal/ast"
	"lox/internal/diag"
	"lox/internal/lexer"
	"lox/internal/parser"
	"lox/internal/resolve"
	"lox/internal/source"
)

type parsed struct {
	fs      *source.FileSet
	builder *ast.Builder
	file    ast.FileID
	bag     *diag.Bag
}

// parseSource прогоняет lexer, parser и resolver над виртуальным файлом.
func parseSource(t *testing.T, name, src string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(src))
	builder := ast.NewBuilder(ast.Hints{}, nil)
	bag := diag.NewBag(32)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: reporter})
	res := parser.ParseFile(fs, lx, builder, parser.Options{Reporter: reporter})
	if !bag.HasErrors() {
		resolve.ResolveFile(builder, res.File, resolve.Options{Reporter: reporter})
	}
	bag.Sort()
	return parsed{fs: fs, builder: builder, file: res.File, bag: bag}
}
