package driver

import (
	"fortio.org/safecast"

	"lox/internal/ast"
	"lox/internal/diag"
	"lox/internal/lexer"
	"lox/internal/parser"
	"lox/internal/source"
)

type ParseResult struct {
	FileSet    *source.FileSet
	File       *source.File
	Builder    *ast.Builder
	FileID     ast.FileID
	Bag        *diag.Bag
	Incomplete bool
}

func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res, err := parseInto(fs, file, builder, bag, maxDiagnostics)
	if err != nil {
		return nil, err
	}

	return &ParseResult{
		FileSet:    fs,
		File:       file,
		Builder:    builder,
		FileID:     res.File,
		Bag:        bag,
		Incomplete: res.Incomplete,
	}, nil
}

// parseInto lexes and parses file into builder, reporting into bag.
func parseInto(fs *source.FileSet, file *source.File, builder *ast.Builder, bag *diag.Bag, maxDiagnostics int) (parser.Result, error) {
	var maxErrors uint
	if maxDiagnostics > 0 {
		var err error
		maxErrors, err = safecast.Conv[uint](maxDiagnostics)
		if err != nil {
			return parser.Result{}, err
		}
	}

	// лексер и парсер пишут в один bag, восстановление после ошибки может повторить диагностику
	reporter := diag.Dedup(diag.BagReporter{Bag: bag})
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	opts := parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	}
	return parser.ParseFile(fs, lx, builder, opts), nil
}
