package ast

import (
	"lox/internal/source"
)

type Hints struct{ Files, Stmts, Exprs, Fns uint }

// Builder owns every arena of one session. A REPL keeps a single Builder for
// its whole life so that closures created by earlier lines stay valid.
type Builder struct {
	Files   *Files
	Stmts   *Stmts
	Exprs   *Exprs
	Fns     *Fns
	Strings *source.Interner
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 4
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Fns == 0 {
		hints.Fns = 1 << 5
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Files:   NewFiles(hints.Files),
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
		Fns:     NewFns(hints.Fns),
		Strings: strings,
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushStmt(file FileID, stmt StmtID) {
	f := b.Files.Get(file)
	f.Stmts = append(f.Stmts, stmt)
}

// Name returns the spelling of an interned identifier, "" for NoStringID.
func (b *Builder) Name(id source.StringID) string {
	if id == source.NoStringID {
		return ""
	}
	return b.Strings.MustLookup(id)
}
