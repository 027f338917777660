package resolve

import (
	"lox/internal/ast"
	"lox/internal/diag"
	"lox/internal/source"
)

// Options controls a resolve pass for a single AST file.
type Options struct {
	Reporter diag.Reporter
	// Locals receives the hop counts; a fresh map is created when nil.
	Locals Locals
}

// Result captures resolve artefacts for one file.
type Result struct {
	File   ast.FileID
	Locals Locals
	// Errors counts reported static errors; the file must not run when > 0.
	Errors int
}

func (r Result) OK() bool { return r.Errors == 0 }

// ResolveFile walks the AST file, fills hop counts and reports static errors.
// Resolving the same file twice yields the same Locals.
func ResolveFile(builder *ast.Builder, fileID ast.FileID, opts Options) Result {
	locals := opts.Locals
	if locals == nil {
		locals = make(Locals)
	}
	result := Result{File: fileID, Locals: locals}

	file := builder.Files.Get(fileID)
	if file == nil {
		return result
	}

	fr := fileResolver{
		builder:  builder,
		reporter: opts.Reporter,
		locals:   locals,
		names:    wellKnown(builder.Strings),
	}
	fr.resolveStmts(file.Stmts)
	result.Errors = fr.errors
	return result
}

type wellKnownNames struct {
	this, super, init source.StringID
}

func wellKnown(in *source.Interner) wellKnownNames {
	return wellKnownNames{
		this:  in.Intern("this"),
		super: in.Intern("super"),
		init:  in.Intern("init"),
	}
}
