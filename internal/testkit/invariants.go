package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"lox/internal/ast"
	"lox/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span is non-empty and within file content bounds
// 2) every statement span (nested ones included) is non-empty and contained in its parent's span
// 3) file.Span covers the union of top-level statement spans (if any exist)
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	// 1) file span sanity
	if f.Span.End <= f.Span.Start {
		return fmt.Errorf("file span is empty: %v", f.Span)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	// 2) statement spans; 3) file covers union
	var union source.Span
	for i, id := range f.Stmts {
		sp, err := checkStmt(b, id, f.Span, sf.ID)
		if err != nil {
			return err
		}
		if i == 0 {
			union = sp
		} else {
			union = union.Cover(sp)
		}
	}
	if len(f.Stmts) > 0 && (union.Start < f.Span.Start || union.End > f.Span.End) {
		return fmt.Errorf("file span %v does not cover union of statements %v", f.Span, union)
	}
	return nil
}

func checkStmt(b *ast.Builder, id ast.StmtID, parent source.Span, file source.FileID) (source.Span, error) {
	stmt := b.Stmts.Get(id)
	if stmt == nil {
		return source.Span{}, fmt.Errorf("nil stmt for id=%d", id)
	}
	sp := stmt.Span
	if sp.End <= sp.Start {
		return sp, fmt.Errorf("empty %s span: %v", stmt.Kind, sp)
	}
	if sp.File != file {
		return sp, fmt.Errorf("%s span file mismatch: got=%d want=%d", stmt.Kind, sp.File, file)
	}
	if sp.Start < parent.Start || sp.End > parent.End {
		return sp, fmt.Errorf("%s span %v is outside parent span %v", stmt.Kind, sp, parent)
	}
	for _, child := range children(b, id) {
		if _, err := checkStmt(b, child, sp, file); err != nil {
			return sp, err
		}
	}
	return sp, nil
}

func children(b *ast.Builder, id ast.StmtID) []ast.StmtID {
	switch b.Stmts.Get(id).Kind {
	case ast.StmtBlock:
		data, _ := b.Stmts.Block(id)
		return data.Stmts
	case ast.StmtIf:
		data, _ := b.Stmts.If(id)
		if data.Else.IsValid() {
			return []ast.StmtID{data.Then, data.Else}
		}
		return []ast.StmtID{data.Then}
	case ast.StmtWhile:
		data, _ := b.Stmts.While(id)
		return []ast.StmtID{data.Body}
	case ast.StmtFun:
		data, _ := b.Stmts.Fun(id)
		return b.Fns.Get(data.Fn).Body
	case ast.StmtClass:
		data, _ := b.Stmts.Class(id)
		var out []ast.StmtID
		for _, m := range data.Methods {
			out = append(out, b.Fns.Get(m).Body...)
		}
		return out
	}
	return nil
}
