package diagfmt

import (
	"fmt"
	"io"

	"lox/internal/diag"
	"lox/internal/interp"
	"lox/internal/source"
)

// Classic prints diagnostics the way jlox does:
//
//	[line 1] Error at ';': Expect expression.
//	[line 3] Error at end: Expect '}' after block.
//	[line 2] Error: Unterminated string.
func Classic(w io.Writer, bag *diag.Bag, fs *source.FileSet) {
	for _, d := range bag.Items() {
		fmt.Fprintln(w, ClassicLine(&d, fs))
	}
}

// ClassicLine renders a single diagnostic in the classic form.
func ClassicLine(d *diag.Diagnostic, fs *source.FileSet) string {
	line := fs.Line(d.Primary)
	switch d.Code.Phase() {
	case "lex", "io":
		return fmt.Sprintf("[line %d] Error: %s", line, d.Message)
	}
	lexeme := fs.Text(d.Primary)
	if lexeme == "" {
		return fmt.Sprintf("[line %d] Error at end: %s", line, d.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", line, lexeme, d.Message)
}

// ClassicRuntime prints "msg\n[line N]".
func ClassicRuntime(w io.Writer, rerr *interp.RuntimeError, fs *source.FileSet) {
	fmt.Fprintln(w, rerr.Classic(fs))
}
