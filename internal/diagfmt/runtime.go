package diagfmt

import (
	"fmt"
	"io"

	"lox/internal/interp"
	"lox/internal/source"
)

// FormatRuntimeError печатает ошибку выполнения в стиле Pretty:
// заголовок, строка исходника с подчёркиванием и backtrace.
func FormatRuntimeError(w io.Writer, rerr *interp.RuntimeError, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.bold.Sprint(formatLocation(fs, rerr.Span, opts.PathMode)),
		p.err.Sprint("runtime error"),
		p.err.Sprint(rerr.Code.String()),
		rerr.Message,
	)
	if file := fs.Get(rerr.Span.File); file != nil {
		start, _ := fs.Resolve(rerr.Span)
		writeSnippet(w, file, rerr.Span, start, opts, p)
	}
	if len(rerr.Backtrace) == 0 {
		return
	}
	fmt.Fprintln(w, p.note.Sprint("backtrace:"))
	for i, frame := range rerr.Backtrace {
		fmt.Fprintf(w, "  %d: %s at %s\n", i, frame.FuncName, formatLocation(fs, frame.Span, opts.PathMode))
	}
}
