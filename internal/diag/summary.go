package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"lox/internal/source"
)

// summaryLine is one "sev CODE path:line:col message" entry.
type summaryLine struct {
	sev  string
	code string
	path string
	pos  source.LineCol
	msg  string
}

// Summary renders items one per line, sorted by location, for test
// expectations and assertion messages. Notes become "note" lines under the
// code of their diagnostic; spans in unknown files are dropped.
func Summary(items []Diagnostic, fs *source.FileSet, withNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []summaryLine
	add := func(sev string, code Code, sp source.Span, msg string) {
		file := fs.Get(sp.File)
		if file == nil {
			return
		}
		start, _ := fs.Resolve(sp)
		path := filepath.ToSlash(file.FormatPath("relative", fs.BaseDir()))
		lines = append(lines, summaryLine{
			sev:  sev,
			code: code.ID(),
			path: strings.TrimPrefix(path, "./"),
			pos:  start,
			msg:  strings.Join(strings.Fields(msg), " "),
		})
	}
	for i := range items {
		d := &items[i]
		add(strings.ToLower(d.Severity.String()), d.Code, d.Primary, d.Message)
		if withNotes {
			for _, n := range d.Notes {
				add("note", d.Code, n.Span, n.Msg)
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b summaryLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.pos.Line, b.pos.Line),
			cmp.Compare(a.pos.Col, b.pos.Col),
			cmp.Compare(a.sev, b.sev),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.msg, b.msg),
		)
	})

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.pos.Line, l.pos.Col, l.msg)
	}
	return strings.Join(out, "\n")
}

// SummaryOf is Summary over the contents of bag.
func SummaryOf(bag *Bag, fs *source.FileSet, withNotes bool) string {
	if bag == nil {
		return ""
	}
	return Summary(bag.Items(), fs, withNotes)
}
