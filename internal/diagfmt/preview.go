package diagfmt

import (
	"bytes"
	"fmt"
	"strings"

	"lox/internal/diag"
	"lox/internal/source"
)

// fixEditPreview holds the lines touched by one edit before and after it is applied.
type fixEditPreview struct {
	before []string
	after  []string
}

func buildFixEditPreview(fs *source.FileSet, edit diag.FixEdit) (fixEditPreview, error) {
	file := fs.Get(edit.Span.File)
	if file == nil {
		return fixEditPreview{}, fmt.Errorf("file %d not found", edit.Span.File)
	}
	content := file.Content
	start, end := int(edit.Span.Start), int(edit.Span.End)
	if end < start || end > len(content) {
		return fixEditPreview{}, fmt.Errorf("edit span %s out of range", edit.Span)
	}

	// целые строки вокруг правки, без завершающего '\n'
	lo := bytes.LastIndexByte(content[:start], '\n') + 1
	hi := len(content)
	if i := bytes.IndexByte(content[end:], '\n'); i >= 0 {
		hi = end + i
	}

	after := string(content[lo:start]) + edit.NewText + string(content[end:hi])
	return fixEditPreview{
		before: previewLines(string(content[lo:hi])),
		after:  previewLines(after),
	}, nil
}

func previewLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
