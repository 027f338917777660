package fix

import (
	"lox/internal/diag"
	"lox/internal/source"
)

// InsertAfter creates a fix that inserts text right after span.
func InsertAfter(title string, span source.Span, text string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{Span: span.AtEnd(), NewText: text}},
	}
}

// ReplaceSpan creates a fix that replaces span with text.
func ReplaceSpan(title string, span source.Span, text string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{Span: span, NewText: text}},
	}
}

// DeleteSpan creates a fix that removes span.
func DeleteSpan(title string, span source.Span) diag.Fix {
	return ReplaceSpan(title, span, "")
}
