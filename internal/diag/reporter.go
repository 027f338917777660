package diag

import "lox/internal/source"

// Reporter принимает диагностики от фаз (лексер, парсер, резолвер).
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter складывает диагностики в Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// ReportFunc adapts a plain function to Reporter.
type ReportFunc func(d Diagnostic)

func (f ReportFunc) Report(d Diagnostic) { f(d) }

type dedupKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

type dedup struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// Dedup wraps next and drops a diagnostic identical (code, severity,
// primary span, message) to one already reported. Lexer and parser share
// one reporter, and error recovery can hit the same bad token twice.
func Dedup(next Reporter) Reporter {
	return &dedup{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *dedup) Report(d Diagnostic) {
	key := dedupKey{code: d.Code, sev: d.Severity, span: d.Primary, msg: d.Message}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(d)
	}
}

// BagOf returns the Bag a reporter ultimately writes to, looking through Dedup.
func BagOf(r Reporter) *Bag {
	switch rr := r.(type) {
	case BagReporter:
		return rr.Bag
	case *BagReporter:
		return rr.Bag
	case *dedup:
		return BagOf(rr.next)
	}
	return nil
}

// ReportBuilder собирает заметки и фиксы перед Emit. Все методы nil-safe,
// чтобы парсер мог не репортить после лимита ошибок.
type ReportBuilder struct {
	to   Reporter
	d    Diagnostic
	sent bool
}

func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: New(sev, code, primary, msg)}
}

func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, msg)
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithNote(sp, msg)
	}
	return b
}

func (b *ReportBuilder) WithFix(title string, edits ...FixEdit) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithFix(title, edits...)
	}
	return b
}

// Emit reports the diagnostic; later calls are no-ops.
func (b *ReportBuilder) Emit() {
	if b == nil || b.sent {
		return
	}
	b.sent = true
	if b.to != nil {
		b.to.Report(b.d)
	}
}

// Diagnostic returns what Emit would report.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.d
}
