package driver

import (
	"context"
	"fmt"
	"time"

	"lox/internal/ast"
	"lox/internal/diag"
	"lox/internal/observ"
	"lox/internal/resolve"
	"lox/internal/source"
	"lox/internal/trace"
)

// CheckOptions содержит опции статической проверки файла
type CheckOptions struct {
	MaxDiagnostics int
	EnableTimings  bool
	Observer       PhaseObserver
}

// CheckResult holds everything needed to run a checked file.
type CheckResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
	// Locals is nil when the file did not get past parsing.
	Locals resolve.Locals
	Timer  *observ.Timer
}

// OK reports whether the file may be executed.
func (r *CheckResult) OK() bool {
	return r != nil && r.Bag != nil && !r.Bag.HasErrors() && r.Locals != nil
}

// Check loads, parses and resolves a single file.
func Check(ctx context.Context, path string, opts CheckOptions) (*CheckResult, error) {
	ph := newPhases(ctx, opts.EnableTimings, opts.Observer)

	endLoad := ph.begin("load")
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	endLoad("")
	if err != nil {
		return nil, err
	}

	res := &CheckResult{
		FileSet: fs,
		File:    fs.Get(fileID),
		Builder: ast.NewBuilder(ast.Hints{}, nil),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		Timer:   ph.timer,
	}
	out, err := checkFile(ph, fs, res.File, res.Builder, res.Bag, opts.MaxDiagnostics)
	if err != nil {
		return nil, err
	}
	res.FileID = out.file
	res.Locals = out.locals
	return res, nil
}

type checkOutput struct {
	file       ast.FileID
	locals     resolve.Locals
	incomplete bool
}

// checkFile parses file into builder and resolves it unless parsing failed.
func checkFile(ph *phases, fs *source.FileSet, file *source.File, builder *ast.Builder, bag *diag.Bag, maxDiagnostics int) (checkOutput, error) {
	endParse := ph.begin("parse")
	parsed, err := parseInto(fs, file, builder, bag, maxDiagnostics)
	if err != nil {
		endParse("")
		return checkOutput{}, err
	}
	out := checkOutput{file: parsed.File, incomplete: parsed.Incomplete || hasUnterminated(bag)}
	stmts := 0
	if f := builder.Files.Get(parsed.File); f != nil {
		stmts = len(f.Stmts)
	}
	endParse(fmt.Sprintf("stmts=%d diags=%d", stmts, bag.Len()))

	if bag.HasErrors() {
		return out, nil
	}

	endResolve := ph.begin("resolve")
	resolved := resolve.ResolveFile(builder, parsed.File, resolve.Options{Reporter: diag.BagReporter{Bag: bag}})
	endResolve(fmt.Sprintf("locals=%d errors=%d", len(resolved.Locals), resolved.Errors))
	if resolved.OK() {
		out.locals = resolved.Locals
	}
	return out, nil
}

// hasUnterminated reports lexer errors that more input could still fix.
func hasUnterminated(bag *diag.Bag) bool {
	for _, d := range bag.Items() {
		if d.Code == diag.LexUnterminatedString || d.Code == diag.LexUnterminatedBlockComment {
			return true
		}
	}
	return false
}

// PhaseEvent is a load/parse/resolve/exec boundary; Elapsed is set on the end.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

type PhaseStatus uint8

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseObserver gets every PhaseEvent of Check and Run, on the calling goroutine.
type PhaseObserver func(PhaseEvent)

// phases fans one phase boundary out to the timer, the observer and the
// context tracer.
type phases struct {
	ctx      context.Context
	timer    *observ.Timer
	observer PhaseObserver
}

func newPhases(ctx context.Context, timings bool, observer PhaseObserver) *phases {
	if ctx == nil {
		ctx = context.Background()
	}
	p := &phases{ctx: ctx, observer: observer}
	if timings {
		p.timer = observ.NewTimer()
	}
	return p
}

func (p *phases) begin(name string) func(note string) {
	idx := -1
	if p.timer != nil {
		idx = p.timer.Begin(name)
	}
	if p.observer != nil {
		p.observer(PhaseEvent{Name: name, Status: PhaseStart})
	}
	_, span := trace.Start(p.ctx, trace.ScopePass, name)
	start := time.Now()
	return func(note string) {
		if p.timer != nil {
			p.timer.End(idx, note)
		}
		span.End(note)
		if p.observer != nil {
			p.observer(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: time.Since(start)})
		}
	}
}
