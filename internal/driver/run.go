package driver

import (
	"context"
	"errors"
	"io"

	"lox/internal/interp"
)

// RunOptions configures Run.
type RunOptions struct {
	CheckOptions
	Stdout       io.Writer
	MaxCallDepth int
	Runtime      interp.Runtime
	// ExecTrace receives statement and call traces when non-nil.
	ExecTrace io.Writer
}

// RunResult describes one program run. RuntimeErr is set when execution
// started and stopped on a runtime error; static errors are in Check.Bag.
type RunResult struct {
	Check      *CheckResult
	RuntimeErr *interp.RuntimeError
	Executed   bool
}

// Run checks path and executes it when no static error was found.
// The returned error is reserved for I/O failures and cancellation.
func Run(ctx context.Context, path string, opts RunOptions) (*RunResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	check, err := Check(ctx, path, opts.CheckOptions)
	if err != nil {
		return nil, err
	}
	res := &RunResult{Check: check}
	if !check.OK() {
		return res, nil
	}

	ph := newPhases(ctx, false, opts.Observer)
	ph.timer = check.Timer

	var tracer *interp.Tracer
	if opts.ExecTrace != nil {
		tracer = interp.NewTracer(opts.ExecTrace, check.FileSet)
	}
	in := interp.New(check.Builder, interp.Options{
		Stdout:       opts.Stdout,
		MaxCallDepth: opts.MaxCallDepth,
		Runtime:      opts.Runtime,
		Tracer:       tracer,
		Files:        check.FileSet,
	})

	endExec := ph.begin("exec")
	err = in.Execute(ctx, check.FileID, check.Locals)
	res.Executed = true
	var rtErr *interp.RuntimeError
	switch {
	case err == nil:
		endExec("")
	case errors.As(err, &rtErr):
		endExec(rtErr.Code.String())
		res.RuntimeErr = rtErr
	default:
		endExec("aborted")
		return res, err
	}
	return res, nil
}
