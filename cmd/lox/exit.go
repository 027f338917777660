package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"
)

// Коды выхода из sysexits.h.
const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 64 // EX_USAGE
	exitDataErr  = 65 // EX_DATAERR: lex, parse or resolve errors
	exitNoInput  = 66 // EX_NOINPUT
	exitSoftware = 70 // EX_SOFTWARE: runtime error
	exitIOErr    = 74 // EX_IOERR
)

// exitError carries a process status out of a command. A nil err means the
// problem was already reported (diagnostics, runtime error) and main stays quiet.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func withExit(code int, err error) error {
	return &exitError{code: code, err: err}
}

func usageError(format string, args ...any) error {
	return withExit(exitUsage, fmt.Errorf(format, args...))
}

// usageArgs makes positional-argument errors exit with EX_USAGE.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError("%v\n%s", err, cmd.UsageString())
		}
		return nil
	}
}

// loadError classifies a failure to read a script.
func loadError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return withExit(exitNoInput, fmt.Errorf("cannot open %s: %w", path, err))
	}
	return withExit(exitIOErr, fmt.Errorf("failed to read %s: %w", path, err))
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitFailure
}

func reportError(w io.Writer, err error) {
	var ee *exitError
	if errors.As(err, &ee) && ee.err == nil {
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
