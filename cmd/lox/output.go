package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lox/internal/diag"
	"lox/internal/diagfmt"
	"lox/internal/interp"
	"lox/internal/source"
)

type errorStyle string

const (
	errorStylePretty  errorStyle = "pretty"
	errorStyleClassic errorStyle = "classic"
)

func readErrorStyle(cmd *cobra.Command) (errorStyle, error) {
	value, err := cmd.Root().PersistentFlags().GetString("error-format")
	if err != nil {
		return "", fmt.Errorf("failed to get error-format flag: %w", err)
	}
	switch errorStyle(strings.ToLower(strings.TrimSpace(value))) {
	case errorStylePretty:
		return errorStylePretty, nil
	case errorStyleClassic:
		return errorStyleClassic, nil
	default:
		return "", usageError("invalid --error-format value %q (expected pretty|classic)", value)
	}
}

// reporter печатает ошибки run и repl в выбранном стиле.
type reporter struct {
	out   io.Writer
	style errorStyle
	color bool
}

func newReporter(cmd *cobra.Command) (*reporter, error) {
	style, err := readErrorStyle(cmd)
	if err != nil {
		return nil, err
	}
	color, err := useColor(cmd, os.Stderr)
	if err != nil {
		return nil, err
	}
	return &reporter{out: cmd.ErrOrStderr(), style: style, color: color}, nil
}

func (r *reporter) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     r.color,
		Context:   1,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
	}
}

func (r *reporter) static(bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	if r.style == errorStyleClassic {
		diagfmt.Classic(r.out, bag, fs)
		return
	}
	diagfmt.Pretty(r.out, bag, fs, r.prettyOpts())
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(r.out, "... %d more diagnostic(s) not shown (--max-diagnostics)\n", n)
	}
}

func (r *reporter) runtime(rerr *interp.RuntimeError, fs *source.FileSet) {
	if r.style == errorStyleClassic {
		diagfmt.ClassicRuntime(r.out, rerr, fs)
		return
	}
	diagfmt.FormatRuntimeError(r.out, rerr, fs, r.prettyOpts())
}
