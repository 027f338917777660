package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"lox/internal/driver"
	"lox/internal/version"
)

const (
	promptMain = "> "
	promptCont = "... "
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Lox prompt",
	Long: `repl reads Lox statements line by line and runs them against one
global scope. Unfinished input continues on the next line; an empty line
gives up on it. Exit with Ctrl-D.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl(cmd)
	},
}

// lineReader is the part of *liner.State the loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

type repl struct {
	session *driver.Session
	rep     *reporter
	in      lineReader
	out     io.Writer
	// remember is called with every finished input.
	remember func(src string)
}

func runRepl(cmd *cobra.Command) error {
	rep, err := newReporter(cmd)
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return withExit(exitUsage, err)
	}
	session, closeSession, err := newReplSession(cmd, manifest, maxDiagnostics)
	if err != nil {
		return err
	}
	defer closeSession()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if err := os.MkdirAll(filepath.Dir(histPath), 0o755); err != nil {
				return
			}
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "lox %s (Ctrl-D to exit)\n", version.Version)
	}

	r := &repl{
		session: session,
		rep:     rep,
		in:      ln,
		out:     cmd.OutOrStdout(),
		remember: func(src string) {
			ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		},
	}
	return r.loop(cmd.Context())
}

// newReplSession builds the session with the same call depth and exec trace
// settings `lox run` would use. The returned func closes the trace file.
func newReplSession(cmd *cobra.Command, manifest *projectManifest, maxDiagnostics int) (*driver.Session, func(), error) {
	settings, err := readExecSettings(cmd, manifest)
	if err != nil {
		return nil, nil, err
	}
	execTrace, closeTrace, err := openExecTrace(settings.execTrace, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, withExit(exitIOErr, err)
	}
	session := driver.NewSession(driver.SessionOptions{
		Stdout:         cmd.OutOrStdout(),
		MaxDiagnostics: maxDiagnostics,
		MaxCallDepth:   settings.maxCallDepth,
		ExecTrace:      execTrace,
	})
	return session, closeTrace, nil
}

// historyPath returns where the prompt history lives, "" when unknown.
func historyPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "lox", "history")
}

func (r *repl) loop(ctx context.Context) error {
	var buf strings.Builder
	for {
		prompt := promptMain
		if buf.Len() > 0 {
			prompt = promptCont
		}
		line, err := r.in.Prompt(prompt)
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(r.out)
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			buf.Reset()
			continue
		case err != nil:
			return withExit(exitIOErr, fmt.Errorf("failed to read input: %w", err))
		}

		giveUp := buf.Len() > 0 && strings.TrimSpace(line) == ""
		if buf.Len() == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)

		done, err := r.eval(ctx, buf.String(), giveUp)
		if err != nil {
			return err
		}
		if done {
			r.remember(buf.String())
			buf.Reset()
		}
	}
}

// eval runs src and reports the outcome. It returns false while src is an
// unfinished construct that more lines may complete.
func (r *repl) eval(ctx context.Context, src string, giveUp bool) (bool, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	res, err := r.session.Eval(ctx, src)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(r.rep.out, "interrupted")
			return true, nil
		}
		return true, err
	}
	if res.Incomplete && !giveUp {
		return false, nil
	}
	fs := r.session.FileSet()
	r.rep.static(res.Bag, fs)
	if res.RuntimeErr != nil {
		r.rep.runtime(res.RuntimeErr, fs)
	}
	return true, nil
}
