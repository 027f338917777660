package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"lox/internal/driver"
)

const exitInterrupted = 130

var runCmd = &cobra.Command{
	Use:   "run [flags] [file.lox]",
	Short: "Run a Lox script",
	Long: `Run checks a script and executes it when there are no static errors.
Without a file argument the script named by [run].main in lox.toml is used.`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		}
		return runScript(cmd, path)
	},
}

func init() {
	addRunFlags(rootCmd)
	addRunFlags(runCmd)
	addRunFlags(replCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("exec-trace", "", "trace executed statements and calls to file (- for stderr)")
	cmd.Flags().Int("max-call-depth", 0, "maximum nested calls (0 = lox.toml or built-in default)")
}

type runSettings struct {
	path         string
	maxCallDepth int
	execTrace    string
}

// resolveRunSettings merges flags with lox.toml; flags win.
func resolveRunSettings(cmd *cobra.Command, path string, manifest *projectManifest) (runSettings, error) {
	settings, err := readExecSettings(cmd, manifest)
	if err != nil {
		return runSettings{}, err
	}
	settings.path = path
	if manifest != nil && settings.path == "" {
		settings.path, err = resolveProjectRunTarget(manifest)
		if err != nil {
			return runSettings{}, withExit(exitNoInput, err)
		}
	}
	if settings.path == "" {
		return runSettings{}, usageError("%s", noLoxTomlMessage)
	}
	return settings, nil
}

// readExecSettings reads --exec-trace and --max-call-depth; a manifest
// call depth applies only when the flag was not given.
func readExecSettings(cmd *cobra.Command, manifest *projectManifest) (runSettings, error) {
	execTrace, err := cmd.Flags().GetString("exec-trace")
	if err != nil {
		return runSettings{}, fmt.Errorf("failed to get exec-trace flag: %w", err)
	}
	maxCallDepth, err := cmd.Flags().GetInt("max-call-depth")
	if err != nil {
		return runSettings{}, fmt.Errorf("failed to get max-call-depth flag: %w", err)
	}
	if maxCallDepth < 0 {
		return runSettings{}, usageError("--max-call-depth must not be negative")
	}

	settings := runSettings{maxCallDepth: maxCallDepth, execTrace: execTrace}
	if manifest != nil && !cmd.Flags().Changed("max-call-depth") && manifest.Config.Run.MaxCallDepth > 0 {
		settings.maxCallDepth = manifest.Config.Run.MaxCallDepth
	}
	return settings, nil
}

func runScript(cmd *cobra.Command, path string) error {
	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return withExit(exitUsage, err)
	}
	settings, err := resolveRunSettings(cmd, path, manifest)
	if err != nil {
		return err
	}

	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	rep, err := newReporter(cmd)
	if err != nil {
		return err
	}

	execTrace, closeTrace, err := openExecTrace(settings.execTrace, cmd.ErrOrStderr())
	if err != nil {
		return withExit(exitIOErr, err)
	}
	defer closeTrace()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	opts := driver.RunOptions{
		CheckOptions: driver.CheckOptions{
			MaxDiagnostics: maxDiagnostics,
			EnableTimings:  timings,
		},
		Stdout:       cmd.OutOrStdout(),
		MaxCallDepth: settings.maxCallDepth,
		ExecTrace:    execTrace,
	}
	res, err := driver.Run(ctx, settings.path, opts)
	if err != nil {
		var pathErr *fs.PathError
		switch {
		case errors.As(err, &pathErr):
			return loadError(settings.path, err)
		case errors.Is(err, context.Canceled):
			return withExit(exitInterrupted, errors.New("interrupted"))
		}
		return withExit(exitSoftware, err)
	}

	rep.static(res.Check.Bag, res.Check.FileSet)
	if timings && res.Check.Timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), res.Check.Timer.Summary())
	}
	if !res.Check.OK() {
		return withExit(exitDataErr, nil)
	}
	if res.RuntimeErr != nil {
		rep.runtime(res.RuntimeErr, res.Check.FileSet)
		return withExit(exitSoftware, nil)
	}
	return nil
}

// openExecTrace returns the writer for --exec-trace; "" disables tracing.
func openExecTrace(path string, stderr io.Writer) (io.Writer, func(), error) {
	switch path {
	case "":
		return nil, func() {}, nil
	case "-":
		return stderr, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create exec trace: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
