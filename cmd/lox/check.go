package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lox/internal/diag"
	"lox/internal/diagfmt"
	"lox/internal/driver"
	"lox/internal/observ"
	"lox/internal/source"
	"lox/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [paths...]",
	Short: "Report static errors without running",
	Long: `check lexes, parses and resolves every .lox file under the given paths
in parallel and prints all diagnostics. Without paths the directory of
lox.toml (or the current directory) is checked.`,
	RunE: runCheck,
}

func init() {
	addCheckFlags(checkCmd)
}

func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "output format (pretty|classic|json|yaml)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().Bool("cache", false, "reuse results of unchanged files from the disk cache")
	cmd.Flags().Bool("clear-cache", false, "drop the disk cache before checking")
	cmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	cmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	cmd.Flags().Bool("with-notes", true, "include notes")
	cmd.Flags().Bool("suggest", false, "include suggested fixes")
}

type checkSettings struct {
	format    string
	jobs      int
	cache     bool
	ui        autoSwitch
	pathMode  diagfmt.PathMode
	withNotes bool
	suggest   bool
}

func readCheckSettings(cmd *cobra.Command, manifest *projectManifest) (checkSettings, error) {
	var s checkSettings
	var err error
	if s.format, err = cmd.Flags().GetString("format"); err != nil {
		return s, fmt.Errorf("failed to get format flag: %w", err)
	}
	s.format = strings.ToLower(s.format)
	switch s.format {
	case "pretty", "classic", "json", "yaml":
	default:
		return s, usageError("unknown format %q (expected pretty|classic|json|yaml)", s.format)
	}
	if s.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return s, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if s.jobs < 0 {
		return s, usageError("--jobs must not be negative")
	}
	if s.cache, err = cmd.Flags().GetBool("cache"); err != nil {
		return s, fmt.Errorf("failed to get cache flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return s, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.ui, err = parseAutoSwitch("ui", uiValue); err != nil {
		return s, err
	}
	pathValue, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return s, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	var ok bool
	if s.pathMode, ok = diagfmt.ParsePathMode(pathValue); !ok {
		return s, usageError("invalid --path-mode value %q", pathValue)
	}
	if s.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return s, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if s.suggest, err = cmd.Flags().GetBool("suggest"); err != nil {
		return s, fmt.Errorf("failed to get suggest flag: %w", err)
	}

	if manifest != nil {
		if !cmd.Flags().Changed("jobs") {
			s.jobs = manifest.Config.Check.Jobs
		}
		if !cmd.Flags().Changed("cache") {
			s.cache = manifest.Config.Check.Cache
		}
	}
	return s, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return withExit(exitUsage, err)
	}
	settings, err := readCheckSettings(cmd, manifest)
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	paths := args
	if len(paths) == 0 {
		root := "."
		if manifest != nil {
			root = manifest.Root
		}
		paths = []string{root}
	}
	files, err := driver.ListLoxFiles(paths)
	if err != nil {
		return loadError(strings.Join(paths, " "), err)
	}

	opts := driver.CheckFilesOptions{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           settings.jobs,
		EnableTimings:  timings,
	}
	if settings.cache {
		cache, err := driver.OpenDiskCache("lox")
		if err != nil {
			return withExit(exitIOErr, fmt.Errorf("failed to open cache: %w", err))
		}
		dropCache, err := cmd.Flags().GetBool("clear-cache")
		if err != nil {
			return fmt.Errorf("failed to get clear-cache flag: %w", err)
		}
		if dropCache {
			if err := cache.DropAll(); err != nil {
				return withExit(exitIOErr, fmt.Errorf("failed to clear cache: %w", err))
			}
		}
		opts.Cache = cache
	}

	var (
		fileSet *source.FileSet
		results []driver.CheckFileResult
	)
	if !quiet && len(files) > 1 && settings.ui.enabled(os.Stderr) {
		fileSet, results, err = checkWithProgress(cmd.Context(), files, opts, cmd.ErrOrStderr())
	} else {
		fileSet, results, err = driver.CheckFiles(cmd.Context(), files, opts)
	}
	if err != nil {
		return withExit(exitSoftware, fmt.Errorf("check failed: %w", err))
	}

	bag := diag.NewBag(maxDiagnostics)
	reports := make([]observ.Report, 0, len(results))
	for _, res := range results {
		bag.Merge(res.Bag)
		if res.Timing != nil {
			reports = append(reports, *res.Timing)
		}
	}
	bag.Sort()

	if err := writeCheckOutput(cmd, cmd.OutOrStdout(), bag, fileSet, settings); err != nil {
		return err
	}
	if timings && len(reports) > 0 {
		fmt.Fprint(cmd.ErrOrStderr(), observ.MergeReports(reports).Summary())
	}
	if !quiet && (settings.format == "pretty" || settings.format == "classic") {
		printCheckSummary(cmd.ErrOrStderr(), results)
	}
	if bag.HasErrors() {
		return withExit(exitDataErr, nil)
	}
	return nil
}

// checkWithProgress runs CheckFiles while the progress view consumes its events.
func checkWithProgress(ctx context.Context, files []string, opts driver.CheckFilesOptions, out io.Writer) (*source.FileSet, []driver.CheckFileResult, error) {
	events := make(chan driver.Event, 64)
	opts.Progress = driver.ChannelSink{Ch: events}

	type outcome struct {
		fs      *source.FileSet
		results []driver.CheckFileResult
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		fs, results, err := driver.CheckFiles(ctx, files, opts)
		close(events)
		done <- outcome{fs, results, err}
	}()

	if err := ui.Run("checking", files, events, out); err != nil {
		// вид упал: дочитываем события, чтобы воркеры не зависли
		for range events {
		}
	}
	res := <-done
	return res.fs, res.results, res.err
}

func writeCheckOutput(cmd *cobra.Command, w io.Writer, bag *diag.Bag, fs *source.FileSet, s checkSettings) error {
	switch s.format {
	case "pretty":
		color, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:       color,
			Context:     1,
			PathMode:    s.pathMode,
			ShowNotes:   s.withNotes,
			ShowFixes:   s.suggest,
			ShowPreview: s.suggest,
		})
	case "classic":
		diagfmt.Classic(w, bag, fs)
	case "json", "yaml":
		opts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         s.pathMode,
			IncludeNotes:     s.withNotes,
			IncludeFixes:     s.suggest,
			IncludePreviews:  s.suggest,
		}
		var err error
		if s.format == "json" {
			err = diagfmt.JSON(w, bag, fs, opts)
		} else {
			err = diagfmt.YAML(w, bag, fs, opts)
		}
		if err != nil {
			return withExit(exitIOErr, err)
		}
	}
	return nil
}

func printCheckSummary(w io.Writer, results []driver.CheckFileResult) {
	var broken, cached int
	for _, res := range results {
		if res.Bag.HasErrors() {
			broken++
		}
		if res.Cached {
			cached++
		}
	}
	msg := fmt.Sprintf("checked %d file(s): %d with errors", len(results), broken)
	if cached > 0 {
		msg += fmt.Sprintf(", %d cached", cached)
	}
	fmt.Fprintln(w, msg)
}
