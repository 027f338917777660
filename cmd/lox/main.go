package main

import (
	"os"

	"github.com/spf13/cobra"

	"lox/internal/trace"
	"lox/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "lox [script]",
	Short: "Lox interpreter and tooling",
	Long: `lox runs Lox scripts with a tree-walking interpreter.
Without arguments it starts an interactive prompt.`,
	Args:              usageArgs(cobra.MaximumNArgs(1)),
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupCommand,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { cleanupCommand() },
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runRepl(cmd)
		}
		return runScript(cmd, args[0])
	},
}

// main регистрирует команды и флаги и переводит ошибку команды в код выхода.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(versionCmd)

	registerPersistentFlags(rootCmd)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError("%v\n%s", err, cmd.UsageString())
	})

	defer func() {
		if r := recover(); r != nil {
			dumpTraceRing(os.Stderr, activeTracer)
			panic(r)
		}
	}()

	err := rootCmd.Execute()
	cleanupCommand()
	if err != nil {
		reportError(os.Stderr, err)
		if activeMode == trace.ModeRing {
			dumpTraceRing(os.Stderr, activeTracer)
		}
	}
	os.Exit(exitCode(err))
}

func registerPersistentFlags(cmd *cobra.Command) {
	// Глобальные флаги
	cmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	cmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	cmd.PersistentFlags().Bool("timings", false, "show timing information")
	cmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	cmd.PersistentFlags().String("error-format", "pretty", "diagnostic style for run and repl (pretty|classic)")

	// Трассировка
	cmd.PersistentFlags().String("trace", "", "write pipeline trace to file (- for stderr)")
	cmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	cmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	cmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	cmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 = off)")

	// Профилирование
	cmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	cmd.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	cmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")
}

var cleanups []func()

// setupCommand включает трассировку и профилирование для любой команды.
func setupCommand(cmd *cobra.Command, args []string) error {
	cleanupTrace, err := setupTracing(cmd)
	if err != nil {
		return usageError("%v", err)
	}
	cleanups = append(cleanups, cleanupTrace)
	cleanupProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, cleanupProf)
	return nil
}

// cleanupCommand runs registered cleanups once, newest first.
func cleanupCommand() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}
