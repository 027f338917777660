package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"lox/internal/diagfmt"
	"lox/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.lox",
	Short: "Parse a Lox source file and print its syntax tree",
	Long: `Parse builds the syntax tree of a file and prints it either as an
indented tree with spans or as parenthesized prefix forms.`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|sexpr)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "tree" && format != "sexpr" {
		return usageError("unknown format: %s", format)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(filePath, maxDiagnostics)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return loadError(filePath, err)
		}
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		color, err := useColor(cmd, os.Stderr)
		if err != nil {
			return err
		}
		result.Bag.Sort()
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   color,
			Context: 1,
		})
	}

	// Дерево печатается и при ошибках: парсер восстанавливается после них
	switch format {
	case "sexpr":
		err = diagfmt.FormatASTSexpr(cmd.OutOrStdout(), result.Builder, result.FileID)
	default:
		err = diagfmt.FormatASTTree(cmd.OutOrStdout(), result.Builder, result.FileID, result.FileSet)
	}
	if err != nil {
		return withExit(exitIOErr, err)
	}
	if result.Bag.HasErrors() {
		return withExit(exitDataErr, nil)
	}
	return nil
}
