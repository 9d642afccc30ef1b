package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sift/internal/report"
	"sift/internal/version"
)

var (
	checkFormat string
	checkOutput string
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Analyze files and report diagnostics",
	Long: `Analyze the given files or directories with all enabled rules and
report the findings. Exits non-zero when any finding has error severity.

Examples:
  sift check
  sift check src/
  sift check --format json --output report.json
  sift check --format gitlab --output code-quality.json.gz`,
	Run: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "terminal", "Report format (terminal, json, junit, github, gitlab)")
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "-", "Report destination (- for stdout, .gz compresses)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	start := time.Now()
	repoRoot := mustGetRepoRoot()

	eng, _, logger, err := getEngine(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{repoRoot}
	}

	results, err := eng.CheckPaths(context.Background(), paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing files: %v\n", err)
		os.Exit(1)
	}

	run := report.NewRun(version.Version, start, results)

	reporter, err := report.ForFormat(checkFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	out, err := report.Output(checkOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening output: %v\n", err)
		os.Exit(1)
	}
	if err := reporter.Report(out, run); err != nil {
		out.Close()
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing output: %v\n", err)
		os.Exit(1)
	}

	logger.Debug("Check completed", map[string]interface{}{
		"files":    run.Summary.Files,
		"findings": run.Summary.Findings,
		"duration": time.Since(start).Milliseconds(),
	})

	if run.Summary.Errors > 0 {
		os.Exit(1)
	}
}
