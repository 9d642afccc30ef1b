package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sift/internal/engine"
)

var (
	fixUnsafe   bool
	fixCodemods bool
	fixDryRun   bool
)

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Apply fixes to files in place",
	Long: `Apply safe quick fixes to the given files or directories. Unsafe
fixes and codemod transformations are opt-in.

Examples:
  sift fix src/
  sift fix --unsafe src/app.js
  sift fix --codemods src/
  sift fix --dry-run src/`,
	Run: runFix,
}

func init() {
	fixCmd.Flags().BoolVar(&fixUnsafe, "unsafe", false, "Also apply fixes that may change behavior")
	fixCmd.Flags().BoolVar(&fixCodemods, "codemods", false, "Also run codemod transformation rules")
	fixCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "Print diffs without writing files")
	rootCmd.AddCommand(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) {
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

	files, err := eng.CollectFiles(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error collecting files: %v\n", err)
		os.Exit(1)
	}

	opts := engine.FixOptions{
		Unsafe:   fixUnsafe,
		Codemods: fixCodemods,
		Write:    !fixDryRun,
	}

	changed := 0
	applied := 0
	for _, file := range files {
		result, err := eng.FixFile(context.Background(), file, opts)
		if err != nil {
			logger.Warn("Skipping file", map[string]interface{}{
				"path":  file,
				"error": err.Error(),
			})
			continue
		}
		if !result.Changed() {
			continue
		}
		changed++
		applied += result.Applied
		if fixDryRun {
			fmt.Printf("--- %s\n%s\n", file, result.Diff())
		} else {
			fmt.Printf("Fixed %s (%d applied)\n", file, result.Applied)
		}
	}

	fmt.Printf("%d file(s) changed, %d fix(es) applied\n", changed, applied)

	logger.Debug("Fix completed", map[string]interface{}{
		"files":    len(files),
		"changed":  changed,
		"applied":  applied,
		"duration": time.Since(start).Milliseconds(),
	})
}
