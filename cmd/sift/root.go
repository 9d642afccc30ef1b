package main

import (
	"os"

	"github.com/spf13/cobra"

	"sift/internal/config"
	"sift/internal/engine"
	"sift/internal/logging"
	"sift/internal/rules"
	"sift/internal/version"
)

var (
	// repoRootFlag overrides the working directory as project root
	repoRootFlag string
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "sift",
	Short: "sift - source analysis and rewriting",
	Long: `sift analyzes source trees with lint and assist rules, reports
diagnostics with proposed fixes, and can apply fixes and codemod
transformations in place.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("sift version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&repoRootFlag, "root", "", "Project root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
}

func mustGetRepoRoot() string {
	if repoRootFlag != "" {
		return repoRootFlag
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func newLogger(cfg *config.Config) *logging.Logger {
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(level),
	})
}

// mustGetEngine loads configuration and builds the engine, exiting through
// the returned error path on misconfiguration.
func getEngine(repoRoot string) (*engine.Engine, *config.Config, *logging.Logger, error) {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := newLogger(cfg)

	registry, err := rules.NewRegistry()
	if err != nil {
		return nil, nil, nil, err
	}

	eng, err := engine.New(repoRoot, cfg, logger, registry)
	if err != nil {
		return nil, nil, nil, err
	}
	return eng, cfg, logger, nil
}
