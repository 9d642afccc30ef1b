package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sift/internal/rules"
)

var rulesFormat string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List available rules",
	Long: `List every registered rule with its category, fix capability, and
whether it is enabled by default.

Examples:
  sift rules
  sift rules --format json`,
	Run: runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&rulesFormat, "format", "human", "Output format (human, json)")
	rootCmd.AddCommand(rulesCmd)
}

// ruleInfo is the JSON listing shape for one rule.
type ruleInfo struct {
	Category    string   `json:"category"`
	Version     string   `json:"version"`
	Recommended bool     `json:"recommended"`
	Fix         string   `json:"fix,omitempty"`
	Languages   []string `json:"languages"`
}

func runRules(cmd *cobra.Command, args []string) {
	registry, err := rules.NewRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if rulesFormat == "json" {
		infos := make([]ruleInfo, 0)
		for _, meta := range registry.Rules() {
			languages := make([]string, 0, len(meta.Languages))
			for _, lang := range meta.Languages {
				languages = append(languages, string(lang))
			}
			infos = append(infos, ruleInfo{
				Category:    meta.Category(),
				Version:     meta.Version,
				Recommended: meta.Recommended,
				Fix:         string(meta.FixKind),
				Languages:   languages,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(infos); err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var sb strings.Builder
	sb.WriteString("Available Rules\n")
	sb.WriteString("━━━━━━━━━━━━━━━\n\n")
	for _, meta := range registry.Rules() {
		marker := " "
		if meta.Recommended {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("  %s %s", marker, meta.Category()))
		if meta.FixKind != "" {
			sb.WriteString(fmt.Sprintf(" (fix: %s)", meta.FixKind))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n* enabled by default\n")
	fmt.Print(sb.String())
}
