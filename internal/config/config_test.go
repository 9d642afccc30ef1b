package config

import (
	"os"
	"path/filepath"
	"testing"

	"sift/internal/analyze"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("version = %d", cfg.Version)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache not enabled by default")
	}
	if cfg.Index.Path != ".sift/index.scip" {
		t.Errorf("index path = %q", cfg.Index.Path)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "sift.yaml", `
version: 1
globals:
  - describe
  - it
preferredQuote: single
rules:
  suspicious/noDoubleEquals:
    enabled: true
    fix: safe
    options:
      ignoreNull: true
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Globals) != 2 || cfg.Globals[0] != "describe" {
		t.Errorf("globals = %v", cfg.Globals)
	}
	if cfg.PreferredQuote != "single" {
		t.Errorf("preferredQuote = %q", cfg.PreferredQuote)
	}

	// Viper lowercases map keys, so check rule settings behaviorally.
	meta := analyze.RuleMetadata{Group: "suspicious", Name: "noDoubleEquals"}
	if !cfg.RuleEnabled(meta) {
		t.Error("rule not enabled")
	}
	opts := cfg.AnalyzerOptions("app.js")
	if kind, ok := opts.RuleFixKind(meta.Identity()); !ok || kind != analyze.FixSafe {
		t.Errorf("fix kind = %s %v, want safe true", kind, ok)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "sift.toml", `
version = 1
preferredQuote = "single"

[rules."suspicious/noDoubleEquals"]
fix = "none"
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PreferredQuote != "single" {
		t.Errorf("preferredQuote = %q", cfg.PreferredQuote)
	}
	if cfg.Rules["suspicious/noDoubleEquals"].Fix != "none" {
		t.Errorf("fix = %q", cfg.Rules["suspicious/noDoubleEquals"].Fix)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"wrong version", func(c *Config) { c.Version = 2 }, true},
		{"bad quote", func(c *Config) { c.PreferredQuote = "backtick" }, true},
		{"bad jsx runtime", func(c *Config) { c.JsxRuntime = "preact" }, true},
		{"rule key without group", func(c *Config) {
			c.Rules["noDoubleEquals"] = RuleSettings{}
		}, true},
		{"bad fix kind", func(c *Config) {
			c.Rules["suspicious/noDoubleEquals"] = RuleSettings{Fix: "maybe"}
		}, true},
		{"valid fix kinds", func(c *Config) {
			c.Rules["a/b"] = RuleSettings{Fix: "safe"}
			c.Rules["a/c"] = RuleSettings{Fix: "unsafe"}
			c.Rules["a/d"] = RuleSettings{Fix: "none"}
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAnalyzerOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Globals = []string{"describe"}
	cfg.PreferredQuote = "single"
	cfg.Rules["suspicious/noDoubleEquals"] = RuleSettings{
		Fix:     "none",
		Options: map[string]interface{}{"ignoreNull": true},
	}

	opts := cfg.AnalyzerOptions("src/app.js")
	if opts.FilePath != "src/app.js" {
		t.Errorf("filePath = %q", opts.FilePath)
	}
	if opts.PreferredQuote != analyze.QuoteSingle {
		t.Errorf("quote = %q", opts.PreferredQuote)
	}
	id := analyze.RuleIdentity{Group: "suspicious", Name: "noDoubleEquals"}
	if kind, ok := opts.RuleFixKind(id); !ok || kind != analyze.FixNone {
		t.Errorf("fix kind = %s %v", kind, ok)
	}
}

func TestRuleEnabled(t *testing.T) {
	on, off := true, false
	cfg := DefaultConfig()
	cfg.Rules["a/forcedOn"] = RuleSettings{Enabled: &on}
	cfg.Rules["a/forcedOff"] = RuleSettings{Enabled: &off}

	tests := []struct {
		meta analyze.RuleMetadata
		want bool
	}{
		{analyze.RuleMetadata{Group: "a", Name: "forcedOn"}, true},
		{analyze.RuleMetadata{Group: "a", Name: "forcedOff", Recommended: true}, false},
		{analyze.RuleMetadata{Group: "a", Name: "recommended", Recommended: true}, true},
		{analyze.RuleMetadata{Group: "a", Name: "optIn"}, false},
	}
	for _, tt := range tests {
		if got := cfg.RuleEnabled(tt.meta); got != tt.want {
			t.Errorf("RuleEnabled(%s/%s) = %v, want %v", tt.meta.Group, tt.meta.Name, got, tt.want)
		}
	}
}

func TestExcluded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exclude = append(cfg.Exclude, "*.min.js")

	tests := []struct {
		path string
		want bool
	}{
		{"node_modules/react/index.js", true},
		{"src/node_modules/x.js", true},
		{"dist/app.min.js", true},
		{"src/app.js", false},
		{".sift/index.scip", true},
	}
	for _, tt := range tests {
		if got := cfg.Excluded(tt.path); got != tt.want {
			t.Errorf("Excluded(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
