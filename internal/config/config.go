// Package config loads and validates sift configuration. The main config
// file is sift.yaml or sift.json (loaded through viper); projects that
// prefer TOML use sift.toml, decoded directly.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"sift/internal/analyze"
	"sift/internal/errors"
)

// CurrentVersion is the config schema version this build reads.
const CurrentVersion = 1

// Config represents the complete sift configuration
type Config struct {
	Version int `json:"version" mapstructure:"version" toml:"version"`

	// Include/Exclude are path globs controlling which files are analyzed.
	Include []string `json:"include,omitempty" mapstructure:"include" toml:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty" mapstructure:"exclude" toml:"exclude,omitempty"`

	// Globals are identifiers the analyzer treats as ambient.
	Globals []string `json:"globals,omitempty" mapstructure:"globals" toml:"globals,omitempty"`

	// PreferredQuote is "double" or "single".
	PreferredQuote string `json:"preferredQuote,omitempty" mapstructure:"preferredQuote" toml:"preferredQuote,omitempty"`

	// JsxRuntime is "transparent" or "reactClassic".
	JsxRuntime string `json:"jsxRuntime,omitempty" mapstructure:"jsxRuntime" toml:"jsxRuntime,omitempty"`

	Index   IndexConfig   `json:"index" mapstructure:"index" toml:"index"`
	Cache   CacheConfig   `json:"cache" mapstructure:"cache" toml:"cache"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging" toml:"logging"`

	// Rules maps "group/name" to per-rule settings.
	Rules map[string]RuleSettings `json:"rules,omitempty" mapstructure:"rules" toml:"rules,omitempty"`
}

// IndexConfig configures the optional SCIP symbol index service
type IndexConfig struct {
	Path string `json:"path,omitempty" mapstructure:"path" toml:"path,omitempty"`
}

// CacheConfig configures the result cache
type CacheConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled" toml:"enabled"`
}

// LoggingConfig configures the logger
type LoggingConfig struct {
	Level  string `json:"level,omitempty" mapstructure:"level" toml:"level,omitempty"`
	Format string `json:"format,omitempty" mapstructure:"format" toml:"format,omitempty"`
}

// RuleSettings contains per-rule configuration
type RuleSettings struct {
	// Enabled overrides the rule's recommended default; nil keeps it.
	Enabled *bool `json:"enabled,omitempty" mapstructure:"enabled" toml:"enabled,omitempty"`

	// Fix is the fix policy: "none", "safe" or "unsafe"; empty leaves the
	// rule's own applicability.
	Fix string `json:"fix,omitempty" mapstructure:"fix" toml:"fix,omitempty"`

	// Options is the rule-specific options blob.
	Options map[string]interface{} `json:"options,omitempty" mapstructure:"options" toml:"options,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:        CurrentVersion,
		Exclude:        []string{"node_modules", "vendor", ".git", ".sift"},
		PreferredQuote: "double",
		JsxRuntime:     "transparent",
		Index:          IndexConfig{Path: ".sift/index.scip"},
		Cache:          CacheConfig{Enabled: true},
		Logging:        LoggingConfig{Level: "info", Format: "human"},
		Rules:          map[string]RuleSettings{},
	}
}

// Load reads configuration from repoRoot, trying sift.toml first and then
// sift.{yaml,yml,json} through viper. A missing file yields the defaults.
func Load(repoRoot string) (*Config, error) {
	tomlPath := filepath.Join(repoRoot, "sift.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		return loadTOML(tomlPath)
	}

	v := viper.New()
	v.SetConfigName("sift")
	v.SetConfigType("yaml")
	v.AddConfigPath(repoRoot)

	cfg := DefaultConfig()
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return cfg, nil
		}
		return nil, errors.New(errors.ConfigInvalid, "failed to read config file", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New(errors.ConfigInvalid, "failed to decode config file", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadTOML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.ConfigInvalid, fmt.Sprintf("failed to read %s", path), err)
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.ConfigInvalid, fmt.Sprintf("failed to parse %s", path), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return errors.New(
			errors.ConfigInvalid,
			fmt.Sprintf("unsupported config version %d (want %d)", c.Version, CurrentVersion),
			nil,
		)
	}
	switch c.PreferredQuote {
	case "", "double", "single":
	default:
		return errors.New(errors.ConfigInvalid, fmt.Sprintf("invalid preferredQuote %q", c.PreferredQuote), nil)
	}
	switch c.JsxRuntime {
	case "", "transparent", "reactClassic":
	default:
		return errors.New(errors.ConfigInvalid, fmt.Sprintf("invalid jsxRuntime %q", c.JsxRuntime), nil)
	}
	for key, rs := range c.Rules {
		if !strings.Contains(key, "/") {
			return errors.New(errors.ConfigInvalid, fmt.Sprintf("rule key %q must be group/name", key), nil)
		}
		switch rs.Fix {
		case "", "none", "safe", "unsafe":
		default:
			return errors.New(errors.ConfigInvalid, fmt.Sprintf("rule %s: invalid fix kind %q", key, rs.Fix), nil)
		}
	}
	return nil
}

// AnalyzerOptions resolves the analyzer options for one file.
func (c *Config) AnalyzerOptions(filePath string) *analyze.Options {
	rules := make(map[string]analyze.RuleConfig, len(c.Rules))
	for key, rs := range c.Rules {
		rc := analyze.RuleConfig{FixKind: analyze.FixKind(rs.Fix)}
		if rs.Options != nil {
			rc.Options = rs.Options
		}
		rules[key] = rc
	}
	return &analyze.Options{
		Globals:        c.Globals,
		FilePath:       filePath,
		PreferredQuote: analyze.QuoteStyle(c.PreferredQuote),
		JsxRuntime:     analyze.JsxRuntime(c.JsxRuntime),
		Rules:          rules,
	}
}

// RuleEnabled reports whether a rule should run under this configuration:
// an explicit enabled flag wins, otherwise recommended rules run.
func (c *Config) RuleEnabled(meta analyze.RuleMetadata) bool {
	if rs, ok := c.ruleSettings(meta.Group + "/" + meta.Name); ok && rs.Enabled != nil {
		return *rs.Enabled
	}
	return meta.Recommended
}

// ruleSettings looks up per-rule settings, tolerating the lowercased keys
// viper produces for camelCase rule names.
func (c *Config) ruleSettings(key string) (RuleSettings, bool) {
	if rs, ok := c.Rules[key]; ok {
		return rs, true
	}
	rs, ok := c.Rules[strings.ToLower(key)]
	return rs, ok
}

// Excluded reports whether a path matches one of the exclude globs or
// directory names.
func (c *Config) Excluded(path string) bool {
	for _, pattern := range c.Exclude {
		if match, _ := filepath.Match(pattern, filepath.Base(path)); match {
			return true
		}
		for _, part := range strings.Split(filepath.ToSlash(path), "/") {
			if part == pattern {
				return true
			}
		}
	}
	return false
}
