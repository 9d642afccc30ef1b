// Package engine coordinates per-file analysis: parsing, rule dispatch,
// suppression filtering, the result cache, and fix application.
package engine

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"sift/internal/analyze"
	"sift/internal/config"
	"sift/internal/errors"
	"sift/internal/logging"
	"sift/internal/services"
	"sift/internal/storage"
	"sift/internal/suppress"
	"sift/internal/tree"
)

// Finding is one reported diagnostic together with its flattened
// suggestions, ready for caching and reporting.
type Finding struct {
	Diagnostic  *analyze.Diagnostic          `json:"diagnostic"`
	Line        int                          `json:"line"`
	Column      int                          `json:"column"`
	Suggestions []analyze.CodeSuggestionItem `json:"suggestions,omitempty"`
}

// Fixable reports whether the finding carries at least one quick fix.
func (f Finding) Fixable() bool {
	for _, s := range f.Suggestions {
		if s.Category == analyze.CategoryQuickFix {
			return true
		}
	}
	return false
}

// FileResult is the outcome of analyzing one file.
type FileResult struct {
	Path      string        `json:"path"`
	Language  tree.Language `json:"language"`
	Findings  []Finding     `json:"findings"`
	FromCache bool          `json:"-"`
}

// Engine runs the analyzer over files.
type Engine struct {
	repoRoot    string
	config      *config.Config
	logger      *logging.Logger
	registry    *analyze.Registry
	bag         *analyze.ServiceBag
	suppression analyze.SuppressionAction
	cache       *storage.ResultCache
}

// New creates an engine. The result cache and the symbol index service are
// both optional: analysis proceeds without them, with cross-file rules
// silently skipped when the index is absent.
func New(repoRoot string, cfg *config.Config, logger *logging.Logger, registry *analyze.Registry) (*Engine, error) {
	if err := validateRuleKeys(cfg, registry); err != nil {
		return nil, err
	}

	e := &Engine{
		repoRoot:    repoRoot,
		config:      cfg,
		logger:      logger,
		registry:    registry,
		bag:         analyze.NewServiceBag(),
		suppression: suppress.New(),
	}

	if cfg.Index.Path != "" {
		index, err := services.LoadSymbolIndex(filepath.Join(repoRoot, cfg.Index.Path))
		if err != nil {
			logger.Debug("Symbol index not loaded; cross-file rules will not run", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			e.bag.Insert(services.SymbolIndexService, index)
			logger.Info("Symbol index loaded", map[string]interface{}{
				"symbols": index.Len(),
			})
		}
	}

	if cfg.Cache.Enabled {
		db, err := storage.Open(repoRoot, logger)
		if err != nil {
			logger.Warn("Result cache unavailable", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			e.cache = storage.NewResultCache(db, configHash(cfg))
		}
	}

	return e, nil
}

// validateRuleKeys checks every configured rule key against the registry.
// Comparison is case-insensitive because some config loaders lowercase
// map keys.
func validateRuleKeys(cfg *config.Config, registry *analyze.Registry) error {
	known := make(map[string]struct{})
	for _, meta := range registry.Rules() {
		known[strings.ToLower(meta.Group+"/"+meta.Name)] = struct{}{}
	}
	for key := range cfg.Rules {
		if _, ok := known[strings.ToLower(key)]; !ok {
			return errors.New(errors.RuleUnknown, "configuration references unknown rule "+key, nil)
		}
	}
	return nil
}

// configHash derives the cache discriminator from the effective config.
func configHash(cfg *config.Config) string {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return "unknown"
	}
	return storage.HashContent(raw)
}

// Registry exposes the rule registry, e.g. for the rules listing command.
func (e *Engine) Registry() *analyze.Registry {
	return e.registry
}

// CheckFile analyzes one file and returns its findings. Unchanged files
// are served from the result cache when it is available.
func (e *Engine) CheckFile(ctx context.Context, path string) (*FileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.InternalError, "failed to read "+path, err)
	}

	lang, ok := tree.LanguageFromExtension(strings.ToLower(filepath.Ext(path)))
	if !ok {
		return nil, errors.New(errors.UnsupportedLanguage, "no grammar for "+path, nil)
	}

	contentHash := storage.HashContent(content)
	if e.cache != nil {
		if payload, hit, err := e.cache.Get(path, contentHash); err == nil && hit {
			var findings []Finding
			if err := json.Unmarshal([]byte(payload), &findings); err == nil {
				return &FileResult{Path: path, Language: lang, Findings: findings, FromCache: true}, nil
			}
		}
	}

	findings, err := e.analyzeSource(ctx, path, content, lang)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if payload, err := json.Marshal(findings); err == nil {
			if err := e.cache.Put(path, contentHash, string(payload)); err != nil {
				e.logger.Debug("Failed to store result cache entry", map[string]interface{}{
					"path":  path,
					"error": err.Error(),
				})
			}
		}
	}

	return &FileResult{Path: path, Language: lang, Findings: findings}, nil
}

// analyzeSource parses and analyzes source bytes, filtering findings
// silenced by suppression markers.
func (e *Engine) analyzeSource(ctx context.Context, path string, content []byte, lang tree.Language) ([]Finding, error) {
	root, err := tree.NewParser().Parse(ctx, content, lang)
	if err != nil {
		return nil, errors.New(errors.ParseFailed, "failed to parse "+path, err)
	}

	options := e.config.AnalyzerOptions(path)
	suppressed := suppress.Scan(content, lang)

	findings := make([]Finding, 0)
	for _, signal := range e.registry.Run(root, e.bag, e.suppression, options, e.config.RuleEnabled) {
		diag := signal.Diagnostic()
		if diag == nil {
			continue
		}
		if suppressed.IsSuppressed(diag.Category, diag.Range.Start) {
			continue
		}
		line, col := root.Lines().Position(diag.Range.Start)
		findings = append(findings, Finding{
			Diagnostic:  diag,
			Line:        line,
			Column:      col,
			Suggestions: signal.Actions().CodeSuggestions().Collect(),
		})
	}
	return findings, nil
}
