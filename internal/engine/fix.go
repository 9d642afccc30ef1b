package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"sift/internal/analyze"
	"sift/internal/errors"
	"sift/internal/suppress"
	"sift/internal/tree"
)

// maxFixPasses bounds the fix loop; each pass applies one action and
// re-parses, so cascading fixes converge or stop here.
const maxFixPasses = 16

// FixOptions controls fix application.
type FixOptions struct {
	// Unsafe also applies fixes with applicability maybe-incorrect.
	Unsafe bool
	// Codemods additionally runs transformation-only rules of the
	// codemod group even when configuration does not enable them.
	Codemods bool
	// Write persists the rewritten file; otherwise the result only
	// carries the proposed content.
	Write bool
}

// FixResult is the outcome of applying fixes to one file.
type FixResult struct {
	Path     string
	Original []byte
	Fixed    []byte
	// Applied counts applied quick fixes and transformations.
	Applied int
}

// Changed reports whether any fix altered the content.
func (r *FixResult) Changed() bool {
	return string(r.Original) != string(r.Fixed)
}

// Diff renders the applied changes as a patch.
func (r *FixResult) Diff() string {
	if !r.Changed() {
		return ""
	}
	dmp := diffmatchpatch.New()
	patches := dmp.PatchMake(string(r.Original), string(r.Fixed))
	return dmp.PatchToText(patches)
}

// FixFile applies fix actions (and optionally codemod transformations) to
// one file. Each pass re-parses, re-runs the rules, applies the first
// applicable action, and loops until a fixed point or the pass bound.
func (e *Engine) FixFile(ctx context.Context, path string, opts FixOptions) (*FixResult, error) {
	original, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.InternalError, "failed to read "+path, err)
	}

	lang, ok := tree.LanguageFromExtension(strings.ToLower(filepath.Ext(path)))
	if !ok {
		return nil, errors.New(errors.UnsupportedLanguage, "no grammar for "+path, nil)
	}

	result := &FixResult{Path: path, Original: original, Fixed: original}

	content := original
	parser := tree.NewParser()
	enabled := e.enabledForFix(opts)

	for pass := 0; pass < maxFixPasses; pass++ {
		root, err := parser.Parse(ctx, content, lang)
		if err != nil {
			return nil, errors.New(errors.ParseFailed, "failed to parse "+path, err)
		}

		options := e.config.AnalyzerOptions(path)
		suppressed := suppress.Scan(content, lang)

		next := e.applyOne(root, options, suppressed, opts, enabled)
		if next == nil {
			break
		}
		content = next
		result.Applied++
	}

	result.Fixed = content
	if opts.Write && result.Changed() {
		info, err := os.Stat(path)
		mode := os.FileMode(0644)
		if err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, result.Fixed, mode); err != nil {
			return nil, errors.New(errors.InternalError, "failed to write "+path, err)
		}
		if e.cache != nil {
			_ = e.cache.Invalidate(path)
		}
	}
	return result, nil
}

func (e *Engine) enabledForFix(opts FixOptions) func(analyze.RuleMetadata) bool {
	return func(meta analyze.RuleMetadata) bool {
		if opts.Codemods && meta.Group == "codemod" {
			return true
		}
		return e.config.RuleEnabled(meta)
	}
}

// applyOne runs the rules once and commits the first applicable edit,
// returning the rewritten content or nil when nothing applies.
func (e *Engine) applyOne(
	root *tree.Root,
	options *analyze.Options,
	suppressed *suppress.Suppressions,
	opts FixOptions,
	enabled func(analyze.RuleMetadata) bool,
) []byte {
	for _, signal := range e.registry.Run(root, e.bag, e.suppression, options, enabled) {
		if diag := signal.Diagnostic(); diag != nil {
			if suppressed.IsSuppressed(diag.Category, diag.Range.Start) {
				continue
			}
		}

		actions := signal.Actions()
		for action, ok := actions.Next(); ok; action, ok = actions.Next() {
			if action.IsSuppression() {
				continue
			}
			if action.Applicability != analyze.ApplicabilityAlways && !opts.Unsafe {
				continue
			}
			if action.Mutation == nil || action.Mutation.IsEmpty() {
				continue
			}
			return action.Mutation.Commit()
		}

		transformations := signal.Transformations()
		for t, ok := transformations.Next(); ok; t, ok = transformations.Next() {
			if t.Mutation == nil || t.Mutation.IsEmpty() {
				continue
			}
			return t.Mutation.Commit()
		}
	}
	return nil
}
