package engine

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sift/internal/tree"
)

// CollectFiles expands paths (files or directories) into the sorted list of
// analyzable files, honoring the configured excludes. Hidden directories
// are always skipped.
func (e *Engine) CollectFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if seen[path] {
			return
		}
		if _, ok := tree.LanguageFromExtension(strings.ToLower(filepath.Ext(path))); !ok {
			return
		}
		if e.config.Excluded(path) {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return nil // Skip unreadable entries
			}
			if fi.IsDir() {
				name := fi.Name()
				if (strings.HasPrefix(name, ".") && name != ".") || e.config.Excluded(p) {
					return filepath.SkipDir
				}
				return nil
			}
			add(p)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// CheckPaths analyzes every file under the given paths.
func (e *Engine) CheckPaths(ctx context.Context, paths []string) ([]*FileResult, error) {
	files, err := e.CollectFiles(paths)
	if err != nil {
		return nil, err
	}

	results := make([]*FileResult, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := e.CheckFile(ctx, file)
		if err != nil {
			e.logger.Warn("Skipping file", map[string]interface{}{
				"path":  file,
				"error": err.Error(),
			})
			continue
		}
		results = append(results, result)
	}
	return results, nil
}
