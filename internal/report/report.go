// Package report renders analysis runs through pluggable reporters:
// terminal, JSON, JUnit, GitHub annotations, and GitLab code quality.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"sift/internal/analyze"
	"sift/internal/engine"
)

// Run is one complete analysis run handed to a reporter.
type Run struct {
	ID         string               `json:"id"`
	Tool       string               `json:"tool"`
	Version    string               `json:"version"`
	StartedAt  time.Time            `json:"startedAt"`
	DurationMs int64                `json:"durationMs"`
	Files      []*engine.FileResult `json:"files"`
	Summary    Summary              `json:"summary"`
}

// Summary aggregates counts across the run.
type Summary struct {
	Files    int `json:"files"`
	Findings int `json:"findings"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Fixable  int `json:"fixable"`
}

// NewRun assembles a run from per-file results.
func NewRun(version string, startedAt time.Time, files []*engine.FileResult) *Run {
	run := &Run{
		ID:         uuid.NewString(),
		Tool:       "sift",
		Version:    version,
		StartedAt:  startedAt,
		DurationMs: time.Since(startedAt).Milliseconds(),
		Files:      files,
	}
	run.Summary.Files = len(files)
	for _, f := range files {
		for _, finding := range f.Findings {
			run.Summary.Findings++
			switch finding.Diagnostic.Severity {
			case analyze.SeverityError:
				run.Summary.Errors++
			default:
				run.Summary.Warnings++
			}
			if finding.Fixable() {
				run.Summary.Fixable++
			}
		}
	}
	return run
}

// Reporter renders a run to a writer.
type Reporter interface {
	Report(w io.Writer, run *Run) error
}

// ForFormat returns the reporter for a format name.
func ForFormat(format string) (Reporter, error) {
	switch format {
	case "", "terminal":
		return NewTerminal(), nil
	case "json":
		return &JSON{}, nil
	case "junit":
		return &JUnit{}, nil
	case "github":
		return &GitHub{}, nil
	case "gitlab":
		return &GitLab{}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// Output opens the report destination. "-" or empty means stdout; paths
// ending in .gz are transparently gzip-compressed.
func Output(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		return &gzipCloser{gz: gzip.NewWriter(f), file: f}, nil
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

type gzipCloser struct {
	gz   *gzip.Writer
	file *os.File
}

func (c *gzipCloser) Write(p []byte) (int, error) { return c.gz.Write(p) }

func (c *gzipCloser) Close() error {
	if err := c.gz.Close(); err != nil {
		c.file.Close()
		return err
	}
	return c.file.Close()
}
