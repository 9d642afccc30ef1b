package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"sift/internal/analyze"
)

// Terminal renders a human-readable, colorized report.
type Terminal struct {
	category *color.Color
	errText  *color.Color
	warnText *color.Color
	dim      *color.Color
}

// NewTerminal creates the terminal reporter.
func NewTerminal() *Terminal {
	return &Terminal{
		category: color.New(color.FgCyan),
		errText:  color.New(color.FgRed, color.Bold),
		warnText: color.New(color.FgYellow, color.Bold),
		dim:      color.New(color.Faint),
	}
}

// Report implements Reporter.
func (t *Terminal) Report(w io.Writer, run *Run) error {
	for _, file := range run.Files {
		for _, finding := range file.Findings {
			severity := t.warnText.Sprint("warning")
			if finding.Diagnostic.Severity == analyze.SeverityError {
				severity = t.errText.Sprint("error")
			}
			fmt.Fprintf(w, "%s:%d:%d %s %s %s\n",
				file.Path, finding.Line, finding.Column,
				severity,
				t.category.Sprint(finding.Diagnostic.Category),
				finding.Diagnostic.Message,
			)
			for _, note := range finding.Diagnostic.Notes {
				fmt.Fprintf(w, "  %s\n", t.dim.Sprint(note))
			}
			for _, s := range finding.Suggestions {
				if s.Category != analyze.CategoryQuickFix {
					continue
				}
				safety := "unsafe"
				if s.Suggestion.Applicability == analyze.ApplicabilityAlways {
					safety = "safe"
				}
				fmt.Fprintf(w, "  %s\n", t.dim.Sprintf("fix (%s): %s", safety, s.Suggestion.Message))
			}
		}
	}

	fmt.Fprintf(w, "Checked %d files: %d findings (%d errors, %d warnings, %d fixable)\n",
		run.Summary.Files, run.Summary.Findings,
		run.Summary.Errors, run.Summary.Warnings, run.Summary.Fixable)
	return nil
}
