package report

import (
	"fmt"
	"io"
	"strings"

	"sift/internal/analyze"
)

// GitHub renders findings as GitHub Actions workflow commands, which the
// runner turns into inline annotations on the diff view.
type GitHub struct{}

// Report implements Reporter.
func (GitHub) Report(w io.Writer, run *Run) error {
	for _, file := range run.Files {
		for _, finding := range file.Findings {
			level := "warning"
			if finding.Diagnostic.Severity == analyze.SeverityError {
				level = "error"
			}
			fmt.Fprintf(w, "::%s file=%s,line=%d,col=%d,title=%s::%s\n",
				level, file.Path, finding.Line, finding.Column,
				finding.Diagnostic.Category,
				escapeGitHub(finding.Diagnostic.Message),
			)
		}
	}
	return nil
}

// escapeGitHub escapes the characters the workflow-command syntax reserves.
func escapeGitHub(s string) string {
	r := strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	return r.Replace(s)
}
