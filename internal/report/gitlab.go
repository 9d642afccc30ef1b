package report

import (
	"encoding/json"
	"fmt"
	"io"

	"sift/internal/analyze"
	"sift/internal/storage"
)

// GitLab renders findings in the GitLab Code Quality artifact format.
type GitLab struct{}

type gitlabIssue struct {
	Description string         `json:"description"`
	CheckName   string         `json:"check_name"`
	Fingerprint string         `json:"fingerprint"`
	Severity    string         `json:"severity"`
	Location    gitlabLocation `json:"location"`
}

type gitlabLocation struct {
	Path  string      `json:"path"`
	Lines gitlabLines `json:"lines"`
}

type gitlabLines struct {
	Begin int `json:"begin"`
}

// Report implements Reporter.
func (GitLab) Report(w io.Writer, run *Run) error {
	issues := make([]gitlabIssue, 0, run.Summary.Findings)
	for _, file := range run.Files {
		for _, finding := range file.Findings {
			severity := "minor"
			if finding.Diagnostic.Severity == analyze.SeverityError {
				severity = "major"
			}
			// Stable fingerprint so GitLab can track an issue across
			// pipelines even as unrelated lines move.
			fingerprint := storage.HashContent([]byte(fmt.Sprintf("%s:%s:%s",
				file.Path, finding.Diagnostic.Category, finding.Diagnostic.Message)))
			issues = append(issues, gitlabIssue{
				Description: finding.Diagnostic.Message,
				CheckName:   finding.Diagnostic.Category,
				Fingerprint: fingerprint,
				Severity:    severity,
				Location: gitlabLocation{
					Path:  file.Path,
					Lines: gitlabLines{Begin: finding.Line},
				},
			})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(issues)
}
