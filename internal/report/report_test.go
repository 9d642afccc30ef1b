package report

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/klauspost/compress/gzip"

	"sift/internal/analyze"
	"sift/internal/engine"
	"sift/internal/text"
)

func testRun() *Run {
	files := []*engine.FileResult{
		{
			Path:     "src/app.js",
			Language: "javascript",
			Findings: []engine.Finding{
				{
					Diagnostic: &analyze.Diagnostic{
						Category: "lint/suspicious/noDoubleEquals",
						Range:    text.NewRange(13, 15),
						Message:  "Use === instead of ==.",
						Severity: analyze.SeverityWarning,
					},
					Line:   1,
					Column: 14,
					Suggestions: []analyze.CodeSuggestionItem{
						{
							Rule:     &analyze.RuleIdentity{Group: "suspicious", Name: "noDoubleEquals"},
							Category: analyze.CategoryQuickFix,
							Suggestion: analyze.CodeSuggestion{
								Span:          text.NewRange(13, 15),
								Applicability: analyze.ApplicabilityMaybeIncorrect,
								Message:       "Use ===",
								Suggestion:    "===",
							},
						},
					},
				},
				{
					Diagnostic: &analyze.Diagnostic{
						Category: "lint/correctness/noUndeclaredVariables",
						Message:  "The frobnicate variable is undeclared.",
						Severity: analyze.SeverityError,
					},
					Line:   3,
					Column: 1,
				},
			},
		},
		{Path: "src/clean.js", Language: "javascript"},
	}
	return NewRun("0.1.0", time.Now().Add(-time.Second), files)
}

func TestNewRunSummary(t *testing.T) {
	run := testRun()
	if run.Tool != "sift" || run.Version != "0.1.0" {
		t.Errorf("tool/version = %s %s", run.Tool, run.Version)
	}
	if run.ID == "" {
		t.Error("run has no id")
	}
	if run.DurationMs <= 0 {
		t.Errorf("duration = %d", run.DurationMs)
	}

	s := run.Summary
	if s.Files != 2 || s.Findings != 2 || s.Errors != 1 || s.Warnings != 1 || s.Fixable != 1 {
		t.Errorf("summary = %+v", s)
	}
}

func TestForFormat(t *testing.T) {
	for _, format := range []string{"", "terminal", "json", "junit", "github", "gitlab"} {
		if _, err := ForFormat(format); err != nil {
			t.Errorf("ForFormat(%q): %v", format, err)
		}
	}
	if _, err := ForFormat("sarif"); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestTerminalReport(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var buf bytes.Buffer
	if err := NewTerminal().Report(&buf, testRun()); err != nil {
		t.Fatalf("Report: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"src/app.js:1:14 warning lint/suspicious/noDoubleEquals Use === instead of ==.",
		"fix (unsafe): Use ===",
		"src/app.js:3:1 error",
		"Checked 2 files: 2 findings (1 errors, 1 warnings, 1 fixable)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONReportRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := (JSON{}).Report(&buf, testRun()); err != nil {
		t.Fatalf("Report: %v", err)
	}

	var decoded Run
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Summary.Findings != 2 {
		t.Errorf("findings = %d", decoded.Summary.Findings)
	}
	if len(decoded.Files) != 2 || decoded.Files[0].Path != "src/app.js" {
		t.Errorf("files = %+v", decoded.Files)
	}
}

func TestJUnitReport(t *testing.T) {
	var buf bytes.Buffer
	if err := (JUnit{}).Report(&buf, testRun()); err != nil {
		t.Fatalf("Report: %v", err)
	}

	var suites junitSuites
	if err := xml.Unmarshal(buf.Bytes(), &suites); err != nil {
		t.Fatalf("invalid XML: %v", err)
	}
	if suites.Tests != 2 || suites.Failures != 1 {
		t.Errorf("tests/failures = %d/%d", suites.Tests, suites.Failures)
	}
	if len(suites.Suites) != 1 || len(suites.Suites[0].Cases) != 2 {
		t.Fatalf("suites = %+v", suites.Suites)
	}
	if n := len(suites.Suites[0].Cases[0].Failures); n != 2 {
		t.Errorf("first case failures = %d", n)
	}
}

func TestGitHubReport(t *testing.T) {
	var buf bytes.Buffer
	if err := (GitHub{}).Report(&buf, testRun()); err != nil {
		t.Fatalf("Report: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "::warning file=src/app.js,line=1,col=14,title=lint/suspicious/noDoubleEquals::Use === instead of ==.") {
		t.Errorf("missing warning annotation:\n%s", out)
	}
	if !strings.Contains(out, "::error file=src/app.js,line=3,col=1") {
		t.Errorf("missing error annotation:\n%s", out)
	}
}

func TestGitHubEscaping(t *testing.T) {
	got := escapeGitHub("50% done\nnext line")
	if got != "50%25 done%0Anext line" {
		t.Errorf("escaped = %q", got)
	}
}

func TestGitLabReport(t *testing.T) {
	var buf bytes.Buffer
	if err := (GitLab{}).Report(&buf, testRun()); err != nil {
		t.Fatalf("Report: %v", err)
	}

	var issues []gitlabIssue
	if err := json.Unmarshal(buf.Bytes(), &issues); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("issues = %d", len(issues))
	}
	if issues[0].Severity != "minor" || issues[1].Severity != "major" {
		t.Errorf("severities = %s %s", issues[0].Severity, issues[1].Severity)
	}
	if issues[0].Fingerprint == "" || issues[0].Fingerprint == issues[1].Fingerprint {
		t.Error("fingerprints missing or colliding")
	}
	if issues[0].Location.Lines.Begin != 1 {
		t.Errorf("line = %d", issues[0].Location.Lines.Begin)
	}
}

func TestOutputStdout(t *testing.T) {
	for _, path := range []string{"", "-"} {
		w, err := Output(path)
		if err != nil {
			t.Fatalf("Output(%q): %v", path, err)
		}
		if w != (nopCloser{os.Stdout}) {
			t.Errorf("Output(%q) is not stdout", path)
		}
		if err := w.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	}
}

func TestOutputGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json.gz")
	w, err := Output(path)
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if _, err := w.Write([]byte(`{"ok":true}`)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("not gzip: %v", err)
	}
	var out bytes.Buffer
	if _, err := out.ReadFrom(gz); err != nil {
		t.Fatal(err)
	}
	if out.String() != `{"ok":true}` {
		t.Errorf("decompressed = %q", out.String())
	}
}

func TestOutputPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	w, err := Output(path)
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if _, err := w.Write([]byte("data")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "data" {
		t.Errorf("file = %q", data)
	}
}
