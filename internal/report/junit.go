package report

import (
	"encoding/xml"
	"fmt"
	"io"

	"sift/internal/analyze"
)

// JUnit renders the run as a JUnit XML test suite, one test case per file.
type JUnit struct{}

type junitSuites struct {
	XMLName  xml.Name     `xml:"testsuites"`
	Name     string       `xml:"name,attr"`
	Tests    int          `xml:"tests,attr"`
	Failures int          `xml:"failures,attr"`
	Suites   []junitSuite `xml:"testsuite"`
}

type junitSuite struct {
	Name     string      `xml:"name,attr"`
	Tests    int         `xml:"tests,attr"`
	Failures int         `xml:"failures,attr"`
	Cases    []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name     string         `xml:"name,attr"`
	Class    string         `xml:"classname,attr"`
	Failures []junitFailure `xml:"failure,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// Report implements Reporter.
func (JUnit) Report(w io.Writer, run *Run) error {
	suite := junitSuite{Name: "sift"}
	for _, file := range run.Files {
		c := junitCase{Name: file.Path, Class: string(file.Language)}
		for _, finding := range file.Findings {
			severity := "warning"
			if finding.Diagnostic.Severity == analyze.SeverityError {
				severity = "error"
			}
			c.Failures = append(c.Failures, junitFailure{
				Message: finding.Diagnostic.Message,
				Type:    severity,
				Body: fmt.Sprintf("%s at %s:%d:%d",
					finding.Diagnostic.Category, file.Path, finding.Line, finding.Column),
			})
		}
		suite.Tests++
		if len(c.Failures) > 0 {
			suite.Failures++
		}
		suite.Cases = append(suite.Cases, c)
	}

	out := junitSuites{
		Name:     "sift",
		Tests:    suite.Tests,
		Failures: suite.Failures,
		Suites:   []junitSuite{suite},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
