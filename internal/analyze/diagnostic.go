package analyze

import "sift/internal/text"

// Severity represents the severity of a diagnostic
type Severity string

const (
	// SeverityError for findings that should fail a run
	SeverityError Severity = "error"
	// SeverityWarning for findings that are reported but do not fail a run
	SeverityWarning Severity = "warning"
	// SeverityInfo for informational findings
	SeverityInfo Severity = "info"
)

// Diagnostic is a single finding raised by a rule against a source range.
type Diagnostic struct {
	// Category is the stable rule category, e.g. "lint/style/noDoubleEquals".
	Category string `json:"category"`
	// Range is the byte range the finding points at.
	Range text.Range `json:"range"`
	// Message is the primary human-readable message.
	Message string `json:"message"`
	// Notes hold secondary explanation lines.
	Notes []string `json:"notes,omitempty"`
	// Severity defaults to warning when unset.
	Severity Severity `json:"severity,omitempty"`
}

// NewDiagnostic creates a diagnostic with the given category, range and message.
func NewDiagnostic(category string, rng text.Range, message string) *Diagnostic {
	return &Diagnostic{
		Category: category,
		Range:    rng,
		Message:  message,
		Severity: SeverityWarning,
	}
}

// WithNote appends a secondary note line and returns the diagnostic.
func (d *Diagnostic) WithNote(note string) *Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithSeverity sets the severity and returns the diagnostic.
func (d *Diagnostic) WithSeverity(s Severity) *Diagnostic {
	d.Severity = s
	return d
}

// DiagnosticFromError wraps an arbitrary error value into a diagnostic.
// Errors that already are diagnostics pass through unchanged.
func DiagnosticFromError(err error) *Diagnostic {
	if err == nil {
		return nil
	}
	if de, ok := err.(*DiagnosticError); ok {
		return de.Diagnostic
	}
	return &Diagnostic{
		Category: "internalError/analyze",
		Message:  err.Error(),
		Severity: SeverityError,
	}
}

// DiagnosticError adapts a Diagnostic to the error interface so factory
// closures can return rich findings through a plain error value.
type DiagnosticError struct {
	Diagnostic *Diagnostic
}

// Error implements the error interface.
func (e *DiagnosticError) Error() string {
	return e.Diagnostic.Message
}
