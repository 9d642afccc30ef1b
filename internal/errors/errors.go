// Package errors defines stable error codes for sift failure modes, with
// suggested follow-up commands surfaced by the CLI.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ParseFailed indicates a source file could not be parsed
	ParseFailed ErrorCode = "PARSE_FAILED"
	// UnsupportedLanguage indicates no grammar is available for a file
	UnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
	// ConfigInvalid indicates the configuration file failed validation
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// RuleUnknown indicates configuration references a rule not in the registry
	RuleUnknown ErrorCode = "RULE_UNKNOWN"
	// IndexMissing indicates the SCIP symbol index was not found
	IndexMissing ErrorCode = "INDEX_MISSING"
	// CacheUnavailable indicates the result cache database could not be opened
	CacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of suggested follow-up
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested follow-up for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// SiftError represents a sift error with code, message, and suggestions
type SiftError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new SiftError
func New(code ErrorCode, message string, cause error) *SiftError {
	return &SiftError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *SiftError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *SiftError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *SiftError) WithDetails(details interface{}) *SiftError {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested follow-ups
var ErrorActions = map[ErrorCode][]FixAction{
	IndexMissing: {
		{
			Type:        RunCommand,
			Command:     "scip-go --output .sift/index.scip",
			Safe:        true,
			Description: "Generate a SCIP symbol index for cross-file rules",
		},
	},
	ConfigInvalid: {
		{
			Type:        RunCommand,
			Command:     "sift rules",
			Safe:        true,
			Description: "List known rules and their configuration keys",
		},
	},
	RuleUnknown: {
		{
			Type:        RunCommand,
			Command:     "sift rules",
			Safe:        true,
			Description: "List known rules",
		},
	},
	CacheUnavailable: {
		{
			Type:        RunCommand,
			Command:     "rm -rf .sift/sift.db && sift check",
			Safe:        false,
			Description: "Drop and rebuild the result cache",
		},
	},
}

// GetSuggestedFixes returns suggested follow-ups for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
