package analyze

import "sift/internal/batch"

// Applicability classifies how safe it is to apply a fix automatically.
type Applicability string

const (
	// ApplicabilityAlways marks fixes that are always correct and may be
	// applied without review.
	ApplicabilityAlways Applicability = "always"
	// ApplicabilityMaybeIncorrect marks fixes that may change behavior and
	// need review before applying.
	ApplicabilityMaybeIncorrect Applicability = "maybeIncorrect"
)

// ActionCategory classifies a proposed action.
type ActionCategory string

const (
	// CategoryQuickFix for fixes attached to a diagnostic
	CategoryQuickFix ActionCategory = "quickfix"
	// CategorySuppression for actions that silence a finding in place
	CategorySuppression ActionCategory = "suppression"
	// CategoryRefactor for standalone refactorings with no diagnostic
	CategoryRefactor ActionCategory = "refactor"
)

// FixKind is the per-rule configured fix policy.
type FixKind string

const (
	// FixNone disables the rule's fix regardless of what the rule produces
	FixNone FixKind = "none"
	// FixSafe forces the fix to report applicability always
	FixSafe FixKind = "safe"
	// FixUnsafe forces the fix to report applicability maybe-incorrect
	FixUnsafe FixKind = "unsafe"
)

// RuleIdentity names the rule an action originated from.
type RuleIdentity struct {
	Group string `json:"group"`
	Name  string `json:"name"`
}

// Action is a proposed edit returned by the analyzer, generated from a
// rule's fix or suppression hook with the rule identity injected.
type Action struct {
	// Rule identifies the originating rule; nil for actions produced
	// outside the rule machinery.
	Rule *RuleIdentity
	// Category classifies the action.
	Category ActionCategory
	// Applicability is the effective safety level after configuration
	// overrides have been applied.
	Applicability Applicability
	// Message describes the action to the user.
	Message string
	// Mutation holds the proposed tree edits.
	Mutation *batch.Mutation
}

// IsSuppression reports whether the action silences a finding rather than
// fixing it.
func (a Action) IsSuppression() bool {
	return a.Category == CategorySuppression
}

// Transformation is a pure rewrite with no diagnostic attached, used by
// codemod-style passes that only produce edits.
type Transformation struct {
	Mutation *batch.Mutation
}
