package analyze

import (
	"sift/internal/batch"
	"sift/internal/text"
	"sift/internal/tree"
)

// RuleMetadata describes a rule to the registry and the reporting layer.
type RuleMetadata struct {
	// Group is the rule group, e.g. "style" or "a11y".
	Group string `json:"group"`
	// Name is the rule name within its group, e.g. "noDoubleEquals".
	Name string `json:"name"`
	// Version is the release the rule first shipped in.
	Version string `json:"version,omitempty"`
	// Recommended marks rules enabled by the default configuration.
	Recommended bool `json:"recommended,omitempty"`
	// FixKind is the safety level the rule's own fix declares.
	FixKind FixKind `json:"fixKind,omitempty"`
	// Languages restricts which source languages the rule runs on;
	// empty means all.
	Languages []tree.Language `json:"languages,omitempty"`
}

// Identity returns the rule's group/name pair.
func (m RuleMetadata) Identity() RuleIdentity {
	return RuleIdentity{Group: m.Group, Name: m.Name}
}

// Category returns the stable diagnostic category for the rule.
func (m RuleMetadata) Category() string {
	return "lint/" + m.Group + "/" + m.Name
}

// AppliesTo reports whether the rule runs on the given language.
func (m RuleMetadata) AppliesTo(lang tree.Language) bool {
	if len(m.Languages) == 0 {
		return true
	}
	for _, l := range m.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Rule is the contract every analysis rule implements. A rule is generic
// over three associated types:
//
//   - Q, the query: the shape of tree fragment the rule matches against
//   - S, the state: rule-specific data attached to a successful match
//   - O, the options: rule-specific configuration; the zero value is the
//     default
//
// Match evaluates the query against a tree and returns the matched
// fragments; Run turns one matched fragment into zero or more states, each
// of which becomes its own signal. The remaining hooks are optional and
// declared through the interfaces below; all of them are pure functions of
// the context and state.
type Rule[Q, S, O any] interface {
	Metadata() RuleMetadata
	Match(root *tree.Root) []Q
	Run(ctx *RuleContext[Q, O]) []S
}

// DiagnosticRule is implemented by rules that raise a diagnostic.
type DiagnosticRule[Q, S, O any] interface {
	Diagnostic(ctx *RuleContext[Q, O], state S) *Diagnostic
}

// ActionRule is implemented by rules that propose a fix.
type ActionRule[Q, S, O any] interface {
	Action(ctx *RuleContext[Q, O], state S) *RuleAction
}

// RangeRule is implemented by rules that expose an anchor range for
// suppression comments.
type RangeRule[Q, S, O any] interface {
	TextRange(ctx *RuleContext[Q, O], state S) (text.Range, bool)
}

// SuppressRule is implemented by rules that need to customize how the
// suppression capability is invoked. Rules without it get the capability's
// default edit for their anchor range.
type SuppressRule[Q, S, O any] interface {
	Suppress(ctx *RuleContext[Q, O], anchor text.Range, capability SuppressionAction) *SuppressionEdit
}

// TransformRule is implemented by rules that produce a pure rewrite with no
// diagnostic, such as codemod passes.
type TransformRule[Q, S, O any] interface {
	Transform(ctx *RuleContext[Q, O], state S) *batch.Mutation
}

// ServiceRule is implemented by rules that require named services from the
// service bag. When any required service is missing, the rule's context
// cannot be constructed and the rule silently yields no results.
type ServiceRule interface {
	RequiredServices() []string
}

// RuleAction is the fix a rule's action hook proposes, before the analyzer
// injects the rule identity and applies configuration overrides.
type RuleAction struct {
	Category      ActionCategory
	Applicability Applicability
	Message       string
	Mutation      *batch.Mutation
}

// SuppressionEdit is the edit a suppression capability synthesizes.
type SuppressionEdit struct {
	Mutation *batch.Mutation
	Message  string
}

// SuppressionAction is the injected, language-specific strategy that spells
// a suppression marker and decides where to insert it. The analyzer decides
// when to offer a suppression and how to wrap it into an Action; the
// capability decides what the edit looks like.
type SuppressionAction interface {
	// Suppress returns the edit appending a suppression marker for the
	// given rule category at the given anchor range, or nil when no
	// suppression can be synthesized there.
	Suppress(root *tree.Root, anchor text.Range, ruleCategory string) *SuppressionEdit
}
