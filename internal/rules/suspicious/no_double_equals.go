// Package suspicious contains rules flagging code that is likely, but not
// certainly, a mistake.
package suspicious

import (
	sitter "github.com/smacker/go-tree-sitter"

	"sift/internal/analyze"
	"sift/internal/batch"
	"sift/internal/text"
	"sift/internal/tree"
)

// NoDoubleEqualsOptions configures the noDoubleEquals rule.
type NoDoubleEqualsOptions struct {
	// IgnoreNull allows == and != when one operand is the null literal,
	// where loose equality is a common idiom for null-or-undefined checks.
	IgnoreNull bool `yaml:"ignoreNull" json:"ignoreNull" toml:"ignoreNull"`
}

// Register adds the package's rules to a registry.
func Register(reg *analyze.Registry) error {
	return analyze.Register[*sitter.Node, looseEquality, NoDoubleEqualsOptions](reg, NoDoubleEquals{})
}

// looseEquality is the match state: the operator token of one loose
// comparison.
type looseEquality struct {
	operator *sitter.Node
}

// NoDoubleEquals flags the == and != operators in JavaScript-family
// sources and proposes the strict equivalents.
type NoDoubleEquals struct{}

// Metadata implements analyze.Rule.
func (NoDoubleEquals) Metadata() analyze.RuleMetadata {
	return analyze.RuleMetadata{
		Group:       "suspicious",
		Name:        "noDoubleEquals",
		Version:     "0.1.0",
		Recommended: true,
		FixKind:     analyze.FixUnsafe,
		Languages:   []tree.Language{tree.LangJavaScript, tree.LangTypeScript, tree.LangTSX},
	}
}

// Match implements analyze.Rule.
func (NoDoubleEquals) Match(root *tree.Root) []*sitter.Node {
	return root.FindAll("binary_expression")
}

// Run implements analyze.Rule.
func (NoDoubleEquals) Run(ctx *analyze.RuleContext[*sitter.Node, NoDoubleEqualsOptions]) []looseEquality {
	node := ctx.Query()
	op := node.ChildByFieldName("operator")
	if op == nil {
		return nil
	}
	switch ctx.Root().Text(op) {
	case "==", "!=":
	default:
		return nil
	}

	if ctx.Options().IgnoreNull {
		left := node.ChildByFieldName("left")
		right := node.ChildByFieldName("right")
		if (left != nil && left.Type() == "null") || (right != nil && right.Type() == "null") {
			return nil
		}
	}

	return []looseEquality{{operator: op}}
}

// Diagnostic implements analyze.DiagnosticRule.
func (r NoDoubleEquals) Diagnostic(ctx *analyze.RuleContext[*sitter.Node, NoDoubleEqualsOptions], state looseEquality) *analyze.Diagnostic {
	op := ctx.Root().Text(state.operator)
	return analyze.NewDiagnostic(
		r.Metadata().Category(),
		ctx.Root().Range(state.operator),
		"Use "+op+"= instead of "+op+".",
	).WithNote(op + " performs type coercion, which is a frequent source of bugs.")
}

// Action implements analyze.ActionRule.
func (NoDoubleEquals) Action(ctx *analyze.RuleContext[*sitter.Node, NoDoubleEqualsOptions], state looseEquality) *analyze.RuleAction {
	op := ctx.Root().Text(state.operator)
	m := batch.Begin(ctx.Root())
	if err := m.Replace(state.operator, op+"="); err != nil {
		return nil
	}
	return &analyze.RuleAction{
		Category:      analyze.CategoryQuickFix,
		Applicability: analyze.ApplicabilityMaybeIncorrect,
		Message:       "Use " + op + "=",
		Mutation:      m,
	}
}

// TextRange implements analyze.RangeRule.
func (NoDoubleEquals) TextRange(ctx *analyze.RuleContext[*sitter.Node, NoDoubleEqualsOptions], state looseEquality) (text.Range, bool) {
	return ctx.Root().Range(state.operator), true
}
