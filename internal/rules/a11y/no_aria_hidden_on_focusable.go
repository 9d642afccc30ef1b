// Package a11y contains accessibility rules for JSX sources.
package a11y

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"sift/internal/analyze"
	"sift/internal/batch"
	"sift/internal/text"
	"sift/internal/tree"
)

// Register adds the package's rules to a registry.
func Register(reg *analyze.Registry) error {
	return analyze.Register[*sitter.Node, hiddenFocusable, struct{}](reg, NoAriaHiddenOnFocusable{})
}

// hiddenFocusable is the match state: the offending aria-hidden attribute.
type hiddenFocusable struct {
	attr *sitter.Node
}

// NoAriaHiddenOnFocusable flags aria-hidden="true" on elements reachable by
// keyboard. Hiding a focusable element from screen readers while leaving it
// in the tab order confuses screen reader users.
type NoAriaHiddenOnFocusable struct{}

// Metadata implements analyze.Rule.
func (NoAriaHiddenOnFocusable) Metadata() analyze.RuleMetadata {
	return analyze.RuleMetadata{
		Group:       "a11y",
		Name:        "noAriaHiddenOnFocusable",
		Version:     "0.1.0",
		Recommended: true,
		FixKind:     analyze.FixUnsafe,
		Languages:   []tree.Language{tree.LangTSX},
	}
}

// Match implements analyze.Rule.
func (NoAriaHiddenOnFocusable) Match(root *tree.Root) []*sitter.Node {
	return root.FindAll("jsx_self_closing_element", "jsx_opening_element")
}

// Run implements analyze.Rule.
func (NoAriaHiddenOnFocusable) Run(ctx *analyze.RuleContext[*sitter.Node, struct{}]) []hiddenFocusable {
	root := ctx.Root()
	element := ctx.Query()

	hidden := findAttribute(root, element, "aria-hidden")
	if hidden == nil {
		return nil
	}
	if v, ok := staticAttributeValue(root, hidden); !ok || v == "false" {
		return nil
	}

	if tabIndex := findAttribute(root, element, "tabIndex"); tabIndex != nil {
		v, ok := staticAttributeValue(root, tabIndex)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return nil
		}
		return []hiddenFocusable{{attr: hidden}}
	}

	if isInherentlyFocusable(root, element) {
		return []hiddenFocusable{{attr: hidden}}
	}
	return nil
}

// Diagnostic implements analyze.DiagnosticRule.
func (r NoAriaHiddenOnFocusable) Diagnostic(ctx *analyze.RuleContext[*sitter.Node, struct{}], state hiddenFocusable) *analyze.Diagnostic {
	return analyze.NewDiagnostic(
		r.Metadata().Category(),
		ctx.Root().Range(ctx.Query()),
		`Disallow aria-hidden="true" from being set on focusable elements.`,
	).WithNote("aria-hidden should not be set to true on focusable elements because this can lead to confusing behavior for screen reader users.")
}

// Action implements analyze.ActionRule.
func (NoAriaHiddenOnFocusable) Action(ctx *analyze.RuleContext[*sitter.Node, struct{}], state hiddenFocusable) *analyze.RuleAction {
	m := batch.Begin(ctx.Root())
	if err := m.RemoveWithLeadingSpace(state.attr); err != nil {
		return nil
	}
	return &analyze.RuleAction{
		Category:      analyze.CategoryQuickFix,
		Applicability: analyze.ApplicabilityMaybeIncorrect,
		Message:       "Remove the aria-hidden attribute from the element.",
		Mutation:      m,
	}
}

// TextRange implements analyze.RangeRule.
func (NoAriaHiddenOnFocusable) TextRange(ctx *analyze.RuleContext[*sitter.Node, struct{}], state hiddenFocusable) (text.Range, bool) {
	return ctx.Root().Range(state.attr), true
}

// findAttribute returns the jsx_attribute node with the given name, if any.
func findAttribute(root *tree.Root, element *sitter.Node, name string) *sitter.Node {
	for i := 0; i < int(element.ChildCount()); i++ {
		child := element.Child(i)
		if child.Type() != "jsx_attribute" {
			continue
		}
		if nameNode := child.Child(0); nameNode != nil && root.Text(nameNode) == name {
			return child
		}
	}
	return nil
}

// staticAttributeValue returns the literal string value of an attribute.
// Attributes with expression values are not static; a bare attribute with
// no value means "true" in JSX.
func staticAttributeValue(root *tree.Root, attr *sitter.Node) (string, bool) {
	if attr.ChildCount() == 1 {
		return "true", true
	}
	value := attr.Child(int(attr.ChildCount()) - 1)
	switch value.Type() {
	case "string":
		return strings.Trim(root.Text(value), `"'`), true
	case "jsx_expression":
		// {0}, {-1} and similar numeric expressions are static enough.
		inner := strings.Trim(root.Text(value), "{}")
		if _, err := strconv.Atoi(strings.TrimSpace(inner)); err == nil {
			return strings.TrimSpace(inner), true
		}
		return "", false
	default:
		return "", false
	}
}

// isInherentlyFocusable reports whether the element is focusable without an
// explicit tab index.
func isInherentlyFocusable(root *tree.Root, element *sitter.Node) bool {
	nameNode := element.ChildByFieldName("name")
	if nameNode == nil {
		return false
	}
	switch root.Text(nameNode) {
	case "button", "input", "select", "textarea", "summary":
		return true
	case "a", "area":
		return findAttribute(root, element, "href") != nil
	default:
		return false
	}
}
