// Package codemod contains pure rewrite passes: rules that never raise a
// diagnostic, only propose transformations for direct application.
package codemod

import (
	sitter "github.com/smacker/go-tree-sitter"

	"sift/internal/analyze"
	"sift/internal/batch"
	"sift/internal/tree"
)

// Register adds the package's rules to a registry.
func Register(reg *analyze.Registry) error {
	return analyze.Register[*sitter.Node, varDeclaration, struct{}](reg, UseLetDeclarations{})
}

// varDeclaration is the match state: the var keyword token to rewrite.
type varDeclaration struct {
	keyword *sitter.Node
}

// UseLetDeclarations rewrites var declarations to let. It is a codemod:
// opt-in, no diagnostic, consumed through Transformations only.
type UseLetDeclarations struct{}

// Metadata implements analyze.Rule.
func (UseLetDeclarations) Metadata() analyze.RuleMetadata {
	return analyze.RuleMetadata{
		Group:     "codemod",
		Name:      "useLetDeclarations",
		Version:   "0.1.0",
		Languages: []tree.Language{tree.LangJavaScript, tree.LangTypeScript, tree.LangTSX},
	}
}

// Match implements analyze.Rule.
func (UseLetDeclarations) Match(root *tree.Root) []*sitter.Node {
	return root.FindAll("variable_declaration")
}

// Run implements analyze.Rule.
func (UseLetDeclarations) Run(ctx *analyze.RuleContext[*sitter.Node, struct{}]) []varDeclaration {
	node := ctx.Query()
	keyword := node.Child(0)
	if keyword == nil || ctx.Root().Text(keyword) != "var" {
		return nil
	}
	return []varDeclaration{{keyword: keyword}}
}

// Transform implements analyze.TransformRule.
func (UseLetDeclarations) Transform(ctx *analyze.RuleContext[*sitter.Node, struct{}], state varDeclaration) *batch.Mutation {
	m := batch.Begin(ctx.Root())
	if err := m.Replace(state.keyword, "let"); err != nil {
		return nil
	}
	return m
}
