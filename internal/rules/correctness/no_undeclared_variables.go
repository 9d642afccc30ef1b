// Package correctness contains rules flagging code that is wrong rather
// than merely suspicious.
package correctness

import (
	sitter "github.com/smacker/go-tree-sitter"

	"sift/internal/analyze"
	"sift/internal/services"
	"sift/internal/text"
	"sift/internal/tree"
)

// jsBuiltins are identifiers always available in JavaScript runtimes.
var jsBuiltins = map[string]bool{
	"Array": true, "Boolean": true, "Date": true, "Error": true,
	"JSON": true, "Map": true, "Math": true, "Number": true,
	"Object": true, "Promise": true, "Proxy": true, "Reflect": true,
	"RegExp": true, "Set": true, "String": true, "Symbol": true,
	"console": true, "fetch": true, "globalThis": true, "parseFloat": true,
	"parseInt": true, "require": true, "setInterval": true, "setTimeout": true,
	"structuredClone": true, "undefined": true,
}

// Register adds the package's rules to a registry.
func Register(reg *analyze.Registry) error {
	return analyze.Register[*sitter.Node, undeclaredCall, struct{}](reg, NoUndeclaredVariables{})
}

// undeclaredCall is the match state: one callee identifier that resolves
// nowhere.
type undeclaredCall struct {
	callee *sitter.Node
	name   string
}

// NoUndeclaredVariables flags calls to identifiers that are not declared in
// the file, not configured as globals, not runtime builtins, and not known
// to the workspace symbol index. It requires the symbol index service; on
// files where the index is not available the rule silently does not run.
type NoUndeclaredVariables struct{}

// Metadata implements analyze.Rule.
func (NoUndeclaredVariables) Metadata() analyze.RuleMetadata {
	return analyze.RuleMetadata{
		Group:     "correctness",
		Name:      "noUndeclaredVariables",
		Version:   "0.1.0",
		Languages: []tree.Language{tree.LangJavaScript, tree.LangTypeScript, tree.LangTSX},
	}
}

// RequiredServices implements analyze.ServiceRule.
func (NoUndeclaredVariables) RequiredServices() []string {
	return []string{services.SymbolIndexService}
}

// Match implements analyze.Rule.
func (NoUndeclaredVariables) Match(root *tree.Root) []*sitter.Node {
	return root.FindAll("call_expression")
}

// Run implements analyze.Rule.
func (NoUndeclaredVariables) Run(ctx *analyze.RuleContext[*sitter.Node, struct{}]) []undeclaredCall {
	callee := ctx.Query().ChildByFieldName("function")
	if callee == nil || callee.Type() != "identifier" {
		return nil
	}
	name := ctx.Root().Text(callee)

	if jsBuiltins[name] || ctx.IsGlobal(name) {
		return nil
	}
	if declaredInFile(ctx.Root(), name) {
		return nil
	}

	svc, ok := ctx.Service(services.SymbolIndexService)
	if !ok {
		return nil
	}
	index := svc.(*services.SymbolIndex)
	if index.Resolve(name) {
		return nil
	}

	return []undeclaredCall{{callee: callee, name: name}}
}

// Diagnostic implements analyze.DiagnosticRule.
func (r NoUndeclaredVariables) Diagnostic(ctx *analyze.RuleContext[*sitter.Node, struct{}], state undeclaredCall) *analyze.Diagnostic {
	return analyze.NewDiagnostic(
		r.Metadata().Category(),
		ctx.Root().Range(state.callee),
		"The "+state.name+" variable is undeclared.",
	).WithNote("Declare it, import it, or add it to the globals list in the configuration.")
}

// TextRange implements analyze.RangeRule.
func (NoUndeclaredVariables) TextRange(ctx *analyze.RuleContext[*sitter.Node, struct{}], state undeclaredCall) (text.Range, bool) {
	return ctx.Root().Range(state.callee), true
}

// declaredInFile reports whether name is bound anywhere in the file by a
// function declaration, a variable declarator, an import, or a parameter.
func declaredInFile(root *tree.Root, name string) bool {
	declaring := root.FindAll(
		"function_declaration",
		"generator_function_declaration",
		"class_declaration",
		"variable_declarator",
		"import_specifier",
		"import_clause",
		"namespace_import",
		"required_parameter",
		"formal_parameters",
	)
	for _, node := range declaring {
		switch node.Type() {
		case "variable_declarator", "function_declaration",
			"generator_function_declaration", "class_declaration":
			if n := node.ChildByFieldName("name"); n != nil && root.Text(n) == name {
				return true
			}
		default:
			for _, id := range identifiersIn(node) {
				if root.Text(id) == name {
					return true
				}
			}
		}
	}
	return false
}

func identifiersIn(node *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "identifier" {
			out = append(out, n)
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(node)
	return out
}
