// Package tree wraps tree-sitter parsing behind an immutable snapshot type.
// A Root binds a parsed syntax tree to the source bytes it was parsed from;
// everything downstream (rules, mutation batches, reporters) reads through it.
package tree

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"sift/internal/text"
)

// Language identifies a supported source language.
type Language string

const (
	// LangGo for Go source files
	LangGo Language = "go"
	// LangJavaScript for JavaScript source files
	LangJavaScript Language = "javascript"
	// LangTypeScript for TypeScript source files
	LangTypeScript Language = "typescript"
	// LangTSX for TSX/JSX source files
	LangTSX Language = "tsx"
	// LangPython for Python source files
	LangPython Language = "python"
)

// LanguageFromExtension maps a file extension (with leading dot) to a language.
func LanguageFromExtension(ext string) (Language, bool) {
	switch ext {
	case ".go":
		return LangGo, true
	case ".js", ".mjs", ".cjs":
		return LangJavaScript, true
	case ".ts", ".mts", ".cts":
		return LangTypeScript, true
	case ".tsx", ".jsx":
		return LangTSX, true
	case ".py":
		return LangPython, true
	default:
		return "", false
	}
}

// LineComment returns the single-line comment leader for a language.
func LineComment(lang Language) string {
	if lang == LangPython {
		return "#"
	}
	return "//"
}

func sitterLanguage(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangGo:
		return golang.GetLanguage(), nil
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	case LangPython:
		return python.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// Parser wraps a tree-sitter parser for multi-language parsing.
// A Parser is not safe for concurrent use; create one per goroutine.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new parser.
func NewParser() *Parser {
	return &Parser{parser: sitter.NewParser()}
}

// Parse parses source bytes and returns an immutable tree snapshot.
func (p *Parser) Parse(ctx context.Context, source []byte, lang Language) (*Root, error) {
	tsLang, err := sitterLanguage(lang)
	if err != nil {
		return nil, err
	}

	p.parser.SetLanguage(tsLang)
	t, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return &Root{
		node:   t.RootNode(),
		source: source,
		lang:   lang,
		lines:  text.NewLineIndex(source),
	}, nil
}

// Root is one immutable parse result: the tree root node plus the source
// bytes it was parsed from. Roots are shared read-only across an analysis
// pass and must never be mutated in place; rewrites go through a mutation
// batch that produces new source bytes.
type Root struct {
	node   *sitter.Node
	source []byte
	lang   Language
	lines  *text.LineIndex
}

// Node returns the root syntax node.
func (r *Root) Node() *sitter.Node {
	return r.node
}

// Source returns the source bytes backing the tree.
func (r *Root) Source() []byte {
	return r.source
}

// Language returns the language the tree was parsed as.
func (r *Root) Language() Language {
	return r.lang
}

// Lines returns the line index for the source bytes.
func (r *Root) Lines() *text.LineIndex {
	return r.lines
}

// Text returns the source text covered by a node.
func (r *Root) Text(n *sitter.Node) string {
	return n.Content(r.source)
}

// Range returns the byte range covered by a node.
func (r *Root) Range(n *sitter.Node) text.Range {
	return text.NewRange(n.StartByte(), n.EndByte())
}

// FindAll returns every node in the tree whose type is in types,
// in document order.
func (r *Root) FindAll(types ...string) []*sitter.Node {
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[t] = true
	}

	var out []*sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if want[n.Type()] {
			out = append(out, n)
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(r.node)
	return out
}
