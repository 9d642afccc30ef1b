// Package suppress synthesizes the per-language comment edits that silence
// a specific finding at a specific location. The analyze core decides when
// to offer a suppression; this package decides how the marker is spelled
// and where it is inserted.
package suppress

import (
	"fmt"

	"sift/internal/analyze"
	"sift/internal/batch"
	"sift/internal/text"
	"sift/internal/tree"
)

// Marker is the comment token that silences the finding on the next line.
const Marker = "sift-ignore"

// Inline implements analyze.SuppressionAction by inserting a line comment
// above the line containing the anchor range, preserving its indentation.
type Inline struct{}

// New creates the inline suppression capability.
func New() *Inline {
	return &Inline{}
}

// Suppress synthesizes the suppression edit for a rule category at the
// given anchor, or nil when the anchor falls outside the source buffer.
func (i *Inline) Suppress(root *tree.Root, anchor text.Range, ruleCategory string) *analyze.SuppressionEdit {
	src := root.Source()
	if anchor.Start > uint32(len(src)) {
		return nil
	}

	lineStart := root.Lines().LineStart(anchor.Start)

	// Reuse the anchored line's indentation for the inserted comment.
	indentEnd := lineStart
	for indentEnd < uint32(len(src)) && (src[indentEnd] == ' ' || src[indentEnd] == '\t') {
		indentEnd++
	}
	indent := string(src[lineStart:indentEnd])

	comment := fmt.Sprintf("%s%s %s: %s\n",
		indent, tree.LineComment(root.Language()), Marker, ruleCategory)

	m := batch.Begin(root)
	if err := m.InsertAt(lineStart, comment); err != nil {
		return nil
	}

	return &analyze.SuppressionEdit{
		Mutation: m,
		Message:  fmt.Sprintf("Suppress rule %s", ruleCategory),
	}
}
