// Package batch implements the mutation accumulator used by analysis rules
// to describe structural rewrites against one immutable tree snapshot.
// A Mutation collects edits, can be reduced to a single covering range plus
// replacement text for display, or committed to produce new source bytes.
package batch

import (
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"sift/internal/text"
	"sift/internal/tree"
)

// Mutation accumulates text edits against one tree snapshot.
// Edits may be added in any order; they are resolved in offset order.
// Overlapping edits are rejected when added.
type Mutation struct {
	root  *tree.Root
	edits []text.Edit
}

// Begin starts a new mutation against the given tree snapshot.
func Begin(root *tree.Root) *Mutation {
	return &Mutation{root: root}
}

// Root returns the snapshot the mutation was started against.
func (m *Mutation) Root() *tree.Root {
	return m.root
}

// Len returns the number of accumulated edits.
func (m *Mutation) Len() int {
	return len(m.edits)
}

// IsEmpty reports whether no edits have been accumulated.
func (m *Mutation) IsEmpty() bool {
	return len(m.edits) == 0
}

func (m *Mutation) add(e text.Edit) error {
	for _, prev := range m.edits {
		// Insertions at the same offset are ambiguous too; reject any
		// touching pair that is not strictly ordered.
		if e.Range.Overlaps(prev.Range) ||
			(e.Range.IsEmpty() && prev.Range.Contains(e.Range.Start)) ||
			(prev.Range.IsEmpty() && e.Range.Contains(prev.Range.Start)) {
			return fmt.Errorf("edit %s overlaps earlier edit %s", e.Range, prev.Range)
		}
	}
	m.edits = append(m.edits, e)
	return nil
}

// Replace replaces the source text of a node with new text.
func (m *Mutation) Replace(n *sitter.Node, newText string) error {
	return m.add(text.Edit{Range: m.root.Range(n), Text: newText})
}

// Remove deletes the source text of a node.
func (m *Mutation) Remove(n *sitter.Node) error {
	return m.add(text.Edit{Range: m.root.Range(n)})
}

// RemoveWithLeadingSpace deletes a node together with any whitespace
// immediately before it, so removing an attribute or list element does not
// leave a double space behind.
func (m *Mutation) RemoveWithLeadingSpace(n *sitter.Node) error {
	rng := m.root.Range(n)
	src := m.root.Source()
	for rng.Start > 0 && (src[rng.Start-1] == ' ' || src[rng.Start-1] == '\t') {
		rng.Start--
	}
	return m.add(text.Edit{Range: rng})
}

// InsertBefore inserts text immediately before a node.
func (m *Mutation) InsertBefore(n *sitter.Node, newText string) error {
	off := n.StartByte()
	return m.add(text.Edit{Range: text.NewRange(off, off), Text: newText})
}

// InsertAfter inserts text immediately after a node.
func (m *Mutation) InsertAfter(n *sitter.Node, newText string) error {
	off := n.EndByte()
	return m.add(text.Edit{Range: text.NewRange(off, off), Text: newText})
}

// InsertAt inserts text at a raw byte offset.
func (m *Mutation) InsertAt(offset uint32, newText string) error {
	return m.add(text.Edit{Range: text.NewRange(offset, offset), Text: newText})
}

func (m *Mutation) sorted() []text.Edit {
	out := make([]text.Edit, len(m.edits))
	copy(out, m.edits)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Range.Start < out[j].Range.Start
	})
	return out
}

// AsRangeAndEdit reduces the mutation to a single covering range and its
// replacement text. A nil or empty mutation reduces to an empty range and
// empty text; this never fails.
func (m *Mutation) AsRangeAndEdit() (text.Range, string) {
	if m == nil || len(m.edits) == 0 {
		return text.Range{}, ""
	}

	edits := m.sorted()
	cover := edits[0].Range
	for _, e := range edits[1:] {
		cover = cover.Cover(e.Range)
	}

	src := m.root.Source()
	var b strings.Builder
	pos := cover.Start
	for _, e := range edits {
		b.Write(src[pos:e.Range.Start])
		b.WriteString(e.Text)
		pos = e.Range.End
	}
	b.Write(src[pos:cover.End])

	return cover, b.String()
}

// Commit applies all accumulated edits and returns the rewritten source
// bytes. The snapshot itself is left untouched.
func (m *Mutation) Commit() []byte {
	src := m.root.Source()
	if len(m.edits) == 0 {
		out := make([]byte, len(src))
		copy(out, src)
		return out
	}

	var b []byte
	pos := uint32(0)
	for _, e := range m.sorted() {
		b = append(b, src[pos:e.Range.Start]...)
		b = append(b, e.Text...)
		pos = e.Range.End
	}
	b = append(b, src[pos:]...)
	return b
}
