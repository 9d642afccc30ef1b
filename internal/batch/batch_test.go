package batch

import (
	"context"
	"testing"

	"sift/internal/text"
	"sift/internal/tree"
)

func parseJS(t *testing.T, source string) *tree.Root {
	t.Helper()
	root, err := tree.NewParser().Parse(context.Background(), []byte(source), tree.LangJavaScript)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return root
}

func TestReplaceAndCommit(t *testing.T) {
	root := parseJS(t, "var x = 1;\n")
	decl := root.FindAll("variable_declaration")
	if len(decl) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(decl))
	}
	kw := decl[0].Child(0)
	if kw.Type() != "var" {
		t.Fatalf("first child = %s, want var keyword", kw.Type())
	}

	m := Begin(root)
	if err := m.Replace(kw, "let"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got := string(m.Commit()); got != "let x = 1;\n" {
		t.Errorf("Commit = %q, want %q", got, "let x = 1;\n")
	}
	// The snapshot is untouched.
	if got := string(root.Source()); got != "var x = 1;\n" {
		t.Errorf("source mutated in place: %q", got)
	}
}

func TestOverlappingEditsRejected(t *testing.T) {
	root := parseJS(t, "var x = 1;\n")
	decl := root.FindAll("variable_declaration")[0]

	m := Begin(root)
	if err := m.Replace(decl, "let x = 1;"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if err := m.Replace(decl.Child(0), "const"); err == nil {
		t.Error("overlapping edit accepted")
	}
	// Insertion inside an edited range is ambiguous too.
	if err := m.InsertAt(4, "y"); err == nil {
		t.Error("insertion inside edited range accepted")
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d after rejected edits, want 1", m.Len())
	}
}

func TestSameOffsetInsertionsRejected(t *testing.T) {
	root := parseJS(t, "x;\n")
	m := Begin(root)
	if err := m.InsertAt(0, "a"); err != nil {
		t.Fatalf("InsertAt: %v", err)
	}
	if err := m.InsertAt(0, "b"); err == nil {
		t.Error("second insertion at same offset accepted")
	}
}

func TestCommitAppliesEditsInOffsetOrder(t *testing.T) {
	root := parseJS(t, "a; b; c;\n")
	ids := root.FindAll("identifier")
	if len(ids) != 3 {
		t.Fatalf("expected 3 identifiers, got %d", len(ids))
	}

	// Add out of order; commit resolves by offset.
	m := Begin(root)
	if err := m.Replace(ids[2], "z"); err != nil {
		t.Fatal(err)
	}
	if err := m.Replace(ids[0], "x"); err != nil {
		t.Fatal(err)
	}
	if got := string(m.Commit()); got != "x; b; z;\n" {
		t.Errorf("Commit = %q, want %q", got, "x; b; z;\n")
	}
}

func TestRemoveWithLeadingSpace(t *testing.T) {
	root := parseJS(t, "f(a, b);\n")
	ids := root.FindAll("identifier")
	// ids: f, a, b
	if len(ids) != 3 {
		t.Fatalf("expected 3 identifiers, got %d", len(ids))
	}

	m := Begin(root)
	if err := m.RemoveWithLeadingSpace(ids[2]); err != nil {
		t.Fatal(err)
	}
	if got := string(m.Commit()); got != "f(a,);\n" {
		t.Errorf("Commit = %q, want %q", got, "f(a,);\n")
	}
}

func TestAsRangeAndEdit(t *testing.T) {
	root := parseJS(t, "a; b; c;\n")
	ids := root.FindAll("identifier")

	m := Begin(root)
	if err := m.Replace(ids[0], "x"); err != nil {
		t.Fatal(err)
	}
	if err := m.Replace(ids[2], "z"); err != nil {
		t.Fatal(err)
	}

	rng, edit := m.AsRangeAndEdit()
	if rng != text.NewRange(0, 7) {
		t.Errorf("cover range = %v, want 0..7", rng)
	}
	if edit != "x; b; z" {
		t.Errorf("edit = %q, want %q", edit, "x; b; z")
	}
}

func TestAsRangeAndEditEmpty(t *testing.T) {
	root := parseJS(t, "a;\n")
	rng, edit := Begin(root).AsRangeAndEdit()
	if rng != (text.Range{}) || edit != "" {
		t.Errorf("empty mutation = %v %q, want zero range and empty text", rng, edit)
	}
}

func TestAsRangeAndEditNilMutation(t *testing.T) {
	var m *Mutation
	rng, edit := m.AsRangeAndEdit()
	if rng != (text.Range{}) || edit != "" {
		t.Errorf("nil mutation = %v %q, want zero range and empty text", rng, edit)
	}
}

func TestCommitEmptyCopiesSource(t *testing.T) {
	root := parseJS(t, "a;\n")
	out := Begin(root).Commit()
	if string(out) != "a;\n" {
		t.Errorf("Commit = %q", out)
	}
	out[0] = 'z'
	if string(root.Source()) != "a;\n" {
		t.Error("Commit shares the source buffer")
	}
}
