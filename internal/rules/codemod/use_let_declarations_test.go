package codemod

import (
	"context"
	"testing"

	"sift/internal/analyze"
	"sift/internal/tree"
)

func run(t *testing.T, source string) []analyze.Signal {
	t.Helper()
	reg := analyze.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	root, err := tree.NewParser().Parse(context.Background(), []byte(source), tree.LangJavaScript)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return reg.Run(root, analyze.NewServiceBag(), nil, &analyze.Options{}, nil)
}

func TestRewritesVarToLet(t *testing.T) {
	signals := run(t, "var x = 1;\n")
	if len(signals) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(signals))
	}

	signal := signals[0]
	if diag := signal.Diagnostic(); diag != nil {
		t.Errorf("codemod raised a diagnostic: %v", diag)
	}
	if n := signal.Actions().Len(); n != 0 {
		t.Errorf("codemod produced %d actions", n)
	}

	transformations := signal.Transformations().Collect()
	if len(transformations) != 1 {
		t.Fatalf("expected 1 transformation, got %d", len(transformations))
	}
	if got := string(transformations[0].Mutation.Commit()); got != "let x = 1;\n" {
		t.Errorf("transformed = %q", got)
	}
}

func TestLeavesLetAndConstAlone(t *testing.T) {
	if signals := run(t, "let x = 1;\nconst y = 2;\n"); len(signals) != 0 {
		t.Errorf("expected no signals, got %d", len(signals))
	}
}

func TestNotRecommendedByDefault(t *testing.T) {
	if (UseLetDeclarations{}).Metadata().Recommended {
		t.Error("codemod rule must be opt-in")
	}
}
