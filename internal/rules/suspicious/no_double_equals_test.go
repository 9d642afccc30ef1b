package suspicious

import (
	"context"
	"testing"

	"sift/internal/analyze"
	"sift/internal/suppress"
	"sift/internal/tree"
)

func run(t *testing.T, source string, options *analyze.Options) []analyze.Signal {
	t.Helper()
	reg := analyze.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	root, err := tree.NewParser().Parse(context.Background(), []byte(source), tree.LangJavaScript)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return reg.Run(root, analyze.NewServiceBag(), suppress.New(), options, nil)
}

func TestFlagsLooseEquality(t *testing.T) {
	signals := run(t, "if (a == b) {}\nif (c != d) {}\n", &analyze.Options{})
	if len(signals) != 2 {
		t.Fatalf("expected 2 signals, got %d", len(signals))
	}

	first := signals[0].Diagnostic()
	if first == nil {
		t.Fatal("expected a diagnostic")
	}
	if first.Message != "Use === instead of ==." {
		t.Errorf("message = %q", first.Message)
	}
	if first.Category != "lint/suspicious/noDoubleEquals" {
		t.Errorf("category = %q", first.Category)
	}
	if len(first.Notes) != 1 {
		t.Errorf("notes = %v", first.Notes)
	}

	second := signals[1].Diagnostic()
	if second == nil || second.Message != "Use !== instead of !=." {
		t.Errorf("second diagnostic = %v", second)
	}
}

func TestIgnoresStrictEquality(t *testing.T) {
	if signals := run(t, "if (a === b) {}\nif (c !== d) {}\n", &analyze.Options{}); len(signals) != 0 {
		t.Errorf("expected no signals, got %d", len(signals))
	}
}

func TestFixReplacesOperator(t *testing.T) {
	signals := run(t, "a == b;\n", &analyze.Options{})
	if len(signals) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(signals))
	}

	actions := signals[0].Actions().Collect()
	if len(actions) != 2 {
		t.Fatalf("expected fix and suppression, got %d actions", len(actions))
	}
	fix := actions[0]
	if fix.Category != analyze.CategoryQuickFix || fix.Applicability != analyze.ApplicabilityMaybeIncorrect {
		t.Errorf("fix = %s %s", fix.Category, fix.Applicability)
	}
	if got := string(fix.Mutation.Commit()); got != "a === b;\n" {
		t.Errorf("fixed source = %q", got)
	}

	suppression := actions[1]
	if got := string(suppression.Mutation.Commit()); got != "// sift-ignore: lint/suspicious/noDoubleEquals\na == b;\n" {
		t.Errorf("suppressed source = %q", got)
	}
}

func TestIgnoreNullOption(t *testing.T) {
	options := func(ignoreNull bool) *analyze.Options {
		return &analyze.Options{Rules: map[string]analyze.RuleConfig{
			"suspicious/noDoubleEquals": {
				Options: map[string]interface{}{"ignoreNull": ignoreNull},
			},
		}}
	}

	source := "if (a == null) {}\nif (a == b) {}\n"
	if signals := run(t, source, options(false)); len(signals) != 2 {
		t.Errorf("expected 2 signals without ignoreNull, got %d", len(signals))
	}
	if signals := run(t, source, options(true)); len(signals) != 1 {
		t.Errorf("expected 1 signal with ignoreNull, got %d", len(signals))
	}
}
