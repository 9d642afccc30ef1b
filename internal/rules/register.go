// Package rules wires the built-in rules into an analyzer registry.
package rules

import (
	"sift/internal/analyze"
	"sift/internal/rules/a11y"
	"sift/internal/rules/codemod"
	"sift/internal/rules/correctness"
	"sift/internal/rules/suspicious"
)

// RegisterBuiltins registers every built-in rule.
func RegisterBuiltins(reg *analyze.Registry) error {
	for _, register := range []func(*analyze.Registry) error{
		a11y.Register,
		codemod.Register,
		correctness.Register,
		suspicious.Register,
	} {
		if err := register(reg); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry creates a registry with all built-in rules registered.
func NewRegistry() (*analyze.Registry, error) {
	reg := analyze.NewRegistry()
	if err := RegisterBuiltins(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
