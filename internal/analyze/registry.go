package analyze

import (
	"fmt"
	"sort"

	"sift/internal/tree"
)

// RegisteredRule is the type-erased form of a generic rule: its metadata
// plus a dispatch closure that matches the rule against a tree and wraps
// every resulting state in a RuleSignal.
type RegisteredRule struct {
	Metadata RuleMetadata
	run      func(root *tree.Root, services *ServiceBag, suppression SuppressionAction, options *Options) []Signal
}

// Registry maps rule categories to registered rules. Registration happens
// once at startup; afterwards the registry is read-only.
type Registry struct {
	rules  []RegisteredRule
	byName map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register adds a generic rule to a registry, erasing its associated types
// behind a dispatch closure. Registering two rules with the same group and
// name is a programming error.
func Register[Q, S, O any](reg *Registry, rule Rule[Q, S, O]) error {
	meta := rule.Metadata()
	key := meta.Group + "/" + meta.Name
	if _, dup := reg.byName[key]; dup {
		return fmt.Errorf("rule %s registered twice", key)
	}

	run := func(root *tree.Root, services *ServiceBag, suppression SuppressionAction, options *Options) []Signal {
		var signals []Signal
		var required []string
		if sr, ok := any(rule).(ServiceRule); ok {
			required = sr.RequiredServices()
		}
		for _, query := range rule.Match(root) {
			ctx, err := NewRuleContext(
				query,
				root,
				services,
				options.Globals,
				options.FilePath,
				ruleOptions[O](options, meta.Identity()),
				options.preferredQuote(),
				options.jsxRuntime(),
				required,
			)
			if err != nil {
				// The rule cannot run in this environment; skip the match.
				continue
			}
			for _, state := range rule.Run(ctx) {
				signals = append(signals, NewRuleSignal(rule, root, query, state, services, suppression, options))
			}
		}
		return signals
	}

	reg.byName[key] = len(reg.rules)
	reg.rules = append(reg.rules, RegisteredRule{Metadata: meta, run: run})
	return nil
}

// Rules returns the metadata of all registered rules, sorted by category.
func (r *Registry) Rules() []RuleMetadata {
	out := make([]RuleMetadata, 0, len(r.rules))
	for _, rr := range r.rules {
		out = append(out, rr.Metadata)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Category() < out[j].Category()
	})
	return out
}

// Lookup finds a registered rule by "group/name".
func (r *Registry) Lookup(key string) (RuleMetadata, bool) {
	i, ok := r.byName[key]
	if !ok {
		return RuleMetadata{}, false
	}
	return r.rules[i].Metadata, true
}

// Run dispatches every applicable registered rule against one tree and
// returns the produced signals. The enabled filter decides which rules run;
// a nil filter runs all of them. Signals are returned grouped by rule in
// registration order; any cross-rule ordering beyond that is the caller's
// concern.
func (r *Registry) Run(
	root *tree.Root,
	services *ServiceBag,
	suppression SuppressionAction,
	options *Options,
	enabled func(RuleMetadata) bool,
) []Signal {
	var signals []Signal
	for _, rr := range r.rules {
		if !rr.Metadata.AppliesTo(root.Language()) {
			continue
		}
		if enabled != nil && !enabled(rr.Metadata) {
			continue
		}
		signals = append(signals, rr.run(root, services, suppression, options)...)
	}
	return signals
}
