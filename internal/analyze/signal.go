// Package analyze implements the rule-execution core of the analyzer: the
// dispatch boundary that turns one query match produced by a rule into
// diagnostics, proposed fix actions, and pure transformations, while
// enforcing the configured fix policy and the suppression contract.
package analyze

import (
	"sift/internal/tree"
)

// Signal is an event raised by the analyzer when a rule emits a diagnostic,
// code actions, or transformations for one query match.
//
// All three accessors are pure: they recompute their answer on every call
// from the same borrowed inputs, promise no memoization, and always return
// finite, size-known sequences. Nothing is evaluated until asked for.
type Signal interface {
	Diagnostic() *Diagnostic
	Actions() *ActionIter
	Transformations() *TransformationIter
}

// DiagnosticSignal generates a diagnostic from a factory function, letting
// callers raise a finding without implementing the full rule contract.
// Optionally the signal also emits one code action, configured by chaining
// WithAction with a secondary factory.
type DiagnosticSignal struct {
	diagnostic func() error
	action     func() *Action
}

// NewDiagnosticSignal creates a signal from a diagnostic factory. The
// factory encodes its result as an error value; failures must be encoded in
// that value, never panicked.
func NewDiagnosticSignal(factory func() error) *DiagnosticSignal {
	return &DiagnosticSignal{diagnostic: factory}
}

// WithAction attaches a factory for exactly one fix action and returns the
// signal.
func (s *DiagnosticSignal) WithAction(factory func() *Action) *DiagnosticSignal {
	return &DiagnosticSignal{diagnostic: s.diagnostic, action: factory}
}

// Diagnostic invokes the factory and wraps its result.
func (s *DiagnosticSignal) Diagnostic() *Diagnostic {
	return DiagnosticFromError(s.diagnostic())
}

// Actions yields the attached action, if any.
func (s *DiagnosticSignal) Actions() *ActionIter {
	if s.action != nil {
		if action := s.action(); action != nil {
			return NewActionIter(*action)
		}
	}
	return NewActionIter()
}

// Transformations is always empty for this signal variant; it is designed
// for diagnostic-only or diagnostic-plus-fix use, not for pure rewrites.
func (s *DiagnosticSignal) Transformations() *TransformationIter {
	return NewTransformationIter()
}

// RuleSignal is the analyzer-internal Signal implementation binding one
// rule to one query match. It owns the match state and borrows the tree
// root, service bag, suppression capability, and resolved options; its
// lifetime is bounded by the enclosing analysis pass.
//
// Every accessor independently re-derives the rule context and re-invokes
// the corresponding hook; no result is cached across calls. Contexts are
// cheap (borrow plus option lookup), so repeated construction is preferred
// over cache invalidation across three accessors.
type RuleSignal[Q, S, O any] struct {
	rule        Rule[Q, S, O]
	root        *tree.Root
	query       Q
	state       S
	services    *ServiceBag
	suppression SuppressionAction
	options     *Options
}

// NewRuleSignal binds a rule to one query match and its state.
func NewRuleSignal[Q, S, O any](
	rule Rule[Q, S, O],
	root *tree.Root,
	query Q,
	state S,
	services *ServiceBag,
	suppression SuppressionAction,
	options *Options,
) *RuleSignal[Q, S, O] {
	return &RuleSignal[Q, S, O]{
		rule:        rule,
		root:        root,
		query:       query,
		state:       state,
		services:    services,
		suppression: suppression,
		options:     options,
	}
}

// ruleContext re-derives the transient evaluation context. A nil error
// never escapes to callers of the signal: construction failure means the
// rule cannot run in this environment and the accessor yields no result.
func (s *RuleSignal[Q, S, O]) ruleContext() (*RuleContext[Q, O], error) {
	meta := s.rule.Metadata()
	var required []string
	if sr, ok := any(s.rule).(ServiceRule); ok {
		required = sr.RequiredServices()
	}
	return NewRuleContext(
		s.query,
		s.root,
		s.services,
		s.options.Globals,
		s.options.FilePath,
		ruleOptions[O](s.options, meta.Identity()),
		s.options.preferredQuote(),
		s.options.jsxRuntime(),
		required,
	)
}

// Diagnostic invokes the rule's diagnostic hook, if the rule has one and
// its context can be constructed.
func (s *RuleSignal[Q, S, O]) Diagnostic() *Diagnostic {
	dr, ok := any(s.rule).(DiagnosticRule[Q, S, O])
	if !ok {
		return nil
	}
	ctx, err := s.ruleContext()
	if err != nil {
		return nil
	}
	return dr.Diagnostic(ctx, s.state)
}

// Actions returns the rule's proposed actions in fixed order: the fix
// first, the suppression second. Offering the fix ahead of "just silence
// this" is a user-facing contract.
//
// The configured fix policy is resolved in two steps: FixNone short-circuits
// before any hook runs; FixSafe and FixUnsafe force the fix action's
// reported applicability after the hook runs. The suppression action is
// never affected by the policy.
func (s *RuleSignal[Q, S, O]) Actions() *ActionIter {
	meta := s.rule.Metadata()
	identity := meta.Identity()

	var configured Applicability
	if fixKind, ok := s.options.RuleFixKind(identity); ok {
		switch fixKind {
		case FixNone:
			// The fix is disabled by configuration, independent of what
			// the rule would produce.
			return NewActionIter()
		case FixSafe:
			configured = ApplicabilityAlways
		case FixUnsafe:
			configured = ApplicabilityMaybeIncorrect
		}
	}

	ctx, err := s.ruleContext()
	if err != nil {
		return NewActionIter()
	}

	var actions []Action
	if ar, ok := any(s.rule).(ActionRule[Q, S, O]); ok {
		if action := ar.Action(ctx, s.state); action != nil {
			applicability := action.Applicability
			if configured != "" {
				applicability = configured
			}
			// An unset category means quick fix.
			category := action.Category
			if category == "" {
				category = CategoryQuickFix
			}
			actions = append(actions, Action{
				Rule:          &RuleIdentity{Group: identity.Group, Name: identity.Name},
				Category:      category,
				Applicability: applicability,
				Message:       action.Message,
				Mutation:      action.Mutation,
			})
		}
	}
	if rr, ok := any(s.rule).(RangeRule[Q, S, O]); ok {
		if anchor, ok := rr.TextRange(ctx, s.state); ok {
			var edit *SuppressionEdit
			if sup, ok := any(s.rule).(SuppressRule[Q, S, O]); ok {
				edit = sup.Suppress(ctx, anchor, s.suppression)
			} else if s.suppression != nil {
				edit = s.suppression.Suppress(s.root, anchor, meta.Category())
			}
			if edit != nil {
				actions = append(actions, Action{
					Rule:          &RuleIdentity{Group: identity.Group, Name: identity.Name},
					Category:      CategorySuppression,
					Applicability: ApplicabilityAlways,
					Message:       edit.Message,
					Mutation:      edit.Mutation,
				})
			}
		}
	}

	return NewActionIter(actions...)
}

// Transformations invokes the rule's pure-transform hook and wraps its
// zero-or-one result.
func (s *RuleSignal[Q, S, O]) Transformations() *TransformationIter {
	tr, ok := any(s.rule).(TransformRule[Q, S, O])
	if !ok {
		return NewTransformationIter()
	}
	ctx, err := s.ruleContext()
	if err != nil {
		return NewTransformationIter()
	}
	if mutation := tr.Transform(ctx, s.state); mutation != nil {
		return NewTransformationIter(Transformation{Mutation: mutation})
	}
	return NewTransformationIter()
}
