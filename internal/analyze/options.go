package analyze

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// QuoteStyle is the preferred string quote for generated code.
type QuoteStyle string

const (
	// QuoteDouble prefers double-quoted strings
	QuoteDouble QuoteStyle = "double"
	// QuoteSingle prefers single-quoted strings
	QuoteSingle QuoteStyle = "single"
)

// JsxRuntime selects how JSX is expected to be compiled; some rules behave
// differently under the classic React runtime.
type JsxRuntime string

const (
	// JsxRuntimeTransparent for the automatic runtime
	JsxRuntimeTransparent JsxRuntime = "transparent"
	// JsxRuntimeReactClassic for the classic React.createElement runtime
	JsxRuntimeReactClassic JsxRuntime = "reactClassic"
)

// RuleConfig carries the resolved per-rule configuration handed to a signal.
type RuleConfig struct {
	// FixKind overrides how the rule's fix applicability is reported;
	// empty means unset.
	FixKind FixKind
	// Options is the rule's options value: either the rule's typed options
	// struct or a raw map decoded from the configuration file.
	Options any
}

// Options is the resolved analyzer configuration a signal evaluates under.
// It is shared read-only across all signals of one analysis pass.
type Options struct {
	// Globals are identifiers considered ambient by the analyzer.
	Globals []string
	// FilePath is the path of the file under analysis.
	FilePath string
	// PreferredQuote defaults to double when unset.
	PreferredQuote QuoteStyle
	// JsxRuntime defaults to transparent when unset.
	JsxRuntime JsxRuntime
	// Rules maps "group/name" to per-rule configuration.
	Rules map[string]RuleConfig
}

func (o *Options) preferredQuote() QuoteStyle {
	if o.PreferredQuote == "" {
		return QuoteDouble
	}
	return o.PreferredQuote
}

func (o *Options) jsxRuntime() JsxRuntime {
	if o.JsxRuntime == "" {
		return JsxRuntimeTransparent
	}
	return o.JsxRuntime
}

func (o *Options) ruleConfig(id RuleIdentity) (RuleConfig, bool) {
	if o.Rules == nil {
		return RuleConfig{}, false
	}
	key := id.Group + "/" + id.Name
	if rc, ok := o.Rules[key]; ok {
		return rc, true
	}
	// Some configuration loaders lowercase map keys.
	rc, ok := o.Rules[strings.ToLower(key)]
	return rc, ok
}

// RuleFixKind returns the configured fix policy for a rule, if any.
func (o *Options) RuleFixKind(id RuleIdentity) (FixKind, bool) {
	rc, ok := o.ruleConfig(id)
	if !ok || rc.FixKind == "" {
		return "", false
	}
	return rc.FixKind, true
}

// ruleOptions resolves a rule's typed options, falling back to the type's
// zero value when the rule has no configuration. Raw maps from the
// configuration file are coerced into the typed struct; values that cannot
// be coerced fall back to the default rather than failing the rule.
func ruleOptions[O any](o *Options, id RuleIdentity) O {
	var out O
	rc, ok := o.ruleConfig(id)
	if !ok || rc.Options == nil {
		return out
	}
	if typed, ok := rc.Options.(O); ok {
		return typed
	}
	raw, err := yaml.Marshal(rc.Options)
	if err != nil {
		return out
	}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		var zero O
		return zero
	}
	return out
}
