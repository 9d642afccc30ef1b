package analyze

import (
	"errors"
	"fmt"

	"sift/internal/tree"
)

// ErrMissingService is returned by context construction when a service a
// rule requires is absent from the bag. Accessors treat it as "this rule
// cannot run in this environment" and yield no result; it never escalates.
var ErrMissingService = errors.New("required service not available")

// ServiceBag holds the ambient services rules may depend on, keyed by name.
// It is populated once per analysis pass and read-only afterwards.
type ServiceBag struct {
	services map[string]any
}

// NewServiceBag creates an empty service bag.
func NewServiceBag() *ServiceBag {
	return &ServiceBag{services: make(map[string]any)}
}

// Insert registers a service under a name. Inserting nil removes nothing
// and registers nothing.
func (b *ServiceBag) Insert(name string, service any) {
	if service == nil {
		return
	}
	b.services[name] = service
}

// Get looks up a service by name.
func (b *ServiceBag) Get(name string) (any, bool) {
	if b == nil {
		return nil, false
	}
	s, ok := b.services[name]
	return s, ok
}

// Service looks up a service by name and asserts its concrete type.
func Service[T any](b *ServiceBag, name string) (T, bool) {
	var zero T
	s, ok := b.Get(name)
	if !ok {
		return zero, false
	}
	t, ok := s.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// RuleContext binds everything a rule hook may consult: the matched query,
// the tree root, ambient services, resolved globals, the file path, the
// rule's typed options, and language ambience. Contexts are transient; the
// signal rebuilds one per accessor call, so they must stay cheap to
// construct and must never outlive the tree root they borrow.
type RuleContext[Q, O any] struct {
	query      Q
	root       *tree.Root
	services   *ServiceBag
	globals    []string
	filePath   string
	options    O
	quoteStyle QuoteStyle
	jsxRuntime JsxRuntime
}

// NewRuleContext constructs a rule context. Construction fails when the
// tree root is absent or when any of the named required services is not in
// the bag; failure means the rule cannot run in this environment.
func NewRuleContext[Q, O any](
	query Q,
	root *tree.Root,
	services *ServiceBag,
	globals []string,
	filePath string,
	options O,
	quoteStyle QuoteStyle,
	jsxRuntime JsxRuntime,
	requiredServices []string,
) (*RuleContext[Q, O], error) {
	if root == nil {
		return nil, errors.New("rule context requires a tree root")
	}
	for _, name := range requiredServices {
		if _, ok := services.Get(name); !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingService, name)
		}
	}
	return &RuleContext[Q, O]{
		query:      query,
		root:       root,
		services:   services,
		globals:    globals,
		filePath:   filePath,
		options:    options,
		quoteStyle: quoteStyle,
		jsxRuntime: jsxRuntime,
	}, nil
}

// Query returns the matched tree fragment.
func (c *RuleContext[Q, O]) Query() Q {
	return c.query
}

// Root returns the tree snapshot under analysis.
func (c *RuleContext[Q, O]) Root() *tree.Root {
	return c.root
}

// Options returns the rule's resolved typed options.
func (c *RuleContext[Q, O]) Options() O {
	return c.options
}

// FilePath returns the path of the file under analysis.
func (c *RuleContext[Q, O]) FilePath() string {
	return c.filePath
}

// Globals returns the configured ambient global identifiers.
func (c *RuleContext[Q, O]) Globals() []string {
	return c.globals
}

// IsGlobal reports whether name is a configured global.
func (c *RuleContext[Q, O]) IsGlobal(name string) bool {
	for _, g := range c.globals {
		if g == name {
			return true
		}
	}
	return false
}

// PreferredQuote returns the configured quote style.
func (c *RuleContext[Q, O]) PreferredQuote() QuoteStyle {
	return c.quoteStyle
}

// JsxRuntime returns the configured JSX runtime mode.
func (c *RuleContext[Q, O]) JsxRuntime() JsxRuntime {
	return c.jsxRuntime
}

// Service looks up an ambient service by name.
func (c *RuleContext[Q, O]) Service(name string) (any, bool) {
	return c.services.Get(name)
}
