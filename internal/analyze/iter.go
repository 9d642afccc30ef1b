package analyze

import "sift/internal/text"

// ActionIter is a finite, size-known, single-pass sequence of actions.
// Once consumed (directly or through one of the projection views) it is
// exhausted; callers needing a second pass re-run the signal's Actions.
type ActionIter struct {
	actions []Action
	next    int
}

// NewActionIter creates an iterator over the given actions.
func NewActionIter(actions ...Action) *ActionIter {
	return &ActionIter{actions: actions}
}

// Len returns the number of actions not yet consumed.
func (it *ActionIter) Len() int {
	return len(it.actions) - it.next
}

// Next returns the next action, or false when the sequence is exhausted.
func (it *ActionIter) Next() (Action, bool) {
	if it.next >= len(it.actions) {
		return Action{}, false
	}
	a := it.actions[it.next]
	it.next++
	return a, true
}

// Collect drains the iterator into a slice.
func (it *ActionIter) Collect() []Action {
	out := make([]Action, 0, it.Len())
	for a, ok := it.Next(); ok; a, ok = it.Next() {
		out = append(out, a)
	}
	return out
}

// Advice is the display projection of an action: safety, message, and the
// single covering edit its mutation reduces to.
type Advice struct {
	Applicability Applicability `json:"applicability"`
	Message       string        `json:"message"`
	Suggestion    text.Edit     `json:"suggestion"`
}

// AdviceIter projects the remaining actions to Advice records.
type AdviceIter struct {
	inner *ActionIter
}

// Advices returns an advice view over the remaining actions.
// The view shares the underlying sequence; consuming one consumes the other.
func (it *ActionIter) Advices() *AdviceIter {
	return &AdviceIter{inner: it}
}

// Len returns the number of records not yet consumed.
func (it *AdviceIter) Len() int {
	return it.inner.Len()
}

// Next returns the next advice record.
func (it *AdviceIter) Next() (Advice, bool) {
	a, ok := it.inner.Next()
	if !ok {
		return Advice{}, false
	}
	rng, edit := a.Mutation.AsRangeAndEdit()
	return Advice{
		Applicability: a.Applicability,
		Message:       a.Message,
		Suggestion:    text.Edit{Range: rng, Text: edit},
	}, true
}

// Collect drains the view into a slice.
func (it *AdviceIter) Collect() []Advice {
	out := make([]Advice, 0, it.Len())
	for a, ok := it.Next(); ok; a, ok = it.Next() {
		out = append(out, a)
	}
	return out
}

// CodeSuggestion is a single flattened edit description.
type CodeSuggestion struct {
	Span          text.Range    `json:"span"`
	Applicability Applicability `json:"applicability"`
	Message       string        `json:"message"`
	Suggestion    string        `json:"suggestion"`
	// Labels is reserved for structured annotations on sub-ranges.
	Labels []text.Range `json:"labels,omitempty"`
}

// CodeSuggestionItem pairs a suggestion with the identity and category of
// the action it came from, for consumers that filter by rule.
type CodeSuggestionItem struct {
	Rule       *RuleIdentity  `json:"rule,omitempty"`
	Category   ActionCategory `json:"category"`
	Suggestion CodeSuggestion `json:"suggestion"`
}

// CodeSuggestionIter projects the remaining actions to suggestion items.
type CodeSuggestionIter struct {
	inner *ActionIter
}

// CodeSuggestions returns a flat suggestion view over the remaining actions.
// The view shares the underlying sequence; consuming one consumes the other.
func (it *ActionIter) CodeSuggestions() *CodeSuggestionIter {
	return &CodeSuggestionIter{inner: it}
}

// Len returns the number of items not yet consumed.
func (it *CodeSuggestionIter) Len() int {
	return it.inner.Len()
}

// Next returns the next suggestion item.
func (it *CodeSuggestionIter) Next() (CodeSuggestionItem, bool) {
	a, ok := it.inner.Next()
	if !ok {
		return CodeSuggestionItem{}, false
	}
	rng, edit := a.Mutation.AsRangeAndEdit()
	return CodeSuggestionItem{
		Rule:     a.Rule,
		Category: a.Category,
		Suggestion: CodeSuggestion{
			Span:          rng,
			Applicability: a.Applicability,
			Message:       a.Message,
			Suggestion:    edit,
			Labels:        []text.Range{},
		},
	}, true
}

// Collect drains the view into a slice.
func (it *CodeSuggestionIter) Collect() []CodeSuggestionItem {
	out := make([]CodeSuggestionItem, 0, it.Len())
	for item, ok := it.Next(); ok; item, ok = it.Next() {
		out = append(out, item)
	}
	return out
}

// TransformationIter is a finite, size-known, single-pass sequence of pure
// transformations.
type TransformationIter struct {
	transformations []Transformation
	next            int
}

// NewTransformationIter creates an iterator over the given transformations.
func NewTransformationIter(transformations ...Transformation) *TransformationIter {
	return &TransformationIter{transformations: transformations}
}

// Len returns the number of transformations not yet consumed.
func (it *TransformationIter) Len() int {
	return len(it.transformations) - it.next
}

// Next returns the next transformation, or false when exhausted.
func (it *TransformationIter) Next() (Transformation, bool) {
	if it.next >= len(it.transformations) {
		return Transformation{}, false
	}
	t := it.transformations[it.next]
	it.next++
	return t, true
}

// Collect drains the iterator into a slice.
func (it *TransformationIter) Collect() []Transformation {
	out := make([]Transformation, 0, it.Len())
	for t, ok := it.Next(); ok; t, ok = it.Next() {
		out = append(out, t)
	}
	return out
}
