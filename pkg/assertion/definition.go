// Package assertion provides the assertion core: predicates that
// compare actual values against expectations and report failures
// as formatted errors. A nil error means the assertion held.
//
// Assertions can be called directly on an Assert, bridged to a
// testing.TB through Require, or described declaratively with
// Definition values evaluated by a Registry.
package assertion

// Definition describes a single assertion to evaluate against a
// named value.
type Definition struct {
	// Type is the evaluator type (e.g., "equal", "empty",
	// "includes").
	Type string `json:"type" yaml:"type"`

	// Target is the name of the value to check.
	Target string `json:"target" yaml:"target"`

	// Value is the expected value or element.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// Message is appended to the failure diagnostic.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Result captures the outcome of evaluating a single assertion.
type Result struct {
	// Type is the assertion type that was evaluated.
	Type string `json:"type"`

	// Target is the name of the value checked.
	Target string `json:"target"`

	// Expected is the value the assertion expected.
	Expected any `json:"expected"`

	// Actual is the value that was observed.
	Actual any `json:"actual"`

	// Passed indicates whether the assertion succeeded.
	Passed bool `json:"passed"`

	// Message is the failure diagnostic, or "ok".
	Message string `json:"message"`
}
