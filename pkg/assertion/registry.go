package assertion

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Evaluator checks one declarative assertion against a value.
type Evaluator func(a *Assert, def Definition, actual any) error

// Engine evaluates declarative assertions.
type Engine interface {
	// Evaluate checks a single assertion against the given
	// value.
	Evaluate(def Definition, actual any) Result

	// EvaluateAll checks multiple assertions against a map of
	// named values. Each definition's Target is the key into
	// values.
	EvaluateAll(defs []Definition, values map[string]any) []Result

	// Register adds a custom evaluator for the given assertion
	// type. Returns an error if the type is already registered.
	Register(assertionType string, evaluator Evaluator) error

	// AllPass fails unless every definition passes.
	AllPass(defs []Definition, values map[string]any, msgAndArgs ...any) error

	// AnyPass fails unless at least one definition passes.
	AnyPass(defs []Definition, values map[string]any, msgAndArgs ...any) error
}

var _ Engine = (*Registry)(nil)

// Registry is the standard Engine implementation. It is safe for
// concurrent use.
type Registry struct {
	mu         sync.RWMutex
	assert     *Assert
	evaluators map[string]Evaluator
}

// NewRegistry creates a Registry with the built-in evaluators
// registered. A nil Assert is replaced with New().
func NewRegistry(a *Assert) *Registry {
	if a == nil {
		a = New()
	}
	r := &Registry{
		assert:     a,
		evaluators: make(map[string]Evaluator),
	}
	r.registerDefaults()
	return r
}

func (r *Registry) registerDefaults() {
	r.evaluators["equal"] = func(a *Assert, def Definition, actual any) error {
		return a.Equal(actual, def.Value, message(def)...)
	}
	r.evaluators["empty"] = func(a *Assert, def Definition, actual any) error {
		return a.Empty(actual, message(def)...)
	}
	r.evaluators["includes"] = func(a *Assert, def Definition, actual any) error {
		return a.Includes(actual, def.Value, message(def)...)
	}
	r.evaluators["includes_no"] = func(a *Assert, def Definition, actual any) error {
		return a.IncludesNo(actual, def.Value, message(def)...)
	}
}

func message(def Definition) []any {
	if def.Message == "" {
		return nil
	}
	return []any{def.Message}
}

// Register adds a custom evaluator for the given assertion type.
func (r *Registry) Register(
	assertionType string,
	evaluator Evaluator,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.evaluators[assertionType]; exists {
		return fmt.Errorf(
			"assertion type already registered: %s",
			assertionType,
		)
	}

	r.evaluators[assertionType] = evaluator
	return nil
}

// HasEvaluator reports whether assertionType is registered.
func (r *Registry) HasEvaluator(assertionType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.evaluators[assertionType]
	return exists
}

// Types returns the registered assertion types in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.evaluators))
	for t := range r.evaluators {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Evaluate runs a single assertion against actual.
func (r *Registry) Evaluate(def Definition, actual any) Result {
	r.mu.RLock()
	evaluator, exists := r.evaluators[def.Type]
	r.mu.RUnlock()

	if !exists {
		return Result{
			Type:   def.Type,
			Target: def.Target,
			Passed: false,
			Message: fmt.Sprintf(
				"unknown assertion type: %s", def.Type,
			),
		}
	}

	result := Result{
		Type:     def.Type,
		Target:   def.Target,
		Expected: def.Value,
		Actual:   actual,
		Passed:   true,
		Message:  "ok",
	}
	if err := evaluator(r.assert, def, actual); err != nil {
		result.Passed = false
		result.Message = err.Error()
	}
	return result
}

// EvaluateAll runs every definition against its target in
// values. A missing target fails its assertion.
func (r *Registry) EvaluateAll(
	defs []Definition,
	values map[string]any,
) []Result {
	results := make([]Result, 0, len(defs))

	for _, def := range defs {
		value, exists := values[def.Target]
		if !exists {
			results = append(results, Result{
				Type:   def.Type,
				Target: def.Target,
				Passed: false,
				Message: fmt.Sprintf(
					"target not found: %s", def.Target,
				),
			})
			continue
		}

		results = append(results, r.Evaluate(def, value))
	}

	return results
}

// AllPass evaluates defs against values and fails with the
// diagnostic of every failing definition, each closed by the
// separator line.
func (r *Registry) AllPass(
	defs []Definition,
	values map[string]any,
	msgAndArgs ...any,
) error {
	failed := failures(r.EvaluateAll(defs, values))
	if len(failed) == 0 {
		return r.assert.pass("all_pass")
	}
	return r.assert.fail("all_pass", fmt.Sprintf(
		"%d of %d assertions failed:\n\n%s",
		len(failed), len(defs), joinDiagnostics(failed),
	), msgAndArgs...)
}

// AnyPass evaluates defs against values and passes if at least
// one of them does. With no passing definition the failure lists
// every diagnostic.
func (r *Registry) AnyPass(
	defs []Definition,
	values map[string]any,
	msgAndArgs ...any,
) error {
	results := r.EvaluateAll(defs, values)
	failed := failures(results)
	if len(failed) < len(results) {
		return r.assert.pass("any_pass")
	}
	return r.assert.fail("any_pass", fmt.Sprintf(
		"none of %d assertions passed:\n\n%s",
		len(results), joinDiagnostics(failed),
	), msgAndArgs...)
}

func failures(results []Result) []Result {
	var failed []Result
	for _, res := range results {
		if !res.Passed {
			failed = append(failed, res)
		}
	}
	return failed
}

// joinDiagnostics labels each failed result with its type and
// target. Every diagnostic but the last ends with Separator;
// Failure.Error closes the last one.
func joinDiagnostics(failed []Result) string {
	parts := make([]string, len(failed))
	for i, res := range failed {
		msg := strings.TrimSpace(res.Message)
		msg = strings.TrimSpace(strings.TrimSuffix(msg, Separator))
		parts[i] = fmt.Sprintf("%s on %q:\n%s", res.Type, res.Target, msg)
	}
	return strings.Join(parts, "\n"+Separator+"\n")
}
