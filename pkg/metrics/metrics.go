// Package metrics tallies assertion outcomes. A Counter plugs in
// wherever a logging.Logger is accepted, so it can sit behind a
// MultiLogger next to regular log output.
package metrics

import (
	"sort"
	"sync"

	"digital.vasic.assertions/pkg/logging"
)

// Tally is the pass/fail count of one assertion type.
type Tally struct {
	Assertion string `json:"assertion"`
	Passed    int    `json:"passed"`
	Failed    int    `json:"failed"`
}

// Counter counts assertion outcomes by assertion type. It is
// safe for concurrent use.
type Counter struct {
	logging.NullLogger

	mu      sync.Mutex
	tallies map[string]*Tally
}

// NewCounter creates an empty Counter.
func NewCounter() *Counter {
	return &Counter{tallies: make(map[string]*Tally)}
}

// LogAssertion records one outcome.
func (c *Counter) LogAssertion(entry logging.AssertionLog) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tallies == nil {
		c.tallies = make(map[string]*Tally)
	}
	t, ok := c.tallies[entry.Assertion]
	if !ok {
		t = &Tally{Assertion: entry.Assertion}
		c.tallies[entry.Assertion] = t
	}
	if entry.Passed {
		t.Passed++
	} else {
		t.Failed++
	}
}

// WithFields returns the Counter itself so derived loggers keep
// counting into the same tallies.
func (c *Counter) WithFields(_ ...logging.Field) logging.Logger {
	return c
}

// Passed returns the number of passing evaluations of assertion.
func (c *Counter) Passed(assertion string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tallies[assertion]; ok {
		return t.Passed
	}
	return 0
}

// Failed returns the number of failing evaluations of assertion.
func (c *Counter) Failed(assertion string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tallies[assertion]; ok {
		return t.Failed
	}
	return 0
}

// Snapshot returns all tallies sorted by assertion type.
func (c *Counter) Snapshot() []Tally {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Tally, 0, len(c.tallies))
	for _, t := range c.tallies {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Assertion < out[j].Assertion
	})
	return out
}

// Reset clears all tallies.
func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tallies = make(map[string]*Tally)
}
