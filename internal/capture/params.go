package capture

import (
	"fmt"
	"sort"
	"sync"
)

// Parameter is a named device setting registered with a session. Value
// semantics and validation belong to the driver layers; the session only
// keeps the name → parameter bookkeeping.
type Parameter interface {
	Name() string
	Description() string
}

// parameterSet holds a session's registered parameters.
type parameterSet struct {
	mu     sync.Mutex
	params map[string]Parameter
}

func newParameterSet() *parameterSet {
	return &parameterSet{params: make(map[string]Parameter)}
}

// add registers the batch atomically: if any name collides with an
// existing parameter, or repeats within the batch, nothing is inserted.
func (ps *parameterSet) add(params ...Parameter) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	seen := make(map[string]bool, len(params))
	for _, p := range params {
		name := p.Name()
		if _, exists := ps.params[name]; exists || seen[name] {
			return fmt.Errorf("%w: %q", ErrDuplicateParameter, name)
		}
		seen[name] = true
	}

	for _, p := range params {
		ps.params[p.Name()] = p
	}
	return nil
}

// get returns the parameter registered under name, if any.
func (ps *parameterSet) get(name string) (Parameter, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	p, ok := ps.params[name]
	return p, ok
}

// names returns the registered parameter names in sorted order.
func (ps *parameterSet) names() []string {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	out := make([]string, 0, len(ps.params))
	for name := range ps.params {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// clear drops every registered parameter.
func (ps *parameterSet) clear() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.params = make(map[string]Parameter)
}
