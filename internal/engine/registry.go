package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrBehaviorExists   = errors.New("behavior already registered")
	ErrBehaviorNotFound = errors.New("behavior not found")
)

// BehaviorRegistry is the closed set of per-agent behaviors for a run. It is
// constructed at startup and passed by reference into the simulation; there
// is no process-wide registration table.
type BehaviorRegistry struct {
	mu sync.RWMutex
	m  map[string]Behavior
}

func NewBehaviorRegistry() *BehaviorRegistry {
	return &BehaviorRegistry{m: make(map[string]Behavior)}
}

func (r *BehaviorRegistry) Register(b Behavior) error {
	if b == nil {
		return errors.New("behavior is required")
	}
	name := b.Name()
	if name == "" {
		return errors.New("behavior name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.m[name]; exists {
		return fmt.Errorf("%w: %s", ErrBehaviorExists, name)
	}
	r.m[name] = b
	return nil
}

func (r *BehaviorRegistry) Lookup(name string) (Behavior, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBehaviorNotFound, name)
	}
	return b, nil
}

// Behaviors returns the registered behaviors in name order, so dispatch
// order is stable across runs.
func (r *BehaviorRegistry) Behaviors() []Behavior {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.m))
	for name := range r.m {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Behavior, 0, len(names))
	for _, name := range names {
		out = append(out, r.m[name])
	}
	return out
}
