// Package filters holds the named value transforms applied to a field's raw
// value before validation.
package filters

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-informal/pkg/model"
)

// Func transforms a value. The field is read-only context; filters must not
// panic on well-formed input.
type Func func(value any, field model.Field) any

// ErrUnknownFilter is matched by every UnknownFilterError.
var ErrUnknownFilter = errors.New("filters: unknown filter")

// UnknownFilterError reports a lookup miss for Name.
type UnknownFilterError struct {
	Name string
}

func (e *UnknownFilterError) Error() string {
	return fmt.Sprintf("filters: unknown filter %q", e.Name)
}

// Is matches ErrUnknownFilter.
func (e *UnknownFilterError) Is(target error) bool {
	return target == ErrUnknownFilter
}

// Registry stores filters by name. Registering an existing name replaces it.
type Registry struct {
	mu      sync.RWMutex
	filters map[string]Func
}

// New returns a registry with the built-in filters registered.
func New() *Registry {
	reg := NewEmpty()
	reg.registerBuiltins()
	return reg
}

// NewEmpty returns a registry without built-ins.
func NewEmpty() *Registry {
	return &Registry{filters: make(map[string]Func)}
}

// Register adds fn under name.
func (r *Registry) Register(name string, fn Func) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New("filters: filter name is required")
	}
	if fn == nil {
		return fmt.Errorf("filters: filter %q is nil", trimmed)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters[trimmed] = fn
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, fn Func) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Lookup returns the filter registered under name.
func (r *Registry) Lookup(name string) (Func, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.filters[name]
	if !ok {
		return nil, &UnknownFilterError{Name: name}
	}
	return fn, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.filters[name]
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.filters))
	for name := range r.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply runs the named filter.
func (r *Registry) Apply(name string, value any, field model.Field) (any, error) {
	fn, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return fn(value, field), nil
}

// Chain applies names in order, feeding each output into the next.
func (r *Registry) Chain(names []string, value any, field model.Field) (any, error) {
	for _, name := range names {
		next, err := r.Apply(name, value, field)
		if err != nil {
			return nil, err
		}
		value = next
	}
	return value, nil
}
