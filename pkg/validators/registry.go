// Package validators holds the named checks run against filtered field
// values. A validator returns the message to display, or "" when the value
// passes.
package validators

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-informal/pkg/model"
)

// Func inspects value and the field's declarative context.
type Func func(value any, field model.Field) string

// ErrUnknownValidator is matched by every UnknownValidatorError.
var ErrUnknownValidator = errors.New("validators: unknown validator")

// UnknownValidatorError reports a lookup miss for Name.
type UnknownValidatorError struct {
	Name string
}

func (e *UnknownValidatorError) Error() string {
	return fmt.Sprintf("validators: unknown validator %q", e.Name)
}

// Is matches ErrUnknownValidator.
func (e *UnknownValidatorError) Is(target error) bool {
	return target == ErrUnknownValidator
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock overrides the time source used by date validators. The clock is
// read on every invocation.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithoutBuiltins skips registering the built-in validators.
func WithoutBuiltins() Option {
	return func(r *Registry) {
		r.skipBuiltins = true
	}
}

// Registry stores validators by name. Registering an existing name replaces
// it.
type Registry struct {
	mu           sync.RWMutex
	validators   map[string]Func
	now          func() time.Time
	skipBuiltins bool
}

// New returns a registry with the built-in validators registered.
func New(options ...Option) *Registry {
	reg := &Registry{
		validators: make(map[string]Func),
		now:        time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(reg)
		}
	}
	if !reg.skipBuiltins {
		reg.registerBuiltins()
	}
	return reg
}

// Now returns the registry clock's current reading.
func (r *Registry) Now() time.Time {
	return r.now()
}

// Register adds fn under name.
func (r *Registry) Register(name string, fn Func) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New("validators: validator name is required")
	}
	if fn == nil {
		return fmt.Errorf("validators: validator %q is nil", trimmed)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validators[trimmed] = fn
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, fn Func) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Lookup returns the validator registered under name.
func (r *Registry) Lookup(name string) (Func, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.validators[name]
	if !ok {
		return nil, &UnknownValidatorError{Name: name}
	}
	return fn, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.validators[name]
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.validators))
	for name := range r.validators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply runs the named validator and returns its message.
func (r *Registry) Apply(name string, value any, field model.Field) (string, error) {
	fn, err := r.Lookup(name)
	if err != nil {
		return "", err
	}
	return fn(value, field), nil
}

// Override replaces the default message of an existing validator.
func (r *Registry) Override(name, message string) error {
	fn, err := r.Lookup(name)
	if err != nil {
		return err
	}
	return r.Register(name, WithMessage(fn, message))
}
