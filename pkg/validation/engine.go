// Package validation runs the informal pipeline over a set of controls:
// read the raw value, apply the declared filters, run the declared
// validators and aggregate the outcome into a model.Result.
package validation

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-informal/pkg/filters"
	"github.com/goliatone/go-informal/pkg/model"
	"github.com/goliatone/go-informal/pkg/validators"
)

// Control is one examined input: its declarative descriptor and a way to
// read its raw value.
type Control interface {
	Field() model.Field
	Value() any
}

// Static is a Control with a fixed value, handy for tests and for callers
// that already hold decoded values.
type Static struct {
	Desc model.Field
	Raw  any
}

// Field returns the descriptor.
func (s Static) Field() model.Field { return s.Desc }

// Value returns the stored raw value.
func (s Static) Value() any { return s.Raw }

// Option configures an Engine.
type Option func(*Engine)

// WithFilters sets the filter registry.
func WithFilters(reg *filters.Registry) Option {
	return func(e *Engine) {
		if reg != nil {
			e.filters = reg
		}
	}
}

// WithValidators sets the validator registry.
func WithValidators(reg *validators.Registry) Option {
	return func(e *Engine) {
		if reg != nil {
			e.validators = reg
		}
	}
}

// WithLogger attaches a logger for per-field debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Engine owns the filter and validator registries used for validation.
type Engine struct {
	filters    *filters.Registry
	validators *validators.Registry
	logger     zerolog.Logger
}

// New constructs an engine. Registries default to fresh instances with the
// built-ins registered.
func New(options ...Option) *Engine {
	e := &Engine{logger: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.filters == nil {
		e.filters = filters.New()
	}
	if e.validators == nil {
		e.validators = validators.New()
	}
	return e
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the process-wide engine shared by forms that do not
// configure their own. Register custom filters and validators on its
// registries at startup.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine
}

// Filters exposes the filter registry for registration.
func (e *Engine) Filters() *filters.Registry { return e.filters }

// Validators exposes the validator registry for registration.
func (e *Engine) Validators() *validators.Registry { return e.validators }
