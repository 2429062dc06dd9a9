package informal

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-informal/pkg/markup"
	"github.com/goliatone/go-informal/pkg/render"
	"github.com/goliatone/go-informal/pkg/validation"
)

// Option configures a Form.
type Option func(*Form)

// WithEngine sets the validation engine. Forms share validation.Default()
// otherwise.
func WithEngine(engine *validation.Engine) Option {
	return func(f *Form) {
		if engine != nil {
			f.engine = engine
		}
	}
}

// WithAttributes renames the annotation attributes.
func WithAttributes(attrs markup.Attributes) Option {
	return func(f *Form) {
		f.attrs = attrs.WithDefaults()
	}
}

// WithReporter sets the error renderer.
func WithReporter(reporter *render.Reporter) Option {
	return func(f *Form) {
		if reporter != nil {
			f.reporter = reporter
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Form) {
		f.logger = logger
	}
}

// WithScopeID restricts the form to the element with the given id.
func WithScopeID(id string) Option {
	return func(f *Form) {
		f.scopeID = id
	}
}
