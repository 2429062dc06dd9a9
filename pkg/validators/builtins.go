package validators

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-informal/pkg/datefmt"
	"github.com/goliatone/go-informal/pkg/model"
)

// Built-in validator names.
const (
	Required    = "required"
	SimpleEmail = "simple_email"
	PastDate    = "past_date"
	FutureDate  = "future_date"
	Date        = "date"
)

// Default messages of the built-in validators.
const (
	MessageRequired    = "This value is required."
	MessageSimpleEmail = "Must be a valid email address."
	MessagePastDate    = "Date must be in the past"
	MessageFutureDate  = "Date must be in the future"
	MessageDate        = "Must be a valid date."
)

var simpleEmailPattern = regexp.MustCompile(`^.+@.+\..+$`)

func (r *Registry) registerBuiltins() {
	r.MustRegister(Required, RequiredFunc)
	r.MustRegister(SimpleEmail, Pattern(simpleEmailPattern, MessageSimpleEmail))
	r.MustRegister(PastDate, r.pastDate)
	r.MustRegister(FutureDate, r.futureDate)
	r.MustRegister(Date, validDate)
}

// RequiredFunc fails when the value is empty. Numeric zero is a value.
func RequiredFunc(value any, _ model.Field) string {
	if model.IsEmpty(value) {
		return MessageRequired
	}
	return ""
}

// Pattern builds a validator failing unless the string form of the value
// matches re.
func Pattern(re *regexp.Regexp, message string) Func {
	return func(value any, _ model.Field) string {
		if !re.MatchString(text(value)) {
			return message
		}
		return ""
	}
}

// WithMessage rewrites any failure of fn to message.
func WithMessage(fn Func, message string) Func {
	return func(value any, field model.Field) string {
		if fn(value, field) == "" {
			return ""
		}
		return message
	}
}

func (r *Registry) pastDate(value any, field model.Field) string {
	if model.IsEmpty(value) {
		return ""
	}
	t, ok := datefmt.Coerce(value, field.DateFormat)
	if ok && t.After(r.now()) {
		return MessagePastDate
	}
	return ""
}

func (r *Registry) futureDate(value any, field model.Field) string {
	if model.IsEmpty(value) {
		return ""
	}
	t, ok := datefmt.Coerce(value, field.DateFormat)
	if ok && t.Before(r.now()) {
		return MessageFutureDate
	}
	return ""
}

func validDate(value any, field model.Field) string {
	if model.IsEmpty(value) {
		return ""
	}
	if _, ok := value.(time.Time); ok {
		return ""
	}
	if _, ok := datefmt.Coerce(value, field.DateFormat); !ok {
		return MessageDate
	}
	return ""
}

func text(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case []string:
		return strings.Join(typed, ",")
	default:
		if model.IsAbsent(value) {
			return ""
		}
		return fmt.Sprint(value)
	}
}
