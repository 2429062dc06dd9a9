package validation

import (
	"fmt"
	"slices"

	"github.com/goliatone/go-informal/pkg/model"
	"github.com/goliatone/go-informal/pkg/validators"
)

// Validate examines every control declaring validators or the required flag,
// in order, and aggregates values and error messages. An unknown filter or
// validator name aborts the pass with an error and a zero Result.
//
// Every declared name is resolved before any validator runs, so the outcome
// does not depend on the value. When required fails, the field's remaining
// validators are skipped. Values for duplicate names are last-wins; their
// errors accumulate, dropping messages an earlier control already reported.
func (e *Engine) Validate(controls []Control) (model.Result, error) {
	result := model.NewResult()

	for _, control := range controls {
		if control == nil {
			continue
		}
		field := control.Field()
		if !field.Validated() {
			continue
		}

		value, err := e.filters.Chain(field.Filters, control.Value(), field)
		if err != nil {
			return model.Result{}, fmt.Errorf("validation: field %q: %w", field.Name, err)
		}
		result.Values[field.Name] = value

		messages, err := e.check(field, value)
		if err != nil {
			return model.Result{}, fmt.Errorf("validation: field %q: %w", field.Name, err)
		}

		e.logger.Debug().
			Str("field", field.Name).
			Str("category", string(field.Category)).
			Strs("validators", EffectiveValidators(field)).
			Int("errors", len(messages)).
			Msg("field validated")

		if len(messages) > 0 {
			result.Errors[field.Name] = accumulate(result.Errors[field.Name], messages)
		}
	}

	result.Valid = len(result.Errors) == 0
	return result, nil
}

func (e *Engine) check(field model.Field, value any) ([]string, error) {
	names := EffectiveValidators(field)
	funcs := make([]validators.Func, len(names))
	for i, name := range names {
		fn, err := e.validators.Lookup(name)
		if err != nil {
			return nil, err
		}
		funcs[i] = fn
	}

	var messages []string
	for i, name := range names {
		msg := funcs[i](value, field)
		if msg == "" {
			continue
		}
		if custom, ok := field.Message(name); ok {
			msg = custom
		}
		messages = append(messages, msg)
		if name == validators.Required {
			break
		}
	}
	return messages, nil
}

// EffectiveValidators returns the declared validators with required moved
// to the front when the field carries the required flag.
func EffectiveValidators(field model.Field) []string {
	if !field.Required {
		return append([]string(nil), field.Validators...)
	}
	out := make([]string, 0, len(field.Validators)+1)
	out = append(out, validators.Required)
	for _, name := range field.Validators {
		if name != validators.Required {
			out = append(out, name)
		}
	}
	return out
}

// accumulate appends one control's messages to those already recorded under
// the same name. Repeats within the control are kept.
func accumulate(prior, messages []string) []string {
	out := prior
	for _, msg := range messages {
		if !slices.Contains(prior, msg) {
			out = append(out, msg)
		}
	}
	return out
}
