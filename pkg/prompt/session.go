package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-informal/pkg/dom"
	"github.com/goliatone/go-informal/pkg/model"
	"github.com/goliatone/go-informal/pkg/value"
)

// DefaultMaxRounds bounds how often a session re-asks invalid fields.
const DefaultMaxRounds = 3

// Target is a form a session can fill: bindings to write answers into and a
// validation pass over the current values.
type Target interface {
	Bindings() []value.Binding
	Validate() (model.Result, error)
}

// Option configures a Session.
type Option func(*Session)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithMaxRounds sets how many validation rounds run before giving up. The
// first round asks every field, later rounds only the invalid ones.
func WithMaxRounds(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.rounds = n
		}
	}
}

// WithAllFields prompts unannotated controls too.
func WithAllFields() Option {
	return func(s *Session) { s.all = true }
}

// WithLogger attaches a logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// Session fills a Target interactively.
type Session struct {
	driver Driver
	rounds int
	all    bool
	logger zerolog.Logger
}

// NewSession builds a session prompting on the terminal unless WithDriver
// is supplied.
func NewSession(options ...Option) *Session {
	s := &Session{rounds: DefaultMaxRounds, logger: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver()
	}
	return s
}

// Fill asks for every field, validates, and re-asks fields with errors until
// the form is valid or the rounds run out. The last result is returned
// either way.
func (s *Session) Fill(ctx context.Context, target Target) (model.Result, error) {
	if s.driver == nil {
		return model.Result{}, ErrNoDriver
	}

	var (
		result model.Result
		errs   map[string][]string
	)
	for round := 1; round <= s.rounds; round++ {
		for _, binding := range target.Bindings() {
			field := binding.Field()
			if !s.wants(field, errs, round) {
				continue
			}
			if err := s.ask(ctx, binding, errs[field.Name]); err != nil {
				return model.Result{}, err
			}
		}

		var err error
		result, err = target.Validate()
		if err != nil {
			return model.Result{}, err
		}
		s.logger.Debug().Int("round", round).Bool("valid", result.Valid).Int("errors", len(result.Errors)).Msg("prompt round")
		if result.Valid {
			return result, nil
		}

		errs = result.Errors
		for _, name := range result.Fields() {
			if err := s.driver.Info(ctx, fmt.Sprintf("%s: %s", name, strings.Join(errs[name], "; "))); err != nil {
				return model.Result{}, err
			}
		}
	}
	return result, nil
}

func (s *Session) wants(field model.Field, errs map[string][]string, round int) bool {
	if field.Name == "" {
		return false
	}
	if round > 1 {
		_, failed := errs[field.Name]
		return failed
	}
	return s.all || field.Validated()
}

func (s *Session) ask(ctx context.Context, binding value.Binding, problems []string) error {
	field := binding.Field()
	message := field.Name
	if field.Required {
		message += " *"
	}
	help := strings.Join(problems, "; ")
	current := binding.Value()

	switch field.Category {
	case model.CategoryCheckbox:
		on, err := s.driver.Confirm(ctx, ConfirmConfig{Message: message, Help: help, Default: !model.IsAbsent(current)})
		if err != nil {
			return err
		}
		binding.Set(on)

	case model.CategoryRadio, model.CategorySelect:
		options := optionLabels(field.Options)
		if len(options) == 0 {
			return nil
		}
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      message,
			Help:         help,
			Options:      options,
			DefaultIndex: optionIndex(field.Options, value.Stringify(current)),
		})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(field.Options) {
			binding.Set(field.Options[idx].Value)
		}

	case model.CategoryMultiSelect:
		options := optionLabels(field.Options)
		if len(options) == 0 {
			return nil
		}
		selected, _ := value.Strings(current)
		var defaults []int
		for _, v := range selected {
			if idx := optionIndex(field.Options, v); idx >= 0 {
				defaults = append(defaults, idx)
			}
		}
		indices, err := s.driver.MultiSelect(ctx, SelectConfig{Message: message, Help: help, Options: options, Defaults: defaults})
		if err != nil {
			return err
		}
		chosen := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(field.Options) {
				chosen = append(chosen, field.Options[idx].Value)
			}
		}
		binding.Set(chosen)

	case model.CategoryTextArea:
		text, err := s.driver.TextArea(ctx, TextAreaConfig{Message: message, Help: help, Default: value.Stringify(current)})
		if err != nil {
			return err
		}
		binding.Set(text)

	default:
		cfg := InputConfig{Message: message, Help: help, Default: value.Stringify(current)}
		ask := s.driver.Input
		if isPassword(binding) {
			ask = s.driver.Password
		}
		text, err := ask(ctx, cfg)
		if err != nil {
			return err
		}
		binding.Set(text)
	}
	return nil
}

func isPassword(binding value.Binding) bool {
	return len(binding.Nodes) > 0 && strings.EqualFold(dom.AttrOr(binding.Nodes[0], "type", ""), "password")
}

func optionLabels(options []model.Option) []string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		out = append(out, label)
	}
	return out
}

func optionIndex(options []model.Option, v string) int {
	for i, opt := range options {
		if opt.Value == v {
			return i
		}
	}
	return -1
}
