// Package config loads form validation settings from JSON or YAML: the
// annotation attribute names, the error chrome, default message overrides
// and regular expression validators.
package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-informal/pkg/markup"
	"github.com/goliatone/go-informal/pkg/model"
	"github.com/goliatone/go-informal/pkg/render"
	"github.com/goliatone/go-informal/pkg/validation"
	"github.com/goliatone/go-informal/pkg/validators"
)

// DefaultPatternMessage is used by pattern validators without a message.
const DefaultPatternMessage = "Invalid format."

// Config is the decoded configuration document.
type Config struct {
	Attributes markup.Attributes        `json:"attributes" yaml:"attributes"`
	Errors     ErrorChrome              `json:"errors" yaml:"errors"`
	Messages   map[string]string        `json:"messages" yaml:"messages"`
	Patterns   map[string]PatternConfig `json:"patterns" yaml:"patterns"`

	// Source is the file the configuration was read from, if any.
	Source string `json:"-" yaml:"-"`
}

// ErrorChrome configures how the reporter renders errors.
type ErrorChrome struct {
	Container string `json:"container" yaml:"container"`
	Class     string `json:"class" yaml:"class"`
	Block     string `json:"block" yaml:"block"`
	FormBlock string `json:"formBlock" yaml:"formBlock"`
	Template  string `json:"template" yaml:"template"`
}

// PatternConfig declares a regular expression validator.
type PatternConfig struct {
	Pattern    string `json:"pattern" yaml:"pattern"`
	Message    string `json:"message" yaml:"message"`
	AllowEmpty bool   `json:"allowEmpty" yaml:"allowEmpty"`
}

// Default returns an empty configuration; every setting falls back to the
// package defaults.
func Default() *Config {
	return &Config{}
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads and parses path from fsys.
func LoadFS(fsys fs.FS, path string) (*Config, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes data as JSON, falling back to YAML. source names the input
// in error messages.
func Parse(data []byte, source string) (*Config, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("config: file %s is empty", source)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = Config{}
		if yerr := yaml.Unmarshal(data, &cfg); yerr != nil {
			return nil, fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
		}
	}
	cfg.Source = source

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	for name, pattern := range c.Patterns {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("config: file %s defines a pattern with an empty name", c.sourceName())
		}
		if strings.TrimSpace(pattern.Pattern) == "" {
			return fmt.Errorf("config: file %s pattern %q has no expression", c.sourceName(), name)
		}
		if _, err := regexp.Compile(pattern.Pattern); err != nil {
			return fmt.Errorf("config: file %s pattern %q: %w", c.sourceName(), name, err)
		}
	}
	for name := range c.Messages {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("config: file %s overrides the message of an empty validator name", c.sourceName())
		}
	}
	return nil
}

func (c *Config) sourceName() string {
	if c.Source == "" {
		return "<inline>"
	}
	return c.Source
}

// MarkupAttributes returns the configured attribute names with defaults
// filled in.
func (c *Config) MarkupAttributes() markup.Attributes {
	if c == nil {
		return markup.DefaultAttributes()
	}
	return c.Attributes.WithDefaults()
}

// Apply registers the configured patterns on reg and then applies message
// overrides, so overrides may target patterns as well as built-ins.
func (c *Config) Apply(reg *validators.Registry) error {
	if c == nil || reg == nil {
		return nil
	}

	for _, name := range sortedNames(c.Patterns) {
		pattern := c.Patterns[name]
		re, err := regexp.Compile(pattern.Pattern)
		if err != nil {
			return fmt.Errorf("config: pattern %q: %w", name, err)
		}
		message := strings.TrimSpace(pattern.Message)
		if message == "" {
			message = DefaultPatternMessage
		}
		fn := validators.Pattern(re, message)
		if pattern.AllowEmpty {
			fn = skipEmpty(fn)
		}
		if err := reg.Register(strings.TrimSpace(name), fn); err != nil {
			return fmt.Errorf("config: pattern %q: %w", name, err)
		}
	}

	for _, name := range sortedNames(c.Messages) {
		if err := reg.Override(strings.TrimSpace(name), c.Messages[name]); err != nil {
			return fmt.Errorf("config: message override: %w", err)
		}
	}
	return nil
}

// Engine builds a validation engine whose validator registry carries the
// configured patterns and messages.
func (c *Config) Engine(logger zerolog.Logger, options ...validation.Option) (*validation.Engine, error) {
	reg := validators.New()
	if err := c.Apply(reg); err != nil {
		return nil, err
	}
	opts := append([]validation.Option{
		validation.WithValidators(reg),
		validation.WithLogger(logger),
	}, options...)
	return validation.New(opts...), nil
}

// ReporterOptions translates the error chrome into reporter options.
func (c *Config) ReporterOptions() []render.Option {
	if c == nil {
		return nil
	}
	return []render.Option{
		render.WithContainerClass(c.Errors.Container),
		render.WithErrorClass(c.Errors.Class),
		render.WithBlockClass(c.Errors.Block),
		render.WithFormErrorsClass(c.Errors.FormBlock),
		render.WithBlockTemplate(c.Errors.Template),
	}
}

// Reporter builds a reporter from the error chrome. extra options apply
// after the configured ones.
func (c *Config) Reporter(extra ...render.Option) (*render.Reporter, error) {
	return render.NewReporter(append(c.ReporterOptions(), extra...)...)
}

func skipEmpty(fn validators.Func) validators.Func {
	return func(value any, field model.Field) string {
		if model.IsEmpty(value) {
			return ""
		}
		return fn(value, field)
	}
}

func sortedNames[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
