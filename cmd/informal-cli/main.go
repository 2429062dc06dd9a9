package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	informal "github.com/goliatone/go-informal"
	"github.com/goliatone/go-informal/internal/logging"
	"github.com/goliatone/go-informal/pkg/config"
	"github.com/goliatone/go-informal/pkg/model"
	"github.com/goliatone/go-informal/pkg/openapi"
	"github.com/goliatone/go-informal/pkg/prompt"
	"github.com/goliatone/go-informal/pkg/submission"
	"github.com/goliatone/go-informal/pkg/validation"
	"github.com/goliatone/go-informal/pkg/value"
)

// Exit codes.
const (
	exitValid   = 0
	exitInvalid = 1
	exitConfig  = 2
)

type options struct {
	form        string
	openapi     string
	operation   string
	values      string
	submission  string
	interactive bool
	config      string
	output      string
	logLevel    string
	logFormat   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("informal-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.form, "form", "", "HTML file containing the annotated form")
	fs.StringVar(&opts.openapi, "openapi", "", "OpenAPI document to derive fields from instead of -form")
	fs.StringVar(&opts.operation, "operation", "", "operation ID used with -openapi")
	fs.StringVar(&opts.values, "values", "", "JSON or YAML record loaded into the form before validation")
	fs.StringVar(&opts.submission, "submission", "", "URL encoded submission to validate (a=1&b=2)")
	fs.BoolVar(&opts.interactive, "interactive", false, "prompt for field values in the terminal")
	fs.StringVar(&opts.config, "config", "", "JSON or YAML configuration file")
	fs.StringVar(&opts.output, "output", "", "write the form with rendered errors to this file")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error, disabled)")
	fs.StringVar(&opts.logFormat, "log-format", "console", "log format (console or json)")
	if err := fs.Parse(args); err != nil {
		return exitConfig
	}

	logger, err := logging.New(logging.Config{Level: opts.logLevel, Format: opts.logFormat, Output: stderr})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitConfig
	}

	result, err := execute(ctx, opts, logger)
	if err != nil {
		logger.Error().Err(err).Msg("validation aborted")
		fmt.Fprintln(stderr, err)
		return exitConfig
	}

	if err := writeResult(stdout, result); err != nil {
		fmt.Fprintln(stderr, err)
		return exitConfig
	}
	if !result.Valid {
		return exitInvalid
	}
	return exitValid
}

func execute(ctx context.Context, opts options, logger zerolog.Logger) (model.Result, error) {
	switch {
	case opts.form == "" && opts.openapi == "":
		return model.Result{}, errors.New("one of -form or -openapi is required")
	case opts.form != "" && opts.openapi != "":
		return model.Result{}, errors.New("-form and -openapi are mutually exclusive")
	case opts.submission != "" && opts.interactive:
		return model.Result{}, errors.New("-submission and -interactive are mutually exclusive")
	}

	cfg := config.Default()
	if opts.config != "" {
		loaded, err := config.Load(opts.config)
		if err != nil {
			return model.Result{}, err
		}
		cfg = loaded
	}
	engine, err := cfg.Engine(logger)
	if err != nil {
		return model.Result{}, err
	}

	if opts.openapi != "" {
		return validateOpenAPI(ctx, opts, engine)
	}
	return validateForm(ctx, opts, cfg, engine, logger)
}

func validateForm(ctx context.Context, opts options, cfg *config.Config, engine *validation.Engine, logger zerolog.Logger) (model.Result, error) {
	reporter, err := cfg.Reporter()
	if err != nil {
		return model.Result{}, err
	}

	file, err := os.Open(opts.form)
	if err != nil {
		return model.Result{}, fmt.Errorf("open form: %w", err)
	}
	defer file.Close()

	form, err := informal.Parse(file,
		informal.WithEngine(engine),
		informal.WithAttributes(cfg.MarkupAttributes()),
		informal.WithReporter(reporter),
		informal.WithLogger(logger),
	)
	if err != nil {
		return model.Result{}, err
	}

	if opts.values != "" {
		record, err := readRecord(opts.values)
		if err != nil {
			return model.Result{}, err
		}
		if err := form.Load(record); err != nil {
			return model.Result{}, err
		}
	}

	var result model.Result
	switch {
	case opts.submission != "":
		values, err := url.ParseQuery(opts.submission)
		if err != nil {
			return model.Result{}, fmt.Errorf("parse submission: %w", err)
		}
		result, err = form.ValidateSubmission(values)
		if err != nil {
			return model.Result{}, err
		}
	case opts.interactive:
		result, err = prompt.NewSession(prompt.WithLogger(logger)).Fill(ctx, form)
		if err != nil {
			return model.Result{}, err
		}
	default:
		result, err = form.Validate()
		if err != nil {
			return model.Result{}, err
		}
	}

	if opts.output != "" {
		if err := writeForm(form, result, opts.output); err != nil {
			return model.Result{}, err
		}
		logger.Info().Str("path", opts.output).Msg("form written")
	}
	return result, nil
}

func validateOpenAPI(ctx context.Context, opts options, engine *validation.Engine) (model.Result, error) {
	if opts.operation == "" {
		return model.Result{}, errors.New("-operation is required with -openapi")
	}
	if opts.interactive {
		return model.Result{}, errors.New("-interactive requires -form")
	}

	doc, err := openapi.NewLoader().Load(ctx, openapi.SourceFromFile(opts.openapi))
	if err != nil {
		return model.Result{}, err
	}
	fields, err := doc.Fields(opts.operation)
	if err != nil {
		return model.Result{}, err
	}

	values := url.Values{}
	if opts.values != "" {
		record, err := readRecord(opts.values)
		if err != nil {
			return model.Result{}, err
		}
		values = recordValues(record)
	}
	if opts.submission != "" {
		values, err = url.ParseQuery(opts.submission)
		if err != nil {
			return model.Result{}, fmt.Errorf("parse submission: %w", err)
		}
	}

	bound := submission.Bind(fields, values)
	controls := make([]validation.Control, 0, len(bound))
	for _, control := range bound {
		controls = append(controls, control)
	}
	return engine.Validate(controls)
}

// readRecord decodes a JSON or YAML object.
func readRecord(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values %s: %w", path, err)
	}
	var record map[string]any
	if err := json.Unmarshal(data, &record); err == nil {
		return record, nil
	}
	record = nil
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse values %s: invalid JSON or YAML", path)
	}
	if record == nil {
		record = map[string]any{}
	}
	return record, nil
}

// recordValues flattens a record into submission values. Lists become
// repeated values and booleans submit "true" only when set.
func recordValues(record map[string]any) url.Values {
	out := url.Values{}
	var walk func(prefix string, v any)
	walk = func(prefix string, v any) {
		switch typed := v.(type) {
		case nil:
		case map[string]any:
			for key, item := range typed {
				walk(prefix+"["+key+"]", item)
			}
		case []any:
			for _, item := range typed {
				out.Add(prefix, value.Stringify(item))
			}
		case bool:
			if typed {
				out.Add(prefix, "true")
			}
		default:
			out.Add(prefix, value.Stringify(typed))
		}
	}
	for key, v := range record {
		walk(key, v)
	}
	return out
}

func writeForm(form *informal.Form, result model.Result, path string) error {
	if err := form.ReportErrors(result.Errors); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := form.Render(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writeResult(w io.Writer, result model.Result) error {
	printable := model.Result{Valid: result.Valid, Values: make(map[string]any, len(result.Values)), Errors: result.Errors}
	for name, v := range result.Values {
		printable.Values[name] = jsonSafe(v)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(printable); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// jsonSafe replaces values encoding/json rejects: NaN and infinities become
// their names, zero times become null.
func jsonSafe(v any) any {
	switch typed := v.(type) {
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return fmt.Sprint(typed)
		}
	case time.Time:
		if typed.IsZero() {
			return nil
		}
	}
	return v
}
