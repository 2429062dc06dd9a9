package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-informal/pkg/dom"
	"github.com/goliatone/go-informal/pkg/markup"
	"github.com/goliatone/go-informal/pkg/model"
	"github.com/goliatone/go-informal/pkg/validation"
	"github.com/goliatone/go-informal/pkg/value"
)

type formTarget struct {
	root   *html.Node
	engine *validation.Engine
}

func (f formTarget) Bindings() []value.Binding {
	return value.Bind(dom.Controls(f.root), markup.Describe)
}

func (f formTarget) Validate() (model.Result, error) {
	bindings := f.Bindings()
	controls := make([]validation.Control, 0, len(bindings))
	for _, b := range bindings {
		controls = append(controls, b)
	}
	return f.engine.Validate(controls)
}

func newTarget(t *testing.T, markup string) formTarget {
	t.Helper()
	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return formTarget{root: doc, engine: validation.New()}
}

// scriptedDriver answers prompts from per-message queues and records what
// it was asked.
type scriptedDriver struct {
	inputs   map[string][]string
	confirms map[string][]bool
	selects  map[string][]int
	multis   map[string][][]int
	asked    []string
	info     []string
	helps    map[string][]string
}

func (d *scriptedDriver) record(message, help string) {
	d.asked = append(d.asked, message)
	if d.helps == nil {
		d.helps = make(map[string][]string)
	}
	d.helps[message] = append(d.helps[message], help)
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	d.record(cfg.Message, cfg.Help)
	queue := d.inputs[cfg.Message]
	if len(queue) == 0 {
		return cfg.Default, nil
	}
	d.inputs[cfg.Message] = queue[1:]
	return queue[0], nil
}

func (d *scriptedDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	return d.Input(ctx, cfg)
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	d.record(cfg.Message, cfg.Help)
	queue := d.confirms[cfg.Message]
	if len(queue) == 0 {
		return cfg.Default, nil
	}
	d.confirms[cfg.Message] = queue[1:]
	return queue[0], nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	d.record(cfg.Message, cfg.Help)
	queue := d.selects[cfg.Message]
	if len(queue) == 0 {
		return cfg.DefaultIndex, nil
	}
	d.selects[cfg.Message] = queue[1:]
	return queue[0], nil
}

func (d *scriptedDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	d.record(cfg.Message, cfg.Help)
	queue := d.multis[cfg.Message]
	if len(queue) == 0 {
		return cfg.Defaults, nil
	}
	d.multis[cfg.Message] = queue[1:]
	return queue[0], nil
}

func (d *scriptedDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	return d.Input(ctx, InputConfig(cfg))
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.info = append(d.info, msg)
	return nil
}

const sessionForm = `<form>
<input name="name" required>
<input name="email" data-validators="simple_email">
<input name="nickname">
<input type="checkbox" name="terms" value="yes" required>
<input type="radio" name="size" value="s" required>
<input type="radio" name="size" value="m">
<select name="tags" multiple data-validators=""><option value="a">A</option><option value="b">B</option></select>
</form>`

func TestSessionFillReasksInvalidFields(t *testing.T) {
	target := newTarget(t, sessionForm)
	driver := &scriptedDriver{
		inputs: map[string][]string{
			"name *": {"Ada"},
			"email":  {"not-an-email", "ada@example.com"},
		},
		confirms: map[string][]bool{"terms *": {true}},
		selects:  map[string][]int{"size *": {1}},
		multis:   map[string][][]int{"tags": {{1}}},
	}

	result, err := NewSession(WithDriver(driver)).Fill(context.Background(), target)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid result, got %#v", result.Errors)
	}

	wantAsked := []string{"name *", "email", "terms *", "size *", "tags", "email"}
	if diff := cmp.Diff(wantAsked, driver.asked); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"", "Must be a valid email address."}, driver.helps["email"]); diff != "" {
		t.Fatalf("help mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"email: Must be a valid email address."}, driver.info); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}

	wantValues := map[string]any{
		"name":  "Ada",
		"email": "ada@example.com",
		"terms": "yes",
		"size":  "m",
		"tags":  []string{"b"},
	}
	if diff := cmp.Diff(wantValues, result.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionStopsAfterMaxRounds(t *testing.T) {
	target := newTarget(t, `<form><input name="name" required></form>`)
	driver := &scriptedDriver{inputs: map[string][]string{}}

	result, err := NewSession(WithDriver(driver), WithMaxRounds(2)).Fill(context.Background(), target)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if result.Valid {
		t.Fatalf("expected invalid result")
	}
	if got := len(driver.asked); got != 2 {
		t.Fatalf("expected 2 prompts, got %d", got)
	}
}

func TestSessionAllFieldsPromptsUnannotated(t *testing.T) {
	target := newTarget(t, `<form><input name="nickname" value="ace"></form>`)
	driver := &scriptedDriver{inputs: map[string][]string{}}

	if _, err := NewSession(WithDriver(driver), WithAllFields()).Fill(context.Background(), target); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if diff := cmp.Diff([]string{"nickname"}, driver.asked); diff != "" {
		t.Fatalf("asked mismatch (-want +got):\n%s", diff)
	}
	if got := value.Get(dom.Named(target.root, "nickname")); got != "ace" {
		t.Fatalf("default should be kept, got %v", got)
	}
}

type abortingDriver struct{ scriptedDriver }

func (d *abortingDriver) Input(context.Context, InputConfig) (string, error) {
	return "", ErrAborted
}

func TestSessionPropagatesAbort(t *testing.T) {
	target := newTarget(t, `<form><input name="name" required></form>`)
	_, err := NewSession(WithDriver(&abortingDriver{})).Fill(context.Background(), target)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestSurveyDriverHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewSurveyDriver().Input(ctx, InputConfig{Message: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
