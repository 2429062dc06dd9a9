package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-informal/pkg/filters"
	"github.com/goliatone/go-informal/pkg/model"
	"github.com/goliatone/go-informal/pkg/validators"
)

func text(name, value string, mutate ...func(*model.Field)) Control {
	field := model.Field{Name: name, Category: model.CategoryText}
	for _, fn := range mutate {
		fn(&field)
	}
	return Static{Desc: field, Raw: value}
}

func required(f *model.Field) { f.Required = true }

func withValidators(names ...string) func(*model.Field) {
	return func(f *model.Field) { f.Validators = names }
}

func declared(f *model.Field) { f.Validators = []string{} }

func withFilters(names ...string) func(*model.Field) {
	return func(f *model.Field) { f.Filters = names }
}

func TestValidate_SkipsUnannotatedFields(t *testing.T) {
	engine := New()
	res, err := engine.Validate([]Control{
		text("plain", ""),
		text("name", "Ada", required),
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if _, ok := res.Values["plain"]; ok {
		t.Fatalf("unannotated field must not appear in values")
	}
	if _, ok := res.Errors["plain"]; ok {
		t.Fatalf("unannotated field must not appear in errors")
	}
	if !res.Valid {
		t.Fatalf("expected valid result, got %#v", res.Errors)
	}
	if diff := cmp.Diff(map[string]any{"name": "Ada"}, res.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_RequiredEmptyAndZero(t *testing.T) {
	engine := New()
	res, err := engine.Validate([]Control{
		text("empty", "", required),
		text("zero", "0", required, withFilters(filters.AsInteger)),
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := map[string][]string{"empty": {validators.MessageRequired}}
	if diff := cmp.Diff(want, res.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if res.Valid {
		t.Fatalf("expected invalid result")
	}
	if got := res.Values["zero"]; got != int64(0) {
		t.Fatalf("zero value = %#v", got)
	}
}

func TestValidate_CustomMessage(t *testing.T) {
	engine := New()
	res, err := engine.Validate([]Control{
		text("name", "", withValidators(validators.Required), func(f *model.Field) {
			f.Messages = map[string]string{"required": "Name needed"}
		}),
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if diff := cmp.Diff([]string{"Name needed"}, res.Errors["name"]); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_RequiredShortCircuits(t *testing.T) {
	engine := New()
	res, err := engine.Validate([]Control{
		text("email", "", required, withValidators(validators.SimpleEmail, validators.Required)),
		text("other", "nope", required, withValidators(validators.SimpleEmail)),
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := map[string][]string{
		"email": {validators.MessageRequired},
		"other": {validators.MessageSimpleEmail},
	}
	if diff := cmp.Diff(want, res.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_OptionalFieldRunsValidators(t *testing.T) {
	engine := New()
	res, err := engine.Validate([]Control{
		text("email", "", withValidators(validators.SimpleEmail)),
		text("born", "", withValidators(validators.PastDate)),
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := map[string][]string{"email": {validators.MessageSimpleEmail}}
	if diff := cmp.Diff(want, res.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_FilterOrderAndNaN(t *testing.T) {
	engine := New()
	res, err := engine.Validate([]Control{
		text("age", " 12 years", declared, withFilters(filters.Trim, filters.AsInteger)),
		text("qty", "abc", required, withFilters(filters.AsInteger)),
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := res.Values["age"]; got != int64(12) {
		t.Fatalf("age = %#v", got)
	}
	if !filters.IsNaN(res.Values["qty"]) {
		t.Fatalf("qty should carry NaN, got %#v", res.Values["qty"])
	}
	if diff := cmp.Diff([]string{validators.MessageRequired}, res.Errors["qty"]); diff != "" {
		t.Fatalf("qty errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_DuplicateNames(t *testing.T) {
	engine := New()
	res, err := engine.Validate([]Control{
		text("tag", "", required),
		text("tag", "later", required),
		text("tag", "", required),
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := res.Values["tag"]; got != "" {
		t.Fatalf("last value should win, got %#v", got)
	}
	if diff := cmp.Diff([]string{validators.MessageRequired}, res.Errors["tag"]); diff != "" {
		t.Fatalf("duplicate errors should accumulate without repeats (-want +got):\n%s", diff)
	}
}

func TestValidate_UnknownNamesFailFast(t *testing.T) {
	engine := New()
	cases := []struct {
		name    string
		control Control
		want    error
	}{
		{name: "unknown validator", control: text("a", "x", withValidators("nope")), want: validators.ErrUnknownValidator},
		{name: "unknown validator after passing required", control: text("a", "x", required, withValidators("nope")), want: validators.ErrUnknownValidator},
		{name: "unknown validator after failing required", control: text("a", "", required, withValidators("nope")), want: validators.ErrUnknownValidator},
		{name: "unknown filter", control: text("a", "x", required, withFilters("nope")), want: filters.ErrUnknownFilter},
		{name: "unknown filter on empty value", control: text("a", "", required, withFilters("nope")), want: filters.ErrUnknownFilter},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := engine.Validate([]Control{tc.control})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if res.Values != nil || res.Errors != nil {
				t.Fatalf("expected zero result, got %#v", res)
			}
		})
	}
}

func TestValidate_KeepsRepeatedMessagesWithinField(t *testing.T) {
	engine := New()
	res, err := engine.Validate([]Control{
		text("when", "2999-01-01", withValidators(validators.SimpleEmail, validators.PastDate), func(f *model.Field) {
			f.Messages = map[string]string{validators.SimpleEmail: "Invalid", validators.PastDate: "Invalid"}
		}),
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if diff := cmp.Diff([]string{"Invalid", "Invalid"}, res.Errors["when"]); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_DatePipeline(t *testing.T) {
	now := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.Local)
	engine := New(WithValidators(validators.New(validators.WithClock(func() time.Time { return now }))))
	res, err := engine.Validate([]Control{
		text("born", "11/01/2024", withValidators(validators.PastDate), withFilters(filters.AsDate), func(f *model.Field) {
			f.DateFormat = "DD/MM/YYYY"
		}),
		text("due", "2024-01-09", withValidators(validators.FutureDate)),
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := map[string][]string{
		"born": {validators.MessagePastDate},
		"due":  {validators.MessageFutureDate},
	}
	if diff := cmp.Diff(want, res.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if _, ok := res.Values["born"].(time.Time); !ok {
		t.Fatalf("born should be filtered to a time, got %#v", res.Values["born"])
	}
}

func TestValidate_ValidIffNoErrors(t *testing.T) {
	engine := New()
	inputs := [][]Control{
		nil,
		{text("a", "x", required)},
		{text("a", "", required)},
		{text("a", "a@b.c", withValidators(validators.SimpleEmail)), text("b", "", required)},
	}
	for i, controls := range inputs {
		res, err := engine.Validate(controls)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if res.Valid != (len(res.Errors) == 0) {
			t.Fatalf("case %d: valid=%v with %d errors", i, res.Valid, len(res.Errors))
		}
	}
}

func TestEffectiveValidators(t *testing.T) {
	cases := []struct {
		field model.Field
		want  []string
	}{
		{field: model.Field{Validators: []string{"simple_email"}}, want: []string{"simple_email"}},
		{field: model.Field{Required: true}, want: []string{"required"}},
		{field: model.Field{Required: true, Validators: []string{"required", "simple_email"}}, want: []string{"required", "simple_email"}},
		{field: model.Field{Required: true, Validators: []string{"simple_email", "required"}}, want: []string{"required", "simple_email"}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, EffectiveValidators(tc.field)); diff != "" {
			t.Fatalf("effective validators mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestDefaultIsShared(t *testing.T) {
	if Default() != Default() {
		t.Fatalf("default engine should be a singleton")
	}
}
