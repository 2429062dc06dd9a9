package validators

import (
	"errors"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/goliatone/go-informal/pkg/model"
)

func TestRequired(t *testing.T) {
	reg := New()
	cases := []struct {
		name  string
		value any
		fails bool
	}{
		{name: "empty string", value: "", fails: true},
		{name: "nil", value: nil, fails: true},
		{name: "absent", value: model.Absent, fails: true},
		{name: "nan", value: math.NaN(), fails: true},
		{name: "no selection", value: []string{}, fails: true},
		{name: "zero int", value: int64(0), fails: false},
		{name: "zero float", value: 0.0, fails: false},
		{name: "text", value: "x", fails: false},
		{name: "selection", value: []string{"a"}, fails: false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			msg, err := reg.Apply(Required, tc.value, model.Field{})
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if (msg != "") != tc.fails {
				t.Fatalf("required(%#v) = %q, fails=%v", tc.value, msg, tc.fails)
			}
			if tc.fails && msg != MessageRequired {
				t.Fatalf("unexpected message %q", msg)
			}
		})
	}
}

func TestSimpleEmail(t *testing.T) {
	reg := New()
	valid := []string{"a@b.c", "first.last@example.co.uk", "x y@z.w"}
	invalid := []string{"", "a@b", "@b.c", "a@.c", "ab.c", "a@b."}
	for _, value := range valid {
		if msg, _ := reg.Apply(SimpleEmail, value, model.Field{}); msg != "" {
			t.Fatalf("expected %q to pass, got %q", value, msg)
		}
	}
	for _, value := range invalid {
		if msg, _ := reg.Apply(SimpleEmail, value, model.Field{}); msg != MessageSimpleEmail {
			t.Fatalf("expected %q to fail, got %q", value, msg)
		}
	}
}

func TestPastDate(t *testing.T) {
	now := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	reg := New(WithClock(func() time.Time { return now }))

	if msg, _ := reg.Apply(PastDate, "", model.Field{}); msg != "" {
		t.Fatalf("empty should pass, got %q", msg)
	}
	if msg, _ := reg.Apply(PastDate, now.Add(time.Hour), model.Field{}); msg != MessagePastDate {
		t.Fatalf("future timestamp should fail, got %q", msg)
	}
	if msg, _ := reg.Apply(PastDate, now.Add(-time.Hour), model.Field{}); msg != "" {
		t.Fatalf("past timestamp should pass, got %q", msg)
	}
	if msg, _ := reg.Apply(PastDate, now.Add(time.Hour).Format(time.RFC3339), model.Field{}); msg != MessagePastDate {
		t.Fatalf("future RFC3339 string should fail, got %q", msg)
	}
	if msg, _ := reg.Apply(PastDate, now, model.Field{}); msg != "" {
		t.Fatalf("the current moment is not strictly after now, got %q", msg)
	}
}

func TestPastDate_RealClock(t *testing.T) {
	reg := New()
	if msg, _ := reg.Apply(PastDate, time.Now().Add(time.Hour), model.Field{}); msg == "" {
		t.Fatalf("expected an hour ahead to fail")
	}
	if msg, _ := reg.Apply(PastDate, time.Now().Add(-time.Hour), model.Field{}); msg != "" {
		t.Fatalf("expected an hour ago to pass, got %q", msg)
	}
}

func TestFutureDate(t *testing.T) {
	now := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	reg := New(WithClock(func() time.Time { return now }))

	if msg, _ := reg.Apply(FutureDate, model.Absent, model.Field{}); msg != "" {
		t.Fatalf("absent should pass, got %q", msg)
	}
	if msg, _ := reg.Apply(FutureDate, now.Add(-time.Hour), model.Field{}); msg != MessageFutureDate {
		t.Fatalf("past timestamp should fail, got %q", msg)
	}
	if msg, _ := reg.Apply(FutureDate, now.Add(time.Hour), model.Field{}); msg != "" {
		t.Fatalf("future timestamp should pass, got %q", msg)
	}
}

func TestClockReadPerInvocation(t *testing.T) {
	calls := 0
	reg := New(WithClock(func() time.Time {
		calls++
		return time.Now()
	}))
	for i := 0; i < 3; i++ {
		_, _ = reg.Apply(FutureDate, time.Now().Add(time.Hour), model.Field{})
	}
	if calls != 3 {
		t.Fatalf("expected clock read per invocation, got %d reads", calls)
	}
}

func TestDate(t *testing.T) {
	reg := New()
	if msg, _ := reg.Apply(Date, "2020-02-30", model.Field{}); msg != MessageDate {
		t.Fatalf("invalid day should fail, got %q", msg)
	}
	if msg, _ := reg.Apply(Date, "29/02/2020", model.Field{DateFormat: "DD/MM/YYYY"}); msg != "" {
		t.Fatalf("explicit format should pass, got %q", msg)
	}
}

func TestUnknownValidator(t *testing.T) {
	reg := New()
	_, err := reg.Apply("luhn", "4111", model.Field{})
	if !errors.Is(err, ErrUnknownValidator) {
		t.Fatalf("expected ErrUnknownValidator, got %v", err)
	}
}

func TestPatternAndOverride(t *testing.T) {
	reg := New(WithoutBuiltins())
	if reg.Has(Required) {
		t.Fatalf("builtins should be skipped")
	}
	reg.MustRegister("zip", Pattern(regexp.MustCompile(`^\d{5}$`), "Invalid ZIP"))
	if msg, _ := reg.Apply("zip", "1234", model.Field{}); msg != "Invalid ZIP" {
		t.Fatalf("zip = %q", msg)
	}
	if err := reg.Override("zip", "Five digits please"); err != nil {
		t.Fatalf("override: %v", err)
	}
	if msg, _ := reg.Apply("zip", "1234", model.Field{}); msg != "Five digits please" {
		t.Fatalf("override = %q", msg)
	}
	if msg, _ := reg.Apply("zip", "12345", model.Field{}); msg != "" {
		t.Fatalf("valid zip = %q", msg)
	}
	if err := reg.Override("missing", "x"); !errors.Is(err, ErrUnknownValidator) {
		t.Fatalf("override of missing validator should fail, got %v", err)
	}
}
