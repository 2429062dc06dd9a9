package filters

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-informal/pkg/model"
)

func TestAsInteger(t *testing.T) {
	reg := New()
	cases := []struct {
		in   any
		want any
	}{
		{in: "42", want: int64(42)},
		{in: "  -7", want: int64(-7)},
		{in: "3.9", want: int64(3)},
		{in: "12px", want: int64(12)},
		{in: "0", want: int64(0)},
		{in: 5, want: int64(5)},
		{in: 7.8, want: int64(7)},
		{in: -9.5, want: int64(-9)},
		{in: float64(math.MinInt64), want: int64(math.MinInt64)},
		{in: 1e19, want: 1e19},
		{in: -1e19, want: -1e19},
		{in: float64(math.MaxInt64), want: float64(math.MaxInt64)},
	}
	for _, tc := range cases {
		got, err := reg.Apply(AsInteger, tc.in, model.Field{})
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if got != tc.want {
			t.Fatalf("as_integer(%#v) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestAsInteger_NaNSentinel(t *testing.T) {
	reg := New()
	for _, in := range []any{"abc", "", model.Absent, nil, "-"} {
		for i := 0; i < 2; i++ {
			got, err := reg.Apply(AsInteger, in, model.Field{})
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if !IsNaN(got) {
				t.Fatalf("as_integer(%#v) = %#v, want NaN", in, got)
			}
		}
	}
}

func TestAsFloat(t *testing.T) {
	reg := New()
	cases := []struct {
		in   any
		want float64
	}{
		{in: "3.14", want: 3.14},
		{in: " 2.5e3kg", want: 2500},
		{in: ".5", want: 0.5},
		{in: "-1.", want: -1},
		{in: "1e", want: 1},
	}
	for _, tc := range cases {
		got, err := reg.Apply(AsFloat, tc.in, model.Field{})
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if got != tc.want {
			t.Fatalf("as_float(%#v) = %#v, want %v", tc.in, got, tc.want)
		}
	}

	inf, _ := reg.Apply(AsFloat, "-Infinity", model.Field{})
	if f, ok := inf.(float64); !ok || !math.IsInf(f, -1) {
		t.Fatalf("expected -Inf, got %#v", inf)
	}
	nan, _ := reg.Apply(AsFloat, "abc", model.Field{})
	if !IsNaN(nan) {
		t.Fatalf("expected NaN, got %#v", nan)
	}
}

func TestAsDate(t *testing.T) {
	reg := New()
	got, err := reg.Apply(AsDate, "05/06/2020", model.Field{DateFormat: "DD/MM/YYYY"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	ts, ok := got.(time.Time)
	if !ok || ts.Month() != time.June || ts.Day() != 5 {
		t.Fatalf("unexpected date %#v", got)
	}

	bad, _ := reg.Apply(AsDate, "garbage", model.Field{})
	if ts, ok := bad.(time.Time); !ok || !ts.IsZero() {
		t.Fatalf("expected zero time, got %#v", bad)
	}
}

func TestTrim(t *testing.T) {
	reg := New()
	got, _ := reg.Apply(Trim, []string{" a ", "b "}, model.Field{})
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Fatalf("trim mismatch (-want +got):\n%s", diff)
	}
}

func TestChain(t *testing.T) {
	reg := New()
	got, err := reg.Chain([]string{Trim, AsInteger}, "  19 ", model.Field{})
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if got != int64(19) {
		t.Fatalf("chain = %#v", got)
	}
}

func TestUnknownFilter(t *testing.T) {
	reg := New()
	_, err := reg.Apply("as_roman", "x", model.Field{})
	if !errors.Is(err, ErrUnknownFilter) {
		t.Fatalf("expected ErrUnknownFilter, got %v", err)
	}
	var unknown *UnknownFilterError
	if !errors.As(err, &unknown) || unknown.Name != "as_roman" {
		t.Fatalf("expected UnknownFilterError for as_roman, got %#v", err)
	}
}

func TestRegister(t *testing.T) {
	reg := NewEmpty()
	if err := reg.Register(" ", func(v any, _ model.Field) any { return v }); err == nil {
		t.Fatalf("expected error for blank name")
	}
	if err := reg.Register("upper", nil); err == nil {
		t.Fatalf("expected error for nil filter")
	}
	reg.MustRegister("twice", func(v any, _ model.Field) any { return v.(int64) * 2 })
	got, err := reg.Apply("twice", int64(4), model.Field{})
	if err != nil || got != int64(8) {
		t.Fatalf("twice = %#v (%v)", got, err)
	}
	if diff := cmp.Diff([]string{"twice"}, reg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}
