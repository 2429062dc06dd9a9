package model_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-informal/pkg/model"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  bool
	}{
		{name: "nil", value: nil, want: true},
		{name: "absent", value: model.Absent, want: true},
		{name: "empty string", value: "", want: true},
		{name: "nan", value: math.NaN(), want: true},
		{name: "empty slice", value: []string{}, want: true},
		{name: "zero time", value: time.Time{}, want: true},
		{name: "zero int", value: int64(0), want: false},
		{name: "zero float", value: 0.0, want: false},
		{name: "text", value: "x", want: false},
		{name: "false", value: false, want: false},
		{name: "selection", value: []string{"a"}, want: false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := model.IsEmpty(tc.value); got != tc.want {
				t.Fatalf("IsEmpty(%#v) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestAbsentIsDistinctFromEmptyString(t *testing.T) {
	if model.IsAbsent("") {
		t.Fatalf("empty string must not be the absent marker")
	}
	if !model.IsAbsent(model.Absent) {
		t.Fatalf("absent marker not recognised")
	}
	payload, err := json.Marshal(map[string]any{"cb": model.Absent})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(payload) != `{"cb":null}` {
		t.Fatalf("unexpected json %s", payload)
	}
}

func TestFieldValidated(t *testing.T) {
	if (model.Field{Name: "a"}).Validated() {
		t.Fatalf("bare field should not be validated")
	}
	if !(model.Field{Name: "a", Validators: []string{}}).Validated() {
		t.Fatalf("declared empty validator list should be validated")
	}
	if !(model.Field{Name: "a", Required: true}).Validated() {
		t.Fatalf("required field should be validated")
	}
}

func TestMergeGroup(t *testing.T) {
	members := []model.Field{
		{Name: "size", Category: model.CategoryRadio, Value: "s"},
		{Name: "size", Category: model.CategoryRadio, Value: "m", Required: true, Messages: map[string]string{"required": "Pick one"}},
		{Name: "size", Category: model.CategoryRadio, Value: "on"},
	}
	got := model.MergeGroup(members)
	want := model.Field{
		Name:     "size",
		Category: model.CategoryRadio,
		Value:    "s",
		Required: true,
		Messages: map[string]string{"required": "Pick one"},
		Options:  []model.Option{{Value: "s"}, {Value: "m"}, {Value: "on"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merged group mismatch (-want +got):\n%s", diff)
	}
}

func TestResultFields(t *testing.T) {
	res := model.Result{Errors: map[string][]string{"b": {"x"}, "a": {"y", "z"}}}
	if diff := cmp.Diff([]string{"a", "b"}, res.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if got := res.Error("a"); got != "y" {
		t.Fatalf("first error = %q", got)
	}
}
