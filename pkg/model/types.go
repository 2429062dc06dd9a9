package model

import "strings"

// Category is the tagged variant used to dispatch value handling for a
// control. Unknown categories are treated as CategoryText by every adapter.
type Category string

const (
	CategoryText        Category = "text"
	CategoryCheckbox    Category = "checkbox"
	CategoryRadio       Category = "radio"
	CategorySelect      Category = "select"
	CategoryMultiSelect Category = "select-multiple"
	CategoryTextArea    Category = "textarea"
)

// Option is a single select option in declaration order.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label,omitempty"`
	Selected bool   `json:"selected,omitempty"`
}

// DefaultOwnValue is the value a checkbox or radio without a value
// attribute submits when checked.
const DefaultOwnValue = "on"

// Field describes one named control and its validation annotations.
//
// Validators distinguishes "not declared" (nil) from "declared but empty"
// (non-nil, zero length); only the former excludes a non-required field from
// validation.
type Field struct {
	Name       string            `json:"name"`
	Category   Category          `json:"category"`
	Required   bool              `json:"required,omitempty"`
	Validators []string          `json:"validators,omitempty"`
	Filters    []string          `json:"filters,omitempty"`
	Messages   map[string]string `json:"messages,omitempty"`
	DateFormat string            `json:"dateFormat,omitempty"`
	Value      string            `json:"value,omitempty"`
	Options    []Option          `json:"options,omitempty"`
}

// Validated reports whether the engine should examine the field.
func (f Field) Validated() bool {
	return f.Required || f.Validators != nil
}

// Message returns the declared override for validator name, if any.
func (f Field) Message(name string) (string, bool) {
	if len(f.Messages) == 0 {
		return "", false
	}
	msg, ok := f.Messages[name]
	if !ok || strings.TrimSpace(msg) == "" {
		return "", false
	}
	return msg, true
}

// OwnValue returns the value a checkbox or radio submits when checked. An
// empty Value is a real value: the control submits "name=".
func (f Field) OwnValue() string {
	return f.Value
}

// Grouped reports whether controls sharing the field name form a single
// logical value.
func (f Field) Grouped() bool {
	return f.Category == CategoryRadio
}

// Result aggregates one validation pass. Valid holds iff Errors is empty.
type Result struct {
	Valid  bool                `json:"valid"`
	Values map[string]any      `json:"values"`
	Errors map[string][]string `json:"errors"`
}

// NewResult returns an empty, valid result with initialised maps.
func NewResult() Result {
	return Result{
		Valid:  true,
		Values: make(map[string]any),
		Errors: make(map[string][]string),
	}
}

// Error returns the first message recorded for name.
func (r Result) Error(name string) string {
	if msgs := r.Errors[name]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Fields lists the names carrying errors in sorted order.
func (r Result) Fields() []string {
	return sortedKeys(r.Errors)
}
