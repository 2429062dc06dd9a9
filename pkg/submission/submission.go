// Package submission reads field values from an HTTP form submission using
// the same category semantics as the DOM adapter: an unchecked checkbox is
// Absent, a multi-select yields its submitted options in declaration order.
package submission

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/goliatone/go-informal/pkg/model"
)

// Control reads one field from submitted values.
type Control struct {
	Desc   model.Field
	Values url.Values
}

// Field returns the descriptor.
func (c Control) Field() model.Field { return c.Desc }

// Value resolves the submitted value for the field's category.
func (c Control) Value() any {
	submitted, present := c.Values[c.Desc.Name]
	switch c.Desc.Category {
	case model.CategoryCheckbox:
		own := c.Desc.OwnValue()
		for _, v := range submitted {
			if v == own {
				return own
			}
		}
		return model.Absent
	case model.CategoryRadio:
		return radioValue(c.Desc, submitted)
	case model.CategoryMultiSelect:
		return multiValue(c.Desc, submitted)
	default:
		if !present || len(submitted) == 0 {
			return ""
		}
		return submitted[0]
	}
}

func radioValue(field model.Field, submitted []string) any {
	if len(submitted) == 0 {
		return model.Absent
	}
	if len(field.Options) == 0 {
		return submitted[0]
	}
	for _, v := range submitted {
		for _, opt := range field.Options {
			if opt.Value == v {
				return v
			}
		}
	}
	return model.Absent
}

func multiValue(field model.Field, submitted []string) any {
	out := []string{}
	if len(field.Options) == 0 {
		return append(out, submitted...)
	}
	chosen := make(map[string]struct{}, len(submitted))
	for _, v := range submitted {
		chosen[v] = struct{}{}
	}
	for _, opt := range field.Options {
		if _, ok := chosen[opt.Value]; ok {
			out = append(out, opt.Value)
		}
	}
	return out
}

// Bind pairs descriptors with submitted values, folding radio members that
// share a name into one control positioned at the first member.
func Bind(fields []model.Field, values url.Values) []Control {
	out := make([]Control, 0, len(fields))
	groups := make(map[string]int)
	members := make(map[string][]model.Field)

	for _, field := range fields {
		if field.Grouped() {
			if _, ok := groups[field.Name]; ok {
				members[field.Name] = append(members[field.Name], field)
				continue
			}
			groups[field.Name] = len(out)
			members[field.Name] = []model.Field{field}
		}
		out = append(out, Control{Desc: field, Values: values})
	}
	for name, idx := range groups {
		out[idx].Desc = model.MergeGroup(members[name])
	}
	return out
}

// FromRequest parses the request form and binds fields to it.
func FromRequest(r *http.Request, fields []model.Field) ([]Control, error) {
	if r == nil {
		return nil, fmt.Errorf("submission: request is required")
	}
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("submission: parse form: %w", err)
	}
	return Bind(fields, r.Form), nil
}
