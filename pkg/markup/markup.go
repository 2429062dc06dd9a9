// Package markup reads the declarative validation annotations carried by
// HTML controls and turns them into model.Field descriptors.
package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-informal/pkg/dom"
	"github.com/goliatone/go-informal/pkg/model"
)

// Attributes names the markup attributes read by Describe.
type Attributes struct {
	Required      string `json:"required" yaml:"required"`
	Validators    string `json:"validators" yaml:"validators"`
	Filters       string `json:"filters" yaml:"filters"`
	MessagePrefix string `json:"messagePrefix" yaml:"messagePrefix"`
	DateFormat    string `json:"dateFormat" yaml:"dateFormat"`
}

// DefaultAttributes returns the attribute names used when none are configured.
func DefaultAttributes() Attributes {
	return Attributes{
		Required:      "required",
		Validators:    "data-validators",
		Filters:       "data-filters",
		MessagePrefix: "data-message-",
		DateFormat:    "data-datefmt",
	}
}

// WithDefaults fills blank names from DefaultAttributes.
func (a Attributes) WithDefaults() Attributes {
	def := DefaultAttributes()
	if strings.TrimSpace(a.Required) == "" {
		a.Required = def.Required
	}
	if strings.TrimSpace(a.Validators) == "" {
		a.Validators = def.Validators
	}
	if strings.TrimSpace(a.Filters) == "" {
		a.Filters = def.Filters
	}
	if strings.TrimSpace(a.MessagePrefix) == "" {
		a.MessagePrefix = def.MessagePrefix
	}
	if strings.TrimSpace(a.DateFormat) == "" {
		a.DateFormat = def.DateFormat
	}
	return a
}

// ParseList splits a comma separated attribute into trimmed, non-empty names
// preserving order.
func ParseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// CategoryOf derives the control category from the element and its type.
func CategoryOf(node *html.Node) model.Category {
	if node == nil {
		return model.CategoryText
	}
	switch node.DataAtom {
	case atom.Select:
		if dom.HasAttr(node, "multiple") {
			return model.CategoryMultiSelect
		}
		return model.CategorySelect
	case atom.Textarea:
		return model.CategoryTextArea
	case atom.Input:
		switch strings.ToLower(strings.TrimSpace(dom.AttrOr(node, "type", ""))) {
		case "checkbox":
			return model.CategoryCheckbox
		case "radio":
			return model.CategoryRadio
		}
	}
	return model.CategoryText
}

// Describe reads the annotations of node.
func (a Attributes) Describe(node *html.Node) model.Field {
	a = a.WithDefaults()
	field := model.Field{
		Name:     dom.AttrOr(node, "name", ""),
		Category: CategoryOf(node),
		Required: dom.HasAttr(node, a.Required),
	}
	if raw, ok := dom.Attr(node, a.Validators); ok {
		field.Validators = ParseList(raw)
	}
	if raw, ok := dom.Attr(node, a.Filters); ok {
		if filters := ParseList(raw); len(filters) > 0 {
			field.Filters = filters
		}
	}
	field.Messages = dom.AttrsWithPrefix(node, a.MessagePrefix)
	if format, ok := dom.Attr(node, a.DateFormat); ok {
		field.DateFormat = strings.TrimSpace(format)
	}

	switch field.Category {
	case model.CategoryCheckbox, model.CategoryRadio:
		field.Value = dom.AttrOr(node, "value", model.DefaultOwnValue)
	case model.CategorySelect, model.CategoryMultiSelect:
		for _, opt := range dom.Options(node) {
			field.Options = append(field.Options, model.Option{
				Value:    dom.OptionValue(opt),
				Label:    dom.CollapseSpace(dom.Text(opt)),
				Selected: dom.HasAttr(opt, "selected"),
			})
		}
	}
	return field
}

// Describe reads node with the default attribute names.
func Describe(node *html.Node) model.Field {
	return DefaultAttributes().Describe(node)
}
