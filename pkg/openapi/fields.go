package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-informal/pkg/filters"
	"github.com/goliatone/go-informal/pkg/model"
	"github.com/goliatone/go-informal/pkg/validators"
)

// Extension keys read from property schemas.
const (
	ExtValidators = "x-validators"
	ExtFilters    = "x-filters"
	ExtMessages   = "x-messages"
	ExtDateFormat = "x-datefmt"
	ExtCategory   = "x-category"
)

// ISODate is the date format applied to `format: date` properties.
const ISODate = "YYYY-MM-DD"

var requestMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// FieldsForOperation parses data and returns the fields of operation id.
func FieldsForOperation(ctx context.Context, data []byte, id string) ([]model.Field, error) {
	doc, err := NewLoader().LoadData(ctx, data, "<inline>")
	if err != nil {
		return nil, err
	}
	return doc.Fields(id)
}

// Fields derives descriptors from the request body of operation id. Object
// properties are visited in name order; nested objects flatten to
// bracketed names such as owner[email].
func (d *Document) Fields(id string) ([]model.Field, error) {
	op, ok := d.ops[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, id)
	}
	schema := requestSchema(op.op)
	if schema == nil {
		return nil, nil
	}
	fields, err := FieldsFromSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("openapi: operation %q: %w", id, err)
	}
	return fields, nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// FieldsFromSchema flattens the properties of an object schema.
func FieldsFromSchema(schema *openapi3.Schema) ([]model.Field, error) {
	var out []model.Field
	if err := collect(&out, schema, ""); err != nil {
		return nil, err
	}
	return out, nil
}

func collect(out *[]model.Field, schema *openapi3.Schema, prefix string) error {
	if schema == nil {
		return nil
	}
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		fieldName := name
		if prefix != "" {
			fieldName = prefix + "[" + name + "]"
		}

		if prop.Type.Is(openapi3.TypeObject) && len(prop.Properties) > 0 {
			if err := collect(out, prop, fieldName); err != nil {
				return err
			}
			continue
		}

		field, err := describe(fieldName, prop, required[name])
		if err != nil {
			return fmt.Errorf("property %q: %w", fieldName, err)
		}
		*out = append(*out, field)
	}
	return nil
}

func describe(name string, prop *openapi3.Schema, required bool) (model.Field, error) {
	field := model.Field{
		Name:       name,
		Category:   model.CategoryText,
		Required:   required,
		Validators: []string{},
	}

	validatorNames, err := stringList(prop.Extensions[ExtValidators])
	if err != nil {
		return model.Field{}, fmt.Errorf("%s: %w", ExtValidators, err)
	}
	filterNames, err := stringList(prop.Extensions[ExtFilters])
	if err != nil {
		return model.Field{}, fmt.Errorf("%s: %w", ExtFilters, err)
	}
	field.Validators = append(field.Validators, validatorNames...)
	field.Filters = filterNames

	switch {
	case prop.Type.Is(openapi3.TypeBoolean):
		field.Category = model.CategoryCheckbox
		field.Value = "true"
	case prop.Type.Is(openapi3.TypeArray) && prop.Items != nil && prop.Items.Value != nil && len(prop.Items.Value.Enum) > 0:
		field.Category = model.CategoryMultiSelect
		field.Options = enumOptions(prop.Items.Value.Enum)
	case len(prop.Enum) > 0:
		field.Category = model.CategorySelect
		field.Options = enumOptions(prop.Enum)
	case prop.Type.Is(openapi3.TypeInteger):
		field.Filters = appendMissing(field.Filters, filters.AsInteger)
	case prop.Type.Is(openapi3.TypeNumber):
		field.Filters = appendMissing(field.Filters, filters.AsFloat)
	case prop.Type.Is(openapi3.TypeString):
		switch prop.Format {
		case "email":
			field.Validators = appendMissing(field.Validators, validators.SimpleEmail)
		case "date":
			field.DateFormat = ISODate
			field.Filters = appendMissing(field.Filters, filters.AsDate)
		case "date-time":
			field.Filters = appendMissing(field.Filters, filters.AsDate)
		}
	}

	if format, ok := prop.Extensions[ExtDateFormat].(string); ok && strings.TrimSpace(format) != "" {
		field.DateFormat = strings.TrimSpace(format)
	}
	if category, ok := prop.Extensions[ExtCategory].(string); ok && strings.TrimSpace(category) != "" {
		field.Category = model.Category(strings.TrimSpace(category))
	}

	messages, err := stringMap(prop.Extensions[ExtMessages])
	if err != nil {
		return model.Field{}, fmt.Errorf("%s: %w", ExtMessages, err)
	}
	field.Messages = messages

	return field, nil
}

func enumOptions(values []any) []model.Option {
	out := make([]model.Option, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		text := fmt.Sprint(value)
		out = append(out, model.Option{Value: text, Label: text})
	}
	return out
}

func appendMissing(list []string, name string) []string {
	for _, have := range list {
		if have == name {
			return list
		}
	}
	return append(list, name)
}

// stringList accepts a comma separated string or a list of strings.
func stringList(raw any) ([]string, error) {
	switch value := raw.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		var decoded any
		if err := json.Unmarshal(value, &decoded); err != nil {
			return nil, err
		}
		return stringList(decoded)
	case string:
		var out []string
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out, nil
	case []string:
		return stringList(strings.Join(value, ","))
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			text, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string entries, got %T", item)
			}
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected string or list, got %T", raw)
	}
}

func stringMap(raw any) (map[string]string, error) {
	switch value := raw.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		var decoded any
		if err := json.Unmarshal(value, &decoded); err != nil {
			return nil, err
		}
		return stringMap(decoded)
	case map[string]any:
		out := make(map[string]string, len(value))
		for key, item := range value {
			text, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("message %q: expected string, got %T", key, item)
			}
			out[key] = text
		}
		return out, nil
	case map[string]string:
		out := make(map[string]string, len(value))
		for key, item := range value {
			out[key] = item
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected object, got %T", raw)
	}
}
