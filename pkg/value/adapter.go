// Package value normalises the value semantics of heterogeneous HTML
// controls. Each model.Category has one handler; unknown categories use the
// scalar handler.
package value

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/net/html"

	"github.com/goliatone/go-informal/pkg/dom"
	"github.com/goliatone/go-informal/pkg/markup"
	"github.com/goliatone/go-informal/pkg/model"
)

type handler interface {
	get(node *html.Node) any
	set(node *html.Node, v any)
}

var handlers = map[model.Category]handler{
	model.CategoryText:        scalarHandler{},
	model.CategoryTextArea:    textAreaHandler{},
	model.CategoryCheckbox:    checkedHandler{},
	model.CategoryRadio:       checkedHandler{},
	model.CategorySelect:      selectHandler{},
	model.CategoryMultiSelect: multiSelectHandler{},
}

func handlerFor(category model.Category) handler {
	if h, ok := handlers[category]; ok {
		return h
	}
	return scalarHandler{}
}

// Get returns the logical value of node.
func Get(node *html.Node) any {
	return GetAs(node, markup.CategoryOf(node))
}

// GetAs reads node using an explicit category.
func GetAs(node *html.Node, category model.Category) any {
	return handlerFor(category).get(node)
}

// Set writes v into node.
func Set(node *html.Node, v any) {
	SetAs(node, markup.CategoryOf(node), v)
}

// SetAs writes v using an explicit category.
func SetAs(node *html.Node, category model.Category, v any) {
	handlerFor(category).set(node, v)
}

// Stringify renders a scalar the way it is written into a value attribute.
func Stringify(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case time.Time:
		if typed.IsZero() {
			return ""
		}
		return typed.Format(time.RFC3339)
	case fmt.Stringer:
		if model.IsAbsent(v) {
			return ""
		}
		return typed.String()
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

// Strings normalises v into a list of option values.
func Strings(v any) ([]string, bool) {
	switch typed := v.(type) {
	case []string:
		return typed, true
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			out = append(out, Stringify(item))
		}
		return out, true
	default:
		return nil, false
	}
}

type scalarHandler struct{}

func (scalarHandler) get(node *html.Node) any {
	return dom.AttrOr(node, "value", "")
}

func (scalarHandler) set(node *html.Node, v any) {
	if list, ok := Strings(v); ok {
		if len(list) > 0 {
			v = list[0]
		} else {
			v = ""
		}
	}
	dom.SetAttr(node, "value", Stringify(v))
}

type textAreaHandler struct{}

func (textAreaHandler) get(node *html.Node) any {
	return dom.Text(node)
}

func (textAreaHandler) set(node *html.Node, v any) {
	dom.SetText(node, Stringify(v))
}

type checkedHandler struct{}

func (checkedHandler) get(node *html.Node) any {
	if !dom.HasAttr(node, "checked") {
		return model.Absent
	}
	return dom.AttrOr(node, "value", model.DefaultOwnValue)
}

func (checkedHandler) set(node *html.Node, v any) {
	if on, ok := v.(bool); ok {
		dom.ToggleAttr(node, "checked", on)
		return
	}
	own := dom.AttrOr(node, "value", model.DefaultOwnValue)
	if list, ok := Strings(v); ok {
		dom.ToggleAttr(node, "checked", contains(list, own))
		return
	}
	dom.ToggleAttr(node, "checked", !model.IsAbsent(v) && v != nil && Stringify(v) == own)
}

type selectHandler struct{}

func (selectHandler) get(node *html.Node) any {
	opts := dom.Options(node)
	for _, opt := range opts {
		if dom.HasAttr(opt, "selected") {
			return dom.OptionValue(opt)
		}
	}
	for _, opt := range opts {
		if !dom.HasAttr(opt, "disabled") {
			return dom.OptionValue(opt)
		}
	}
	return ""
}

func (selectHandler) set(node *html.Node, v any) {
	if list, ok := Strings(v); ok {
		if len(list) > 0 {
			v = list[0]
		} else {
			v = ""
		}
	}
	want := Stringify(v)
	matched := false
	for _, opt := range dom.Options(node) {
		on := !matched && dom.OptionValue(opt) == want
		if on {
			matched = true
		}
		dom.ToggleAttr(opt, "selected", on)
	}
}

type multiSelectHandler struct{}

func (multiSelectHandler) get(node *html.Node) any {
	out := []string{}
	for _, opt := range dom.Options(node) {
		if dom.HasAttr(opt, "selected") {
			out = append(out, dom.OptionValue(opt))
		}
	}
	return out
}

func (multiSelectHandler) set(node *html.Node, v any) {
	list, ok := Strings(v)
	if !ok {
		list = []string{Stringify(v)}
	}
	for _, opt := range dom.Options(node) {
		dom.ToggleAttr(opt, "selected", contains(list, dom.OptionValue(opt)))
	}
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
