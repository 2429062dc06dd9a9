package value

import (
	"golang.org/x/net/html"

	"github.com/goliatone/go-informal/pkg/dom"
	"github.com/goliatone/go-informal/pkg/markup"
	"github.com/goliatone/go-informal/pkg/model"
)

// State is the captured default of one control, used to emulate a native
// form reset on a parsed tree.
type State struct {
	node     *html.Node
	category model.Category
	value    string
	hasValue bool
	checked  bool
	selected []bool
	text     string
}

// Snapshot captures the current state of node as its default.
func Snapshot(node *html.Node) State {
	state := State{node: node, category: markup.CategoryOf(node)}
	switch state.category {
	case model.CategoryTextArea:
		state.text = dom.Text(node)
	case model.CategoryCheckbox, model.CategoryRadio:
		state.checked = dom.HasAttr(node, "checked")
	case model.CategorySelect, model.CategoryMultiSelect:
		for _, opt := range dom.Options(node) {
			state.selected = append(state.selected, dom.HasAttr(opt, "selected"))
		}
	default:
		state.value, state.hasValue = dom.Attr(node, "value")
	}
	return state
}

// Restore puts the control back into its captured state.
func (s State) Restore() {
	if s.node == nil {
		return
	}
	switch s.category {
	case model.CategoryTextArea:
		dom.SetText(s.node, s.text)
	case model.CategoryCheckbox, model.CategoryRadio:
		dom.ToggleAttr(s.node, "checked", s.checked)
	case model.CategorySelect, model.CategoryMultiSelect:
		for i, opt := range dom.Options(s.node) {
			dom.ToggleAttr(opt, "selected", i < len(s.selected) && s.selected[i])
		}
	default:
		if s.hasValue {
			dom.SetAttr(s.node, "value", s.value)
		} else {
			dom.RemoveAttr(s.node, "value")
		}
	}
}

// SnapshotAll captures every node.
func SnapshotAll(nodes []*html.Node) []State {
	out := make([]State, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, Snapshot(node))
	}
	return out
}
