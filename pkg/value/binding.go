package value

import (
	"golang.org/x/net/html"

	"github.com/goliatone/go-informal/pkg/model"
)

// Binding ties a field descriptor to the node(s) holding its value. Radio
// groups bind every member under one descriptor.
type Binding struct {
	Desc  model.Field
	Nodes []*html.Node
}

// Field returns the descriptor.
func (b Binding) Field() model.Field { return b.Desc }

// Value reads the current value from the bound nodes.
func (b Binding) Value() any {
	if len(b.Nodes) == 0 {
		return model.Absent
	}
	if b.Desc.Grouped() {
		return GroupValue(b.Nodes)
	}
	return GetAs(b.Nodes[0], b.Desc.Category)
}

// Set writes v into every bound node.
func (b Binding) Set(v any) {
	for _, node := range b.Nodes {
		SetAs(node, b.Desc.Category, v)
	}
}

// Bind describes nodes in document order, folding radios that share a name
// into a single binding positioned at the first member.
func Bind(nodes []*html.Node, describe func(*html.Node) model.Field) []Binding {
	out := make([]Binding, 0, len(nodes))
	groups := make(map[string]int)
	members := make(map[string][]model.Field)

	for _, node := range nodes {
		field := describe(node)
		if field.Grouped() {
			if idx, ok := groups[field.Name]; ok {
				out[idx].Nodes = append(out[idx].Nodes, node)
				members[field.Name] = append(members[field.Name], field)
				continue
			}
			groups[field.Name] = len(out)
			members[field.Name] = []model.Field{field}
		}
		out = append(out, Binding{Desc: field, Nodes: []*html.Node{node}})
	}

	for name, idx := range groups {
		out[idx].Desc = model.MergeGroup(members[name])
	}
	return out
}
