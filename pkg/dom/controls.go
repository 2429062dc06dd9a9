package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// IsControl reports whether node is a named, value-bearing form control:
// input (excluding button-like types), select or textarea.
func IsControl(node *html.Node) bool {
	if node == nil || node.Type != html.ElementNode {
		return false
	}
	if _, ok := Attr(node, "name"); !ok {
		return false
	}
	switch node.DataAtom {
	case atom.Select, atom.Textarea:
		return true
	case atom.Input:
		switch strings.ToLower(AttrOr(node, "type", "")) {
		case "submit", "reset", "button", "image":
			return false
		}
		return true
	default:
		return false
	}
}

// Controls returns every named control under root in document order.
func Controls(root *html.Node) []*html.Node {
	return FindAll(root, IsControl)
}

// Named returns the first control under root with the given name.
func Named(root *html.Node, name string) *html.Node {
	return Find(root, func(n *html.Node) bool {
		if !IsControl(n) {
			return false
		}
		value, _ := Attr(n, "name")
		return value == name
	})
}

// Options returns the <option> elements of a select in declaration order,
// including those nested in <optgroup>.
func Options(sel *html.Node) []*html.Node {
	return FindAll(sel, func(n *html.Node) bool { return n.DataAtom == atom.Option })
}

// OptionValue returns the value attribute of opt, or its collapsed text.
func OptionValue(opt *html.Node) string {
	if value, ok := Attr(opt, "value"); ok {
		return value
	}
	return CollapseSpace(Text(opt))
}
