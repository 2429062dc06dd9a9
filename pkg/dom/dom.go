package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse reads a full HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	return doc, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(markup string) (*html.Node, error) {
	return Parse(strings.NewReader(markup))
}

// Render writes node and its descendants as HTML.
func Render(w io.Writer, node *html.Node) error {
	if node == nil {
		return nil
	}
	if err := html.Render(w, node); err != nil {
		return fmt.Errorf("dom: render: %w", err)
	}
	return nil
}

// Walk visits root and its descendants in document order. Returning false
// from fn skips the node's subtree.
func Walk(root *html.Node, fn func(*html.Node) bool) {
	if root == nil {
		return
	}
	if !fn(root) {
		return
	}
	for child := root.FirstChild; child != nil; {
		next := child.NextSibling
		Walk(child, fn)
		child = next
	}
}

// FindAll returns every element under root matching pred, in document order.
func FindAll(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	Walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Find returns the first element under root matching pred.
func Find(root *html.Node, pred func(*html.Node) bool) *html.Node {
	var found *html.Node
	Walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == html.ElementNode && pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindByID returns the element with the given id attribute.
func FindByID(root *html.Node, id string) *html.Node {
	return Find(root, func(n *html.Node) bool {
		value, ok := Attr(n, "id")
		return ok && value == id
	})
}

// FindForm returns root when it is a <form>, else its first <form>
// descendant, else nil.
func FindForm(root *html.Node) *html.Node {
	if IsElement(root, atom.Form) {
		return root
	}
	return Find(root, func(n *html.Node) bool { return n.DataAtom == atom.Form })
}

// Closest returns the nearest ancestor of node (node included) matching pred.
func Closest(node *html.Node, pred func(*html.Node) bool) *html.Node {
	for n := node; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && pred(n) {
			return n
		}
	}
	return nil
}

// IsElement reports whether node is an element of the given kind.
func IsElement(node *html.Node, kind atom.Atom) bool {
	return node != nil && node.Type == html.ElementNode && node.DataAtom == kind
}

// Remove detaches node from its parent.
func Remove(node *html.Node) {
	if node != nil && node.Parent != nil {
		node.Parent.RemoveChild(node)
	}
}

// InsertAfter places node directly after ref.
func InsertAfter(ref, node *html.Node) {
	if ref == nil || ref.Parent == nil || node == nil {
		return
	}
	ref.Parent.InsertBefore(node, ref.NextSibling)
}

// Element builds a detached element with the given attributes in order
// key, value, key, value...
func Element(tag string, attrs ...string) *html.Node {
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		node.Attr = append(node.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return node
}
