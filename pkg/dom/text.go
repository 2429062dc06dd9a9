package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Text returns the concatenated text content of node.
func Text(node *html.Node) string {
	if node == nil {
		return ""
	}
	var b strings.Builder
	Walk(node, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String()
}

// SetText replaces the children of node with a single text node.
func SetText(node *html.Node, text string) {
	if node == nil {
		return
	}
	for child := node.FirstChild; child != nil; {
		next := child.NextSibling
		node.RemoveChild(child)
		child = next
	}
	if text != "" {
		node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// CollapseSpace strips and collapses ASCII whitespace the way option labels
// are normalised.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
