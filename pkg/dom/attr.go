package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Attr returns the value of key and whether it is present.
func Attr(node *html.Node, key string) (string, bool) {
	if node == nil {
		return "", false
	}
	for _, attr := range node.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, key) {
			return attr.Val, true
		}
	}
	return "", false
}

// AttrOr returns the value of key or fallback when missing.
func AttrOr(node *html.Node, key, fallback string) string {
	if value, ok := Attr(node, key); ok {
		return value
	}
	return fallback
}

// HasAttr reports whether key is present, regardless of value.
func HasAttr(node *html.Node, key string) bool {
	_, ok := Attr(node, key)
	return ok
}

// SetAttr adds or replaces key.
func SetAttr(node *html.Node, key, value string) {
	if node == nil {
		return
	}
	for i := range node.Attr {
		if node.Attr[i].Namespace == "" && strings.EqualFold(node.Attr[i].Key, key) {
			node.Attr[i].Val = value
			return
		}
	}
	node.Attr = append(node.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr deletes every occurrence of key.
func RemoveAttr(node *html.Node, key string) {
	if node == nil || len(node.Attr) == 0 {
		return
	}
	kept := node.Attr[:0]
	for _, attr := range node.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, key) {
			continue
		}
		kept = append(kept, attr)
	}
	node.Attr = kept
}

// ToggleAttr sets a boolean attribute when on and removes it otherwise.
func ToggleAttr(node *html.Node, key string, on bool) {
	if on {
		if !HasAttr(node, key) {
			SetAttr(node, key, "")
		}
		return
	}
	RemoveAttr(node, key)
}

// AttrsWithPrefix returns attributes whose key starts with prefix, keyed by
// the remainder.
func AttrsWithPrefix(node *html.Node, prefix string) map[string]string {
	if node == nil || prefix == "" {
		return nil
	}
	var out map[string]string
	lower := strings.ToLower(prefix)
	for _, attr := range node.Attr {
		key := strings.ToLower(attr.Key)
		if !strings.HasPrefix(key, lower) || len(key) == len(lower) {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[key[len(lower):]] = attr.Val
	}
	return out
}

// Classes returns the class list of node.
func Classes(node *html.Node) []string {
	return strings.Fields(AttrOr(node, "class", ""))
}

// HasClass reports whether node carries class.
func HasClass(node *html.Node, class string) bool {
	for _, existing := range Classes(node) {
		if existing == class {
			return true
		}
	}
	return false
}

// AddClass appends class unless already present.
func AddClass(node *html.Node, class string) {
	if node == nil || class == "" || HasClass(node, class) {
		return
	}
	SetAttr(node, "class", strings.TrimSpace(strings.Join(append(Classes(node), class), " ")))
}

// RemoveClass drops class, removing the attribute when nothing remains.
func RemoveClass(node *html.Node, class string) {
	if !HasClass(node, class) {
		return
	}
	var kept []string
	for _, existing := range Classes(node) {
		if existing != class {
			kept = append(kept, existing)
		}
	}
	if len(kept) == 0 {
		RemoveAttr(node, "class")
		return
	}
	SetAttr(node, "class", strings.Join(kept, " "))
}
