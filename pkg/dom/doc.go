// Package dom wraps golang.org/x/net/html with the small query and mutation
// helpers the form layer needs: document-order enumeration of named
// controls, ancestor lookup, class toggling and attribute access.
package dom
