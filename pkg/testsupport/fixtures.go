// Package testsupport holds helpers shared by tests that parse markup and
// compare rendered trees against golden files.
package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-informal/pkg/dom"
)

// MustParse parses markup as a document.
func MustParse(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	return doc
}

// MustRender renders node, failing the test on error.
func MustRender(t *testing.T, node *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	if err := dom.Render(&buf, node); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden diffs want and got after trimming surrounding whitespace.
func CompareGolden(want, got string) string {
	return cmp.Diff(strings.TrimSpace(want), strings.TrimSpace(got))
}

// AssertGolden renders node and compares it with the golden file at path,
// rewriting the file instead when UPDATE_GOLDENS is set.
func AssertGolden(t *testing.T, path string, node *html.Node) {
	t.Helper()
	got := MustRender(t, node)
	if WriteMaybeGolden(t, path, []byte(got+"\n")) {
		return
	}
	want := MustReadGolden(t, path)
	if diff := CompareGolden(string(want), got); diff != "" {
		t.Fatalf("golden mismatch %s (-want +got):\n%s", path, diff)
	}
}
