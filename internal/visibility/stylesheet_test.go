package visibility_test

import (
	"os"
	"strings"
	"testing"

	"github.com/veil-notes/veil/internal/visibility"
)

func TestStylesheetEscapesSelectors(t *testing.T) {
	css := visibility.Stylesheet([]string{
		`notes/plain.md`,
		`notes/has"quote.md`,
		`notes\backslash.md`,
	})

	if !strings.Contains(css, `div[data-path="notes/plain.md"] { display: none; }`) {
		t.Fatalf("plain rule missing:\n%s", css)
	}
	if !strings.Contains(css, `div[data-path="notes/has\"quote.md"]`) {
		t.Fatalf("quote not escaped:\n%s", css)
	}
	if !strings.Contains(css, `div[data-path="notes\\backslash.md"]`) {
		t.Fatalf("backslash not escaped:\n%s", css)
	}
}

func TestStylesheetIsSortedAndSkipsBlanks(t *testing.T) {
	css := visibility.Stylesheet([]string{"b.md", "", "a.md", "  "})

	aIdx := strings.Index(css, `"a.md"`)
	bIdx := strings.Index(css, `"b.md"`)
	if aIdx == -1 || bIdx == -1 || aIdx > bIdx {
		t.Fatalf("rules not sorted:\n%s", css)
	}
	if strings.Count(css, "display: none") != 2 {
		t.Fatalf("blank paths should be skipped:\n%s", css)
	}
}

func TestStylesheetEmptyHiddenSet(t *testing.T) {
	css := visibility.Stylesheet(nil)
	if strings.Contains(css, "data-path") {
		t.Fatalf("empty hidden set should produce no rules:\n%s", css)
	}
}

func TestWriteSnippet(t *testing.T) {
	vault := t.TempDir()
	css := visibility.Stylesheet([]string{"done.md"})

	path, err := visibility.WriteSnippet(vault, css)
	if err != nil {
		t.Fatalf("WriteSnippet failed: %v", err)
	}
	if path != visibility.SnippetPath(vault) {
		t.Fatalf("snippet path = %q, want %q", path, visibility.SnippetPath(vault))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snippet: %v", err)
	}
	if string(data) != css {
		t.Fatalf("snippet content mismatch:\n%s", data)
	}
}
