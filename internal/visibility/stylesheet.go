package visibility

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/veil-notes/veil/internal/constants"
)

// Stylesheet renders per-path suppression rules for the hidden notes, one
// attribute selector per path, sorted for stable output. Paths are the
// vault-relative, slash-separated identifiers renderers key their file
// nodes by.
func Stylesheet(hidden []string) string {
	paths := make([]string, 0, len(hidden))
	for _, p := range hidden {
		if strings.TrimSpace(p) == "" {
			continue
		}
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var b strings.Builder
	b.WriteString("/* generated by veil: suppression rules for hidden notes */\n")
	for _, p := range paths {
		fmt.Fprintf(&b, "div[data-path=\"%s\"] { display: none; }\n", escapeAttr(p))
	}
	return b.String()
}

// escapeAttr escapes a path for use inside a double-quoted CSS attribute
// selector. Backslashes must be doubled before quotes are escaped.
func escapeAttr(p string) string {
	p = strings.ReplaceAll(p, `\`, `\\`)
	p = strings.ReplaceAll(p, `"`, `\"`)
	return p
}

// SnippetPath returns where WriteSnippet places the stylesheet for a vault.
func SnippetPath(vaultDir string) string {
	return filepath.Join(vaultDir, constants.SnippetDir, constants.SnippetFile)
}

// WriteSnippet writes the stylesheet into the vault's snippets directory so
// Obsidian-style renderers pick it up.
func WriteSnippet(vaultDir, css string) (string, error) {
	path := SnippetPath(vaultDir)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating snippets directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(css), 0o644); err != nil {
		return "", fmt.Errorf("writing snippet: %w", err)
	}
	return path, nil
}
