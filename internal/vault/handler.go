package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/veil-notes/veil/internal/pathutil"
)

// Handler resolves note files inside a vault directory.
type Handler struct {
	dir     string
	ignored []string
}

// NewHandler returns a handler rooted at dir. Folder names in ignored are
// skipped during walks, as are dot-directories.
func NewHandler(dir string, ignored []string) *Handler {
	return &Handler{
		dir:     filepath.Clean(dir),
		ignored: append([]string(nil), ignored...),
	}
}

// Dir returns the vault root.
func (h *Handler) Dir() string {
	return h.dir
}

// Notes walks the vault and returns the absolute path of every note file,
// sorted for stable output.
func (h *Handler) Notes() ([]string, error) {
	var files []string
	err := filepath.WalkDir(h.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			if path == h.dir {
				return nil
			}
			if strings.HasPrefix(name, ".") || h.isIgnored(name) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}
		if pathutil.IsNote(name) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking vault: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// Subdirectories lists the vault's top-level folders, skipping dot and
// ignored directories.
func (h *Handler) Subdirectories() ([]string, error) {
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		return nil, fmt.Errorf("reading vault directory: %w", err)
	}

	var subDirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") || h.isIgnored(name) {
			continue
		}
		subDirs = append(subDirs, name)
	}

	sort.Strings(subDirs)
	return subDirs, nil
}

func (h *Handler) isIgnored(name string) bool {
	for _, dir := range h.ignored {
		if strings.EqualFold(name, dir) {
			return true
		}
	}
	return false
}
