package filter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Load reads a persisted rule set, layering stored fields over the defaults
// so files written by older versions keep working. A missing file is not an
// error and yields the defaults.
func Load(path string) (*Set, error) {
	s := DefaultSet()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("reading filters: %w", err)
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing filters: %w", err)
	}
	return s, nil
}

// Save writes the rule set as indented JSON, creating the parent directory
// when needed.
func Save(path string, s *Set) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding filters: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating filters directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing filters: %w", err)
	}
	return nil
}
