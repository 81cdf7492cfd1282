package filter_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/veil-notes/veil/internal/filter"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.json")

	s, err := filter.Load(path)
	if err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}
	if s.Active() {
		t.Fatal("defaults should carry no rules")
	}
	if !s.CombineWithAnd || !s.HideMatches || !s.OnExplorer || !s.OnSearch || s.OnQuickSwitch {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestLoadMergesPartialFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.json")
	partial := `{
  "predicates": [{"key": "status", "value": "done", "operator": "equals", "type": "text"}],
  "hide_matches": false
}`
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	s, err := filter.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(s.Predicates) != 1 || s.Predicates[0].Key != "status" {
		t.Fatalf("predicates not loaded: %+v", s.Predicates)
	}
	if s.HideMatches {
		t.Fatal("stored hide_matches=false should override the default")
	}
	if !s.CombineWithAnd || !s.OnExplorer || !s.OnSearch || s.OnQuickSwitch {
		t.Fatalf("missing fields should fall back to defaults: %+v", s)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "filters.json")

	s := filter.DefaultSet()
	s.CombineWithAnd = false
	s.OnQuickSwitch = true
	s.Append(filter.Predicate{Key: "tags", Value: "work", Operator: filter.OpIncludes, Type: filter.TypeList})

	if err := filter.Save(path, s); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := filter.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(loaded.Predicates) != 1 || loaded.Predicates[0] != s.Predicates[0] {
		t.Fatalf("rules changed across round trip: %+v", loaded.Predicates)
	}
	if loaded.CombineWithAnd != s.CombineWithAnd ||
		loaded.HideMatches != s.HideMatches ||
		loaded.OnQuickSwitch != s.OnQuickSwitch {
		t.Fatalf("flags changed across round trip: %+v", loaded)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	for _, field := range []string{"predicates", "combine_with_and", "hide_matches", "on_explorer", "on_search", "on_quick_switch"} {
		if !strings.Contains(string(data), field) {
			t.Fatalf("saved layout missing %q: %s", field, data)
		}
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := filter.Load(path); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}
