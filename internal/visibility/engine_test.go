package visibility_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/veil-notes/veil/internal/filter"
	"github.com/veil-notes/veil/internal/metadata"
	"github.com/veil-notes/veil/internal/visibility"
)

type fakeSource struct {
	records map[string]*metadata.Record
}

func (f *fakeSource) Record(path string) *metadata.Record {
	return f.records[path]
}

func newTestEngine(t testing.TB) (*visibility.Engine, string) {
	t.Helper()

	source := &fakeSource{records: map[string]*metadata.Record{
		"done.md":  metadata.FromMap(map[string]interface{}{"status": "completed"}),
		"draft.md": metadata.FromMap(map[string]interface{}{"status": "draft"}),
		// plain.md has no front-matter at all
	}}

	set := filter.DefaultSet()
	set.Append(filter.Predicate{
		Key:      "status",
		Operator: filter.OpEquals,
		Type:     filter.TypeText,
		Value:    "completed",
	})

	path := filepath.Join(t.TempDir(), "filters.json")
	return visibility.NewEngine(set, path, source, nil), path
}

func TestEngineVisibility(t *testing.T) {
	e, _ := newTestEngine(t)

	if e.IsVisible("done.md") {
		t.Fatal("completed note should be hidden")
	}
	if !e.IsVisible("draft.md") {
		t.Fatal("draft note should be visible")
	}
	if !e.IsVisible("plain.md") {
		t.Fatal("note without metadata should stay visible under hide-semantics")
	}

	visible, hidden := e.Partition([]string{"done.md", "draft.md", "plain.md"})
	if len(visible) != 2 || visible[0] != "draft.md" || visible[1] != "plain.md" {
		t.Fatalf("visible = %v", visible)
	}
	if len(hidden) != 1 || hidden[0] != "done.md" {
		t.Fatalf("hidden = %v", hidden)
	}
}

func TestMutatePersistsBeforeNotifying(t *testing.T) {
	e, path := newTestEngine(t)

	var sawPersisted bool
	e.Subscribe(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("filter file missing during notification: %v", err)
			return
		}
		sawPersisted = strings.Contains(string(data), "priority")
	})

	if _, err := e.AddPredicate(filter.Predicate{
		Key:      "priority",
		Operator: filter.OpGreaterThan,
		Type:     filter.TypeNumber,
		Value:    "2",
	}); err != nil {
		t.Fatalf("AddPredicate failed: %v", err)
	}

	if !sawPersisted {
		t.Fatal("subscriber ran before the mutation was persisted")
	}
}

func TestMutateAbortsOnRuleError(t *testing.T) {
	e, path := newTestEngine(t)

	notified := 0
	e.Subscribe(func() { notified++ })

	err := e.RemovePredicate(5)
	if err == nil {
		t.Fatal("expected out-of-range error")
	}
	var ie *filter.IndexError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IndexError, got %v", err)
	}

	if notified != 0 {
		t.Fatal("failed mutation must not notify")
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatal("failed mutation must not persist")
	}
}

func TestMutateSaveFailureKeepsStateAndNotifies(t *testing.T) {
	source := &fakeSource{records: map[string]*metadata.Record{}}
	// A directory at the target path makes the write fail.
	path := t.TempDir()
	e := visibility.NewEngine(filter.DefaultSet(), path, source, nil)

	notified := 0
	e.Subscribe(func() { notified++ })

	_, err := e.AddPredicate(filter.Predicate{Key: "k", Operator: filter.OpExists})
	if err == nil {
		t.Fatal("expected persist failure")
	}

	if len(e.Set().Predicates) != 1 {
		t.Fatal("in-memory state must survive a failed persist")
	}
	if notified != 1 {
		t.Fatalf("subscribers should still run after a failed persist, got %d", notified)
	}
}

func TestInvalidateFansOut(t *testing.T) {
	e, _ := newTestEngine(t)

	calls := 0
	e.Subscribe(func() { calls++ })
	e.Subscribe(func() { calls++ })

	e.Invalidate()
	if calls != 2 {
		t.Fatalf("expected both subscribers to run, got %d calls", calls)
	}
}

func TestAddQuickFilter(t *testing.T) {
	e, path := newTestEngine(t)

	rec := metadata.NewRecord()
	rec.Set("tags", metadata.List(metadata.Text("work"), metadata.Text("draft")))

	p, err := e.AddQuickFilter(rec)
	if err != nil {
		t.Fatalf("AddQuickFilter failed: %v", err)
	}
	if p.Operator != filter.OpIncludes || p.Type != filter.TypeList || p.Value != "work" {
		t.Fatalf("inferred rule = %+v", p)
	}

	loaded, err := filter.Load(path)
	if err != nil {
		t.Fatalf("reloading filters: %v", err)
	}
	if len(loaded.Predicates) != 2 {
		t.Fatalf("expected 2 persisted rules, got %d", len(loaded.Predicates))
	}

	if _, err := e.AddQuickFilter(nil); err == nil {
		t.Fatal("quick filter over an empty record should fail")
	}
}

func TestSetSurfaceValidation(t *testing.T) {
	e, _ := newTestEngine(t)

	if err := e.SetSurface(filter.SurfaceQuickSwitch, true); err != nil {
		t.Fatalf("SetSurface failed: %v", err)
	}
	if !e.Enabled(filter.SurfaceQuickSwitch) {
		t.Fatal("quick-switch toggle lost")
	}

	if err := e.SetSurface(filter.Surface("sidebar"), true); err == nil {
		t.Fatal("unknown surface should be rejected")
	}
}
