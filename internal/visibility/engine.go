// Package visibility owns the process-wide filter set and applies it to the
// vault surfaces.
package visibility

import (
	"fmt"
	"sync"

	"github.com/veil-notes/veil/internal/filter"
	"github.com/veil-notes/veil/internal/logger"
	"github.com/veil-notes/veil/internal/metadata"
)

// RecordSource yields the decoded front-matter for a vault note, or nil
// when the note has none.
type RecordSource interface {
	Record(path string) *metadata.Record
}

// Engine holds the single mutable filter set. Every mutation runs the same
// sequence: apply, persist, notify subscribers, so displayed state never
// drifts from stored configuration. A failed persist keeps the in-memory
// state and still notifies; the error goes back to the caller.
type Engine struct {
	mu       sync.Mutex
	set      *filter.Set
	path     string
	source   RecordSource
	subs     []func()
	log      *logger.Logger
	disarmed bool
}

// NewEngine wraps a loaded filter set. path is where mutations persist.
func NewEngine(set *filter.Set, path string, source RecordSource, log *logger.Logger) *Engine {
	if set == nil {
		set = filter.DefaultSet()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{set: set, path: path, source: source, log: log}
}

// Set exposes the current configuration for display. Mutation goes through
// Mutate and the typed wrappers only.
func (e *Engine) Set() *filter.Set {
	return e.set
}

// Enabled reports whether filtering applies on the given surface.
func (e *Engine) Enabled(surface filter.Surface) bool {
	e.mu.Lock()
	disarmed := e.disarmed
	e.mu.Unlock()
	if disarmed {
		return false
	}
	return e.set.Enabled(surface)
}

// Disarm switches filtering off on every surface for the rest of the
// process. The persisted configuration is untouched.
func (e *Engine) Disarm() {
	e.mu.Lock()
	e.disarmed = true
	e.mu.Unlock()
	e.log.Debug().Msg("visibility filtering disarmed for this run")
}

// IsVisible decides visibility for a note path using its cached record.
func (e *Engine) IsVisible(path string) bool {
	var rec *metadata.Record
	if e.source != nil {
		rec = e.source.Record(path)
	}
	return e.set.Visible(rec)
}

// Visible decides visibility for an already-decoded record.
func (e *Engine) Visible(rec *metadata.Record) bool {
	return e.set.Visible(rec)
}

// Partition splits paths into visible and hidden, preserving input order.
func (e *Engine) Partition(paths []string) (visible, hidden []string) {
	for _, p := range paths {
		if e.IsVisible(p) {
			visible = append(visible, p)
		} else {
			hidden = append(hidden, p)
		}
	}
	return visible, hidden
}

// Subscribe registers fn to run after every successful mutation and on
// external invalidation.
func (e *Engine) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.subs = append(e.subs, fn)
	e.mu.Unlock()
}

// Invalidate fans out to subscribers. The state layer calls this when
// watcher events change records out from under the surfaces.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	subs := make([]func(), len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Mutate applies fn to the filter set, persists it, then notifies. An error
// from fn aborts before persisting; a persist error is returned after the
// notification fan-out.
func (e *Engine) Mutate(fn func(*filter.Set) error) error {
	e.mu.Lock()
	if err := fn(e.set); err != nil {
		e.mu.Unlock()
		return err
	}

	saveErr := filter.Save(e.path, e.set)
	if saveErr != nil {
		e.log.Error().Err(saveErr).Str("path", e.path).Msg("persisting filter set failed")
	}
	subs := make([]func(), len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
	return saveErr
}

// AddPredicate appends a fully formed rule.
func (e *Engine) AddPredicate(p filter.Predicate) (int, error) {
	idx := -1
	err := e.Mutate(func(s *filter.Set) error {
		idx = s.Append(p)
		return nil
	})
	return idx, err
}

// AddDefault appends the safe default rule for interactive editing.
func (e *Engine) AddDefault() (int, error) {
	idx := -1
	err := e.Mutate(func(s *filter.Set) error {
		idx = s.Add()
		return nil
	})
	return idx, err
}

// RemovePredicate deletes the rule at index.
func (e *Engine) RemovePredicate(i int) error {
	return e.Mutate(func(s *filter.Set) error { return s.Remove(i) })
}

// UpdateKey changes the metadata key of the rule at index.
func (e *Engine) UpdateKey(i int, key string) error {
	return e.Mutate(func(s *filter.Set) error { return s.SetKey(i, key) })
}

// UpdateValue changes the comparison operand of the rule at index.
func (e *Engine) UpdateValue(i int, value string) error {
	return e.Mutate(func(s *filter.Set) error { return s.SetValue(i, value) })
}

// UpdateOperator changes the operator of the rule at index, correcting the
// declared type when the operator mandates one.
func (e *Engine) UpdateOperator(i int, op filter.Operator) error {
	return e.Mutate(func(s *filter.Set) error { return s.SetOperator(i, op) })
}

// UpdateType changes the declared field type of the rule at index.
func (e *Engine) UpdateType(i int, t filter.FieldType) error {
	return e.Mutate(func(s *filter.Set) error { return s.SetType(i, t) })
}

// SetCombineWithAnd switches between all-rules and any-rule matching.
func (e *Engine) SetCombineWithAnd(and bool) error {
	return e.Mutate(func(s *filter.Set) error {
		s.CombineWithAnd = and
		return nil
	})
}

// SetHideMatches switches between hiding matches and showing only matches.
func (e *Engine) SetHideMatches(hide bool) error {
	return e.Mutate(func(s *filter.Set) error {
		s.HideMatches = hide
		return nil
	})
}

// SetSurface toggles filtering for one surface.
func (e *Engine) SetSurface(surface filter.Surface, enabled bool) error {
	return e.Mutate(func(s *filter.Set) error {
		switch surface {
		case filter.SurfaceExplorer:
			s.OnExplorer = enabled
		case filter.SurfaceSearch:
			s.OnSearch = enabled
		case filter.SurfaceQuickSwitch:
			s.OnQuickSwitch = enabled
		default:
			return fmt.Errorf("unknown surface %q", surface)
		}
		return nil
	})
}

// AddQuickFilter infers a rule from a record's first key/value pair and
// appends it.
func (e *Engine) AddQuickFilter(rec *metadata.Record) (filter.Predicate, error) {
	p, ok := filter.QuickFilter(rec)
	if !ok {
		return filter.Predicate{}, fmt.Errorf("note has no metadata to filter on")
	}

	_, err := e.AddPredicate(p)
	return p, err
}
