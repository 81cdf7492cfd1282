package filter

import (
	"fmt"

	"github.com/veil-notes/veil/internal/metadata"
)

// Surface identifies a host surface that consults the visibility policy.
type Surface string

const (
	SurfaceExplorer    Surface = "explorer"
	SurfaceSearch      Surface = "search"
	SurfaceQuickSwitch Surface = "quick-switch"
)

// Set is the persisted filter configuration: ordered rules plus the
// combination mode, the hide/show inversion, and per-surface routing
// toggles. Rule order is insertion order and only matters for display.
type Set struct {
	Predicates     []Predicate `json:"predicates"`
	CombineWithAnd bool        `json:"combine_with_and"`
	HideMatches    bool        `json:"hide_matches"`
	OnExplorer     bool        `json:"on_explorer"`
	OnSearch       bool        `json:"on_search"`
	OnQuickSwitch  bool        `json:"on_quick_switch"`
}

// DefaultSet returns the configuration used when nothing is persisted:
// hide matching notes, require every rule, filter explorer and search but
// not the quick-switcher.
func DefaultSet() *Set {
	return &Set{
		CombineWithAnd: true,
		HideMatches:    true,
		OnExplorer:     true,
		OnSearch:       true,
		OnQuickSwitch:  false,
	}
}

// Active reports whether any rules are configured. An empty set means
// filtering is off entirely.
func (s *Set) Active() bool {
	return s != nil && len(s.Predicates) > 0
}

// Matches reports whether a record satisfies the configured rules under the
// combination mode: all of them when CombineWithAnd, any one otherwise.
func (s *Set) Matches(rec *metadata.Record) bool {
	if s.CombineWithAnd {
		for _, p := range s.Predicates {
			if !Evaluate(rec, p) {
				return false
			}
		}
		return true
	}

	for _, p := range s.Predicates {
		if Evaluate(rec, p) {
			return true
		}
	}
	return false
}

// Visible decides whether a note with the given record should be shown.
//
// Zero rules means no filtering and everything stays visible. A note
// without metadata can never match a key-based rule, so its fate rides on
// the inversion flag alone: shown under hide-semantics, hidden when only
// matches are shown.
func (s *Set) Visible(rec *metadata.Record) bool {
	if !s.Active() {
		return true
	}
	if rec.Len() == 0 {
		return s.HideMatches
	}

	matches := s.Matches(rec)
	if s.HideMatches {
		return !matches
	}
	return matches
}

// Enabled reports whether filtering applies on the given surface.
func (s *Set) Enabled(surface Surface) bool {
	if s == nil {
		return false
	}
	switch surface {
	case SurfaceExplorer:
		return s.OnExplorer
	case SurfaceSearch:
		return s.OnSearch
	case SurfaceQuickSwitch:
		return s.OnQuickSwitch
	default:
		return false
	}
}

// IndexError reports a mutation aimed at a rule that does not exist.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("rule index %d out of range (have %d)", e.Index, e.Len)
}

func (s *Set) check(i int) error {
	if i < 0 || i >= len(s.Predicates) {
		return &IndexError{Index: i, Len: len(s.Predicates)}
	}
	return nil
}

// Add appends a default rule and returns its index. Appending never fails.
func (s *Set) Add() int {
	return s.Append(NewPredicate())
}

// Append adds a fully formed rule and returns its index.
func (s *Set) Append(p Predicate) int {
	s.Predicates = append(s.Predicates, p)
	return len(s.Predicates) - 1
}

// Remove deletes the rule at index, shifting the tail down.
func (s *Set) Remove(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.Predicates = append(s.Predicates[:i], s.Predicates[i+1:]...)
	return nil
}

// SetKey updates the metadata key of the rule at index.
func (s *Set) SetKey(i int, key string) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.Predicates[i].Key = key
	return nil
}

// SetValue updates the comparison operand of the rule at index.
func (s *Set) SetValue(i int, value string) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.Predicates[i].Value = value
	return nil
}

// SetOperator updates the operator of the rule at index. Switching to an
// operator that mandates a field type corrects the type in the same step,
// so a stored rule never pairs an ordering comparison with text.
func (s *Set) SetOperator(i int, op Operator) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.Predicates[i].Operator = op
	if required, ok := op.RequiredType(); ok {
		s.Predicates[i].Type = required
	}
	return nil
}

// SetType updates the declared field type of the rule at index.
func (s *Set) SetType(i int, t FieldType) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.Predicates[i].Type = t
	return nil
}

// QuickFilter builds a rule from a record's first key/value pair in
// document order, inferring operator and type from the value's shape. For
// lists the operand is the first element, since an element scan against
// the joined form would never match.
func QuickFilter(rec *metadata.Record) (Predicate, bool) {
	key, val, ok := rec.First()
	if !ok {
		return Predicate{}, false
	}

	p := Predicate{Key: key, Value: val.String()}
	switch val.Kind() {
	case metadata.KindList:
		p.Operator = OpIncludes
		p.Type = TypeList
		if items := val.Strings(); len(items) > 0 {
			p.Value = items[0]
		}
	case metadata.KindNumber:
		p.Operator = OpEquals
		p.Type = TypeNumber
	case metadata.KindBool:
		p.Operator = OpEquals
		p.Type = TypeBoolean
	default:
		p.Operator = OpContains
		p.Type = TypeText
	}
	return p, true
}
