package filter

import (
	"strings"

	"github.com/veil-notes/veil/internal/metadata"
)

// Evaluate reports whether a record satisfies one rule. It is total:
// malformed rules, mismatched shapes, and unknown operators evaluate to
// false instead of failing, so one bad rule never takes down a surface.
//
// All text comparison is case-insensitive, including the canonical
// "true"/"false" boolean forms.
func Evaluate(rec *metadata.Record, p Predicate) bool {
	raw := rec.Get(p.Key)

	// exists only asks whether the key carries a non-null value; the
	// declared type and operand are ignored.
	if p.Operator == OpExists {
		return !raw.IsAbsent()
	}

	if raw.IsAbsent() {
		return false
	}

	switch p.Operator {
	case OpEquals:
		if p.Type == TypeNumber {
			// NaN never equals anything, so garbage operands fail closed.
			return raw.Float() == operandFloat(p)
		}
		return strings.EqualFold(raw.String(), p.Value)
	case OpContains:
		return strings.Contains(strings.ToLower(raw.String()), strings.ToLower(p.Value))
	case OpIncludes:
		for _, item := range raw.Strings() {
			if strings.EqualFold(item, p.Value) {
				return true
			}
		}
		return false
	case OpGreaterThan:
		return raw.Float() > operandFloat(p)
	case OpLessThan:
		return raw.Float() < operandFloat(p)
	default:
		return false
	}
}

func operandFloat(p Predicate) float64 {
	return metadata.Text(p.Value).Float()
}
