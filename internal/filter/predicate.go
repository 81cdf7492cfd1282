// Package filter implements the rule model and visibility policy deciding
// which vault notes are shown on each surface.
package filter

import "fmt"

// Operator names the comparison applied between a record value and a rule's
// comparison operand.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpContains    Operator = "contains"
	OpExists      Operator = "exists"
	OpIncludes    Operator = "includes"
	OpGreaterThan Operator = "greater-than"
	OpLessThan    Operator = "less-than"
)

// FieldType declares how both comparison operands are coerced before the
// operator runs. Ignored by exists.
type FieldType string

const (
	TypeText    FieldType = "text"
	TypeNumber  FieldType = "number"
	TypeList    FieldType = "list"
	TypeBoolean FieldType = "boolean"
)

// Predicate is one filter rule: read Key from a record and compare it to
// Value under Operator, coercing per Type.
type Predicate struct {
	Key      string    `json:"key"`
	Value    string    `json:"value"`
	Operator Operator  `json:"operator"`
	Type     FieldType `json:"type"`
}

// NewPredicate returns the safe default rule: an empty text equality.
func NewPredicate() Predicate {
	return Predicate{Operator: OpEquals, Type: TypeText}
}

// String renders the rule the way the CLI shows it.
func (p Predicate) String() string {
	if p.Operator == OpExists {
		return fmt.Sprintf("%s exists", p.Key)
	}
	return fmt.Sprintf("%s %s %q (%s)", p.Key, p.Operator, p.Value, p.Type)
}

// Valid reports whether the operator is one of the known forms.
func (o Operator) Valid() bool {
	switch o {
	case OpEquals, OpContains, OpExists, OpIncludes, OpGreaterThan, OpLessThan:
		return true
	}
	return false
}

// RequiredType returns the field type the operator mandates, if any:
// ordering comparisons are numeric, substring search is text, element
// scans are list.
func (o Operator) RequiredType() (FieldType, bool) {
	switch o {
	case OpGreaterThan, OpLessThan:
		return TypeNumber, true
	case OpContains:
		return TypeText, true
	case OpIncludes:
		return TypeList, true
	}
	return "", false
}

// Valid reports whether the field type is one of the known forms.
func (t FieldType) Valid() bool {
	switch t {
	case TypeText, TypeNumber, TypeList, TypeBoolean:
		return true
	}
	return false
}

// Operators lists the known operators in display order.
func Operators() []Operator {
	return []Operator{OpEquals, OpContains, OpExists, OpIncludes, OpGreaterThan, OpLessThan}
}

// FieldTypes lists the known field types in display order.
func FieldTypes() []FieldType {
	return []FieldType{TypeText, TypeNumber, TypeList, TypeBoolean}
}

// ParseOperator validates a user-supplied operator name.
func ParseOperator(s string) (Operator, error) {
	op := Operator(s)
	if !op.Valid() {
		return "", fmt.Errorf("unknown operator %q (valid: equals, contains, exists, includes, greater-than, less-than)", s)
	}
	return op, nil
}

// ParseFieldType validates a user-supplied field type name.
func ParseFieldType(s string) (FieldType, error) {
	t := FieldType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown field type %q (valid: text, number, list, boolean)", s)
	}
	return t, nil
}
