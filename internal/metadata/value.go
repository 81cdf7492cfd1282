// Package metadata models decoded front-matter as an ordered mapping of
// variant values, so every comparison in the filter layer flows through one
// coercion surface.
package metadata

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Kind identifies the runtime shape of a Value.
type Kind int

const (
	KindAbsent Kind = iota
	KindText
	KindNumber
	KindBool
	KindList
)

// Value is a tagged union over the shapes front-matter can carry. The zero
// Value is absent, which doubles as the "null or missing" case.
type Value struct {
	kind Kind
	text string
	num  float64
	b    bool
	list []Value
}

// Text returns a text value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Number returns a numeric value.
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// List returns a list value over the provided items.
func List(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

// FromAny converts an arbitrary decoded value into a Value. Unknown shapes
// degrade to their printed text form rather than failing.
func FromAny(v interface{}) Value {
	switch t := v.(type) {
	case nil:
		return Value{}
	case Value:
		return t
	case string:
		return Text(t)
	case bool:
		return Bool(t)
	case int:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case uint:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case float32:
		return Number(float64(t))
	case float64:
		return Number(t)
	case time.Time:
		return Text(t.Format(time.RFC3339))
	case []interface{}:
		items := make([]Value, 0, len(t))
		for _, item := range t {
			items = append(items, FromAny(item))
		}
		return List(items...)
	case []string:
		items := make([]Value, 0, len(t))
		for _, item := range t {
			items = append(items, Text(item))
		}
		return List(items...)
	default:
		return Text(fmt.Sprint(t))
	}
}

// Kind returns the value's runtime shape.
func (v Value) Kind() Kind {
	return v.kind
}

// IsAbsent reports whether the value is missing or null.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// String returns the canonical text form: numbers in their shortest decimal
// form, booleans as "true"/"false", lists comma-joined.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		parts := make([]string, 0, len(v.list))
		for _, item := range v.list {
			parts = append(parts, item.String())
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

// Float coerces the value to a float64. Anything that does not parse as a
// number yields NaN, never an error.
func (v Value) Float() float64 {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindAbsent:
		return math.NaN()
	default:
		n, err := cast.ToFloat64E(strings.TrimSpace(v.String()))
		if err != nil {
			return math.NaN()
		}
		return n
	}
}

// Items returns the elements of a list value, or nil for any other kind.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.list
}

// Strings returns the string forms of a list value's elements, or nil for
// any other kind.
func (v Value) Strings() []string {
	if v.kind != KindList {
		return nil
	}
	out := make([]string, 0, len(v.list))
	for _, item := range v.list {
		out = append(out, item.String())
	}
	return out
}
