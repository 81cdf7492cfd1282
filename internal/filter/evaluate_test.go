package filter_test

import (
	"testing"

	"github.com/veil-notes/veil/internal/filter"
	"github.com/veil-notes/veil/internal/metadata"
)

func record(t testing.TB, fields map[string]interface{}) *metadata.Record {
	t.Helper()
	return metadata.FromMap(fields)
}

func TestExistsIgnoresValueAndType(t *testing.T) {
	rec := record(t, map[string]interface{}{"status": "draft"})

	for _, ft := range filter.FieldTypes() {
		p := filter.Predicate{Key: "status", Operator: filter.OpExists, Type: ft, Value: "nonsense"}
		if !filter.Evaluate(rec, p) {
			t.Fatalf("exists with type %q should match a present key", ft)
		}
	}

	p := filter.Predicate{Key: "missing", Operator: filter.OpExists, Type: filter.TypeText}
	if filter.Evaluate(rec, p) {
		t.Fatal("exists should not match a missing key")
	}

	withNull := record(t, map[string]interface{}{"status": nil})
	if filter.Evaluate(withNull, filter.Predicate{Key: "status", Operator: filter.OpExists}) {
		t.Fatal("exists should not match an explicit null")
	}
}

func TestTextComparisonsAreCaseInsensitive(t *testing.T) {
	rec := record(t, map[string]interface{}{"k": "Foo"})

	eq := filter.Predicate{Key: "k", Operator: filter.OpEquals, Type: filter.TypeText, Value: "foo"}
	if !filter.Evaluate(rec, eq) {
		t.Fatal("equals should fold case")
	}

	contains := filter.Predicate{Key: "k", Operator: filter.OpContains, Type: filter.TypeText, Value: "OO"}
	if !filter.Evaluate(rec, contains) {
		t.Fatal("contains should fold case")
	}
}

func TestMissingKeyNeverMatchesValueOperators(t *testing.T) {
	rec := record(t, map[string]interface{}{})

	ops := []filter.Operator{
		filter.OpEquals,
		filter.OpContains,
		filter.OpIncludes,
		filter.OpGreaterThan,
		filter.OpLessThan,
	}
	for _, op := range ops {
		p := filter.Predicate{Key: "absent", Operator: op, Type: filter.TypeText, Value: "x"}
		if filter.Evaluate(rec, p) {
			t.Fatalf("operator %q matched a missing key", op)
		}
	}
}

func TestNumericOperatorsAbsorbGarbage(t *testing.T) {
	rec := record(t, map[string]interface{}{"k": "abc"})

	gt := filter.Predicate{Key: "k", Operator: filter.OpGreaterThan, Type: filter.TypeNumber, Value: "1"}
	if filter.Evaluate(rec, gt) {
		t.Fatal("greater-than over non-numeric raw should be false")
	}

	lt := filter.Predicate{Key: "k", Operator: filter.OpLessThan, Type: filter.TypeNumber, Value: "1"}
	if filter.Evaluate(rec, lt) {
		t.Fatal("less-than over non-numeric raw should be false")
	}

	badOperand := filter.Predicate{Key: "k", Operator: filter.OpGreaterThan, Type: filter.TypeNumber, Value: "lots"}
	if filter.Evaluate(record(t, map[string]interface{}{"k": 5}), badOperand) {
		t.Fatal("greater-than with a non-numeric operand should be false")
	}
}

func TestNumericEquality(t *testing.T) {
	rec := record(t, map[string]interface{}{"priority": 3})

	p := filter.Predicate{Key: "priority", Operator: filter.OpEquals, Type: filter.TypeNumber, Value: "3.0"}
	if !filter.Evaluate(rec, p) {
		t.Fatal("3 should equal \"3.0\" under numeric coercion")
	}

	p.Value = "4"
	if filter.Evaluate(rec, p) {
		t.Fatal("3 should not equal \"4\"")
	}

	garbage := record(t, map[string]interface{}{"priority": "high"})
	p.Value = "3"
	if filter.Evaluate(garbage, p) {
		t.Fatal("non-numeric raw under numeric equals should be false, not an error")
	}
}

func TestBooleanEqualityFoldsCase(t *testing.T) {
	rec := record(t, map[string]interface{}{"done": true})

	for _, operand := range []string{"true", "True", "TRUE"} {
		p := filter.Predicate{Key: "done", Operator: filter.OpEquals, Type: filter.TypeBoolean, Value: operand}
		if !filter.Evaluate(rec, p) {
			t.Fatalf("boolean equals should accept %q", operand)
		}
	}

	p := filter.Predicate{Key: "done", Operator: filter.OpEquals, Type: filter.TypeBoolean, Value: "false"}
	if filter.Evaluate(rec, p) {
		t.Fatal("true should not equal \"false\"")
	}

	asText := record(t, map[string]interface{}{"done": "TRUE"})
	p.Value = "true"
	if !filter.Evaluate(asText, p) {
		t.Fatal("textual \"TRUE\" should equal \"true\" under boolean coercion")
	}
}

func TestIncludesRequiresList(t *testing.T) {
	scalar := record(t, map[string]interface{}{"tags": "project"})
	p := filter.Predicate{Key: "tags", Operator: filter.OpIncludes, Type: filter.TypeList, Value: "project"}
	if filter.Evaluate(scalar, p) {
		t.Fatal("includes must not match a scalar, even on equal text")
	}

	list := record(t, map[string]interface{}{"tags": []interface{}{"Project", "draft"}})
	if !filter.Evaluate(list, p) {
		t.Fatal("includes should match a list element case-insensitively")
	}

	p.Value = "missing"
	if filter.Evaluate(list, p) {
		t.Fatal("includes should be false when no element matches")
	}
}

func TestContainsStringifiesAnyShape(t *testing.T) {
	list := record(t, map[string]interface{}{"tags": []interface{}{"alpha", "beta"}})
	p := filter.Predicate{Key: "tags", Operator: filter.OpContains, Type: filter.TypeList, Value: "alpha,b"}
	if !filter.Evaluate(list, p) {
		t.Fatal("contains should run over the joined string form of a list")
	}

	num := record(t, map[string]interface{}{"priority": 42})
	p = filter.Predicate{Key: "priority", Operator: filter.OpContains, Type: filter.TypeNumber, Value: "2"}
	if !filter.Evaluate(num, p) {
		t.Fatal("contains should run over the string form of a number")
	}
}

func TestOrderingComparisons(t *testing.T) {
	rec := record(t, map[string]interface{}{"priority": 3})

	cases := []struct {
		op    filter.Operator
		value string
		want  bool
	}{
		{filter.OpGreaterThan, "2", true},
		{filter.OpGreaterThan, "3", false},
		{filter.OpLessThan, "4", true},
		{filter.OpLessThan, "3", false},
	}
	for _, tc := range cases {
		p := filter.Predicate{Key: "priority", Operator: tc.op, Type: filter.TypeNumber, Value: tc.value}
		if got := filter.Evaluate(rec, p); got != tc.want {
			t.Fatalf("%s %s: got %v, want %v", tc.op, tc.value, got, tc.want)
		}
	}
}

func TestUnknownOperatorIsFalse(t *testing.T) {
	rec := record(t, map[string]interface{}{"k": "v"})
	p := filter.Predicate{Key: "k", Operator: filter.Operator("between"), Type: filter.TypeText, Value: "v"}
	if filter.Evaluate(rec, p) {
		t.Fatal("unknown operators must default to no match")
	}
}
