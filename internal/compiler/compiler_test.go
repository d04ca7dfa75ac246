package compiler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// diffOpts treats nil and empty slices as equal (Filter buckets are always
// nil when unpopulated, but building expectations by hand is easier with
// literal empty slices here and there).
var diffOpts = cmpopts.EquateEmpty()

func mustCompile(t *testing.T, where string) *Filter {
	t.Helper()
	f, err := Compile(where)
	if err != nil {
		t.Fatalf("Compile(%q): unexpected error: %v", where, err)
	}
	return f
}

func ptr[T any](v T) *T { return &v }

// TestCompile_Scenarios walks the end-to-end table from the external
// interfaces section: one compiled Filter per row, compared structurally.
func TestCompile_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		where string
		want  *Filter
	}{
		{
			name:  "in-or-range",
			where: "color IN ('red','black') OR age >= 17",
			want: &Filter{
				Should: []Node{
					&FieldMatchAny{Key: "color", Values: []Value{StringVal("red"), StringVal("black")}},
					&FieldRange{Key: "age", Bound: Bound{Gte: ptr(IntVal(17))}},
				},
			},
		},
		{
			name:  "and-not-equal",
			where: "city = 'London' AND color != 'red'",
			want: &Filter{
				Must:    []Node{&FieldMatchValue{Key: "city", Value: StringVal("London")}},
				MustNot: []Node{&FieldMatchValue{Key: "color", Value: StringVal("red")}},
			},
		},
		{
			name:  "grouped-or-and-bool",
			where: "(country = 'US' OR country = 'CA') AND verified = FALSE",
			want: &Filter{
				Must: []Node{
					&Filter{Should: []Node{
						&FieldMatchValue{Key: "country", Value: StringVal("US")},
						&FieldMatchValue{Key: "country", Value: StringVal("CA")},
					}},
					&FieldMatchValue{Key: "verified", Value: BoolVal(false)},
				},
			},
		},
		{
			name:  "not-grouped-or",
			where: "NOT (score < 50 OR attempts > 5)",
			want: &Filter{
				MustNot: []Node{&Filter{Should: []Node{
					&FieldRange{Key: "score", Bound: Bound{Lt: ptr(IntVal(50))}},
					&FieldRange{Key: "attempts", Bound: Bound{Gt: ptr(IntVal(5))}},
				}}},
			},
		},
		{
			name:  "values-count-between",
			where: "COUNT(tags) BETWEEN 2 AND 5",
			want: &Filter{
				Must: []Node{&FieldValuesCount{Key: "tags", Bound: Bound{Gte: ptr(IntVal(2)), Lte: ptr(IntVal(5))}}},
			},
		},
		{
			name:  "has-id-in",
			where: "id IN (1,2,3)",
			want: &Filter{
				Must: []Node{&HasId{Values: []Value{IntVal(1), IntVal(2), IntVal(3)}}},
			},
		},
		{
			name:  "datetime-range-gte",
			where: "created_at >= '2023-01-01T00:00:00'",
			want: &Filter{
				Must: []Node{&FieldDatetimeRange{Key: "created_at", Bound: Bound{Gte: ptr(StringVal("2023-01-01T00:00:00"))}}},
			},
		},
		{
			name:  "not-in",
			where: "category NOT IN ('a','b')",
			want: &Filter{
				Must: []Node{&FieldMatchExcept{Key: "category", Values: []Value{StringVal("a"), StringVal("b")}}},
			},
		},
		{
			name:  "empty-array-equality",
			where: "tags = []",
			want: &Filter{
				Must: []Node{&IsEmpty{Key: "tags"}},
			},
		},
		{
			name:  "is-not-null-and-datetime-lt",
			where: "last_login IS NOT NULL AND last_login < '2025-04-01T12:00:00'",
			want: &Filter{
				Must:    []Node{&FieldDatetimeRange{Key: "last_login", Bound: Bound{Lt: ptr(StringVal("2025-04-01T12:00:00"))}}},
				MustNot: []Node{&IsNull{Key: "last_login"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustCompile(t, tt.where)
			if diff := cmp.Diff(tt.want, got, diffOpts); diff != "" {
				t.Errorf("Compile(%q) mismatch (-want +got):\n%s", tt.where, diff)
			}
		})
	}
}

func TestCompile_AndChainStaysFlat(t *testing.T) {
	got := mustCompile(t, "a = 1 AND b = 2 AND c = 3")
	want := &Filter{Must: []Node{
		&FieldMatchValue{Key: "a", Value: IntVal(1)},
		&FieldMatchValue{Key: "b", Value: IntVal(2)},
		&FieldMatchValue{Key: "c", Value: IntVal(3)},
	}}
	if diff := cmp.Diff(want, got, diffOpts); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_OrChainFlattensLeftAssociative(t *testing.T) {
	a := mustCompile(t, "a = 1 OR (b = 2 OR c = 3)")
	b := mustCompile(t, "(a = 1 OR b = 2) OR c = 3")
	c := mustCompile(t, "a = 1 OR b = 2 OR c = 3")
	if diff := cmp.Diff(a, b, diffOpts); diff != "" {
		t.Errorf("left vs right grouping mismatch:\n%s", diff)
	}
	if diff := cmp.Diff(b, c, diffOpts); diff != "" {
		t.Errorf("grouped vs flat mismatch:\n%s", diff)
	}
}

func TestCompile_DoubleNegationCancels(t *testing.T) {
	got := mustCompile(t, "NOT (NOT a = 1)")
	want := &Filter{Must: []Node{&FieldMatchValue{Key: "a", Value: IntVal(1)}}}
	if diff := cmp.Diff(want, got, diffOpts); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_EmptyInAndNotIn(t *testing.T) {
	in := mustCompile(t, "a IN ()")
	want := &Filter{Must: []Node{&FieldMatchAny{Key: "a"}}}
	if diff := cmp.Diff(want, in, diffOpts); diff != "" {
		t.Errorf("IN () mismatch (-want +got):\n%s", diff)
	}

	notIn := mustCompile(t, "a NOT IN ()")
	wantNotIn := &Filter{Must: []Node{&FieldMatchExcept{Key: "a"}}}
	if diff := cmp.Diff(wantNotIn, notIn, diffOpts); diff != "" {
		t.Errorf("NOT IN () mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_BetweenMergesBoundsRangePairDoesNot(t *testing.T) {
	gteLte := mustCompile(t, "x >= 5 AND x <= 5")
	between := mustCompile(t, "x BETWEEN 5 AND 5")
	want := &Filter{Must: []Node{&FieldRange{Key: "x", Bound: Bound{Gte: ptr(IntVal(5)), Lte: ptr(IntVal(5))}}}}
	if diff := cmp.Diff(want, between, diffOpts); diff != "" {
		t.Errorf("BETWEEN 5 AND 5 mismatch (-want +got):\n%s", diff)
	}
	// x >= 5 AND x <= 5 yields two separate Range conditions in must, not a
	// single merged bound — the grammar has no notion of combining two
	// independent comparisons on the same field, only BETWEEN does that.
	wantSeparate := &Filter{Must: []Node{
		&FieldRange{Key: "x", Bound: Bound{Gte: ptr(IntVal(5))}},
		&FieldRange{Key: "x", Bound: Bound{Lte: ptr(IntVal(5))}},
	}}
	if diff := cmp.Diff(wantSeparate, gteLte, diffOpts); diff != "" {
		t.Errorf(">= 5 AND <= 5 mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_UUIDHasId(t *testing.T) {
	got := mustCompile(t, "id = '550e8400-e29b-41d4-a716-446655440000'")
	want := &Filter{Must: []Node{&HasId{Values: []Value{StringVal("550e8400-e29b-41d4-a716-446655440000")}}}}
	if diff := cmp.Diff(want, got, diffOpts); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// A UUID-shaped but invalid id literal still passes through unchanged: §3
// preserves parsed type and never re-types or validates has_id values.
func TestCompile_MalformedUUIDHasIdPassesThrough(t *testing.T) {
	got := mustCompile(t, "id = '550e8400-e29b-41d4-a716-44665544000z'")
	want := &Filter{Must: []Node{&HasId{Values: []Value{StringVal("550e8400-e29b-41d4-a716-44665544000z")}}}}
	if diff := cmp.Diff(want, got, diffOpts); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_UnsupportedOperatorOnIdRejected(t *testing.T) {
	_, err := Compile("id LIKE '%abc%'")
	if err == nil {
		t.Fatal("expected an error for an unsupported operator on id")
	}
}

func TestCompile_MalformedInputReturnsParseError(t *testing.T) {
	_, err := Compile("color IN (")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}
