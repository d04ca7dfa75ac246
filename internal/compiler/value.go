package compiler

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	IntValue ValueKind = iota
	FloatValue
	BoolValue
	StringValue
	ListValueKind
)

// Value is the tagged union described in §3 of the spec: an integer,
// float, bool, decoded string, or an ordered homogeneous list of Values.
// A decoded ISO-8601 datetime is represented as a StringValue until a
// comparison operator decides, from context, that every operand on a
// range parses as a datetime (§4.2); Value itself never tags "datetime"
// as a distinct kind.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Bool  bool
	Str   string
	List  []Value
}

func IntVal(i int64) Value     { return Value{Kind: IntValue, Int: i} }
func FloatVal(f float64) Value { return Value{Kind: FloatValue, Float: f} }
func BoolVal(b bool) Value     { return Value{Kind: BoolValue, Bool: b} }
func StringVal(s string) Value { return Value{Kind: StringValue, Str: s} }
func ListVal(vs []Value) Value { return Value{Kind: ListValueKind, List: vs} }

// MarshalJSON renders a Value as the raw JSON scalar or array the wire
// contract (§6) expects — never as a wrapper object.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case IntValue:
		return json.Marshal(v.Int)
	case FloatValue:
		return json.Marshal(v.Float)
	case BoolValue:
		return json.Marshal(v.Bool)
	case StringValue:
		return json.Marshal(v.Str)
	case ListValueKind:
		items := v.List
		if items == nil {
			items = []Value{}
		}
		return json.Marshal(items)
	default:
		return json.Marshal(nil)
	}
}

// decodeValueAST turns a parsed ValueAST into a Value, decoding string
// escapes and splitting numbers into int vs. float the way §4.2 specifies.
func decodeValueAST(ast *ValueAST) (Value, error) {
	switch {
	case ast.List != nil:
		items := make([]Value, 0, len(ast.List.Values))
		for _, child := range ast.List.Values {
			v, err := decodeValueAST(child)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return ListVal(items), nil
	case ast.Empty:
		return ListVal(nil), nil
	case ast.Str != nil:
		return StringVal(decodeString(*ast.Str)), nil
	case ast.Number != nil:
		return decodeNumber(*ast.Number), nil
	case ast.Boolean != nil:
		return BoolVal(strings.EqualFold(*ast.Boolean, "true")), nil
	default:
		return Value{}, InvalidQuery("value", "empty value node")
	}
}

// decodeString strips the surrounding quotes and decodes the two escape
// sequences the grammar's string token permits: \' and \\.
func decodeString(raw string) string {
	inner := raw[1 : len(raw)-1]
	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) && (inner[i+1] == '\'' || inner[i+1] == '\\') {
			b.WriteByte(inner[i+1])
			i++
			continue
		}
		b.WriteByte(inner[i])
	}
	return b.String()
}

// decodeNumber maps to an integer iff no decimal point appears, else to a
// double-precision float — matching the Python original's
// `float(text) if "." in text else int(text)`.
func decodeNumber(raw string) Value {
	if strings.Contains(raw, ".") {
		f, _ := strconv.ParseFloat(raw, 64)
		return FloatVal(f)
	}
	i, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		f, _ := strconv.ParseFloat(raw, 64)
		return FloatVal(f)
	}
	return IntVal(i)
}

// flatten recursively unwraps nested lists into a single ordered sequence,
// mirroring the Python visitor's _flatten_all. With this grammar a list
// only nests when the input itself nests parentheses ("(1, (2, 3))"); a
// non-list operand becomes a one-element slice.
func flatten(v Value) []Value {
	if v.Kind != ListValueKind {
		return []Value{v}
	}
	out := make([]Value, 0, len(v.List))
	for _, item := range v.List {
		out = append(out, flatten(item)...)
	}
	return out
}
